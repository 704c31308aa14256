// Copyright 2025 Vitalstats Analytics
// This file is part of Mortsim, a cohort simulation toolkit for vital statistics
//
// Mortsim is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Mortsim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Mortsim. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"github.com/vitalstats/mortsim/logger"
)

func prepareMockCliContext(args ...string) *cli.Context {
	flagSet := flag.NewFlagSet("utils_config_test", 0)
	flagSet.Int(CohortSizeFlag.Name, 5000, "number of individuals per run")
	flagSet.String(CorrectionFlag.Name, "uniform", "correction mode")
	flagSet.Int64(RandomSeedFlag.Name, 42, "random seed")
	flagSet.String(logger.LogLevelFlag.Name, "info", "log level")
	_ = flagSet.Parse(args)

	ctx := cli.NewContext(cli.NewApp(), flagSet, nil)

	command := &cli.Command{
		Name: "test_command",
		Flags: []cli.Flag{
			&CohortSizeFlag,
			&CorrectionFlag,
			&RandomSeedFlag,
			&logger.LogLevelFlag,
		},
	}
	ctx.Command = command

	return ctx
}

func TestUtilsConfig_NewConfig(t *testing.T) {
	ctx := prepareMockCliContext()

	cfg, err := NewConfig(ctx, NoArgs)
	if err != nil {
		t.Fatalf("Failed to create new config: %v", err)
	}

	// values from the flag set
	assert.Equal(t, "test_command", cfg.CommandName)
	assert.Equal(t, 5000, cfg.CohortSize)
	assert.Equal(t, "uniform", cfg.Correction)
	assert.Equal(t, int64(42), cfg.RandomSeed)
	assert.Equal(t, "info", cfg.LogLevel)

	// defaults for flags the command does not carry
	assert.Equal(t, HorizonFlag.Value, cfg.Horizon)
	assert.Equal(t, PortFlag.Value, cfg.Port)
	assert.Equal(t, RateFlag.Value, cfg.Rate)
}

func TestUtilsConfig_NewConfigPathArg(t *testing.T) {
	ctx := prepareMockCliContext("lifetable.csv")

	cfg, err := NewConfig(ctx, PathArg)
	require.NoError(t, err)
	assert.Equal(t, "lifetable.csv", cfg.ArgPath)
}

func TestUtilsConfig_NewConfigArgumentErrors(t *testing.T) {
	t.Run("path arg missing", func(t *testing.T) {
		ctx := prepareMockCliContext()
		_, err := NewConfig(ctx, PathArg)
		assert.ErrorContains(t, err, "exactly one file argument")
	})

	t.Run("unexpected argument", func(t *testing.T) {
		ctx := prepareMockCliContext("surplus")
		_, err := NewConfig(ctx, NoArgs)
		assert.ErrorContains(t, err, "takes no arguments")
	})

	t.Run("unknown mode", func(t *testing.T) {
		ctx := prepareMockCliContext()
		_, err := NewConfig(ctx, ArgumentMode(99))
		assert.ErrorContains(t, err, "unknown argument mode")
	})
}

func TestUtilsConfig_NewConfigReplacesNegativeSeed(t *testing.T) {
	flagSet := flag.NewFlagSet("utils_config_test", 0)
	flagSet.Int64(RandomSeedFlag.Name, -1, "random seed")
	ctx := cli.NewContext(cli.NewApp(), flagSet, nil)
	ctx.Command = &cli.Command{
		Name:  "test_command",
		Flags: []cli.Flag{&RandomSeedFlag},
	}

	cfg, err := NewConfig(ctx, NoArgs)
	require.NoError(t, err)

	// the sentinel must be replaced by a concrete, reusable seed
	assert.GreaterOrEqual(t, cfg.RandomSeed, int64(0))
}

func TestGetFlagValue(t *testing.T) {
	// app for testing
	app := cli.NewApp()
	app.Commands = []*cli.Command{
		{
			Name: "testcmd",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name: "intflag",
				},
				&cli.Int64Flag{
					Name: "int64flag",
				},
				&cli.Float64Flag{
					Name: "float64flag",
				},
				&cli.StringFlag{
					Name: "stringflag",
				},
				&cli.PathFlag{
					Name: "pathflag",
				},
				&cli.BoolFlag{
					Name: "boolflag",
				},
			},
		},
	}

	// Setup test cases
	testCases := []struct {
		name          string
		setupFlags    func() (*cli.Context, error)
		flagToTest    interface{}
		expectedValue interface{}
	}{
		{
			name: "IntFlag value",
			setupFlags: func() (*cli.Context, error) {
				set := flag.NewFlagSet("test", 0)
				set.Int("intflag", 42, "")
				ctx := cli.NewContext(app, set, nil)
				ctx.Command = app.Commands[0]
				return ctx, nil
			},
			flagToTest:    cli.IntFlag{Name: "intflag"},
			expectedValue: 42,
		},
		{
			name: "Int64Flag value",
			setupFlags: func() (*cli.Context, error) {
				set := flag.NewFlagSet("test", 0)
				set.Int64("int64flag", 200, "")
				ctx := cli.NewContext(app, set, nil)
				ctx.Command = app.Commands[0]
				return ctx, nil
			},
			flagToTest:    cli.Int64Flag{Name: "int64flag"},
			expectedValue: int64(200),
		},
		{
			name: "Float64Flag value",
			setupFlags: func() (*cli.Context, error) {
				set := flag.NewFlagSet("test", 0)
				set.Float64("float64flag", 0.25, "")
				ctx := cli.NewContext(app, set, nil)
				ctx.Command = app.Commands[0]
				return ctx, nil
			},
			flagToTest:    cli.Float64Flag{Name: "float64flag"},
			expectedValue: 0.25,
		},
		{
			name: "StringFlag value",
			setupFlags: func() (*cli.Context, error) {
				set := flag.NewFlagSet("test", 0)
				set.String("stringflag", "test-string", "")
				ctx := cli.NewContext(app, set, nil)
				ctx.Command = app.Commands[0]
				return ctx, nil
			},
			flagToTest:    cli.StringFlag{Name: "stringflag"},
			expectedValue: "test-string",
		},
		{
			name: "PathFlag value",
			setupFlags: func() (*cli.Context, error) {
				set := flag.NewFlagSet("test", 0)
				set.String("pathflag", "/test/path", "")
				ctx := cli.NewContext(app, set, nil)
				ctx.Command = app.Commands[0]
				return ctx, nil
			},
			flagToTest:    cli.PathFlag{Name: "pathflag"},
			expectedValue: "/test/path",
		},
		{
			name: "BoolFlag value",
			setupFlags: func() (*cli.Context, error) {
				set := flag.NewFlagSet("test", 0)
				set.Bool("boolflag", true, "")
				ctx := cli.NewContext(app, set, nil)
				ctx.Command = app.Commands[0]
				return ctx, nil
			},
			flagToTest:    cli.BoolFlag{Name: "boolflag"},
			expectedValue: true,
		},
		{
			name: "default when flag absent from command",
			setupFlags: func() (*cli.Context, error) {
				set := flag.NewFlagSet("test", 0)
				ctx := cli.NewContext(app, set, nil)
				ctx.Command = app.Commands[0]
				return ctx, nil
			},
			flagToTest:    cli.IntFlag{Name: "unregistered", Value: 7},
			expectedValue: 7,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, err := tc.setupFlags()
			assert.NoError(t, err)

			value := getFlagValue(ctx, tc.flagToTest)
			assert.Equal(t, tc.expectedValue, value)
		})
	}
}
