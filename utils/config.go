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
	"fmt"
	"math/rand"

	"github.com/urfave/cli/v2"
	"github.com/vitalstats/mortsim/logger"
)

// ArgumentMode determines the positional arguments a command expects.
type ArgumentMode int

const (
	NoArgs  ArgumentMode = iota // command takes no positional arguments
	PathArg                     // command takes a single file path argument
)

// Config stores the configurable parameters of the mortsim commands.
type Config struct {
	AppName     string
	CommandName string

	ArgPath string // positional file argument (life table, model, or result file)

	CohortSize    int     // number of individuals per simulation run
	Correction    string  // correction mode for sampled event times
	CPUProfile    string  // pprof cpu profile output file
	Db            string  // sqlite3 database for run summaries
	Groups        string  // cohort composition specification
	Horizon       int     // number of periods for synthetic life tables
	LogLevel      string  // level of the logging
	MemoryProfile string  // pprof memory profile output file
	Output        string  // output file
	Period        int     // calendar period selected from the life table
	Port          string  // web server port
	RandomSeed    int64   // set random seed for the simulation
	Rate          float64 // hazard rate of the reference exponential model
	Result        string  // simulation result file for visualization
}

// NewConfig creates a config instance from the flags of the cli context and
// checks the positional arguments against the given mode.
func NewConfig(ctx *cli.Context, mode ArgumentMode) (*Config, error) {
	cfg := createConfigFromFlags(ctx)

	if err := updateConfigArgs(ctx, cfg, mode); err != nil {
		return nil, err
	}
	adjustMissingConfigValues(cfg)

	return cfg, nil
}

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		CohortSize:    getFlagValue(ctx, CohortSizeFlag).(int),
		Correction:    getFlagValue(ctx, CorrectionFlag).(string),
		CPUProfile:    getFlagValue(ctx, CpuProfileFlag).(string),
		Db:            getFlagValue(ctx, DbFlag).(string),
		Groups:        getFlagValue(ctx, GroupsFlag).(string),
		Horizon:       getFlagValue(ctx, HorizonFlag).(int),
		LogLevel:      getFlagValue(ctx, logger.LogLevelFlag).(string),
		MemoryProfile: getFlagValue(ctx, MemoryProfileFlag).(string),
		Output:        getFlagValue(ctx, OutputFlag).(string),
		Period:        getFlagValue(ctx, PeriodFlag).(int),
		Port:          getFlagValue(ctx, PortFlag).(string),
		RandomSeed:    getFlagValue(ctx, RandomSeedFlag).(int64),
		Rate:          getFlagValue(ctx, RateFlag).(float64),
		Result:        getFlagValue(ctx, ResultFlag).(string),
	}

	return cfg
}

// updateConfigArgs checks the positional arguments of the command and stores
// them in the config.
func updateConfigArgs(ctx *cli.Context, cfg *Config, mode ArgumentMode) error {
	switch mode {
	case NoArgs:
		if ctx.Args().Len() != 0 {
			return fmt.Errorf("command %q takes no arguments", cfg.CommandName)
		}
	case PathArg:
		if ctx.Args().Len() != 1 {
			return fmt.Errorf("command %q requires exactly one file argument", cfg.CommandName)
		}
		cfg.ArgPath = ctx.Args().Get(0)
	default:
		return fmt.Errorf("unknown argument mode %v", mode)
	}
	return nil
}

// adjustMissingConfigValues fills in values that cannot be expressed as static
// flag defaults. A negative seed requests a fresh one; the chosen value stays
// in the config so a run can be reproduced from its logs.
func adjustMissingConfigValues(cfg *Config) {
	if cfg.RandomSeed < 0 {
		cfg.RandomSeed = int64(rand.Uint32())
	}
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	cmdFlags := ctx.Command.Flags
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}

		case cli.Int64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int64(f.Name)
			}

		case cli.Float64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64(f.Name)
			}

		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}

		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}

		case cli.BoolFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Bool(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Int64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	}

	return nil
}
