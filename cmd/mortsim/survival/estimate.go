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

package survival

import (
	"github.com/urfave/cli/v2"
	"github.com/vitalstats/mortsim/logger"
	"github.com/vitalstats/mortsim/survival/lifetable"
	"github.com/vitalstats/mortsim/utils"
)

// EstimateCommand data structure for the estimate app.
var EstimateCommand = cli.Command{
	Action:    estimateAction,
	Name:      "estimate",
	Usage:     "estimate a mortality model from life-table hazard rates",
	ArgsUsage: "<life-table.csv>",
	Flags: []cli.Flag{
		&utils.PeriodFlag,
		&utils.OutputFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The estimate command requires one argument:
<life-table.csv>

<life-table.csv> is a CSV file with the columns Group, Period, Age and
Rate holding the cumulative-hazard increments of a period life table.
A .gz suffix is decompressed transparently.`,
}

// estimateAction completes the per-stratum distributions of one calendar
// period and writes the resulting model file.
func estimateAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.PathArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Estimate")
	log.Noticef("Read life table %v", cfg.ArgPath)
	table, err := lifetable.ReadTable(cfg.ArgPath)
	if err != nil {
		return err
	}
	period := cfg.Period
	if period == 0 {
		periods := table.Periods()
		period = periods[len(periods)-1]
		log.Noticef("No period selected; using latest period %d", period)
	}
	selected, err := table.Select(period)
	if err != nil {
		return err
	}
	log.Infof("Estimating model for strata %v", selected.Groups())
	m, err := lifetable.BuildModel(selected)
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		cfg.Output = "./lifetable-model.json"
	}
	log.Noticef("Write model file %v", cfg.Output)
	if err := m.Write(cfg.Output); err != nil {
		return err
	}
	return nil
}
