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
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/vitalstats/mortsim/logger"
	"github.com/vitalstats/mortsim/survival/lifetable"
	"github.com/vitalstats/mortsim/survival/resultdb"
	"github.com/vitalstats/mortsim/survival/simulator"
	"github.com/vitalstats/mortsim/utils"
)

// SimulateCommand data structure for the simulate app.
var SimulateCommand = cli.Command{
	Action:    simulateAction,
	Name:      "simulate",
	Usage:     "simulate a synthetic cohort from a mortality model",
	ArgsUsage: "<model.json>",
	Flags: []cli.Flag{
		&utils.CohortSizeFlag,
		&utils.GroupsFlag,
		&utils.CorrectionFlag,
		&utils.RandomSeedFlag,
		&utils.OutputFlag,
		&utils.DbFlag,
		&utils.CpuProfileFlag,
		&utils.MemoryProfileFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The simulate command requires one argument:
<model.json>

<model.json> is a mortality model produced by the estimate command.
The cohort composition is set with --groups; each individual's age at
death is drawn from the completed distribution of its stratum.`,
}

// simulateAction draws a synthetic cohort and writes the result file, the
// console summary and, when requested, the summary database.
func simulateAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.PathArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Simulate")
	if err := utils.StartCPUProfile(cfg); err != nil {
		return err
	}
	defer utils.StopCPUProfile(cfg)

	m, err := lifetable.ReadModel(cfg.ArgPath)
	if err != nil {
		return fmt.Errorf("failed reading model; %v", err)
	}
	mix, err := simulator.ParseMix(cfg.Groups, m.Groups)
	if err != nil {
		return err
	}
	res, err := simulator.Run(m, mix, cfg, log)
	if err != nil {
		return err
	}
	if err := utils.StartMemoryProfile(cfg); err != nil {
		return err
	}

	if cfg.Output == "" {
		cfg.Output = "./simulation-result.json"
	}
	log.Noticef("Write result file %v", cfg.Output)
	if err := res.Write(cfg.Output); err != nil {
		return err
	}

	printers := utils.NewPrinters().
		AddPrinterToConsole(false, res.SummaryTable).
		AddPrinterToSqlite3(cfg.Db, resultdb.CreateSQL, resultdb.InsertStratumSQL, res.SummaryRows)
	defer printers.Close()
	printers.Print()
	return nil
}
