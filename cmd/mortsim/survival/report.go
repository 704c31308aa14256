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
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/vitalstats/mortsim/logger"
	"github.com/vitalstats/mortsim/survival/resultdb"
	"github.com/vitalstats/mortsim/utils"
)

// ReportCommand data structure for the report app.
var ReportCommand = cli.Command{
	Action: reportAction,
	Name:   "report",
	Usage:  "print stored simulation summaries from a summary database",
	Flags: []cli.Flag{
		&utils.DbFlag,
		&utils.PeriodFlag,
		&utils.OutputFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The report command prints the stratum summaries collected by earlier
simulate runs. With --period, only the summaries of one calendar period
are printed.`,
}

// reportAction prints the stratum summaries stored in the summary database.
func reportAction(ctx *cli.Context) (err error) {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	if cfg.Db == "" {
		return fmt.Errorf("missing summary database; set --%v", utils.DbFlag.Name)
	}
	log := logger.NewLogger(cfg.LogLevel, "Report")

	db, err := resultdb.OpenResultDB(cfg.Db)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	rows, err := db.Summaries(cfg.Period)
	if err != nil {
		return err
	}
	log.Infof("Found %v stored summaries", len(rows))

	printers := utils.NewPrinters().
		AddPrinterToConsole(false, func() string { return resultdb.SummaryTable(rows) }).
		AddPrinterToFile(cfg.Output, func() string { return resultdb.SummaryTable(rows) })
	defer printers.Close()
	printers.Print()
	return nil
}
