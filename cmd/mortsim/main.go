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

package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/vitalstats/mortsim/cmd/mortsim/survival"
)

// MortsimApp data structure
var MortsimApp = cli.App{
	Name:      "Mortsim",
	HelpName:  "mortsim",
	Usage:     "simulate synthetic cohorts from period life tables",
	Copyright: "(c) 2025 Vitalstats Analytics",
	Commands: []*cli.Command{
		&survival.EstimateCommand,
		&survival.SimulateCommand,
		&survival.ExponentialCommand,
		&survival.VisualizeCommand,
		&survival.ReportCommand,
	},
}

// main implements the mortsim commands
func main() {
	if err := MortsimApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
