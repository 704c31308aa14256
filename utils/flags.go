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

import "github.com/urfave/cli/v2"

// Command line flags shared by the mortsim commands.
var (
	CohortSizeFlag = cli.IntFlag{
		Name:    "cohort-size",
		Aliases: []string{"n"},
		Usage:   "number of individuals drawn per simulation run",
		Value:   100_000,
	}
	CorrectionFlag = cli.StringFlag{
		Name:  "correction",
		Usage: "correction applied to sampled event times (\"none\", \"uniform\")",
		Value: "none",
	}
	CpuProfileFlag = cli.StringFlag{
		Name:  "cpu-profile",
		Usage: "enables CPU profiling",
	}
	DbFlag = cli.PathFlag{
		Name:  "db",
		Usage: "output path for a sqlite3 database collecting run summaries",
	}
	GroupsFlag = cli.StringFlag{
		Name:  "groups",
		Usage: "cohort composition, e.g. \"Total\" or \"Male=0.49,Female=0.51\" (default: all strata, equal weights)",
	}
	HorizonFlag = cli.IntFlag{
		Name:  "horizon",
		Usage: "number of whole periods covered by a synthetic life table",
		Value: 102,
	}
	MemoryProfileFlag = cli.StringFlag{
		Name:  "memory-profile",
		Usage: "enables memory allocation profiling",
	}
	OutputFlag = cli.PathFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output path",
	}
	PeriodFlag = cli.IntFlag{
		Name:  "period",
		Usage: "calendar period selected from the life table (default: latest period present)",
	}
	PortFlag = cli.StringFlag{
		Name:    "port",
		Aliases: []string{"v"},
		Usage:   "enable visualization on `PORT`",
		Value:   "8080",
	}
	RandomSeedFlag = cli.Int64Flag{
		Name:  "random-seed",
		Usage: "set random seed for the simulation (negative value draws a fresh seed)",
		Value: -1,
	}
	ResultFlag = cli.PathFlag{
		Name:  "result",
		Usage: "simulation result file overlaid on the model charts",
	}
	RateFlag = cli.Float64Flag{
		Name:  "rate",
		Usage: "constant hazard rate of the reference exponential model",
		Value: 0.1,
	}
)
