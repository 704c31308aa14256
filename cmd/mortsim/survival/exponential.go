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
	"math"
	"math/rand"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/urfave/cli/v2"
	"github.com/vitalstats/mortsim/logger"
	"github.com/vitalstats/mortsim/survival/sampler"
	"github.com/vitalstats/mortsim/survival/statistics/exponential"
	"github.com/vitalstats/mortsim/utils"
)

// ExponentialCommand data structure for the exponential app.
var ExponentialCommand = cli.Command{
	Action: exponentialAction,
	Name:   "exponential",
	Usage:  "validate the sampler against a discretized exponential model",
	Flags: []cli.Flag{
		&utils.RateFlag,
		&utils.HorizonFlag,
		&utils.CohortSizeFlag,
		&utils.RandomSeedFlag,
		&utils.OutputFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The exponential command draws a cohort from a synthetic life table with a
constant hazard rate and compares the sample moments against the analytic
values of the exponential distribution. Large deviations indicate a broken
sampler or a too small cohort.`,
}

// number of individuals drawn per sampler invocation
const samplingChunk = 10_000

// exponentialAction samples from the discretized exponential distribution and
// prints the moment comparison to the console and, if requested, to a file.
func exponentialAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	if cfg.CohortSize <= 0 {
		return fmt.Errorf("cohort-size must be greater than zero")
	}
	log := logger.NewLogger(cfg.LogLevel, "Exponential")

	pmf, err := exponential.PMF(cfg.Rate, cfg.Horizon)
	if err != nil {
		return err
	}

	// random generator
	rg := rand.New(rand.NewSource(cfg.RandomSeed))
	log.Noticef("using random seed %d", cfg.RandomSeed)
	log.Noticef("Sample %v individuals, rate %v, horizon %v", cfg.CohortSize, cfg.Rate, cfg.Horizon)

	tracker := utils.NewProgressTracker(cfg.CohortSize, log)
	outcomes := make([]float64, 0, cfg.CohortSize)
	rows := make([][]float64, 0, samplingChunk)
	// the uniform jitter turns bucket indices into continuous event times
	for len(outcomes) < cfg.CohortSize {
		chunk := min(samplingChunk, cfg.CohortSize-len(outcomes))
		rows = rows[:0]
		for range chunk {
			rows = append(rows, pmf)
		}
		draws, err := sampler.Draw(rg, rows, nil, sampler.UniformCorrection)
		if err != nil {
			return err
		}
		outcomes = append(outcomes, draws...)
		for range draws {
			tracker.PrintProgress()
		}
	}

	mean, err := stats.Mean(outcomes)
	if err != nil {
		return err
	}
	median, err := stats.Median(outcomes)
	if err != nil {
		return err
	}
	stdDev, err := stats.StandardDeviation(outcomes)
	if err != nil {
		return err
	}
	// the tail quantiles are undefined for very small cohorts; fall back
	// to the observed extremes there
	q025, err := stats.Percentile(outcomes, 2.5)
	if err != nil {
		q025, err = stats.Min(outcomes)
		if err != nil {
			return err
		}
	}
	q975, err := stats.Percentile(outcomes, 97.5)
	if err != nil {
		q975, err = stats.Max(outcomes)
		if err != nil {
			return err
		}
	}

	printers := utils.NewPrinters().
		AddPrinterToConsole(false, func() string { return validationTable(cfg, mean, median, stdDev, q025, q975) }).
		AddPrinterToFile(cfg.Output, func() string { return validationTable(cfg, mean, median, stdDev, q025, q975) })
	defer printers.Close()
	printers.Print()
	return nil
}

// validationTable renders the analytic moments of the exponential model next
// to their simulated counterparts.
func validationTable(cfg *utils.Config, mean, median, stdDev, q025, q975 float64) string {
	t := table.NewWriter()
	t.SetTitle("exponential validation, rate %v, %v individuals", cfg.Rate, cfg.CohortSize)
	t.AppendHeader(table.Row{"metric", "analytic", "simulated", "abs error"})
	rows := []struct {
		metric    string
		analytic  float64
		simulated float64
	}{
		{"mean", exponential.Mean(cfg.Rate), mean},
		{"median", exponential.Median(cfg.Rate), median},
		{"std dev", exponential.StdDev(cfg.Rate), stdDev},
		{"q2.5", exponential.Quantile(cfg.Rate, 0.025), q025},
		{"q97.5", exponential.Quantile(cfg.Rate, 0.975), q975},
	}
	for _, r := range rows {
		t.AppendRow(table.Row{r.metric, fmt.Sprintf("%.4f", r.analytic), fmt.Sprintf("%.4f", r.simulated), fmt.Sprintf("%.4f", math.Abs(r.analytic-r.simulated))})
	}
	return t.Render()
}
