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

// Package simulator samples synthetic cohorts of ages at death from completed
// life-table models and aggregates the outcomes into per-stratum summaries.
package simulator

import (
	"math"
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/montanaflynn/stats"
	"github.com/vitalstats/mortsim/logger"
	"github.com/vitalstats/mortsim/survival"
	"github.com/vitalstats/mortsim/survival/lifetable"
	"github.com/vitalstats/mortsim/survival/sampler"
	"github.com/vitalstats/mortsim/utils"
)

// Run samples a synthetic cohort of ages at death from a completed life-table
// model. The cohort composition is given by the mix; cohort size, correction
// mode and random seed come from the config. Heterogeneous mixes consume one
// uniform draw per individual for the stratum assignment and every individual
// consumes one for the age at death, so a run is reproducible from its seed.
func Run(m *lifetable.Model, mix Mix, cfg *utils.Config, log logger.Logger) (*Result, error) {
	correction, err := sampler.ParseCorrection(cfg.Correction)
	if err != nil {
		return nil, err
	}
	n := cfg.CohortSize
	if n <= 0 {
		return nil, errors.Wrapf(survival.ErrShapeMismatch, "cohort size must be positive (%d)", n)
	}

	// random generator
	rg := rand.New(rand.NewSource(cfg.RandomSeed))
	log.Noticef("using random seed %d", cfg.RandomSeed)
	log.Noticef("cohort composition %v", mix)

	// progress message setup
	var (
		start   time.Time
		sec     float64
		lastSec float64
	)
	start = time.Now()
	sec = time.Since(start).Seconds()
	lastSec = time.Since(start).Seconds()

	// assign a stratum to every individual and gather the pmf rows; the
	// rows alias the model's storage and are never written to
	var assigned []string
	var pmfs [][]float64
	if mix.Homogeneous() {
		row, err := m.Row(mix.Labels[0])
		if err != nil {
			return nil, err
		}
		pmfs = make([][]float64, n)
		for i := 0; i < n; i++ {
			pmfs[i] = row
		}
	} else {
		assigned, err = sampler.Choice(rg, mix.Labels, mix.Weights, n)
		if err != nil {
			return nil, err
		}
		pmfs, err = m.RowsFor(assigned)
		if err != nil {
			return nil, err
		}
	}

	outcomes, err := sampler.Draw(rg, pmfs, m.Categories(), correction)
	if err != nil {
		return nil, err
	}

	// aggregate the outcome frequency over the age axis and split the
	// outcomes per stratum
	counts := make([]uint64, len(m.Ages))
	byGroup := map[string][]float64{}
	if mix.Homogeneous() {
		byGroup[mix.Labels[0]] = outcomes
	}
	firstAge := m.Ages[0]
	for i, v := range outcomes {
		counts[int(math.Floor(v))-firstAge]++
		if assigned != nil {
			byGroup[assigned[i]] = append(byGroup[assigned[i]], v)
		}

		// report progress
		sec = time.Since(start).Seconds()
		if sec-lastSec >= 15 {
			log.Debugf("Elapsed time: %.0f s, at individual %v", sec, i)
			lastSec = sec
		}
	}

	// summarize every stratum and the overall cohort
	terminal := float64(m.TerminalAge())
	strata := make([]StratumSummary, 0, len(mix.Labels))
	overallExpected := 0.0
	for i, group := range mix.Labels {
		expected, err := m.ExpectedAge(group)
		if err != nil {
			return nil, err
		}
		overallExpected += mix.Weights[i] * expected
		s, err := summarize(group, mix.Weights[i], byGroup[group], expected, terminal)
		if err != nil {
			return nil, err
		}
		strata = append(strata, s)
	}
	overall, err := summarize("Overall", 1.0, outcomes, overallExpected, terminal)
	if err != nil {
		return nil, err
	}

	// print progress summary
	log.Noticef("Sampled %v individuals from %v strata", n, len(mix.Labels))
	for _, s := range strata {
		log.Noticef("\t%v: %v individuals, mean age %.2f, model mean %.2f", s.Group, s.Count, s.Mean, s.ExpectedMean)
	}
	log.Noticef("Terminal bucket share: %.4f", overall.TerminalShare)
	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Noticef("Total elapsed time: %vh %vm %vs", hours, minutes, seconds)

	return &Result{
		FileId:     ResultFileId,
		Period:     m.Period,
		Mix:        mix.String(),
		Correction: correction.String(),
		RandomSeed: cfg.RandomSeed,
		CohortSize: n,
		Ages:       m.Ages,
		Counts:     counts,
		Strata:     strata,
		Overall:    overall,
		ECDF:       toAgeECDF(m.Ages, counts),
	}, nil
}

// summarize computes the outcome statistics of one group. A group that
// received no individuals yields a zero-valued summary with its weight and
// model expectation intact.
func summarize(group string, weight float64, outcomes []float64, expected float64, terminalAge float64) (StratumSummary, error) {
	s := StratumSummary{
		Group:        group,
		Weight:       weight,
		Count:        len(outcomes),
		ExpectedMean: expected,
	}
	if len(outcomes) == 0 {
		return s, nil
	}
	mean, err := stats.Mean(outcomes)
	if err != nil {
		return s, err
	}
	median, err := stats.Median(outcomes)
	if err != nil {
		return s, err
	}
	stdDev, err := stats.StandardDeviation(outcomes)
	if err != nil {
		return s, err
	}
	min, err := stats.Min(outcomes)
	if err != nil {
		return s, err
	}
	max, err := stats.Max(outcomes)
	if err != nil {
		return s, err
	}
	// the tail quantiles are undefined for very small groups; fall back
	// to the observed extremes there
	q025, err := stats.Percentile(outcomes, 2.5)
	if err != nil {
		q025 = min
	}
	q975, err := stats.Percentile(outcomes, 97.5)
	if err != nil {
		q975 = max
	}
	terminalCount := 0
	for _, v := range outcomes {
		if v >= terminalAge {
			terminalCount++
		}
	}
	s.Mean = mean
	s.Median = median
	s.StdDev = stdDev
	s.Min = min
	s.Max = max
	s.Q025 = q025
	s.Q975 = q975
	s.TerminalShare = float64(terminalCount) / float64(len(outcomes))
	return s, nil
}
