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

package visualizer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vitalstats/mortsim/survival/lifetable"
	"github.com/vitalstats/mortsim/survival/simulator"
)

// bandYears is the width of one age band in the progression graph.
const bandYears = 10

type stratumDatum struct {
	label string
	value float64
}

type viewState struct {
	model       *lifetable.Model
	result      *simulator.Result
	mass        map[string][][2]float64 // completed pmf points per stratum
	curves      map[string][][2]float64 // survival curve points per stratum
	expectancy  []stratumDatum          // expected age at death per stratum
	observed    [][2]float64            // empirical bucket shares of the cohort
	expected    [][2]float64            // mixture pmf over the same axis
	bandLabels  []string                // age band labels incl. the absorbing state
	progression [][]float64             // band transition probabilities
}

var (
	currentMu    sync.RWMutex
	currentState *viewState
)

func setViewState(m *lifetable.Model, res *simulator.Result) error {
	if m == nil {
		return fmt.Errorf("visualizer: model is nil")
	}
	derived, err := buildViewState(m, res)
	if err != nil {
		return err
	}
	currentMu.Lock()
	currentState = derived
	currentMu.Unlock()
	return nil
}

func buildViewState(m *lifetable.Model, res *simulator.Result) (*viewState, error) {
	if res != nil {
		if len(res.Counts) != len(m.Ages) {
			return nil, fmt.Errorf("visualizer: result has %d age buckets, model has %d", len(res.Counts), len(m.Ages))
		}
		if res.CohortSize <= 0 {
			return nil, fmt.Errorf("visualizer: result cohort is empty")
		}
	}

	mass := make(map[string][][2]float64, len(m.Groups))
	curves := make(map[string][][2]float64, len(m.Groups))
	expectancy := make([]stratumDatum, 0, len(m.Groups))
	for _, group := range m.Groups {
		row, err := m.Row(group)
		if err != nil {
			return nil, fmt.Errorf("visualizer: stratum %q: %w", group, err)
		}
		points := make([][2]float64, len(row))
		for i, p := range row {
			points[i] = [2]float64{float64(m.Ages[i]), p}
		}
		mass[group] = points

		surv, err := m.Survival(group)
		if err != nil {
			return nil, fmt.Errorf("visualizer: stratum %q: %w", group, err)
		}
		curve := make([][2]float64, 0, len(surv)+1)
		curve = append(curve, [2]float64{float64(m.Ages[0]), 1.0})
		for i, s := range surv {
			curve = append(curve, [2]float64{float64(m.Ages[i] + 1), s})
		}
		curves[group] = curve

		e, err := m.ExpectedAge(group)
		if err != nil {
			return nil, fmt.Errorf("visualizer: stratum %q: %w", group, err)
		}
		expectancy = append(expectancy, stratumDatum{label: group, value: e})
	}
	sort.Slice(expectancy, func(i, j int) bool {
		return expectancy[i].value < expectancy[j].value
	})

	mixture, err := mixtureMass(m, res)
	if err != nil {
		return nil, err
	}
	expected := make([][2]float64, len(mixture))
	for i, q := range mixture {
		expected[i] = [2]float64{float64(m.Ages[i]), q}
	}

	var observed [][2]float64
	if res != nil {
		observed = make([][2]float64, len(res.Counts))
		for i, c := range res.Counts {
			observed[i] = [2]float64{float64(res.Ages[i]), float64(c) / float64(res.CohortSize)}
		}
	}

	bands, progression := computeProgression(m, mixture)

	return &viewState{
		model:       m,
		result:      res,
		mass:        mass,
		curves:      curves,
		expectancy:  expectancy,
		observed:    observed,
		expected:    expected,
		bandLabels:  bands,
		progression: progression,
	}, nil
}

// mixtureMass blends the stratum pmf rows into a single distribution, using
// the simulated cohort composition when a result is loaded and equal weights
// otherwise.
func mixtureMass(m *lifetable.Model, res *simulator.Result) ([]float64, error) {
	mixture := make([]float64, len(m.Ages))
	for _, group := range m.Groups {
		w := 1.0 / float64(len(m.Groups))
		if res != nil {
			w = 0.0
			for _, s := range res.Strata {
				if s.Group == group {
					w = s.Weight
				}
			}
		}
		row, err := m.Row(group)
		if err != nil {
			return nil, fmt.Errorf("visualizer: stratum %q: %w", group, err)
		}
		for i, p := range row {
			mixture[i] += w * p
		}
	}
	return mixture, nil
}

// computeProgression folds the mixture distribution into decade-wide age
// bands and derives the conditional transition probabilities between them.
// The last label is the absorbing state.
func computeProgression(m *lifetable.Model, mixture []float64) ([]string, [][]float64) {
	first := m.Ages[0]
	nBands := (m.TerminalAge()-first)/bandYears + 1
	labels := make([]string, nBands+1)
	for b := 0; b < nBands; b++ {
		labels[b] = fmt.Sprintf("%d-%d", first+b*bandYears, first+(b+1)*bandYears-1)
	}
	labels[nBands] = "Died"

	matrix := make([][]float64, nBands+1)
	for i := range matrix {
		matrix[i] = make([]float64, nBands+1)
	}
	alive := 1.0
	for b := 0; b < nBands; b++ {
		inBand := 0.0
		for i, age := range m.Ages {
			if (age-first)/bandYears == b {
				inBand += mixture[i]
			}
		}
		if alive <= 0.0 {
			break
		}
		pDie := inBand / alive
		if pDie > 1.0 {
			pDie = 1.0
		}
		matrix[b][nBands] = pDie
		if b+1 < nBands {
			matrix[b][b+1] = 1.0 - pDie
		}
		alive -= inBand
	}
	return labels, matrix
}

func currentView() (*viewState, error) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if currentState == nil {
		return nil, fmt.Errorf("visualizer: no life-table model loaded")
	}
	return currentState, nil
}
