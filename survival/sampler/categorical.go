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

// Package sampler draws categorical outcomes from row-stochastic probability
// matrices by inverse transform sampling. One matrix row describes the
// distribution of one individual; sampling a cohort consumes exactly one
// uniform number per row from an injected random source.
package sampler

import (
	"math"
	"math/rand"

	"github.com/cockroachdb/errors"
	"github.com/vitalstats/mortsim/survival"
	"gonum.org/v1/gonum/floats"
)

// Draw samples one category per row of the probability matrix. Rows whose
// total mass drifted from one by more than survival.SumTolerance are rescaled
// by their own total; the rescale is folded into the per-row threshold, so
// aliased rows are never written to. Each row consumes a single uniform draw:
// the selected category is the first one whose cumulative mass reaches the
// (scaled) draw, clamped to the last positive-mass category when rounding
// leaves the final cumulative mass short. With a nil categories slice the
// labels default to the column indices. The whole pass is O(rows x columns).
func Draw(rg *rand.Rand, pmfs [][]float64, categories []float64, correction Correction) ([]float64, error) {
	if correction != NoCorrection && correction != UniformCorrection {
		return nil, errors.Wrapf(survival.ErrInvalidCorrection, "correction mode %v", correction)
	}
	nRows := len(pmfs)
	if nRows == 0 {
		return nil, errors.Wrap(survival.ErrShapeMismatch, "probability matrix has no rows")
	}
	nCols := len(pmfs[0])
	if nCols == 0 {
		return nil, errors.Wrap(survival.ErrShapeMismatch, "probability matrix has no columns")
	}
	if categories == nil {
		categories = defaultCategories(nCols)
	}
	if len(categories) != nCols {
		return nil, errors.Wrapf(survival.ErrShapeMismatch, "%d category labels for %d matrix columns", len(categories), nCols)
	}

	// Validate the whole matrix before consuming any randomness; failures
	// are fatal and must not leave a partially advanced random source.
	totals := make([]float64, nRows)
	for r, row := range pmfs {
		if len(row) != nCols {
			return nil, errors.Wrapf(survival.ErrShapeMismatch, "row %d has %d columns, want %d", r, len(row), nCols)
		}
		for i, p := range row {
			if p < 0.0 || math.IsNaN(p) {
				return nil, errors.Wrapf(survival.ErrNormalization, "row %d has invalid mass (%v) at column %d", r, p, i)
			}
		}
		total := floats.Sum(row)
		if total <= 0.0 || math.IsInf(total, 0) {
			return nil, errors.Wrapf(survival.ErrNormalization, "row %d has no positive total mass (%v)", r, total)
		}
		if math.Abs(total-1.0) > survival.SumTolerance {
			totals[r] = total
		} else {
			totals[r] = 1.0
		}
	}

	out := make([]float64, nRows)
	for r, row := range pmfs {
		u := rg.Float64()
		k := quantile(row, u*totals[r])
		if correction == UniformCorrection {
			out[r] = categories[k] + u
		} else {
			out[r] = categories[k]
		}
	}
	return out, nil
}

// Choice draws n independent samples from a single labeled distribution.
// It applies the same rescale and clamping rules as Draw and consumes one
// uniform draw per sample.
func Choice(rg *rand.Rand, labels []string, weights []float64, n int) ([]string, error) {
	if len(labels) == 0 {
		return nil, errors.Wrap(survival.ErrShapeMismatch, "no labels to choose from")
	}
	if len(labels) != len(weights) {
		return nil, errors.Wrapf(survival.ErrShapeMismatch, "%d labels vs %d weights", len(labels), len(weights))
	}
	if n < 0 {
		return nil, errors.Wrapf(survival.ErrShapeMismatch, "negative sample count (%d)", n)
	}
	for i, w := range weights {
		if w < 0.0 || math.IsNaN(w) {
			return nil, errors.Wrapf(survival.ErrNormalization, "invalid weight (%v) for label %q", w, labels[i])
		}
	}
	total := floats.Sum(weights)
	if total <= 0.0 || math.IsInf(total, 0) {
		return nil, errors.Wrapf(survival.ErrNormalization, "weights have no positive total mass (%v)", total)
	}
	if math.Abs(total-1.0) <= survival.SumTolerance {
		total = 1.0
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = labels[quantile(weights, rg.Float64()*total)]
	}
	return out, nil
}

// quantile returns the first index whose cumulative mass reaches the target,
// skipping leading zero-mass buckets when the target is zero. The cumulative
// mass is accumulated with Kahan compensation; if rounding leaves the total
// short of the target, the last positive-mass index is returned. The caller
// guarantees at least one positive mass.
func quantile(row []float64, target float64) int {
	sum := 0.0
	c := 0.0 // compensation term of Kahan's algorithm
	lastPositive := 0
	for i := 0; i < len(row); i++ {
		p := row[i]
		y := p - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		if target <= sum && p > 0.0 {
			return i
		}
		if p > 0.0 {
			lastPositive = i
		}
	}
	return lastPositive
}

// defaultCategories labels matrix columns with their indices.
func defaultCategories(n int) []float64 {
	categories := make([]float64, n)
	for i := 0; i < n; i++ {
		categories[i] = float64(i)
	}
	return categories
}
