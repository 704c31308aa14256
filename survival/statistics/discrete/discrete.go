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

package discrete

import (
	"math"
	"math/rand"

	"github.com/cockroachdb/errors"
	"github.com/vitalstats/mortsim/survival"
	"gonum.org/v1/gonum/floats"
)

// Check reports whether the given probability mass function (pmf) of a
// discrete finite random variable is valid. A valid pmf has all
// probabilities in the range [0,1] and a total mass of one within
// survival.SumTolerance.
func Check(f []float64) error {
	total := 0.0
	for i := 0; i < len(f); i++ {
		x := f[i]
		if x < 0.0 || x > 1.0 || math.IsNaN(x) {
			return errors.Wrapf(survival.ErrNormalization, "invalid probability (%v) in the pmf", x)
		}
		total += x
	}
	if math.Abs(total-1.0) > survival.SumTolerance {
		return errors.Wrapf(survival.ErrNormalization, "total mass is not one (%v)", total)
	}
	return nil
}

// Quantile computes the quantile (inverse CDF) for a discrete finite random
// variable given by a probability mass function (pmf). For a probability u in
// the range [0,1], it returns the first index whose cumulative probability
// reaches u. If rounding leaves the accumulated mass short of u at the end of
// the pmf, the last index with positive probability is returned. If all
// probabilities are zero, it returns 0.
func Quantile(f []float64, u float64) int {
	sum := 0.0 // Kahan's summation algorithm for the probability sum
	c := 0.0   // compensation term of Kahan's algorithm
	lastPositive := -1
	for i := 0; i < len(f); i++ {
		p := f[i]
		y := p - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		if u <= sum {
			return i
		}
		if f[i] > 0.0 {
			lastPositive = i
		}
	}
	if lastPositive != -1 {
		return lastPositive
	}
	return 0 // default position if all probabilities are zero
}

// Sample the discrete finite random variable defined by the given probability
// mass function (pmf). It draws one uniform random number in the range [0,1]
// from the provided generator and maps it through the Quantile function.
func Sample(rg *rand.Rand, f []float64) int {
	return Quantile(f, rg.Float64())
}

// Rescale divides the given mass vector by its own total so that it becomes a
// pmf. It fails when the total is not a positive finite number or when an
// entry is negative or NaN; such mass cannot be coerced into a distribution.
func Rescale(f []float64) ([]float64, error) {
	for i := 0; i < len(f); i++ {
		if f[i] < 0.0 || math.IsNaN(f[i]) {
			return nil, errors.Wrapf(survival.ErrNormalization, "invalid mass (%v) at index %d", f[i], i)
		}
	}
	total := floats.Sum(f)
	if total <= 0.0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return nil, errors.Wrapf(survival.ErrNormalization, "mass vector has no positive total (%v)", total)
	}
	scaled := make([]float64, len(f))
	for i := 0; i < len(f); i++ {
		scaled[i] = f[i] / total
	}
	return scaled, nil
}

// Mean computes the expected value of a pmf over its index axis, i.e. the sum
// of i*f[i]. For a completed life-table row this is the expected age bucket.
func Mean(f []float64) float64 {
	mean := 0.0
	for i := 0; i < len(f); i++ {
		mean += float64(i) * f[i]
	}
	return mean
}
