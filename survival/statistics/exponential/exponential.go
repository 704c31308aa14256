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

package exponential

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/vitalstats/mortsim/survival"
	"github.com/vitalstats/mortsim/survival/statistics/discrete"
	"gonum.org/v1/gonum/stat/distuv"
)

// Package for the exponential distribution with a constant hazard rate,
// discretized onto an integer grid. It provides the analytic reference
// values for validating simulated cohorts against a known distribution.

// CDF is the cumulative distribution function of the exponential
// distribution with given rate.
func CDF(rate float64, x float64) float64 {
	return distuv.Exponential{Rate: rate}.CDF(x)
}

// PMF discretizes the exponential distribution with the given rate onto the
// integer grid 0..n-1. Bucket i receives the mass CDF(i+1)-CDF(i); the masses
// are then rescaled so that the truncated horizon carries a total mass of one.
func PMF(rate float64, n int) ([]float64, error) {
	if rate <= 0.0 || math.IsNaN(rate) {
		return nil, errors.Wrapf(survival.ErrMalformedTable, "hazard rate must be positive (%v)", rate)
	}
	if n < 1 {
		return nil, errors.Wrapf(survival.ErrShapeMismatch, "horizon must have at least one bucket (%d)", n)
	}
	dist := distuv.Exponential{Rate: rate}
	f := make([]float64, n)
	for i := 0; i < n; i++ {
		f[i] = dist.CDF(float64(i+1)) - dist.CDF(float64(i))
	}
	return discrete.Rescale(f)
}

// Mean is the expected value 1/rate of the continuous distribution.
func Mean(rate float64) float64 {
	return 1.0 / rate
}

// Median is the median ln(2)/rate of the continuous distribution.
func Median(rate float64) float64 {
	return math.Ln2 / rate
}

// Quantile is the p-quantile -ln(1-p)/rate of the continuous distribution.
func Quantile(rate float64, p float64) float64 {
	return distuv.Exponential{Rate: rate}.Quantile(p)
}

// StdDev is the standard deviation 1/rate of the continuous distribution.
func StdDev(rate float64) float64 {
	return 1.0 / rate
}
