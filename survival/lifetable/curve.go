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

package lifetable

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/vitalstats/mortsim/survival"
	"github.com/vitalstats/mortsim/survival/statistics/discrete"
)

// Curve holds the life-table columns of one stratum, derived from its hazard
// increments in age order: the cumulative hazard H(t) as a running sum, the
// survival probability S(t) = exp(-H(t)), the cumulative failure probability
// F(t) = 1 - S(t), and the probability mass p(t) = F(t) - F(t-1) of dying in
// bucket t, with p(0) = F(0).
type Curve struct {
	Ages       []int     // observed age buckets, consecutive integers
	Rates      []float64 // hazard increments h(t)
	Cumulative []float64 // cumulative hazard H(t)
	Survival   []float64 // survival probability S(t)
	Failure    []float64 // cumulative failure probability F(t)
	Mass       []float64 // probability mass p(t) over the observed buckets
}

// PMF is a completed probability mass function over the extended age axis of
// one stratum. The last bucket is synthetic and collects the mass of
// individuals surviving past the observed horizon; the total mass is one.
type PMF struct {
	Ages []int
	Mass []float64
}

// TerminalMass returns the mass of the synthetic horizon bucket.
func (p PMF) TerminalMass() float64 {
	return p.Mass[len(p.Mass)-1]
}

// NewCurve derives the life-table columns from the hazard increments observed
// at the given age buckets. The increments must be listed in time order and
// the age axis must be gapless and non-negative; a NaN, negative or infinite
// increment is a malformed table.
func NewCurve(ages []int, rates []float64) (Curve, error) {
	if len(ages) != len(rates) {
		return Curve{}, errors.Wrapf(survival.ErrShapeMismatch, "%d age buckets vs %d hazard increments", len(ages), len(rates))
	}
	n := len(rates)
	if n == 0 {
		return Curve{}, errors.Wrap(survival.ErrMalformedTable, "stratum has no hazard increments")
	}
	if ages[0] < 0 {
		return Curve{}, errors.Wrapf(survival.ErrMalformedTable, "age axis starts at %d", ages[0])
	}
	for i := 0; i < n; i++ {
		if i > 0 && ages[i] != ages[i-1]+1 {
			return Curve{}, errors.Wrapf(survival.ErrMalformedTable, "age axis has a gap between %d and %d", ages[i-1], ages[i])
		}
		if rates[i] < 0.0 || math.IsNaN(rates[i]) || math.IsInf(rates[i], 0) {
			return Curve{}, errors.Wrapf(survival.ErrMalformedTable, "invalid hazard increment (%v) at age %d", rates[i], ages[i])
		}
	}
	cumulative := make([]float64, n)
	surv := make([]float64, n)
	failure := make([]float64, n)
	mass := make([]float64, n)
	h := 0.0
	prev := 0.0
	for i := 0; i < n; i++ {
		h += rates[i]
		cumulative[i] = h
		surv[i] = math.Exp(-h)
		failure[i] = 1.0 - surv[i]
		mass[i] = failure[i] - prev
		prev = failure[i]
	}
	return Curve{
		Ages:       ages,
		Rates:      rates,
		Cumulative: cumulative,
		Survival:   surv,
		Failure:    failure,
		Mass:       mass,
	}, nil
}

// Complete extends the curve's mass with the synthetic terminal bucket
// 1 - F(last) and verifies that the result is a distribution. Negative
// masses within rounding noise are clamped to zero; a larger violation is a
// normalization failure and is never silently rescaled away.
func (c Curve) Complete() (PMF, error) {
	n := len(c.Mass)
	if n == 0 {
		return PMF{}, errors.Wrap(survival.ErrMalformedTable, "curve has no mass column")
	}
	mass := make([]float64, n+1)
	copy(mass, c.Mass)
	mass[n] = 1.0 - c.Failure[n-1]
	for i := range mass {
		if mass[i] < 0.0 {
			if mass[i] < -survival.SumTolerance {
				return PMF{}, errors.Wrapf(survival.ErrNormalization, "negative mass (%v) at bucket %d", mass[i], i)
			}
			mass[i] = 0.0
		}
	}
	if err := discrete.Check(mass); err != nil {
		return PMF{}, err
	}
	ages := make([]int, n+1)
	copy(ages, c.Ages)
	ages[n] = c.Ages[n-1] + 1
	return PMF{Ages: ages, Mass: mass}, nil
}
