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

package simulator

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"github.com/vitalstats/mortsim/survival"
)

// toAgeECDF computes the empirical cumulative distribution function of the
// sampled ages at death from the per-bucket outcome counts. The eCDF is a
// piecewise linear function over real ages starting at (firstAge, 0) and
// reaching (age+1, cumulative share) after each bucket. The full polyline is
// reduced to at most survival.NumECDFPoints points using the
// Visvalingam-Whyatt algorithm. See:
// https://en.wikipedia.org/wiki/Visvalingam-Whyatt_algorithm
func toAgeECDF(ages []int, counts []uint64) [][2]float64 {
	totalFreq := uint64(0)
	for _, freq := range counts {
		totalFreq += freq
	}

	var simplified orb.LineString

	// without outcomes there is nothing to plot
	if len(ages) > 0 && totalFreq > 0 {

		// construct full eCDF as LineString
		ls := orb.LineString{}

		// cumulative share of the cohort dead before the current age
		sumP := float64(0.0)

		// Correction term for Kahan's sum
		cP := float64(0.0)

		// add first point to line string
		ls = append(ls, orb.Point{float64(ages[0]), 0.0})

		// iterate through all age buckets
		for i, age := range ages {
			// Implement Kahan's summation to avoid errors
			// for accumulated shares (they might be very small)
			// https://en.wikipedia.org/wiki/Kahan_summation_algorithm
			f := float64(counts[i]) / float64(totalFreq)

			yP := f - cP
			tP := sumP + yP
			cP = (tP - sumP) - yP
			sumP = tP

			// add new point to eCDF
			ls = append(ls, orb.Point{float64(age) + 1.0, sumP})
		}

		// reduce full eCDF using Visvalingam-Whyatt algorithm to
		// "NumECDFPoints" points. See:
		// https://en.wikipedia.org/wiki/Visvalingam-Whyatt_algorithm
		simplifier := simplify.VisvalingamKeep(survival.NumECDFPoints)
		simplified = simplifier.Simplify(ls).(orb.LineString)
	}

	// convert orb.LineString to [][2]float64
	ecdf := make([][2]float64, len(simplified))
	for i := range simplified {
		ecdf[i] = [2]float64(simplified[i])
	}
	return ecdf
}
