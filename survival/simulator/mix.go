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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vitalstats/mortsim/survival"
	"gonum.org/v1/gonum/floats"
)

// Mix describes the composition of a synthetic cohort as mixing weights over
// the strata of a life-table model.
type Mix struct {
	Labels  []string  // stratum labels, resolved against the model
	Weights []float64 // mixing weights, positive and summing to one
}

// ParseMix parses a cohort composition specification against the available
// strata of a model. The empty specification mixes all strata with equal
// weights. Otherwise the specification is a comma-separated list of stratum
// names, either all plain ("Male,Female" mixes equally) or all weighted
// ("Male=0.3,Female=0.7"). Weights must be positive and sum to one within
// survival.SumTolerance.
func ParseMix(spec string, available []string) (Mix, error) {
	if len(available) == 0 {
		return Mix{}, errors.Wrap(survival.ErrShapeMismatch, "no strata available to mix")
	}
	if spec == "" {
		labels := append([]string{}, available...)
		return Mix{Labels: labels, Weights: equalWeights(len(labels))}, nil
	}
	known := map[string]bool{}
	for _, label := range available {
		known[label] = true
	}
	var (
		labels   []string
		weights  []float64
		weighted bool
	)
	seen := map[string]bool{}
	for i, entry := range strings.Split(spec, ",") {
		name, value, hasWeight := strings.Cut(strings.TrimSpace(entry), "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return Mix{}, errors.Newf("mix entry %d has no stratum name", i+1)
		}
		if !known[name] {
			return Mix{}, errors.Newf("unknown stratum %q; model has %v", name, available)
		}
		if seen[name] {
			return Mix{}, errors.Newf("duplicate stratum %q in mix", name)
		}
		seen[name] = true
		if i == 0 {
			weighted = hasWeight
		} else if hasWeight != weighted {
			return Mix{}, errors.Newf("mix %q must either weight all strata or none", spec)
		}
		labels = append(labels, name)
		if !hasWeight {
			continue
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return Mix{}, errors.Newf("cannot parse weight %q of stratum %q", value, name)
		}
		if w <= 0.0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return Mix{}, errors.Wrapf(survival.ErrNormalization, "invalid weight (%v) for stratum %q", w, name)
		}
		weights = append(weights, w)
	}
	if !weighted {
		return Mix{Labels: labels, Weights: equalWeights(len(labels))}, nil
	}
	if total := floats.Sum(weights); math.Abs(total-1.0) > survival.SumTolerance {
		return Mix{}, errors.Wrapf(survival.ErrNormalization, "mix weights sum to %v, want 1", total)
	}
	return Mix{Labels: labels, Weights: weights}, nil
}

// Homogeneous reports whether the whole cohort belongs to a single stratum.
func (m Mix) Homogeneous() bool {
	return len(m.Labels) == 1
}

// Weight returns the mixing weight of the given stratum, or zero when the
// stratum is not part of the mix.
func (m Mix) Weight(label string) float64 {
	for i, l := range m.Labels {
		if l == label {
			return m.Weights[i]
		}
	}
	return 0.0
}

func (m Mix) String() string {
	parts := make([]string, len(m.Labels))
	for i, label := range m.Labels {
		parts[i] = fmt.Sprintf("%s=%.3f", label, m.Weights[i])
	}
	return strings.Join(parts, ",")
}

// equalWeights spreads unit mass uniformly over n strata.
func equalWeights(n int) []float64 {
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = 1.0 / float64(n)
	}
	return w
}
