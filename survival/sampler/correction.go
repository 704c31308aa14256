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

package sampler

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vitalstats/mortsim/survival"
)

// Correction selects the post-processing applied to sampled categories.
type Correction int

const (
	// NoCorrection emits the sampled category label unchanged.
	NoCorrection Correction = iota

	// UniformCorrection adds the row's own uniform draw to the sampled
	// label, spreading integer buckets over the continuous interval
	// [label, label+1) without consuming a second random number.
	UniformCorrection
)

// ParseCorrection maps the textual spelling of a correction mode onto its
// enumeration value. An unknown spelling is rejected; sampling must never
// proceed with an unrecognized mode.
func ParseCorrection(s string) (Correction, error) {
	switch s {
	case "none":
		return NoCorrection, nil
	case "uniform":
		return UniformCorrection, nil
	default:
		return NoCorrection, errors.Wrapf(survival.ErrInvalidCorrection, "unknown mode %q; valid modes are none, uniform", s)
	}
}

func (c Correction) String() string {
	switch c {
	case NoCorrection:
		return "none"
	case UniformCorrection:
		return "uniform"
	default:
		return fmt.Sprintf("invalid(%d)", int(c))
	}
}
