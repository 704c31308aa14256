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

import "github.com/cockroachdb/errors"

// Input errors are fatal. Estimation and sampling abort on the first
// violation; none of these is retried or downgraded to a warning.
var (
	// ErrMalformedTable marks structurally invalid life-table input: empty
	// tables or strata, NaN or negative hazard increments, gaps or
	// duplicates in the age axis, missing columns.
	ErrMalformedTable = errors.New("malformed life table")

	// ErrNormalization marks probability mass that cannot be coerced into a
	// distribution: negative or NaN entries, rows without positive mass, or
	// a completed PMF whose total departs from one beyond SumTolerance.
	ErrNormalization = errors.New("probability mass not normalized")

	// ErrInvalidCorrection marks an unknown correction mode. Sampling with
	// an unrecognized mode must not fall through to uncorrected output.
	ErrInvalidCorrection = errors.New("invalid correction mode")

	// ErrShapeMismatch marks dimension disagreement between a probability
	// matrix, its category labels, or the strata of a model.
	ErrShapeMismatch = errors.New("shape mismatch")
)
