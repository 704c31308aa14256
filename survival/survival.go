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

// Package survival holds the constants and the error taxonomy shared by the
// life-table estimation, sampling, and simulation packages.
package survival

const (
	// SumTolerance is the maximum absolute deviation from one that the total
	// mass of a probability mass function may exhibit. Estimation treats a
	// larger deviation as a hard failure; sampling rescales the row instead.
	SumTolerance = 1e-8

	// NumECDFPoints is the maximum number of points kept when an empirical
	// cumulative distribution function is compressed for reporting and
	// visualization.
	NumECDFPoints = 300

	// TerminalLabel names the synthetic bucket that collects the mass of
	// individuals surviving past the observed horizon.
	TerminalLabel = "survived horizon"
)
