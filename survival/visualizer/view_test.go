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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalstats/mortsim/survival/lifetable"
)

func TestSetViewStateRejectsNilModel(t *testing.T) {
	err := setViewState(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model is nil")
}

func TestSetViewStatePropagatesBuildError(t *testing.T) {
	// a hand-built model never resolved its stratum index
	m := &lifetable.Model{
		Groups: []string{"Total"},
		Ages:   []int{0, 1, 2},
	}
	err := setViewState(m, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stratum")
}

func TestBuildViewStateRejectsMismatchedResult(t *testing.T) {
	m := sampleModel(t)
	res := sampleResult(m)
	res.Counts = []uint64{1, 2}
	_, err := buildViewState(m, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age buckets")
}

func TestBuildViewStateRejectsEmptyCohort(t *testing.T) {
	m := sampleModel(t)
	res := sampleResult(m)
	res.CohortSize = 0
	_, err := buildViewState(m, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cohort is empty")
}

func TestBuildViewStateDerivesSeries(t *testing.T) {
	m := sampleModel(t)
	view, err := buildViewState(m, nil)
	require.NoError(t, err)

	require.Len(t, view.mass, 2)
	require.Len(t, view.curves, 2)
	assert.Nil(t, view.observed)

	male := view.mass["Male"]
	require.Len(t, male, len(m.Ages))
	assert.InDelta(t, 1.0-math.Exp(-0.01), male[0][1], 1e-12)

	curve := view.curves["Male"]
	require.Len(t, curve, len(m.Ages))
	assert.Equal(t, [2]float64{0.0, 1.0}, curve[0])
	assert.InDelta(t, math.Exp(-0.01), curve[1][1], 1e-12)

	// female mortality is lower, so male life expectancy sorts first
	require.Len(t, view.expectancy, 2)
	assert.Equal(t, "Male", view.expectancy[0].label)
	assert.Equal(t, "Female", view.expectancy[1].label)
	assert.Less(t, view.expectancy[0].value, view.expectancy[1].value)
}

func TestBuildViewStateDerivesObservedShares(t *testing.T) {
	m := sampleModel(t)
	res := sampleResult(m)
	view, err := buildViewState(m, res)
	require.NoError(t, err)

	require.Len(t, view.observed, len(m.Ages))
	assert.Equal(t, [2]float64{0.0, 0.02}, view.observed[0])
	assert.Equal(t, [2]float64{3.0, 0.9}, view.observed[3])
}

func TestMixtureMassBlendsStrata(t *testing.T) {
	m := sampleModel(t)

	// without a result every stratum carries equal weight
	equal, err := mixtureMass(m, nil)
	require.NoError(t, err)
	female, err := m.Row("Female")
	require.NoError(t, err)
	male, err := m.Row("Male")
	require.NoError(t, err)
	for i := range equal {
		assert.InDelta(t, 0.5*female[i]+0.5*male[i], equal[i], 1e-12)
	}

	// a loaded result pins the weights to the simulated composition
	res := sampleResult(m)
	res.Strata[0].Weight = 1.0
	res.Strata[1].Weight = 0.0
	pinned, err := mixtureMass(m, res)
	require.NoError(t, err)
	for i := range pinned {
		assert.InDelta(t, female[i], pinned[i], 1e-12)
	}
}

func TestComputeProgressionSplitsBands(t *testing.T) {
	m := &lifetable.Model{
		Ages: []int{95, 96, 97, 98, 99, 100, 101, 102, 103, 104, 105},
	}
	mixture := []float64{0.1, 0.05, 0.05, 0.05, 0.05, 0.02, 0.02, 0.02, 0.02, 0.02, 0.6}

	labels, matrix := computeProgression(m, mixture)

	require.Equal(t, []string{"95-104", "105-114", "Died"}, labels)
	require.Len(t, matrix, 3)
	assert.InDelta(t, 0.4, matrix[0][2], 1e-12)
	assert.InDelta(t, 0.6, matrix[0][1], 1e-12)
	assert.InDelta(t, 1.0, matrix[1][2], 1e-12)
	assert.Zero(t, matrix[2][0])
	assert.Zero(t, matrix[2][1])
	assert.Zero(t, matrix[2][2])
}

func TestComputeProgressionSingleBand(t *testing.T) {
	m := sampleModel(t)
	mixture, err := mixtureMass(m, nil)
	require.NoError(t, err)

	labels, matrix := computeProgression(m, mixture)

	require.Equal(t, []string{"0-9", "Died"}, labels)
	assert.InDelta(t, 1.0, matrix[0][1], 1e-9)
}

func TestCurrentViewWithoutState(t *testing.T) {
	clearView(t)
	_, err := currentView()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no life-table model loaded")
}
