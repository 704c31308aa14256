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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalstats/mortsim/survival"
)

const modelTable = `Group,Period,Age,Rate
Male,2015,0,0.01
Male,2015,1,0.02
Male,2015,2,0.03
Female,2015,0,0.008
Female,2015,1,0.016
Female,2015,2,0.024
`

func buildTestModel(t *testing.T) *Model {
	t.Helper()
	table, err := ReadTable(writeTable(t, "rates.csv", modelTable))
	require.NoError(t, err)
	m, err := BuildModel(table)
	require.NoError(t, err)
	return m
}

func TestModel_Build(t *testing.T) {
	m := buildTestModel(t)
	assert.Equal(t, []string{"Female", "Male"}, m.Groups)
	assert.Equal(t, []int{0, 1, 2, 3}, m.Ages)
	assert.Equal(t, 3, m.TerminalAge())
	assert.Equal(t, []float64{0.0, 1.0, 2.0, 3.0}, m.Categories())

	row, err := m.Row("Male")
	require.NoError(t, err)
	require.Len(t, row, 4)
	total := 0.0
	for _, p := range row {
		total += p
	}
	assert.InDelta(t, 1.0, total, survival.SumTolerance)
	assert.InDelta(t, math.Exp(-0.06), row[3], 1e-12)

	mean, err := m.ExpectedAge("Male")
	require.NoError(t, err)
	assert.InDelta(t, 2.9023, mean, 1e-3)

	surv, err := m.Survival("Male")
	require.NoError(t, err)
	require.Len(t, surv, 3)
	assert.InDelta(t, math.Exp(-0.01), surv[0], 1e-12)
	assert.True(t, surv[0] >= surv[1] && surv[1] >= surv[2], "survival must be non-increasing")
}

func TestModel_RowsForSharesBackingRows(t *testing.T) {
	m := buildTestModel(t)
	rows, err := m.RowsFor([]string{"Male", "Male", "Female"})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, &rows[0][0] == &rows[1][0], "repeated strata must alias one backing row")
	assert.False(t, &rows[0][0] == &rows[2][0], "distinct strata must not alias")

	_, err = m.RowsFor([]string{"Male", "Unknown"})
	assert.ErrorContains(t, err, "unknown stratum")
}

func TestModel_BuildRejects(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		_, err := BuildModel(&Table{})
		assert.ErrorIs(t, err, survival.ErrMalformedTable)
	})
	t.Run("mixed periods", func(t *testing.T) {
		table, err := ReadTable(writeTable(t, "rates.csv", smallTable))
		require.NoError(t, err)
		_, err = BuildModel(table)
		assert.ErrorIs(t, err, survival.ErrMalformedTable)
	})
	t.Run("ragged axes", func(t *testing.T) {
		contents := "Group,Period,Age,Rate\nMale,2015,0,0.1\nMale,2015,1,0.1\nFemale,2015,0,0.1\n"
		table, err := ReadTable(writeTable(t, "rates.csv", contents))
		require.NoError(t, err)
		_, err = BuildModel(table)
		assert.ErrorIs(t, err, survival.ErrShapeMismatch)
	})
}

func TestModel_WriteAndRead(t *testing.T) {
	m := buildTestModel(t)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, m.Write(path))

	got, err := ReadModel(path)
	require.NoError(t, err)
	assert.Equal(t, ModelFileId, got.FileId)
	assert.Equal(t, m.Period, got.Period)
	assert.Equal(t, m.Groups, got.Groups)
	assert.Equal(t, m.Ages, got.Ages)
	assert.Equal(t, m.Mass, got.Mass)

	// the stratum index must be usable after reading
	row, err := got.Row("Female")
	require.NoError(t, err)
	assert.Len(t, row, 4)
}

func TestModel_ReadRejects(t *testing.T) {
	t.Run("foreign document", func(t *testing.T) {
		path := writeTable(t, "foreign.json", `{"FileId": "state"}`)
		_, err := ReadModel(path)
		assert.ErrorContains(t, err, "not a life-table model")
	})
	t.Run("unnormalized row", func(t *testing.T) {
		doc := `{"FileId":"lifetable-model","period":2015,"groups":["X"],"ages":[0,1],"mass":[[0.2,0.2]]}`
		path := writeTable(t, "drifted.json", doc)
		_, err := ReadModel(path)
		assert.ErrorIs(t, err, survival.ErrNormalization)
	})
	t.Run("ragged row", func(t *testing.T) {
		doc := `{"FileId":"lifetable-model","period":2015,"groups":["X"],"ages":[0,1],"mass":[[1.0]]}`
		path := writeTable(t, "ragged.json", doc)
		_, err := ReadModel(path)
		assert.ErrorIs(t, err, survival.ErrShapeMismatch)
	})
	t.Run("duplicate stratum", func(t *testing.T) {
		doc := `{"FileId":"lifetable-model","period":2015,"groups":["X","X"],"ages":[0,1],"mass":[[0.5,0.5],[0.5,0.5]]}`
		path := writeTable(t, "dup.json", doc)
		_, err := ReadModel(path)
		assert.ErrorIs(t, err, survival.ErrMalformedTable)
	})
}
