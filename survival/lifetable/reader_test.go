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
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalstats/mortsim/survival"
)

const smallTable = `Group,Period,Age,Rate
Male,2015,1,0.02
Male,2015,0,0.01
Female,2015,0,0.015
Female,2015,1,0.025
Male,2014,0,0.011
Female,2014,0,0.016
`

// writeTable stores CSV contents in a fresh temporary file.
func writeTable(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestReadTable_ParsesAndSorts(t *testing.T) {
	table, err := ReadTable(writeTable(t, "rates.csv", smallTable))
	require.NoError(t, err)
	require.Len(t, table.Records, 6)
	// canonical order is (stratum, period, age)
	assert.Equal(t, Record{Group: "Female", Period: 2014, Age: 0, Rate: 0.016}, table.Records[0])
	assert.Equal(t, Record{Group: "Female", Period: 2015, Age: 0, Rate: 0.015}, table.Records[1])
	assert.Equal(t, Record{Group: "Male", Period: 2015, Age: 1, Rate: 0.02}, table.Records[5])
	assert.Equal(t, []string{"Female", "Male"}, table.Groups())
	assert.Equal(t, []int{2014, 2015}, table.Periods())
}

func TestReadTable_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(smallTable))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Len(t, table.Records, 6)
}

func TestReadTable_HeaderOrderIndependent(t *testing.T) {
	contents := "Rate,Age,Group,Period,Comment\n0.25,0,Total,2015,first\n0.5,1,Total,2015,second\n"
	table, err := ReadTable(writeTable(t, "rates.csv", contents))
	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	assert.Equal(t, Record{Group: "Total", Period: 2015, Age: 0, Rate: 0.25}, table.Records[0])
}

func TestReadTable_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"missing column", "Group,Period,Age\nMale,2015,0\n"},
		{"bad period", "Group,Period,Age,Rate\nMale,20x5,0,0.1\n"},
		{"bad age", "Group,Period,Age,Rate\nMale,2015,first,0.1\n"},
		{"bad rate", "Group,Period,Age,Rate\nMale,2015,0,lots\n"},
		{"negative rate", "Group,Period,Age,Rate\nMale,2015,0,-0.1\n"},
		{"NaN rate", "Group,Period,Age,Rate\nMale,2015,0,NaN\n"},
		{"no data rows", "Group,Period,Age,Rate\n"},
		{"duplicate cell", "Group,Period,Age,Rate\nMale,2015,0,0.1\nMale,2015,0,0.2\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadTable(writeTable(t, "bad.csv", test.contents))
			assert.ErrorIs(t, err, survival.ErrMalformedTable)
		})
	}
}

func TestReadTable_BadPaths(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)

	_, err = ReadTable(t.TempDir())
	assert.ErrorContains(t, err, "directory")

	_, err = ReadTable(writeTable(t, "empty.csv", ""))
	assert.ErrorIs(t, err, survival.ErrMalformedTable)

	_, err = ReadTable(writeTable(t, "broken.csv.gz", "not gzip at all"))
	assert.Error(t, err)
}

func TestTable_Select(t *testing.T) {
	table, err := ReadTable(writeTable(t, "rates.csv", smallTable))
	require.NoError(t, err)

	selected, err := table.Select(2015)
	require.NoError(t, err)
	assert.Len(t, selected.Records, 4)
	assert.Equal(t, []int{2015}, selected.Periods())

	_, err = table.Select(1999)
	assert.ErrorIs(t, err, survival.ErrMalformedTable)
}
