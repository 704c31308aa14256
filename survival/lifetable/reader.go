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
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/vitalstats/mortsim/survival"
)

// column names expected in the life-table header, in any order
const (
	groupColumn  = "Group"
	periodColumn = "Period"
	ageColumn    = "Age"
	rateColumn   = "Rate"
)

// ReadTable reads a life table from a CSV file with the header columns
// Group, Period, Age, Rate. A filename ending in .gz is decompressed
// transparently. The records are returned in canonical order; duplicate
// (stratum, period, age) cells are rejected.
func ReadTable(filename string) (table *Table, err error) {
	stat, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("could not stat life table: %s, does it exist? %w", filename, err)
	}
	if stat.IsDir() {
		return nil, errors.New("given path to life table is a directory")
	}
	if stat.Size() == 0 {
		return nil, errors.Wrapf(survival.ErrMalformedTable, "life table %s is empty", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open life table: %s, %w", filename, err)
	}
	defer func(file *os.File) {
		err = errors.Join(err, file.Close())
	}(file)

	var reader io.Reader = file
	if strings.HasSuffix(filename, ".gz") {
		gzipReader, gzErr := gzip.NewReader(file)
		if gzErr != nil {
			return nil, fmt.Errorf("could not create gzip reader for life table: %s, %w", filename, gzErr)
		}
		defer func(gzipReader *gzip.Reader) {
			err = errors.Join(err, gzipReader.Close())
		}(gzipReader)
		reader = gzipReader
	}
	return parseTable(csv.NewReader(reader))
}

// parseTable converts CSV rows into validated life-table records.
func parseTable(r *csv.Reader) (*Table, error) {
	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrapf(survival.ErrMalformedTable, "cannot read header; %v", err)
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{groupColumn, periodColumn, ageColumn, rateColumn} {
		if _, ok := columns[name]; !ok {
			return nil, errors.Wrapf(survival.ErrMalformedTable, "missing column %q in header %v", name, header)
		}
	}

	var records []Record
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(survival.ErrMalformedTable, "line %d: %v", line, err)
		}
		period, err := strconv.Atoi(strings.TrimSpace(row[columns[periodColumn]]))
		if err != nil {
			return nil, errors.Wrapf(survival.ErrMalformedTable, "line %d: bad period %q", line, row[columns[periodColumn]])
		}
		age, err := strconv.Atoi(strings.TrimSpace(row[columns[ageColumn]]))
		if err != nil {
			return nil, errors.Wrapf(survival.ErrMalformedTable, "line %d: bad age %q", line, row[columns[ageColumn]])
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(row[columns[rateColumn]]), 64)
		if err != nil {
			return nil, errors.Wrapf(survival.ErrMalformedTable, "line %d: bad rate %q", line, row[columns[rateColumn]])
		}
		if rate < 0.0 || math.IsNaN(rate) {
			return nil, errors.Wrapf(survival.ErrMalformedTable, "line %d: negative or NaN rate (%v)", line, rate)
		}
		records = append(records, Record{
			Group:  strings.TrimSpace(row[columns[groupColumn]]),
			Period: period,
			Age:    age,
			Rate:   rate,
		})
	}
	if len(records) == 0 {
		return nil, errors.Wrap(survival.ErrMalformedTable, "life table has no data rows")
	}
	sortRecords(records)
	for i := 1; i < len(records); i++ {
		a, b := records[i-1], records[i]
		if a.Group == b.Group && a.Period == b.Period && a.Age == b.Age {
			return nil, errors.Wrapf(survival.ErrMalformedTable, "duplicate cell for stratum %q, period %d, age %d", b.Group, b.Period, b.Age)
		}
	}
	return &Table{Records: records}, nil
}
