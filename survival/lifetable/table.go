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

// Package lifetable turns per-stratum life-table hazard increments into
// complete probability mass functions over an extended age axis with a
// synthetic terminal bucket, and persists the resulting model.
package lifetable

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/vitalstats/mortsim/survival"
)

// Record is one life-table observation: the hazard increment of one age
// bucket in one stratum and calendar period.
type Record struct {
	Group  string  // stratum label, e.g. "Male"
	Period int     // calendar period the rate was observed in
	Age    int     // age bucket in years
	Rate   float64 // hazard increment of the bucket
}

// Table is a collection of life-table records sorted by stratum, period and age.
type Table struct {
	Records []Record
}

// Select restricts the table to the records of one calendar period.
func (t *Table) Select(period int) (*Table, error) {
	var records []Record
	for _, r := range t.Records {
		if r.Period == period {
			records = append(records, r)
		}
	}
	if len(records) == 0 {
		return nil, errors.Wrapf(survival.ErrMalformedTable, "no records for period %d", period)
	}
	return &Table{Records: records}, nil
}

// Groups returns the distinct stratum labels of the table in sorted order.
func (t *Table) Groups() []string {
	seen := map[string]bool{}
	groups := []string{}
	for _, r := range t.Records {
		if !seen[r.Group] {
			seen[r.Group] = true
			groups = append(groups, r.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

// Periods returns the distinct calendar periods of the table in ascending order.
func (t *Table) Periods() []int {
	seen := map[int]bool{}
	periods := []int{}
	for _, r := range t.Records {
		if !seen[r.Period] {
			seen[r.Period] = true
			periods = append(periods, r.Period)
		}
	}
	sort.Ints(periods)
	return periods
}

// sortRecords establishes the canonical record order of a table.
func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.Age < b.Age
	})
}
