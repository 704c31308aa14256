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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/vitalstats/mortsim/survival"
	"github.com/vitalstats/mortsim/survival/statistics/discrete"
)

// ModelFileId identifies life-table model documents on disk.
const ModelFileId = "lifetable-model"

// Model is the wide form of a completed life table: one probability mass row
// per stratum over a shared extended age axis whose last bucket is the
// synthetic horizon bucket. The stratum-to-row mapping is resolved once when
// the model is built or read.
type Model struct {
	FileId string      `json:"FileId"` // file identification
	Period int         `json:"period"` // calendar period of the source table
	Groups []string    `json:"groups"` // stratum labels, one per mass row
	Ages   []int       `json:"ages"`   // extended age axis incl. terminal bucket
	Mass   [][]float64 `json:"mass"`   // completed pmf rows

	rows map[string]int // stratum label -> row index
}

// BuildModel derives a completed probability mass function for every stratum
// of the table and assembles them into the wide matrix. The table must hold a
// single calendar period and all strata must share one age axis.
func BuildModel(t *Table) (*Model, error) {
	if t == nil || len(t.Records) == 0 {
		return nil, errors.Wrap(survival.ErrMalformedTable, "life table is empty")
	}
	periods := t.Periods()
	if len(periods) != 1 {
		return nil, errors.Wrapf(survival.ErrMalformedTable, "table spans periods %v; select a single period first", periods)
	}
	byGroup := map[string][]Record{}
	for _, r := range t.Records {
		byGroup[r.Group] = append(byGroup[r.Group], r)
	}
	m := &Model{
		FileId: ModelFileId,
		Period: periods[0],
	}
	for _, group := range t.Groups() {
		recs := byGroup[group]
		ages := make([]int, len(recs))
		rates := make([]float64, len(recs))
		for i, r := range recs {
			ages[i] = r.Age
			rates[i] = r.Rate
		}
		curve, err := NewCurve(ages, rates)
		if err != nil {
			return nil, errors.Wrapf(err, "stratum %q", group)
		}
		pmf, err := curve.Complete()
		if err != nil {
			return nil, errors.Wrapf(err, "stratum %q", group)
		}
		if m.Ages == nil {
			m.Ages = pmf.Ages
		} else if !equalAxis(m.Ages, pmf.Ages) {
			return nil, errors.Wrapf(survival.ErrShapeMismatch, "stratum %q has age axis %v, want %v", group, pmf.Ages, m.Ages)
		}
		m.Groups = append(m.Groups, group)
		m.Mass = append(m.Mass, pmf.Mass)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func equalAxis(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// validate checks the document invariants and resolves the stratum index.
func (m *Model) validate() error {
	if len(m.Groups) == 0 || len(m.Groups) != len(m.Mass) {
		return errors.Wrapf(survival.ErrShapeMismatch, "%d strata vs %d mass rows", len(m.Groups), len(m.Mass))
	}
	if len(m.Ages) < 2 {
		return errors.Wrapf(survival.ErrShapeMismatch, "age axis too short (%d)", len(m.Ages))
	}
	m.rows = map[string]int{}
	for i, group := range m.Groups {
		if _, ok := m.rows[group]; ok {
			return errors.Wrapf(survival.ErrMalformedTable, "duplicate stratum %q", group)
		}
		if len(m.Mass[i]) != len(m.Ages) {
			return errors.Wrapf(survival.ErrShapeMismatch, "stratum %q has %d masses for %d age buckets", group, len(m.Mass[i]), len(m.Ages))
		}
		if err := discrete.Check(m.Mass[i]); err != nil {
			return errors.Wrapf(err, "stratum %q", group)
		}
		m.rows[group] = i
	}
	return nil
}

// Row returns the completed pmf row of the given stratum.
func (m *Model) Row(group string) ([]float64, error) {
	i, ok := m.rows[group]
	if !ok {
		return nil, errors.Newf("unknown stratum %q; model has %v", group, m.Groups)
	}
	return m.Mass[i], nil
}

// RowsFor gathers one pmf row per individual for the given stratum
// assignment. The returned rows alias the model's storage, so individuals of
// the same stratum share a single backing row.
func (m *Model) RowsFor(groups []string) ([][]float64, error) {
	rows := make([][]float64, len(groups))
	for i, group := range groups {
		row, err := m.Row(group)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return rows, nil
}

// Categories returns the age labels of the extended axis as sampling categories.
func (m *Model) Categories() []float64 {
	categories := make([]float64, len(m.Ages))
	for i, age := range m.Ages {
		categories[i] = float64(age)
	}
	return categories
}

// TerminalAge returns the label of the synthetic horizon bucket.
func (m *Model) TerminalAge() int {
	return m.Ages[len(m.Ages)-1]
}

// ExpectedAge returns the expected age at death of a stratum under its
// completed distribution, with the horizon bucket counted at its label.
func (m *Model) ExpectedAge(group string) (float64, error) {
	row, err := m.Row(group)
	if err != nil {
		return 0.0, err
	}
	mean := 0.0
	for i, p := range row {
		mean += float64(m.Ages[i]) * p
	}
	return mean, nil
}

// Survival reconstructs the survival column S(t) of a stratum over the
// observed age axis from its completed mass row.
func (m *Model) Survival(group string) ([]float64, error) {
	row, err := m.Row(group)
	if err != nil {
		return nil, err
	}
	n := len(row) - 1
	surv := make([]float64, n)
	remaining := 1.0
	for i := 0; i < n; i++ {
		remaining -= row[i]
		if remaining < 0.0 {
			remaining = 0.0
		}
		surv[i] = remaining
	}
	return surv, nil
}

// Write stores the model in a file in JSON format.
func (m *Model) Write(filename string) (err error) {
	f, fErr := os.Create(filename)
	if fErr != nil {
		return fmt.Errorf("cannot open JSON file; %v", fErr)
	}
	defer func(f *os.File) {
		err = errors.Join(err, f.Close())
	}(f)
	jOut, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to convert JSON file; %v", err)
	}
	_, err = fmt.Fprintln(f, string(jOut))
	if err != nil {
		return fmt.Errorf("failed to write JSON file; %v", err)
	}
	return nil
}

// ReadModel reads a model from a file in JSON format and re-validates every
// probability row before use.
func ReadModel(filename string) (m *Model, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed opening model file %v; %v", filename, err)
	}
	defer func(file *os.File) {
		err = errors.Join(err, file.Close())
	}(file)
	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed reading model file; %v", err)
	}
	var model Model
	err = json.Unmarshal(contents, &model)
	if err != nil {
		return nil, fmt.Errorf("cannot unmarshal model; %v", err)
	}
	if model.FileId != ModelFileId {
		return nil, fmt.Errorf("file %v is not a life-table model file", filename)
	}
	if err := model.validate(); err != nil {
		return nil, err
	}
	return &model, nil
}
