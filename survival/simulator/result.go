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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
)

// ResultFileId identifies simulation result documents on disk.
const ResultFileId = "simulation-result"

// StratumSummary holds the aggregated outcome statistics of one stratum of a
// simulated cohort.
type StratumSummary struct {
	Group         string  `json:"group"`
	Weight        float64 `json:"weight"` // mixing weight in the cohort
	Count         int     `json:"count"`  // individuals assigned to the stratum
	Mean          float64 `json:"mean"`
	Median        float64 `json:"median"`
	StdDev        float64 `json:"stdDev"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Q025          float64 `json:"q025"`          // 2.5% outcome quantile
	Q975          float64 `json:"q975"`          // 97.5% outcome quantile
	ExpectedMean  float64 `json:"expectedMean"`  // model expectation for comparison
	TerminalShare float64 `json:"terminalShare"` // share of outcomes in the horizon bucket
}

// Result captures one simulation run: the run parameters, per-stratum and
// overall summaries, the outcome frequency table over the model's age axis,
// and a compressed eCDF of the outcomes.
type Result struct {
	FileId     string           `json:"FileId"` // file identification
	Period     int              `json:"period"`
	Mix        string           `json:"mix"`
	Correction string           `json:"correction"`
	RandomSeed int64            `json:"randomSeed"`
	CohortSize int              `json:"cohortSize"`
	Ages       []int            `json:"ages"`
	Counts     []uint64         `json:"counts"`
	Strata     []StratumSummary `json:"strata"`
	Overall    StratumSummary   `json:"overall"`
	ECDF       [][2]float64     `json:"ecdf"`
}

// SummaryTable renders the per-stratum summaries as a text table with the
// overall cohort in the footer.
func (r *Result) SummaryTable() string {
	t := table.NewWriter()
	t.SetTitle("cohort of %d, period %d, correction %s, seed %d", r.CohortSize, r.Period, r.Correction, r.RandomSeed)
	t.AppendHeader(table.Row{"stratum", "weight", "count", "mean", "median", "stddev", "min", "max", "q2.5%", "q97.5%", "expected", "terminal"})
	for _, s := range r.Strata {
		t.AppendRow(summaryRow(s))
	}
	t.AppendFooter(summaryRow(r.Overall))
	return t.Render()
}

func summaryRow(s StratumSummary) table.Row {
	return table.Row{
		s.Group,
		fmt.Sprintf("%.3f", s.Weight),
		s.Count,
		fmt.Sprintf("%.2f", s.Mean),
		fmt.Sprintf("%.2f", s.Median),
		fmt.Sprintf("%.2f", s.StdDev),
		fmt.Sprintf("%.2f", s.Min),
		fmt.Sprintf("%.2f", s.Max),
		fmt.Sprintf("%.2f", s.Q025),
		fmt.Sprintf("%.2f", s.Q975),
		fmt.Sprintf("%.2f", s.ExpectedMean),
		fmt.Sprintf("%.4f", s.TerminalShare),
	}
}

// SummaryRows flattens the summaries into insert rows for the run summary
// store, one row per stratum plus one labeled Overall.
func (r *Result) SummaryRows() [][]any {
	rows := make([][]any, 0, len(r.Strata)+1)
	for _, s := range r.Strata {
		rows = append(rows, r.summaryValues(s))
	}
	rows = append(rows, r.summaryValues(r.Overall))
	return rows
}

func (r *Result) summaryValues(s StratumSummary) []any {
	return []any{
		r.Period, r.RandomSeed, r.CohortSize, r.Correction,
		s.Group, s.Weight, s.Count, s.Mean, s.Median, s.StdDev,
		s.Min, s.Max, s.Q025, s.Q975, s.ExpectedMean, s.TerminalShare,
	}
}

// Write stores the result in a file in JSON format.
func (r *Result) Write(filename string) (err error) {
	f, fErr := os.Create(filename)
	if fErr != nil {
		return fmt.Errorf("cannot open JSON file; %v", fErr)
	}
	defer func(f *os.File) {
		err = errors.Join(err, f.Close())
	}(f)
	jOut, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to convert JSON file; %v", err)
	}
	_, err = fmt.Fprintln(f, string(jOut))
	if err != nil {
		return fmt.Errorf("failed to write JSON file; %v", err)
	}
	return nil
}

// ReadResult reads a simulation result from a file in JSON format.
func ReadResult(filename string) (r *Result, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed opening result file %v; %v", filename, err)
	}
	defer func(file *os.File) {
		err = errors.Join(err, file.Close())
	}(file)
	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed reading result file; %v", err)
	}
	var result Result
	err = json.Unmarshal(contents, &result)
	if err != nil {
		return nil, fmt.Errorf("cannot unmarshal result; %v", err)
	}
	if result.FileId != ResultFileId {
		return nil, fmt.Errorf("file %v is not a simulation result file", filename)
	}
	return &result, nil
}
