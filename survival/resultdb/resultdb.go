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

// Package resultdb owns the sqlite3 schema for simulation run summaries and
// the read side used for reporting. Writes go through the printer utilities
// with the schema constants of this package.
package resultdb

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jmoiron/sqlx"
	// Your main or test packages require this import so the sql package is properly initialized.
	_ "github.com/mattn/go-sqlite3"
)

const (
	// InsertStratumSQL inserts one summary row of a simulation run.
	InsertStratumSQL = `
INSERT INTO stratumSummary (
	period, randomSeed, cohortSize, correction, stratum, weight, count, mean, median, stdDev, min, max, q025, q975, expectedMean, terminalShare
) VALUES (
	?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
)
`

	// CreateSQL creates the run summary schema.
	CreateSQL = `
PRAGMA journal_mode = MEMORY;
CREATE TABLE IF NOT EXISTS stratumSummary (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	createTimestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	period INTEGER,
	randomSeed INTEGER,
	cohortSize INTEGER,
	correction TEXT,
	stratum TEXT,
	weight FLOAT,
	count INTEGER,
	mean FLOAT,
	median FLOAT,
	stdDev FLOAT,
	min FLOAT,
	max FLOAT,
	q025 FLOAT,
	q975 FLOAT,
	expectedMean FLOAT,
	terminalShare FLOAT
);
`

	// SQL statement for retrieving stored summary rows
	selectSummarySQL = `
SELECT id, createTimestamp, period, randomSeed, cohortSize, correction, stratum, weight, count, mean, median, stdDev, min, max, q025, q975, expectedMean, terminalShare
FROM stratumSummary
`
)

// StratumRow is one stored summary row of a simulation run.
type StratumRow struct {
	Id            int64     `db:"id"`
	Created       time.Time `db:"createTimestamp"`
	Period        int       `db:"period"`
	RandomSeed    int64     `db:"randomSeed"`
	CohortSize    int       `db:"cohortSize"`
	Correction    string    `db:"correction"`
	Stratum       string    `db:"stratum"`
	Weight        float64   `db:"weight"`
	Count         int       `db:"count"`
	Mean          float64   `db:"mean"`
	Median        float64   `db:"median"`
	StdDev        float64   `db:"stdDev"`
	Min           float64   `db:"min"`
	Max           float64   `db:"max"`
	Q025          float64   `db:"q025"`
	Q975          float64   `db:"q975"`
	ExpectedMean  float64   `db:"expectedMean"`
	TerminalShare float64   `db:"terminalShare"`
}

//go:generate mockgen -source resultdb.go -destination resultdb_mock.go -package resultdb
type ResultDB interface {
	Close() error
	Summaries(period int) ([]StratumRow, error)
}

// resultDB is a summary database reader for simulation runs.
type resultDB struct {
	sql *sqlx.DB // Sqlite3 database
}

// OpenResultDB opens a summary database for reading. The schema is created
// when it does not exist yet, so reporting on a fresh store yields no rows
// instead of failing.
func OpenResultDB(dbFile string) (ResultDB, error) {
	return openResultDB(dbFile)
}

func openResultDB(dbFile string) (*resultDB, error) {
	sqlDB, err := sqlx.Open("sqlite3", dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %v; %v", dbFile, err)
	}
	if _, err = sqlDB.Exec(CreateSQL); err != nil {
		return nil, fmt.Errorf("sqlDB.Exec, err: %q", err)
	}
	return &resultDB{sql: sqlDB}, nil
}

// Close closes the summary database.
func (db *resultDB) Close() error {
	return db.sql.Close()
}

// Summaries retrieves stored summary rows in insertion order, restricted to
// one calendar period when the period is positive.
func (db *resultDB) Summaries(period int) ([]StratumRow, error) {
	rows := []StratumRow{}
	var err error
	if period > 0 {
		err = db.sql.Select(&rows, selectSummarySQL+`WHERE period = ? ORDER BY id`, period)
	} else {
		err = db.sql.Select(&rows, selectSummarySQL+`ORDER BY id`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query stratum summaries; %v", err)
	}
	return rows, nil
}

// SummaryTable renders stored summary rows as a text table.
func SummaryTable(rows []StratumRow) string {
	t := table.NewWriter()
	t.SetTitle("stored run summaries (%d rows)", len(rows))
	t.AppendHeader(table.Row{"stored", "period", "stratum", "correction", "seed", "cohort", "count", "mean", "stddev", "expected", "terminal"})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.Created.Format("2006-01-02 15:04:05"),
			r.Period,
			r.Stratum,
			r.Correction,
			r.RandomSeed,
			r.CohortSize,
			r.Count,
			fmt.Sprintf("%.2f", r.Mean),
			fmt.Sprintf("%.2f", r.StdDev),
			fmt.Sprintf("%.2f", r.ExpectedMean),
			fmt.Sprintf("%.4f", r.TerminalShare),
		})
	}
	return t.Render()
}
