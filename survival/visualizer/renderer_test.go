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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalstats/mortsim/survival/lifetable"
	"github.com/vitalstats/mortsim/survival/simulator"
)

func sampleModel(t *testing.T) *lifetable.Model {
	t.Helper()
	table := &lifetable.Table{Records: []lifetable.Record{
		{Group: "Female", Period: 2015, Age: 0, Rate: 0.008},
		{Group: "Female", Period: 2015, Age: 1, Rate: 0.016},
		{Group: "Female", Period: 2015, Age: 2, Rate: 0.024},
		{Group: "Male", Period: 2015, Age: 0, Rate: 0.01},
		{Group: "Male", Period: 2015, Age: 1, Rate: 0.02},
		{Group: "Male", Period: 2015, Age: 2, Rate: 0.03},
	}}
	m, err := lifetable.BuildModel(table)
	require.NoError(t, err)
	return m
}

func sampleResult(m *lifetable.Model) *simulator.Result {
	return &simulator.Result{
		FileId:     simulator.ResultFileId,
		Period:     m.Period,
		Mix:        "Female=0.500,Male=0.500",
		Correction: "none",
		RandomSeed: 7,
		CohortSize: 100,
		Ages:       m.Ages,
		Counts:     []uint64{2, 3, 5, 90},
		Strata: []simulator.StratumSummary{
			{Group: "Female", Weight: 0.5, Count: 50},
			{Group: "Male", Weight: 0.5, Count: 50},
		},
		Overall: simulator.StratumSummary{Group: "Overall", Weight: 1.0, Count: 100},
		ECDF:    [][2]float64{{0.0, 0.0}, {2.0, 0.1}, {4.0, 1.0}},
	}
}

func mustSetView(t *testing.T, m *lifetable.Model, res *simulator.Result) {
	t.Helper()
	require.NoError(t, setViewState(m, res))
}

func clearView(t *testing.T) {
	t.Helper()
	currentMu.Lock()
	currentState = nil
	currentMu.Unlock()
}

func TestVisualizer_renderMain(t *testing.T) {
	req, err := http.NewRequest("GET", "/", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderMain)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, MainHtml, rr.Body.String())
}

func TestVisualizer_convertLinePoints(t *testing.T) {
	testData := [][2]float64{{1.0, 2.0}, {3.0, 4.0}, {5.0, 6.0}}

	result := convertLinePoints(testData)

	assert.Len(t, result, 3)
	assert.Equal(t, opts.LineData{Value: [2]float64{1.0, 2.0}}, result[0])
	assert.Equal(t, opts.LineData{Value: [2]float64{3.0, 4.0}}, result[1])
	assert.Equal(t, opts.LineData{Value: [2]float64{5.0, 6.0}}, result[2])
}

func TestVisualizer_convertScatterPoints(t *testing.T) {
	testData := [][2]float64{{0.0, 0.1}, {1.0, 0.2}}

	result := convertScatterPoints(testData)

	assert.Len(t, result, 2)
	assert.Equal(t, opts.ScatterData{Value: [2]float64{0.0, 0.1}, SymbolSize: 5}, result[0])
	assert.Equal(t, opts.ScatterData{Value: [2]float64{1.0, 0.2}, SymbolSize: 5}, result[1])
}

func TestVisualizer_convertStratumData(t *testing.T) {
	testData := []stratumDatum{
		{label: "Female", value: 0.1},
		{label: "Male", value: 0.2},
	}

	result := convertStratumData(testData)

	assert.Len(t, result, 2)
	assert.Equal(t, opts.BarData{Value: 0.1}, result[0])
	assert.Equal(t, opts.BarData{Value: 0.2}, result[1])
}

func TestVisualizer_convertStratumLabel(t *testing.T) {
	testData := []stratumDatum{
		{label: "Female", value: 0.1},
		{label: "Male", value: 0.2},
	}

	result := convertStratumLabel(testData)

	assert.Len(t, result, 2)
	assert.Equal(t, "Female", result[0])
	assert.Equal(t, "Male", result[1])
}

func TestVisualizer_newStratumChart(t *testing.T) {
	series := map[string][][2]float64{
		"Female": {{0.0, 0.5}, {1.0, 0.8}},
		"Male":   {{0.0, 0.4}, {1.0, 0.7}},
	}

	chart := newStratumChart("Test Title", "subtitle", []string{"Female", "Male"}, series)

	assert.NotNil(t, chart)
}

func TestVisualizer_renderMassStats(t *testing.T) {
	mustSetView(t, sampleModel(t), nil)

	req, err := http.NewRequest("GET", "/mass-stats", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderMassStats)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestVisualizer_renderSurvivalStats(t *testing.T) {
	mustSetView(t, sampleModel(t), nil)

	req, err := http.NewRequest("GET", "/survival-stats", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderSurvivalStats)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestVisualizer_renderExpectancyStats(t *testing.T) {
	mustSetView(t, sampleModel(t), nil)

	req, err := http.NewRequest("GET", "/expectancy-stats", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderExpectancyStats)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestVisualizer_renderOutcomeStats(t *testing.T) {
	m := sampleModel(t)
	mustSetView(t, m, sampleResult(m))

	req, err := http.NewRequest("GET", "/outcome-stats", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderOutcomeStats)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestVisualizer_renderECDFStats(t *testing.T) {
	m := sampleModel(t)
	mustSetView(t, m, sampleResult(m))

	req, err := http.NewRequest("GET", "/ecdf-stats", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderECDFStats)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestVisualizer_renderProgressionGraph(t *testing.T) {
	m := sampleModel(t)
	mustSetView(t, m, sampleResult(m))

	req, err := http.NewRequest("GET", "/progression-graph", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderProgressionGraph)
	handler.ServeHTTP(rr, req)
	response := rr.Body.String()

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, response)
	assert.Contains(t, response, "Age Progression")
	assert.Contains(t, response, "Died")
}

func TestVisualizer_printProgressionInDottyRejectsBadShapes(t *testing.T) {
	labels := []string{"0-9", "Died"}

	_, err := printProgressionInDotty("Age Progression", [][]float64{{1.0}}, labels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transition matrix")

	_, err = printProgressionInDotty("Age Progression", [][]float64{{0.0, 1.0}, nil}, labels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1 is nil")

	_, err = printProgressionInDotty("Age Progression", [][]float64{{0.0, 1.0}, {1.0}}, labels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length 1")
}

func TestVisualizer_resultPagesWithoutResult(t *testing.T) {
	mustSetView(t, sampleModel(t), nil)

	handlers := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"renderOutcomeStats", renderOutcomeStats},
		{"renderECDFStats", renderECDFStats},
	}
	for _, tc := range handlers {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest("GET", "/", nil)
			require.NoError(t, err)
			rr := httptest.NewRecorder()
			tc.handler.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
			assert.Contains(t, rr.Body.String(), "no simulation result loaded")
		})
	}
}

func TestVisualizer_handlersWithoutState(t *testing.T) {
	handlers := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"renderMassStats", renderMassStats},
		{"renderSurvivalStats", renderSurvivalStats},
		{"renderExpectancyStats", renderExpectancyStats},
		{"renderOutcomeStats", renderOutcomeStats},
		{"renderECDFStats", renderECDFStats},
		{"renderProgressionGraph", renderProgressionGraph},
	}
	for _, tc := range handlers {
		t.Run(tc.name, func(t *testing.T) {
			clearView(t)
			req, err := http.NewRequest("GET", "/", nil)
			require.NoError(t, err)
			rr := httptest.NewRecorder()
			tc.handler.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		})
	}
}

func TestVisualizer_FireUpWeb(t *testing.T) {
	m := sampleModel(t)

	done := make(chan error, 1)
	go func() {
		done <- FireUpWeb(m, sampleResult(m), "0")
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(1 * time.Second):
		// If no error after 1 seconds, pass the test
	}
}

func TestVisualizer_FireUpWebRejectsNilModel(t *testing.T) {
	err := FireUpWeb(nil, nil, "0")
	assert.Error(t, err)
}
