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
	"errors"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/vitalstats/mortsim/survival/lifetable"
	"github.com/vitalstats/mortsim/survival/simulator"
)

// HTML references for the rendered pages.
const massRef = "mass-stats"
const survivalRef = "survival-stats"
const expectancyRef = "expectancy-stats"
const outcomeRef = "outcome-stats"
const ecdfRef = "ecdf-stats"
const progressionRef = "progression-graph"

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Mortsim: Cohort Visualizer</title>
    <link rel="stylesheet" href="style.css">
    <script src="script.js"></script>
  </head>
  <body>
    <h1>Mortsim: Cohort Visualizer</h1>
    <ul>
    <li> <h3> <a href="/` + massRef + `"> Mortality Mass Functions </a> </h3> </li>
    <li> <h3> <a href="/` + survivalRef + `"> Survival Curves </a> </h3> </li>
    <li> <h3> <a href="/` + expectancyRef + `"> Life Expectancy </a> </h3> </li>
    <li> <h3> <a href="/` + outcomeRef + `"> Cohort Outcome </a> </h3> </li>
    <li> <h3> <a href="/` + ecdfRef + `"> Outcome eCDF </a> </h3> </li>
    <li> <h3> <a href="/` + progressionRef + `"> Age Progression Graph </a> </h3> </li>
    </ul>
</body>
</html>
`

// renderMain renders the main menu.
func renderMain(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, MainHtml)
}

// convertLinePoints converts curve points to chart points.
func convertLinePoints(data [][2]float64) []opts.LineData {
	items := []opts.LineData{}
	for _, pair := range data {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

// newStratumChart creates a line chart with one series per stratum.
func newStratumChart(title string, subtitle string, groups []string, series map[string][][2]float64) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme: types.ThemeChalk,
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}))
	for _, group := range groups {
		chart.AddSeries(group, convertLinePoints(series[group]))
	}
	return chart
}

// renderMassStats renders the completed mortality distribution of each stratum.
func renderMassStats(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	chart := newStratumChart(
		"Mortality Mass Functions",
		fmt.Sprintf("period %d", view.model.Period),
		view.model.Groups,
		view.mass,
	)
	_ = chart.Render(w)
}

// renderSurvivalStats renders the survival curve of each stratum.
func renderSurvivalStats(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	chart := newStratumChart(
		"Survival Curves",
		fmt.Sprintf("period %d", view.model.Period),
		view.model.Groups,
		view.curves,
	)
	_ = chart.Render(w)
}

// renderOutcomeStats renders the empirical cohort distribution against the
// mixture distribution of the model.
func renderOutcomeStats(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if view.result == nil {
		http.Error(w, "visualizer: no simulation result loaded", http.StatusServiceUnavailable)
		return
	}
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: "Cohort Outcome",
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Cohort Outcome",
			Subtitle: fmt.Sprintf("%d individuals, mix %s, correction %s", view.result.CohortSize, view.result.Mix, view.result.Correction),
		}))
	chart.AddSeries("Observed", convertLinePoints(view.observed)).AddSeries("Model", convertLinePoints(view.expected))
	_ = chart.Render(w)
}

// convertScatterPoints converts curve points to scatter chart points.
func convertScatterPoints(data [][2]float64) []opts.ScatterData {
	items := []opts.ScatterData{}
	for _, pair := range data {
		items = append(items, opts.ScatterData{Value: pair, SymbolSize: 5})
	}
	return items
}

// renderECDFStats renders the empirical cumulative distribution of the cohort.
func renderECDFStats(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if view.result == nil {
		http.Error(w, "visualizer: no simulation result loaded", http.StatusServiceUnavailable)
		return
	}
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: "Outcome eCDF",
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title: "Outcome eCDF",
		}))
	scatter.AddSeries("eCDF", convertScatterPoints(view.result.ECDF))
	_ = scatter.Render(w)
}

// convertStratumData produces the data series for per-stratum bar charts.
func convertStratumData(data []stratumDatum) []opts.BarData {
	items := []opts.BarData{}
	for i := 0; i < len(data); i++ {
		items = append(items, opts.BarData{Value: data[i].value})
	}
	return items
}

// convertStratumLabel produces strata labels.
func convertStratumLabel(data []stratumDatum) []string {
	items := []string{}
	for i := 0; i < len(data); i++ {
		items = append(items, data[i].label)
	}
	return items
}

// renderExpectancyStats renders the expected age at death per stratum.
func renderExpectancyStats(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: "Life Expectancy",
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title: "Life Expectancy",
		}))
	bar.SetXAxis(convertStratumLabel(view.expectancy)).AddSeries("Expected Age", convertStratumData(view.expectancy))
	bar.XYReversal()
	_ = bar.Render(w)
}

// printProgressionInDotty renders the age band transitions in dotty format.
func printProgressionInDotty(title string, transitions [][]float64, label []string) (out string, err error) {
	g := graphviz.New()
	graph, err := g.Graph()
	if err != nil {
		return "", fmt.Errorf("renderProgressionGraph: failed to create graph. Error: %v", err)
	}
	defer func() {
		err = errors.Join(err, graph.Close(), g.Close())
	}()
	n := len(label)
	nodes := make([]*cgraph.Node, n)
	for i := 0; i < n; i++ {
		var err error
		nodes[i], err = graph.CreateNode(label[i])
		if err != nil {
			return "", fmt.Errorf("renderProgressionGraph: failed to create node for label (%v, %v). Error: %v", i, label[i], err)
		}
		nodes[i].SetLabel(label[i])
	}
	if n != len(transitions) {
		return "", fmt.Errorf("renderProgressionGraph: transition matrix has %d rows, expected %d", len(transitions), n)
	}
	for i := 0; i < n; i++ {
		if transitions[i] == nil {
			return "", fmt.Errorf("renderProgressionGraph: transition matrix row %d is nil", i)
		} else if len(transitions[i]) != n {
			return "", fmt.Errorf("renderProgressionGraph: transition matrix row %d has length %d, expected %d", i, len(transitions[i]), n)
		}
		for j := 0; j < n; j++ {
			p := transitions[i][j]
			if p > 0.0 {
				txt := fmt.Sprintf("%.2f", p)
				e, _ := graph.CreateEdge("", nodes[i], nodes[j])
				e.SetLabel(txt)
				var color string
				switch int(4 * p) {
				case 0:
					color = "gray"
				case 1:
					color = "green"
				case 2:
					color = "orange"
				case 3:
					color = "indianred"
				case 4:
					color = "red"
				}
				e.SetColor(color)
			}
		}
	}
	txt, err := renderDotGraph(title, g, graph)
	if err != nil {
		return "", fmt.Errorf("renderProgressionGraph: failed to render. Error: %v", err)
	}
	return txt, nil
}

// renderProgressionGraph renders the cohort's passage through the age bands.
func renderProgressionGraph(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	txt, err := printProgressionInDotty("Age Progression", view.progression, view.bandLabels)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	}
	_, _ = fmt.Fprint(w, txt)
}

// FireUpWeb produces a view model for the life-table model and an optional
// simulation result and visualizes them with a local web-server.
func FireUpWeb(m *lifetable.Model, res *simulator.Result, addr string) error {
	if err := setViewState(m, res); err != nil {
		return err
	}

	// create web server
	http.HandleFunc("/", renderMain)
	http.HandleFunc("/"+massRef, renderMassStats)
	http.HandleFunc("/"+survivalRef, renderSurvivalStats)
	http.HandleFunc("/"+expectancyRef, renderExpectancyStats)
	http.HandleFunc("/"+outcomeRef, renderOutcomeStats)
	http.HandleFunc("/"+ecdfRef, renderECDFStats)
	http.HandleFunc("/"+progressionRef, renderProgressionGraph)
	return http.ListenAndServe(":"+addr, nil)
}
