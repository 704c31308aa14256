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

package survival

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/vitalstats/mortsim/logger"
	"github.com/vitalstats/mortsim/survival/lifetable"
	"github.com/vitalstats/mortsim/survival/simulator"
	"github.com/vitalstats/mortsim/survival/visualizer"
	"github.com/vitalstats/mortsim/utils"
)

// VisualizeCommand data structure for the visualize app.
var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "produces a graphical view of a mortality model",
	ArgsUsage: "<model.json>",
	Flags: []cli.Flag{
		&utils.PortFlag,
		&utils.ResultFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The visualize command requires one argument:
<model.json>

<model.json> is a mortality model produced by the estimate command. With
--result, the observed outcome of a simulation run is overlaid on the
model charts.`,
}

// visualizeAction implements the visualize command. The function is web-based
// and uses a web-browser for visualizing the distributions of a mortality model.
func visualizeAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.PathArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Visualize")
	log.Info("Produce a web-based visualization of a mortality model")

	m, err := lifetable.ReadModel(cfg.ArgPath)
	if err != nil {
		return fmt.Errorf("failed reading model; %v", err)
	}
	var res *simulator.Result
	if cfg.Result != "" {
		res, err = simulator.ReadResult(cfg.Result)
		if err != nil {
			return fmt.Errorf("failed reading result; %v", err)
		}
	}

	log.Noticef("Open web browser on http://localhost:%v", cfg.Port)
	log.Notice("Cancel visualizer with Ctrl-C")
	return visualizer.FireUpWeb(m, res, cfg.Port)
}
