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

package utils

import (
	"time"

	"github.com/vitalstats/mortsim/logger"
)

// OperationThreshold is the number of operations between two progress reports.
const OperationThreshold = 1_000_000

// ProgressTracker reports the progress of a counted long-running operation.
type ProgressTracker struct {
	step   int           // number of completed operations
	target int           // total number of operations
	start  time.Time     // start time of the operation
	last   time.Time     // time of the last report
	rate   float64       // moving average of the operation rate
	log    logger.Logger // message logger
}

// NewProgressTracker creates a tracker for an operation of target steps.
func NewProgressTracker(target int, log logger.Logger) *ProgressTracker {
	now := time.Now()
	return &ProgressTracker{
		step:   0,
		target: target,
		start:  now,
		last:   now,
		rate:   0.0,
		log:    log,
	}
}

// PrintProgress advances the tracker by one step and reports every
// OperationThreshold steps.
func (pt *ProgressTracker) PrintProgress() {
	pt.step++
	if pt.step%OperationThreshold == 0 {
		now := time.Now()
		currentRate := float64(OperationThreshold) / now.Sub(pt.last).Seconds()
		pt.rate = currentRate*0.1 + pt.rate*0.9
		pt.last = now
		progress := float64(pt.step) / float64(pt.target)
		elapsed := now.Sub(pt.start).Round(time.Second)
		pt.log.Infof("\t%v of %v individuals (%.1f%%), %.1f/s current, %.1f/s average, elapsed %v", pt.step, pt.target, progress*100, currentRate, pt.rate, elapsed)
	}
}
