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

package logger

import (
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

//go:generate mockgen -source logger.go -destination logger_mock.go -package logger

// Logger is an interface for logging messages.
type Logger interface {
	// Critical logs a message using CRITICAL as log level.
	Critical(args ...interface{})
	// Criticalf logs a formatted message using CRITICAL as log level.
	Criticalf(format string, args ...interface{})
	// Error logs a message using ERROR as log level.
	Error(args ...interface{})
	// Errorf logs a formatted message using ERROR as log level.
	Errorf(format string, args ...interface{})
	// Fatal logs a message using CRITICAL as log level followed by a call to os.Exit(1).
	Fatal(args ...interface{})
	// Fatalf logs a formatted message using CRITICAL as log level followed by a call to os.Exit(1).
	Fatalf(format string, args ...interface{})
	// Panic logs a message using CRITICAL as log level followed by a call to panic().
	Panic(args ...interface{})
	// Panicf logs a formatted message using CRITICAL as log level followed by a call to panic().
	Panicf(format string, args ...interface{})
	// Warning logs a message using WARNING as log level.
	Warning(args ...interface{})
	// Warningf logs a formatted message using WARNING as log level.
	Warningf(format string, args ...interface{})
	// Notice logs a message using NOTICE as log level.
	Notice(args ...interface{})
	// Noticef logs a formatted message using NOTICE as log level.
	Noticef(format string, args ...interface{})
	// Info logs a message using INFO as log level.
	Info(args ...interface{})
	// Infof logs a formatted message using INFO as log level.
	Infof(format string, args ...interface{})
	// Debug logs a message using DEBUG as log level.
	Debug(args ...interface{})
	// Debugf logs a formatted message using DEBUG as log level.
	Debugf(format string, args ...interface{})
	// IsEnabledFor reports whether the given level is enabled.
	IsEnabledFor(level logging.Level) bool
}

// LogLevelFlag introduces the log-level flag shared by all commands.
var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   `Level of the logging of the app action ("critical", "error", "warning", "notice", "info", "debug"; default: INFO)`,
	Value:   "info",
}

const defaultLogFormat = "%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset}: %{message}"

// NewLogger provides a new instance of the Logger for the given module. An
// unparsable level falls back to INFO.
func NewLogger(level string, module string) Logger {
	log := logging.MustGetLogger(module)
	logLevel, err := logging.LogLevel(level)
	if err != nil {
		logLevel = logging.INFO
	}
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.MustStringFormatter(defaultLogFormat)
	formattedBackend := logging.NewBackendFormatter(backend, formatter)
	leveledBackend := logging.AddModuleLevel(formattedBackend)
	leveledBackend.SetLevel(logLevel, "")
	log.SetBackend(leveledBackend)
	return log
}

// ParseTime splits a duration into hours, minutes and seconds for reporting.
func ParseTime(elapsed time.Duration) (uint32, uint32, uint32) {
	var hours, minutes, seconds uint32
	seconds = uint32(elapsed.Seconds())
	if seconds > 60 {
		minutes = seconds / 60
		seconds -= minutes * 60
	}
	if minutes > 60 {
		hours = minutes / 60
		minutes -= hours * 60
	}
	return hours, minutes, seconds
}
