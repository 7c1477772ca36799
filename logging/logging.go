/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package logging

import (
	stdlog "log"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Log source tags used in structured logger contexts.
const (
	SourceApp       = "app"
	SourceIngest    = "ingest"
	SourceExtract   = "extract"
	SourceNormalize = "normalize"
	SourceExport    = "export"
	SourceConfig    = "config"
)

var (
	initOnce   sync.Once
	baseLogger *log.Logger

	// children copy the level at creation, so SetLevel walks them too.
	childrenMu sync.Mutex
	children   []*log.Logger
)

// Init configures the base logger and stdlib log output. Logs go to stderr so
// command output on stdout stays machine readable.
func Init() {
	initOnce.Do(func() {
		baseLogger = log.NewWithOptions(os.Stderr, log.Options{
			TimeFunction:    log.NowUTC,
			TimeFormat:      time.RFC3339Nano,
			Level:           log.InfoLevel,
			ReportTimestamp: true,
			Formatter:       log.LogfmtFormatter,
		})

		stdLogger := baseLogger.With("source", SourceApp).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})

		stdlog.SetFlags(0)
		stdlog.SetOutput(stdLogger.Writer())
	})
}

// SetLevel changes the level of the base logger and every logger derived from it.
func SetLevel(level log.Level) {
	Init()
	baseLogger.SetLevel(level)

	childrenMu.Lock()
	defer childrenMu.Unlock()
	for _, child := range children {
		child.SetLevel(level)
	}
}

// SetVerbose switches between debug and info output.
func SetVerbose(verbose bool) {
	if verbose {
		SetLevel(log.DebugLevel)
		return
	}
	SetLevel(log.InfoLevel)
}

// Logger returns a logfmt logger tagged with the provided source.
func Logger(source string) *log.Logger {
	Init()
	child := baseLogger.With("source", source)

	childrenMu.Lock()
	children = append(children, child)
	childrenMu.Unlock()

	return child
}

// StdLogger returns a stdlib logger that writes logfmt output with a source.
func StdLogger(source string) *stdlog.Logger {
	Init()
	return baseLogger.With("source", source).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
}
