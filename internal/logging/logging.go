// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging builds the leveled logfmt loggers used by the
// commands.
package logging

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Levels lists the accepted level names, most verbose first.
var Levels = []string{"debug", "info", "warn", "error"}

// Level is a log level usable as a command-line flag value.
type Level struct {
	s      string
	Option level.Option
}

// String implements flag.Value.
func (l *Level) String() string {
	if l.s == "" {
		return "info"
	}
	return l.s
}

// Set implements flag.Value.
func (l *Level) Set(s string) error {
	switch s {
	case "debug":
		l.Option = level.AllowDebug()
	case "info":
		l.Option = level.AllowInfo()
	case "warn":
		l.Option = level.AllowWarn()
	case "error":
		l.Option = level.AllowError()
	default:
		return errors.Errorf("unrecognized log level %q", s)
	}
	l.s = s
	return nil
}

// New returns a logfmt logger writing to w that drops records below
// lvl. The zero Level allows info and above.
func New(w io.Writer, lvl Level) log.Logger {
	opt := lvl.Option
	if opt == nil {
		opt = level.AllowInfo()
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.Caller(3))
}
