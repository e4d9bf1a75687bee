// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os/exec"

	"github.com/pkg/errors"
)

// A Command is a benchmark executable invocation.
type Command struct {
	Path string
	Args []string
}

// A Runner runs benchmark commands.
type Runner interface {
	// Run runs c to completion, copying its standard output to
	// stdout. A command that ran but failed is reported as an
	// *ExitError.
	Run(ctx context.Context, c Command, stdout io.Writer) error
}

// An ExitError reports a benchmark that failed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exit status %d: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// notFound is the shell's status for a missing command.
const notFound = 127

// ExecRunner runs commands as subprocesses.
type ExecRunner struct {
	// Stderr receives the commands' standard error. Nil discards it.
	Stderr io.Writer
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, c Command, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdout = stdout
	cmd.Stderr = r.Stderr
	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{Code: ee.ExitCode()}
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return &ExitError{Code: notFound, Err: err}
	}
	return err
}
