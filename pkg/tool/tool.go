// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package tool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/codesee-io/codesee-action/pkg/constants"
	"github.com/codesee-io/codesee-action/pkg/invocation"
)

// Runner launches the codesee CLI with args and reports its exit code. A non-zero
// exit is not an error; err is set only when the process could not be run.
type Runner interface {
	Run(ctx context.Context, args []string) (exitCode int, err error)
}

// Exec runs the CLI as `npx codesee@latest <args>` in Dir
type Exec struct {
	Launcher string
	Package  string
	Dir      string
	Stdout   io.Writer
	Stderr   io.Writer
	// Secrets are replaced with *** in the logged command line
	Secrets []string
	Logger  *slog.Logger
}

// NewExec returns an Exec with the default launcher writing to the process stdio
func NewExec(dir string, logger *slog.Logger, secrets ...string) *Exec {
	return &Exec{
		Launcher: constants.ToolLauncher,
		Package:  constants.ToolPackage,
		Dir:      dir,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Secrets:  secrets,
		Logger:   logger,
	}
}

func (e *Exec) Run(ctx context.Context, args []string) (int, error) {
	full := make([]string, 0, len(args)+1)
	if e.Package != "" {
		full = append(full, e.Package)
	}
	full = append(full, args...)

	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	display := strings.Join(invocation.Redact(append([]string{e.Launcher}, full...), e.Secrets...), " ")
	logger.Info("running external tool", slog.String("command", display))

	cmd := exec.CommandContext(ctx, e.Launcher, full...)
	cmd.Dir = e.Dir
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Debug("external tool exited", slog.Int("exit_code", exitErr.ExitCode()))
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("failed to run %s: %w", e.Launcher, err)
	}

	return 0, nil
}
