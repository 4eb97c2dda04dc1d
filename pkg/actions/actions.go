// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

// Package actions writes GitHub Actions workflow commands and environment files.
package actions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Workflow emits workflow commands to Out, normally the step's stdout
type Workflow struct {
	Out io.Writer
}

func New(out io.Writer) *Workflow {
	return &Workflow{Out: out}
}

// Group folds everything fn prints under label in the job log
func (w *Workflow) Group(label string, fn func() error) error {
	w.command("group", label)
	defer w.command("endgroup", "")
	return fn()
}

// AddMask registers value as a secret so the runner masks it in every later log line
func (w *Workflow) AddMask(value string) {
	if value == "" {
		return
	}
	w.command("add-mask", value)
}

func (w *Workflow) Debug(message string) {
	w.command("debug", message)
}

func (w *Workflow) Notice(message string) {
	w.command("notice", message)
}

func (w *Workflow) Warning(message string) {
	w.command("warning", message)
}

func (w *Workflow) Error(message string) {
	w.command("error", message)
}

// SetFailed reports message as the step's failure annotation. The caller still
// has to exit non-zero.
func (w *Workflow) SetFailed(message string) {
	w.Error(message)
}

func (w *Workflow) command(name string, message string) {
	_, _ = fmt.Fprintf(w.Out, "::%s::%s\n", name, escapeData(message))
}

func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

// InCI reports whether the process runs inside GitHub Actions
func InCI() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// SetOutput sets a step output. Outside Actions (no GITHUB_OUTPUT) it does nothing.
func SetOutput(name, value string) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return nil
	}

	delimiter := "ghadelimiter_" + uuid.NewString()
	return appendFile(path, fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter))
}

// AppendSummary adds markdown to the job summary page. Outside Actions it does nothing.
func AppendSummary(markdown string) error {
	path := os.Getenv("GITHUB_STEP_SUMMARY")
	if path == "" {
		return nil
	}
	if !strings.HasSuffix(markdown, "\n") {
		markdown += "\n"
	}
	return appendFile(path, markdown)
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o666)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := io.WriteString(f, content); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
