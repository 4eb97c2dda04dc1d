// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/codesee-io/codesee-action/pkg/actions"
)

// Report describes one finished run
type Report struct {
	RunID    string
	Step     string
	Origin   string
	State    string
	Trace    []string
	Disabled []string
	Note     string

	InsightsChecked   bool
	InsightsNeeded    bool
	InsightsCollected bool

	Err error
}

// Markdown renders the report as a job summary section
func (r Report) Markdown() string {
	var b strings.Builder

	b.WriteString("## CodeSee Map\n\n")
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Step | `%s` |\n", r.Step)
	if r.Origin != "" {
		fmt.Fprintf(&b, "| Repository | `%s` |\n", r.Origin)
	}
	fmt.Fprintf(&b, "| Result | %s |\n", r.State)
	fmt.Fprintf(&b, "| Run | `%s` |\n", r.RunID)

	b.WriteString("\n### Stages\n\n")
	if len(r.Trace) == 0 {
		b.WriteString("No stage ran.\n")
	}
	for i, stage := range r.Trace {
		fmt.Fprintf(&b, "%d. `%s`\n", i+1, stage)
	}

	b.WriteString("\n### Languages\n\n")
	if len(r.Disabled) == 0 {
		b.WriteString("All configured languages enabled.\n")
	} else {
		fmt.Fprintf(&b, "Disabled: `%s`\n", strings.Join(r.Disabled, "`, `"))
	}
	if r.Note != "" {
		fmt.Fprintf(&b, "\n> %s\n", r.Note)
	}

	if r.InsightsChecked {
		b.WriteString("\n### Insights\n\n")
		switch {
		case !r.InsightsNeeded:
			b.WriteString("Insights already present, nothing to do.\n")
		case r.InsightsCollected:
			b.WriteString("Insights were computed for this repository.\n")
		default:
			b.WriteString("Insights are missing and collecting them failed.\n")
		}
	}

	if r.Err != nil {
		fmt.Fprintf(&b, "\n### Error\n\n```\n%s\n```\n", r.Err)
	}

	return b.String()
}

// Render formats markdown for a terminal. On a renderer failure the raw markdown
// is returned.
func Render(markdown string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown
	}

	rendered, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

// Publish sends the report to the job summary and step outputs inside Actions,
// and renders it to w everywhere else.
func Publish(w io.Writer, r Report) error {
	md := r.Markdown()

	if !actions.InCI() {
		_, err := io.WriteString(w, Render(md))
		return err
	}

	if err := actions.AppendSummary(md); err != nil {
		return err
	}
	if err := actions.SetOutput("run-id", r.RunID); err != nil {
		return err
	}
	if err := actions.SetOutput("disabled-languages", strings.Join(r.Disabled, ",")); err != nil {
		return err
	}
	return actions.SetOutput("result", r.State)
}
