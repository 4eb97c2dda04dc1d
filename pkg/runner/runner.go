// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/codesee-io/codesee-action/pkg/actions"
	"github.com/codesee-io/codesee-action/pkg/config"
	"github.com/codesee-io/codesee-action/pkg/event"
	"github.com/codesee-io/codesee-action/pkg/gate"
	"github.com/codesee-io/codesee-action/pkg/gitrepo"
	"github.com/codesee-io/codesee-action/pkg/insights"
	"github.com/codesee-io/codesee-action/pkg/pipeline"
	"github.com/codesee-io/codesee-action/pkg/summary"
	"github.com/codesee-io/codesee-action/pkg/tool"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Run resolves the configuration held by v and executes the configured step.
// Workflow commands and the run summary are written to out.
func Run(ctx context.Context, v *viper.Viper, out io.Writer) error {
	return run(ctx, v, out, nil)
}

// runMock facilitates use of mock values for testing
type runMock struct {
	tool         tool.Runner
	originLookup config.OriginLookup
	checkout     func(dir, ref string) error
	runID        string
}

func run(ctx context.Context, v *viper.Viper, out io.Writer, mock *runMock) error {
	originLookup := gitrepo.Origin
	checkout := gitrepo.Checkout
	runID := uuid.NewString()
	if mock != nil {
		if mock.originLookup != nil {
			originLookup = mock.originLookup
		}
		if mock.checkout != nil {
			checkout = mock.checkout
		}
		if mock.runID != "" {
			runID = mock.runID
		}
	}

	logger := slog.Default().With(slog.String("run_id", runID))
	wf := actions.New(out)

	var (
		cfg      config.RunConfig
		step     pipeline.Step
		ev       event.Context
		decision gate.Decision
	)
	err := wf.Group("Setup", func() error {
		var err error
		cfg, err = config.Resolve(v)
		if err != nil {
			return err
		}
		wf.AddMask(cfg.APIToken)

		if step, err = pipeline.ParseStep(cfg.Step); err != nil {
			return err
		}
		if step.NeedsOrigin() {
			if cfg, err = cfg.WithOrigin(originLookup); err != nil {
				return err
			}
		}
		logger.Debug("resolved configuration", slog.Any("config", cfg))
		wf.Debug(fmt.Sprintf("step %s runs stages %v", step, step.Stages()))

		ev = event.Load(cfg.EventName, cfg.EventPath)
		decision = gate.Decide(cfg, ev)
		switch {
		case decision.Note == gate.NoteUnknownPayload:
			wf.Warning(fmt.Sprintf("%s: %s", decision.Note, strings.Join(decision.Disabled, ", ")))
		case len(decision.Disabled) > 0:
			wf.Notice(fmt.Sprintf("%s: %s", decision.Note, strings.Join(decision.Disabled, ", ")))
		}
		logger.Info("security gate decided",
			slog.String("event", ev.Name),
			slog.Any("disabled", decision.Disabled),
			slog.String("note", decision.Note))
		return nil
	})
	if err != nil {
		return err
	}

	var runner tool.Runner = tool.NewExec(cfg.WorkDir, logger, cfg.APIToken)
	if mock != nil && mock.tool != nil {
		runner = mock.tool
	}

	s := &stages{
		workflow: wf,
		tool:     runner,
		checkout: checkout,
		logger:   logger,
		collector: &insights.Collector{
			Tool:     runner,
			Workflow: wf,
			Logger:   logger,
		},
	}

	p, err := pipeline.New(string(step), s.bind())
	if err != nil {
		return err
	}

	logger.Info("running step", slog.String("step", string(p.Step())))
	runErr := p.Run(ctx, pipeline.RunContext{Config: cfg, Event: ev, Decision: decision})

	result := p.Result()
	report := summary.Report{
		RunID:             runID,
		Step:              string(p.Step()),
		Origin:            cfg.Origin,
		State:             p.State().String(),
		Disabled:          decision.Disabled,
		Note:              decision.Note,
		InsightsChecked:   result.InsightsChecked,
		InsightsNeeded:    result.InsightsNeeded,
		InsightsCollected: result.InsightsCollected,
		Err:               runErr,
	}
	for _, id := range p.Trace() {
		report.Trace = append(report.Trace, string(id))
	}
	if err := summary.Publish(out, report); err != nil {
		logger.Warn("failed to publish run summary", slog.String("error", err.Error()))
	}

	if runErr != nil {
		logger.Error("stage failed", slog.String("stage", string(p.Current())), slog.String("error", runErr.Error()))
		return runErr
	}
	logger.Info("step completed", slog.String("step", string(p.Step())))
	return nil
}
