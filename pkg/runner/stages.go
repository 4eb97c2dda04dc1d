// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codesee-io/codesee-action/pkg/actionerr"
	"github.com/codesee-io/codesee-action/pkg/actions"
	"github.com/codesee-io/codesee-action/pkg/insights"
	"github.com/codesee-io/codesee-action/pkg/invocation"
	"github.com/codesee-io/codesee-action/pkg/pipeline"
	"github.com/codesee-io/codesee-action/pkg/tool"
)

type stages struct {
	workflow  *actions.Workflow
	tool      tool.Runner
	collector *insights.Collector
	checkout  func(dir, ref string) error
	logger    *slog.Logger
}

func (s *stages) bind() pipeline.Stages {
	return pipeline.Stages{
		RequireCredential: s.requireCredential,
		Generate:          s.generate,
		Upload:            s.upload,
		Insights:          s.insights,
	}
}

func (s *stages) requireCredential(_ context.Context, rc pipeline.RunContext, _ *pipeline.Accumulator) error {
	return rc.Config.RequireCredential()
}

func (s *stages) generate(ctx context.Context, rc pipeline.RunContext, acc *pipeline.Accumulator) error {
	cfg := rc.Config

	if cfg.CheckoutRef != "" {
		err := s.workflow.Group(fmt.Sprintf("Checkout %s", cfg.CheckoutRef), func() error {
			return s.checkout(cfg.WorkDir, cfg.CheckoutRef)
		})
		if err != nil {
			return err
		}
	}

	if err := s.runTool(ctx, "Generate Map Data", invocation.MapArgs(cfg, rc.Decision)); err != nil {
		return err
	}
	acc.MapGenerated = true
	return nil
}

func (s *stages) upload(ctx context.Context, rc pipeline.RunContext, acc *pipeline.Accumulator) error {
	if rc.Config.SkipUpload {
		s.logger.Info("skip_upload is set, not uploading map")
		return nil
	}

	args, err := invocation.UploadMapArgs(rc.Config, rc.Event)
	if err != nil {
		return err
	}
	if err := s.runTool(ctx, "Upload Map", args); err != nil {
		return err
	}
	acc.MapUploaded = true
	return nil
}

func (s *stages) insights(ctx context.Context, rc pipeline.RunContext, acc *pipeline.Accumulator) error {
	var needed bool
	_ = s.workflow.Group("Check Existing Insights", func() error {
		needed = s.collector.NeedsInsights(ctx, rc.Config)
		return nil
	})
	acc.InsightsChecked = true
	acc.InsightsNeeded = needed

	if !needed {
		s.logger.Info("insights already exist, skipping collection")
		return nil
	}

	if err := s.collector.Collect(ctx, rc.Config); err != nil {
		return err
	}
	acc.InsightsCollected = true
	return nil
}

// runTool runs args inside a log group. A non-zero exit becomes ExternalToolFailure.
func (s *stages) runTool(ctx context.Context, label string, args []string) error {
	var code int
	err := s.workflow.Group(label, func() error {
		var err error
		code, err = s.tool.Run(ctx, args)
		return err
	})
	if err != nil {
		return actionerr.Wrap(actionerr.ExternalToolFailure, fmt.Sprintf("%s could not run", args[0]), err)
	}
	if code != 0 {
		return actionerr.Newf(actionerr.ExternalToolFailure, "%s exited with code %d", args[0], code)
	}
	return nil
}
