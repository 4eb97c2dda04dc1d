// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/codesee-io/codesee-action/api"
	"github.com/codesee-io/codesee-action/pkg/actionerr"
	"github.com/codesee-io/codesee-action/pkg/actions"
	"github.com/codesee-io/codesee-action/pkg/config"
	"github.com/codesee-io/codesee-action/pkg/constants"
	"github.com/codesee-io/codesee-action/pkg/invocation"
	"github.com/codesee-io/codesee-action/pkg/tool"
)

// Collector decides whether insights are needed and produces them
type Collector struct {
	Tool     tool.Runner
	Workflow *actions.Workflow
	Logger   *slog.Logger
	// Types defaults to constants.InsightTypes
	Types []string
}

// NeedsInsights fetches the repository metadata and reports whether insights still
// have to be computed. Any failure along the way answers true: redundant work is
// acceptable, skipped work is not.
func (c *Collector) NeedsInsights(ctx context.Context, cfg config.RunConfig) bool {
	logger := c.logger()

	// a file left by an earlier run must not answer for this fetch
	path := filepath.Join(cfg.WorkDir, constants.MetadataFile)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("stale metadata file could not be removed, assuming insights are needed", slog.String("path", path), slog.String("error", err.Error()))
		return true
	}

	code, err := c.Tool.Run(ctx, invocation.MetadataArgs(cfg))
	if err != nil {
		logger.Warn("metadata fetch could not run, assuming insights are needed", slog.String("error", err.Error()))
		return true
	}
	if code != 0 {
		logger.Info("metadata fetch failed, assuming insights are needed", slog.Int("exit_code", code))
		return true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Info("metadata file unreadable, assuming insights are needed", slog.String("path", path), slog.String("error", err.Error()))
		return true
	}

	var meta api.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		logger.Info("metadata file is not valid JSON, assuming insights are needed", slog.String("path", path), slog.String("error", err.Error()))
		return true
	}

	logger.Debug("existing insights", slog.Any("insights", meta.Insights))
	return len(meta.Insights) == 0
}

// Collect runs every insight type and uploads each result unless uploads are skipped.
// A failing type does not stop the remaining ones; the stage fails afterwards.
func (c *Collector) Collect(ctx context.Context, cfg config.RunConfig) error {
	logger := c.logger()
	types := c.Types
	if types == nil {
		types = constants.InsightTypes
	}

	var failed []string
	for _, insightType := range types {
		var code int
		err := c.Workflow.Group(fmt.Sprintf("Collecting %s", insightType), func() error {
			var err error
			code, err = c.Tool.Run(ctx, invocation.InsightArgs(insightType))
			return err
		})
		if err != nil {
			return actionerr.Wrap(actionerr.ExternalToolFailure, fmt.Sprintf("failed to collect %s", insightType), err)
		}
		if code != 0 {
			c.Workflow.Error(fmt.Sprintf("Generation Step failed with exit code %d", code))
			failed = append(failed, insightType)
			continue
		}

		if cfg.SkipUpload {
			logger.Info("skipping insight upload", slog.String("insight", insightType))
			continue
		}

		err = c.Workflow.Group(fmt.Sprintf("Uploading %s", insightType), func() error {
			var err error
			code, err = c.Tool.Run(ctx, invocation.InsightUploadArgs(cfg, insightType))
			return err
		})
		if err != nil {
			return actionerr.Wrap(actionerr.ExternalToolFailure, fmt.Sprintf("failed to upload %s", insightType), err)
		}
		if code != 0 {
			c.Workflow.Error(fmt.Sprintf("Upload Step failed with exit code %d", code))
			failed = append(failed, insightType)
		}
	}

	if len(failed) > 0 {
		return actionerr.Newf(actionerr.ExternalToolFailure, "insight commands failed for %v", failed)
	}
	return nil
}

func (c *Collector) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
