// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

// Package invocation builds argument vectors for the codesee CLI. Builders are pure:
// the same inputs always produce the same vector.
package invocation

import (
	"strconv"
	"strings"

	"github.com/codesee-io/codesee-action/pkg/config"
	"github.com/codesee-io/codesee-action/pkg/constants"
	"github.com/codesee-io/codesee-action/pkg/event"
	"github.com/codesee-io/codesee-action/pkg/gate"
)

const redacted = "***"

// MapArgs builds `codesee map`. Languages disabled by the gate are excluded here
// and only here, since no other command runs analyzers.
func MapArgs(cfg config.RunConfig, decision gate.Decision) []string {
	args := []string{"map", "-o", constants.MapFile}

	if cfg.WebpackConfigPath != "" {
		args = append(args, "-w", cfg.WebpackConfigPath)
	}
	if cfg.SupportTypescript {
		args = append(args, "--typescript")
	}
	if len(decision.Disabled) > 0 {
		args = append(args, "-x", strings.Join(decision.Disabled, ","))
	}

	return args
}

// UploadMapArgs builds `codesee upload --type map`. On pull request events the base
// ref, base sha and PR number are required.
func UploadMapArgs(cfg config.RunConfig, ev event.Context) ([]string, error) {
	args := []string{
		"upload",
		"--type", "map",
		"--repo", RepoURL(cfg.Origin),
		"-a", cfg.APIToken,
	}
	args = appendHeadRef(args, cfg)

	if event.IsPullRequestEvent(ev.Name) {
		pr, err := event.PullRequestFields(ev, cfg.BaseRef)
		if err != nil {
			return nil, err
		}
		args = append(args,
			"-b", pr.BaseRef,
			"-s", pr.BaseSHA,
			"-p", strconv.Itoa(pr.Number),
		)
	}

	return append(args, constants.MapFile), nil
}

// MetadataArgs builds `codesee metadata`, which writes the insights already computed
// for the repository to constants.MetadataFile.
func MetadataArgs(cfg config.RunConfig) []string {
	args := []string{
		"metadata",
		"--repo", RepoURL(cfg.Origin),
		"-a", cfg.APIToken,
	}
	args = appendHeadRef(args, cfg)
	return append(args, "-o", constants.MetadataFile)
}

func InsightArgs(insightType string) []string {
	return []string{
		"insight",
		"--insightType", insightType,
		"-o", constants.InsightFile(insightType),
	}
}

func InsightUploadArgs(cfg config.RunConfig, insightType string) []string {
	args := []string{
		"upload",
		"--type", "insight",
		"--repo", RepoURL(cfg.Origin),
		"-a", cfg.APIToken,
		constants.InsightFile(insightType),
	}
	if cfg.InsightsServiceURL != "" {
		args = append(args, "--url", cfg.InsightsServiceURL)
	}
	return args
}

// RepoURL returns the GitHub URL for owner/repo
func RepoURL(origin string) string {
	return constants.GitHubURL + origin
}

// Redact returns a copy of args safe for logging
func Redact(args []string, secrets ...string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = arg
		for _, secret := range secrets {
			if secret != "" && strings.Contains(out[i], secret) {
				out[i] = strings.ReplaceAll(out[i], secret, redacted)
			}
		}
	}
	return out
}

func appendHeadRef(args []string, cfg config.RunConfig) []string {
	if cfg.HeadRef == "" {
		return args
	}
	return append(args, "--head-ref", cfg.HeadRef)
}
