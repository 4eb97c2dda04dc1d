// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package event

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/codesee-io/codesee-action/api"
	"github.com/codesee-io/codesee-action/pkg/actionerr"
)

const (
	Push              = "push"
	PullRequest       = "pull_request"
	PullRequestTarget = "pull_request_target"
)

// Context is the triggering event as seen by the action
type Context struct {
	Name    string
	Payload api.EventPayload
}

// PullRequestInfo holds the pull request fields needed to build tool arguments
type PullRequestInfo struct {
	BaseRef string
	BaseSHA string
	Number  int
}

// Load reads the event payload at path. A missing, unreadable or malformed
// payload yields an empty record rather than an error.
func Load(name string, path string) Context {
	ctx := Context{Name: name}
	if path == "" {
		return ctx
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("event payload unavailable", slog.String("path", path), slog.String("error", err.Error()))
		return ctx
	}

	var payload api.EventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		slog.Debug("event payload is not valid JSON", slog.String("path", path), slog.String("error", err.Error()))
		return ctx
	}
	ctx.Payload = payload

	return ctx
}

// IsPullRequestEvent reports whether name is a pull request event. pull_request_target
// is the event used for forked pull requests with secrets; pull_request is kept for
// workflows that have not migrated.
func IsPullRequestEvent(name string) bool {
	return name == PullRequest || name == PullRequestTarget
}

// IsForkedPullRequestEvent reports whether the event is a pull request opened from a fork.
// For pull request events whose payload lacks the head repository fork flag it returns a
// MalformedEventPayload error; callers decide how to treat the unknown case.
func IsForkedPullRequestEvent(name string, payload api.EventPayload) (bool, error) {
	if !IsPullRequestEvent(name) {
		return false, nil
	}

	pr := payload.PullRequest
	if pr == nil {
		return false, actionerr.Newf(actionerr.MalformedEventPayload, "%s event has no pull_request record", name)
	}
	if pr.Head == nil || pr.Head.Repo == nil || pr.Head.Repo.Fork == nil {
		return false, actionerr.Newf(actionerr.MalformedEventPayload, "%s event has no pull_request.head.repo.fork flag", name)
	}

	return *pr.Head.Repo.Fork, nil
}

// PullRequestFields extracts the base ref, base sha and number of the pull request.
// baseRef takes precedence over pull_request.base.ref when set.
func PullRequestFields(ctx Context, baseRef string) (PullRequestInfo, error) {
	pr := ctx.Payload.PullRequest
	if pr == nil {
		return PullRequestInfo{}, actionerr.Newf(actionerr.MalformedEventPayload, "%s event has no pull_request record", ctx.Name)
	}

	info := PullRequestInfo{BaseRef: baseRef, Number: pr.Number}
	if pr.Base != nil {
		if info.BaseRef == "" {
			info.BaseRef = pr.Base.Ref
		}
		info.BaseSHA = pr.Base.SHA
	}

	var missing []string
	if info.BaseRef == "" {
		missing = append(missing, "base ref")
	}
	if info.BaseSHA == "" {
		missing = append(missing, "pull_request.base.sha")
	}
	if info.Number <= 0 {
		missing = append(missing, "pull_request.number")
	}
	if len(missing) > 0 {
		return PullRequestInfo{}, actionerr.Newf(actionerr.MalformedEventPayload, "%s event is missing %v", ctx.Name, missing)
	}

	return info, nil
}
