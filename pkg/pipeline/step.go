// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package pipeline

import (
	"slices"
	"strings"

	"github.com/codesee-io/codesee-action/pkg/actionerr"
)

// Step selects which stages a run executes
type Step string

const (
	StepMap       Step = "map"
	StepMapUpload Step = "mapUpload"
	StepInsights  Step = "insights"
	StepLegacy    Step = "legacy"
)

// StageID names one unit of work inside a step
type StageID string

const (
	StageRequireCredential StageID = "requireCredential"
	StageGenerate          StageID = "generate"
	StageUpload            StageID = "upload"
	StageInsights          StageID = "insights"
)

// Steps returns every valid step in declaration order
func Steps() []Step {
	return []Step{StepMap, StepMapUpload, StepInsights, StepLegacy}
}

// Stages returns the ordered stage list of s, or nil for an unknown step
func (s Step) Stages() []StageID {
	switch s {
	case StepMap:
		return []StageID{StageGenerate}
	case StepMapUpload:
		return []StageID{StageRequireCredential, StageUpload}
	case StepInsights:
		return []StageID{StageRequireCredential, StageInsights}
	case StepLegacy:
		return []StageID{StageRequireCredential, StageGenerate, StageUpload, StageInsights}
	}
	return nil
}

// NeedsOrigin reports whether any stage of s sends the repository url to the server
func (s Step) NeedsOrigin() bool {
	stages := s.Stages()
	return slices.Contains(stages, StageUpload) || slices.Contains(stages, StageInsights)
}

// ParseStep maps a configured step name onto a Step
func ParseStep(name string) (Step, error) {
	for _, s := range Steps() {
		if string(s) == name {
			return s, nil
		}
	}

	valid := make([]string, 0, len(Steps()))
	for _, s := range Steps() {
		valid = append(valid, string(s))
	}
	return "", actionerr.Newf(actionerr.UnknownStep, "unknown step %q, valid steps are: %s", name, strings.Join(valid, ", "))
}
