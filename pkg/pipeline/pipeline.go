// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/codesee-io/codesee-action/pkg/config"
	"github.com/codesee-io/codesee-action/pkg/event"
	"github.com/codesee-io/codesee-action/pkg/gate"
)

// State of a pipeline run
type State int

const (
	NotStarted State = iota
	Running
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunContext is shared read-only by every stage of a run
type RunContext struct {
	Config   config.RunConfig
	Event    event.Context
	Decision gate.Decision
}

// Accumulator carries values produced by earlier stages to later ones. It belongs
// to the Pipeline and is only handed to stages while they run.
type Accumulator struct {
	MapGenerated      bool
	MapUploaded       bool
	InsightsChecked   bool
	InsightsNeeded    bool
	InsightsCollected bool
}

// StageFunc implements one stage
type StageFunc func(ctx context.Context, rc RunContext, acc *Accumulator) error

// Stages binds an implementation to every StageID
type Stages struct {
	RequireCredential StageFunc
	Generate          StageFunc
	Upload            StageFunc
	Insights          StageFunc
}

func (s Stages) lookup(id StageID) StageFunc {
	switch id {
	case StageRequireCredential:
		return s.RequireCredential
	case StageGenerate:
		return s.Generate
	case StageUpload:
		return s.Upload
	case StageInsights:
		return s.Insights
	}
	return nil
}

// Pipeline runs the stages of one step, in order, stopping at the first failure
type Pipeline struct {
	step    Step
	stages  Stages
	state   State
	current StageID
	trace   []StageID
	acc     Accumulator
}

// New resolves name to a step and checks every stage of that step is implemented.
func New(name string, stages Stages) (*Pipeline, error) {
	step, err := ParseStep(name)
	if err != nil {
		return nil, err
	}

	for _, id := range step.Stages() {
		if stages.lookup(id) == nil {
			return nil, fmt.Errorf("no implementation for stage %q of step %q", id, step)
		}
	}

	return &Pipeline{step: step, stages: stages}, nil
}

// Run executes the step's stages. Side effects of a failed stage are left in place.
func (p *Pipeline) Run(ctx context.Context, rc RunContext) error {
	if p.state != NotStarted {
		return fmt.Errorf("pipeline for step %q already %s", p.step, p.state)
	}

	for _, id := range p.step.Stages() {
		p.state = Running
		p.current = id
		p.trace = append(p.trace, id)

		if err := p.stages.lookup(id)(ctx, rc, &p.acc); err != nil {
			p.state = Failed
			return fmt.Errorf("stage %s failed: %w", id, err)
		}
	}

	p.state = Completed
	return nil
}

func (p *Pipeline) Step() Step {
	return p.step
}

func (p *Pipeline) State() State {
	return p.state
}

// Current returns the stage running, or the last one that ran
func (p *Pipeline) Current() StageID {
	return p.current
}

// Trace returns the stages entered so far, in call order
func (p *Pipeline) Trace() []StageID {
	return slices.Clone(p.trace)
}

// Result returns a copy of the accumulated stage values
func (p *Pipeline) Result() Accumulator {
	return p.acc
}
