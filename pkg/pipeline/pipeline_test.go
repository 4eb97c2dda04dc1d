// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/codesee-io/codesee-action/pkg/actionerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder builds Stages that append to calls and fail on the listed stage
func recorder(calls *[]StageID, failOn StageID) Stages {
	stage := func(id StageID) StageFunc {
		return func(ctx context.Context, rc RunContext, acc *Accumulator) error {
			*calls = append(*calls, id)
			if id == failOn {
				return errors.New("boom")
			}
			return nil
		}
	}
	return Stages{
		RequireCredential: stage(StageRequireCredential),
		Generate:          stage(StageGenerate),
		Upload:            stage(StageUpload),
		Insights:          stage(StageInsights),
	}
}

func TestStepStages(t *testing.T) {
	assert.Equal(t, []StageID{StageGenerate}, StepMap.Stages())
	assert.Equal(t, []StageID{StageRequireCredential, StageUpload}, StepMapUpload.Stages())
	assert.Equal(t, []StageID{StageRequireCredential, StageInsights}, StepInsights.Stages())
	assert.Equal(t, []StageID{StageRequireCredential, StageGenerate, StageUpload, StageInsights}, StepLegacy.Stages())
	assert.Nil(t, Step("bogus").Stages())
}

func TestStepNeedsOrigin(t *testing.T) {
	assert.False(t, StepMap.NeedsOrigin())
	assert.True(t, StepMapUpload.NeedsOrigin())
	assert.True(t, StepInsights.NeedsOrigin())
	assert.True(t, StepLegacy.NeedsOrigin())
	assert.False(t, Step("bogus").NeedsOrigin())
}

func TestParseStep(t *testing.T) {
	for _, s := range Steps() {
		parsed, err := ParseStep(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestNewUnknownStep(t *testing.T) {
	for _, name := range []string{"bogus", "", "Map", "LEGACY"} {
		t.Run(name, func(t *testing.T) {
			p, err := New(name, Stages{})
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, actionerr.Is(err, actionerr.UnknownStep))
			assert.Contains(t, err.Error(), "map, mapUpload, insights, legacy")
		})
	}
}

func TestNewMissingImplementation(t *testing.T) {
	var calls []StageID
	stages := recorder(&calls, "")
	stages.Upload = nil

	_, err := New("legacy", stages)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload")

	// map does not need upload
	_, err = New("map", stages)
	require.NoError(t, err)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name        string
		step        string
		failOn      StageID
		expected    []StageID
		expectState State
	}{
		{
			name:        "map runs generate only",
			step:        "map",
			expected:    []StageID{StageGenerate},
			expectState: Completed,
		},
		{
			name:        "mapUpload",
			step:        "mapUpload",
			expected:    []StageID{StageRequireCredential, StageUpload},
			expectState: Completed,
		},
		{
			name:        "insights",
			step:        "insights",
			expected:    []StageID{StageRequireCredential, StageInsights},
			expectState: Completed,
		},
		{
			name:        "legacy runs all stages in order",
			step:        "legacy",
			expected:    []StageID{StageRequireCredential, StageGenerate, StageUpload, StageInsights},
			expectState: Completed,
		},
		{
			name:        "legacy stops when credential is missing",
			step:        "legacy",
			failOn:      StageRequireCredential,
			expected:    []StageID{StageRequireCredential},
			expectState: Failed,
		},
		{
			name:        "legacy stops after failed generate",
			step:        "legacy",
			failOn:      StageGenerate,
			expected:    []StageID{StageRequireCredential, StageGenerate},
			expectState: Failed,
		},
		{
			name:        "legacy stops after failed upload",
			step:        "legacy",
			failOn:      StageUpload,
			expected:    []StageID{StageRequireCredential, StageGenerate, StageUpload},
			expectState: Failed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []StageID
			p, err := New(tt.step, recorder(&calls, tt.failOn))
			require.NoError(t, err)
			assert.Equal(t, NotStarted, p.State())

			err = p.Run(context.Background(), RunContext{})
			if tt.expectState == Failed {
				require.Error(t, err)
				assert.Contains(t, err.Error(), string(tt.failOn))
				assert.Equal(t, tt.failOn, p.Current())
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.expected, calls)
			assert.Equal(t, tt.expected, p.Trace())
			assert.Equal(t, tt.expectState, p.State())
		})
	}
}

func TestRunPreservesStageError(t *testing.T) {
	missing := actionerr.New(actionerr.MissingRequiredConfig, "api_token")
	stages := Stages{
		RequireCredential: func(context.Context, RunContext, *Accumulator) error { return missing },
		Upload: func(context.Context, RunContext, *Accumulator) error {
			t.Fatal("upload must not run")
			return nil
		},
	}

	p, err := New("mapUpload", stages)
	require.NoError(t, err)

	err = p.Run(context.Background(), RunContext{})
	assert.ErrorIs(t, err, missing)
	assert.True(t, actionerr.Is(err, actionerr.MissingRequiredConfig))
}

func TestAccumulatorFlowsBetweenStages(t *testing.T) {
	var sawGenerated bool
	stages := Stages{
		RequireCredential: func(context.Context, RunContext, *Accumulator) error { return nil },
		Generate: func(_ context.Context, _ RunContext, acc *Accumulator) error {
			acc.MapGenerated = true
			return nil
		},
		Upload: func(_ context.Context, _ RunContext, acc *Accumulator) error {
			sawGenerated = acc.MapGenerated
			acc.MapUploaded = true
			return nil
		},
		Insights: func(_ context.Context, _ RunContext, acc *Accumulator) error {
			acc.InsightsChecked = true
			return nil
		},
	}

	p, err := New("legacy", stages)
	require.NoError(t, err)
	require.NoError(t, p.Run(context.Background(), RunContext{}))

	assert.True(t, sawGenerated)
	assert.Equal(t, Accumulator{MapGenerated: true, MapUploaded: true, InsightsChecked: true}, p.Result())
}

func TestRunTwice(t *testing.T) {
	var calls []StageID
	p, err := New("map", recorder(&calls, ""))
	require.NoError(t, err)

	require.NoError(t, p.Run(context.Background(), RunContext{}))
	require.Error(t, p.Run(context.Background(), RunContext{}))
	assert.Len(t, calls, 1)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "not started", NotStarted.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "failed", Failed.String())
}
