// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package actions

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)

	err := w.Group("Generate Map Data", func() error {
		out.WriteString("inside\n")
		return errors.New("stage failed")
	})

	require.EqualError(t, err, "stage failed")
	assert.Equal(t, "::group::Generate Map Data\ninside\n::endgroup::\n", out.String())
}

func TestCommands(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)

	w.AddMask("T0k3n")
	w.AddMask("")
	w.Notice("all languages allowed")
	w.Warning("50% done\nnext")
	w.SetFailed("CodeSee Map failed: boom")
	w.Debug("debug line")

	assert.Equal(t,
		"::add-mask::T0k3n\n"+
			"::notice::all languages allowed\n"+
			"::warning::50%25 done%0Anext\n"+
			"::error::CodeSee Map failed: boom\n"+
			"::debug::debug line\n",
		out.String())
}

func TestSetOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	t.Setenv("GITHUB_OUTPUT", path)

	require.NoError(t, SetOutput("disabled_languages", "python"))
	require.NoError(t, SetOutput("insights_needed", "true"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	re := regexp.MustCompile(`(?s)^disabled_languages<<(ghadelimiter_[0-9a-f-]+)\npython\n(ghadelimiter_[0-9a-f-]+)\ninsights_needed<<`)
	m := re.FindStringSubmatch(string(data))
	require.NotNil(t, m, "unexpected output file: %s", data)
	assert.Equal(t, m[1], m[2])
}

func TestSetOutputOutsideActions(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	assert.NoError(t, SetOutput("name", "value"))
}

func TestAppendSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")
	t.Setenv("GITHUB_STEP_SUMMARY", path)

	require.NoError(t, AppendSummary("# one"))
	require.NoError(t, AppendSummary("two\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# one\ntwo\n", string(data))
}

func TestInCI(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "true")
	assert.True(t, InCI())
	t.Setenv("GITHUB_ACTIONS", "")
	assert.False(t, InCI())
}
