package prompt

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/dsinit/internal/errors"
	"github.com/dpshade/dsinit/internal/models"
)

func TestLineCollector_CollectsInOrder(t *testing.T) {
	in := strings.NewReader("proj1\nDemo\nCube\nml, etl\n")
	var out bytes.Buffer

	answers, err := NewLineCollector(in, &out).Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "proj1", answers.DirName)
	assert.Equal(t, "Demo", answers.ProjectName)
	assert.Equal(t, "Cube", answers.Author)
	assert.Equal(t, models.TagList{"ml", "etl"}, answers.Tags)

	want := PromptDirName + PromptProjectName + PromptAuthor + PromptTags
	assert.Equal(t, want, out.String())
	assert.Equal(t, "Project directory name: Project name: Anthor: Tags(using ', ' as sep): ", out.String())
}

func TestLineCollector_KeepsWhitespace(t *testing.T) {
	in := strings.NewReader("  proj1 \r\nDemo\nCube \nml,etl\n")

	answers, err := NewLineCollector(in, &bytes.Buffer{}).Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "  proj1 ", answers.DirName)
	assert.Equal(t, "Cube ", answers.Author)
	assert.Equal(t, models.TagList{"ml,etl"}, answers.Tags)
}

func TestLineCollector_EmptyAnswers(t *testing.T) {
	answers, err := NewLineCollector(strings.NewReader("\n\n\n\n"), &bytes.Buffer{}).Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "", answers.DirName)
	assert.Equal(t, models.TagList{""}, answers.Tags)
}

func TestLineCollector_UnterminatedLastLine(t *testing.T) {
	answers, err := NewLineCollector(strings.NewReader("proj1\nDemo\nCube\nml, etl"), &bytes.Buffer{}).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.TagList{"ml", "etl"}, answers.Tags)
}

func TestLineCollector_InputClosed(t *testing.T) {
	var out bytes.Buffer
	_, err := NewLineCollector(strings.NewReader("proj1\nDemo\n"), &out).Collect(context.Background())
	require.Error(t, err)

	assert.Equal(t, errors.ErrCodeInputClosed, errors.GetCode(err))
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Anthor:", appErr.Context["prompt"])
	assert.True(t, strings.HasSuffix(out.String(), PromptAuthor))
}

func TestLineCollector_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := NewLineCollector(strings.NewReader("proj1\n"), &out).Collect(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCancelled, errors.GetCode(err))
	assert.Empty(t, out.String())
}

func TestLoadAnswers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	content := "dir_name: proj1\nproject_name: Demo\nauthor: Cube\ntags: \"ml, etl\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	answers, err := FileCollector{Path: path}.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.Answers{
		DirName:     "proj1",
		ProjectName: "Demo",
		Author:      "Cube",
		Tags:        models.TagList{"ml", "etl"},
	}, answers)
}

func TestLoadAnswers_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadAnswers(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("dir_name: [unterminated\n"), 0o644))
	_, err = LoadAnswers(bad)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}
