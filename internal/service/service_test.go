package service

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/dsinit/internal/errors"
	"github.com/dpshade/dsinit/internal/fs"
	"github.com/dpshade/dsinit/internal/models"
	"github.com/dpshade/dsinit/internal/prompt"
	"github.com/dpshade/dsinit/internal/storage"
)

var fixedNow = time.Date(2024, time.March, 7, 10, 30, 0, 0, time.Local)

func newTestService() *Service {
	return NewService(fs.NewRealFS(), WithClock(func() time.Time { return fixedNow }))
}

func readInfo(t *testing.T, root string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, storage.InfoFile))
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	return got
}

func TestRun_EndToEnd(t *testing.T) {
	base := t.TempDir()
	in := strings.NewReader("proj1\nDemo\nCube\nml, etl\n")
	collector := prompt.NewLineCollector(in, &bytes.Buffer{})

	result, err := newTestService().Run(context.Background(), base, collector)
	require.NoError(t, err)

	root := filepath.Join(base, "proj1")
	assert.Equal(t, root, result.Root)
	for _, rel := range storage.Directories {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		require.NoError(t, err, rel)
		assert.True(t, info.IsDir())
	}
	for _, rel := range storage.Files {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		require.NoError(t, err, rel)
	}

	data, err := os.ReadFile(filepath.Join(root, storage.InfoFile))
	require.NoError(t, err)
	assert.Equal(t,
		`{"dir_name": "proj1", "author": "Cube", "create_at": "24-03-07", "description": "", "tags": ["ml", "etl"]}`,
		string(data))
}

func TestScaffold_ProjectNameNotPersisted(t *testing.T) {
	base := t.TempDir()
	answers := models.Answers{DirName: "proj1", ProjectName: "Secret Name", Author: "Cube", Tags: models.SplitTags("x")}

	result, err := newTestService().Scaffold(context.Background(), base, answers)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(result.Root, storage.InfoFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Secret Name")
	assert.NotContains(t, string(data), "project_name")
}

func TestScaffold_RerunOverwritesInfoOnly(t *testing.T) {
	base := t.TempDir()
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Scaffold(ctx, base, models.Answers{DirName: "proj1", Author: "Cube", Tags: models.SplitTags("ml, etl")})
	require.NoError(t, err)

	notebook := filepath.Join(base, "proj1", "notebook", "explore.ipynb")
	require.NoError(t, os.WriteFile(notebook, []byte("{}"), 0o644))

	result, err := svc.Scaffold(ctx, base, models.Answers{DirName: "proj1", Author: "Someone Else", Tags: models.SplitTags("demo")})
	require.NoError(t, err)
	assert.Empty(t, result.Layout.CreatedDirs)
	assert.Empty(t, result.Layout.CreatedFiles)

	got := readInfo(t, result.Root)
	assert.Equal(t, "Someone Else", got["author"])
	assert.Equal(t, []any{"demo"}, got["tags"])

	content, err := os.ReadFile(notebook)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))
}

func TestScaffold_CreatesMissingBase(t *testing.T) {
	base := filepath.Join(t.TempDir(), "does", "not", "exist")

	result, err := newTestService().Scaffold(context.Background(), base, models.Answers{DirName: "proj1"})
	require.NoError(t, err)

	got := readInfo(t, result.Root)
	assert.Equal(t, "", got["description"])
	assert.Equal(t, "24-03-07", got["create_at"])
}

func TestScaffold_CancelledContext(t *testing.T) {
	base := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService().Scaffold(ctx, base, models.Answers{DirName: "proj1"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCancelled, errors.GetCode(err))

	_, statErr := os.Stat(filepath.Join(base, "proj1"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_CollectorErrorStopsBeforeFilesystem(t *testing.T) {
	base := t.TempDir()
	collector := prompt.NewLineCollector(strings.NewReader("proj1\n"), &bytes.Buffer{})

	_, err := newTestService().Run(context.Background(), base, collector)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInputClosed, errors.GetCode(err))

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestKnownTags(t *testing.T) {
	base := t.TempDir()
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Scaffold(ctx, base, models.Answers{DirName: "a", Tags: models.SplitTags("ml, etl")})
	require.NoError(t, err)
	_, err = svc.Scaffold(ctx, base, models.Answers{DirName: "b", Tags: models.SplitTags("etl, viz")})
	require.NoError(t, err)

	assert.Equal(t, []string{"etl", "ml", "viz"}, svc.KnownTags(base))
	assert.Nil(t, svc.KnownTags(filepath.Join(base, "missing")))
}
