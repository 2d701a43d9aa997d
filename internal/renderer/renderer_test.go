package renderer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/dsinit/internal/config"
	"github.com/dpshade/dsinit/internal/models"
	"github.com/dpshade/dsinit/internal/service"
	"github.com/dpshade/dsinit/internal/storage"
)

func sampleResult() *service.Result {
	return &service.Result{
		Root: "/work/proj1",
		Info: models.ProjectInfo{DirName: "proj1", Author: "Cube", CreateAt: "24-03-07", Tags: []string{"ml", "etl"}},
		Layout: storage.Result{
			CreatedDirs:   []string{"SQL", "notebook"},
			ExistingDirs:  []string{"src"},
			CreatedFiles:  []string{"README.md"},
			ExistingFiles: nil,
		},
	}
}

func TestRenderPlain(t *testing.T) {
	want := "project_root: /work/proj1\n" +
		"dirs_created: SQL, notebook\n" +
		"dirs_existing: src\n" +
		"files_created: README.md\n" +
		"files_existing: none\n" +
		"info.json: written\n"
	assert.Equal(t, want, RenderPlain(sampleResult()))
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(sampleResult())

	assert.Contains(t, md, "# proj1\n")
	assert.Contains(t, md, "- `SQL/` created\n")
	assert.Contains(t, md, "- `src/` already present\n")
	assert.Contains(t, md, "- `README.md` created\n")
	assert.Contains(t, md, "- **tags:** ml, etl\n")
}

func TestRenderMarkdown_EmptyFields(t *testing.T) {
	result := sampleResult()
	result.Info.DirName = ""
	result.Info.Author = ""
	result.Info.Tags = []string{""}

	md := RenderMarkdown(result)
	assert.Contains(t, md, "# /work/proj1\n")
	assert.Contains(t, md, "- **author:** _none_\n")
	assert.Contains(t, md, "- **tags:** _none_\n")
}

func TestRender_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(config.StylePlain, 80, nil).Render(&buf, sampleResult()))
	assert.Equal(t, RenderPlain(sampleResult()), buf.String())
}

func TestRender_Glamour(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer("notty", 80, nil).Render(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "proj1")
	assert.Contains(t, out, "SQL/")
	assert.Contains(t, out, "README.md")
}

func TestRender_UnknownStyleFallsBackToPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer("no-such-style", 80, nil).Render(&buf, sampleResult()))
	assert.Equal(t, RenderPlain(sampleResult()), buf.String())
}

func TestResolveStyle(t *testing.T) {
	assert.Equal(t, "dark", NewRenderer("dark", 0, nil).resolveStyle())

	t.Setenv("GLAMOUR_STYLE", "light")
	assert.Equal(t, "light", NewRenderer(config.StyleAuto, 0, nil).resolveStyle())
}
