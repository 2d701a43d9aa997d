package renderer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dpshade/dsinit/internal/config"
	"github.com/dpshade/dsinit/internal/logging"
	"github.com/dpshade/dsinit/internal/service"
	"github.com/dpshade/dsinit/internal/storage"
)

// Renderer handles the post-run summary
type Renderer struct {
	style    string
	wordWrap int
	logger   *slog.Logger
}

// NewRenderer creates a new renderer instance
func NewRenderer(style string, wordWrap int, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Renderer{
		style:    style,
		wordWrap: wordWrap,
		logger:   logger,
	}
}

// Render writes the summary for result to w
func (r *Renderer) Render(w io.Writer, result *service.Result) error {
	if r.style == config.StylePlain {
		_, err := io.WriteString(w, RenderPlain(result))
		return err
	}

	out, err := r.renderMarkdown(RenderMarkdown(result))
	if err != nil {
		r.logger.Warn("markdown rendering failed, using plain summary", "style", r.style, "error", err)
		out = RenderPlain(result)
	}
	_, err = io.WriteString(w, out)
	return err
}

func (r *Renderer) renderMarkdown(md string) (string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.resolveStyle()),
		glamour.WithWordWrap(r.wordWrap),
	)
	if err != nil {
		return "", err
	}
	return tr.Render(md)
}

// resolveStyle picks a glamour style name. GLAMOUR_STYLE wins over "auto".
func (r *Renderer) resolveStyle() string {
	if r.style != "" && r.style != config.StyleAuto {
		return r.style
	}
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return style
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return "notty"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// RenderMarkdown describes result as a markdown document
func RenderMarkdown(result *service.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", markdownTitle(result))
	fmt.Fprintf(&b, "Scaffolded at `%s`.\n\n", result.Root)

	b.WriteString("## Directories\n\n")
	writeEntries(&b, result.Layout.CreatedDirs, "/", "created")
	writeEntries(&b, result.Layout.ExistingDirs, "/", "already present")

	b.WriteString("\n## Files\n\n")
	writeEntries(&b, result.Layout.CreatedFiles, "", "created")
	writeEntries(&b, result.Layout.ExistingFiles, "", "already present")

	b.WriteString("\n## info.json\n\n")
	fmt.Fprintf(&b, "- **author:** %s\n", orNone(result.Info.Author))
	fmt.Fprintf(&b, "- **create_at:** %s\n", result.Info.CreateAt)
	fmt.Fprintf(&b, "- **tags:** %s\n", orNone(strings.Join(result.Info.Tags, ", ")))

	return b.String()
}

// RenderPlain describes result as stable key: value lines
func RenderPlain(result *service.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "project_root: %s\n", result.Root)
	fmt.Fprintf(&b, "dirs_created: %s\n", joinOrNone(result.Layout.CreatedDirs))
	fmt.Fprintf(&b, "dirs_existing: %s\n", joinOrNone(result.Layout.ExistingDirs))
	fmt.Fprintf(&b, "files_created: %s\n", joinOrNone(result.Layout.CreatedFiles))
	fmt.Fprintf(&b, "files_existing: %s\n", joinOrNone(result.Layout.ExistingFiles))
	fmt.Fprintf(&b, "%s: written\n", storage.InfoFile)
	return b.String()
}

func markdownTitle(result *service.Result) string {
	if result.Info.DirName != "" {
		return result.Info.DirName
	}
	return result.Root
}

func writeEntries(b *strings.Builder, paths []string, suffix, state string) {
	for _, p := range paths {
		fmt.Fprintf(b, "- `%s%s` %s\n", p, suffix, state)
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "_none_"
	}
	return s
}
