package errors

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/dsinit/internal/logging"
)

var (
	styleCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleInfo     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	styleDim      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// CLIErrorHandler handles errors for the command line
type CLIErrorHandler struct {
	Verbose bool
	Logger  *slog.Logger
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool, logger *slog.Logger) *CLIErrorHandler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &CLIErrorHandler{
		Verbose: verbose,
		Logger:  logger,
	}
}

// HandleError logs err (in verbose mode) and writes its diagnostic to w.
func (h *CLIErrorHandler) HandleError(w io.Writer, err error) {
	if err == nil {
		return
	}
	appErr := GetAppError(err)

	if h.Verbose {
		attrs := []any{
			"code", appErr.Code,
			"category", appErr.Category,
			"severity", appErr.Severity,
		}
		for _, k := range appErr.ContextKeys() {
			attrs = append(attrs, k, appErr.Context[k])
		}
		if appErr.Cause != nil {
			attrs = append(attrs, "cause", appErr.Cause)
		}
		h.Logger.Error(appErr.Message, attrs...)
	}

	fmt.Fprintln(w, h.FormatError(appErr))
}

// FormatError formats an error for terminal display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	var label string
	switch appErr.Severity {
	case SeverityCritical:
		label = styleCritical.Render("CRITICAL")
	case SeverityWarning:
		label = styleWarning.Render("WARNING")
	case SeverityInfo:
		label = styleInfo.Render("INFO")
	default:
		label = styleError.Render("ERROR")
	}

	msg := appErr.Message
	if appErr.Details != "" {
		msg += " (" + appErr.Details + ")"
	}
	if appErr.Cause != nil {
		msg += ": " + appErr.Cause.Error()
	}
	return fmt.Sprintf("%s %s %s", label, styleDim.Render("["+string(appErr.Code)+"]"), msg)
}
