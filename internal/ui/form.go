package ui

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/dpshade/dsinit/internal/errors"
	"github.com/dpshade/dsinit/internal/models"
	"github.com/dpshade/dsinit/internal/prompt"
)

// Form field indices
const (
	dirNameField = iota
	projectNameField
	authorField
	tagsField
	fieldCount
)

var fieldLabels = [fieldCount]string{
	strings.TrimSuffix(prompt.PromptDirName, ": "),
	strings.TrimSuffix(prompt.PromptProjectName, ": "),
	strings.TrimSuffix(prompt.PromptAuthor, ": "),
	strings.TrimSuffix(prompt.PromptTags, ": "),
}

// Form collects the scaffold answers in a single screen
type Form struct {
	inputs      []textinput.Model
	focused     int
	keys        formKeyMap
	knownTags   []string
	suggestions []string
	submitted   bool
	cancelled   bool
	closed      bool
}

// NewForm creates the answers form. knownTags feed tag completion.
func NewForm(knownTags []string) *Form {
	setupStyles()

	inputs := make([]textinput.Model, fieldCount)

	inputs[dirNameField] = textinput.New()
	inputs[dirNameField].Placeholder = "churn-analysis"
	inputs[dirNameField].CharLimit = 255
	inputs[dirNameField].Width = 40

	inputs[projectNameField] = textinput.New()
	inputs[projectNameField].Placeholder = "Customer churn analysis"
	inputs[projectNameField].CharLimit = 255
	inputs[projectNameField].Width = 40

	inputs[authorField] = textinput.New()
	inputs[authorField].CharLimit = 255
	inputs[authorField].Width = 40

	inputs[tagsField] = textinput.New()
	inputs[tagsField].Placeholder = "ml, etl, reporting"
	inputs[tagsField].CharLimit = 1024
	inputs[tagsField].Width = 60

	for i := range inputs {
		inputs[i].Prompt = "> "
	}
	inputs[dirNameField].Focus()

	return &Form{
		inputs:    inputs,
		focused:   dirNameField,
		keys:      defaultFormKeyMap(),
		knownTags: knownTags,
	}
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(inputClosedMsg); ok {
		f.closed = true
		return f, tea.Quit
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.keys.Cancel):
			f.cancelled = true
			return f, tea.Quit
		case key.Matches(msg, f.keys.Complete):
			if f.focused == tagsField && len(f.suggestions) > 0 {
				f.inputs[tagsField].SetValue(completeTag(f.inputs[tagsField].Value(), f.suggestions[0]))
				f.inputs[tagsField].CursorEnd()
				f.updateSuggestions()
				return f, nil
			}
			return f, f.nextField()
		case key.Matches(msg, f.keys.Submit):
			if f.focused == tagsField {
				f.submitted = true
				return f, tea.Quit
			}
			return f, f.nextField()
		case key.Matches(msg, f.keys.Next):
			return f, f.nextField()
		case key.Matches(msg, f.keys.Prev):
			return f, f.prevField()
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	if f.focused == tagsField {
		f.updateSuggestions()
	}
	return f, cmd
}

// View implements tea.Model
func (f *Form) View() string {
	if f.submitted || f.cancelled || f.closed {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("New data-science project"))
	b.WriteString("\n")

	for i := range f.inputs {
		label := StyleLabel
		if i == f.focused {
			label = StyleLabelFocused
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
		if i == tagsField && len(f.suggestions) > 0 {
			b.WriteString(f.renderSuggestions())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(StyleHelp.Render(f.renderHelp()))
	return StyleForm.Render(b.String())
}

// Answers returns the current field values
func (f *Form) Answers() models.Answers {
	return models.Answers{
		DirName:     f.inputs[dirNameField].Value(),
		ProjectName: f.inputs[projectNameField].Value(),
		Author:      f.inputs[authorField].Value(),
		Tags:        models.SplitTags(f.inputs[tagsField].Value()),
	}
}

// Submitted reports whether the user confirmed the form
func (f *Form) Submitted() bool {
	return f.submitted
}

// Cancelled reports whether the user abandoned the form
func (f *Form) Cancelled() bool {
	return f.cancelled
}

// Suggestions returns the tag completions for the tags field
func (f *Form) Suggestions() []string {
	return f.suggestions
}

func (f *Form) nextField() tea.Cmd {
	return f.focus((f.focused + 1) % fieldCount)
}

func (f *Form) prevField() tea.Cmd {
	return f.focus((f.focused + fieldCount - 1) % fieldCount)
}

func (f *Form) focus(field int) tea.Cmd {
	f.inputs[f.focused].Blur()
	f.focused = field
	if field != tagsField {
		f.suggestions = nil
	} else {
		f.updateSuggestions()
	}
	return f.inputs[field].Focus()
}

func (f *Form) updateSuggestions() {
	f.suggestions = suggestTags(f.inputs[tagsField].Value(), f.knownTags)
}

func (f *Form) renderSuggestions() string {
	parts := make([]string, len(f.suggestions))
	for i, s := range f.suggestions {
		if i == 0 {
			parts[i] = StyleSuggestTop.Render(s)
		} else {
			parts[i] = StyleSuggestion.Render(s)
		}
	}
	return "  " + strings.Join(parts, StyleSuggestion.Render(" · "))
}

func (f *Form) renderHelp() string {
	bindings := f.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// FormCollector runs the form as a prompt.Collector
type FormCollector struct {
	In        io.Reader
	Out       io.Writer
	KnownTags []string
}

// Collect implements prompt.Collector. Input that ends before the form is
// submitted is reported as INPUT_CLOSED.
func (c FormCollector) Collect(ctx context.Context) (models.Answers, error) {
	form := NewForm(c.KnownTags)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	var in *eofReader
	if c.In != nil {
		if isTerminal(c.In) {
			opts = append(opts, tea.WithInput(c.In))
		} else {
			in = &eofReader{r: c.In}
			opts = append(opts, tea.WithInput(in))
		}
	}
	if c.Out != nil {
		opts = append(opts, tea.WithOutput(c.Out))
	}

	p := tea.NewProgram(form, opts...)
	if in != nil {
		in.program = p
	}

	final, err := p.Run()
	if ctx.Err() != nil {
		return models.Answers{}, errors.Wrap(ctx.Err(), errors.ErrCodeCancelled, "form interrupted")
	}
	if err != nil {
		if stderrors.Is(err, tea.ErrProgramKilled) {
			return models.Answers{}, errors.CancelledError()
		}
		return models.Answers{}, errors.Wrap(err, errors.ErrCodeInternalError, "form failed")
	}

	done, ok := final.(*Form)
	if !ok || done.Cancelled() {
		return models.Answers{}, errors.CancelledError()
	}
	if !done.Submitted() {
		return models.Answers{}, errors.New(errors.ErrCodeInputClosed, "input closed before the form was submitted")
	}
	return done.Answers(), nil
}

// inputClosedMsg tells the form that no more key presses will arrive.
type inputClosedMsg struct{}

// eofReader forwards reads to r and sends inputClosedMsg to program the
// first time r reports io.EOF.
type eofReader struct {
	r       io.Reader
	program *tea.Program
	once    sync.Once
}

func (e *eofReader) Read(b []byte) (int, error) {
	n, err := e.r.Read(b)
	if err == io.EOF && e.program != nil {
		e.once.Do(func() { e.program.Send(inputClosedMsg{}) })
	}
	return n, err
}

// isTerminal reports whether in is an interactive terminal. Terminals are
// handed to bubbletea directly so it can switch them to raw mode.
func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
