// Package prompt collects the scaffold answers from a console or an answers file.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dpshade/dsinit/internal/errors"
	"github.com/dpshade/dsinit/internal/models"
	"gopkg.in/yaml.v3"
)

// Prompt texts, written in this order.
const (
	PromptDirName     = "Project directory name: "
	PromptProjectName = "Project name: "
	PromptAuthor      = "Anthor: "
	PromptTags        = "Tags(using ', ' as sep): "
)

// Collector produces the answers for one scaffold run.
type Collector interface {
	Collect(ctx context.Context) (models.Answers, error)
}

// LineCollector asks each question on out and reads one line per answer from in.
type LineCollector struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineCollector creates a collector reading from in and prompting on out.
func NewLineCollector(in io.Reader, out io.Writer) *LineCollector {
	return &LineCollector{in: bufio.NewReader(in), out: out}
}

// Collect implements Collector
func (c *LineCollector) Collect(ctx context.Context) (models.Answers, error) {
	var answers models.Answers
	var tags string

	fields := []struct {
		prompt string
		dst    *string
	}{
		{PromptDirName, &answers.DirName},
		{PromptProjectName, &answers.ProjectName},
		{PromptAuthor, &answers.Author},
		{PromptTags, &tags},
	}

	for _, f := range fields {
		if err := ctx.Err(); err != nil {
			return models.Answers{}, errors.Wrap(err, errors.ErrCodeCancelled, "prompt interrupted")
		}
		line, err := c.ask(f.prompt)
		if err != nil {
			return models.Answers{}, err
		}
		*f.dst = line
	}

	answers.Tags = models.SplitTags(tags)
	return answers, nil
}

// ask writes prompt and reads a single line. Only the line terminator is
// removed. EOF with nothing read is an error; a final unterminated line is
// accepted.
func (c *LineCollector) ask(prompt string) (string, error) {
	if _, err := io.WriteString(c.out, prompt); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternalError, "write prompt")
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", errors.Wrap(err, errors.ErrCodeInvalidInput, "read answer")
		}
		if line == "" {
			return "", errors.InputClosedError(prompt)
		}
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// FileCollector reads answers from a YAML file.
type FileCollector struct {
	Path string
}

// Collect implements Collector
func (c FileCollector) Collect(ctx context.Context) (models.Answers, error) {
	if err := ctx.Err(); err != nil {
		return models.Answers{}, errors.Wrap(err, errors.ErrCodeCancelled, "answers not loaded")
	}
	return LoadAnswers(c.Path)
}

// LoadAnswers reads an answers file such as:
//
//	dir_name: proj1
//	project_name: Demo
//	author: Cube
//	tags: "ml, etl"
//
// tags may also be given as a YAML list.
func LoadAnswers(path string) (models.Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Answers{}, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read answers file").
			WithContext("path", path)
	}

	var answers models.Answers
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return models.Answers{}, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to parse answers file").
			WithContext("path", path)
	}
	return answers, nil
}

// String is used in debug logs.
func (c FileCollector) String() string {
	return fmt.Sprintf("answers file %s", c.Path)
}
