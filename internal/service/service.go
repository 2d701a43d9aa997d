package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dpshade/dsinit/internal/errors"
	"github.com/dpshade/dsinit/internal/fs"
	"github.com/dpshade/dsinit/internal/logging"
	"github.com/dpshade/dsinit/internal/models"
	"github.com/dpshade/dsinit/internal/prompt"
	"github.com/dpshade/dsinit/internal/storage"
)

// Service runs scaffolds against a filesystem
type Service struct {
	fs     fs.FS
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithClock sets the time source used for create_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger handed to storage.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a new service instance
func NewService(fsys fs.FS, opts ...Option) *Service {
	s := &Service{
		fs:     fsys,
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result describes a finished scaffold
type Result struct {
	Root   string
	Info   models.ProjectInfo
	Layout storage.Result
}

// Run collects answers and scaffolds the project under base.
func (s *Service) Run(ctx context.Context, base string, collector prompt.Collector) (*Result, error) {
	answers, err := collector.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return s.Scaffold(ctx, base, answers)
}

// Scaffold materializes the layout for answers under base and writes info.json.
func (s *Service) Scaffold(ctx context.Context, base string, answers models.Answers) (*Result, error) {
	info := models.NewProjectInfo(answers, s.now())
	root := storage.ProjectRoot(base, answers.DirName)
	s.logger.Debug("scaffolding project", "root", root, "project_name", answers.ProjectName)

	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	store := storage.NewStorage(s.fs, root, s.logger)
	layout, err := store.Materialize()
	if err != nil {
		return nil, err
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	if err := store.WriteInfo(info); err != nil {
		return nil, err
	}

	return &Result{Root: root, Info: info, Layout: layout}, nil
}

// KnownTags returns tags already used by projects under base. A missing or
// unreadable base yields no tags.
func (s *Service) KnownTags(base string) []string {
	tags, err := storage.KnownTags(s.fs, base)
	if err != nil {
		s.logger.Debug("tag catalog unavailable", "base", base, "error", err)
		return nil
	}
	return tags
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCancelled, "scaffold interrupted")
	}
	return nil
}
