package storage

import (
	"log/slog"
	"path/filepath"

	"github.com/dpshade/dsinit/internal/errors"
	"github.com/dpshade/dsinit/internal/fs"
	"github.com/dpshade/dsinit/internal/logging"
	"github.com/dpshade/dsinit/internal/models"
)

// InfoFile is the metadata record's file name, relative to the project root.
const InfoFile = "info.json"

const (
	dirPerm  = 0o777
	filePerm = 0o666
)

// Directories are created under the project root, parents first.
var Directories = []string{
	"SQL",
	"notebook",
	"src",
	"data",
	"data/pickle",
	"data/excel",
	"data/csv",
	"temp_module",
	"output",
	"temp",
}

// Files are touched under the project root after Directories exist.
var Files = []string{
	"README.md",
	"SQL/contents.md",
	"data/contents.md",
	InfoFile,
	"temp_module/__init__.py",
}

// Result lists the layout entries by what Materialize found on disk.
// Paths are relative to the project root and slash separated.
type Result struct {
	CreatedDirs   []string
	ExistingDirs  []string
	CreatedFiles  []string
	ExistingFiles []string
}

// Storage handles the filesystem side effects for one project root
type Storage struct {
	fs     fs.FS
	root   string
	logger *slog.Logger
}

// NewStorage creates a storage instance rooted at root
func NewStorage(fsys fs.FS, root string, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Storage{
		fs:     fsys,
		root:   root,
		logger: logger,
	}
}

// ProjectRoot joins base and dirName the way a path join does: an absolute
// dirName replaces base and an empty dirName leaves base as the root.
func ProjectRoot(base, dirName string) string {
	if filepath.IsAbs(dirName) {
		return filepath.Clean(dirName)
	}
	return filepath.Join(base, dirName)
}

// Materialize creates the project directories and touches the placeholder
// files. Existing entries are left as they are. Nothing is undone on failure.
func (s *Storage) Materialize() (Result, error) {
	var result Result

	for _, rel := range Directories {
		path := s.path(rel)
		info, err := s.fs.Stat(path)
		existed := err == nil && info.IsDir()

		if err := s.fs.MkdirAll(path, dirPerm); err != nil {
			return result, errors.StorageError("create directory", path, err)
		}

		if existed {
			result.ExistingDirs = append(result.ExistingDirs, rel)
			s.logger.Debug("directory exists", "path", path)
		} else {
			result.CreatedDirs = append(result.CreatedDirs, rel)
			s.logger.Debug("directory created", "path", path)
		}
	}

	for _, rel := range Files {
		path := s.path(rel)
		_, err := s.fs.Stat(path)
		existed := err == nil

		if err := s.fs.Touch(path, filePerm); err != nil {
			return result, errors.StorageError("create file", path, err)
		}

		if existed {
			result.ExistingFiles = append(result.ExistingFiles, rel)
			s.logger.Debug("file exists", "path", path)
		} else {
			result.CreatedFiles = append(result.CreatedFiles, rel)
			s.logger.Debug("file created", "path", path)
		}
	}

	return result, nil
}

// WriteInfo overwrites info.json with the encoded record
func (s *Storage) WriteInfo(info models.ProjectInfo) error {
	path := s.path(InfoFile)
	if err := s.fs.WriteFile(path, info.Encode(), filePerm); err != nil {
		return errors.StorageError("write", path, err)
	}
	s.logger.Debug("metadata written", "path", path, "tags", len(info.Tags))
	return nil
}

func (s *Storage) path(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}
