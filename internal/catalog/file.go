package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

// FileSource reads the catalog from a directory holding one YAML list per
// table, named <kind>.yaml. A missing file is an empty table.
type FileSource struct {
	dir string
	log *slog.Logger
}

// FileOption configures a FileSource.
type FileOption func(*FileSource)

// WithFileLogger sets the logger for the file source.
func WithFileLogger(l *slog.Logger) FileOption {
	return func(s *FileSource) {
		s.log = l
	}
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string, opts ...FileOption) *FileSource {
	s := &FileSource{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Dir returns the catalog directory.
func (s *FileSource) Dir() string {
	return s.dir
}

// Path returns the file backing kind.
func (s *FileSource) Path(k Kind) string {
	return filepath.Join(s.dir, string(k)+".yaml")
}

// Ping checks that the catalog directory exists.
func (s *FileSource) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("checking catalog directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("catalog path %s is not a directory", s.dir)
	}
	return nil
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) (*domain.Catalog, error) {
	raw, err := s.LoadRaw(ctx)
	if err != nil {
		return nil, err
	}
	return Build(raw), nil
}

// LoadRaw reads every table file without keying them.
func (s *FileSource) LoadRaw(ctx context.Context) (*Raw, error) {
	raw := &Raw{}
	for _, k := range Kinds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.readKind(raw, k); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

func (s *FileSource) readKind(raw *Raw, k Kind) error {
	path := s.Path(k)
	data, err := os.ReadFile(path) //nolint:gosec // path built from configured catalog dir
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("catalog table missing, treating as empty", "kind", k, "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	target, err := raw.target(k)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// WriteRaw writes each table of raw as <kind>.yaml under dir, creating dir
// if needed. Used by the export command and tests.
func WriteRaw(dir string, raw *Raw) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}
	for _, k := range Kinds {
		target, err := raw.target(k)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(target)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", k, err)
		}
		path := filepath.Join(dir, string(k)+".yaml")
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
