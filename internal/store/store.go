package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Extension is the file extension of every artifact.
const Extension = ".mp3"

// ErrNotFound is returned when no artifact has the requested name.
var ErrNotFound = errors.New("artifact not found")

// ErrInvalidName is returned for names that would escape the directory.
var ErrInvalidName = errors.New("invalid artifact name")

// Artifact is a persisted synthesized-audio file.
type Artifact struct {
	Name      string
	Path      string
	Data      []byte
	Size      int64
	CreatedAt time.Time
}

// FileName returns the artifact's file name including the extension.
func (a *Artifact) FileName() string {
	return a.Name + Extension
}

// Store is a directory-scoped artifact store.
type Store struct {
	fs  afero.Fs
	dir string
}

// New returns a store rooted at dir on fs. The directory is created on the
// first write.
func New(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// NewOS returns a store on the operating system filesystem.
func NewOS(dir string) *Store {
	return New(afero.NewOsFs(), dir)
}

// Dir returns the working directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path for an artifact name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+Extension)
}

// Put writes data under name, replacing any artifact with the same name.
// The bytes go to a temporary file that is renamed into place, so readers
// never observe a partial artifact and a failed write leaves nothing behind.
func (s *Store) Put(name string, data []byte) (*Artifact, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, s.dir, ".part-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return nil, fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return nil, fmt.Errorf("failed to write audio file: %w", err)
	}

	// Temp files are created 0600.
	if err := s.fs.Chmod(tmpName, 0644); err != nil {
		_ = s.fs.Remove(tmpName)
		return nil, fmt.Errorf("failed to set audio file permissions: %w", err)
	}

	path := s.Path(name)
	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return nil, fmt.Errorf("failed to save audio file: %w", err)
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat audio file: %w", err)
	}

	return &Artifact{
		Name:      name,
		Path:      path,
		Data:      data,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

// Get reads an artifact back.
func (s *Store) Get(name string) (*Artifact, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	path := s.Path(name)
	info, err := s.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	return &Artifact{
		Name:      name,
		Path:      path,
		Data:      data,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

// List returns metadata for every artifact, oldest first. Data is not loaded.
// A missing directory yields an empty list.
func (s *Store) List() ([]Artifact, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list working directory: %w", err)
	}

	var artifacts []Artifact
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), Extension) {
			continue
		}
		name := strings.TrimSuffix(info.Name(), Extension)
		artifacts = append(artifacts, Artifact{
			Name:      name,
			Path:      filepath.Join(s.dir, info.Name()),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].CreatedAt.Before(artifacts[j].CreatedAt)
	})

	return artifacts, nil
}

// Delete removes an artifact.
func (s *Store) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := s.fs.Remove(s.Path(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
