package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/glossdev/gloss/internal/model"
)

// SourceFS abstracts filesystem operations the domain layer relies on when
// discovering inputs and writing commented output. It hides direct `os`
// access so the workflow logic can be tested without touching the disk.
type SourceFS interface {
	// ListFiles returns every regular file under root in lexical path
	// order, descending into subdirectories. Hidden directories (such as
	// .git) are not entered.
	ListFiles(root m.Path) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFileAtomic writes content to path via a same-directory temporary
	// file followed by a rename, so a killed process never leaves a
	// half-written output.
	WriteFileAtomic(path m.Path, content []byte, perm os.FileMode) error

	// FileInfo returns metadata for a path so the domain can distinguish
	// files from directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// MkdirAll creates a directory tree.
	MkdirAll(path m.Path, perm os.FileMode) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSourceFS is the os-backed SourceFS implementation.
type LocalSourceFS struct{}

// NewLocalSourceFS constructs a LocalSourceFS ready to be wired into the
// workflow.
func NewLocalSourceFS() *LocalSourceFS {
	return &LocalSourceFS{}
}

var _ SourceFS = (*LocalSourceFS)(nil)

// ListFiles walks root and collects regular files in lexical order.
func (a *LocalSourceFS) ListFiles(root m.Path) ([]m.Path, error) {
	var files []m.Path

	err := filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			base := filepath.Base(path)
			if path != string(root) && strings.HasPrefix(base, ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		files = append(files, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, err
	}

	// filepath.Walk already visits in lexical order; keep the guarantee
	// explicit for repeat-run determinism.
	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFileAtomic writes content through a temp file and rename.
func (a *LocalSourceFS) WriteFileAtomic(path m.Path, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(string(path))

	tmp, err := os.CreateTemp(dir, ".gloss-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return err
	}

	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, string(path)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFS) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// MkdirAll creates a directory tree.
func (a *LocalSourceFS) MkdirAll(path m.Path, perm os.FileMode) error {
	return os.MkdirAll(string(path), perm)
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFS) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFS) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
