// Package store persists chapter documents under an output folder, one file
// per ordinal. A file's presence is the only record that a chapter has been
// acquired. Check-then-write is unguarded: two runs on one folder race.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/util"
)

const IndexFile = "index.html"

// StorageError is a folder creation or file write failure.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Prepare creates the output folder if needed.
func (s *Store) Prepare() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return &StorageError{Op: "mkdir", Path: s.dir, Err: err}
	}
	return nil
}

func (s *Store) Path(ordinal int) string {
	return filepath.Join(s.dir, chapters.FileName(ordinal))
}

func (s *Store) IndexPath() string {
	return filepath.Join(s.dir, IndexFile)
}

func (s *Store) Exists(ordinal int) bool {
	info, err := os.Stat(s.Path(ordinal))
	return err == nil && info.Mode().IsRegular()
}

// Write renders and persists one chapter, returning the document size.
func (s *Store) Write(ch chapters.Chapter, body string) (int64, error) {
	data, err := renderChapter(ch, body)
	if err != nil {
		return 0, fmt.Errorf("render chapter %d: %w", ch.Ordinal, err)
	}

	path := s.Path(ch.Ordinal)
	if err := util.WriteFileAtomic(path, data, 0644); err != nil {
		return 0, &StorageError{Op: "write", Path: path, Err: err}
	}

	return int64(len(data)), nil
}

func (s *Store) WriteIndex(data []byte) error {
	path := s.IndexPath()
	if err := util.WriteFileAtomic(path, data, 0644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Missing returns the ordinals among chs that have no artifact yet.
func (s *Store) Missing(chs []chapters.Chapter) []int {
	out := []int{}
	for _, ch := range chs {
		if !s.Exists(ch.Ordinal) {
			out = append(out, ch.Ordinal)
		}
	}
	return out
}

// FolderName turns a novel title into a single path element.
func FolderName(title string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", ":", " -", "\x00", "")
	name := strings.TrimSpace(r.Replace(title))
	if name == "" || name == "." || name == ".." {
		return "novel"
	}
	return name
}

// IsStorageError reports whether err came from the filesystem side.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
