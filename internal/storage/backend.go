package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// LineBackend is where the lines of one table live. Implementations do not
// interpret lines; Stores serialize calls to a backend.
type LineBackend interface {
	// ReadLines returns every line in table order, without line terminators.
	ReadLines(ctx context.Context) ([]string, error)
	// AppendLine adds one line at the end of the table.
	AppendLine(ctx context.Context, line string) error
	// WriteLines replaces the whole table with lines.
	WriteLines(ctx context.Context, lines []string) error
}

// FileBackend keeps a table in a newline-terminated text file.
type FileBackend struct {
	path string
}

// NewFileBackend creates the parent directory and an empty file if they do not exist yet.
func NewFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create table file %s: %w", path, err)
	}
	f.Close()
	return &FileBackend{path: path}, nil
}

func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) ReadLines(ctx context.Context) ([]string, error) {
	f, err := os.Open(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", b.path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}
	return lines, nil
}

func (b *FileBackend) AppendLine(ctx context.Context, line string) error {
	f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", b.path, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to %s: %w", b.path, err)
	}
	return f.Close()
}

// WriteLines writes into a temporary file next to the table and renames it over
// the table, so readers see either the old or the new contents.
func (b *FileBackend) WriteLines(ctx context.Context, lines []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", b.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write %s: %w", tmpName, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", b.path, err)
	}
	return nil
}

// MemoryBackend keeps a table in memory. Used by tests and as a scratch store.
type MemoryBackend struct {
	mu    sync.Mutex
	lines []string
}

func NewMemoryBackend(lines ...string) *MemoryBackend {
	return &MemoryBackend{lines: append([]string(nil), lines...)}
}

// Lines returns a copy of the current contents.
func (b *MemoryBackend) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

func (b *MemoryBackend) ReadLines(ctx context.Context) ([]string, error) {
	return b.Lines(), nil
}

func (b *MemoryBackend) AppendLine(ctx context.Context, line string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
	return nil
}

func (b *MemoryBackend) WriteLines(ctx context.Context, lines []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append([]string(nil), lines...)
	return nil
}
