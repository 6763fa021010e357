package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Store is a flat, directory-like sink for encoded images.
// A name written with Write must be readable with Read afterwards.
type Store interface {
	Write(name string, data []byte) error
	Read(name string) ([]byte, error)
	// Path returns the identifier reported to callers for name.
	Path(name string) string
	// Location describes where the store keeps its files.
	Location() string
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}

// Dir stores files in a single filesystem directory
type Dir struct {
	root string
}

// NewDir creates the directory if needed and returns a store rooted there
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Dir{root: root}, nil
}

// Write replaces name atomically: readers see either the previous file or
// the complete new one.
func (d *Dir) Write(name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.root, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, d.Path(name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move %s into place: %w", name, err)
	}

	return nil
}

func (d *Dir) Read(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.Path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (d *Dir) Path(name string) string {
	return filepath.Join(d.root, name)
}

func (d *Dir) Location() string {
	return d.root
}

// Memory keeps files in a map; used by tests and dry runs
type Memory struct {
	files map[string][]byte
	mu    sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{
		files: make(map[string][]byte),
	}
}

func (m *Memory) Write(name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = buf
	return nil
}

func (m *Memory) Read(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, exists := m.files[name]
	if !exists {
		return nil, fmt.Errorf("failed to read %s: %w", name, fs.ErrNotExist)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

func (m *Memory) Path(name string) string {
	return "memory://" + name
}

func (m *Memory) Location() string {
	return "memory://"
}

// Names lists stored files in lexical order
func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Memory) Delete(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, name)
}
