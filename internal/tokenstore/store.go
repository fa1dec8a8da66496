// Package tokenstore persists the bearer token across restarts. It is the
// moral equivalent of the browser's localStorage: one key, one string, and
// absence means logged out.
package tokenstore

import (
	"os"
	"path/filepath"
	"strings"
)

// Store is the durable single-key token storage.
type Store interface {
	// Load returns the stored token, or "" when none is stored.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// File stores the token in a single file, created with 0600.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *File) Save(token string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	// Write-then-rename so a crash never leaves a truncated token behind.
	tmp, err := os.CreateTemp(dir, "token-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, f.path)
}

func (f *File) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Memory is an in-process Store for tests.
type Memory struct {
	token string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() (string, error) {
	return m.token, nil
}

func (m *Memory) Save(token string) error {
	m.token = token
	return nil
}

func (m *Memory) Clear() error {
	m.token = ""
	return nil
}
