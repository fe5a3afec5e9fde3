// Package session holds the admin bearer token between commands.
// Stores are passed explicitly to the clients that need them; nothing here
// reads ambient process state.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// TokenKey is the key the admin token is persisted under.
const TokenKey = "adminToken"

// Store provides read and write access to the admin session token.
type Store interface {
	// Token returns the current token, or "" when no session exists.
	Token(ctx context.Context) (string, error)

	SetToken(ctx context.Context, token string) error

	// Clear removes the token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// Memory is a process-local Store.
type Memory struct {
	mu    sync.RWMutex
	token string
}

// NewMemory creates a Memory store seeded with token.
func NewMemory(token string) *Memory {
	return &Memory{token: token}
}

func (m *Memory) Token(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *Memory) SetToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	return m.SetToken(ctx, "")
}

// File persists the token in a TOML document so it survives between
// invocations of the admin CLI.
type File struct {
	mu   sync.Mutex
	path string
}

type fileDocument struct {
	AdminToken string `toml:"adminToken"`
}

// NewFile creates a File store at path. The file is created on first write.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("session path required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session path: %w", err)
	}

	return &File{path: abs}, nil
}

// Path returns the absolute location of the session file.
func (f *File) Path() string {
	return f.path
}

func (f *File) Token(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return "", err
	}
	return doc.AdminToken, nil
}

func (f *File) SetToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(fileDocument{AdminToken: token})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename session: %w", err)
	}

	return nil
}

func (f *File) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (f *File) read() (fileDocument, error) {
	var doc fileDocument

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("read session: %w", err)
	}

	if err := toml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse session: %w", err)
	}

	return doc, nil
}
