// Package session persists the authenticated session ({token, user}) to a
// JSON file and hands the token to the API client. Reads never fail: a
// missing or corrupt file simply means "logged out".
package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"redseam/internal/logging"
	"redseam/internal/types"
)

// Session is the persisted shape. It carries no expiry; the server decides
// when the token dies and the client reacts to the resulting 401.
type Session struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

// Manager owns the session file. Construct one at the composition root and
// inject it wherever the current user or token is needed.
type Manager struct {
	path string

	mu      sync.Mutex
	current *Session

	subMu sync.Mutex
	subs  []func()
}

// NewManager creates a Manager for the given session file path and loads any
// existing session. A load failure is treated as logged-out, not an error.
func NewManager(path string) *Manager {
	m := &Manager{path: path}
	m.reload()
	return m
}

// reload reads the session file into memory. Absent or malformed data yields
// a nil session.
func (m *Manager) reload() {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		m.current = nil
		return
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil || s.Token == "" {
		logging.Get(logging.CategorySession).Warn("discarding unreadable session file: %v", err)
		m.current = nil
		return
	}
	m.current = &s
}

// Establish persists the session returned by login or register.
func (m *Manager) Establish(auth *types.AuthResponse) error {
	s := &Session{Token: auth.Token, User: auth.User}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0600); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	logging.Get(logging.CategorySession).Info("session established for %s", auth.User.Username)
	m.notify()
	return nil
}

// Clear logs out: the file is removed and subscribers are told.
func (m *Manager) Clear() error {
	err := os.Remove(m.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	logging.Get(logging.CategorySession).Info("session cleared")
	m.notify()
	return nil
}

// Current returns the logged-in user, or nil. It never fails.
func (m *Manager) Current() *types.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	u := m.current.User
	return &u
}

// Token returns the bearer token, or "" when logged out. Matches the
// api.TokenSource signature.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

// Authenticated reports whether a session exists.
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// Subscribe registers a callback invoked after every session change
// (establish, clear, or external file mutation). The dependency is explicit:
// callers declare the side effect instead of relying on hidden re-render
// machinery.
func (m *Manager) Subscribe(fn func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) notify() {
	m.subMu.Lock()
	subs := make([]func(), len(m.subs))
	copy(subs, m.subs)
	m.subMu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Watch follows the session file until ctx is done, re-reading it and
// notifying subscribers when another process writes or removes it. This is
// the terminal-client analog of a second browser tab logging in or out.
func (m *Manager) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		watcher.Close()
		return err
	}
	// Watch the directory, not the file: editors and os.WriteFile may
	// replace the inode.
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != m.path {
					continue
				}
				logging.Get(logging.CategorySession).Debug("session file event: %s", ev.Op)
				m.reload()
				m.notify()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Get(logging.CategorySession).Warn("session watcher: %v", err)
			}
		}
	}()

	return nil
}
