package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"redseam/internal/types"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestMissingFileMeansLoggedOut(t *testing.T) {
	m := NewManager(sessionPath(t))

	if m.Authenticated() {
		t.Error("fresh manager should not be authenticated")
	}
	if m.Current() != nil {
		t.Errorf("Current() = %+v, want nil", m.Current())
	}
	if m.Token() != "" {
		t.Errorf("Token() = %q, want empty", m.Token())
	}
}

func TestMalformedFileMeansLoggedOut(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "garbage{{{"},
		{"empty object", "{}"},
		{"empty token", `{"token": "", "user": {"id": 1}}`},
		{"wrong shape", `["a", "b"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := sessionPath(t)
			if err := os.WriteFile(path, []byte(tt.data), 0600); err != nil {
				t.Fatal(err)
			}
			m := NewManager(path)
			if m.Authenticated() {
				t.Errorf("authenticated from %q", tt.data)
			}
			if m.Current() != nil {
				t.Errorf("Current() = %+v from %q", m.Current(), tt.data)
			}
		})
	}
}

func TestEstablishRoundTrip(t *testing.T) {
	path := sessionPath(t)
	m := NewManager(path)

	auth := &types.AuthResponse{
		Token: "tok-abc",
		User:  types.User{ID: 3, Username: "shopper", Email: "s@example.com"},
	}
	if err := m.Establish(auth); err != nil {
		t.Fatalf("Establish: %v", err)
	}

	if !m.Authenticated() {
		t.Error("should be authenticated after Establish")
	}
	if m.Token() != "tok-abc" {
		t.Errorf("Token() = %q", m.Token())
	}
	if u := m.Current(); u == nil || u.Username != "shopper" {
		t.Errorf("Current() = %+v", u)
	}

	// mode 0600: the token is a credential
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("session file mode = %v, want 0600", info.Mode().Perm())
	}

	// a second manager over the same file picks the session up
	m2 := NewManager(path)
	if m2.Token() != "tok-abc" {
		t.Errorf("reloaded Token() = %q", m2.Token())
	}
}

func TestClear(t *testing.T) {
	path := sessionPath(t)
	m := NewManager(path)
	if err := m.Establish(&types.AuthResponse{Token: "tok", User: types.User{ID: 1}}); err != nil {
		t.Fatal(err)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if m.Authenticated() {
		t.Error("still authenticated after Clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file still exists: %v", err)
	}

	// clearing an already-cleared session is not an error
	if err := m.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	m := NewManager(sessionPath(t))
	if err := m.Establish(&types.AuthResponse{Token: "tok", User: types.User{Username: "shopper"}}); err != nil {
		t.Fatal(err)
	}

	u := m.Current()
	u.Username = "mutated"
	if m.Current().Username != "shopper" {
		t.Error("Current returned shared state, want a copy")
	}
}

func TestSubscribersNotified(t *testing.T) {
	m := NewManager(sessionPath(t))

	calls := 0
	m.Subscribe(func() { calls++ })

	if err := m.Establish(&types.AuthResponse{Token: "tok", User: types.User{ID: 1}}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("calls after Establish = %d, want 1", calls)
	}
	if err := m.Clear(); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("calls after Clear = %d, want 2", calls)
	}
}

func TestWatch_PicksUpExternalLogin(t *testing.T) {
	path := sessionPath(t)
	m := NewManager(path)

	notified := make(chan struct{}, 4)
	m.Subscribe(func() { notified <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := m.Watch(ctx); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	// a second manager (another terminal) logs in
	other := NewManager(path)
	if err := other.Establish(&types.AuthResponse{Token: "tok-ext", User: types.User{Username: "other"}}); err != nil {
		t.Fatal(err)
	}

	select {
	case <-notified:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher never noticed the external write")
	}
	if m.Token() != "tok-ext" {
		t.Errorf("Token() = %q after external login", m.Token())
	}
}
