package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/verte-zerg/agroscan/internal/api"
)

type fakeBackend struct {
	mux      *http.ServeMux
	calls    map[string]int
	loggedIn bool
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{mux: http.NewServeMux(), calls: map[string]int{}}
	b.mux.HandleFunc("/api/check-auth", func(w http.ResponseWriter, r *http.Request) {
		b.calls["check-auth"]++
		if b.loggedIn {
			writeJSON(w, http.StatusOK, map[string]any{"authenticated": true, "email": "farmer@example.com"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
	})
	b.mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		b.calls["login"]++
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] == "secret" {
			b.loggedIn = true
			writeJSON(w, http.StatusOK, map[string]any{"message": "Login successful"})
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
	})
	b.mux.HandleFunc("/api/signup", func(w http.ResponseWriter, r *http.Request) {
		b.calls["signup"]++
		writeJSON(w, http.StatusOK, map[string]any{"message": "Account created"})
	})
	b.mux.HandleFunc("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		b.calls["logout"]++
		b.loggedIn = false
		writeJSON(w, http.StatusOK, map[string]any{"message": "Logged out"})
	})
	return b
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newManager(t *testing.T, backend *fakeBackend) *Manager {
	t.Helper()
	server := httptest.NewServer(backend.mux)
	t.Cleanup(server.Close)
	client, err := api.NewClient(server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return NewManager(client)
}

func TestRefreshSignedOut(t *testing.T) {
	m := newManager(t, newFakeBackend())
	session := m.Refresh(context.Background())
	if session.Authenticated || session.Email != "" {
		t.Fatalf("expected signed-out session, got %+v", session)
	}
}

func TestLoginSuccessThenRefresh(t *testing.T) {
	backend := newFakeBackend()
	m := newManager(t, backend)
	outcome := m.Login(context.Background(), "farmer@example.com", "secret")
	if outcome.Code != OK {
		t.Fatalf("expected OK, got %+v", outcome)
	}
	if !m.Current().Authenticated || m.Current().Email != "farmer@example.com" {
		t.Fatalf("session not updated: %+v", m.Current())
	}
	session := m.Refresh(context.Background())
	if !session.Authenticated {
		t.Fatalf("expected authenticated after refresh, got %+v", session)
	}
}

func TestLoginFailureCarriesServerMessage(t *testing.T) {
	m := newManager(t, newFakeBackend())
	outcome := m.Login(context.Background(), "farmer@example.com", "wrong")
	if outcome.Code != Failed {
		t.Fatalf("expected Failed, got %+v", outcome)
	}
	if outcome.Message != "Invalid credentials" {
		t.Fatalf("expected server message, got %q", outcome.Message)
	}
	if m.Current().Authenticated {
		t.Fatalf("failed login must leave session unchanged")
	}
}

func TestSignupMismatchSkipsNetwork(t *testing.T) {
	backend := newFakeBackend()
	m := newManager(t, backend)
	outcome := m.Signup(context.Background(), "farmer@example.com", "one", "two")
	if outcome.Code != Mismatch {
		t.Fatalf("expected Mismatch, got %+v", outcome)
	}
	if backend.calls["signup"] != 0 {
		t.Fatalf("mismatch must not reach the server, got %d calls", backend.calls["signup"])
	}
}

func TestSignupSuccess(t *testing.T) {
	m := newManager(t, newFakeBackend())
	outcome := m.Signup(context.Background(), "farmer@example.com", "secret", "secret")
	if outcome.Code != OK || outcome.Message != "Account created" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if m.Current().Authenticated {
		t.Fatalf("signup must not sign the user in")
	}
}

func TestLogoutResetsSession(t *testing.T) {
	backend := newFakeBackend()
	m := newManager(t, backend)
	if outcome := m.Login(context.Background(), "farmer@example.com", "secret"); outcome.Code != OK {
		t.Fatalf("login failed: %+v", outcome)
	}
	outcome := m.Logout(context.Background())
	if outcome.Code != OK {
		t.Fatalf("expected OK, got %+v", outcome)
	}
	if m.Current().Authenticated {
		t.Fatalf("expected signed-out session after logout")
	}
}

func TestRefreshAfterServerGone(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend.mux)
	client, err := api.NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	m := NewManager(client)
	server.Close()
	session := m.Refresh(context.Background())
	if session.Authenticated {
		t.Fatalf("transport failure must read as signed-out")
	}
}
