// Package session tracks the authenticated identity and the auth operations.
package session

import (
	"context"
	"errors"

	"github.com/verte-zerg/agroscan/internal/api"
	"github.com/verte-zerg/agroscan/internal/model"
)

// Code classifies the outcome of an auth operation.
type Code int

const (
	// OK means the operation succeeded.
	OK Code = iota
	// Failed means the server or transport rejected the operation.
	Failed
	// Mismatch means signup was stopped before any network call because the
	// passwords did not match.
	Mismatch
)

// Outcome is what an auth operation reports back to the UI. Failures are
// values here, never errors: every failure degrades to a visible message.
type Outcome struct {
	Code    Code
	Message string
}

// Manager owns the session state. It is the only mutator of the current
// identity.
type Manager struct {
	client  *api.Client
	current model.Session
}

// NewManager builds a signed-out manager.
func NewManager(client *api.Client) *Manager {
	return &Manager{client: client}
}

// Current returns the session as last reported.
func (m *Manager) Current() model.Session {
	return m.current
}

// Refresh queries the auth-check endpoint. Any failure reads as signed-out.
func (m *Manager) Refresh(ctx context.Context) model.Session {
	status := m.client.CheckAuth(ctx)
	if status.Authenticated && status.Email != "" {
		m.current = model.Session{Authenticated: true, Email: status.Email}
	} else {
		m.current = model.Session{}
	}
	return m.current
}

// Login authenticates and, on success, records the identity.
func (m *Manager) Login(ctx context.Context, email, password string) Outcome {
	msg, err := m.client.Login(ctx, email, password)
	if err != nil {
		return failedOutcome(err)
	}
	m.current = model.Session{Authenticated: true, Email: email}
	return Outcome{Code: OK, Message: msg.Message}
}

// Signup registers a new account. Mismatched passwords fail immediately with
// no network call; the session is never changed by signup.
func (m *Manager) Signup(ctx context.Context, email, password, confirm string) Outcome {
	if password != confirm {
		return Outcome{Code: Mismatch}
	}
	msg, err := m.client.Signup(ctx, email, password)
	if err != nil {
		return failedOutcome(err)
	}
	return Outcome{Code: OK, Message: msg.Message}
}

// Logout ends the session. On failure the current identity is left unchanged.
func (m *Manager) Logout(ctx context.Context) Outcome {
	msg, err := m.client.Logout(ctx)
	if err != nil {
		return failedOutcome(err)
	}
	m.current = model.Session{}
	return Outcome{Code: OK, Message: msg.Message}
}

func failedOutcome(err error) Outcome {
	var status *api.StatusError
	if errors.As(err, &status) && status.Message != "" {
		return Outcome{Code: Failed, Message: status.Message}
	}
	return Outcome{Code: Failed, Message: err.Error()}
}
