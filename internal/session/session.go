// File path: internal/session/session.go

// Package session persists conversation state between turns. The in-memory
// store backs single-process deployments and tests; the Redis store shares
// sessions across replicas.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/surveyforge/surveyforge/internal/survey"
)

// ErrNotFound is returned when a session id has no stored state.
var ErrNotFound = errors.New("session: not found")

// Session is one survey-authoring conversation.
type Session struct {
	ID        string       `json:"id"`
	State     survey.State `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Store is the persistence contract for sessions.
type Store interface {
	// Create stores a fresh session around the given state and returns it
	// with a newly assigned id.
	Create(ctx context.Context, st survey.State) (Session, error)
	// Get loads a session by id.
	Get(ctx context.Context, id string) (Session, error)
	// UpdateState replaces the stored state.
	UpdateState(ctx context.Context, id string, st survey.State) (Session, error)
	// Reset re-initializes the session to the given state, keeping the id.
	Reset(ctx context.Context, id string, st survey.State) (Session, error)
	// Delete removes a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

// SetField applies a manual edit to one of the editable state fields and
// returns the updated session. Only fields surfaced to the editing UI are
// accepted.
func SetField(ctx context.Context, store Store, id, field, value string) (Session, error) {
	if !survey.EditableField(field) {
		return Session{}, fmt.Errorf("session: field %q is not editable", field)
	}
	sess, err := store.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	st := sess.State
	if err := survey.SetField(&st, field, value); err != nil {
		return Session{}, err
	}
	return store.UpdateState(ctx, id, st)
}

func newID() string { return uuid.NewString() }
