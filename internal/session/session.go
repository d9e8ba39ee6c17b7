// Package session keeps authoring sessions between API calls. A session is
// the server-side home of one employer's in-progress form.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dangerclosesec/jobdesk/internal/form"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/review"
	"github.com/google/uuid"
)

// ActionSave guards publish and draft saves of a session. Both write the
// same record, so they share one lock.
const ActionSave = "save"

// Session is one authoring session.
type Session struct {
	ID         string     `json:"id"`
	EmployerID uuid.UUID  `json:"employer_id"`
	Form       *form.Form `json:"form"`
	Step       form.Step  `json:"step"`

	// ExistingID, ExistingType and Revision identify the stored record being
	// edited. They are empty until the first successful save of a new posting.
	ExistingID   *uuid.UUID            `json:"existing_id,omitempty"`
	ExistingType model.OpportunityType `json:"existing_type,omitempty"`
	Revision     int64                 `json:"revision"`

	WasVerified bool             `json:"was_verified"`
	Snapshot    *review.Snapshot `json:"snapshot,omitempty"`

	// Company is the employer's resolved company, nil when none was found.
	Company *model.Company `json:"company,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New starts a session on the first step.
func New(employerID uuid.UUID, f *form.Form) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         uuid.NewString(),
		EmployerID: employerID,
		Form:       f,
		Step:       form.FirstStep,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Editing reports whether the session edits a stored record.
func (s *Session) Editing() bool {
	return s.ExistingID != nil
}

// Target returns the id to update on the next save, or nil when the save
// must create a record. A form switched away from the stored record's type
// targets a new record in the new type's store.
func (s *Session) Target() *uuid.UUID {
	if s.ExistingID == nil || s.ExistingType != s.Form.Type {
		return nil
	}
	id := *s.ExistingID
	return &id
}

// Store persists sessions between requests. Sessions expire after an idle
// TTL. Get of an unknown or expired session yields domain.ErrSessionNotFound.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	// Acquire takes the in-flight lock of action on a session. A held lock
	// yields domain.ErrActionInFlight. The returned func releases it.
	Acquire(ctx context.Context, id, action string) (func(), error)
}

func encode(s *Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	if s.Form == nil {
		return nil, fmt.Errorf("decoding session: missing form")
	}
	s.Form.Normalize()
	return &s, nil
}

func lockKey(id, action string) string {
	return "lock:" + id + ":" + action
}
