package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type FormState string

const (
	FormStatePristine   FormState = "pristine"
	FormStateDirty      FormState = "dirty"
	FormStateValidating FormState = "validating"
	FormStateRejected   FormState = "rejected"
	FormStateSubmitting FormState = "submitting"
	FormStateSucceeded  FormState = "succeeded"
	FormStateFailed     FormState = "failed"
)

// TransitionError reports a state change the form session does not allow.
type TransitionError struct {
	From FormState
	To   FormState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("form session cannot move from %s to %s", e.From, e.To)
}

// Closed reports whether the session already reached its terminal state.
func (e *TransitionError) Closed() bool {
	return e.From == FormStateSucceeded
}

// FormSession is the server held draft of one editor. Original holds the document as it was
// hydrated so that asset reconciliation can compare against it after an update.
type FormSession[T any] struct {
	ID              string            `json:"id"`
	Kind            string            `json:"kind"`
	AdminID         string            `json:"adminId"`
	EntityID        string            `json:"entityId,omitempty"`
	State           FormState         `json:"state"`
	Draft           T                 `json:"draft"`
	Original        *T                `json:"original,omitempty"`
	NextID          int64             `json:"nextId"`
	PendingBranches map[string]string `json:"pendingBranches,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func NewFormSession[T any](kind, adminID string, draft T) *FormSession[T] {
	now := time.Now().UTC()
	return &FormSession[T]{
		ID:        uuid.NewString(),
		Kind:      kind,
		AdminID:   adminID,
		State:     FormStatePristine,
		Draft:     draft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewEditFormSession starts a session on an existing entity. seedID is the largest element id
// already present in the document; ids handed out afterwards are strictly greater.
func NewEditFormSession[T any](kind, adminID, entityID string, draft, original T, seedID int64) *FormSession[T] {
	session := NewFormSession(kind, adminID, draft)
	session.EntityID = entityID
	session.Original = &original
	session.NextID = seedID
	return session
}

func (s *FormSession[T]) IsEditFlow() bool {
	return s.EntityID != ""
}

func (s *FormSession[T]) NextElementID() int64 {
	s.NextID++
	return s.NextID
}

func (s *FormSession[T]) SetPendingBranch(key, raw string) {
	if s.PendingBranches == nil {
		s.PendingBranches = make(map[string]string)
	}
	s.PendingBranches[key] = raw
}

func (s *FormSession[T]) ClearPendingBranch(key string) {
	delete(s.PendingBranches, key)
	if len(s.PendingBranches) == 0 {
		s.PendingBranches = nil
	}
}

func (s *FormSession[T]) editable() bool {
	switch s.State {
	case FormStatePristine, FormStateDirty, FormStateRejected, FormStateFailed:
		return true
	}
	return false
}

func (s *FormSession[T]) transition(to FormState, allowed bool) error {
	if !allowed {
		return &TransitionError{From: s.State, To: to}
	}
	s.State = to
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkDirty records a local edit. Edits are refused while submitting and after success.
func (s *FormSession[T]) MarkDirty() error {
	return s.transition(FormStateDirty, s.editable())
}

func (s *FormSession[T]) BeginValidation() error {
	return s.transition(FormStateValidating, s.editable())
}

func (s *FormSession[T]) Reject() error {
	return s.transition(FormStateRejected, s.State == FormStateValidating)
}

func (s *FormSession[T]) BeginSubmit() error {
	return s.transition(FormStateSubmitting, s.State == FormStateValidating)
}

func (s *FormSession[T]) Succeed() error {
	return s.transition(FormStateSucceeded, s.State == FormStateSubmitting)
}

func (s *FormSession[T]) Fail() error {
	return s.transition(FormStateFailed, s.State == FormStateSubmitting)
}
