package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormSessionTransitions(t *testing.T) {
	t.Run("Happy Path", func(t *testing.T) {
		session := NewFormSession("consultation", "admin", NewConsultation())
		assert.Equal(t, FormStatePristine, session.State)

		require.NoError(t, session.MarkDirty())
		require.NoError(t, session.BeginValidation())
		require.NoError(t, session.BeginSubmit())
		require.NoError(t, session.Succeed())
		assert.Equal(t, FormStateSucceeded, session.State)
	})

	t.Run("Rejected Draft Can Be Edited And Resubmitted", func(t *testing.T) {
		session := NewFormSession("consultation", "admin", NewConsultation())
		require.NoError(t, session.BeginValidation())
		require.NoError(t, session.Reject())

		require.NoError(t, session.BeginValidation(), "resubmit straight from rejected")
		require.NoError(t, session.Reject())
		require.NoError(t, session.MarkDirty())
		assert.Equal(t, FormStateDirty, session.State)
	})

	t.Run("Failed Draft Stays Editable", func(t *testing.T) {
		session := NewFormSession("consultation", "admin", NewConsultation())
		require.NoError(t, session.BeginValidation())
		require.NoError(t, session.BeginSubmit())
		require.NoError(t, session.Fail())

		require.NoError(t, session.MarkDirty())
		require.NoError(t, session.BeginValidation())
	})

	t.Run("Submitting Refuses Edits And Second Submit", func(t *testing.T) {
		session := NewFormSession("consultation", "admin", NewConsultation())
		require.NoError(t, session.BeginValidation())
		require.NoError(t, session.BeginSubmit())

		var transitionErr *TransitionError
		require.True(t, errors.As(session.MarkDirty(), &transitionErr))
		assert.False(t, transitionErr.Closed())
		assert.Error(t, session.BeginValidation())
		assert.Equal(t, FormStateSubmitting, session.State, "refused transitions keep the state")
	})

	t.Run("Succeeded Is Terminal", func(t *testing.T) {
		session := NewFormSession("consultation", "admin", NewConsultation())
		require.NoError(t, session.BeginValidation())
		require.NoError(t, session.BeginSubmit())
		require.NoError(t, session.Succeed())

		var transitionErr *TransitionError
		require.True(t, errors.As(session.MarkDirty(), &transitionErr))
		assert.True(t, transitionErr.Closed())
		assert.Error(t, session.BeginValidation())
	})
}

func TestFormSessionIDs(t *testing.T) {
	original := sampleConsultation()
	session := NewEditFormSession("consultation", "admin", "c1", original, original, original.MaxElementID())

	assert.True(t, session.IsEditFlow())
	assert.Equal(t, int64(41), session.NextElementID())
	assert.Equal(t, int64(42), session.NextElementID())

	session.SetPendingBranch("k:yes", "{oops")
	assert.Equal(t, "{oops", session.PendingBranches["k:yes"])
	session.ClearPendingBranch("k:yes")
	assert.Nil(t, session.PendingBranches)
}
