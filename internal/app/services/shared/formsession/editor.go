package formsession

import (
	"context"
	"errors"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"

	"github.com/goccy/go-json"
)

// Validator returns the field errors blocking a submit. A non nil error aborts the submit without
// blaming the draft.
type Validator[T any] func(ctx context.Context, session *models.FormSession[T]) ([]exceptions.FieldError, error)

// Sender delivers the accepted draft. It may rewrite session.Draft, for instance to record the
// URLs of freshly uploaded files, and the rewritten draft is what gets stored on success.
type Sender[T any] func(ctx context.Context, session *models.FormSession[T]) (json.RawMessage, error)

// Load returns the draft when it belongs to the admin in ctx.
func Load[T any](ctx context.Context, store contracts.DraftStore[T], draftID string) (*models.FormSession[T], error) {
	session, err := store.Find(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if session.AdminID != utils.GetAdminID(ctx) {
		return nil, exceptions.ErrDraftNotFound(errors.New("draft owned by another admin"), draftID)
	}
	return session, nil
}

// Edit applies mutate to the draft under its lock and stores the result as dirty. Nothing is
// stored when mutate fails.
func Edit[T any](ctx context.Context, store contracts.DraftStore[T], draftID string, mutate func(session *models.FormSession[T]) error) (*models.FormSession[T], error) {
	var edited *models.FormSession[T]
	err := store.WithLock(ctx, draftID, func() error {
		session, err := Load(ctx, store, draftID)
		if err != nil {
			return err
		}
		if err := session.MarkDirty(); err != nil {
			return TransitionError(err)
		}
		if err := mutate(session); err != nil {
			return err
		}
		if err := store.Save(ctx, session); err != nil {
			return err
		}
		edited = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edited, nil
}

// Submit validates the draft and hands it to send. The draft lock is held while the state moves
// to submitting and again while the outcome is recorded, but not during send, so a slow remote
// call never blocks readers. A second submit meanwhile is refused because the session is
// already submitting.
func Submit[T any](ctx context.Context, store contracts.DraftStore[T], draftID string, validate Validator[T], send Sender[T]) (*models.FormSession[T], json.RawMessage, error) {
	var accepted *models.FormSession[T]
	err := store.WithLock(ctx, draftID, func() error {
		session, err := Load(ctx, store, draftID)
		if err != nil {
			return err
		}
		if err := session.BeginValidation(); err != nil {
			return TransitionError(err)
		}

		fieldErrors, err := validate(ctx, session)
		if err != nil || len(fieldErrors) > 0 {
			_ = session.Reject()
			if saveErr := store.Save(ctx, session); saveErr != nil {
				return saveErr
			}
			if err != nil {
				return err
			}
			return exceptions.ErrDraftValidation(fieldErrors)
		}

		if err := session.BeginSubmit(); err != nil {
			return TransitionError(err)
		}
		if err := store.Save(ctx, session); err != nil {
			return err
		}
		accepted = session
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	response, sendErr := send(ctx, accepted)

	// The outcome has to be recorded even when the request context is gone.
	recordCtx := context.WithoutCancel(ctx)
	var finished *models.FormSession[T]
	err = store.WithLock(recordCtx, draftID, func() error {
		session, err := store.Find(recordCtx, draftID)
		if err != nil {
			return err
		}
		if sendErr != nil {
			err = session.Fail()
		} else {
			session.Draft = accepted.Draft
			err = session.Succeed()
		}
		if err != nil {
			return TransitionError(err)
		}
		if err := store.Save(recordCtx, session); err != nil {
			return err
		}
		finished = session
		return nil
	})
	if sendErr != nil {
		return finished, nil, sendErr
	}
	if err != nil {
		return nil, nil, err
	}
	return finished, response, nil
}

// StructErrors runs the validation tags of document and returns them keyed by JSON path.
func StructErrors(document interface{}) ([]exceptions.FieldError, error) {
	err := utils.ValidateStruct(document)
	if err == nil {
		return nil, nil
	}
	fieldErrors := exceptions.CollectFieldErrors(err)
	if fieldErrors == nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	return fieldErrors, nil
}

// TransitionError maps a refused state change to a conflict response.
func TransitionError(err error) error {
	var transitionErr *models.TransitionError
	if !errors.As(err, &transitionErr) {
		return err
	}
	clientMessage := constvars.ErrClientDraftBusy
	if transitionErr.Closed() {
		clientMessage = constvars.ErrClientDraftClosed
	}
	return exceptions.ErrDraftInvalidTransition(err, clientMessage, string(transitionErr.From), string(transitionErr.To))
}

func ToResponse[T any](session *models.FormSession[T]) *responses.Draft {
	return &responses.Draft{
		ID:              session.ID,
		Kind:            session.Kind,
		EntityID:        session.EntityID,
		State:           string(session.State),
		Document:        session.Draft,
		PendingBranches: session.PendingBranches,
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
}
