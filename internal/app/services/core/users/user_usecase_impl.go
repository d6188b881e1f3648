package users

import (
	"context"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/app/services/shared/formsession"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type userSession = models.FormSession[models.User]

type userUsecase struct {
	DraftStore    contracts.DraftStore[models.User]
	Gateway       contracts.RemoteGateway
	Notifications contracts.NotificationService
	ListCache     contracts.ListCache
	Log           *zap.Logger
}

func NewUserUsecase(
	draftStore contracts.DraftStore[models.User],
	gateway contracts.RemoteGateway,
	notifications contracts.NotificationService,
	listCache contracts.ListCache,
	logger *zap.Logger,
) UserUsecase {
	return &userUsecase{
		DraftStore:    draftStore,
		Gateway:       gateway,
		Notifications: notifications,
		ListCache:     listCache,
		Log:           logger,
	}
}

func (uc *userUsecase) CreateDraft(ctx context.Context) (*responses.Draft, error) {
	session := models.NewFormSession(constvars.DraftKindUser, utils.GetAdminID(ctx), models.NewUser())
	if err := uc.DraftStore.Save(ctx, session); err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *userUsecase) EditDraft(ctx context.Context, userID string) (*responses.Draft, error) {
	uc.Log.Info("userUsecase.EditDraft called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEntityIDKey, userID),
	)

	var user models.User
	if err := uc.Gateway.FindByID(ctx, constvars.ResourceUsers, userID, &user); err != nil {
		return nil, err
	}
	user.Normalize()

	session := models.NewEditFormSession(constvars.DraftKindUser, utils.GetAdminID(ctx), userID, user, user.Payload(), 0)
	if err := uc.DraftStore.Save(ctx, session); err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *userUsecase) FindDraft(ctx context.Context, draftID string) (*responses.Draft, error) {
	session, err := formsession.Load(ctx, uc.DraftStore, draftID)
	if err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *userUsecase) DiscardDraft(ctx context.Context, draftID string) error {
	return uc.DraftStore.WithLock(ctx, draftID, func() error {
		session, err := formsession.Load(ctx, uc.DraftStore, draftID)
		if err != nil {
			return err
		}
		if session.State == models.FormStateSubmitting {
			return formsession.TransitionError(&models.TransitionError{From: session.State, To: "discarded"})
		}
		return uc.DraftStore.Delete(ctx, draftID)
	})
}

// UpdateFields refuses a password on an edit draft since the remote only takes one at creation.
func (uc *userUsecase) UpdateFields(ctx context.Context, draftID string, request *requests.UpdateUserFields) (*responses.Draft, error) {
	session, err := formsession.Edit(ctx, uc.DraftStore, draftID, func(session *userSession) error {
		user := &session.Draft
		if request.Password != nil {
			if session.IsEditFlow() {
				return exceptions.ErrPasswordOnEdit(session.EntityID)
			}
			user.Password = *request.Password
		}
		if request.Name != nil {
			user.Name = *request.Name
		}
		if request.Email != nil {
			user.Email = *request.Email
		}
		if request.Role != nil {
			user.Role = *request.Role
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *userUsecase) Submit(ctx context.Context, draftID string) (*responses.SubmitResult, error) {
	uc.Log.Info("userUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	session, response, err := formsession.Submit(ctx, uc.DraftStore, draftID, validate, uc.send)
	if err != nil {
		if session != nil {
			uc.Notifications.Error(ctx, constvars.ResourceUsers, "Error", err)
		}
		return nil, err
	}

	message := constvars.CreateUserSuccessMessage
	entityID := session.EntityID
	if session.IsEditFlow() {
		message = constvars.UpdateUserSuccessMessage
	} else {
		entityID = gjson.GetBytes(response, "_id").String()
	}
	uc.Notifications.Success(ctx, constvars.ResourceUsers, "Success", message)
	uc.ListCache.Invalidate(ctx, constvars.ResourceUsers, entityID)

	return &responses.SubmitResult{Draft: *formsession.ToResponse(session), Response: response}, nil
}

func validate(_ context.Context, session *userSession) ([]exceptions.FieldError, error) {
	return formsession.StructErrors(session.Draft)
}

// send drops the password from the draft once the remote accepted it, so the stored draft never
// keeps it past a submit.
func (uc *userUsecase) send(ctx context.Context, session *userSession) (json.RawMessage, error) {
	if session.IsEditFlow() {
		return uc.Gateway.Update(ctx, constvars.ResourceUsers, session.EntityID, session.Draft.Payload())
	}
	response, err := uc.Gateway.Create(ctx, constvars.ResourceUsers, session.Draft.Payload())
	if err != nil {
		return nil, err
	}
	session.Draft.Password = ""
	return response, nil
}
