package customers

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

type customerSession = models.FormSession[models.Customer]

type customerUsecase struct {
	DraftStore    contracts.DraftStore[models.Customer]
	Gateway       contracts.RemoteGateway
	Notifications contracts.NotificationService
	ListCache     contracts.ListCache
	Log           *zap.Logger
}

func NewCustomerUsecase(
	draftStore contracts.DraftStore[models.Customer],
	gateway contracts.RemoteGateway,
	notifications contracts.NotificationService,
	listCache contracts.ListCache,
	logger *zap.Logger,
) CustomerUsecase {
	return &customerUsecase{
		DraftStore:    draftStore,
		Gateway:       gateway,
		Notifications: notifications,
		ListCache:     listCache,
		Log:           logger,
	}
}

func (uc *customerUsecase) CreateDraft(ctx context.Context) (*responses.Draft, error) {
	session := models.NewFormSession(constvars.DraftKindCustomer, utils.GetAdminID(ctx), models.NewCustomer())
	if err := uc.DraftStore.Save(ctx, session); err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *customerUsecase) EditDraft(ctx context.Context, customerID string) (*responses.Draft, error) {
	uc.Log.Info("customerUsecase.EditDraft called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEntityIDKey, customerID),
	)

	var customer models.Customer
	if err := uc.Gateway.FindByID(ctx, constvars.ResourceCustomers, customerID, &customer); err != nil {
		return nil, err
	}

	session := models.NewEditFormSession(constvars.DraftKindCustomer, utils.GetAdminID(ctx), customerID, customer, customer.Payload(), 0)
	if err := uc.DraftStore.Save(ctx, session); err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *customerUsecase) FindDraft(ctx context.Context, draftID string) (*responses.Draft, error) {
	session, err := formsession.Load(ctx, uc.DraftStore, draftID)
	if err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *customerUsecase) DiscardDraft(ctx context.Context, draftID string) error {
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

func (uc *customerUsecase) UpdateFields(ctx context.Context, draftID string, request *requests.UpdateCustomerFields) (*responses.Draft, error) {
	session, err := formsession.Edit(ctx, uc.DraftStore, draftID, func(session *customerSession) error {
		customer := &session.Draft
		if name := request.Name; name != nil {
			setString(&customer.Name.FirstName, name.FirstName)
			setString(&customer.Name.MiddleName, name.MiddleName)
			setString(&customer.Name.LastName, name.LastName)
		}
		setString(&customer.Email, request.Email)
		setString(&customer.ContactNo, request.ContactNo)
		setString(&customer.EmergencyContactNo, request.EmergencyContactNo)
		setString(&customer.Gender, request.Gender)
		setString(&customer.DateOfBirth, request.DateOfBirth)
		setString(&customer.BloodGroup, request.BloodGroup)
		setString(&customer.PresentAddress, request.PresentAddress)
		setString(&customer.PermanentAddress, request.PermanentAddress)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *customerUsecase) Submit(ctx context.Context, draftID string) (*responses.SubmitResult, error) {
	uc.Log.Info("customerUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	session, response, err := formsession.Submit(ctx, uc.DraftStore, draftID, validate, uc.send)
	if err != nil {
		if session != nil {
			uc.Notifications.Error(ctx, constvars.ResourceCustomers, "Error", err)
		}
		return nil, err
	}

	message := constvars.CreateCustomerSuccessMessage
	entityID := session.EntityID
	if session.IsEditFlow() {
		message = constvars.UpdateCustomerSuccessMessage
	} else {
		entityID = gjson.GetBytes(response, "_id").String()
	}
	uc.Notifications.Success(ctx, constvars.ResourceCustomers, "Success", message)
	uc.ListCache.Invalidate(ctx, constvars.ResourceCustomers, entityID)

	return &responses.SubmitResult{Draft: *formsession.ToResponse(session), Response: response}, nil
}

func validate(_ context.Context, session *customerSession) ([]exceptions.FieldError, error) {
	return formsession.StructErrors(session.Draft)
}

func (uc *customerUsecase) send(ctx context.Context, session *customerSession) (json.RawMessage, error) {
	if session.IsEditFlow() {
		return uc.Gateway.Update(ctx, constvars.ResourceCustomers, session.EntityID, session.Draft.Payload())
	}
	return uc.Gateway.Create(ctx, constvars.ResourceCustomers, session.Draft.Payload())
}

func setString(field *string, value *string) {
	if value != nil {
		*field = *value
	}
}
