package blogs

import (
	"context"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/app/services/shared/formsession"
	"mrchemist-admin-service/internal/app/services/shared/treatmentlookup"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/fieldarray"
	"mrchemist-admin-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type blogSession = models.FormSession[models.Blog]

type blogUsecase struct {
	DraftStore      contracts.DraftStore[models.Blog]
	Gateway         contracts.RemoteGateway
	Reconciler      contracts.AssetReconciler
	TreatmentLookup contracts.TreatmentLookup
	Notifications   contracts.NotificationService
	ListCache       contracts.ListCache
	Log             *zap.Logger
}

func NewBlogUsecase(
	draftStore contracts.DraftStore[models.Blog],
	gateway contracts.RemoteGateway,
	reconciler contracts.AssetReconciler,
	treatmentLookup contracts.TreatmentLookup,
	notifications contracts.NotificationService,
	listCache contracts.ListCache,
	logger *zap.Logger,
) BlogUsecase {
	return &blogUsecase{
		DraftStore:      draftStore,
		Gateway:         gateway,
		Reconciler:      reconciler,
		TreatmentLookup: treatmentLookup,
		Notifications:   notifications,
		ListCache:       listCache,
		Log:             logger,
	}
}

func (uc *blogUsecase) CreateDraft(ctx context.Context) (*responses.Draft, error) {
	session := models.NewFormSession(constvars.DraftKindBlog, utils.GetAdminID(ctx), models.NewBlog())
	if err := uc.DraftStore.Save(ctx, session); err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *blogUsecase) EditDraft(ctx context.Context, blogID string) (*responses.Draft, error) {
	uc.Log.Info("blogUsecase.EditDraft called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEntityIDKey, blogID),
	)

	var blog models.Blog
	if err := uc.Gateway.FindByID(ctx, constvars.ResourceBlogs, blogID, &blog); err != nil {
		return nil, err
	}
	blog.Normalize()

	session := models.NewEditFormSession(constvars.DraftKindBlog, utils.GetAdminID(ctx), blogID, blog, blog.Payload(), 0)
	if err := uc.DraftStore.Save(ctx, session); err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *blogUsecase) FindDraft(ctx context.Context, draftID string) (*responses.Draft, error) {
	session, err := formsession.Load(ctx, uc.DraftStore, draftID)
	if err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *blogUsecase) DiscardDraft(ctx context.Context, draftID string) error {
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

func (uc *blogUsecase) UpdateFields(ctx context.Context, draftID string, request *requests.UpdateBlogFields) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *blogSession) error {
		blog := &session.Draft
		if request.Title != nil {
			blog.Title = *request.Title
		}
		if request.Slug != nil {
			blog.Slug = *request.Slug
		}
		if request.Excerpt != nil {
			blog.Excerpt = *request.Excerpt
		}
		if request.Content != nil {
			blog.Content = *request.Content
		}
		if request.ImageURLs != nil {
			blog.ImageURLs = append([]string{}, (*request.ImageURLs)...)
		}
		if request.Treatment != nil {
			blog.Treatment = *request.Treatment
		}
		if request.IsPublished != nil {
			blog.IsPublished = *request.IsPublished
		}
		if request.MetaTitle != nil {
			blog.MetaTitle = *request.MetaTitle
		}
		if request.MetaDescription != nil {
			blog.MetaDescription = *request.MetaDescription
		}
		if request.OpenGraphImageURL != nil {
			blog.OpenGraphImageURL = *request.OpenGraphImageURL
		}
		return nil
	})
}

func (uc *blogUsecase) AppendElement(ctx context.Context, draftID, field string, raw json.RawMessage) (*responses.Draft, error) {
	return uc.editArray(ctx, draftID, field, func(list *[]string) error {
		value, err := decodeString(raw)
		if err != nil {
			return err
		}
		*list = fieldarray.Append(*list, value)
		return nil
	})
}

func (uc *blogUsecase) ReplaceElement(ctx context.Context, draftID, field string, index int, raw json.RawMessage) (*responses.Draft, error) {
	return uc.editArray(ctx, draftID, field, func(list *[]string) error {
		value, err := decodeString(raw)
		if err != nil {
			return err
		}
		if err := fieldarray.Replace(*list, index, value); err != nil {
			return exceptions.ErrIndexOutOfRange(err, field)
		}
		return nil
	})
}

func (uc *blogUsecase) RemoveElement(ctx context.Context, draftID, field string, index int) (*responses.Draft, error) {
	return uc.editArray(ctx, draftID, field, func(list *[]string) error {
		remaining, err := fieldarray.Remove(*list, index)
		if err != nil {
			return exceptions.ErrIndexOutOfRange(err, field)
		}
		*list = remaining
		return nil
	})
}

func (uc *blogUsecase) MoveElement(ctx context.Context, draftID, field string, from, to int) (*responses.Draft, error) {
	return uc.editArray(ctx, draftID, field, func(list *[]string) error {
		if err := fieldarray.Move(*list, from, to); err != nil {
			return exceptions.ErrIndexOutOfRange(err, field)
		}
		return nil
	})
}

func (uc *blogUsecase) Submit(ctx context.Context, draftID string, files []requests.StagedFile, openGraphImage *requests.StagedFile) (*responses.SubmitResult, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("blogUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
		zap.Int(constvars.LoggingFileCountKey, len(files)),
	)

	session, response, err := formsession.Submit(ctx, uc.DraftStore, draftID, uc.validate, uc.sender(files, openGraphImage))
	if err != nil {
		if session != nil {
			uc.Notifications.Error(ctx, constvars.ResourceBlogs, "Error", err)
		}
		return nil, err
	}

	message := constvars.CreateBlogSuccessMessage
	entityID := session.EntityID
	if session.IsEditFlow() {
		message = constvars.UpdateBlogSuccessMessage
		if session.Original != nil {
			uc.Reconciler.CleanupOrphans(ctx, constvars.ResourceBlogs, session.Original.AssetURLs(), session.Draft.AssetURLs())
		}
	} else {
		entityID = gjson.GetBytes(response, "_id").String()
	}
	uc.Notifications.Success(ctx, constvars.ResourceBlogs, "Success", message)
	uc.ListCache.Invalidate(ctx, constvars.ResourceBlogs, entityID)

	return &responses.SubmitResult{Draft: *formsession.ToResponse(session), Response: response}, nil
}

func (uc *blogUsecase) validate(ctx context.Context, session *blogSession) ([]exceptions.FieldError, error) {
	fieldErrors, err := formsession.StructErrors(session.Draft)
	if err != nil {
		return nil, err
	}
	referenceErrors, err := treatmentlookup.CheckReference(ctx, uc.TreatmentLookup, session.Draft.Treatment)
	if err != nil {
		return nil, err
	}
	return append(fieldErrors, referenceErrors...), nil
}

func (uc *blogUsecase) sender(files []requests.StagedFile, openGraphImage *requests.StagedFile) formsession.Sender[models.Blog] {
	return func(ctx context.Context, session *blogSession) (json.RawMessage, error) {
		staged := append([]requests.StagedFile{}, files...)
		if openGraphImage != nil {
			staged = append(staged, *openGraphImage)
		}

		uploaded, err := uc.Reconciler.UploadStaged(ctx, staged)
		if err != nil {
			return nil, err
		}
		blog := &session.Draft
		blog.ImageURLs = append(blog.ImageURLs, uploaded[:len(files)]...)
		if openGraphImage != nil {
			blog.OpenGraphImageURL = uploaded[len(files)]
		}

		var response json.RawMessage
		if session.IsEditFlow() {
			response, err = uc.Gateway.Update(ctx, constvars.ResourceBlogs, session.EntityID, blog.Payload())
		} else {
			response, err = uc.Gateway.Create(ctx, constvars.ResourceBlogs, blog.Payload())
		}
		if err != nil {
			uc.Reconciler.CleanupOrphans(ctx, constvars.ResourceBlogs, uploaded, nil)
			return nil, err
		}
		return response, nil
	}
}

func (uc *blogUsecase) edit(ctx context.Context, draftID string, mutate func(session *blogSession) error) (*responses.Draft, error) {
	session, err := formsession.Edit(ctx, uc.DraftStore, draftID, mutate)
	if err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *blogUsecase) editArray(ctx context.Context, draftID, field string, mutate func(list *[]string) error) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *blogSession) error {
		var list *[]string
		switch field {
		case models.BlogArrayTags:
			list = &session.Draft.Tags
		case models.BlogArraySeoKeywords:
			list = &session.Draft.SeoKeywords
		default:
			return exceptions.ErrUnknownArrayField(nil, field)
		}
		return mutate(list)
	})
}

func decodeString(raw json.RawMessage) (string, error) {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", exceptions.ErrCannotParseJSON(err)
	}
	return value, nil
}
