package consultations

import (
	"context"
	"fmt"
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
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type consultationSession = models.FormSession[models.Consultation]

type consultationUsecase struct {
	DraftStore      contracts.DraftStore[models.Consultation]
	Gateway         contracts.RemoteGateway
	TreatmentLookup contracts.TreatmentLookup
	Notifications   contracts.NotificationService
	ListCache       contracts.ListCache
	Log             *zap.Logger
}

func NewConsultationUsecase(
	draftStore contracts.DraftStore[models.Consultation],
	gateway contracts.RemoteGateway,
	treatmentLookup contracts.TreatmentLookup,
	notifications contracts.NotificationService,
	listCache contracts.ListCache,
	logger *zap.Logger,
) ConsultationUsecase {
	return &consultationUsecase{
		DraftStore:      draftStore,
		Gateway:         gateway,
		TreatmentLookup: treatmentLookup,
		Notifications:   notifications,
		ListCache:       listCache,
		Log:             logger,
	}
}

func (uc *consultationUsecase) CreateDraft(ctx context.Context) (*responses.Draft, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationUsecase.CreateDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session := models.NewFormSession(constvars.DraftKindConsultation, utils.GetAdminID(ctx), models.NewConsultation())
	if err := uc.DraftStore.Save(ctx, session); err != nil {
		uc.Log.Error("consultationUsecase.CreateDraft error saving draft",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *consultationUsecase) EditDraft(ctx context.Context, consultationID string) (*responses.Draft, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationUsecase.EditDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, consultationID),
	)

	var document models.Consultation
	if err := uc.Gateway.FindByID(ctx, constvars.ResourceConsultations, consultationID, &document); err != nil {
		uc.Log.Error("consultationUsecase.EditDraft error hydrating consultation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEntityIDKey, consultationID),
			zap.Error(err),
		)
		return nil, err
	}
	document.Normalize()

	session := models.NewEditFormSession(constvars.DraftKindConsultation, utils.GetAdminID(ctx), consultationID, document, document.Payload(), document.MaxElementID())
	if pending := keepUnparsedBranches(session); pending > 0 {
		uc.Log.Warn("consultationUsecase.EditDraft stored branches kept as pending text",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEntityIDKey, consultationID),
			zap.Int(constvars.LoggingCountKey, pending),
		)
	}
	if err := uc.DraftStore.Save(ctx, session); err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *consultationUsecase) FindDraft(ctx context.Context, draftID string) (*responses.Draft, error) {
	session, err := formsession.Load(ctx, uc.DraftStore, draftID)
	if err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *consultationUsecase) DiscardDraft(ctx context.Context, draftID string) error {
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

func (uc *consultationUsecase) UpdateHeader(ctx context.Context, draftID string, request *requests.UpdateConsultationHeader) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		document := &session.Draft
		if request.Title != nil {
			document.Title = *request.Title
		}
		if request.Subtitle != nil {
			document.Subtitle = *request.Subtitle
		}
		switch {
		case request.ClearEstimatedTime:
			document.EstimatedTime = nil
		case request.EstimatedTime != nil:
			estimatedTime := *request.EstimatedTime
			document.EstimatedTime = &estimatedTime
		}
		if request.Treatment != nil {
			document.Treatment = *request.Treatment
		}
		if request.IsActive != nil {
			document.IsActive = *request.IsActive
		}
		return nil
	})
}

func (uc *consultationUsecase) AddStep(ctx context.Context, draftID string) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		id := session.NextElementID()
		session.Draft.Steps = fieldarray.Append(session.Draft.Steps, models.Step{
			ID:             id,
			StepCode:       fmt.Sprintf("step_%d", id),
			TreatmentTypes: []string{},
			Questions:      []models.Question{},
		})
		return nil
	})
}

func (uc *consultationUsecase) UpdateStep(ctx context.Context, draftID string, stepIndex int, request *requests.UpdateStep) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		step, err := stepAt(session, stepIndex)
		if err != nil {
			return err
		}
		if request.StepCode != nil {
			step.StepCode = *request.StepCode
		}
		if request.Title != nil {
			step.Title = *request.Title
		}
		if request.TreatmentTypes != nil {
			step.TreatmentTypes = append([]string{}, (*request.TreatmentTypes)...)
		}
		return nil
	})
}

func (uc *consultationUsecase) RemoveStep(ctx context.Context, draftID string, stepIndex int) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		step, err := stepAt(session, stepIndex)
		if err != nil {
			return err
		}
		for _, question := range step.Questions {
			clearPendingBranches(session, question)
		}

		steps, err := fieldarray.Remove(session.Draft.Steps, stepIndex)
		if err != nil {
			return exceptions.ErrIndexOutOfRange(err, "steps")
		}
		session.Draft.Steps = steps
		return nil
	})
}

func (uc *consultationUsecase) MoveStep(ctx context.Context, draftID string, from, to int) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		if err := fieldarray.Move(session.Draft.Steps, from, to); err != nil {
			return exceptions.ErrIndexOutOfRange(err, "steps")
		}
		return nil
	})
}

func (uc *consultationUsecase) AddQuestion(ctx context.Context, draftID string, stepIndex int) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		step, err := stepAt(session, stepIndex)
		if err != nil {
			return err
		}
		step.Questions = fieldarray.Append(step.Questions, newQuestion(session.NextElementID()))
		return nil
	})
}

// UpdateQuestion never clears options or branches, even when the new type does not show them.
func (uc *consultationUsecase) UpdateQuestion(ctx context.Context, draftID string, stepIndex, questionIndex int, request *requests.UpdateQuestion) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		question, err := questionAt(session, stepIndex, questionIndex)
		if err != nil {
			return err
		}
		if request.QuestionCode != nil {
			question.QuestionCode = *request.QuestionCode
		}
		if request.Type != nil {
			question.Type = *request.Type
		}
		if request.Question != nil {
			question.Question = *request.Question
		}
		if request.Required != nil {
			question.Required = *request.Required
		}
		if request.Description != nil {
			question.Description = *request.Description
		}
		if request.TreatmentTypes != nil {
			question.TreatmentTypes = append([]string{}, (*request.TreatmentTypes)...)
		}
		if request.Placeholder != nil {
			question.Placeholder = *request.Placeholder
		}
		if request.Prefix != nil {
			question.Prefix = *request.Prefix
		}
		if request.Suffix != nil {
			question.Suffix = *request.Suffix
		}
		if request.Label != nil {
			question.Label = *request.Label
		}
		if request.AllowMultiple != nil {
			question.AllowMultiple = *request.AllowMultiple
		}
		if request.NoneOption != nil {
			question.NoneOption = *request.NoneOption
		}
		return nil
	})
}

func (uc *consultationUsecase) RemoveQuestion(ctx context.Context, draftID string, stepIndex, questionIndex int) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		step, err := stepAt(session, stepIndex)
		if err != nil {
			return err
		}
		if questionIndex >= 0 && questionIndex < len(step.Questions) {
			clearPendingBranches(session, step.Questions[questionIndex])
		}

		questions, err := fieldarray.Remove(step.Questions, questionIndex)
		if err != nil {
			return exceptions.ErrIndexOutOfRange(err, questionsField(stepIndex))
		}
		step.Questions = questions
		return nil
	})
}

func (uc *consultationUsecase) MoveQuestion(ctx context.Context, draftID string, stepIndex, from, to int) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		step, err := stepAt(session, stepIndex)
		if err != nil {
			return err
		}
		if err := fieldarray.Move(step.Questions, from, to); err != nil {
			return exceptions.ErrIndexOutOfRange(err, questionsField(stepIndex))
		}
		return nil
	})
}

// SetConditionalBranch parses raw as a list of questions. Text that does not parse is kept on the
// draft as pending and blocks the submit until it is fixed or cleared; empty text clears the branch.
func (uc *consultationUsecase) SetConditionalBranch(ctx context.Context, draftID string, stepIndex, questionIndex int, branch, raw string) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		question, err := questionAt(session, stepIndex, questionIndex)
		if err != nil {
			return err
		}
		branchQuestions := question.ConditionalQuestions.Branch(branch)
		if branchQuestions == nil {
			return exceptions.ErrUnknownArrayField(nil, branch)
		}
		key := pendingBranchKey(question.Key, branch)

		text := strings.TrimSpace(raw)
		if text == "" {
			*branchQuestions = []models.Question{}
			session.ClearPendingBranch(key)
			return nil
		}

		parsed, err := models.ParseQuestions([]byte(text))
		if err != nil {
			uc.Log.Debug("consultationUsecase.SetConditionalBranch keeping unparsed branch",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingDraftIDKey, draftID),
				zap.Error(err),
			)
			session.SetPendingBranch(key, raw)
			return nil
		}

		parsed = models.NormalizeQuestions(parsed)
		if maxID := models.MaxQuestionID(parsed); maxID > session.NextID {
			session.NextID = maxID
		}
		assignMissingIDs(session, parsed)
		*branchQuestions = parsed
		session.ClearPendingBranch(key)
		return nil
	})
}

func (uc *consultationUsecase) AddOption(ctx context.Context, draftID string, stepIndex, questionIndex int) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		question, err := questionAt(session, stepIndex, questionIndex)
		if err != nil {
			return err
		}
		question.Options = fieldarray.Append(question.Options, models.Option{ID: session.NextElementID()})
		return nil
	})
}

func (uc *consultationUsecase) UpdateOption(ctx context.Context, draftID string, stepIndex, questionIndex, optionIndex int, request *requests.UpdateOption) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		question, err := questionAt(session, stepIndex, questionIndex)
		if err != nil {
			return err
		}
		if optionIndex < 0 || optionIndex >= len(question.Options) {
			return exceptions.ErrIndexOutOfRange(fieldarray.ErrIndexOutOfRange, optionsField(stepIndex, questionIndex))
		}
		option := &question.Options[optionIndex]
		if request.Value != nil {
			option.Value = *request.Value
		}
		if request.Label != nil {
			option.Label = *request.Label
		}
		return nil
	})
}

func (uc *consultationUsecase) RemoveOption(ctx context.Context, draftID string, stepIndex, questionIndex, optionIndex int) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		question, err := questionAt(session, stepIndex, questionIndex)
		if err != nil {
			return err
		}
		options, err := fieldarray.Remove(question.Options, optionIndex)
		if err != nil {
			return exceptions.ErrIndexOutOfRange(err, optionsField(stepIndex, questionIndex))
		}
		question.Options = options
		return nil
	})
}

func (uc *consultationUsecase) MoveOption(ctx context.Context, draftID string, stepIndex, questionIndex, from, to int) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *consultationSession) error {
		question, err := questionAt(session, stepIndex, questionIndex)
		if err != nil {
			return err
		}
		if err := fieldarray.Move(question.Options, from, to); err != nil {
			return exceptions.ErrIndexOutOfRange(err, optionsField(stepIndex, questionIndex))
		}
		return nil
	})
}

func (uc *consultationUsecase) Submit(ctx context.Context, draftID string) (*responses.SubmitResult, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	session, response, err := formsession.Submit(ctx, uc.DraftStore, draftID, uc.validate, uc.send)
	if err != nil {
		// A returned session means the draft was accepted and the remote call failed.
		if session != nil {
			uc.Log.Error("consultationUsecase.Submit error sending consultation",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDraftIDKey, draftID),
				zap.Error(err),
			)
			uc.Notifications.Error(ctx, constvars.ResourceConsultations, "Error", err)
		}
		return nil, err
	}

	message := constvars.CreateConsultationSuccessMessage
	entityID := session.EntityID
	if session.IsEditFlow() {
		message = constvars.UpdateConsultationSuccessMessage
	} else {
		entityID = gjson.GetBytes(response, "_id").String()
	}
	uc.Notifications.Success(ctx, constvars.ResourceConsultations, "Success", message)
	uc.ListCache.Invalidate(ctx, constvars.ResourceConsultations, entityID)

	uc.Log.Info("consultationUsecase.Submit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
		zap.String(constvars.LoggingEntityIDKey, entityID),
	)
	return &responses.SubmitResult{Draft: *formsession.ToResponse(session), Response: response}, nil
}

// validate runs the struct rules at every depth, then the checks the tags cannot express.
// Empty titles and choice questions without options pass.
func (uc *consultationUsecase) validate(ctx context.Context, session *consultationSession) ([]exceptions.FieldError, error) {
	fieldErrors, err := formsession.StructErrors(session.Draft)
	if err != nil {
		return nil, err
	}
	fieldErrors = append(fieldErrors, pendingBranchErrors(session)...)

	referenceErrors, err := treatmentlookup.CheckReference(ctx, uc.TreatmentLookup, session.Draft.Treatment)
	if err != nil {
		uc.Log.Error("consultationUsecase.validate error checking treatment",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}
	return append(fieldErrors, referenceErrors...), nil
}

func (uc *consultationUsecase) send(ctx context.Context, session *consultationSession) (json.RawMessage, error) {
	payload := session.Draft.Payload()
	if session.IsEditFlow() {
		return uc.Gateway.Update(ctx, constvars.ResourceConsultations, session.EntityID, payload)
	}
	return uc.Gateway.Create(ctx, constvars.ResourceConsultations, payload)
}

func (uc *consultationUsecase) edit(ctx context.Context, draftID string, mutate func(session *consultationSession) error) (*responses.Draft, error) {
	session, err := formsession.Edit(ctx, uc.DraftStore, draftID, mutate)
	if err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}
