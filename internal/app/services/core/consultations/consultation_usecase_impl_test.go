package consultations

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/app/services/shared/formsession"
	"mrchemist-admin-service/internal/app/services/shared/gateway"
	"mrchemist-admin-service/internal/app/services/shared/listcache"
	"mrchemist-admin-service/internal/app/services/shared/locker"
	"mrchemist-admin-service/internal/app/services/shared/notifications"
	"mrchemist-admin-service/internal/app/services/shared/redis/redistest"
	"mrchemist-admin-service/internal/app/services/shared/treatmentlookup"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const existingConsultation = `{"data":{"_id":"c1","title":"Hair Check","subtitle":"","estimatedTime":5,"treatment":"t1","isActive":true,
"steps":[{"id":3,"stepCode":"step_3","title":"Basics","position":0,"treatmentTypes":[],
"questions":[{"id":7,"questionCode":"q7","type":"radio","question":"Hair type?","position":0,
"options":[{"id":4,"value":"dry","label":"Dry","position":0}],"conditionalQuestions":{"yes":[],"no":[]}}]}]}}`

const legacyConsultation = `{"data":{"_id":"c9","title":"Allergy","treatment":"t1","isActive":true,
"steps":[{"id":1,"stepCode":"step_1","title":"Intro","questions":[{"id":2,"type":"yesNo","question":"Any allergies?",
"options":[],"conditionalQuestions":{"yes":["Which ones?"],"no":[{"id":3,"type":"yesNo","question":"Sure?",
"conditionalQuestions":{"yes":[42],"no":[]}}]}}]}]}}`

type recordedCall struct {
	Method string
	Path   string
	Body   string
}

type fixture struct {
	usecase       ConsultationUsecase
	notifications contracts.NotificationService
	failWrites    bool

	mu    sync.Mutex
	calls []recordedCall
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.calls = append(f.calls, recordedCall{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		failWrites := f.failWrites
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/treatments":
			_, _ = w.Write([]byte(`{"data":[{"_id":"t1","name":"Acne"}]}`))
		case r.Method == http.MethodGet && r.URL.Path == "/consultations/id/c1":
			_, _ = w.Write([]byte(existingConsultation))
		case r.Method == http.MethodGet && r.URL.Path == "/consultations/id/c9":
			_, _ = w.Write([]byte(legacyConsultation))
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Consultation not found"}`))
		case failWrites:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"Remote exploded"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/consultations/create":
			_, _ = w.Write([]byte(`{"data":{"_id":"c-new"}}`))
		case r.Method == http.MethodPatch:
			_, _ = w.Write([]byte(`{"data":{"_id":"c1"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	repo := redistest.NewRepository(t)
	cfg := &config.InternalConfig{
		Draft: config.Draft{TTL: time.Hour, LockTTL: time.Minute},
		Cache: config.Cache{TreatmentTTL: time.Minute, ListTTL: time.Minute, NotificationTTL: time.Hour},
	}
	remote := gateway.NewRemoteGatewayWithClient(server.URL, server.Client(), nil, logger)
	store := formsession.NewDraftStore[models.Consultation](constvars.DraftKindConsultation, repo, locker.NewLockService(repo, logger), cfg, logger)
	f.notifications = notifications.NewNotificationService(repo, cfg, logger)

	f.usecase = NewConsultationUsecase(
		store,
		remote,
		treatmentlookup.NewTreatmentLookup(remote, repo, cfg, logger),
		f.notifications,
		listcache.NewListCache(repo, nil, cfg, logger),
		logger,
	)
	return f
}

func (f *fixture) setFailWrites(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrites = fail
}

func (f *fixture) writes() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var writes []recordedCall
	for _, call := range f.calls {
		if call.Method != http.MethodGet {
			writes = append(writes, call)
		}
	}
	return writes
}

func testContext() context.Context {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	return context.WithValue(ctx, constvars.CONTEXT_ADMIN_ID_KEY, "admin-1")
}

func ptr[T any](value T) *T {
	return &value
}

func document(t *testing.T, draft *responses.Draft) models.Consultation {
	consultation, ok := draft.Document.(models.Consultation)
	require.True(t, ok)
	return consultation
}

func requireStatus(t *testing.T, err error, statusCode int) *exceptions.CustomError {
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, statusCode, customErr.StatusCode)
	return customErr
}

// newDraftWithQuestion builds a draft with a treatment, one step and one question.
func newDraftWithQuestion(t *testing.T, ctx context.Context, uc ConsultationUsecase, questionType string) string {
	draft, err := uc.CreateDraft(ctx)
	require.NoError(t, err)
	_, err = uc.UpdateHeader(ctx, draft.ID, &requests.UpdateConsultationHeader{Treatment: ptr("t1")})
	require.NoError(t, err)
	_, err = uc.AddStep(ctx, draft.ID)
	require.NoError(t, err)
	_, err = uc.AddQuestion(ctx, draft.ID, 0)
	require.NoError(t, err)
	_, err = uc.UpdateQuestion(ctx, draft.ID, 0, 0, &requests.UpdateQuestion{Type: ptr(questionType), Question: ptr("Do you have acne?")})
	require.NoError(t, err)
	return draft.ID
}

func TestConsultationUsecase_SkinAssessment(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	uc := f.usecase

	draft, err := uc.CreateDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(models.FormStatePristine), draft.State)
	created := document(t, draft)
	assert.Empty(t, created.Title)
	assert.Empty(t, created.Steps)
	assert.True(t, created.IsActive)
	require.NotNil(t, created.EstimatedTime)
	assert.Equal(t, 0, *created.EstimatedTime)

	_, err = uc.UpdateHeader(ctx, draft.ID, &requests.UpdateConsultationHeader{Title: ptr("Skin Assessment"), Treatment: ptr("t1")})
	require.NoError(t, err)
	_, err = uc.AddStep(ctx, draft.ID)
	require.NoError(t, err)
	_, err = uc.AddQuestion(ctx, draft.ID, 0)
	require.NoError(t, err)
	_, err = uc.AddQuestion(ctx, draft.ID, 0)
	require.NoError(t, err)
	_, err = uc.UpdateQuestion(ctx, draft.ID, 0, 0, &requests.UpdateQuestion{Type: ptr(models.QuestionTypeYesNo), Question: ptr("Do you have acne?")})
	require.NoError(t, err)
	edited, err := uc.UpdateQuestion(ctx, draft.ID, 0, 1, &requests.UpdateQuestion{Question: ptr("Describe your skin")})
	require.NoError(t, err)
	assert.Equal(t, string(models.FormStateDirty), edited.State)

	step := document(t, edited).Steps[0]
	assert.Equal(t, "step_1", step.StepCode)
	assert.Equal(t, int64(2), step.Questions[0].ID)
	assert.Equal(t, int64(3), step.Questions[1].ID)

	result, err := uc.Submit(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.FormStateSucceeded), result.Draft.State)

	writes := f.writes()
	require.Len(t, writes, 1)
	assert.Equal(t, http.MethodPost, writes[0].Method)
	assert.Equal(t, "/consultations/create", writes[0].Path)

	body := writes[0].Body
	assert.Equal(t, "Skin Assessment", gjson.Get(body, "title").String())
	require.True(t, gjson.Get(body, "estimatedTime").Exists())
	assert.Equal(t, int64(0), gjson.Get(body, "estimatedTime").Int())
	questions := gjson.Get(body, "steps.0.questions").Array()
	require.Len(t, questions, 2)
	assert.Equal(t, "Do you have acne?", questions[0].Get("question").String())
	assert.Equal(t, "yesNo", questions[0].Get("type").String())
	assert.Equal(t, int64(0), questions[0].Get("position").Int())
	assert.Equal(t, "Describe your skin", questions[1].Get("question").String())
	assert.Equal(t, int64(1), questions[1].Get("position").Int())
	assert.False(t, gjson.Get(body, "steps.0._key").Exists())
	assert.False(t, gjson.Get(body, "steps.0.questions.0._key").Exists())

	toasts, err := f.notifications.Drain(ctx, "admin-1")
	require.NoError(t, err)
	require.Len(t, toasts, 1)
	assert.Equal(t, constvars.NotificationLevelSuccess, toasts[0].Level)
	assert.Equal(t, constvars.CreateConsultationSuccessMessage, toasts[0].Message)

	_, err = uc.AddStep(ctx, draft.ID)
	requireStatus(t, err, http.StatusConflict)
	_, err = uc.Submit(ctx, draft.ID)
	requireStatus(t, err, http.StatusConflict)
	assert.Len(t, f.writes(), 1)
}

func TestConsultationUsecase_Submit(t *testing.T) {
	t.Run("Empty Title And Radio Without Options Are Accepted", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		draftID := newDraftWithQuestion(t, ctx, f.usecase, models.QuestionTypeRadio)

		_, err := f.usecase.Submit(ctx, draftID)
		require.NoError(t, err)

		writes := f.writes()
		require.Len(t, writes, 1)
		assert.Equal(t, "", gjson.Get(writes[0].Body, "title").String())
		assert.Equal(t, "radio", gjson.Get(writes[0].Body, "steps.0.questions.0.type").String())
		assert.Empty(t, gjson.Get(writes[0].Body, "steps.0.questions.0.options").Array())
	})

	t.Run("Type Switch Retains Options", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		uc := f.usecase
		draftID := newDraftWithQuestion(t, ctx, uc, models.QuestionTypeRadio)

		_, err := uc.AddOption(ctx, draftID, 0, 0)
		require.NoError(t, err)
		_, err = uc.AddOption(ctx, draftID, 0, 0)
		require.NoError(t, err)
		_, err = uc.UpdateOption(ctx, draftID, 0, 0, 1, &requests.UpdateOption{Value: ptr("oily"), Label: ptr("Oily")})
		require.NoError(t, err)
		draft, err := uc.UpdateQuestion(ctx, draftID, 0, 0, &requests.UpdateQuestion{Type: ptr(models.QuestionTypeText)})
		require.NoError(t, err)

		question := document(t, draft).Steps[0].Questions[0]
		assert.Equal(t, models.QuestionTypeText, question.Type)
		require.Len(t, question.Options, 2)
		assert.Equal(t, 1, question.Options[1].Position)
		assert.Equal(t, "oily", question.Options[1].Value)

		_, err = uc.Submit(ctx, draftID)
		require.NoError(t, err)
		options := gjson.Get(f.writes()[0].Body, "steps.0.questions.0.options").Array()
		require.Len(t, options, 2)
		assert.Equal(t, "Oily", options[1].Get("label").String())
	})

	t.Run("Missing Treatment And Unknown Type Are Rejected", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		uc := f.usecase
		draft, err := uc.CreateDraft(ctx)
		require.NoError(t, err)
		_, err = uc.AddStep(ctx, draft.ID)
		require.NoError(t, err)
		_, err = uc.AddQuestion(ctx, draft.ID, 0)
		require.NoError(t, err)
		_, err = uc.UpdateQuestion(ctx, draft.ID, 0, 0, &requests.UpdateQuestion{Type: ptr("slider")})
		require.NoError(t, err)

		_, err = uc.Submit(ctx, draft.ID)
		customErr := requireStatus(t, err, http.StatusUnprocessableEntity)
		fields := make([]string, 0, len(customErr.FieldErrors))
		for _, fieldErr := range customErr.FieldErrors {
			fields = append(fields, fieldErr.Field)
		}
		assert.ElementsMatch(t, []string{"steps[0].questions[0].type", "treatment"}, fields)
		assert.Empty(t, f.writes())

		found, err := uc.FindDraft(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, string(models.FormStateRejected), found.State)

		_, err = uc.UpdateQuestion(ctx, draft.ID, 0, 0, &requests.UpdateQuestion{Type: ptr(models.QuestionTypeNumber)})
		require.NoError(t, err)
	})

	t.Run("Unknown Treatment Reference Is Rejected", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		uc := f.usecase
		draftID := newDraftWithQuestion(t, ctx, uc, models.QuestionTypeText)
		_, err := uc.UpdateHeader(ctx, draftID, &requests.UpdateConsultationHeader{Treatment: ptr("t404")})
		require.NoError(t, err)

		_, err = uc.Submit(ctx, draftID)
		customErr := requireStatus(t, err, http.StatusUnprocessableEntity)
		require.Len(t, customErr.FieldErrors, 1)
		assert.Equal(t, "treatment", customErr.FieldErrors[0].Field)
		assert.Equal(t, constvars.CustomValidationErrorMessages["treatment_ref"], customErr.FieldErrors[0].Message)
	})

	t.Run("Remote Failure Keeps Draft Editable", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		uc := f.usecase
		draftID := newDraftWithQuestion(t, ctx, uc, models.QuestionTypeText)
		f.setFailWrites(true)

		_, err := uc.Submit(ctx, draftID)
		require.Error(t, err)

		found, err := uc.FindDraft(ctx, draftID)
		require.NoError(t, err)
		assert.Equal(t, string(models.FormStateFailed), found.State)

		toasts, err := f.notifications.Drain(ctx, "admin-1")
		require.NoError(t, err)
		require.Len(t, toasts, 1)
		assert.Equal(t, constvars.NotificationLevelError, toasts[0].Level)
		assert.Equal(t, "Remote exploded", toasts[0].Message)

		f.setFailWrites(false)
		result, err := uc.Submit(ctx, draftID)
		require.NoError(t, err)
		assert.Equal(t, string(models.FormStateSucceeded), result.Draft.State)
	})
}

func TestConsultationUsecase_ConditionalBranch(t *testing.T) {
	t.Run("Unparsed Text Blocks Submit", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		uc := f.usecase
		draftID := newDraftWithQuestion(t, ctx, uc, models.QuestionTypeYesNo)

		draft, err := uc.SetConditionalBranch(ctx, draftID, 0, 0, models.BranchYes, `[{"type":"text",`)
		require.NoError(t, err)
		assert.Len(t, draft.PendingBranches, 1)
		assert.Empty(t, document(t, draft).Steps[0].Questions[0].ConditionalQuestions.Yes)

		_, err = uc.Submit(ctx, draftID)
		customErr := requireStatus(t, err, http.StatusUnprocessableEntity)
		require.Len(t, customErr.FieldErrors, 1)
		assert.Equal(t, "steps[0].questions[0].conditionalQuestions.yes", customErr.FieldErrors[0].Field)
		assert.Empty(t, f.writes())

		draft, err = uc.SetConditionalBranch(ctx, draftID, 0, 0, models.BranchYes, `[{"type":"text","question":"Since when?"}]`)
		require.NoError(t, err)
		assert.Empty(t, draft.PendingBranches)
		yes := document(t, draft).Steps[0].Questions[0].ConditionalQuestions.Yes
		require.Len(t, yes, 1)
		assert.Equal(t, "Since when?", yes[0].Question)
		assert.NotEmpty(t, yes[0].Key)
		assert.Greater(t, yes[0].ID, document(t, draft).Steps[0].Questions[0].ID)

		_, err = uc.Submit(ctx, draftID)
		require.NoError(t, err)
		assert.Equal(t, "Since when?", gjson.Get(f.writes()[0].Body, "steps.0.questions.0.conditionalQuestions.yes.0.question").String())
	})

	t.Run("Nested Questions Are Validated", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		uc := f.usecase
		draftID := newDraftWithQuestion(t, ctx, uc, models.QuestionTypeYesNo)

		_, err := uc.SetConditionalBranch(ctx, draftID, 0, 0, models.BranchNo, `[{"type":"bogus"}]`)
		require.NoError(t, err)

		_, err = uc.Submit(ctx, draftID)
		customErr := requireStatus(t, err, http.StatusUnprocessableEntity)
		require.Len(t, customErr.FieldErrors, 1)
		assert.Equal(t, "steps[0].questions[0].conditionalQuestions.no[0].type", customErr.FieldErrors[0].Field)
	})

	t.Run("Empty Text Clears Branch", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		uc := f.usecase
		draftID := newDraftWithQuestion(t, ctx, uc, models.QuestionTypeYesNo)

		_, err := uc.SetConditionalBranch(ctx, draftID, 0, 0, models.BranchYes, `[{"type":"text"}]`)
		require.NoError(t, err)
		_, err = uc.SetConditionalBranch(ctx, draftID, 0, 0, models.BranchNo, `{oops`)
		require.NoError(t, err)
		draft, err := uc.SetConditionalBranch(ctx, draftID, 0, 0, models.BranchYes, "  ")
		require.NoError(t, err)
		assert.Empty(t, document(t, draft).Steps[0].Questions[0].ConditionalQuestions.Yes)
		assert.Len(t, draft.PendingBranches, 1)

		draft, err = uc.SetConditionalBranch(ctx, draftID, 0, 0, models.BranchNo, "")
		require.NoError(t, err)
		assert.Empty(t, draft.PendingBranches)
	})

	t.Run("Removing Question Drops Its Pending Text", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		uc := f.usecase
		draftID := newDraftWithQuestion(t, ctx, uc, models.QuestionTypeYesNo)

		_, err := uc.SetConditionalBranch(ctx, draftID, 0, 0, models.BranchYes, `[`)
		require.NoError(t, err)
		draft, err := uc.RemoveQuestion(ctx, draftID, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, draft.PendingBranches)
	})

	t.Run("Unknown Branch", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		draftID := newDraftWithQuestion(t, ctx, f.usecase, models.QuestionTypeYesNo)

		_, err := f.usecase.SetConditionalBranch(ctx, draftID, 0, 0, "maybe", "[]")
		requireStatus(t, err, http.StatusBadRequest)
	})
}

func TestConsultationUsecase_EditFlow(t *testing.T) {
	t.Run("Hydrates And Updates", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		uc := f.usecase

		draft, err := uc.EditDraft(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "c1", draft.EntityID)
		hydrated := document(t, draft)
		assert.Equal(t, "Hair Check", hydrated.Title)
		require.Len(t, hydrated.Steps, 1)
		assert.NotEmpty(t, hydrated.Steps[0].Key)

		draft, err = uc.AddStep(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(8), document(t, draft).Steps[1].ID)

		_, err = uc.MoveStep(ctx, draft.ID, 1, 0)
		require.NoError(t, err)

		result, err := uc.Submit(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, string(models.FormStateSucceeded), result.Draft.State)

		writes := f.writes()
		require.Len(t, writes, 1)
		assert.Equal(t, http.MethodPatch, writes[0].Method)
		assert.Equal(t, "/consultations/c1", writes[0].Path)
		assert.Equal(t, "step_8", gjson.Get(writes[0].Body, "steps.0.stepCode").String())
		assert.Equal(t, int64(1), gjson.Get(writes[0].Body, "steps.1.position").Int())
		assert.False(t, gjson.Get(writes[0].Body, "_id").Exists())
	})

	t.Run("Branches That Are Not Questions Become Pending Text", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		uc := f.usecase

		draft, err := uc.EditDraft(ctx, "c9")
		require.NoError(t, err)
		question := document(t, draft).Steps[0].Questions[0]
		assert.Empty(t, question.ConditionalQuestions.Yes)
		assert.Empty(t, question.ConditionalQuestions.No)
		require.Len(t, draft.PendingBranches, 2)
		assert.JSONEq(t, `["Which ones?"]`, draft.PendingBranches[question.Key+":"+models.BranchYes])
		assert.Contains(t, draft.PendingBranches[question.Key+":"+models.BranchNo], `"Sure?"`)

		_, err = uc.Submit(ctx, draft.ID)
		customErr := requireStatus(t, err, http.StatusUnprocessableEntity)
		assert.Len(t, customErr.FieldErrors, 2)
		assert.Empty(t, f.writes())

		_, err = uc.SetConditionalBranch(ctx, draft.ID, 0, 0, models.BranchYes, `[{"type":"text","question":"Which ones?"}]`)
		require.NoError(t, err)
		draft, err = uc.SetConditionalBranch(ctx, draft.ID, 0, 0, models.BranchNo, "")
		require.NoError(t, err)
		assert.Empty(t, draft.PendingBranches)

		_, err = uc.Submit(ctx, draft.ID)
		require.NoError(t, err)
		writes := f.writes()
		require.Len(t, writes, 1)
		assert.Equal(t, "/consultations/c9", writes[0].Path)
		assert.Equal(t, "Which ones?", gjson.Get(writes[0].Body, "steps.0.questions.0.conditionalQuestions.yes.0.question").String())
	})

	t.Run("Missing Consultation Is Not Found", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.usecase.EditDraft(testContext(), "missing")
		requireStatus(t, err, http.StatusNotFound)
	})
}

func TestConsultationUsecase_Editing(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	uc := f.usecase
	draftID := newDraftWithQuestion(t, ctx, uc, models.QuestionTypeRadio)

	t.Run("Out Of Range Indexes", func(t *testing.T) {
		_, err := uc.RemoveStep(ctx, draftID, 3)
		requireStatus(t, err, http.StatusBadRequest)
		_, err = uc.MoveQuestion(ctx, draftID, 0, 0, 1)
		requireStatus(t, err, http.StatusBadRequest)
		_, err = uc.RemoveOption(ctx, draftID, 0, 0, 0)
		requireStatus(t, err, http.StatusBadRequest)
		_, err = uc.UpdateStep(ctx, draftID, -1, &requests.UpdateStep{Title: ptr("x")})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("Options Keep Contiguous Positions", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := uc.AddOption(ctx, draftID, 0, 0)
			require.NoError(t, err)
		}
		_, err := uc.MoveOption(ctx, draftID, 0, 0, 2, 0)
		require.NoError(t, err)
		draft, err := uc.RemoveOption(ctx, draftID, 0, 0, 1)
		require.NoError(t, err)

		options := document(t, draft).Steps[0].Questions[0].Options
		require.Len(t, options, 2)
		for i, option := range options {
			assert.Equal(t, i, option.Position)
		}
	})

	t.Run("Discard Removes Draft", func(t *testing.T) {
		require.NoError(t, uc.DiscardDraft(ctx, draftID))
		_, err := uc.FindDraft(ctx, draftID)
		requireStatus(t, err, http.StatusNotFound)
	})
}

func TestConsultationUsecase_EstimatedTime(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	uc := f.usecase
	draftID := newDraftWithQuestion(t, ctx, uc, models.QuestionTypeText)

	draft, err := uc.UpdateHeader(ctx, draftID, &requests.UpdateConsultationHeader{EstimatedTime: ptr(15)})
	require.NoError(t, err)
	require.NotNil(t, document(t, draft).EstimatedTime)
	assert.Equal(t, 15, *document(t, draft).EstimatedTime)

	draft, err = uc.UpdateHeader(ctx, draftID, &requests.UpdateConsultationHeader{ClearEstimatedTime: true})
	require.NoError(t, err)
	assert.Nil(t, document(t, draft).EstimatedTime)

	_, err = uc.Submit(ctx, draftID)
	require.NoError(t, err)
	writes := f.writes()
	require.Len(t, writes, 1)
	assert.False(t, gjson.Get(writes[0].Body, "estimatedTime").Exists())
}
