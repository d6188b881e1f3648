package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConsultation() Consultation {
	return Consultation{
		ID:        "c1",
		Title:     "Skin Assessment",
		Treatment: "t1",
		IsActive:  true,
		Steps: []Step{{
			Key:   "k-step",
			ID:    10,
			Title: "Basics",
			Questions: []Question{{
				Key:  "k-q",
				ID:   11,
				Type: QuestionTypeYesNo,
				Options: []Option{
					{Key: "k-o", ID: 12, Value: "dry", Label: "Dry"},
				},
				ConditionalQuestions: ConditionalQuestions{
					Yes: []Question{{Key: "k-nested", ID: 40, Type: QuestionTypeText}},
				},
			}},
		}},
	}
}

func TestConsultationMaxElementID(t *testing.T) {
	t.Run("Includes Conditional Branches", func(t *testing.T) {
		assert.Equal(t, int64(40), sampleConsultation().MaxElementID())
	})

	t.Run("Empty Document", func(t *testing.T) {
		assert.Equal(t, int64(0), NewConsultation().MaxElementID())
	})
}

func TestConsultationPayload(t *testing.T) {
	consultation := sampleConsultation()
	payload := consultation.Payload()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.NotContains(t, string(body), "_key", "identity keys never reach the remote API")
	assert.NotContains(t, string(body), "_id")
	assert.Equal(t, "k-nested", consultation.Steps[0].Questions[0].ConditionalQuestions.Yes[0].Key, "payload must not mutate the draft")
	assert.Equal(t, "dry", payload.Steps[0].Questions[0].Options[0].Value)
}

func TestConsultationNormalize(t *testing.T) {
	var consultation Consultation
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "Hydrated",
		"steps": [{"id": 3, "position": 7, "questions": [{"id": 4, "type": "radio", "position": 9,
			"options": [{"id": 5, "value": "a", "label": "A", "position": 4}]}]}],
		"treatment": "t1",
		"isActive": true
	}`), &consultation))

	consultation.Normalize()

	step := consultation.Steps[0]
	assert.NotEmpty(t, step.Key)
	assert.Equal(t, 0, step.Position)
	assert.Equal(t, []string{}, step.TreatmentTypes)

	question := step.Questions[0]
	assert.NotEmpty(t, question.Key)
	assert.Equal(t, 0, question.Position)
	assert.Equal(t, 0, question.Options[0].Position)
	assert.Equal(t, []Question{}, question.ConditionalQuestions.Yes)
}

func TestConditionalQuestionsLenientDecode(t *testing.T) {
	t.Run("Questions Decode Normally", func(t *testing.T) {
		var question Question
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"type":"yesNo","conditionalQuestions":{"yes":[{"id":2,"type":"text"}],"no":[]}}`), &question))
		require.Len(t, question.ConditionalQuestions.Yes, 1)
		assert.Equal(t, int64(2), question.ConditionalQuestions.Yes[0].ID)
		assert.Empty(t, question.ConditionalQuestions.Unparsed)
	})

	t.Run("Foreign Items Are Kept As Text", func(t *testing.T) {
		var question Question
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"conditionalQuestions":{"yes":["Which ones?"],"no":null}}`), &question))
		assert.Empty(t, question.ConditionalQuestions.Yes)
		assert.Empty(t, question.ConditionalQuestions.No)
		assert.Equal(t, map[string]string{BranchYes: `["Which ones?"]`}, question.ConditionalQuestions.Unparsed)
	})

	t.Run("Strict Parse Rejects Nested Foreign Items", func(t *testing.T) {
		_, err := ParseQuestions([]byte(`[{"id":1,"conditionalQuestions":{"yes":[],"no":[{"id":2,"conditionalQuestions":{"yes":[7]}}]}}]`))
		assert.ErrorIs(t, err, ErrUnparsedBranch)

		questions, err := ParseQuestions([]byte(`[{"id":1,"type":"text"}]`))
		require.NoError(t, err)
		assert.Len(t, questions, 1)
	})
}
