package consultations

import (
	"fmt"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/fieldarray"
)

var branches = []string{models.BranchYes, models.BranchNo}

func newQuestion(id int64) models.Question {
	return models.Question{
		ID:             id,
		Type:           models.QuestionTypeText,
		TreatmentTypes: []string{},
		Options:        []models.Option{},
		ConditionalQuestions: models.ConditionalQuestions{
			Yes: []models.Question{},
			No:  []models.Question{},
		},
	}
}

func stepAt(session *consultationSession, stepIndex int) (*models.Step, error) {
	if stepIndex < 0 || stepIndex >= len(session.Draft.Steps) {
		return nil, exceptions.ErrIndexOutOfRange(fieldarray.ErrIndexOutOfRange, "steps")
	}
	return &session.Draft.Steps[stepIndex], nil
}

func questionAt(session *consultationSession, stepIndex, questionIndex int) (*models.Question, error) {
	step, err := stepAt(session, stepIndex)
	if err != nil {
		return nil, err
	}
	if questionIndex < 0 || questionIndex >= len(step.Questions) {
		return nil, exceptions.ErrIndexOutOfRange(fieldarray.ErrIndexOutOfRange, questionsField(stepIndex))
	}
	return &step.Questions[questionIndex], nil
}

func questionsField(stepIndex int) string {
	return fmt.Sprintf("steps[%d].questions", stepIndex)
}

func optionsField(stepIndex, questionIndex int) string {
	return fmt.Sprintf("steps[%d].questions[%d].options", stepIndex, questionIndex)
}

// pendingBranchKey follows the question identity key so that moving the question keeps its
// pending text attached.
func pendingBranchKey(questionKey, branch string) string {
	return questionKey + ":" + branch
}

func clearPendingBranches(session *consultationSession, question models.Question) {
	for _, branch := range branches {
		session.ClearPendingBranch(pendingBranchKey(question.Key, branch))
	}
}

// pendingBranchErrors reports every branch still holding text that did not parse, and forgets
// pending text whose question is gone.
func pendingBranchErrors(session *consultationSession) []exceptions.FieldError {
	if len(session.PendingBranches) == 0 {
		return nil
	}

	var fieldErrors []exceptions.FieldError
	matched := make(map[string]bool, len(session.PendingBranches))
	for i, step := range session.Draft.Steps {
		for j, question := range step.Questions {
			for _, branch := range branches {
				key := pendingBranchKey(question.Key, branch)
				if _, ok := session.PendingBranches[key]; !ok {
					continue
				}
				matched[key] = true
				fieldErrors = append(fieldErrors, exceptions.FieldError{
					Field:   fmt.Sprintf("steps[%d].questions[%d].conditionalQuestions.%s", i, j, branch),
					Message: constvars.CustomValidationErrorMessages["json"],
				})
			}
		}
	}

	for key := range session.PendingBranches {
		if !matched[key] {
			session.ClearPendingBranch(key)
		}
	}
	return fieldErrors
}

func assignMissingIDs(session *consultationSession, questions []models.Question) {
	for i := range questions {
		question := &questions[i]
		if question.ID == 0 {
			question.ID = session.NextElementID()
		}
		for j := range question.Options {
			if question.Options[j].ID == 0 {
				question.Options[j].ID = session.NextElementID()
			}
		}
		assignMissingIDs(session, question.ConditionalQuestions.Yes)
		assignMissingIDs(session, question.ConditionalQuestions.No)
	}
}

// keepUnparsedBranches moves stored branches that did not decode as questions into pending text,
// so the admin sees them and submit stays blocked until they are rewritten.
func keepUnparsedBranches(session *consultationSession) int {
	var pending int
	for i := range session.Draft.Steps {
		for j := range session.Draft.Steps[i].Questions {
			question := &session.Draft.Steps[i].Questions[j]
			for _, branch := range branches {
				raw, ok := question.ConditionalQuestions.Unparsed[branch]
				if !ok {
					continue
				}
				session.SetPendingBranch(pendingBranchKey(question.Key, branch), raw)
				pending++
			}
			question.ConditionalQuestions.Unparsed = nil
		}
	}
	return pending
}
