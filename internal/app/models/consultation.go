package models

import (
	"errors"
	"mrchemist-admin-service/internal/pkg/fieldarray"
	"strings"

	"github.com/goccy/go-json"
)

const (
	QuestionTypeYesNo         = "yesNo"
	QuestionTypeText          = "text"
	QuestionTypeTextarea      = "textarea"
	QuestionTypeCheckbox      = "checkbox"
	QuestionTypeRadio         = "radio"
	QuestionTypeSelect        = "select"
	QuestionTypeDate          = "date"
	QuestionTypeNumber        = "number"
	QuestionTypeCheckboxGroup = "checkboxGroup"
)

const (
	BranchYes = "yes"
	BranchNo  = "no"
)

// Consultation is the questionnaire aggregate sent to the remote API. Steps, questions and options
// are owned inline and travel in a single payload.
type Consultation struct {
	ID            string `json:"_id,omitempty"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	EstimatedTime *int   `json:"estimatedTime,omitempty" validate:"omitempty,gte=0"`
	Steps         []Step `json:"steps" validate:"dive"`
	Treatment     string `json:"treatment" validate:"required"`
	IsActive      bool   `json:"isActive"`
}

type Step struct {
	Key            string     `json:"_key,omitempty"`
	ID             int64      `json:"id"`
	StepCode       string     `json:"stepCode"`
	Title          string     `json:"title"`
	Position       int        `json:"position"`
	TreatmentTypes []string   `json:"treatmentTypes"`
	Questions      []Question `json:"questions" validate:"dive"`
}

// Question keeps options and conditional branches even when its type does not use them, so that
// switching the type back restores what the admin entered.
type Question struct {
	Key                  string               `json:"_key,omitempty"`
	ID                   int64                `json:"id"`
	QuestionCode         string               `json:"questionCode"`
	Type                 string               `json:"type" validate:"question_type"`
	Question             string               `json:"question"`
	Required             bool                 `json:"required"`
	Description          string               `json:"description"`
	Position             int                  `json:"position"`
	TreatmentTypes       []string             `json:"treatmentTypes"`
	Placeholder          string               `json:"placeholder"`
	Prefix               string               `json:"prefix"`
	Suffix               string               `json:"suffix"`
	Label                string               `json:"label"`
	Options              []Option             `json:"options" validate:"dive"`
	AllowMultiple        bool                 `json:"allowMultiple"`
	NoneOption           string               `json:"noneOption"`
	ConditionalQuestions ConditionalQuestions `json:"conditionalQuestions"`
}

// ErrUnparsedBranch reports a conditional branch somewhere in a question list that is not itself a
// list of questions.
var ErrUnparsedBranch = errors.New("conditional branch is not a list of questions")

// ConditionalQuestions are the follow-ups shown after a yes or no answer. Each branch is validated
// with the same rules as top level questions.
type ConditionalQuestions struct {
	Yes []Question `json:"yes" validate:"dive"`
	No  []Question `json:"no" validate:"dive"`

	// Unparsed keeps the stored text of a branch that could not be read as questions, keyed by
	// branch name. Such a branch decodes as empty.
	Unparsed map[string]string `json:"-"`
}

// UnmarshalJSON accepts branches holding arbitrary items, which older documents may carry.
func (c *ConditionalQuestions) UnmarshalJSON(data []byte) error {
	var raw struct {
		Yes json.RawMessage `json:"yes"`
		No  json.RawMessage `json:"no"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = ConditionalQuestions{}
	c.decodeBranch(BranchYes, raw.Yes)
	c.decodeBranch(BranchNo, raw.No)
	return nil
}

func (c *ConditionalQuestions) decodeBranch(name string, raw json.RawMessage) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return
	}

	questions, err := ParseQuestions([]byte(text))
	if err != nil {
		if c.Unparsed == nil {
			c.Unparsed = make(map[string]string)
		}
		c.Unparsed[name] = text
		return
	}
	*c.Branch(name) = questions
}

// ParseQuestions decodes a question list and fails when any branch at any depth is not a list of
// questions.
func ParseQuestions(data []byte) ([]Question, error) {
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, err
	}
	if hasUnparsedBranch(questions) {
		return nil, ErrUnparsedBranch
	}
	return questions, nil
}

func hasUnparsedBranch(questions []Question) bool {
	for _, question := range questions {
		if len(question.ConditionalQuestions.Unparsed) > 0 ||
			hasUnparsedBranch(question.ConditionalQuestions.Yes) ||
			hasUnparsedBranch(question.ConditionalQuestions.No) {
			return true
		}
	}
	return false
}

type Option struct {
	Key      string `json:"_key,omitempty"`
	ID       int64  `json:"id"`
	Value    string `json:"value"`
	Label    string `json:"label"`
	Position int    `json:"position"`
}

func (s *Step) SetKey(key string) { s.Key = key }
func (s *Step) SetPosition(position int) { s.Position = position }
func (q *Question) SetKey(key string) { q.Key = key }
func (q *Question) SetPosition(position int) { q.Position = position }
func (o *Option) SetKey(key string) { o.Key = key }
func (o *Option) SetPosition(position int) { o.Position = position }

// NewConsultation is the create-flow default: empty texts, no steps, an estimate of zero minutes
// and active.
func NewConsultation() Consultation {
	estimatedTime := 0
	return Consultation{
		EstimatedTime: &estimatedTime,
		Steps:         []Step{},
		IsActive:      true,
	}
}

// Branch returns a pointer to the yes or no list, or nil for an unknown branch name.
func (c *ConditionalQuestions) Branch(name string) *[]Question {
	switch name {
	case BranchYes:
		return &c.Yes
	case BranchNo:
		return &c.No
	}
	return nil
}

// MaxElementID walks the whole document, conditional branches included.
func (c Consultation) MaxElementID() int64 {
	var max int64
	for _, step := range c.Steps {
		if step.ID > max {
			max = step.ID
		}
		if id := maxQuestionID(step.Questions); id > max {
			max = id
		}
	}
	return max
}

// MaxQuestionID is the largest id among questions, their options and their branches.
func MaxQuestionID(questions []Question) int64 {
	return maxQuestionID(questions)
}

func maxQuestionID(questions []Question) int64 {
	var max int64
	for _, question := range questions {
		if question.ID > max {
			max = question.ID
		}
		for _, option := range question.Options {
			if option.ID > max {
				max = option.ID
			}
		}
		for _, branch := range [][]Question{question.ConditionalQuestions.Yes, question.ConditionalQuestions.No} {
			if id := maxQuestionID(branch); id > max {
				max = id
			}
		}
	}
	return max
}

// Normalize fills nil lists, assigns identity keys and rewrites positions after hydration.
func (c *Consultation) Normalize() {
	if c.Steps == nil {
		c.Steps = []Step{}
	}
	for i := range c.Steps {
		step := &c.Steps[i]
		if step.Key == "" {
			step.SetKey(newKey())
		}
		if step.TreatmentTypes == nil {
			step.TreatmentTypes = []string{}
		}
		if step.Questions == nil {
			step.Questions = []Question{}
		}
		normalizeQuestions(step.Questions)
	}
	fieldarray.Reindex(c.Steps)
}

// NormalizeQuestions prepares a question list that did not come through the editor, such as a
// pasted conditional branch.
func NormalizeQuestions(questions []Question) []Question {
	if questions == nil {
		questions = []Question{}
	}
	normalizeQuestions(questions)
	return questions
}

func normalizeQuestions(questions []Question) {
	for i := range questions {
		question := &questions[i]
		if question.Key == "" {
			question.SetKey(newKey())
		}
		if question.TreatmentTypes == nil {
			question.TreatmentTypes = []string{}
		}
		if question.Options == nil {
			question.Options = []Option{}
		}
		for j := range question.Options {
			if question.Options[j].Key == "" {
				question.Options[j].SetKey(newKey())
			}
		}
		fieldarray.Reindex(question.Options)
		if question.ConditionalQuestions.Yes == nil {
			question.ConditionalQuestions.Yes = []Question{}
		}
		if question.ConditionalQuestions.No == nil {
			question.ConditionalQuestions.No = []Question{}
		}
		normalizeQuestions(question.ConditionalQuestions.Yes)
		normalizeQuestions(question.ConditionalQuestions.No)
	}
	fieldarray.Reindex(questions)
}

// Payload returns a deep copy stripped of identity keys and the remote id, ready for the gateway.
func (c Consultation) Payload() Consultation {
	payload := c
	payload.ID = ""
	payload.Steps = make([]Step, len(c.Steps))
	for i, step := range c.Steps {
		step.Key = ""
		step.TreatmentTypes = cloneStrings(step.TreatmentTypes)
		step.Questions = questionsPayload(step.Questions)
		payload.Steps[i] = step
	}
	return payload
}

func questionsPayload(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, question := range questions {
		question.Key = ""
		question.TreatmentTypes = cloneStrings(question.TreatmentTypes)
		options := make([]Option, len(question.Options))
		for j, option := range question.Options {
			option.Key = ""
			options[j] = option
		}
		question.Options = options
		question.ConditionalQuestions = ConditionalQuestions{
			Yes: questionsPayload(question.ConditionalQuestions.Yes),
			No:  questionsPayload(question.ConditionalQuestions.No),
		}
		out[i] = question
	}
	return out
}
