package requests

// UpdateConsultationHeader patches the top level fields. ClearEstimatedTime drops the estimate so
// it is left out of the payload.
type UpdateConsultationHeader struct {
	Title              *string `json:"title"`
	Subtitle           *string `json:"subtitle"`
	EstimatedTime      *int    `json:"estimatedTime"`
	ClearEstimatedTime bool    `json:"clearEstimatedTime"`
	Treatment          *string `json:"treatment"`
	IsActive           *bool   `json:"isActive"`
}

type UpdateStep struct {
	StepCode       *string   `json:"stepCode"`
	Title          *string   `json:"title"`
	TreatmentTypes *[]string `json:"treatmentTypes"`
}

// UpdateQuestion patches a question in place. Options and conditional branches have their own
// endpoints, so they are not part of the patch.
type UpdateQuestion struct {
	QuestionCode   *string   `json:"questionCode"`
	Type           *string   `json:"type"`
	Question       *string   `json:"question"`
	Required       *bool     `json:"required"`
	Description    *string   `json:"description"`
	TreatmentTypes *[]string `json:"treatmentTypes"`
	Placeholder    *string   `json:"placeholder"`
	Prefix         *string   `json:"prefix"`
	Suffix         *string   `json:"suffix"`
	Label          *string   `json:"label"`
	AllowMultiple  *bool     `json:"allowMultiple"`
	NoneOption     *string   `json:"noneOption"`
}

type UpdateOption struct {
	Value *string `json:"value"`
	Label *string `json:"label"`
}

type SetConditionalBranch struct {
	Raw string `json:"raw"`
}
