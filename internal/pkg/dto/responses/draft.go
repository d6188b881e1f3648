package responses

import "time"

type Draft struct {
	ID              string            `json:"id"`
	Kind            string            `json:"kind"`
	EntityID        string            `json:"entityId,omitempty"`
	State           string            `json:"state"`
	Document        interface{}       `json:"document"`
	PendingBranches map[string]string `json:"pendingBranches,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

type SubmitResult struct {
	Draft    Draft       `json:"draft"`
	Response interface{} `json:"response,omitempty"`
}
