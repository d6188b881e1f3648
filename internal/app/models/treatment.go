package models

type Treatment struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required,slug"`
	Description string `json:"description" validate:"required"`
	IsActive    bool   `json:"isActive"`
	LogoURL     string `json:"logoUrl,omitempty"`
	QuestionsID string `json:"questionsId,omitempty"`
}
