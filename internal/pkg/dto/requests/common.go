package requests

type ListQuery struct {
	Page       int
	Limit      int
	Sort       string
	SearchTerm string
}

type BatchDelete struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type MoveElement struct {
	To *int `json:"to" validate:"required,gte=0"`
}
