package responses

type ResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *ListMeta   `json:"meta,omitempty"`
}

type ListMeta struct {
	Total           int `json:"total"`
	TotalUnfiltered int `json:"totalUnfiltered"`
}
