package constvars

const (
	QueryParamPage       = "page"
	QueryParamLimit      = "limit"
	QueryParamSort       = "sort"
	QueryParamSearchTerm = "searchTerm"
)

const (
	URLParamResource       = "resource"
	URLParamEntityID       = "entity_id"
	URLParamDraftID        = "draft_id"
	URLParamConsultationID = "consultation_id"
	URLParamProductID      = "product_id"
	URLParamBlogID         = "blog_id"
	URLParamTreatmentID    = "treatment_id"
	URLParamCustomerID     = "customer_id"
	URLParamUserID         = "user_id"
	URLParamStepIndex      = "step_index"
	URLParamQuestionIndex  = "question_index"
	URLParamOptionIndex    = "option_index"
	URLParamBranch         = "branch"
	URLParamField          = "field"
	URLParamIndex          = "index"
)

const (
	FormFieldPayload            = "payload"
	FormFieldFiles              = "files"
	FormFieldFile               = "file"
	FormFieldOpenGraphImageFile = "openGraphImageFile"
)
