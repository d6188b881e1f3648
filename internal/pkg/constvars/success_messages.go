package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	CreateDraftSuccessMessage  = "draft created successfully"
	FindDraftSuccessMessage    = "draft found successfully"
	UpdateDraftSuccessMessage  = "draft updated successfully"
	DiscardDraftSuccessMessage = "draft discarded successfully"

	CreateConsultationSuccessMessage = "Consultation created successfully"
	UpdateConsultationSuccessMessage = "Consultation updated successfully"
	CreateProductSuccessMessage      = "Product created successfully"
	UpdateProductSuccessMessage      = "Product updated successfully"
	CreateBlogSuccessMessage         = "Blog created successfully"
	UpdateBlogSuccessMessage         = "Blog updated successfully"
	CreateTreatmentSuccessMessage    = "Treatment created successfully"
	UpdateTreatmentSuccessMessage    = "Treatment updated successfully"
	CreateCustomerSuccessMessage     = "Customer created successfully"
	UpdateCustomerSuccessMessage     = "Customer updated successfully"
	CreateUserSuccessMessage         = "User created successfully"
	UpdateUserSuccessMessage         = "User updated successfully"

	FindResourcesSuccessMessage       = "resources found successfully"
	DeleteResourceSuccessMessage      = "resource deleted successfully"
	BatchDeleteResourceSuccessMessage = "resources deleted successfully"
	FindTreatmentOptionsSuccess       = "treatment options found successfully"
	FindNotificationsSuccessMessage   = "notifications found successfully"
)
