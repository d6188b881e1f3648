package requests

type UpdateProductFields struct {
	Name              *string   `json:"name"`
	Slug              *string   `json:"slug"`
	Description       *string   `json:"description"`
	BasePrice         *float64  `json:"basePrice"`
	ImageURLs         *[]string `json:"imageUrls"`
	Treatment         *string   `json:"treatment"`
	NeedConsultation  *bool     `json:"needConsultation"`
	IsActive          *bool     `json:"isActive"`
	MetaTitle         *string   `json:"metaTitle"`
	MetaDescription   *string   `json:"metaDescription"`
	OpenGraphImageURL *string   `json:"openGraphImageUrl"`
}

type UpdateBlogFields struct {
	Title             *string   `json:"title"`
	Slug              *string   `json:"slug"`
	Excerpt           *string   `json:"excerpt"`
	Content           *string   `json:"content"`
	ImageURLs         *[]string `json:"imageUrls"`
	Treatment         *string   `json:"treatment"`
	IsPublished       *bool     `json:"isPublished"`
	MetaTitle         *string   `json:"metaTitle"`
	MetaDescription   *string   `json:"metaDescription"`
	OpenGraphImageURL *string   `json:"openGraphImageUrl"`
}

type TreatmentForm struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required,slug"`
	Description string `json:"description" validate:"required"`
	IsActive    *bool  `json:"isActive"`
	LogoURL     string `json:"logoUrl"`
	QuestionsID string `json:"questionsId"`
}

type UpdateCustomerName struct {
	FirstName  *string `json:"firstName"`
	MiddleName *string `json:"middleName"`
	LastName   *string `json:"lastName"`
}

type UpdateCustomerFields struct {
	Name               *UpdateCustomerName `json:"name"`
	Email              *string             `json:"email"`
	ContactNo          *string             `json:"contactNo"`
	EmergencyContactNo *string             `json:"emergencyContactNo"`
	Gender             *string             `json:"gender"`
	DateOfBirth        *string             `json:"dateOfBirth"`
	BloodGroup         *string             `json:"bloodGroup"`
	PresentAddress     *string             `json:"presentAddress"`
	PermanentAddress   *string             `json:"permanentAddress"`
}

type UpdateUserFields struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}
