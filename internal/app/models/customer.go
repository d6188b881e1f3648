package models

type CustomerName struct {
	FirstName  string `json:"firstName" validate:"required"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName" validate:"required"`
}

type Customer struct {
	ID                 string       `json:"_id,omitempty"`
	Name               CustomerName `json:"name"`
	Email              string       `json:"email" validate:"required,email"`
	ContactNo          string       `json:"contactNo"`
	EmergencyContactNo string       `json:"emergencyContactNo"`
	Gender             string       `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	DateOfBirth        string       `json:"dateOfBirth"`
	BloodGroup         string       `json:"bloodGroup"`
	PresentAddress     string       `json:"presentAddress"`
	PermanentAddress   string       `json:"permanentAddress"`
}

// NewCustomer starts with every text field empty and no gender chosen.
func NewCustomer() Customer {
	return Customer{}
}

func (c Customer) Payload() Customer {
	payload := c
	payload.ID = ""
	return payload
}
