package dto

import "time"

// CreateEmployeeRequest alta de empleado por el dueño (POST /users/employees).
// employer e is_farm_owner se fijan en el servidor; is_farm_owner=true se rechaza.
type CreateEmployeeRequest struct {
	Email             string  `json:"email" validate:"required,email,max=254"`
	Password1         *string `json:"password1" validate:"omitempty,min=8,max=128"`
	Password2         *string `json:"password2"`
	FirstName         string  `json:"first_name" validate:"required,max=150"`
	LastName          *string `json:"last_name" validate:"omitempty,max=150"`
	Role              string  `json:"role" validate:"omitempty,oneof=owner manager veterinarian worker accountant"`
	IsFarmOwner       *bool   `json:"is_farm_owner"`
	Employer          *string `json:"employer"`
	PreferredLanguage string  `json:"preferred_language" validate:"omitempty,oneof=en ur"`
	HireDate          *string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	JobTitle          *string `json:"job_title" validate:"omitempty,max=100"`
	ContactNumber     *string `json:"contact_number" validate:"omitempty,max=20"`
}

// UpdateEmployeeRequest PUT/PATCH /users/employees/{id}. El rol sí es editable en este flujo.
type UpdateEmployeeRequest struct {
	Email             *string `json:"email" validate:"omitempty,email,max=254"`
	Password1         *string `json:"password1" validate:"omitempty,min=8,max=128"`
	Password2         *string `json:"password2"`
	FirstName         *string `json:"first_name" validate:"omitempty,min=1,max=150"`
	LastName          *string `json:"last_name" validate:"omitempty,max=150"`
	Role              *string `json:"role" validate:"omitempty,oneof=owner manager veterinarian worker accountant"`
	IsFarmOwner       *bool   `json:"is_farm_owner"`
	PreferredLanguage *string `json:"preferred_language" validate:"omitempty,oneof=en ur"`
	HireDate          *string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	JobTitle          *string `json:"job_title" validate:"omitempty,max=100"`
	ContactNumber     *string `json:"contact_number" validate:"omitempty,max=20"`
}

// EmployeeResponse vista de empleado: sin campos de granja ni is_farm_owner.
type EmployeeResponse struct {
	ID                string  `json:"id"`
	Email             string  `json:"email"`
	FirstName         string  `json:"first_name"`
	LastName          *string `json:"last_name"`
	PreferredLanguage string  `json:"preferred_language"`
	Role              string  `json:"role"`
	RoleDisplay       string  `json:"role_display"`
	Employer          *string `json:"employer"`
	EmployerEmail     *string `json:"employer_email"`
	HireDate          *string `json:"hire_date"`
	JobTitle          *string `json:"job_title"`
	ContactNumber     *string `json:"contact_number"`
	EmployeesCount    int     `json:"employees_count"`
	PermissionsResponse
	IsActive   bool      `json:"is_active"`
	DateJoined time.Time `json:"date_joined"`
}
