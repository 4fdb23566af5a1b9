package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest registro público (POST /users). password1 se hashea en el use case.
type RegisterRequest struct {
	Email             string           `json:"email" validate:"required,email,max=254"`
	Password1         string           `json:"password1" validate:"required,min=8,max=128"`
	Password2         string           `json:"password2" validate:"required"`
	FirstName         string           `json:"first_name" validate:"required,max=150"`
	LastName          *string          `json:"last_name" validate:"omitempty,max=150"`
	FarmName          *string          `json:"farm_name" validate:"omitempty,max=255"`
	FarmLocation      *string          `json:"farm_location" validate:"omitempty,max=255"`
	FarmSize          *decimal.Decimal `json:"farm_size"`
	PreferredLanguage string           `json:"preferred_language" validate:"omitempty,oneof=en ur"`
	HireDate          *string          `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	JobTitle          *string          `json:"job_title" validate:"omitempty,max=100"`
	ContactNumber     *string          `json:"contact_number" validate:"omitempty,max=20"`
}

// UpdateAccountRequest actualización de perfil (PUT/PATCH /users/{id}).
// Rol y banderas son de solo lectura aquí; employer admite null para desvincular.
type UpdateAccountRequest struct {
	Email             *string          `json:"email" validate:"omitempty,email,max=254"`
	Password1         *string          `json:"password1" validate:"omitempty,min=8,max=128"`
	Password2         *string          `json:"password2"`
	FirstName         *string          `json:"first_name" validate:"omitempty,min=1,max=150"`
	LastName          *string          `json:"last_name" validate:"omitempty,max=150"`
	FarmName          *string          `json:"farm_name" validate:"omitempty,max=255"`
	FarmLocation      *string          `json:"farm_location" validate:"omitempty,max=255"`
	FarmSize          *decimal.Decimal `json:"farm_size"`
	PreferredLanguage *string          `json:"preferred_language" validate:"omitempty,oneof=en ur"`
	Employer          NullableString   `json:"employer"`
	HireDate          *string          `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	JobTitle          *string          `json:"job_title" validate:"omitempty,max=100"`
	ContactNumber     *string          `json:"contact_number" validate:"omitempty,max=20"`
}

// AccountListQuery filtros de GET /users.
type AccountListQuery struct {
	PageRequest
	IsActive    *bool  `query:"is_active"`
	IsFarmOwner *bool  `query:"is_farm_owner"`
	Role        string `query:"role"`
	Search      string `query:"search"`
	Ordering    string `query:"ordering"`
}

// PermissionsResponse banderas compartidas por ambas vistas.
type PermissionsResponse struct {
	CanManageAnimals   bool `json:"can_manage_animals"`
	CanManageHealth    bool `json:"can_manage_health"`
	CanManageFeeding   bool `json:"can_manage_feeding"`
	CanManageInventory bool `json:"can_manage_inventory"`
	CanManageSales     bool `json:"can_manage_sales"`
	CanManageEmployees bool `json:"can_manage_employees"`
	CanViewReports     bool `json:"can_view_reports"`
}

// AccountResponse vista completa (propia cuenta, listados de /users).
type AccountResponse struct {
	ID                string           `json:"id"`
	Email             string           `json:"email"`
	FirstName         string           `json:"first_name"`
	LastName          *string          `json:"last_name"`
	FarmName          *string          `json:"farm_name"`
	FarmLocation      *string          `json:"farm_location"`
	FarmSize          *decimal.Decimal `json:"farm_size"`
	PreferredLanguage string           `json:"preferred_language"`
	IsFarmOwner       bool             `json:"is_farm_owner"`
	Role              string           `json:"role"`
	RoleDisplay       string           `json:"role_display"`
	Employer          *string          `json:"employer"`
	EmployerEmail     *string          `json:"employer_email"`
	HireDate          *string          `json:"hire_date"`
	JobTitle          *string          `json:"job_title"`
	ContactNumber     *string          `json:"contact_number"`
	EmployeesCount    int              `json:"employees_count"`
	PermissionsResponse
	IsActive   bool      `json:"is_active"`
	DateJoined time.Time `json:"date_joined"`
}

// AccountListResponse página de cuentas.
type AccountListResponse struct {
	Count    int               `json:"count"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Results  []AccountResponse `json:"results"`
}
