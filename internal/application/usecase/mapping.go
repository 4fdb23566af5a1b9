package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farm-api/internal/application/dto"
	"github.com/jhoicas/farm-api/internal/application/validation"
	"github.com/jhoicas/farm-api/internal/domain"
	"github.com/jhoicas/farm-api/internal/domain/entity"
)

// Mensajes de validación y error (claves del catálogo i18n).
const (
	MsgPasswordMismatch      = "Passwords do not match."
	MsgEmailTaken            = "A user with that email already exists."
	MsgEmployeeNeedsEmployer = "Employees must have an employer."
	MsgEmployeeNotOwner      = "Employees cannot be farm owners."
	MsgOwnerNoEmployer       = "Farm owners cannot have employers."
	MsgInvalidEmployer       = "Invalid employer."
	MsgEmployerIsEmployee    = "Employers cannot themselves be employees."
	MsgSelfEmployer          = "An account cannot be its own employer."
	MsgFarmSizeNegative      = "Ensure this value is greater than or equal to 0."
	MsgEmployeeNotFound      = "Employee not found."
	MsgNotFound              = "Not found."
)

const dateLayout = "2006-01-02"

// ToAccountResponse vista completa.
func ToAccountResponse(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}
	return &dto.AccountResponse{
		ID:                  a.ID,
		Email:               a.Email,
		FirstName:           a.FirstName,
		LastName:            a.LastName,
		FarmName:            a.FarmName,
		FarmLocation:        a.FarmLocation,
		FarmSize:            a.FarmSize,
		PreferredLanguage:   a.PreferredLanguage,
		IsFarmOwner:         a.IsFarmOwner,
		Role:                a.Role,
		RoleDisplay:         entity.RoleDisplay(a.Role),
		Employer:            a.EmployerID,
		EmployerEmail:       a.EmployerEmail,
		HireDate:            formatDate(a.HireDate),
		JobTitle:            a.JobTitle,
		ContactNumber:       a.ContactNumber,
		EmployeesCount:      a.EmployeesCount,
		PermissionsResponse: toPermissionsResponse(a.Permissions),
		IsActive:            a.IsActive,
		DateJoined:          a.DateJoined,
	}
}

// ToEmployeeResponse vista de empleado (sin datos de granja).
func ToEmployeeResponse(a *entity.Account) *dto.EmployeeResponse {
	if a == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:                  a.ID,
		Email:               a.Email,
		FirstName:           a.FirstName,
		LastName:            a.LastName,
		PreferredLanguage:   a.PreferredLanguage,
		Role:                a.Role,
		RoleDisplay:         entity.RoleDisplay(a.Role),
		Employer:            a.EmployerID,
		EmployerEmail:       a.EmployerEmail,
		HireDate:            formatDate(a.HireDate),
		JobTitle:            a.JobTitle,
		ContactNumber:       a.ContactNumber,
		EmployeesCount:      a.EmployeesCount,
		PermissionsResponse: toPermissionsResponse(a.Permissions),
		IsActive:            a.IsActive,
		DateJoined:          a.DateJoined,
	}
}

func toPermissionsResponse(p entity.Permissions) dto.PermissionsResponse {
	return dto.PermissionsResponse{
		CanManageAnimals:   p.CanManageAnimals,
		CanManageHealth:    p.CanManageHealth,
		CanManageFeeding:   p.CanManageFeeding,
		CanManageInventory: p.CanManageInventory,
		CanManageSales:     p.CanManageSales,
		CanManageEmployees: p.CanManageEmployees,
		CanViewReports:     p.CanViewReports,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// parseDate el formato ya fue validado por la etiqueta datetime.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// profilePatch campos de perfil comunes a todos los flujos de escritura; nil = sin cambio.
type profilePatch struct {
	FirstName         *string
	LastName          *string
	PreferredLanguage *string
	HireDate          *string
	JobTitle          *string
	ContactNumber     *string
}

func (p profilePatch) apply(a *entity.Account) error {
	if p.FirstName != nil {
		a.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		a.LastName = p.LastName
	}
	if p.PreferredLanguage != nil && *p.PreferredLanguage != "" {
		a.PreferredLanguage = *p.PreferredLanguage
	}
	if p.HireDate != nil {
		d, err := parseDate(p.HireDate)
		if err != nil {
			return domain.NewValidationError("hire_date", validation.MsgDateFormat)
		}
		a.HireDate = d
	}
	if p.JobTitle != nil {
		a.JobTitle = p.JobTitle
	}
	if p.ContactNumber != nil {
		a.ContactNumber = p.ContactNumber
	}
	return nil
}

// checkPasswords password2 debe coincidir cuando se envía cualquiera de los dos.
func checkPasswords(verr *domain.ValidationError, p1, p2 *string) {
	v1, v2 := deref(p1), deref(p2)
	if (v1 != "" || v2 != "") && v1 != v2 {
		verr.Add("password2", MsgPasswordMismatch)
	}
}

func checkFarmSize(verr *domain.ValidationError, size *decimal.Decimal) {
	if size != nil && size.IsNegative() {
		verr.Add("farm_size", MsgFarmSizeNegative)
	}
}

func requireOnPut(verr *domain.ValidationError, partial bool, fields map[string]*string) {
	if partial {
		return
	}
	for name, v := range fields {
		if v == nil {
			verr.Add(name, validation.MsgRequired)
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// validID ids mal formados se tratan como inexistentes.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound(detail string) error {
	return &domain.NotFoundError{Detail: detail}
}
