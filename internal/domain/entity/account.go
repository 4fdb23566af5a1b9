package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Idiomas soportados para preferred_language.
const (
	LanguageEnglish = "en"
	LanguageUrdu    = "ur"
)

// ErrEmptyPassword contraseña vacía en SetPassword.
var ErrEmptyPassword = errors.New("password vacío")

// Account representa un usuario de la granja: dueño o empleado (employer != nil).
type Account struct {
	ID                string
	Email             string
	PasswordHash      string // bcrypt, nunca plano
	FirstName         string
	LastName          *string
	FarmName          *string
	FarmLocation      *string
	FarmSize          *decimal.Decimal // acres
	PreferredLanguage string
	Role              string
	EmployerID        *string
	HireDate          *time.Time
	JobTitle          *string
	ContactNumber     *string
	Permissions
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
	DateJoined  time.Time
	UpdatedAt   time.Time

	// Solo lectura, cargados por el repositorio.
	EmployerEmail  *string
	EmployeesCount int
}

// String devuelve el email (logs).
func (a *Account) String() string {
	return a.Email
}

// IsEmployee informa si la cuenta tiene empleador.
func (a *Account) IsEmployee() bool {
	return a.EmployerID != nil && *a.EmployerID != ""
}

// ApplyRole recalcula las banderas desde el rol. Debe llamarse antes de cada Create/Update.
// Un empleado nunca conserva is_farm_owner, aunque su rol sea owner.
func (a *Account) ApplyRole() {
	a.Permissions = DeriveFlags(a.Role)
	if a.IsEmployee() {
		a.Permissions.IsFarmOwner = false
	}
}

// SetPassword hashea y reemplaza la credencial.
func (a *Account) SetPassword(raw string) error {
	if raw == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword compara raw contra el hash almacenado.
func (a *Account) CheckPassword(raw string) bool {
	if a.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(raw)) == nil
}

// DisplayName nombre y apellido.
func (a *Account) DisplayName() string {
	name := a.FirstName
	if a.LastName != nil && *a.LastName != "" {
		name += " " + *a.LastName
	}
	return name
}

// NormalizeEmail recorta espacios y pasa a minúsculas el dominio.
// La unicidad se compara sin distinguir mayúsculas en toda la dirección.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// IsSupportedLanguage informa si el código de idioma es válido.
func IsSupportedLanguage(lang string) bool {
	return lang == LanguageEnglish || lang == LanguageUrdu
}
