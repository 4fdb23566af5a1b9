// Package access contiene las verificaciones de autorización por petición:
// propiedad/administrador sobre una cuenta y capacidades derivadas del rol.
package access

import (
	"net/http"

	"github.com/jhoicas/farm-api/internal/domain"
	"github.com/jhoicas/farm-api/internal/domain/entity"
)

// Motivos de denegación (claves del catálogo de traducciones).
const (
	ReasonNotAllowed      = "You do not have permission to perform this action."
	ReasonManageEmployees = "You do not have permission to manage employees."
	ReasonViewReports     = "You do not have permission to view reports."
	ReasonNestedEmployees = "Employees cannot manage their own employees."
)

// IsSafeMethod GET, HEAD y OPTIONS no modifican estado.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// CanModify lectura siempre permitida; escritura solo sobre la propia cuenta o siendo staff.
func CanModify(actor, target *entity.Account, method string) error {
	if IsSafeMethod(method) {
		return nil
	}
	if actor == nil || target == nil {
		return &domain.ForbiddenError{Reason: ReasonNotAllowed}
	}
	if actor.ID == target.ID || actor.IsStaff {
		return nil
	}
	return &domain.ForbiddenError{Reason: ReasonNotAllowed}
}

// RequireCapability exige que el actor tenga la capacidad indicada.
func RequireCapability(actor *entity.Account, c entity.Capability) error {
	if actor != nil && actor.Has(c) {
		return nil
	}
	return &domain.ForbiddenError{Reason: reasonFor(c)}
}

// RequireEmployeeManager capacidad can_manage_employees y jerarquía de un solo nivel:
// una cuenta con empleador no administra empleados propios.
func RequireEmployeeManager(actor *entity.Account) error {
	if err := RequireCapability(actor, entity.CapManageEmployees); err != nil {
		return err
	}
	if actor.IsEmployee() {
		return &domain.ForbiddenError{Reason: ReasonNestedEmployees}
	}
	return nil
}

func reasonFor(c entity.Capability) string {
	switch c {
	case entity.CapManageEmployees:
		return ReasonManageEmployees
	case entity.CapViewReports:
		return ReasonViewReports
	default:
		return ReasonNotAllowed
	}
}
