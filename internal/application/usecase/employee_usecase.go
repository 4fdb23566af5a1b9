package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/farm-api/internal/application/dto"
	"github.com/jhoicas/farm-api/internal/domain"
	"github.com/jhoicas/farm-api/internal/domain/access"
	"github.com/jhoicas/farm-api/internal/domain/entity"
	"github.com/jhoicas/farm-api/internal/domain/repository"
)

// EmployeeUseCase gestión de empleados acotada al dueño que actúa.
// Toda operación exige can_manage_employees antes de tocar datos; las búsquedas
// por id filtran también por employer_id, de modo que un dueño nunca ve empleados ajenos.
type EmployeeUseCase struct {
	accounts *AccountUseCase
	repo     repository.AccountRepository
	tx       AccountTxRunner
	now      func() time.Time
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(accounts *AccountUseCase, repo repository.AccountRepository, tx AccountTxRunner) *EmployeeUseCase {
	return &EmployeeUseCase{accounts: accounts, repo: repo, tx: tx, now: time.Now}
}

// List empleados directos del actor.
func (uc *EmployeeUseCase) List(ctx context.Context, actor *entity.Account) ([]dto.EmployeeResponse, error) {
	if err := access.RequireEmployeeManager(actor); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByEmployer(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("listar empleados: %w", err)
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *ToEmployeeResponse(a))
	}
	return out, nil
}

// Create alta de empleado. employer = actor y is_farm_owner = false se fijan aquí,
// sin importar lo que envíe el cliente.
func (uc *EmployeeUseCase) Create(ctx context.Context, actor *entity.Account, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := access.RequireEmployeeManager(actor); err != nil {
		return nil, err
	}
	verr, err := collect(in)
	if err != nil {
		return nil, err
	}
	if actor.ID == "" {
		verr.Add(domain.NonFieldErrors, MsgEmployeeNeedsEmployer)
	}
	if in.IsFarmOwner != nil && *in.IsFarmOwner {
		verr.Add(domain.NonFieldErrors, MsgEmployeeNotOwner)
	}
	checkPasswords(verr, in.Password1, in.Password2)
	if verr.HasErrors() {
		return nil, verr
	}

	email := entity.NormalizeEmail(in.Email)
	if err := uc.accounts.ensureEmailAvailable(ctx, uc.repo, email, ""); err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = entity.RoleWorker
	}
	employerID, employerEmail := actor.ID, actor.Email
	now := uc.now()
	a := &entity.Account{
		ID:                uuid.New().String(),
		Email:             email,
		PreferredLanguage: entity.LanguageEnglish,
		Role:              role,
		EmployerID:        &employerID,
		EmployerEmail:     &employerEmail,
		IsActive:          true,
		DateJoined:        now,
		UpdatedAt:         now,
	}
	patch := profilePatch{
		FirstName:         &in.FirstName,
		LastName:          in.LastName,
		PreferredLanguage: &in.PreferredLanguage,
		HireDate:          in.HireDate,
		JobTitle:          in.JobTitle,
		ContactNumber:     in.ContactNumber,
	}
	if err := patch.apply(a); err != nil {
		return nil, err
	}
	if p := deref(in.Password1); p != "" {
		if err := a.SetPassword(p); err != nil {
			return nil, fmt.Errorf("hashear password: %w", err)
		}
	}
	a.ApplyRole()
	a.IsFarmOwner = false

	if err := uc.repo.Create(ctx, a); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, domain.NewValidationError("email", MsgEmailTaken)
		}
		return nil, fmt.Errorf("crear empleado: %w", err)
	}
	zerolog.Ctx(ctx).Info().
		Str("employer_id", actor.ID).
		Str("employee_id", a.ID).
		Str("role", a.Role).
		Msg("empleado creado")
	return ToEmployeeResponse(a), nil
}

// Get empleado por id, acotado al actor. Un empleado ajeno responde igual que uno inexistente.
func (uc *EmployeeUseCase) Get(ctx context.Context, actor *entity.Account, id string) (*dto.EmployeeResponse, error) {
	if err := access.RequireEmployeeManager(actor); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, notFound(MsgEmployeeNotFound)
	}
	a, err := uc.repo.GetEmployee(ctx, actor.ID, id)
	if err != nil {
		return nil, fmt.Errorf("obtener empleado: %w", err)
	}
	if a == nil {
		return nil, notFound(MsgEmployeeNotFound)
	}
	return ToEmployeeResponse(a), nil
}

// Update PUT/PATCH de un empleado. El rol es editable en este flujo y las banderas
// se recalculan; el empleado nunca queda como dueño.
func (uc *EmployeeUseCase) Update(ctx context.Context, actor *entity.Account, id string, in dto.UpdateEmployeeRequest, partial bool) (*dto.EmployeeResponse, error) {
	if err := access.RequireEmployeeManager(actor); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, notFound(MsgEmployeeNotFound)
	}
	verr, err := collect(in)
	if err != nil {
		return nil, err
	}
	requireOnPut(verr, partial, map[string]*string{"email": in.Email, "first_name": in.FirstName})
	if in.IsFarmOwner != nil && *in.IsFarmOwner {
		verr.Add(domain.NonFieldErrors, MsgEmployeeNotOwner)
	}
	checkPasswords(verr, in.Password1, in.Password2)
	if verr.HasErrors() {
		return nil, verr
	}

	var updated *entity.Account
	err = uc.tx.RunAccounts(ctx, func(repo repository.AccountRepository) error {
		a, err := repo.GetEmployeeForUpdate(ctx, actor.ID, id)
		if err != nil {
			return fmt.Errorf("obtener empleado: %w", err)
		}
		if a == nil {
			return notFound(MsgEmployeeNotFound)
		}

		if in.Email != nil {
			email := entity.NormalizeEmail(*in.Email)
			if !strings.EqualFold(email, a.Email) {
				if err := uc.accounts.ensureEmailAvailable(ctx, repo, email, a.ID); err != nil {
					return err
				}
			}
			a.Email = email
		}
		if in.Role != nil && *in.Role != "" {
			a.Role = *in.Role
		}
		patch := profilePatch{
			FirstName:         in.FirstName,
			LastName:          in.LastName,
			PreferredLanguage: in.PreferredLanguage,
			HireDate:          in.HireDate,
			JobTitle:          in.JobTitle,
			ContactNumber:     in.ContactNumber,
		}
		if err := patch.apply(a); err != nil {
			return err
		}
		if p := deref(in.Password1); p != "" {
			if err := a.SetPassword(p); err != nil {
				return fmt.Errorf("hashear password: %w", err)
			}
		}

		a.ApplyRole()
		a.IsFarmOwner = false
		a.UpdatedAt = uc.now()
		if err := repo.Update(ctx, a); err != nil {
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				return domain.NewValidationError("email", MsgEmailTaken)
			}
			return fmt.Errorf("actualizar empleado: %w", err)
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponse(updated), nil
}

// Delete baja definitiva del empleado (sin papelera).
func (uc *EmployeeUseCase) Delete(ctx context.Context, actor *entity.Account, id string) error {
	if err := access.RequireEmployeeManager(actor); err != nil {
		return err
	}
	if !validID(id) {
		return notFound(MsgEmployeeNotFound)
	}
	return uc.tx.RunAccounts(ctx, func(repo repository.AccountRepository) error {
		a, err := repo.GetEmployeeForUpdate(ctx, actor.ID, id)
		if err != nil {
			return fmt.Errorf("obtener empleado: %w", err)
		}
		if a == nil {
			return notFound(MsgEmployeeNotFound)
		}
		if err := repo.Delete(ctx, a.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return notFound(MsgEmployeeNotFound)
			}
			return fmt.Errorf("eliminar empleado: %w", err)
		}
		zerolog.Ctx(ctx).Info().Str("employer_id", actor.ID).Str("employee_id", a.ID).Msg("empleado eliminado")
		return nil
	})
}
