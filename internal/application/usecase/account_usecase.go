package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/farm-api/internal/application/dto"
	"github.com/jhoicas/farm-api/internal/application/validation"
	"github.com/jhoicas/farm-api/internal/domain"
	"github.com/jhoicas/farm-api/internal/domain/access"
	"github.com/jhoicas/farm-api/internal/domain/entity"
	"github.com/jhoicas/farm-api/internal/domain/repository"
)

// AccountUseCase reglas de negocio de cuentas: registro, perfil, listado y baja.
type AccountUseCase struct {
	repo repository.AccountRepository
	tx   AccountTxRunner
	now  func() time.Time
}

// NewAccountUseCase construye el caso de uso con el puerto de persistencia y el runner transaccional.
func NewAccountUseCase(repo repository.AccountRepository, tx AccountTxRunner) *AccountUseCase {
	return &AccountUseCase{repo: repo, tx: tx, now: time.Now}
}

// Register crea una cuenta de dueño de granja. El email se normaliza y su unicidad
// no distingue mayúsculas; el password solo se guarda hasheado.
func (uc *AccountUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AccountResponse, error) {
	verr, err := collect(in)
	if err != nil {
		return nil, err
	}
	checkPasswords(verr, &in.Password1, &in.Password2)
	checkFarmSize(verr, in.FarmSize)
	if verr.HasErrors() {
		return nil, verr
	}

	email := entity.NormalizeEmail(in.Email)
	if err := uc.ensureEmailAvailable(ctx, uc.repo, email, ""); err != nil {
		return nil, err
	}

	now := uc.now()
	a := &entity.Account{
		ID:                uuid.New().String(),
		Email:             email,
		FarmName:          in.FarmName,
		FarmLocation:      in.FarmLocation,
		FarmSize:          in.FarmSize,
		PreferredLanguage: entity.LanguageEnglish,
		Role:              entity.RoleOwner,
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
	if err := a.SetPassword(in.Password1); err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}
	a.ApplyRole()

	if err := uc.repo.Create(ctx, a); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, domain.NewValidationError("email", MsgEmailTaken)
		}
		return nil, fmt.Errorf("crear cuenta: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("account_id", a.ID).Str("role", a.Role).Msg("cuenta registrada")
	return ToAccountResponse(a), nil
}

// Actor carga la cuenta autenticada. Cuentas inexistentes o inactivas: ErrUnauthorized.
func (uc *AccountUseCase) Actor(ctx context.Context, id string) (*entity.Account, error) {
	if !validID(id) {
		return nil, domain.ErrUnauthorized
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cargar actor: %w", err)
	}
	if a == nil || !a.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return a, nil
}

// Me vista completa de la cuenta autenticada.
func (uc *AccountUseCase) Me(_ context.Context, actor *entity.Account) (*dto.AccountResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	return ToAccountResponse(actor), nil
}

// GetByID obtiene una cuenta por ID (lectura permitida a cualquier autenticado).
func (uc *AccountUseCase) GetByID(ctx context.Context, id string) (*dto.AccountResponse, error) {
	if !validID(id) {
		return nil, notFound(MsgNotFound)
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cuenta: %w", err)
	}
	if a == nil {
		return nil, notFound(MsgNotFound)
	}
	return ToAccountResponse(a), nil
}

var orderingFields = map[string]bool{"email": true, "date_joined": true, "last_name": true}

// List listado paginado con filtros, búsqueda y orden.
func (uc *AccountUseCase) List(ctx context.Context, q dto.AccountListQuery) (*dto.AccountListResponse, error) {
	q.DefaultPage()
	filter := repository.AccountFilter{
		IsActive:    q.IsActive,
		IsFarmOwner: q.IsFarmOwner,
		Role:        q.Role,
		Search:      strings.TrimSpace(q.Search),
		OrderBy:     "date_joined",
		Limit:       q.PageSize,
		Offset:      q.Offset(),
	}
	if field := strings.TrimPrefix(q.Ordering, "-"); orderingFields[field] {
		filter.OrderBy = field
		filter.Descending = strings.HasPrefix(q.Ordering, "-")
	}

	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar cuentas: %w", err)
	}
	out := &dto.AccountListResponse{
		Count:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
		Results:  make([]dto.AccountResponse, 0, len(list)),
	}
	for _, a := range list {
		out.Results = append(out.Results, *ToAccountResponse(a))
	}
	return out, nil
}

// Update PUT (partial=false) o PATCH (partial=true) del perfil. Solo la propia cuenta o staff.
// Rol y banderas son de solo lectura; las banderas se recalculan en cada escritura.
func (uc *AccountUseCase) Update(ctx context.Context, actor *entity.Account, id string, in dto.UpdateAccountRequest, partial bool) (*dto.AccountResponse, error) {
	if !validID(id) {
		return nil, notFound(MsgNotFound)
	}
	verr, err := collect(in)
	if err != nil {
		return nil, err
	}
	requireOnPut(verr, partial, map[string]*string{"email": in.Email, "first_name": in.FirstName})
	checkPasswords(verr, in.Password1, in.Password2)
	checkFarmSize(verr, in.FarmSize)
	if verr.HasErrors() {
		return nil, verr
	}

	method := http.MethodPut
	if partial {
		method = http.MethodPatch
	}

	var updated *entity.Account
	err = uc.tx.RunAccounts(ctx, func(repo repository.AccountRepository) error {
		target, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener cuenta: %w", err)
		}
		if target == nil {
			return notFound(MsgNotFound)
		}
		if err := access.CanModify(actor, target, method); err != nil {
			return err
		}

		if in.Email != nil {
			email := entity.NormalizeEmail(*in.Email)
			if !strings.EqualFold(email, target.Email) {
				if err := uc.ensureEmailAvailable(ctx, repo, email, target.ID); err != nil {
					return err
				}
			}
			target.Email = email
		}
		if in.Employer.Set {
			if err := uc.assignEmployer(ctx, repo, target, in.Employer.Value); err != nil {
				return err
			}
		}
		patch := profilePatch{
			FirstName:         in.FirstName,
			LastName:          in.LastName,
			PreferredLanguage: in.PreferredLanguage,
			HireDate:          in.HireDate,
			JobTitle:          in.JobTitle,
			ContactNumber:     in.ContactNumber,
		}
		if err := patch.apply(target); err != nil {
			return err
		}
		if in.FarmName != nil {
			target.FarmName = in.FarmName
		}
		if in.FarmLocation != nil {
			target.FarmLocation = in.FarmLocation
		}
		if in.FarmSize != nil {
			target.FarmSize = in.FarmSize
		}
		if p := deref(in.Password1); p != "" {
			if err := target.SetPassword(p); err != nil {
				return fmt.Errorf("hashear password: %w", err)
			}
		}

		target.ApplyRole()
		target.UpdatedAt = uc.now()
		if err := repo.Update(ctx, target); err != nil {
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				return domain.NewValidationError("email", MsgEmailTaken)
			}
			return fmt.Errorf("actualizar cuenta: %w", err)
		}
		updated = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToAccountResponse(updated), nil
}

// Delete baja definitiva; la FK elimina en cascada a los empleados en la misma transacción.
func (uc *AccountUseCase) Delete(ctx context.Context, actor *entity.Account, id string) error {
	if !validID(id) {
		return notFound(MsgNotFound)
	}
	return uc.tx.RunAccounts(ctx, func(repo repository.AccountRepository) error {
		target, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener cuenta: %w", err)
		}
		if target == nil {
			return notFound(MsgNotFound)
		}
		if err := access.CanModify(actor, target, http.MethodDelete); err != nil {
			return err
		}
		if err := repo.Delete(ctx, target.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return notFound(MsgNotFound)
			}
			return fmt.Errorf("eliminar cuenta: %w", err)
		}
		zerolog.Ctx(ctx).Info().
			Str("account_id", target.ID).
			Int("employees_removed", target.EmployeesCount).
			Msg("cuenta eliminada")
		return nil
	})
}

// assignEmployer valida y aplica el empleador pedido en el perfil (nil = desvincular).
func (uc *AccountUseCase) assignEmployer(ctx context.Context, repo repository.AccountRepository, target *entity.Account, employerID *string) error {
	if employerID == nil || *employerID == "" {
		target.EmployerID = nil
		target.EmployerEmail = nil
		return nil
	}
	if target.IsFarmOwner {
		return domain.NewValidationError("employer", MsgOwnerNoEmployer)
	}
	if *employerID == target.ID {
		return domain.NewValidationError("employer", MsgSelfEmployer)
	}
	if !validID(*employerID) {
		return domain.NewValidationError("employer", MsgInvalidEmployer)
	}
	employer, err := repo.GetByID(ctx, *employerID)
	if err != nil {
		return fmt.Errorf("obtener empleador: %w", err)
	}
	if employer == nil {
		return domain.NewValidationError("employer", MsgInvalidEmployer)
	}
	if employer.IsEmployee() || target.EmployeesCount > 0 {
		return domain.NewValidationError("employer", MsgEmployerIsEmployee)
	}
	id, email := employer.ID, employer.Email
	target.EmployerID = &id
	target.EmployerEmail = &email
	return nil
}

func (uc *AccountUseCase) ensureEmailAvailable(ctx context.Context, repo repository.AccountRepository, email, selfID string) error {
	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("buscar email: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return domain.NewValidationError("email", MsgEmailTaken)
	}
	return nil
}

// collect valida etiquetas y devuelve un acumulador para agregar reglas de negocio.
func collect(in any) (*domain.ValidationError, error) {
	err := validation.Struct(in)
	if err == nil {
		return &domain.ValidationError{}, nil
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr, nil
	}
	return nil, err
}
