package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/farm-api/internal/domain"
	"github.com/jhoicas/farm-api/internal/domain/access"
	"github.com/jhoicas/farm-api/internal/domain/entity"
	"github.com/jhoicas/farm-api/internal/domain/repository"
)

// RosterUseCase genera el PDF con la plantilla de personal de la granja.
type RosterUseCase struct {
	repo      repository.AccountRepository
	generator RosterPDFGenerator
	now       func() time.Time
}

// NewRosterUseCase construye el caso de uso.
func NewRosterUseCase(repo repository.AccountRepository, generator RosterPDFGenerator) *RosterUseCase {
	return &RosterUseCase{repo: repo, generator: generator, now: time.Now}
}

// Download requiere can_view_reports. La granja es el propio actor o, si el
// actor es empleado, su empleador.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - *domain.ForbiddenError    si el actor no puede ver reportes.
//   - domain.ErrNotFound        si el empleador ya no existe.
func (uc *RosterUseCase) Download(ctx context.Context, actor *entity.Account) (pdfBytes []byte, filename string, err error) {
	if err := access.RequireCapability(actor, entity.CapViewReports); err != nil {
		return nil, "", err
	}

	farm := actor
	if actor.EmployerID != nil {
		farm, err = uc.repo.GetByID(ctx, *actor.EmployerID)
		if err != nil {
			return nil, "", fmt.Errorf("roster: obtener empleador: %w", err)
		}
		if farm == nil {
			return nil, "", domain.ErrNotFound
		}
	}

	staff, err := uc.repo.ListByEmployer(ctx, farm.ID)
	if err != nil {
		return nil, "", fmt.Errorf("roster: listar empleados: %w", err)
	}

	generatedAt := uc.now()
	pdfBytes, err = uc.generator.GenerateRosterPDF(ctx, farm, staff, generatedAt)
	if err != nil {
		return nil, "", fmt.Errorf("roster: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("plantilla_%s.pdf", generatedAt.Format("20060102"))
	return pdfBytes, filename, nil
}
