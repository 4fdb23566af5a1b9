package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/farm-api/internal/domain/entity"
	"github.com/jhoicas/farm-api/internal/domain/repository"
)

// AccountTxRunner ejecuta fn dentro de una transacción con un repositorio atado a ella.
// Si fn devuelve error se hace rollback.
type AccountTxRunner interface {
	RunAccounts(ctx context.Context, fn func(repo repository.AccountRepository) error) error
}

// RosterPDFGenerator genera el PDF de la plantilla de personal de una granja.
type RosterPDFGenerator interface {
	GenerateRosterPDF(ctx context.Context, farm *entity.Account, staff []*entity.Account, generatedAt time.Time) ([]byte, error)
}
