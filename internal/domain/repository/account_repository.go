package repository

import (
	"context"

	"github.com/jhoicas/farm-api/internal/domain/entity"
)

// AccountFilter criterios de listado (filtros, búsqueda, orden y paginación).
type AccountFilter struct {
	IsActive    *bool
	IsFarmOwner *bool
	Role        string
	Search      string // email, first_name, last_name, farm_name (sin distinguir mayúsculas)
	OrderBy     string // email | date_joined | last_name
	Descending  bool
	Limit       int
	Offset      int
}

// AccountRepository define el puerto de persistencia para Account (DIP).
// Las lecturas devuelven (nil, nil) cuando no hay fila.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Account, error)
	// GetByEmail compara sin distinguir mayúsculas.
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	// GetEmployee búsqueda acotada: (id, employer_id).
	GetEmployee(ctx context.Context, employerID, id string) (*entity.Account, error)
	GetEmployeeForUpdate(ctx context.Context, employerID, id string) (*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	// Delete borra la cuenta; la FK elimina en cascada a sus empleados. ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AccountFilter) ([]*entity.Account, int, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*entity.Account, error)
}
