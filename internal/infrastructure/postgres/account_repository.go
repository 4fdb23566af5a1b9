package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farm-api/internal/domain"
	"github.com/jhoicas/farm-api/internal/domain/entity"
	"github.com/jhoicas/farm-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	db Querier
}

// NewAccountRepository construye el adaptador con un pool o una transacción.
func NewAccountRepository(db Querier) *AccountRepo {
	return &AccountRepo{db: db}
}

// selectAccount columnas en el orden de scanAccount. employer_email y employees_count son derivados.
const selectAccount = `
	SELECT a.id::text, a.email, a.password_hash, a.first_name, a.last_name,
		a.farm_name, a.farm_location, a.farm_size, a.preferred_language, a.role,
		a.employer_id::text, a.hire_date, a.job_title, a.contact_number,
		a.is_farm_owner, a.can_manage_animals, a.can_manage_health, a.can_manage_feeding,
		a.can_manage_inventory, a.can_manage_sales, a.can_manage_employees, a.can_view_reports,
		a.is_active, a.is_staff, a.is_superuser, a.date_joined, a.updated_at,
		e.email,
		(SELECT count(*) FROM accounts c WHERE c.employer_id = a.id)
	FROM accounts a
	LEFT JOIN accounts e ON e.id = a.employer_id`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName,
		&a.FarmName, &a.FarmLocation, &a.FarmSize, &a.PreferredLanguage, &a.Role,
		&a.EmployerID, &a.HireDate, &a.JobTitle, &a.ContactNumber,
		&a.IsFarmOwner, &a.CanManageAnimals, &a.CanManageHealth, &a.CanManageFeeding,
		&a.CanManageInventory, &a.CanManageSales, &a.CanManageEmployees, &a.CanViewReports,
		&a.IsActive, &a.IsStaff, &a.IsSuperuser, &a.DateJoined, &a.UpdatedAt,
		&a.EmployerEmail,
		&a.EmployeesCount,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) queryOne(ctx context.Context, op, query string, args ...any) (*entity.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// Create persiste una cuenta nueva. El índice único sobre lower(email) cubre la carrera entre
// la verificación previa y el INSERT.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (
			id, email, password_hash, first_name, last_name,
			farm_name, farm_location, farm_size, preferred_language, role,
			employer_id, hire_date, job_title, contact_number,
			is_farm_owner, can_manage_animals, can_manage_health, can_manage_feeding,
			can_manage_inventory, can_manage_sales, can_manage_employees, can_view_reports,
			is_active, is_staff, is_superuser, date_joined, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27
		)`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.Email, a.PasswordHash, a.FirstName, a.LastName,
		a.FarmName, a.FarmLocation, a.FarmSize, a.PreferredLanguage, a.Role,
		a.EmployerID, a.HireDate, a.JobTitle, a.ContactNumber,
		a.IsFarmOwner, a.CanManageAnimals, a.CanManageHealth, a.CanManageFeeding,
		a.CanManageInventory, a.CanManageSales, a.CanManageEmployees, a.CanViewReports,
		a.IsActive, a.IsStaff, a.IsSuperuser, a.DateJoined, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.queryOne(ctx, "get account by id", selectAccount+` WHERE a.id = $1`, id)
}

// GetByIDForUpdate igual que GetByID pero bloquea la fila (solo dentro de una tx).
func (r *AccountRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return r.queryOne(ctx, "get account for update", selectAccount+` WHERE a.id = $1 FOR UPDATE OF a`, id)
}

// GetByEmail búsqueda sin distinguir mayúsculas (usa el índice sobre lower(email)).
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.queryOne(ctx, "get account by email", selectAccount+` WHERE lower(a.email) = lower($1) LIMIT 1`, email)
}

// GetEmployee empleado id del empleador employerID.
func (r *AccountRepo) GetEmployee(ctx context.Context, employerID, id string) (*entity.Account, error) {
	return r.queryOne(ctx, "get employee", selectAccount+` WHERE a.id = $1 AND a.employer_id = $2`, id, employerID)
}

// GetEmployeeForUpdate igual que GetEmployee con bloqueo de fila.
func (r *AccountRepo) GetEmployeeForUpdate(ctx context.Context, employerID, id string) (*entity.Account, error) {
	return r.queryOne(ctx, "get employee for update",
		selectAccount+` WHERE a.id = $1 AND a.employer_id = $2 FOR UPDATE OF a`, id, employerID)
}

// Update reescribe la fila completa, banderas incluidas.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	query := `
		UPDATE accounts SET
			email = $2, password_hash = $3, first_name = $4, last_name = $5,
			farm_name = $6, farm_location = $7, farm_size = $8, preferred_language = $9, role = $10,
			employer_id = $11, hire_date = $12, job_title = $13, contact_number = $14,
			is_farm_owner = $15, can_manage_animals = $16, can_manage_health = $17, can_manage_feeding = $18,
			can_manage_inventory = $19, can_manage_sales = $20, can_manage_employees = $21, can_view_reports = $22,
			is_active = $23, is_staff = $24, is_superuser = $25, updated_at = $26
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		a.ID, a.Email, a.PasswordHash, a.FirstName, a.LastName,
		a.FarmName, a.FarmLocation, a.FarmSize, a.PreferredLanguage, a.Role,
		a.EmployerID, a.HireDate, a.JobTitle, a.ContactNumber,
		a.IsFarmOwner, a.CanManageAnimals, a.CanManageHealth, a.CanManageFeeding,
		a.CanManageInventory, a.CanManageSales, a.CanManageEmployees, a.CanViewReports,
		a.IsActive, a.IsStaff, a.IsSuperuser, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la cuenta; ON DELETE CASCADE elimina a sus empleados en la misma sentencia.
func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra, ordena y pagina; devuelve también el total sin paginar.
func (r *AccountRepo) List(ctx context.Context, f repository.AccountFilter) ([]*entity.Account, int, error) {
	where, args := buildAccountWhere(f)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM accounts a`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	n := len(args)
	query := selectAccount + where + orderClause(f) +
		` LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	list, err := r.queryMany(ctx, "list accounts", query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByEmployer empleados directos, por fecha de alta.
func (r *AccountRepo) ListByEmployer(ctx context.Context, employerID string) ([]*entity.Account, error) {
	return r.queryMany(ctx, "list employees",
		selectAccount+` WHERE a.employer_id = $1 ORDER BY a.date_joined, a.id`, employerID)
}

func (r *AccountRepo) queryMany(ctx context.Context, op, query string, args ...any) ([]*entity.Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// buildAccountWhere arma el WHERE con parámetros posicionales a partir del filtro.
func buildAccountWhere(f repository.AccountFilter) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.IsActive != nil {
		conds = append(conds, "a.is_active = "+next(*f.IsActive))
	}
	if f.IsFarmOwner != nil {
		conds = append(conds, "a.is_farm_owner = "+next(*f.IsFarmOwner))
	}
	if f.Role != "" {
		conds = append(conds, "a.role = "+next(f.Role))
	}
	if f.Search != "" {
		p := next(likePattern(f.Search))
		conds = append(conds, "(a.email ILIKE "+p+" OR a.first_name ILIKE "+p+
			" OR coalesce(a.last_name, '') ILIKE "+p+" OR coalesce(a.farm_name, '') ILIKE "+p+")")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var orderColumns = map[string]string{
	"email":       "a.email",
	"date_joined": "a.date_joined",
	"last_name":   "a.last_name",
}

func orderClause(f repository.AccountFilter) string {
	col, ok := orderColumns[f.OrderBy]
	if !ok {
		col = "a.date_joined"
	}
	dir := " ASC"
	if f.Descending {
		dir = " DESC"
	}
	return " ORDER BY " + col + dir + " NULLS LAST, a.id"
}
