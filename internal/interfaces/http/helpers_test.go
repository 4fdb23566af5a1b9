package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farm-api/internal/application/auth"
	"github.com/jhoicas/farm-api/internal/application/usecase"
	"github.com/jhoicas/farm-api/internal/domain"
	"github.com/jhoicas/farm-api/internal/domain/entity"
	"github.com/jhoicas/farm-api/internal/domain/repository"
	apphttp "github.com/jhoicas/farm-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/farm-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "farm-api-test"
	testPassword  = "s3cret-pass"
)

// memRepo repositorio en memoria; también hace de TxRunner.
type memRepo struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
}

var (
	_ repository.AccountRepository = (*memRepo)(nil)
	_ usecase.AccountTxRunner      = (*memRepo)(nil)
)

func newMemRepo() *memRepo {
	return &memRepo{accounts: map[string]*entity.Account{}}
}

func (r *memRepo) RunAccounts(_ context.Context, fn func(repo repository.AccountRepository) error) error {
	return fn(r)
}

// view copia con los campos derivados (employer_email, employees_count).
func (r *memRepo) view(a *entity.Account) *entity.Account {
	c := *a
	c.EmployerEmail = nil
	if a.EmployerID != nil {
		if e, ok := r.accounts[*a.EmployerID]; ok {
			email := e.Email
			c.EmployerEmail = &email
		}
	}
	c.EmployeesCount = 0
	for _, o := range r.accounts {
		if o.EmployerID != nil && *o.EmployerID == a.ID {
			c.EmployeesCount++
		}
	}
	return &c
}

func (r *memRepo) emailTaken(email, selfID string) bool {
	for _, o := range r.accounts {
		if o.ID != selfID && strings.EqualFold(o.Email, email) {
			return true
		}
	}
	return false
}

func (r *memRepo) Create(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(a.Email, a.ID) {
		return domain.ErrEmailAlreadyExists
	}
	c := *a
	r.accounts[a.ID] = &c
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	return r.view(a), nil
}

func (r *memRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			return r.view(a), nil
		}
	}
	return nil, nil
}

func (r *memRepo) GetEmployee(_ context.Context, employerID, id string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok || a.EmployerID == nil || *a.EmployerID != employerID {
		return nil, nil
	}
	return r.view(a), nil
}

func (r *memRepo) GetEmployeeForUpdate(ctx context.Context, employerID, id string) (*entity.Account, error) {
	return r.GetEmployee(ctx, employerID, id)
}

func (r *memRepo) Update(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.emailTaken(a.Email, a.ID) {
		return domain.ErrEmailAlreadyExists
	}
	c := *a
	r.accounts[a.ID] = &c
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.accounts, id)
	for oid, o := range r.accounts {
		if o.EmployerID != nil && *o.EmployerID == id {
			delete(r.accounts, oid)
		}
	}
	return nil
}

func (r *memRepo) List(_ context.Context, f repository.AccountFilter) ([]*entity.Account, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Account
	for _, a := range r.accounts {
		if f.IsActive != nil && a.IsActive != *f.IsActive {
			continue
		}
		if f.IsFarmOwner != nil && a.IsFarmOwner != *f.IsFarmOwner {
			continue
		}
		if f.Role != "" && a.Role != f.Role {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(a.Email+" "+a.FirstName), strings.ToLower(f.Search)) {
			continue
		}
		all = append(all, r.view(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].DateJoined.Before(all[j].DateJoined) })
	total := len(all)
	if f.Offset >= total {
		return []*entity.Account{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (r *memRepo) ListByEmployer(_ context.Context, employerID string) ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Account, 0)
	for _, a := range r.accounts {
		if a.EmployerID != nil && *a.EmployerID == employerID {
			out = append(out, r.view(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateJoined.Before(out[j].DateJoined) })
	return out, nil
}

// fakePDF devuelve un PDF mínimo y recuerda cuántos empleados recibió.
type fakePDF struct {
	staff int
}

func (f *fakePDF) GenerateRosterPDF(_ context.Context, _ *entity.Account, staff []*entity.Account, _ time.Time) ([]byte, error) {
	f.staff = len(staff)
	return []byte("%PDF-1.4 fake"), nil
}

type testEnv struct {
	app  *fiber.App
	repo *memRepo
	pdf  *fakePDF
}

// buildTestApp aplicación completa sobre el repositorio en memoria.
func buildTestApp(t *testing.T, rl apphttp.RateLimit) *testEnv {
	t.Helper()
	repo := newMemRepo()
	pdf := &fakePDF{}
	accountUC := usecase.NewAccountUseCase(repo, repo)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AccountUC:  accountUC,
		EmployeeUC: usecase.NewEmployeeUseCase(accountUC, repo, repo),
		RosterUC:   usecase.NewRosterUseCase(repo, pdf),
		AuthUC: auth.NewAuthUseCase(repo, auth.JWTConfig{
			Secret: testJWTSecret, Issuer: testIssuer, ExpMinutes: 60, RefreshExpMinutes: 1440,
		}),
		JWTSecret: testJWTSecret,
		RateLimit: rl,
	})
	return &testEnv{app: app, repo: repo, pdf: pdf}
}

var seedClock = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// seed inserta una cuenta con rol y empleador; las banderas se derivan del rol.
func (e *testEnv) seed(t *testing.T, email, role string, employer *entity.Account, mutate ...func(*entity.Account)) *entity.Account {
	t.Helper()
	seedClock = seedClock.Add(time.Hour)
	a := &entity.Account{
		ID:                uuid.New().String(),
		Email:             email,
		FirstName:         "Test",
		PreferredLanguage: entity.LanguageEnglish,
		Role:              role,
		IsActive:          true,
		DateJoined:        seedClock,
		UpdatedAt:         seedClock,
	}
	if employer != nil {
		id := employer.ID
		a.EmployerID = &id
	}
	require.NoError(t, a.SetPassword(testPassword))
	for _, m := range mutate {
		m(a)
	}
	a.ApplyRole()
	require.NoError(t, e.repo.Create(context.Background(), a))
	return a
}

// bearer genera un access token para la cuenta.
func bearer(t *testing.T, a *entity.Account) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.TokenAccess,
		pkgjwt.Subject{UserID: a.ID, Email: a.Email, IsStaff: a.IsStaff}, time.Hour)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza la petición con cuerpo JSON opcional y cabeceras extra.
func doRequest(t *testing.T, app *fiber.App, method, path, authHeader string, body any, headers ...string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode lee el cuerpo JSON de la respuesta.
func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "cuerpo: %s", raw)
	return out
}
