package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/farm-api/internal/domain/entity"
	"github.com/jhoicas/farm-api/internal/domain/repository"
)

// --- MockAccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ repository.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) account(args mock.Arguments) (*entity.Account, error) {
	var a *entity.Account
	if args.Get(0) != nil {
		a = args.Get(0).(*entity.Account)
	}
	return a, args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, a *entity.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return m.account(m.Called(ctx, id))
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return m.account(m.Called(ctx, id))
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return m.account(m.Called(ctx, email))
}

func (m *MockAccountRepository) GetEmployee(ctx context.Context, employerID, id string) (*entity.Account, error) {
	return m.account(m.Called(ctx, employerID, id))
}

func (m *MockAccountRepository) GetEmployeeForUpdate(ctx context.Context, employerID, id string) (*entity.Account, error) {
	return m.account(m.Called(ctx, employerID, id))
}

func (m *MockAccountRepository) Update(ctx context.Context, a *entity.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountRepository) List(ctx context.Context, f repository.AccountFilter) ([]*entity.Account, int, error) {
	args := m.Called(ctx, f)
	var list []*entity.Account
	if args.Get(0) != nil {
		list = args.Get(0).([]*entity.Account)
	}
	return list, args.Int(1), args.Error(2)
}

func (m *MockAccountRepository) ListByEmployer(ctx context.Context, employerID string) ([]*entity.Account, error) {
	args := m.Called(ctx, employerID)
	var list []*entity.Account
	if args.Get(0) != nil {
		list = args.Get(0).([]*entity.Account)
	}
	return list, args.Error(1)
}

// fakeTx ejecuta fn con el mismo mock; cuenta commits y rollbacks.
type fakeTx struct {
	repo      repository.AccountRepository
	commits   int
	rollbacks int
}

func (f *fakeTx) RunAccounts(_ context.Context, fn func(repo repository.AccountRepository) error) error {
	if err := fn(f.repo); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

// --- MockRosterPDFGenerator ---

type MockRosterPDFGenerator struct {
	mock.Mock
}

func (m *MockRosterPDFGenerator) GenerateRosterPDF(ctx context.Context, farm *entity.Account, staff []*entity.Account, at time.Time) ([]byte, error) {
	args := m.Called(ctx, farm, staff, at)
	var b []byte
	if args.Get(0) != nil {
		b = args.Get(0).([]byte)
	}
	return b, args.Error(1)
}

// --- fixtures ---

func newOwner(email string) *entity.Account {
	a := &entity.Account{
		ID:                uuid.New().String(),
		Email:             email,
		FirstName:         "Owner",
		PreferredLanguage: entity.LanguageEnglish,
		Role:              entity.RoleOwner,
		IsActive:          true,
		DateJoined:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	a.ApplyRole()
	return a
}

func newEmployee(employer *entity.Account, email, role string) *entity.Account {
	employerID := employer.ID
	a := &entity.Account{
		ID:                uuid.New().String(),
		Email:             email,
		FirstName:         "Staff",
		PreferredLanguage: entity.LanguageEnglish,
		Role:              role,
		EmployerID:        &employerID,
		IsActive:          true,
		DateJoined:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	a.ApplyRole()
	return a
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
