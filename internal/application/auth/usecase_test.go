package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farm-api/internal/application/auth"
	"github.com/jhoicas/farm-api/internal/application/dto"
	"github.com/jhoicas/farm-api/internal/domain"
	"github.com/jhoicas/farm-api/internal/domain/entity"
	"github.com/jhoicas/farm-api/internal/domain/repository"
	"github.com/jhoicas/farm-api/pkg/jwt"
)

type mockRepo struct {
	mock.Mock
	repository.AccountRepository
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	a, _ := args.Get(0).(*entity.Account)
	return a, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*entity.Account)
	return a, args.Error(1)
}

var cfg = auth.JWTConfig{Secret: "s3cret", ExpMinutes: 60, RefreshExpMinutes: 1440, Issuer: "farm-api"}

func account(t *testing.T, active bool) *entity.Account {
	t.Helper()
	a := &entity.Account{
		ID: uuid.New().String(), Email: "farmer@example.com", FirstName: "Ali",
		Role: entity.RoleOwner, IsActive: active, DateJoined: time.Now(),
	}
	require.NoError(t, a.SetPassword("supersecret"))
	a.ApplyRole()
	return a
}

func TestLogin_OK(t *testing.T) {
	repo := new(mockRepo)
	uc := auth.NewAuthUseCase(repo, cfg)
	ctx := context.Background()
	a := account(t, true)
	repo.On("GetByEmail", ctx, "farmer@example.com").Return(a, nil)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "farmer@EXAMPLE.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, out.User.ID)
	assert.True(t, out.User.IsFarmOwner)

	claims, err := jwt.Parse(cfg.Secret, out.Access, jwt.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, a.ID, claims.UserID)
	_, err = jwt.Parse(cfg.Secret, out.Refresh, jwt.TokenRefresh)
	require.NoError(t, err)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	repo := new(mockRepo)
	uc := auth.NewAuthUseCase(repo, cfg)
	ctx := context.Background()
	repo.On("GetByEmail", ctx, "farmer@example.com").Return(account(t, true), nil)
	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "farmer@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	repo := new(mockRepo)
	uc := auth.NewAuthUseCase(repo, cfg)
	ctx := context.Background()
	repo.On("GetByEmail", ctx, "farmer@example.com").Return(account(t, false), nil)

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "farmer@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_EntradaInvalida(t *testing.T) {
	uc := auth.NewAuthUseCase(new(mockRepo), cfg)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRefresh_RotaElPar(t *testing.T) {
	repo := new(mockRepo)
	uc := auth.NewAuthUseCase(repo, cfg)
	ctx := context.Background()
	a := account(t, true)
	repo.On("GetByEmail", ctx, a.Email).Return(a, nil)
	repo.On("GetByID", ctx, a.ID).Return(a, nil)

	login, err := uc.Login(ctx, dto.LoginRequest{Email: a.Email, Password: "supersecret"})
	require.NoError(t, err)

	pair, err := uc.Refresh(ctx, dto.RefreshRequest{Refresh: login.Refresh})
	require.NoError(t, err)
	assert.NotEqual(t, login.Refresh, pair.Refresh)
	_, err = jwt.Parse(cfg.Secret, pair.Access, jwt.TokenAccess)
	assert.NoError(t, err)
}

func TestRefresh_RechazaAccessToken(t *testing.T) {
	repo := new(mockRepo)
	uc := auth.NewAuthUseCase(repo, cfg)
	tok, err := jwt.Generate(cfg.Secret, cfg.Issuer, jwt.TokenAccess, jwt.Subject{UserID: uuid.New().String()}, time.Minute)
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), dto.RefreshRequest{Refresh: tok})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRefresh_CuentaDesactivada(t *testing.T) {
	repo := new(mockRepo)
	uc := auth.NewAuthUseCase(repo, cfg)
	ctx := context.Background()
	a := account(t, false)
	tok, err := jwt.Generate(cfg.Secret, cfg.Issuer, jwt.TokenRefresh, jwt.Subject{UserID: a.ID}, time.Minute)
	require.NoError(t, err)
	repo.On("GetByID", ctx, a.ID).Return(a, nil)

	_, err = uc.Refresh(ctx, dto.RefreshRequest{Refresh: tok})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
