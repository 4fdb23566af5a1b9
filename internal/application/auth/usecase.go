package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/farm-api/internal/application/dto"
	"github.com/jhoicas/farm-api/internal/application/usecase"
	"github.com/jhoicas/farm-api/internal/application/validation"
	"github.com/jhoicas/farm-api/internal/domain"
	"github.com/jhoicas/farm-api/internal/domain/entity"
	"github.com/jhoicas/farm-api/internal/domain/repository"
	"github.com/jhoicas/farm-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret            string
	ExpMinutes        int
	RefreshExpMinutes int
	Issuer            string
}

// AuthUseCase casos de uso de autenticación: login y renovación de tokens.
// El registro vive en usecase.AccountUseCase.
type AuthUseCase struct {
	repo   repository.AccountRepository
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(repo repository.AccountRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{repo: repo, jwtCfg: jwtCfg}
}

// Login verifica email/password y retorna el par de tokens + cuenta.
// Email inexistente y password incorrecto responden igual (ErrUnauthorized).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	a, err := uc.repo.GetByEmail(ctx, entity.NormalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("login: buscar cuenta: %w", err)
	}
	if a == nil || !a.CheckPassword(in.Password) {
		return nil, domain.ErrUnauthorized
	}
	if !a.IsActive {
		return nil, domain.ErrForbidden
	}
	pair, err := uc.issue(a)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("account_id", a.ID).Msg("login")
	return &dto.LoginResponse{TokenPair: *pair, User: *usecase.ToAccountResponse(a)}, nil
}

// Refresh canjea un refresh token válido por un par nuevo. La cuenta debe seguir activa.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.TokenPair, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, in.Refresh, jwt.TokenRefresh)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	a, err := uc.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("refresh: buscar cuenta: %w", err)
	}
	if a == nil || !a.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(a)
}

func (uc *AuthUseCase) issue(a *entity.Account) (*dto.TokenPair, error) {
	sub := jwt.Subject{UserID: a.ID, Email: a.Email, IsStaff: a.IsStaff}
	access, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.TokenAccess, sub, minutes(uc.jwtCfg.ExpMinutes, 60))
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.TokenRefresh, sub, minutes(uc.jwtCfg.RefreshExpMinutes, 24*60))
	if err != nil {
		return nil, err
	}
	return &dto.TokenPair{Access: access, Refresh: refresh}, nil
}

func minutes(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Minute
}
