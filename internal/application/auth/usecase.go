package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/internal/application/ports"
	"github.com/jhoicas/masterdata-api/internal/domain"
	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
	"github.com/jhoicas/masterdata-api/internal/domain/rules"
	"github.com/jhoicas/masterdata-api/pkg/jwt"
	"github.com/jhoicas/masterdata-api/pkg/validation"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación: login con username y contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	hasher   ports.SecretHasher
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, hasher ports.SecretHasher, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, hasher: hasher, jwtCfg: jwtCfg}
}

// Login verifica username/password, genera JWT y retorna token + usuario.
// Usuario inexistente y contraseña incorrecta devuelven el mismo ErrUnauthorized;
// un usuario deshabilitado devuelve ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	fe, err := validation.Struct(in)
	if err != nil {
		return nil, err
	}
	if fe != nil {
		return nil, domain.NewValidation(fe.Field, "valor inválido ("+fe.Tag+")")
	}
	// El username se guarda normalizado; se busca con la misma forma.
	user, err := uc.userRepo.GetByUsername(ctx, rules.NormalizeString(rules.Text, in.Username))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil || !uc.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}
	if !user.Enabled {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return dto.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		PersonID: u.PersonID,
		Enabled:  u.Enabled,
		Roles:    roles,
		AuditResponse: dto.AuditResponse{
			CreatedBy: u.CreatedBy,
			CreatedAt: u.CreatedAt,
			UpdatedBy: u.UpdatedBy,
			UpdatedAt: u.UpdatedAt,
		},
	}
}
