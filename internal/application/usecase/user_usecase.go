package usecase

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/internal/application/masterdata"
	"github.com/jhoicas/masterdata-api/internal/application/ports"
	"github.com/jhoicas/masterdata-api/internal/domain"
	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
	"github.com/jhoicas/masterdata-api/internal/domain/rules"
)

const (
	passwordMinLen = 8
	// bcrypt ignora lo que exceda 72 bytes.
	passwordMaxBytes = 72
)

var userRules = &rules.Validator[entity.User]{Fields: []rules.Field[entity.User]{
	{
		Name: "username", Kind: rules.Text, Required: true, Min: 3, Max: 50, Unique: true,
		Str: func(u *entity.User) *string { return &u.Username },
	},
}}

// UserUseCase aplica reglas de negocio para usuarios: contraseña hasheada, roles y
// referencia opcional a una persona.
type UserUseCase struct {
	pipeline     *masterdata.Pipeline[entity.User, *entity.User]
	roles        repository.RoleRepository
	persons      repository.PersonRepository
	hasher       ports.SecretHasher
	baselineRole string
}

// NewUserUseCase construye el caso de uso. baselineRole se asigna si al crear no se envían roles.
func NewUserUseCase(
	repo repository.UserRepository,
	roles repository.RoleRepository,
	persons repository.PersonRepository,
	hasher ports.SecretHasher,
	baselineRole string,
	opts Options,
) *UserUseCase {
	return &UserUseCase{
		pipeline:     masterdata.New[entity.User, *entity.User](pipelineConfig[entity.User](entity.UserEntity, repo, userRules, opts)),
		roles:        roles,
		persons:      persons,
		hasher:       hasher,
		baselineRole: baselineRole,
	}
}

// Create crea un usuario habilitado (salvo que se indique lo contrario).
func (uc *UserUseCase) Create(ctx context.Context, actor string, in dto.UserRequest) (*dto.UserResponse, error) {
	u, err := uc.pipeline.Create(ctx, actor, userInput(in), uc.accountHook(in))
	if err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Update actualiza parcialmente un usuario. Roles, si se envían, reemplazan a los actuales.
func (uc *UserUseCase) Update(ctx context.Context, actor string, id int64, in dto.UserRequest) (*dto.UserResponse, error) {
	u, err := uc.pipeline.Update(ctx, actor, id, userInput(in), uc.accountHook(in))
	if err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.pipeline.Delete(ctx, id)
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.pipeline.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// List lista los usuarios por username.
func (uc *UserUseCase) List(ctx context.Context) (*dto.ListResponse[dto.UserResponse], error) {
	list, err := uc.pipeline.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapResponses(list, func(u *entity.User) dto.UserResponse {
		return *toUserResponse(u)
	})), nil
}

func (uc *UserUseCase) accountHook(in dto.UserRequest) masterdata.Hook[entity.User] {
	return func(ctx context.Context, u *entity.User, mode rules.Mode) error {
		if in.Password != nil || mode == rules.Create {
			if err := uc.setPassword(u, in.Password); err != nil {
				return err
			}
		}
		if err := uc.setRoles(ctx, u, in.Roles, mode); err != nil {
			return err
		}
		if err := resolveRef[entity.Person](ctx, uc.persons, entity.PersonEntity, in.PersonID, &u.PersonID); err != nil {
			return err
		}
		switch {
		case in.Enabled != nil:
			u.Enabled = *in.Enabled
		case mode == rules.Create:
			u.Enabled = true
		}
		return nil
	}
}

func (uc *UserUseCase) setPassword(u *entity.User, password *string) error {
	if password == nil || *password == "" {
		return domain.NewValidation("password", "es obligatorio")
	}
	if utf8.RuneCountInString(*password) < passwordMinLen {
		return domain.NewValidation("password", fmt.Sprintf("debe tener al menos %d caracteres", passwordMinLen))
	}
	if len(*password) > passwordMaxBytes {
		return domain.NewValidation("password", fmt.Sprintf("no puede superar %d bytes", passwordMaxBytes))
	}
	hash, err := uc.hasher.Hash(*password)
	if err != nil {
		return fmt.Errorf("hash de contraseña: %w", err)
	}
	u.PasswordHash = hash
	return nil
}

// setRoles nil conserva los roles (o asigna el rol base al crear); una lista vacía solo
// se acepta al crear, donde equivale al rol base.
func (uc *UserUseCase) setRoles(ctx context.Context, u *entity.User, requested []string, mode rules.Mode) error {
	if requested == nil {
		if mode == rules.Create {
			requested = []string{uc.baselineRole}
		} else {
			return nil
		}
	}
	names := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, r := range requested {
		name := rules.NormalizeString(rules.Code, r)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if len(names) == 0 {
		if mode == rules.Update {
			return domain.NewValidation("roles", "debe tener al menos un rol")
		}
		names = []string{uc.baselineRole}
	}
	for _, name := range names {
		role, err := uc.roles.GetByName(ctx, name)
		if err != nil {
			return fmt.Errorf("obtener rol %s: %w", name, err)
		}
		if role == nil {
			return domain.NewValidation("roles", fmt.Sprintf("rol desconocido: %s", name))
		}
	}
	u.Roles = names
	return nil
}

func userInput(in dto.UserRequest) masterdata.Input {
	return masterdata.Input{ID: in.ID, Fields: map[string]*string{"username": in.Username}}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		PersonID:      u.PersonID,
		Enabled:       u.Enabled,
		Roles:         roles,
		AuditResponse: toAuditResponse(u.Audit),
	}
}

// RoleUseCase consulta de roles.
type RoleUseCase struct {
	repo repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo}
}

// List lista los roles por nombre.
func (uc *RoleUseCase) List(ctx context.Context) (*dto.ListResponse[dto.RoleResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar roles: %w", err)
	}
	return dto.NewListResponse(mapResponses(list, func(r *entity.Role) dto.RoleResponse {
		return dto.RoleResponse{ID: r.ID, Name: r.Name}
	})), nil
}
