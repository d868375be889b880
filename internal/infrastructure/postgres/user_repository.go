package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.RoleRepository = (*RoleRepo)(nil)
)

// userQuery roles agregados en orden alfabético; un usuario sin roles devuelve '{}'.
const userQuery = `
	SELECT u.id, u.username, u.password_hash, u.person_id, u.enabled,
		COALESCE(array_agg(r.name ORDER BY r.name) FILTER (WHERE r.name IS NOT NULL), '{}'),
		u.created_by, u.created_at, u.updated_by, u.updated_at
	FROM users u
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id`

// UserRepo implementación de UserRepository sobre PostgreSQL. Usuario y roles se
// escriben en la misma transacción.
type UserRepo struct {
	db DB
}

// NewUserRepository construye el adaptador. db puede ser el pool o una transacción en curso.
func NewUserRepository(db DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, `WHERE u.id = $1`, id)
}

// GetByUsername obtiene un usuario por username (login); (nil, nil) si no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE u.username = $1`, username)
}

// List lista los usuarios por username.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, userQuery+` GROUP BY u.id ORDER BY u.username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *UserRepo) ExistsByField(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	return existsByField(ctx, r.db, "users", []string{"username"}, field, value, excludeID)
}

// Create persiste el usuario y sus roles.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return runInTx(ctx, r.db, func(q DB) error {
		query := `
			INSERT INTO users (username, password_hash, person_id, enabled, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`
		err := q.QueryRow(ctx, query, u.Username, u.PasswordHash, u.PersonID, u.Enabled, u.CreatedBy, u.CreatedAt).Scan(&u.ID)
		if err != nil {
			return fmt.Errorf("insert user: %w", constraintError("users", err))
		}
		return replaceRoles(ctx, q, u.ID, u.Roles)
	})
}

// Update actualiza el usuario y reemplaza sus roles.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	return runInTx(ctx, r.db, func(q DB) error {
		query := `
			UPDATE users SET username = $2, password_hash = $3, person_id = $4, enabled = $5,
				updated_by = $6, updated_at = $7
			WHERE id = $1`
		if err := execAffected(ctx, q, "users", query,
			u.ID, u.Username, u.PasswordHash, u.PersonID, u.Enabled, u.UpdatedBy, u.UpdatedAt,
		); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		return replaceRoles(ctx, q, u.ID, u.Roles)
	})
}

// Delete elimina el usuario; user_roles se borra en cascada.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	if err := execAffected(ctx, r.db, "users", `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, userQuery+" "+where+` GROUP BY u.id`, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func replaceRoles(ctx context.Context, q Querier, userID int64, roles []string) error {
	if _, err := q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear user roles: %w", err)
	}
	tag, err := q.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = ANY($2)`, userID, roles)
	if err != nil {
		return fmt.Errorf("insert user roles: %w", constraintError("user_roles", err))
	}
	if int(tag.RowsAffected()) != len(roles) {
		return fmt.Errorf("insert user roles: %d de %d roles existen", tag.RowsAffected(), len(roles))
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.PersonID, &u.Enabled, &u.Roles,
		&u.CreatedBy, &u.CreatedAt, &u.UpdatedBy, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// RoleRepo lectura de roles.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de lectura de roles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by name: %w", err)
	}
	return &role, nil
}
