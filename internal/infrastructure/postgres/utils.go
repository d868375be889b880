package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/masterdata-api/internal/domain/repository"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

const auditColumns = "created_by, created_at, updated_by, updated_at"

// constraintError traduce violaciones de UNIQUE / FOREIGN KEY a *repository.ConstraintError.
// Los constraints siguen la convención <tabla>_<columna>_key / <tabla>_<columna>_fkey,
// así la columna coincide con el nombre del campo de dominio.
func constraintError(table string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	var kind repository.ConstraintKind
	switch pgErr.Code {
	case codeUniqueViolation:
		kind = repository.ConstraintUnique
	case codeForeignKeyViolation:
		kind = repository.ConstraintForeignKey
	default:
		return err
	}
	return &repository.ConstraintError{
		Kind:       kind,
		Constraint: pgErr.ConstraintName,
		Field:      constraintField(table, pgErr.ConstraintName),
		Err:        err,
	}
}

func constraintField(table, constraint string) string {
	name := constraint
	switch {
	case strings.HasSuffix(name, "_fkey"):
		name = strings.TrimSuffix(name, "_fkey")
	case strings.HasSuffix(name, "_key"):
		name = strings.TrimSuffix(name, "_key")
	default:
		return ""
	}
	if !strings.HasPrefix(name, table+"_") {
		// FK de otra tabla que apunta a esta (p. ej. persons_country_id_fkey al borrar un país).
		return ""
	}
	return strings.TrimPrefix(name, table+"_")
}

// existsByField consulta si otro registro (id <> excludeID) tiene value en la columna field.
// field debe estar en la lista blanca del repositorio: nunca se interpola entrada del usuario.
func existsByField(ctx context.Context, q Querier, table string, allowed []string, field, value string, excludeID int64) (bool, error) {
	ok := false
	for _, col := range allowed {
		if col == field {
			ok = true
			break
		}
	}
	if !ok {
		return false, fmt.Errorf("%s: el campo %q no admite verificación de unicidad", table, field)
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND id <> $2)`, table, field)
	var exists bool
	if err := q.QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists %s.%s: %w", table, field, err)
	}
	return exists, nil
}

// execAffected ejecuta una sentencia y devuelve repository.ErrRowMissing si no afectó filas.
func execAffected(ctx context.Context, q Querier, table, query string, args ...any) error {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return constraintError(table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", table, repository.ErrRowMissing)
	}
	return nil
}
