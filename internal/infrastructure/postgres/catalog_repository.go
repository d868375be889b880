package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
)

// catalogRow forma común de las tablas código/descripción. Gender, Title e IdType
// comparten este tipo subyacente, así que se convierten directamente.
type catalogRow = struct {
	ID          int64
	Code        string
	Description string
	entity.Audit
}

type catalogEntity interface {
	~catalogRow
}

var (
	_ repository.GenderRepository = (*CatalogRepo[entity.Gender])(nil)
	_ repository.TitleRepository  = (*CatalogRepo[entity.Title])(nil)
	_ repository.IdTypeRepository = (*CatalogRepo[entity.IdType])(nil)
)

// CatalogRepo persistencia de un catálogo código/descripción en su tabla.
type CatalogRepo[T catalogEntity] struct {
	q     Querier
	table string
}

// NewGenderRepository construye el adaptador para géneros.
func NewGenderRepository(q Querier) *CatalogRepo[entity.Gender] {
	return &CatalogRepo[entity.Gender]{q: q, table: "genders"}
}

// NewTitleRepository construye el adaptador para títulos.
func NewTitleRepository(q Querier) *CatalogRepo[entity.Title] {
	return &CatalogRepo[entity.Title]{q: q, table: "titles"}
}

// NewIdTypeRepository construye el adaptador para tipos de identificación.
func NewIdTypeRepository(q Querier) *CatalogRepo[entity.IdType] {
	return &CatalogRepo[entity.IdType]{q: q, table: "id_types"}
}

func (r *CatalogRepo[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf(`SELECT id, code, description, %s FROM %s WHERE id = $1`, auditColumns, r.table)
	e, err := scanCatalog[T](r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s by id: %w", r.table, err)
	}
	return e, nil
}

// List lista el catálogo ordenado por código.
func (r *CatalogRepo[T]) List(ctx context.Context) ([]*T, error) {
	query := fmt.Sprintf(`SELECT id, code, description, %s FROM %s ORDER BY code`, auditColumns, r.table)
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	defer rows.Close()
	var list []*T
	for rows.Next() {
		e, err := scanCatalog[T](rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *CatalogRepo[T]) ExistsByField(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	return existsByField(ctx, r.q, r.table, []string{"code", "description"}, field, value, excludeID)
}

func (r *CatalogRepo[T]) Create(ctx context.Context, e *T) error {
	row := catalogRow(*e)
	query := fmt.Sprintf(`
		INSERT INTO %s (code, description, created_by, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, r.table)
	if err := r.q.QueryRow(ctx, query, row.Code, row.Description, row.CreatedBy, row.CreatedAt).Scan(&row.ID); err != nil {
		return fmt.Errorf("insert %s: %w", r.table, constraintError(r.table, err))
	}
	*e = T(row)
	return nil
}

func (r *CatalogRepo[T]) Update(ctx context.Context, e *T) error {
	row := catalogRow(*e)
	query := fmt.Sprintf(`
		UPDATE %s SET code = $2, description = $3, updated_by = $4, updated_at = $5
		WHERE id = $1`, r.table)
	if err := execAffected(ctx, r.q, r.table, query,
		row.ID, row.Code, row.Description, row.UpdatedBy, row.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update %s: %w", r.table, err)
	}
	return nil
}

func (r *CatalogRepo[T]) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	if err := execAffected(ctx, r.q, r.table, query, id); err != nil {
		return fmt.Errorf("delete %s: %w", r.table, err)
	}
	return nil
}

func scanCatalog[T catalogEntity](row pgx.Row) (*T, error) {
	var c catalogRow
	if err := row.Scan(&c.ID, &c.Code, &c.Description,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedBy, &c.UpdatedAt); err != nil {
		return nil, err
	}
	e := T(c)
	return &e, nil
}
