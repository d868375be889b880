package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
)

var _ repository.CountryRepository = (*CountryRepo)(nil)

const countryColumns = "id, code, name, year, cctld, " + auditColumns

// CountryRepo implementación del puerto CountryRepository sobre PostgreSQL.
type CountryRepo struct {
	q Querier
}

// NewCountryRepository construye el adaptador de persistencia para países.
func NewCountryRepository(q Querier) *CountryRepo {
	return &CountryRepo{q: q}
}

// GetByID obtiene un país por ID; (nil, nil) si no existe.
func (r *CountryRepo) GetByID(ctx context.Context, id int64) (*entity.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE id = $1`
	c, err := scanCountry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get country by id: %w", err)
	}
	return c, nil
}

// List lista los países ordenados por nombre.
func (r *CountryRepo) List(ctx context.Context) ([]*entity.Country, error) {
	rows, err := r.q.Query(ctx, `SELECT `+countryColumns+` FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ExistsByField verificación de unicidad sobre code o name.
func (r *CountryRepo) ExistsByField(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	return existsByField(ctx, r.q, "countries", []string{"code", "name"}, field, value, excludeID)
}

// Create persiste un nuevo país y asigna su ID.
func (r *CountryRepo) Create(ctx context.Context, c *entity.Country) error {
	query := `
		INSERT INTO countries (code, name, year, cctld, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, c.Code, c.Name, c.Year, c.CCTLD, c.CreatedBy, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert country: %w", constraintError("countries", err))
	}
	return nil
}

// Update actualiza un país.
func (r *CountryRepo) Update(ctx context.Context, c *entity.Country) error {
	query := `
		UPDATE countries SET code = $2, name = $3, year = $4, cctld = $5, updated_by = $6, updated_at = $7
		WHERE id = $1`
	if err := execAffected(ctx, r.q, "countries", query,
		c.ID, c.Code, c.Name, c.Year, c.CCTLD, c.UpdatedBy, c.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update country: %w", err)
	}
	return nil
}

// Delete elimina un país por ID.
func (r *CountryRepo) Delete(ctx context.Context, id int64) error {
	if err := execAffected(ctx, r.q, "countries", `DELETE FROM countries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete country: %w", err)
	}
	return nil
}

func scanCountry(row pgx.Row) (*entity.Country, error) {
	var c entity.Country
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Year, &c.CCTLD,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedBy, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
