package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
)

var _ repository.PersonRepository = (*PersonRepo)(nil)

const personColumns = `id, title_id, first_name, middle_name, last_name, gender_id, email,
	id_type_id, id_number, date_of_birth, country_id, ` + auditColumns

// PersonRepo implementación del puerto PersonRepository sobre PostgreSQL.
type PersonRepo struct {
	q Querier
}

// NewPersonRepository construye el adaptador de persistencia para personas.
func NewPersonRepository(q Querier) *PersonRepo {
	return &PersonRepo{q: q}
}

func (r *PersonRepo) GetByID(ctx context.Context, id int64) (*entity.Person, error) {
	p, err := scanPerson(r.q.QueryRow(ctx, `SELECT `+personColumns+` FROM persons WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get person by id: %w", err)
	}
	return p, nil
}

// List lista las personas por apellido y nombre.
func (r *PersonRepo) List(ctx context.Context) ([]*entity.Person, error) {
	rows, err := r.q.Query(ctx, `SELECT `+personColumns+` FROM persons ORDER BY last_name, first_name, id`)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()
	var list []*entity.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PersonRepo) ExistsByField(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	return existsByField(ctx, r.q, "persons", []string{"email"}, field, value, excludeID)
}

func (r *PersonRepo) Create(ctx context.Context, p *entity.Person) error {
	query := `
		INSERT INTO persons (title_id, first_name, middle_name, last_name, gender_id, email,
			id_type_id, id_number, date_of_birth, country_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.TitleID, p.FirstName, p.MiddleName, p.LastName, p.GenderID, p.Email,
		p.IdTypeID, p.IdNumber, p.DateOfBirth, p.CountryID, p.CreatedBy, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert person: %w", constraintError("persons", err))
	}
	return nil
}

func (r *PersonRepo) Update(ctx context.Context, p *entity.Person) error {
	query := `
		UPDATE persons SET title_id = $2, first_name = $3, middle_name = $4, last_name = $5,
			gender_id = $6, email = $7, id_type_id = $8, id_number = $9, date_of_birth = $10,
			country_id = $11, updated_by = $12, updated_at = $13
		WHERE id = $1`
	if err := execAffected(ctx, r.q, "persons", query,
		p.ID, p.TitleID, p.FirstName, p.MiddleName, p.LastName, p.GenderID, p.Email,
		p.IdTypeID, p.IdNumber, p.DateOfBirth, p.CountryID, p.UpdatedBy, p.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	return nil
}

func (r *PersonRepo) Delete(ctx context.Context, id int64) error {
	if err := execAffected(ctx, r.q, "persons", `DELETE FROM persons WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return nil
}

func scanPerson(row pgx.Row) (*entity.Person, error) {
	var p entity.Person
	err := row.Scan(&p.ID, &p.TitleID, &p.FirstName, &p.MiddleName, &p.LastName, &p.GenderID, &p.Email,
		&p.IdTypeID, &p.IdNumber, &p.DateOfBirth, &p.CountryID,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedBy, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
