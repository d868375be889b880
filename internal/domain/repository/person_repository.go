package repository

import "github.com/jhoicas/masterdata-api/internal/domain/entity"

// PersonRepository puerto de persistencia para Person.
type PersonRepository interface {
	Store[entity.Person]
}
