package repository

import "github.com/jhoicas/masterdata-api/internal/domain/entity"

// CountryRepository puerto de persistencia para Country.
type CountryRepository interface {
	Store[entity.Country]
}

// GenderRepository puerto de persistencia para Gender.
type GenderRepository interface {
	Store[entity.Gender]
}

// TitleRepository puerto de persistencia para Title.
type TitleRepository interface {
	Store[entity.Title]
}

// IdTypeRepository puerto de persistencia para IdType.
type IdTypeRepository interface {
	Store[entity.IdType]
}
