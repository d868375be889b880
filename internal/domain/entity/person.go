package entity

import "time"

const PersonEntity = "person"

// Person persona con referencias opcionales a los datos maestros.
type Person struct {
	ID          int64
	TitleID     *int64
	FirstName   string
	MiddleName  *string
	LastName    string
	GenderID    *int64
	Email       string // en minúsculas, único
	IdTypeID    *int64
	IdNumber    *string
	DateOfBirth *time.Time
	CountryID   *int64 // nacionalidad
	Audit
}

func (p *Person) Identity() int64 { return p.ID }
