package dto

// PersonRequest entrada para crear o actualizar una persona.
// Las referencias se envían por ID; en actualización 0 limpia la referencia.
// DateOfBirth usa el formato AAAA-MM-DD.
type PersonRequest struct {
	ID          *int64  `json:"id,omitempty"`
	TitleID     *int64  `json:"title_id"`
	FirstName   *string `json:"first_name"`
	MiddleName  *string `json:"middle_name"`
	LastName    *string `json:"last_name"`
	GenderID    *int64  `json:"gender_id"`
	Email       *string `json:"email"`
	IdTypeID    *int64  `json:"id_type_id"`
	IdNumber    *string `json:"id_number"`
	DateOfBirth *string `json:"date_of_birth"`
	CountryID   *int64  `json:"country_id"`
}

// PersonResponse salida de una persona.
type PersonResponse struct {
	ID          int64   `json:"id"`
	TitleID     *int64  `json:"title_id,omitempty"`
	FirstName   string  `json:"first_name"`
	MiddleName  *string `json:"middle_name,omitempty"`
	LastName    string  `json:"last_name"`
	GenderID    *int64  `json:"gender_id,omitempty"`
	Email       string  `json:"email"`
	IdTypeID    *int64  `json:"id_type_id,omitempty"`
	IdNumber    *string `json:"id_number,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	CountryID   *int64  `json:"country_id,omitempty"`
	AuditResponse
}

// IdNumberResponse lectura del número de identidad nacional.
type IdNumberResponse struct {
	Number      string  `json:"number"`
	Valid       bool    `json:"valid"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Sex         string  `json:"sex"`
	Female      bool    `json:"female"`
	Male        bool    `json:"male"`
	Citizen     bool    `json:"citizen"`
}
