package dto

// UserRequest entrada para crear o actualizar un usuario. Password viaja en texto y se
// hashea en el caso de uso; nunca se devuelve.
type UserRequest struct {
	ID       *int64   `json:"id,omitempty"`
	Username *string  `json:"username"`
	Password *string  `json:"password"`
	PersonID *int64   `json:"person_id"`
	Enabled  *bool    `json:"enabled"`
	Roles    []string `json:"roles"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	PersonID *int64   `json:"person_id,omitempty"`
	Enabled  bool     `json:"enabled"`
	Roles    []string `json:"roles"`
	AuditResponse
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
