package entity

// Roles base sembrados por la migración inicial.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	UserEntity = "user"
	RoleEntity = "role"
)

// Role rol asignable a un usuario.
type Role struct {
	ID   int64
	Name string
}

// User usuario del sistema. La contraseña solo se guarda como hash.
type User struct {
	ID           int64
	Username     string // 3-50 caracteres, único
	PasswordHash string
	PersonID     *int64
	Enabled      bool
	Roles        []string
	Audit
}

func (u *User) Identity() int64 { return u.ID }

// HasRole informa si el usuario tiene asignado el rol.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
