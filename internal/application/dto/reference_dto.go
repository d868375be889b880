package dto

// CountryRequest entrada para crear o actualizar un país. En actualización solo cambian los
// campos presentes; "" limpia un opcional. ID no debe enviarse al crear.
type CountryRequest struct {
	ID    *int64  `json:"id,omitempty" form:"id"`
	Code  *string `json:"code" form:"code"`
	Name  *string `json:"name" form:"name"`
	Year  *string `json:"year" form:"year"`
	CCTLD *string `json:"cctld" form:"cctld"`
}

// CountryResponse salida de un país.
type CountryResponse struct {
	ID    int64   `json:"id"`
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Year  *string `json:"year,omitempty"`
	CCTLD *string `json:"cctld,omitempty"`
	AuditResponse
}

// CatalogRequest entrada para los catálogos código/descripción (género, título, tipo de identificación).
type CatalogRequest struct {
	ID          *int64  `json:"id,omitempty" form:"id"`
	Code        *string `json:"code" form:"code"`
	Description *string `json:"description" form:"description"`
}

// CatalogResponse salida de un catálogo código/descripción.
type CatalogResponse struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	AuditResponse
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
