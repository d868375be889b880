package entity

// CountryEntity nombre usado en errores y métricas.
const CountryEntity = "country"

// Country país (ISO 3166-1 alpha-2).
type Country struct {
	ID    int64
	Code  string  // exactamente 2 letras mayúsculas, único
	Name  string  // único
	Year  *string // año de registro ISO, texto libre opcional
	CCTLD *string // dominio de nivel superior (.za), opcional
	Audit
}

// Identity devuelve el ID persistido (0 si aún no existe).
func (c *Country) Identity() int64 { return c.ID }
