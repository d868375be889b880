package entity

const IdTypeEntity = "id_type"

// IdType tipo de documento de identidad. Uno de ellos (configurable) es el documento
// nacional cuyo número se valida con pkg/idnumber.
type IdType struct {
	ID          int64
	Code        string // 1-5 letras mayúsculas, único
	Description string // único
	Audit
}

func (t *IdType) Identity() int64 { return t.ID }
