package entity

const TitleEntity = "title"

// Title tratamiento de una persona (MR, MRS, DR...).
type Title struct {
	ID          int64
	Code        string // 1-5 letras mayúsculas, único
	Description string // único
	Audit
}

func (t *Title) Identity() int64 { return t.ID }
