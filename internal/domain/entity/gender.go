package entity

const GenderEntity = "gender"

// Gender género (código de una letra).
type Gender struct {
	ID          int64
	Code        string // exactamente 1 letra mayúscula, único
	Description string // único
	Audit
}

func (g *Gender) Identity() int64 { return g.ID }
