package entity

import "time"

// Audit datos de auditoría comunes: creación al construir, actualización solo al modificar.
type Audit struct {
	CreatedBy string
	CreatedAt time.Time
	UpdatedBy *string
	UpdatedAt *time.Time
}

// StampCreated registra quién y cuándo creó el registro.
func (a *Audit) StampCreated(actor string, at time.Time) {
	a.CreatedBy = actor
	a.CreatedAt = at
}

// StampUpdated registra quién y cuándo modificó el registro.
func (a *Audit) StampUpdated(actor string, at time.Time) {
	a.UpdatedBy = &actor
	a.UpdatedAt = &at
}
