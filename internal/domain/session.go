package domain

import "time"

// AssessmentKind selecciona que banco de preguntas y que tabla de arquetipos
// aplican a la sesion.
type AssessmentKind string

const (
	KindQuick AssessmentKind = "quick"
	KindFull  AssessmentKind = "full"
)

// Valid indica si el kind pertenece al conjunto cerrado.
func (k AssessmentKind) Valid() bool {
	return k == KindQuick || k == KindFull
}

// AssessmentSession agrupa las respuestas de un usuario y su tier actual.
// Tier solo avanza via ApplyUpgrade tras una compra exitosa; nunca regresa.
// Al completarse, las respuestas quedan inmutables.
type AssessmentSession struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Kind        AssessmentKind `json:"kind"`
	Tier        PremiumTier    `json:"tier"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Completed indica si la sesion fue marcada como completa.
func (s AssessmentSession) Completed() bool {
	return s.CompletedAt != nil
}

// StoredResult es el ClassificationResult congelado al completar la sesion,
// junto con el vector normalizado (4 categorias + 11 subcategorias) usado
// como embedding para busqueda de perfiles similares.
type StoredResult struct {
	SessionID string               `json:"session_id"`
	Result    ClassificationResult `json:"result"`
	CreatedAt time.Time            `json:"created_at"`
}
