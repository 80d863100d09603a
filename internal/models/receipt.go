package models

import "time"

// Estados de una recepción de servicio.
const (
	ReceiptStatusPendiente = "pendiente"
	ReceiptStatusConforme  = "conforme"
	ReceiptStatusObjetada  = "objetada"
)

// Receipt es la recepción de servicio de un reemplazo: la evaluación que el
// colegio hace del reemplazante una vez terminado el período.
type Receipt struct {
	ReceptionID   int        `json:"reception_id"`
	ReplacementID int        `json:"replacement_id"`
	SchoolID      int        `json:"school_id"`
	CandidatoRUT  string     `json:"candidato_rut"`
	Status        string     `json:"status"`
	Rating        int        `json:"rating"`
	Comentarios   string     `json:"comentarios,omitempty"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// SentCV registra el envío del CV de un candidato para un reemplazo, para
// no reenviar el mismo CV dos veces.
type SentCV struct {
	ReplacementID int       `json:"replacement_id"`
	Email         string    `json:"email"`
	SentAt        time.Time `json:"sent_at"`
}
