package dto

import (
	"github.com/vmlandae/reemplazos-backend/internal/models"
)

// AuthResponse agrupa el usuario autenticado con su par de tokens.
type AuthResponse struct {
	User   *models.User `json:"user"`
	Tokens interface{}  `json:"tokens"`
}

// MatchResponse son los candidatos que calzan con una solicitud, junto con
// los criterios efectivamente aplicados.
type MatchResponse struct {
	ReplacementID int                `json:"replacement_id,omitempty"`
	Criteria      models.Criteria    `json:"criteria"`
	Candidates    []models.Applicant `json:"candidates"`
	Total         int                `json:"total"`
}

// PoolResponse es el pool limpio de postulantes.
type PoolResponse struct {
	Applicants []models.Applicant `json:"applicants"`
	Total      int                `json:"total"`
}

// ImportResponse resume una importación del formulario externo.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// RefreshPoolResponse resume una renovación del pool.
type RefreshPoolResponse struct {
	Applicants int `json:"applicants"`
}

// ErrorResponse es la respuesta estándar de error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse es la respuesta estándar de éxito.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
