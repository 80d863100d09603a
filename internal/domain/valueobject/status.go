package valueobject

import "github.com/vmlandae/reemplazos-backend/internal/pkg/apperror"

type RequestStatus string

const (
	RequestStatusCreada     RequestStatus = "creada"
	RequestStatusAprobada   RequestStatus = "aprobada"
	RequestStatusRechazada  RequestStatus = "rechazada"
	RequestStatusFinalizada RequestStatus = "finalizada"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusCreada, RequestStatusAprobada, RequestStatusRechazada, RequestStatusFinalizada:
		return true
	}
	return false
}

func (s RequestStatus) CanTransitionTo(newStatus RequestStatus) bool {
	transitions := map[RequestStatus][]RequestStatus{
		RequestStatusCreada:     {RequestStatusAprobada, RequestStatusRechazada},
		RequestStatusAprobada:   {RequestStatusFinalizada, RequestStatusRechazada},
		RequestStatusRechazada:  {},
		RequestStatusFinalizada: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewRequestStatus(status string) (RequestStatus, error) {
	s := RequestStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "estado de solicitud inválido")
	}
	return s, nil
}

type Disponibilidad string

const (
	DisponibilidadCompleta Disponibilidad = "Completa"
	DisponibilidadParcial  Disponibilidad = "Parcial"
)

func (d Disponibilidad) IsValid() bool {
	switch d {
	case DisponibilidadCompleta, DisponibilidadParcial:
		return true
	}
	return false
}

type Genero string

const (
	GeneroMasculino   Genero = "Masculino"
	GeneroFemenino    Genero = "Femenino"
	GeneroIndiferente Genero = "Indiferente"
)

func (g Genero) IsValid() bool {
	switch g {
	case GeneroMasculino, GeneroFemenino, GeneroIndiferente:
		return true
	}
	return false
}
