package valueobject

import (
	"fmt"
	"time"

	"github.com/vmlandae/reemplazos-backend/internal/pkg/apperror"
)

type HorasContrato int

const (
	HorasContratoMin = 1
	HorasContratoMax = 44
)

func NewHorasContrato(horas int) (HorasContrato, error) {
	if horas < HorasContratoMin || horas > HorasContratoMax {
		return 0, apperror.New(apperror.ErrCodeValidation, "las horas de contrato deben estar entre 1 y 44")
	}
	return HorasContrato(horas), nil
}

type RangoFechas struct {
	Inicio time.Time
	Fin    time.Time
}

func NewRangoFechas(inicio, fin time.Time) (RangoFechas, error) {
	if inicio.IsZero() || fin.IsZero() {
		return RangoFechas{}, apperror.New(apperror.ErrCodeValidation, "el rango de fechas debe tener inicio y fin")
	}
	if fin.Before(inicio) {
		return RangoFechas{}, apperror.New(apperror.ErrCodeValidation, "la fecha de término no puede ser anterior a la de inicio")
	}
	return RangoFechas{Inicio: inicio, Fin: fin}, nil
}

func (r RangoFechas) Contains(d time.Time) bool {
	return !d.Before(r.Inicio) && !d.After(r.Fin)
}

func (r RangoFechas) String() string {
	return fmt.Sprintf("%s - %s", r.Inicio.Format("2006-01-02"), r.Fin.Format("2006-01-02"))
}
