package valueobject

import (
	"testing"
	"time"

	"github.com/vmlandae/reemplazos-backend/internal/pkg/apperror"
)

func TestNewHorasContrato(t *testing.T) {
	for _, h := range []int{1, 30, 44} {
		if _, err := NewHorasContrato(h); err != nil {
			t.Errorf("NewHorasContrato(%d) = %v, se esperaba válido", h, err)
		}
	}
	for _, h := range []int{-1, 0, 45} {
		if _, err := NewHorasContrato(h); !apperror.IsValidation(err) {
			t.Errorf("NewHorasContrato(%d) debió fallar con error de validación, dio %v", h, err)
		}
	}
}

func TestNewRangoFechas(t *testing.T) {
	inicio := time.Date(2026, 6, 22, 0, 0, 0, 0, time.UTC)
	fin := time.Date(2026, 6, 26, 0, 0, 0, 0, time.UTC)

	rango, err := NewRangoFechas(inicio, fin)
	if err != nil {
		t.Fatalf("rango válido falló: %v", err)
	}
	if !rango.Contains(inicio.AddDate(0, 0, 2)) {
		t.Error("el rango debió contener un día intermedio")
	}
	if rango.Contains(fin.AddDate(0, 0, 1)) {
		t.Error("el rango no debió contener un día posterior al fin")
	}
	if got := rango.String(); got != "2026-06-22 - 2026-06-26" {
		t.Errorf("String() = %q", got)
	}

	if _, err := NewRangoFechas(fin, inicio); !apperror.IsValidation(err) {
		t.Errorf("rango invertido debió fallar con error de validación, dio %v", err)
	}
	if _, err := NewRangoFechas(time.Time{}, fin); !apperror.IsValidation(err) {
		t.Errorf("inicio cero debió fallar con error de validación, dio %v", err)
	}
}
