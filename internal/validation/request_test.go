package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/vmlandae/reemplazos-backend/internal/catalog"
	"github.com/vmlandae/reemplazos-backend/internal/domain/valueobject"
	"github.com/vmlandae/reemplazos-backend/internal/models"
)

func validRequest() *models.Request {
	return &models.Request{
		ReplacementID:  1,
		SchoolID:       10,
		SchoolName:     "Colegio San Pedro",
		CreatedBy:      "coordinador@colegio.cl",
		NivelEducativo: []string{catalog.NivelMedia},
		Asignatura: map[string][]string{
			catalog.NivelMedia: {"Matemática"},
		},
		Curso: map[string][]string{
			catalog.NivelMedia: {"1° Medio"},
		},
		FechaInicio:       time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		FechaFin:          time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
		DiasSeleccionados: []string{"2026-09-07", "2026-09-08", "2026-09-09", "2026-09-10", "2026-09-11"},
		DiasDeLaSemana:    []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"},
		Jefatura:          models.JefaturaSin,
		HorasContrato:     30,
		Status:            valueobject.RequestStatusCreada,
		CreatedWith:       models.CreatedWithWebApp,
		CreatedAt:         time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	}
}

func assertSingleError(t *testing.T, req *models.Request, wantMsg string) {
	t.Helper()
	ok, errs := ValidateRequest(req)
	if ok {
		t.Fatalf("la solicitud debió ser inválida")
	}
	if len(errs) != 1 {
		t.Fatalf("se esperaba 1 error, hubo %d: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0], wantMsg) {
		t.Errorf("error = %q, se esperaba que contuviera %q", errs[0], wantMsg)
	}
}

func TestValidateRequestOK(t *testing.T) {
	ok, errs := ValidateRequest(validRequest())
	if !ok || len(errs) != 0 {
		t.Fatalf("solicitud válida rechazada: %v", errs)
	}
}

func TestValidateRequestMissingDates(t *testing.T) {
	req := validRequest()
	req.FechaInicio = time.Time{}
	// Sin fechas tampoco corre la regla de días seleccionados.
	req.DiasSeleccionados = nil
	assertSingleError(t, req, "Fechas de inicio/fin no definidas.")
}

func TestValidateRequestInvertedDates(t *testing.T) {
	req := validRequest()
	req.FechaInicio, req.FechaFin = req.FechaFin, req.FechaInicio
	assertSingleError(t, req, "La fecha de inicio no puede ser posterior a la fecha de fin.")
}

func TestValidateRequestNoLevels(t *testing.T) {
	req := validRequest()
	req.NivelEducativo = nil
	assertSingleError(t, req, "Debe seleccionar al menos un nivel educativo.")
}

func TestValidateRequestNoSubjects(t *testing.T) {
	req := validRequest()
	req.Asignatura = nil
	assertSingleError(t, req, "Debe especificar al menos una asignatura para el reemplazo.")
}

func TestValidateRequestNoCourses(t *testing.T) {
	req := validRequest()
	req.Curso = map[string][]string{}
	assertSingleError(t, req, "Debe seleccionar al menos uno o varios cursos/niveles.")
}

func TestValidateRequestSubjectsAndCoursesTogether(t *testing.T) {
	req := validRequest()
	req.Asignatura = nil
	req.Curso = nil

	ok, errs := ValidateRequest(req)
	if ok || len(errs) != 2 {
		t.Fatalf("se esperaban 2 errores, hubo %d: %v", len(errs), errs)
	}
}

func TestValidateRequestEducDiferencialExemptsSubjectsAndCourses(t *testing.T) {
	req := validRequest()
	req.NivelEducativo = []string{catalog.NivelEducDiferencial}
	req.Asignatura = nil
	req.Curso = nil

	ok, errs := ValidateRequest(req)
	if !ok {
		t.Fatalf("Educación Diferencial no debió exigir asignatura ni curso: %v", errs)
	}
}

func TestValidateRequestGFormSkipsCourseRule(t *testing.T) {
	req := validRequest()
	req.CreatedWith = models.CreatedWithGForm
	req.Curso = nil

	ok, errs := ValidateRequest(req)
	if !ok {
		t.Fatalf("una solicitud gform no debió exigir cursos: %v", errs)
	}
}

func TestValidateRequestNoSelectedDays(t *testing.T) {
	req := validRequest()
	req.DiasSeleccionados = nil
	assertSingleError(t, req, "No se detectaron días entre las fechas seleccionadas")
}

func TestValidateRequestBadStatus(t *testing.T) {
	req := validRequest()
	req.Status = "en_proceso"
	assertSingleError(t, req, "Estado (status) inválido: en_proceso")
}

func TestValidateRequestNoContractHours(t *testing.T) {
	req := validRequest()
	req.HorasContrato = 0
	assertSingleError(t, req, "Debe seleccionar las horas de contrato.")
}

func TestValidateRequestContractHoursOutOfRange(t *testing.T) {
	req := validRequest()
	req.HorasContrato = 50
	assertSingleError(t, req, "Las horas de contrato deben estar entre 1 y 44.")
}

func TestValidateRequestNoJefatura(t *testing.T) {
	req := validRequest()
	req.Jefatura = ""
	assertSingleError(t, req, "Debe seleccionar una jefatura.")
}

func TestValidateRequestMissingIdentity(t *testing.T) {
	req := validRequest()
	req.SchoolName = ""
	req.CreatedBy = ""

	ok, errs := ValidateRequest(req)
	if ok || len(errs) != 2 {
		t.Fatalf("se esperaban 2 errores, hubo %d: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0], "Falta school_name en la solicitud.") {
		t.Errorf("error 0 = %q", errs[0])
	}
	if !strings.Contains(errs[1], "Falta created_by en la solicitud.") {
		t.Errorf("error 1 = %q", errs[1])
	}
}
