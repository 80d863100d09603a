package validation

import (
	"fmt"

	"github.com/vmlandae/reemplazos-backend/internal/catalog"
	"github.com/vmlandae/reemplazos-backend/internal/domain/valueobject"
	"github.com/vmlandae/reemplazos-backend/internal/models"
)

var validStatuses = []string{"creada", "aprobada", "rechazada", "finalizada"}

// ValidateRequest valida una solicitud de reemplazo contra las reglas
// generales del formulario. Las reglas se evalúan todas, en orden y de
// forma independiente: el resultado acumula un mensaje por regla violada
// para que el llamador pueda mostrarlos juntos.
func ValidateRequest(req *models.Request) (bool, []string) {
	var errors []string

	// 1) Rango de fechas.
	fi, ff := req.FechaInicio, req.FechaFin
	if fi.IsZero() || ff.IsZero() {
		errors = append(errors, "Fechas de inicio/fin no definidas.")
	} else if fi.After(ff) {
		errors = append(errors, "La fecha de inicio no puede ser posterior a la fecha de fin.")
	}

	// 2) Al menos un nivel educativo.
	if len(req.NivelEducativo) == 0 {
		errors = append(errors, "Debe seleccionar al menos un nivel educativo.")
	}

	// La presencia de Educación Diferencial exime las reglas de asignatura
	// y curso: ese nivel no tiene taxonomía de asignaturas.
	edDiferencial := false
	for _, n := range req.NivelEducativo {
		if n == catalog.NivelEducDiferencial {
			edDiferencial = true
			break
		}
	}

	// 3) Al menos una asignatura, salvo Educación Diferencial.
	if !edDiferencial {
		total := 0
		for _, arr := range req.Asignatura {
			total += len(arr)
		}
		if total == 0 {
			errors = append(errors, "Debe especificar al menos una asignatura para el reemplazo.")
		}
	}

	// 4) Al menos un curso, salvo Educación Diferencial; el formulario
	// externo no pide cursos, así que la regla aplica solo a la webapp.
	if !edDiferencial && req.CreatedWith != models.CreatedWithGForm {
		total := 0
		for _, arr := range req.Curso {
			total += len(arr)
		}
		if total == 0 {
			errors = append(errors, "Debe seleccionar al menos uno o varios cursos/niveles.")
		}
	}

	// 5) Con un rango de fechas válido deben existir días seleccionados.
	if !fi.IsZero() && !ff.IsZero() && !fi.After(ff) {
		if len(req.DiasSeleccionados) == 0 {
			errors = append(errors, "No se detectaron días entre las fechas seleccionadas, verifique la selección.")
		}
	}

	// 6) Estado reconocido.
	if !statusIsValid(string(req.Status)) {
		errors = append(errors, fmt.Sprintf("Estado (status) inválido: %s (debe estar en %v).", req.Status, validStatuses))
	}

	// 7) Horas de contrato.
	if req.HorasContrato == 0 {
		errors = append(errors, "Debe seleccionar las horas de contrato.")
	} else if _, err := valueobject.NewHorasContrato(req.HorasContrato); err != nil {
		errors = append(errors, "Las horas de contrato deben estar entre 1 y 44.")
	}

	// 8) Jefatura.
	if req.Jefatura == "" {
		errors = append(errors, "Debe seleccionar una jefatura.")
	}

	// 9) Campos básicos de identificación.
	if req.SchoolName == "" {
		errors = append(errors, "Falta school_name en la solicitud.")
	}
	if req.CreatedBy == "" {
		errors = append(errors, "Falta created_by en la solicitud.")
	}

	return len(errors) == 0, errors
}

func statusIsValid(s string) bool {
	for _, v := range validStatuses {
		if v == s {
			return true
		}
	}
	return false
}
