package sheet

import (
	"github.com/vmlandae/reemplazos-backend/internal/domain/valueobject"
	"github.com/vmlandae/reemplazos-backend/internal/models"
)

// Columnas de la tabla de solicitudes.
var requestColumns = []string{
	"replacement_id", "school_id", "school_name", "created_by",
	"nivel_educativo", "asignatura", "curso",
	"fecha_inicio", "fecha_fin", "dias_seleccionados", "dias_de_la_semana",
	"horarios_seleccionados", "jefatura", "horas_contrato",
	"mencion_especialidad_postitulo", "vacante_confidencial",
	"genero", "anios_egreso", "disponibilidad", "candidato_preferido",
	"otras_preferencias", "comentarios", "status", "created_with",
	"created_at", "processed_at", "updated_at",
}

// SerializeRequest aplana una solicitud a una fila de planilla. Cada campo
// se serializa según su forma registrada; las columnas desconocidas que la
// solicitud arrastre en Extra se copian tal cual.
func SerializeRequest(req *models.Request) map[string]string {
	row := map[string]string{
		"replacement_id":                 SerializeValue(ShapeInt, req.ReplacementID),
		"school_id":                      SerializeValue(ShapeInt, req.SchoolID),
		"school_name":                    req.SchoolName,
		"created_by":                     req.CreatedBy,
		"nivel_educativo":                SerializeValue(ShapeList, req.NivelEducativo),
		"asignatura":                     SerializeValue(ShapeMapping, req.Asignatura),
		"curso":                          SerializeValue(ShapeMapping, req.Curso),
		"fecha_inicio":                   SerializeValue(ShapeDate, req.FechaInicio),
		"fecha_fin":                      SerializeValue(ShapeDate, req.FechaFin),
		"dias_seleccionados":             SerializeValue(ShapeList, req.DiasSeleccionados),
		"dias_de_la_semana":              SerializeValue(ShapeList, req.DiasDeLaSemana),
		"horarios_seleccionados":         SerializeValue(ShapeMapping, req.HorariosSeleccionados),
		"jefatura":                       req.Jefatura,
		"horas_contrato":                 SerializeValue(ShapeInt, req.HorasContrato),
		"mencion_especialidad_postitulo": req.MencionEspecialidadPostitulo,
		"vacante_confidencial":           req.VacanteConfidencial,
		"genero":                         req.Genero,
		"anios_egreso":                   SerializeValue(ShapeInt, req.AniosEgreso),
		"disponibilidad":                 req.Disponibilidad,
		"candidato_preferido":            req.CandidatoPreferido,
		"otras_preferencias":             req.OtrasPreferencias,
		"comentarios":                    req.Comentarios,
		"status":                         string(req.Status),
		"created_with":                   req.CreatedWith,
		"created_at":                     SerializeValue(ShapeTimestamp, req.CreatedAt),
		"processed_at":                   SerializeValue(ShapeTimestamp, req.ProcessedAt),
		"updated_at":                     SerializeValue(ShapeTimestamp, req.UpdatedAt),
	}
	for k, v := range req.Extra {
		if _, known := row[k]; !known {
			row[k] = v
		}
	}
	return row
}

// DeserializeRequest reconstruye una solicitud desde una fila de planilla.
// Cada campo se parsea por separado: una celda ilegible deja el campo en su
// valor cero y el resto de la fila sobrevive. Las columnas desconocidas se
// conservan en Extra sin interpretar.
func DeserializeRequest(row map[string]string) *models.Request {
	req := &models.Request{
		ReplacementID:                ParseInt(row["replacement_id"]),
		SchoolID:                     ParseInt(row["school_id"]),
		SchoolName:                   row["school_name"],
		CreatedBy:                    row["created_by"],
		NivelEducativo:               ParseList(row["nivel_educativo"]),
		Asignatura:                   ParseMapping(row["asignatura"]),
		Curso:                        ParseMapping(row["curso"]),
		FechaInicio:                  ParseDate(row["fecha_inicio"]),
		FechaFin:                     ParseDate(row["fecha_fin"]),
		DiasSeleccionados:            ParseList(row["dias_seleccionados"]),
		DiasDeLaSemana:               ParseList(row["dias_de_la_semana"]),
		HorariosSeleccionados:        ParseMapping(row["horarios_seleccionados"]),
		Jefatura:                     row["jefatura"],
		HorasContrato:                ParseInt(row["horas_contrato"]),
		MencionEspecialidadPostitulo: row["mencion_especialidad_postitulo"],
		VacanteConfidencial:          row["vacante_confidencial"],
		Genero:                       row["genero"],
		AniosEgreso:                  ParseInt(row["anios_egreso"]),
		Disponibilidad:               row["disponibilidad"],
		CandidatoPreferido:           row["candidato_preferido"],
		OtrasPreferencias:            row["otras_preferencias"],
		Comentarios:                  row["comentarios"],
		Status:                       valueobject.RequestStatus(row["status"]),
		CreatedWith:                  row["created_with"],
		CreatedAt:                    ParseTimestamp(row["created_at"]),
	}

	if t := ParseTimestamp(row["processed_at"]); !t.IsZero() {
		req.ProcessedAt = &t
	}
	if t := ParseTimestamp(row["updated_at"]); !t.IsZero() {
		req.UpdatedAt = &t
	}

	known := make(map[string]struct{}, len(requestColumns))
	for _, c := range requestColumns {
		known[c] = struct{}{}
	}
	for k, v := range row {
		if _, ok := known[k]; ok {
			continue
		}
		if req.Extra == nil {
			req.Extra = make(map[string]string)
		}
		req.Extra[k] = v
	}

	return req
}

// RequestColumns retorna el orden canónico de columnas de la tabla de
// solicitudes.
func RequestColumns() []string {
	return append([]string(nil), requestColumns...)
}
