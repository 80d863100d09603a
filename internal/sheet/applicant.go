package sheet

import (
	"strconv"

	"github.com/vmlandae/reemplazos-backend/internal/models"
)

var applicantColumns = []string{
	"rut", "nombre", "email", "celular", "anios_egreso",
	"nivel_educativo", "asignatura", "asignaturas_no_reconocidas",
	"dias_de_la_semana", "disponibilidad", "genero", "comentarios",
	"validado", "seleccionado", "elegido", "cv_file",
}

// SerializeApplicant aplana un postulante canónico a fila de planilla para
// la tabla de postulantes limpios.
func SerializeApplicant(a *models.Applicant) map[string]string {
	row := map[string]string{
		"rut":                        a.RUT,
		"nombre":                     a.Nombre,
		"email":                      a.Email,
		"nivel_educativo":            SerializeValue(ShapeList, a.NivelEducativo),
		"asignatura":                 SerializeValue(ShapeList, a.Asignaturas),
		"asignaturas_no_reconocidas": SerializeValue(ShapeList, a.AsignaturasNoReconocidas),
		"dias_de_la_semana":          SerializeValue(ShapeList, a.DiasDisponibles),
		"disponibilidad":             a.Disponibilidad,
		"genero":                     a.Genero,
		"comentarios":                a.Comentarios,
		"validado":                   serializeBool(a.Validado),
		"seleccionado":               serializeBool(a.Seleccionado),
		"elegido":                    serializeBool(a.Elegido),
		"cv_file":                    a.CVFile,
	}
	if a.Celular != nil {
		row["celular"] = *a.Celular
	} else {
		row["celular"] = ""
	}
	if a.AniosEgreso != nil {
		row["anios_egreso"] = strconv.Itoa(*a.AniosEgreso)
	} else {
		row["anios_egreso"] = ""
	}
	for k, v := range a.Extra {
		if _, known := row[k]; !known {
			row[k] = v
		}
	}
	return row
}

// DeserializeApplicant reconstruye un postulante canónico desde una fila.
// Celular y años de egreso vacíos quedan ausentes, no en cero.
func DeserializeApplicant(row map[string]string) *models.Applicant {
	a := &models.Applicant{
		RUT:                      row["rut"],
		Nombre:                   row["nombre"],
		Email:                    row["email"],
		NivelEducativo:           ParseList(row["nivel_educativo"]),
		Asignaturas:              ParseSubjectList(row["asignatura"]),
		AsignaturasNoReconocidas: ParseSubjectList(row["asignaturas_no_reconocidas"]),
		DiasDisponibles:          ParseList(row["dias_de_la_semana"]),
		Disponibilidad:           row["disponibilidad"],
		Genero:                   row["genero"],
		Comentarios:              row["comentarios"],
		Validado:                 parseBool(row["validado"]),
		Seleccionado:             parseBool(row["seleccionado"]),
		Elegido:                  parseBool(row["elegido"]),
		CVFile:                   row["cv_file"],
	}

	if cel := row["celular"]; cel != "" {
		a.Celular = &cel
	}
	if raw := row["anios_egreso"]; raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			a.AniosEgreso = &n
		}
	}

	known := make(map[string]struct{}, len(applicantColumns))
	for _, c := range applicantColumns {
		known[c] = struct{}{}
	}
	for k, v := range row {
		if _, ok := known[k]; ok {
			continue
		}
		if a.Extra == nil {
			a.Extra = make(map[string]string)
		}
		a.Extra[k] = v
	}

	return a
}

// ApplicantColumns retorna el orden canónico de columnas de la tabla de
// postulantes limpios.
func ApplicantColumns() []string {
	return append([]string(nil), applicantColumns...)
}

func serializeBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func parseBool(cell string) bool {
	return cell == "TRUE" || cell == "true" || cell == "1"
}
