package models

// RawApplicant es una fila cruda del pool de postulantes tal como llega de
// la planilla de origen: columnas con nombre libre y valores sin limpiar.
type RawApplicant map[string]string

// Get retorna el valor de la columna o "" si no existe.
func (r RawApplicant) Get(col string) string {
	if r == nil {
		return ""
	}
	return r[col]
}

// Nombres de columna de la planilla de postulantes.
const (
	ColRUT              = "rut"
	ColNombre           = "nombre"
	ColEmail            = "email"
	ColCelular          = "celular"
	ColFechaTitulacion  = "fecha_de_titulacion"
	ColNivelEducativo   = "nivel_educativo"
	ColAsignatura       = "asignatura"
	ColDiasDeLaSemana   = "dias_de_la_semana"
	ColDisponibilidad   = "disponibilidad"
	ColGenero           = "genero"
	ColComentarios      = "comentarios"
)

// Applicant es un postulante ya normalizado. Los campos que pueden estar
// ausentes tras la limpieza (celular inválido, fecha de titulación ilegible)
// se modelan como punteros.
type Applicant struct {
	RUT            string   `db:"rut" json:"rut"`
	Nombre         string   `db:"nombre" json:"nombre"`
	Email          string   `db:"email" json:"email"`
	Celular        *string  `db:"celular" json:"celular,omitempty"`
	AniosEgreso    *int     `db:"anios_egreso" json:"anios_egreso,omitempty"`
	NivelEducativo []string `db:"nivel_educativo" json:"nivel_educativo"`
	Asignaturas    []string `db:"asignatura" json:"asignatura"`
	// Tokens de asignatura que no calzan con la lista oficial; se conservan
	// aparte para revisión manual en vez de descartarse.
	AsignaturasNoReconocidas []string `db:"asignaturas_no_reconocidas" json:"asignaturas_no_reconocidas,omitempty"`
	DiasDisponibles          []string `db:"dias_de_la_semana" json:"dias_de_la_semana"`
	Disponibilidad           string   `db:"disponibilidad" json:"disponibilidad"`
	Genero                   string   `db:"genero" json:"genero"`
	Comentarios              string   `db:"comentarios" json:"comentarios,omitempty"`

	// Flags del flujo de candidatos: oficina central valida el pool,
	// propone candidatos y el colegio elige.
	Validado     bool `db:"validado" json:"validado"`
	Seleccionado bool `db:"seleccionado" json:"seleccionado"`
	Elegido      bool `db:"elegido" json:"elegido"`

	// CVFile referencia el CV almacenado, si existe.
	CVFile string `db:"cv_file" json:"cv_file,omitempty"`

	// Extra conserva columnas desconocidas de la planilla sin interpretarlas.
	Extra map[string]string `db:"-" json:"-"`
}

// HasLevel indica si el postulante declara el nivel educativo dado.
func (a *Applicant) HasLevel(level string) bool {
	for _, l := range a.NivelEducativo {
		if l == level {
			return true
		}
	}
	return false
}

// HasSubject indica si el postulante declara la asignatura dada.
func (a *Applicant) HasSubject(subject string) bool {
	for _, s := range a.Asignaturas {
		if s == subject {
			return true
		}
	}
	return false
}
