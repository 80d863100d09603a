package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Niveles educativos canónicos.
const (
	NivelInicial          = "Inicial (PreKinder/Kinder)"
	NivelBasica           = "Básica Generalista"
	NivelBasicaMencion    = "Básica con Mención"
	NivelMedia            = "Media"
	NivelTecnico          = "Técnico Profesional"
	NivelEducDiferencial  = "Educación Diferencial"
)

// AsignaturaCompuesta es la única asignatura con comas internas: debe
// extraerse como unidad antes de separar el string por comas.
const AsignaturaCompuesta = "Historia, geografía y Ciencias Sociales"

// Catalog agrupa los vocabularios fijos del dominio: niveles educativos,
// cursos y asignaturas por nivel, y los mapeos usados para limpiar los datos
// del formulario externo y del pool de postulantes.
type Catalog struct {
	NivelesEducativos    []string            `yaml:"niveles_educativos"`
	CursosPorNivel       map[string][]string `yaml:"cursos_por_nivel_educativo"`
	AsignaturasPorNivel  map[string][]string `yaml:"asignaturas_por_nivel_educativo"`
	AsignaturasPermitidas []string           `yaml:"asignaturas_permitidas"`
	AsignaturaCompuesta  string              `yaml:"asignatura_compuesta"`
	EDMapping            map[string]string   `yaml:"ed_mapping"`
	DayMap               map[string]string   `yaml:"day_map"`
	SchoolNameMap        map[string]string   `yaml:"school_name_map"`
	GFormColsMap         map[string]string   `yaml:"gform_cols_map"`

	allowedSubjects map[string]struct{}
}

// Default retorna el catálogo con los vocabularios por defecto del sistema.
func Default() *Catalog {
	c := &Catalog{
		NivelesEducativos: []string{
			NivelInicial,
			NivelBasica,
			NivelBasicaMencion,
			NivelMedia,
			NivelTecnico,
			NivelEducDiferencial,
		},
		CursosPorNivel: map[string][]string{
			NivelInicial: {"PreKinder", "Kinder"},
			NivelBasica: {
				"1° Básico", "2° Básico", "3° Básico", "4° Básico",
				"5° Básico", "6° Básico", "7° Básico", "8° Básico",
			},
			NivelBasicaMencion: {
				"5° Básico", "6° Básico", "7° Básico", "8° Básico",
			},
			NivelMedia:   {"1° Medio", "2° Medio", "3° Medio", "4° Medio"},
			NivelTecnico: {"3° Medio", "4° Medio"},
			NivelEducDiferencial: {
				"PreKinder", "Kinder",
				"1° Básico", "2° Básico", "3° Básico", "4° Básico",
				"5° Básico", "6° Básico", "7° Básico", "8° Básico",
				"1° Medio", "2° Medio", "3° Medio", "4° Medio",
			},
		},
		AsignaturasPorNivel: map[string][]string{
			NivelBasica: {
				"Lenguaje y Comunicación", "Matemática", "Ciencias Naturales",
				"Historia", "Inglés", "Educación Física", "Artes Visuales",
				"Música y Artes",
			},
			NivelBasicaMencion: {
				"Lenguaje y Comunicación", "Matemática", "Ciencias Naturales",
				"Historia", "Inglés",
			},
			NivelMedia: {
				"Lenguaje y Comunicación", "Matemática", "Biología", "Física",
				"Química", "Historia", AsignaturaCompuesta, "Inglés",
				"Filosofía", "Educación Física", "Artes Visuales",
				"Música y Artes", "Formación Ciudadana", "Ciencias Sociales",
			},
			NivelTecnico: {"TP - Contabilidad"},
		},
		AsignaturasPermitidas: []string{
			"Artes Visuales",
			"Biología",
			"Ciencias Naturales",
			"Ciencias Sociales",
			"Educación Física",
			"Filosofía",
			"Física",
			"Formación Ciudadana",
			"Historia",
			"Inglés",
			"Lenguaje y Comunicación",
			"Matemática",
			"Música y Artes",
			"Química",
			"TP - Contabilidad",
		},
		AsignaturaCompuesta: AsignaturaCompuesta,
		EDMapping: map[string]string{
			"Educación Parvularia":                NivelInicial,
			"Educación Básica Generalista":        NivelBasica,
			"Educación Básica con Mención":        NivelBasicaMencion,
			"Educación Media [7° a IV medio]":     NivelMedia,
			"Educación Media Técnico Profesional": NivelTecnico,
			"Educación Diferencial":               NivelEducDiferencial,
		},
		// Días en inglés => español. El vocabulario canónico es el español.
		DayMap: map[string]string{
			"Monday":    "Lunes",
			"Tuesday":   "Martes",
			"Wednesday": "Miércoles",
			"Thursday":  "Jueves",
			"Friday":    "Viernes",
		},
		SchoolNameMap: map[string]string{},
		GFormColsMap: map[string]string{
			"Marca temporal":                        "created_at",
			"Dirección de correo electrónico":       "created_by",
			"Colegio":                               "school_name",
			"Nivel educativo":                       "nivel_educativo",
			"Asignatura":                            "asignatura",
			"Fecha de inicio del reemplazo":         "fecha_inicio",
			"Fecha de término del reemplazo":        "fecha_fin",
			"Cantidad de horas de contrato":         "horas_contrato",
		},
	}
	c.buildIndex()
	return c
}

// Load lee el archivo YAML de categorías. Si path está vacío se usan los
// valores por defecto; las claves presentes en el archivo reemplazan a las
// del catálogo por defecto.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: no se pudo leer %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("catalog: no se pudo parsear %s: %w", path, err)
	}
	c.buildIndex()
	return c, nil
}

func (c *Catalog) buildIndex() {
	c.allowedSubjects = make(map[string]struct{}, len(c.AsignaturasPermitidas))
	for _, s := range c.AsignaturasPermitidas {
		c.allowedSubjects[s] = struct{}{}
	}
}

// IsAllowedSubject indica si la asignatura pertenece a la lista oficial.
func (c *Catalog) IsAllowedSubject(subject string) bool {
	_, ok := c.allowedSubjects[subject]
	return ok
}

// NivelesQueExigenAsignatura retorna los niveles cuya búsqueda de candidatos
// exige coincidencia de asignaturas. Inicial y Educación Diferencial no
// tienen taxonomía de asignaturas.
func NivelesQueExigenAsignatura() map[string]struct{} {
	return map[string]struct{}{
		NivelBasica:        {},
		NivelBasicaMencion: {},
		NivelMedia:         {},
		NivelTecnico:       {},
	}
}

// WeekdayES traduce un día en inglés a español; los tokens desconocidos se
// devuelven tal cual para ser tolerantes con valores futuros.
func (c *Catalog) WeekdayES(day string) string {
	if es, ok := c.DayMap[day]; ok {
		return es
	}
	return day
}

// CanonicalWeekdays lista el vocabulario canónico de días hábiles, en orden.
func CanonicalWeekdays() []string {
	return []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}
}

// IsCanonicalWeekday indica si el token pertenece al vocabulario canónico.
func IsCanonicalWeekday(day string) bool {
	for _, d := range CanonicalWeekdays() {
		if d == day {
			return true
		}
	}
	return false
}
