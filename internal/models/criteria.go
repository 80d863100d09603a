package models

// Criteria es la vista aplanada de una solicitud que consume el motor de
// matching. Se construye desde la solicitud pero puede editarse para una
// búsqueda exploratoria sin tocar la solicitud original.
type Criteria struct {
	Genero         string   `json:"genero,omitempty"`
	NivelEducativo []string `json:"nivel_educativo"`
	Asignaturas    []string `json:"asignatura"`
	DiasDeLaSemana []string `json:"dias_de_la_semana"`
	Disponibilidad string   `json:"disponibilidad,omitempty"`
	// MinAniosEgreso: 0 desactiva el filtro de años de egreso.
	MinAniosEgreso int `json:"anios_egreso"`
}

// CriteriaFromRequest aplana los mapas nivel→asignaturas de la solicitud en
// los filtros del motor. No modifica la solicitud.
func CriteriaFromRequest(req *Request) Criteria {
	c := Criteria{
		Genero:         req.Genero,
		NivelEducativo: append([]string(nil), req.NivelEducativo...),
		DiasDeLaSemana: append([]string(nil), req.DiasDeLaSemana...),
		Disponibilidad: req.Disponibilidad,
		MinAniosEgreso: req.AniosEgreso,
	}

	seen := make(map[string]struct{})
	for _, nivel := range req.NivelEducativo {
		for _, asig := range req.Asignatura[nivel] {
			if _, ok := seen[asig]; ok {
				continue
			}
			seen[asig] = struct{}{}
			c.Asignaturas = append(c.Asignaturas, asig)
		}
	}
	return c
}
