package matching

import (
	"github.com/vmlandae/reemplazos-backend/internal/catalog"
	"github.com/vmlandae/reemplazos-backend/internal/domain/valueobject"
	"github.com/vmlandae/reemplazos-backend/internal/models"
)

// Match filtra el pool canónico de postulantes según los criterios de una
// solicitud. Es una función pura: no modifica ni los criterios ni el pool,
// y cada filtro solo puede angostar el resultado. Un postulante con un campo
// ausente no califica para el filtro que lo usa.
func Match(c models.Criteria, applicants []models.Applicant) []models.Applicant {
	out := make([]models.Applicant, 0, len(applicants))
	for i := range applicants {
		if matches(c, &applicants[i]) {
			out = append(out, applicants[i])
		}
	}
	return out
}

func matches(c models.Criteria, a *models.Applicant) bool {
	// 1) Género: "Indiferente" (o vacío) no filtra.
	if c.Genero != "" && c.Genero != string(valueobject.GeneroIndiferente) {
		if a.Genero != c.Genero {
			return false
		}
	}

	// 2) Niveles educativos: basta una coincidencia.
	if len(c.NivelEducativo) > 0 && !intersects(c.NivelEducativo, a.NivelEducativo) {
		return false
	}

	// 3) Asignaturas: solo cuando la solicitud incluye niveles con
	// taxonomía de asignaturas; una solicitud sin asignaturas pedidas no
	// filtra.
	if requiresSubjects(c.NivelEducativo) && len(c.Asignaturas) > 0 {
		if !intersects(c.Asignaturas, a.Asignaturas) {
			return false
		}
	}

	// 4) Disponibilidad: Completa exige todos los días pedidos, Parcial al
	// menos uno. Sin días pedidos no se filtra.
	if len(c.DiasDeLaSemana) > 0 {
		if c.Disponibilidad == string(valueobject.DisponibilidadCompleta) {
			if !containsAll(a.DiasDisponibles, c.DiasDeLaSemana) {
				return false
			}
		} else {
			if !intersects(c.DiasDeLaSemana, a.DiasDisponibles) {
				return false
			}
		}
	}

	// 5) Años de egreso: un mínimo mayor que cero activa el filtro y
	// excluye a quien no tiene años de egreso conocidos.
	if c.MinAniosEgreso > 0 {
		if a.AniosEgreso == nil || *a.AniosEgreso < c.MinAniosEgreso {
			return false
		}
	}

	return true
}

func requiresSubjects(levels []string) bool {
	requiring := catalog.NivelesQueExigenAsignatura()
	for _, l := range levels {
		if _, ok := requiring[l]; ok {
			return true
		}
	}
	return false
}

func intersects(xs, ys []string) bool {
	for _, x := range xs {
		for _, y := range ys {
			if x == y {
				return true
			}
		}
	}
	return false
}

// containsAll indica si set contiene todos los elementos de required.
func containsAll(set, required []string) bool {
	for _, r := range required {
		found := false
		for _, s := range set {
			if s == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
