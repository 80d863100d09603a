package models

import (
	"time"

	"github.com/vmlandae/reemplazos-backend/internal/domain/valueobject"
)

// Request es una solicitud de reemplazo docente. Los mapas de asignatura,
// curso y horarios van indexados por nivel educativo o por día según el
// formulario original.
type Request struct {
	ReplacementID int    `json:"replacement_id"`
	SchoolID      int    `json:"school_id"`
	SchoolName    string `json:"school_name"`
	CreatedBy     string `json:"created_by"`

	NivelEducativo []string            `json:"nivel_educativo"`
	Asignatura     map[string][]string `json:"asignatura"`
	Curso          map[string][]string `json:"curso"`

	FechaInicio time.Time `json:"fecha_inicio"`
	FechaFin    time.Time `json:"fecha_fin"`
	// DiasSeleccionados son fechas ISO (YYYY-MM-DD) hábiles dentro del rango.
	DiasSeleccionados []string `json:"dias_seleccionados"`
	// DiasDeLaSemana son los días de semana canónicos en español.
	DiasDeLaSemana       []string            `json:"dias_de_la_semana"`
	HorariosSeleccionados map[string][]string `json:"horarios_seleccionados,omitempty"`

	Jefatura                     string `json:"jefatura"`
	HorasContrato                int    `json:"horas_contrato"`
	MencionEspecialidadPostitulo string `json:"mencion_especialidad_postitulo,omitempty"`
	VacanteConfidencial          string `json:"vacante_confidencial,omitempty"`

	Genero             string `json:"genero,omitempty"`
	AniosEgreso        int    `json:"anios_egreso"`
	Disponibilidad     string `json:"disponibilidad,omitempty"`
	CandidatoPreferido string `json:"candidato_preferido,omitempty"`
	OtrasPreferencias  string `json:"otras_preferencias,omitempty"`
	Comentarios        string `json:"comentarios,omitempty"`

	Status      valueobject.RequestStatus `json:"status"`
	CreatedWith string                    `json:"created_with"`
	CreatedAt   time.Time                 `json:"created_at"`
	ProcessedAt *time.Time                `json:"processed_at,omitempty"`
	UpdatedAt   *time.Time                `json:"updated_at,omitempty"`

	// Extra conserva columnas desconocidas de la planilla tal cual.
	Extra map[string]string `json:"-"`
}

// GFormKey identifica una solicitud importada del formulario externo para
// deduplicar contra lo ya persistido.
func (r *Request) GFormKey() string {
	return r.CreatedAt.Format("2006-01-02 15:04:05") + "|" + r.CreatedBy + "|" + r.SchoolName
}

// Niveles retorna el slice de niveles educativos sin duplicados, en orden.
func (r *Request) Niveles() []string {
	seen := make(map[string]struct{}, len(r.NivelEducativo))
	out := make([]string, 0, len(r.NivelEducativo))
	for _, n := range r.NivelEducativo {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
