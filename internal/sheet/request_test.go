package sheet

import (
	"reflect"
	"testing"
	"time"

	"github.com/vmlandae/reemplazos-backend/internal/domain/valueobject"
	"github.com/vmlandae/reemplazos-backend/internal/models"
)

func sampleRequest() *models.Request {
	processed := time.Date(2026, 9, 2, 10, 30, 0, 0, time.UTC)
	return &models.Request{
		ReplacementID:  7,
		SchoolID:       3,
		SchoolName:     "Colegio Los Aromos",
		CreatedBy:      "directora@aromos.cl",
		NivelEducativo: []string{"Media", "Técnico Profesional"},
		Asignatura: map[string][]string{
			"Media": {"Matemática", "Física"},
		},
		Curso: map[string][]string{
			"Media": {"1° Medio", "2° Medio"},
		},
		FechaInicio:       time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		FechaFin:          time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
		DiasSeleccionados: []string{"2026-09-07", "2026-09-08", "2026-09-09"},
		DiasDeLaSemana:    []string{"Lunes", "Martes", "Miércoles"},
		Jefatura:          models.JefaturaNoAplica,
		HorasContrato:     44,
		Genero:            "Indiferente",
		AniosEgreso:       2,
		Disponibilidad:    "Parcial",
		Status:            valueobject.RequestStatusCreada,
		CreatedWith:       models.CreatedWithWebApp,
		CreatedAt:         time.Date(2026, 9, 1, 9, 15, 0, 0, time.UTC),
		ProcessedAt:       &processed,
	}
}

func TestSerializeRequestCellFormats(t *testing.T) {
	row := SerializeRequest(sampleRequest())

	cases := map[string]string{
		"replacement_id":     "7",
		"nivel_educativo":    "Media, Técnico Profesional",
		"fecha_inicio":       "2026-09-07",
		"dias_seleccionados": "2026-09-07, 2026-09-08, 2026-09-09",
		"created_at":         "2026-09-01 09:15:00",
		"processed_at":       "2026-09-02 10:30:00",
		"updated_at":         "",
		"status":             "creada",
		"comentarios":        "",
	}
	for col, want := range cases {
		if got := row[col]; got != want {
			t.Errorf("columna %s = %q, se esperaba %q", col, got, want)
		}
	}

	// Los mapas van como JSON, así que el viaje de vuelta debe reconstruirlos.
	if got := ParseMapping(row["asignatura"]); !reflect.DeepEqual(got, map[string][]string{"Media": {"Matemática", "Física"}}) {
		t.Errorf("asignatura no sobrevivió el JSON: %q -> %v", row["asignatura"], got)
	}
}

func TestRequestRoundTrip(t *testing.T) {
	orig := sampleRequest()
	got := DeserializeRequest(SerializeRequest(orig))

	if !reflect.DeepEqual(got, orig) {
		t.Errorf("la solicitud no sobrevivió el viaje de ida y vuelta:\norig: %+v\ngot:  %+v", orig, got)
	}
}

func TestDeserializeRequestBadCellsDegradeToZero(t *testing.T) {
	row := SerializeRequest(sampleRequest())
	row["fecha_inicio"] = "7 de septiembre"
	row["asignatura"] = "{json roto"
	row["horas_contrato"] = "muchas"

	req := DeserializeRequest(row)

	if !req.FechaInicio.IsZero() {
		t.Errorf("fecha ilegible debió quedar en cero, quedó %v", req.FechaInicio)
	}
	if req.Asignatura != nil {
		t.Errorf("mapa ilegible debió quedar nil, quedó %v", req.Asignatura)
	}
	if req.HorasContrato != 0 {
		t.Errorf("horas ilegibles debieron quedar en 0, quedaron %d", req.HorasContrato)
	}
	// El resto de la fila sobrevive.
	if req.SchoolName != "Colegio Los Aromos" || req.ReplacementID != 7 {
		t.Errorf("los campos sanos no debieron perderse: %+v", req)
	}
}

func TestDeserializeRequestUnknownColumnsPassThrough(t *testing.T) {
	row := SerializeRequest(sampleRequest())
	row["columna_nueva"] = "valor libre"

	req := DeserializeRequest(row)
	if req.Extra["columna_nueva"] != "valor libre" {
		t.Errorf("columna desconocida no se conservó: %v", req.Extra)
	}

	// Y vuelve a salir al serializar.
	out := SerializeRequest(req)
	if out["columna_nueva"] != "valor libre" {
		t.Errorf("columna desconocida no volvió a la fila: %v", out)
	}
}

func TestApplicantRoundTrip(t *testing.T) {
	cel := "+56987654321"
	anios := 5
	orig := &models.Applicant{
		RUT:             "11.111.111-1",
		Nombre:          "Ana Rojas",
		Email:           "ana@colegio.cl",
		Celular:         &cel,
		AniosEgreso:     &anios,
		NivelEducativo:  []string{"Media"},
		Asignaturas:     []string{"Matemática", "Física"},
		DiasDisponibles: []string{"Lunes", "Viernes"},
		Disponibilidad:  "Completa",
		Genero:          "Femenino",
		Validado:        true,
	}

	got := DeserializeApplicant(SerializeApplicant(orig))
	if !reflect.DeepEqual(got, orig) {
		t.Errorf("el postulante no sobrevivió el viaje de ida y vuelta:\norig: %+v\ngot:  %+v", orig, got)
	}
}

func TestApplicantAbsentFieldsStayAbsent(t *testing.T) {
	orig := &models.Applicant{RUT: "2-7", Email: "b@b.cl"}
	got := DeserializeApplicant(SerializeApplicant(orig))

	if got.Celular != nil {
		t.Errorf("celular ausente volvió con valor %q", *got.Celular)
	}
	if got.AniosEgreso != nil {
		t.Errorf("años de egreso ausentes volvieron con valor %d", *got.AniosEgreso)
	}
}
