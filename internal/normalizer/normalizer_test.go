package normalizer

import (
	"reflect"
	"testing"
	"time"

	"github.com/vmlandae/reemplazos-backend/internal/catalog"
	"github.com/vmlandae/reemplazos-backend/internal/models"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
}

func newTestNormalizer() *Normalizer {
	return NewWithClock(catalog.Default(), fixedNow)
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string // "" significa ausente
	}{
		{"+56 9 8765 4321", "+56987654321"},
		{"56987654321", "+56987654321"},
		{"987654321", "+56987654321"},
		{"87654321", "+56987654321"},
		{"9 8765-4321", "+56987654321"},
		{"12345", ""},
		{"", ""},
		{"123456789", ""}, // nueve dígitos que no parten con 9
	}

	for _, tc := range cases {
		got := NormalizePhone(tc.in)
		if tc.want == "" {
			if got != nil {
				t.Errorf("NormalizePhone(%q) = %q, se esperaba ausente", tc.in, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Errorf("NormalizePhone(%q) = %v, se esperaba %q", tc.in, got, tc.want)
		}
	}
}

func TestYearsSinceGraduation(t *testing.T) {
	today := fixedNow()

	if got := YearsSinceGraduation("15/12/2010", today); got == nil || *got != 16 {
		t.Errorf("2010 debió dar 16 años, dio %v", got)
	}
	if got := YearsSinceGraduation("01/01/2030", today); got == nil || *got != 0 {
		t.Errorf("fecha futura debió dar 0, dio %v", got)
	}
	if got := YearsSinceGraduation("01/01/1900", today); got != nil {
		t.Errorf("más de 80 años debió quedar ausente, dio %d", *got)
	}
	if got := YearsSinceGraduation("titulado en 2010", today); got != nil {
		t.Errorf("fecha ilegible debió quedar ausente, dio %d", *got)
	}
	if got := YearsSinceGraduation("", today); got != nil {
		t.Errorf("vacío debió quedar ausente, dio %d", *got)
	}
}

func TestParseSubjectsCompound(t *testing.T) {
	n := newTestNormalizer()

	subjects, unparsed := n.ParseSubjects("Matemática, Historia, geografía y Ciencias Sociales, Física")
	wantSubjects := []string{"Historia, geografía y Ciencias Sociales", "Matemática", "Física"}
	if !reflect.DeepEqual(subjects, wantSubjects) {
		t.Errorf("subjects = %v, se esperaba %v", subjects, wantSubjects)
	}
	if len(unparsed) != 0 {
		t.Errorf("no debió haber tokens sin reconocer, hubo %v", unparsed)
	}
}

func TestParseSubjectsUnrecognized(t *testing.T) {
	n := newTestNormalizer()

	subjects, unparsed := n.ParseSubjects("Matemática, Astrología, Química")
	if !reflect.DeepEqual(subjects, []string{"Matemática", "Química"}) {
		t.Errorf("subjects = %v", subjects)
	}
	if !reflect.DeepEqual(unparsed, []string{"Astrología"}) {
		t.Errorf("unparsed = %v", unparsed)
	}
}

func TestParseLevels(t *testing.T) {
	n := newTestNormalizer()

	got := n.ParseLevels("Educación Media [7° a IV medio], Educación Básica Generalista, Licenciatura en Astronomía")
	want := []string{catalog.NivelMedia, catalog.NivelBasica}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseLevels = %v, se esperaba %v", got, want)
	}
}

func TestNormalizeWeekdaysTranslation(t *testing.T) {
	n := newTestNormalizer()

	rows := []models.RawApplicant{
		{models.ColDiasDeLaSemana: "Monday, Wednesday, Friday", models.ColRUT: "1-9", models.ColEmail: "a@b.cl"},
	}
	got := n.Normalize(rows)
	want := []string{"Lunes", "Miércoles", "Viernes"}
	if !reflect.DeepEqual(got[0].DiasDisponibles, want) {
		t.Errorf("dias = %v, se esperaba %v", got[0].DiasDisponibles, want)
	}
}

func TestNormalizeWeekdaysShortCircuit(t *testing.T) {
	n := newTestNormalizer()

	// Si la columna completa ya está en español no se traduce nada.
	rows := []models.RawApplicant{
		{models.ColDiasDeLaSemana: "Lunes, Martes", models.ColRUT: "1-9", models.ColEmail: "a@b.cl"},
		{models.ColDiasDeLaSemana: "Viernes", models.ColRUT: "2-7", models.ColEmail: "b@b.cl"},
	}
	got := n.Normalize(rows)
	if !reflect.DeepEqual(got[0].DiasDisponibles, []string{"Lunes", "Martes"}) {
		t.Errorf("dias = %v", got[0].DiasDisponibles)
	}
}

func TestNormalizeWeekdaysUnknownTokenPassesThrough(t *testing.T) {
	n := newTestNormalizer()

	rows := []models.RawApplicant{
		{models.ColDiasDeLaSemana: "Monday, Feriados", models.ColRUT: "1-9", models.ColEmail: "a@b.cl"},
	}
	got := n.Normalize(rows)
	want := []string{"Lunes", "Feriados"}
	if !reflect.DeepEqual(got[0].DiasDisponibles, want) {
		t.Errorf("dias = %v, se esperaba %v", got[0].DiasDisponibles, want)
	}
}

func TestDedupeKeepsLastByRUTThenEmail(t *testing.T) {
	n := newTestNormalizer()

	rows := []models.RawApplicant{
		{models.ColRUT: "11.111.111-1", models.ColEmail: "Ana@Colegio.cl", models.ColNombre: "Ana v1"},
		{models.ColRUT: "nan", models.ColEmail: "sinrut@colegio.cl", models.ColNombre: "Sin RUT"},
		{models.ColRUT: "11.111.111-1", models.ColEmail: "ana@colegio.cl", models.ColNombre: "Ana v2"},
		{models.ColRUT: "22.222.222-2", models.ColEmail: "ana@colegio.cl", models.ColNombre: "Beto"},
	}
	got := n.Normalize(rows)

	// La fila de Ana v1 cae por RUT duplicado; luego Ana v2 cae frente a
	// Beto por email duplicado. La fila sin RUT sobrevive al final.
	if len(got) != 2 {
		t.Fatalf("se esperaban 2 filas, hubo %d: %+v", len(got), got)
	}
	if got[0].Nombre != "Beto" || got[0].RUT != "22.222.222-2" {
		t.Errorf("fila 0 = %+v", got[0])
	}
	if got[1].Nombre != "Sin RUT" || got[1].RUT != "" {
		t.Errorf("fila 1 = %+v", got[1])
	}
}

func TestDedupeMovesSurvivorToLastPosition(t *testing.T) {
	rows := []models.Applicant{
		{RUT: "11111111-1", Nombre: "Ana v1"},
		{RUT: "22222222-2", Nombre: "Beto"},
		{RUT: "11111111-1", Nombre: "Ana v2"},
	}

	// La fila superviviente queda donde estaba su última aparición, no
	// donde estaba la primera.
	got := DedupeByRUT(rows)
	if len(got) != 2 {
		t.Fatalf("se esperaban 2 filas, hubo %d: %+v", len(got), got)
	}
	if got[0].Nombre != "Beto" || got[1].Nombre != "Ana v2" {
		t.Errorf("orden = [%s, %s], se esperaba [Beto, Ana v2]", got[0].Nombre, got[1].Nombre)
	}

	byEmail := DedupeByEmail([]models.Applicant{
		{Email: "ana@colegio.cl", Nombre: "Ana v1"},
		{Email: "beto@colegio.cl", Nombre: "Beto"},
		{Email: "ana@colegio.cl", Nombre: "Ana v2"},
	})
	if len(byEmail) != 2 || byEmail[0].Nombre != "Beto" || byEmail[1].Nombre != "Ana v2" {
		t.Errorf("orden por email = %+v, se esperaba [Beto, Ana v2]", byEmail)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := newTestNormalizer()

	rows := []models.RawApplicant{
		{
			models.ColRUT:             "11.111.111-1",
			models.ColEmail:           "ana@colegio.cl",
			models.ColCelular:         "987654321",
			models.ColFechaTitulacion: "15/12/2015",
			models.ColNivelEducativo:  "Educación Media [7° a IV medio]",
			models.ColAsignatura:      "Matemática, Física",
			models.ColDiasDeLaSemana:  "Monday, Tuesday",
			models.ColDisponibilidad:  "Completa",
			models.ColGenero:          "Femenino",
		},
	}
	once := n.Normalize(rows)

	// Re-normalizar la salida canónica no cambia los campos que
	// sobreviven el viaje de ida y vuelta por la planilla.
	again := n.Normalize(rawFromApplicants(once))
	if len(again) != 1 {
		t.Fatalf("se esperaba 1 fila, hubo %d", len(again))
	}
	if again[0].RUT != once[0].RUT || again[0].Email != once[0].Email {
		t.Errorf("rut/email cambiaron: %+v vs %+v", once[0], again[0])
	}
	if again[0].Celular == nil || *again[0].Celular != *once[0].Celular {
		t.Errorf("celular cambió: %v vs %v", once[0].Celular, again[0].Celular)
	}
	if !reflect.DeepEqual(again[0].Asignaturas, once[0].Asignaturas) {
		t.Errorf("asignaturas cambiaron: %v vs %v", once[0].Asignaturas, again[0].Asignaturas)
	}
	if !reflect.DeepEqual(again[0].DiasDisponibles, once[0].DiasDisponibles) {
		t.Errorf("días cambiaron: %v vs %v", once[0].DiasDisponibles, again[0].DiasDisponibles)
	}
}

func rawFromApplicants(apps []models.Applicant) []models.RawApplicant {
	out := make([]models.RawApplicant, 0, len(apps))
	for _, a := range apps {
		row := models.RawApplicant{
			models.ColRUT:            a.RUT,
			models.ColEmail:          a.Email,
			models.ColNivelEducativo: "",
			models.ColAsignatura:     joinComma(a.Asignaturas),
			models.ColDiasDeLaSemana: joinComma(a.DiasDisponibles),
			models.ColDisponibilidad: a.Disponibilidad,
			models.ColGenero:         a.Genero,
		}
		if a.Celular != nil {
			row[models.ColCelular] = *a.Celular
		}
		out = append(out, row)
	}
	return out
}

func joinComma(xs []string) string {
	out := ""
	for i, x := range xs {
		if i > 0 {
			out += ", "
		}
		out += x
	}
	return out
}
