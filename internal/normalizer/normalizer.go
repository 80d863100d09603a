package normalizer

import (
	"strings"
	"time"

	"github.com/vmlandae/reemplazos-backend/internal/catalog"
	"github.com/vmlandae/reemplazos-backend/internal/models"
)

// Normalizer limpia el pool crudo de postulantes y lo deja en la forma
// canónica que consumen el validador y el motor de matching. Cada campo se
// normaliza de forma independiente y best-effort: un valor ilegible deja el
// campo ausente, nunca descarta la fila completa.
type Normalizer struct {
	cat *catalog.Catalog
	now func() time.Time
}

func New(cat *catalog.Catalog) *Normalizer {
	return &Normalizer{cat: cat, now: time.Now}
}

// NewWithClock permite fijar el reloj en los tests.
func NewWithClock(cat *catalog.Catalog, now func() time.Time) *Normalizer {
	return &Normalizer{cat: cat, now: now}
}

// Normalize procesa el pool completo: normaliza campo a campo y luego
// deduplica por RUT y por email conservando la última aparición.
func (n *Normalizer) Normalize(rows []models.RawApplicant) []models.Applicant {
	out := make([]models.Applicant, 0, len(rows))
	translateDays := !n.weekdaysAlreadyCanonical(rows)

	for _, row := range rows {
		a := models.Applicant{
			RUT:            CanonicalRUT(row.Get(models.ColRUT)),
			Nombre:         strings.TrimSpace(row.Get(models.ColNombre)),
			Email:          CanonicalEmail(row.Get(models.ColEmail)),
			Celular:        NormalizePhone(row.Get(models.ColCelular)),
			AniosEgreso:    YearsSinceGraduation(row.Get(models.ColFechaTitulacion), n.now()),
			NivelEducativo: n.ParseLevels(row.Get(models.ColNivelEducativo)),
			Disponibilidad: strings.TrimSpace(row.Get(models.ColDisponibilidad)),
			Genero:         strings.TrimSpace(row.Get(models.ColGenero)),
			Comentarios:    strings.TrimSpace(row.Get(models.ColComentarios)),
		}
		a.Asignaturas, a.AsignaturasNoReconocidas = n.ParseSubjects(row.Get(models.ColAsignatura))
		a.DiasDisponibles = n.parseWeekdays(row.Get(models.ColDiasDeLaSemana), translateDays)
		a.Extra = extraColumns(row)
		out = append(out, a)
	}

	return DedupeByEmail(DedupeByRUT(out))
}

// NormalizePhone lleva un celular al formato +569XXXXXXXX. Se descartan los
// caracteres no numéricos y se acepta el número con o sin prefijo de país;
// cualquier otro largo deja el campo ausente.
func NormalizePhone(raw string) *string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	var phone string
	switch {
	case len(d) == 11 && strings.HasPrefix(d, "569"):
		phone = "+" + d
	case len(d) == 9 && strings.HasPrefix(d, "9"):
		phone = "+56" + d
	case len(d) == 8:
		phone = "+569" + d
	default:
		return nil
	}
	return &phone
}

// YearsSinceGraduation convierte una fecha de titulación dd/mm/aaaa en años
// de egreso. Una fecha ilegible o un valor fuera de rango (más de 80 años)
// deja el campo ausente; una fecha futura cuenta como 0.
func YearsSinceGraduation(raw string, today time.Time) *int {
	grad, err := time.Parse("2/1/2006", strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	if grad.After(today) {
		zero := 0
		return &zero
	}
	years := today.Year() - grad.Year()
	if years > 80 {
		return nil
	}
	return &years
}

// ParseSubjects separa el campo de asignaturas. La asignatura compuesta
// (que contiene comas) se extrae primero como unidad; el resto se separa por
// comas y se contrasta con la lista oficial. Los tokens no reconocidos se
// devuelven aparte.
func (n *Normalizer) ParseSubjects(raw string) (subjects, unparsed []string) {
	rest := strings.TrimSpace(raw)
	if rest == "" {
		return nil, nil
	}

	if strings.Contains(rest, n.cat.AsignaturaCompuesta) {
		subjects = append(subjects, n.cat.AsignaturaCompuesta)
		rest = strings.ReplaceAll(rest, n.cat.AsignaturaCompuesta, "")
	}

	for _, tok := range strings.Split(rest, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if n.cat.IsAllowedSubject(tok) {
			subjects = append(subjects, tok)
		} else {
			unparsed = append(unparsed, tok)
		}
	}
	return subjects, unparsed
}

// ParseLevels mapea las etiquetas de habilitación docente a niveles
// canónicos. Las etiquetas sin mapeo se descartan en silencio.
func (n *Normalizer) ParseLevels(raw string) []string {
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if nivel, ok := n.cat.EDMapping[tok]; ok {
			out = append(out, nivel)
		}
	}
	return out
}

// weekdaysAlreadyCanonical revisa la columna completa: si todos los tokens
// ya están en el vocabulario canónico no hay nada que traducir.
func (n *Normalizer) weekdaysAlreadyCanonical(rows []models.RawApplicant) bool {
	for _, row := range rows {
		for _, tok := range splitTokens(row.Get(models.ColDiasDeLaSemana)) {
			if !catalog.IsCanonicalWeekday(tok) {
				return false
			}
		}
	}
	return true
}

func (n *Normalizer) parseWeekdays(raw string, translate bool) []string {
	toks := splitTokens(raw)
	if !translate {
		return toks
	}
	for i, tok := range toks {
		toks[i] = n.cat.WeekdayES(tok)
	}
	return toks
}

// CanonicalRUT normaliza un RUT: mayúsculas, sin espacios, y los marcadores
// de nulo de la planilla ("NAN", "NONE") quedan vacíos.
func CanonicalRUT(raw string) string {
	rut := strings.ToUpper(strings.TrimSpace(raw))
	if rut == "NAN" || rut == "NONE" {
		return ""
	}
	return rut
}

// CanonicalEmail normaliza un email a minúsculas sin espacios.
func CanonicalEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// DedupeByRUT conserva la última fila por RUT, en la posición de su última
// aparición. Las filas sin RUT no se deduplican en este paso y quedan al
// final, en su orden original.
func DedupeByRUT(rows []models.Applicant) []models.Applicant {
	lastIdx := make(map[string]int)
	for i, a := range rows {
		if a.RUT != "" {
			lastIdx[a.RUT] = i
		}
	}

	var withRUT []models.Applicant
	var withoutRUT []models.Applicant
	for i, a := range rows {
		if a.RUT == "" {
			withoutRUT = append(withoutRUT, a)
			continue
		}
		if lastIdx[a.RUT] == i {
			withRUT = append(withRUT, a)
		}
	}
	return append(withRUT, withoutRUT...)
}

// DedupeByEmail conserva la última fila por email, en la posición de su
// última aparición.
func DedupeByEmail(rows []models.Applicant) []models.Applicant {
	lastIdx := make(map[string]int)
	for i, a := range rows {
		if a.Email != "" {
			lastIdx[a.Email] = i
		}
	}

	var out []models.Applicant
	for i, a := range rows {
		if a.Email != "" && lastIdx[a.Email] != i {
			continue
		}
		out = append(out, a)
	}
	return out
}

func splitTokens(raw string) []string {
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func extraColumns(row models.RawApplicant) map[string]string {
	known := map[string]struct{}{
		models.ColRUT: {}, models.ColNombre: {}, models.ColEmail: {},
		models.ColCelular: {}, models.ColFechaTitulacion: {},
		models.ColNivelEducativo: {}, models.ColAsignatura: {},
		models.ColDiasDeLaSemana: {}, models.ColDisponibilidad: {},
		models.ColGenero: {}, models.ColComentarios: {},
	}
	var extra map[string]string
	for k, v := range row {
		if _, ok := known[k]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[k] = v
	}
	return extra
}
