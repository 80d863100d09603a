package sheet

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/vmlandae/reemplazos-backend/internal/catalog"
)

// SerializeValue convierte un valor tipado en celda de texto según su forma.
// Los valores ausentes (nil, cero) quedan como celda vacía.
func SerializeValue(shape Shape, v any) string {
	if v == nil {
		return ""
	}

	switch shape {
	case ShapeList:
		xs, ok := v.([]string)
		if !ok || len(xs) == 0 {
			return ""
		}
		return strings.Join(xs, ", ")

	case ShapeMapping:
		m, ok := v.(map[string][]string)
		if !ok || len(m) == 0 {
			return ""
		}
		raw, err := json.Marshal(m)
		if err != nil {
			return ""
		}
		return string(raw)

	case ShapeDate:
		t, ok := v.(time.Time)
		if !ok || t.IsZero() {
			return ""
		}
		return t.Format(DateLayout)

	case ShapeTimestamp:
		t, ok := timeValue(v)
		if !ok || t.IsZero() {
			return ""
		}
		return t.Format(TimestampLayout)

	case ShapeTime:
		t, ok := v.(time.Time)
		if !ok || t.IsZero() {
			return ""
		}
		return t.Format(TimeLayout)

	case ShapeInt:
		n, ok := v.(int)
		if !ok {
			return ""
		}
		return strconv.Itoa(n)

	default:
		s, ok := v.(string)
		if ok {
			return s
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return strings.Trim(string(raw), `"`)
	}
}

// ParseList separa una celda en tokens por coma. Las listas no llevan
// comillas, así que los campos que pueden contener la asignatura compuesta
// usan ParseSubjectList en su lugar.
func ParseList(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(cell, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// ParseSubjectList separa una celda de asignaturas por coma preservando la
// asignatura compuesta, que tiene comas internas: se extrae entera antes de
// separar el resto.
func ParseSubjectList(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	var out []string
	if strings.Contains(cell, catalog.AsignaturaCompuesta) {
		out = append(out, catalog.AsignaturaCompuesta)
		cell = strings.ReplaceAll(cell, catalog.AsignaturaCompuesta, "")
	}
	return append(out, ParseList(cell)...)
}

// ParseMapping reconstruye un mapa nivel→valores desde JSON. Una celda
// ilegible deja el campo en su valor cero, nunca aborta la fila.
func ParseMapping(cell string) map[string][]string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	var m map[string][]string
	if err := json.Unmarshal([]byte(cell), &m); err != nil {
		return nil
	}
	return m
}

// ParseDate parsea una celda YYYY-MM-DD; el fallo deja fecha cero.
func ParseDate(cell string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(cell))
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseTimestamp parsea una celda YYYY-MM-DD HH:MM:SS; el fallo deja
// tiempo cero.
func ParseTimestamp(cell string) time.Time {
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(cell))
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseInt parsea una celda numérica; el fallo deja 0.
func ParseInt(cell string) int {
	n, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return 0
	}
	return n
}

func timeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	}
	return time.Time{}, false
}
