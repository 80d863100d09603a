package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
)

// weekdayES traduce time.Weekday al vocabulario canónico en español.
var weekdayES = map[time.Weekday]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// Calendar calcula días hábiles chilenos: de lunes a viernes, excluyendo
// los feriados nacionales.
type Calendar struct {
	cal *cal.BusinessCalendar
}

func New() *Calendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(feriadosChile...)
	return &Calendar{cal: c}
}

// BusinessDays retorna los días hábiles entre ambas fechas, inclusive.
// Un rango invertido retorna vacío.
func (c *Calendar) BusinessDays(from, to time.Time) []time.Time {
	var out []time.Time
	from = truncate(from)
	to = truncate(to)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if c.cal.IsWorkday(d) {
			out = append(out, d)
		}
	}
	return out
}

// BusinessDaysISO retorna los días hábiles del rango en formato YYYY-MM-DD.
func (c *Calendar) BusinessDaysISO(from, to time.Time) []string {
	days := c.BusinessDays(from, to)
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}

// Weekdays retorna los nombres de día en español de los días hábiles del
// rango, sin duplicados y en orden de semana.
func (c *Calendar) Weekdays(from, to time.Time) []string {
	present := make(map[string]struct{})
	for _, d := range c.BusinessDays(from, to) {
		present[weekdayES[d.Weekday()]] = struct{}{}
	}

	var out []string
	for _, name := range []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"} {
		if _, ok := present[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// WeekdayName retorna el nombre en español del día de la fecha.
func WeekdayName(d time.Time) string {
	return weekdayES[d.Weekday()]
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
