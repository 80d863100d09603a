package calendar

import (
	"reflect"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDaysExcludesWeekends(t *testing.T) {
	c := New()

	// Lunes 2026-08-24 a domingo 2026-08-30: cinco días hábiles.
	got := c.BusinessDaysISO(date(2026, 8, 24), date(2026, 8, 30))
	want := []string{"2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27", "2026-08-28"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("días = %v, se esperaba %v", got, want)
	}
}

func TestBusinessDaysExcludesChileanHolidays(t *testing.T) {
	c := New()

	// Fiestas Patrias: 18 y 19 de septiembre son feriados.
	got := c.BusinessDaysISO(date(2026, 9, 17), date(2026, 9, 21))
	want := []string{"2026-09-17", "2026-09-21"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("días = %v, se esperaba %v", got, want)
	}
}

func TestBusinessDaysExcludesViernesSanto(t *testing.T) {
	c := New()

	// Pascua 2026 cae el 5 de abril: el viernes 3 es feriado.
	got := c.BusinessDaysISO(date(2026, 3, 30), date(2026, 4, 3))
	want := []string{"2026-03-30", "2026-03-31", "2026-04-01", "2026-04-02"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("días = %v, se esperaba %v", got, want)
	}
}

func TestFeriadosTrasladables(t *testing.T) {
	c := New()

	// San Pedro y San Pablo 2023 cayó jueves 29 de junio y se corrió al
	// lunes 26: el jueves queda hábil y el lunes no.
	got := c.BusinessDaysISO(date(2023, 6, 26), date(2023, 6, 30))
	want := []string{"2023-06-27", "2023-06-28", "2023-06-29", "2023-06-30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("días = %v, se esperaba %v", got, want)
	}

	// Iglesias Evangélicas 2018: el 31 de octubre cayó miércoles y se
	// corrió al viernes 2 de noviembre.
	got = c.BusinessDaysISO(date(2018, 10, 29), date(2018, 11, 2))
	want = []string{"2018-10-29", "2018-10-30", "2018-10-31"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("días = %v, se esperaba %v", got, want)
	}
}

func TestBusinessDaysInclusiveAndInvertedRange(t *testing.T) {
	c := New()

	single := c.BusinessDays(date(2026, 8, 26), date(2026, 8, 26))
	if len(single) != 1 {
		t.Errorf("rango de un día hábil debió dar 1, dio %d", len(single))
	}

	if got := c.BusinessDays(date(2026, 8, 28), date(2026, 8, 24)); len(got) != 0 {
		t.Errorf("rango invertido debió dar vacío, dio %v", got)
	}
}

func TestWeekdaysUniqueAndOrdered(t *testing.T) {
	c := New()

	// Dos semanas completas: cada día aparece una sola vez, en orden.
	got := c.Weekdays(date(2026, 8, 17), date(2026, 8, 28))
	want := []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("días de semana = %v, se esperaba %v", got, want)
	}
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(date(2026, 8, 31)); got != "Lunes" {
		t.Errorf("2026-08-31 = %q, se esperaba Lunes", got)
	}
}
