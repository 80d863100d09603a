package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
)

// Feriados nacionales de Chile, definidos con el mismo patrón que los
// paquetes de país de rickar/cal (la librería no trae uno para Chile).
//
// Los feriados trasladables (Ley 19.973) se corren al lunes anterior cuando
// caen martes, miércoles o jueves. El Día de las Iglesias Evangélicas
// (Ley 20.299) se corre al viernes más cercano cuando el 31 de octubre cae
// martes o miércoles.
var (
	anoNuevo = aa.NewYear.Clone(&cal.Holiday{Name: "Año Nuevo", Type: cal.ObservancePublic})

	viernesSanto = aa.GoodFriday.Clone(&cal.Holiday{Name: "Viernes Santo", Type: cal.ObservancePublic})

	sabadoSanto = &cal.Holiday{
		Name:   "Sábado Santo",
		Type:   cal.ObservancePublic,
		Offset: -1,
		Func:   cal.CalcEasterOffset,
	}

	diaDelTrabajo = aa.WorkersDay.Clone(&cal.Holiday{Name: "Día Nacional del Trabajo", Type: cal.ObservancePublic})

	gloriasNavales = &cal.Holiday{
		Name:  "Día de las Glorias Navales",
		Type:  cal.ObservancePublic,
		Month: time.May,
		Day:   21,
		Func:  cal.CalcDayOfMonth,
	}

	pueblosIndigenas = &cal.Holiday{
		Name:      "Día Nacional de los Pueblos Indígenas",
		Type:      cal.ObservancePublic,
		StartYear: 2021,
		Month:     time.June,
		Func:      calcSolsticioInvierno,
	}

	sanPedroYSanPablo = &cal.Holiday{
		Name:  "San Pedro y San Pablo",
		Type:  cal.ObservancePublic,
		Month: time.June,
		Day:   29,
		Observed: []cal.AltDay{
			{Day: time.Tuesday, Offset: -1},
			{Day: time.Wednesday, Offset: -2},
			{Day: time.Thursday, Offset: -3},
		},
		Func: cal.CalcDayOfMonth,
	}

	virgenDelCarmen = &cal.Holiday{
		Name:  "Día de la Virgen del Carmen",
		Type:  cal.ObservancePublic,
		Month: time.July,
		Day:   16,
		Func:  cal.CalcDayOfMonth,
	}

	asuncionDeLaVirgen = aa.AssumptionOfMary.Clone(&cal.Holiday{Name: "Asunción de la Virgen", Type: cal.ObservancePublic})

	independenciaNacional = &cal.Holiday{
		Name:  "Independencia Nacional",
		Type:  cal.ObservancePublic,
		Month: time.September,
		Day:   18,
		Func:  cal.CalcDayOfMonth,
	}

	gloriasDelEjercito = &cal.Holiday{
		Name:  "Día de las Glorias del Ejército",
		Type:  cal.ObservancePublic,
		Month: time.September,
		Day:   19,
		Func:  cal.CalcDayOfMonth,
	}

	encuentroDeDosMundos = &cal.Holiday{
		Name:  "Encuentro de Dos Mundos",
		Type:  cal.ObservancePublic,
		Month: time.October,
		Day:   12,
		Observed: []cal.AltDay{
			{Day: time.Tuesday, Offset: -1},
			{Day: time.Wednesday, Offset: -2},
			{Day: time.Thursday, Offset: -3},
		},
		Func: cal.CalcDayOfMonth,
	}

	iglesiasEvangelicas = &cal.Holiday{
		Name:  "Día de las Iglesias Evangélicas y Protestantes",
		Type:  cal.ObservancePublic,
		Month: time.October,
		Day:   31,
		Observed: []cal.AltDay{
			{Day: time.Tuesday, Offset: -4},
			{Day: time.Wednesday, Offset: 2},
		},
		Func: cal.CalcDayOfMonth,
	}

	todosLosSantos = aa.AllSaintsDay.Clone(&cal.Holiday{Name: "Día de Todos los Santos", Type: cal.ObservancePublic})

	inmaculadaConcepcion = aa.ImmaculateConception.Clone(&cal.Holiday{Name: "Inmaculada Concepción", Type: cal.ObservancePublic})

	navidad = aa.ChristmasDay.Clone(&cal.Holiday{Name: "Navidad", Type: cal.ObservancePublic})

	feriadosChile = []*cal.Holiday{
		anoNuevo,
		viernesSanto,
		sabadoSanto,
		diaDelTrabajo,
		gloriasNavales,
		pueblosIndigenas,
		sanPedroYSanPablo,
		virgenDelCarmen,
		asuncionDeLaVirgen,
		independenciaNacional,
		gloriasDelEjercito,
		encuentroDeDosMundos,
		iglesiasEvangelicas,
		todosLosSantos,
		inmaculadaConcepcion,
		navidad,
	}
)

// solsticioInvierno fija el día de junio decretado para el feriado de los
// Pueblos Indígenas en los años ya publicados.
var solsticioInvierno = map[int]int{
	2021: 21,
	2022: 21,
	2023: 21,
	2024: 20,
	2025: 20,
	2026: 21,
	2027: 21,
	2028: 20,
}

func calcSolsticioInvierno(h *cal.Holiday, year int) time.Time {
	day := 21
	if d, ok := solsticioInvierno[year]; ok {
		day = d
	}
	return time.Date(year, time.June, day, 0, 0, 0, 0, time.UTC)
}
