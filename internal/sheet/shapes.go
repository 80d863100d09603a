package sheet

// Shape describe la forma de un campo en la planilla: cómo se serializa a
// celda de texto y cómo se reconstruye el valor tipado.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeList
	ShapeMapping
	ShapeDate
	ShapeTimestamp
	ShapeTime
	ShapeInt
)

// Formatos de celda.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
	TimeLayout      = "15:04"
)

// FieldShapes es el registro de formas por nombre de campo. Lo consultan la
// serialización y la deserialización: ambas direcciones deben coincidir o el
// viaje de ida y vuelta corrompe la fila. Los campos ausentes del registro
// son escalares.
var FieldShapes = map[string]Shape{
	"replacement_id": ShapeInt,
	"school_id":      ShapeInt,
	"horas_contrato": ShapeInt,
	"anios_egreso":   ShapeInt,

	"nivel_educativo":    ShapeList,
	"dias_seleccionados": ShapeList,
	"dias_de_la_semana":  ShapeList,

	"asignatura":             ShapeMapping,
	"curso":                  ShapeMapping,
	"horarios_seleccionados": ShapeMapping,

	"fecha_inicio": ShapeDate,
	"fecha_fin":    ShapeDate,

	"created_at":   ShapeTimestamp,
	"processed_at": ShapeTimestamp,
	"updated_at":   ShapeTimestamp,
}

// ShapeOf retorna la forma registrada del campo, o escalar si no está.
func ShapeOf(field string) Shape {
	if s, ok := FieldShapes[field]; ok {
		return s
	}
	return ShapeScalar
}
