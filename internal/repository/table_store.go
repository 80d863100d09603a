package repository

import (
	"context"
)

// TableStore es la frontera con el almacenamiento de planillas: tablas
// planas de filas columna→celda. El resto del sistema lee y escribe filas ya
// serializadas y no sabe qué hay detrás.
type TableStore interface {
	// ReadTable retorna todas las filas de la tabla, en orden.
	ReadTable(ctx context.Context, table string) ([]map[string]string, error)
	// WriteTable reemplaza el contenido completo de la tabla.
	WriteTable(ctx context.Context, table string, rows []map[string]string) error
	// AppendRow agrega una fila al final de la tabla.
	AppendRow(ctx context.Context, table string, row map[string]string) error
}
