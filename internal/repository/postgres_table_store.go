package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vmlandae/reemplazos-backend/internal/repository/common"
)

// PostgresTableStore implementa TableStore sobre una tabla única de
// PostgreSQL: cada fila de planilla es un jsonb, con su tabla lógica y su
// posición.
type PostgresTableStore struct {
	db *sqlx.DB
}

func NewPostgresTableStore(db *sqlx.DB) *PostgresTableStore {
	return &PostgresTableStore{db: db}
}

type sheetRow struct {
	TableName string `db:"table_name"`
	Position  int    `db:"position"`
	Data      []byte `db:"data"`
}

// ReadTable retorna todas las filas de la tabla lógica, en orden.
func (s *PostgresTableStore) ReadTable(ctx context.Context, table string) ([]map[string]string, error) {
	query := `
		SELECT table_name, position, data
		FROM sheet_rows
		WHERE table_name = $1
		ORDER BY position ASC
	`

	var raw []sheetRow
	if err := s.db.SelectContext(ctx, &raw, query, table); err != nil {
		return nil, fmt.Errorf("table store: read %s: %w", table, err)
	}

	rows := make([]map[string]string, 0, len(raw))
	for _, r := range raw {
		var row map[string]string
		if err := json.Unmarshal(r.Data, &row); err != nil {
			return nil, fmt.Errorf("table store: fila corrupta en %s pos %d: %w", table, r.Position, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteTable reemplaza la tabla lógica completa dentro de una transacción.
func (s *PostgresTableStore) WriteTable(ctx context.Context, table string, rows []map[string]string) error {
	return common.WithTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_rows WHERE table_name = $1`, table); err != nil {
			return fmt.Errorf("table store: clear %s: %w", table, err)
		}

		inserter := common.NewBatchInserter(
			tx,
			`INSERT INTO sheet_rows (table_name, position, data)`,
			3,
			100,
		)
		for i, row := range rows {
			data, err := json.Marshal(row)
			if err != nil {
				return fmt.Errorf("table store: serializar fila %d de %s: %w", i, table, err)
			}
			if err := inserter.Add(ctx, table, i, data); err != nil {
				return fmt.Errorf("table store: write %s: %w", table, err)
			}
		}
		return inserter.Flush(ctx)
	})
}

// AppendRow agrega una fila al final de la tabla lógica.
func (s *PostgresTableStore) AppendRow(ctx context.Context, table string, row map[string]string) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("table store: serializar fila de %s: %w", table, err)
	}

	query := `
		INSERT INTO sheet_rows (table_name, position, data)
		SELECT $1, COALESCE(MAX(position), -1) + 1, $2
		FROM sheet_rows
		WHERE table_name = $1
	`
	if _, err := s.db.ExecContext(ctx, query, table, data); err != nil {
		return fmt.Errorf("table store: append %s: %w", table, err)
	}
	return nil
}
