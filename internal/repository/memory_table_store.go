package repository

import (
	"context"
	"sync"
)

// MemoryTableStore implementa TableStore en memoria, para tests y para
// correr sin base de datos.
type MemoryTableStore struct {
	mu     sync.RWMutex
	tables map[string][]map[string]string
}

func NewMemoryTableStore() *MemoryTableStore {
	return &MemoryTableStore{tables: make(map[string][]map[string]string)}
}

func (s *MemoryTableStore) ReadTable(_ context.Context, table string) ([]map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.tables[table]
	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		out[i] = copyRow(row)
	}
	return out, nil
}

func (s *MemoryTableStore) WriteTable(_ context.Context, table string, rows []map[string]string) error {
	copied := make([]map[string]string, len(rows))
	for i, row := range rows {
		copied[i] = copyRow(row)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = copied
	return nil
}

func (s *MemoryTableStore) AppendRow(_ context.Context, table string, row map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], copyRow(row))
	return nil
}

func copyRow(row map[string]string) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
