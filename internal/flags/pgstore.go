package flags

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/cricketfeed/internal/db"
)

// PGStore persists the mapping in the flag_mappings table. The statements it
// uses are prepared on every pool connection by db.New.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a Postgres-backed store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Load reads every row into a Mapping.
func (s *PGStore) Load(ctx context.Context) (Mapping, error) {
	rows, err := s.pool.Query(ctx, db.StmtFlagMappingsSelect)
	if err != nil {
		return Mapping{}, fmt.Errorf("query flag mappings: %w", err)
	}
	defer rows.Close()

	m := NewMapping()
	for rows.Next() {
		var id string
		var name, path *string
		if err := rows.Scan(&id, &name, &path); err != nil {
			return Mapping{}, fmt.Errorf("scan flag mapping: %w", err)
		}
		if name != nil {
			m.IDToName[id] = *name
		}
		if path != nil {
			m.IDToPath[id] = *path
		}
	}
	if err := rows.Err(); err != nil {
		return Mapping{}, fmt.Errorf("iterate flag mappings: %w", err)
	}
	return m, nil
}

// Save replaces the table contents in one transaction, so concurrent readers
// see either the old or the new mapping.
func (s *PGStore) Save(ctx context.Context, m Mapping) error {
	ids := make(map[string]struct{}, len(m.IDToName)+len(m.IDToPath))
	for id := range m.IDToName {
		ids[id] = struct{}{}
	}
	for id := range m.IDToPath {
		ids[id] = struct{}{}
	}
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, db.StmtFlagMappingsClear); err != nil {
			return fmt.Errorf("clear flag mappings: %w", err)
		}

		batch := &pgx.Batch{}
		for _, id := range sorted {
			batch.Queue(db.StmtFlagMappingsInsert, id, nullable(m.IDToName, id), nullable(m.IDToPath, id))
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert flag mappings: %w", err)
		}
		return nil
	})
}

func nullable(m map[string]string, key string) *string {
	if v, ok := m[key]; ok {
		return &v
	}
	return nil
}
