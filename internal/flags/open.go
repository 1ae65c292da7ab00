package flags

import (
	"context"
	"fmt"

	"github.com/albapepper/cricketfeed/internal/config"
	"github.com/albapepper/cricketfeed/internal/db"
)

// OpenStore builds the mapping store selected by FLAGS_STORE. The returned
// pool is non-nil only for the Postgres store and must be closed by the caller.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, *db.Pool, error) {
	switch cfg.FlagsStore {
	case config.FlagsStoreFile:
		return NewFileStore(cfg.MappingPath()), nil, nil
	case config.FlagsStoreMemory:
		return NewMemoryStore(NewMapping()), nil, nil
	case config.FlagsStorePostgres:
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect flag store: %w", err)
		}
		return NewPGStore(pool.Pool), pool, nil
	default:
		return nil, nil, fmt.Errorf("unknown flag store %q", cfg.FlagsStore)
	}
}
