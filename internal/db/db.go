// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking. Only used when FLAGS_STORE=postgres.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/cricketfeed/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

const schema = `CREATE TABLE IF NOT EXISTS flag_mappings (
	flag_id    text PRIMARY KEY,
	team_name  text,
	image_path text
)`

// New creates and validates a new connection pool, creating the
// flag_mappings table if it does not exist yet.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepared statements reference flag_mappings, so the table must exist
	// before the first connection is handed out.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		if _, err := conn.Exec(ctx, schema); err != nil {
			return fmt.Errorf("create flag_mappings: %w", err)
		}
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, StmtHealthCheck).Scan(&n)
}

// Prepared statement names.
const (
	StmtHealthCheck        = "health_check"
	StmtFlagMappingsSelect = "flag_mappings_select"
	StmtFlagMappingsClear  = "flag_mappings_clear"
	StmtFlagMappingsInsert = "flag_mappings_insert"
)

// statements lists every prepared statement the flag store uses.
var statements = map[string]string{
	StmtHealthCheck:        "SELECT 1",
	StmtFlagMappingsSelect: "SELECT flag_id, team_name, image_path FROM flag_mappings ORDER BY flag_id",
	StmtFlagMappingsClear:  "DELETE FROM flag_mappings",
	StmtFlagMappingsInsert: "INSERT INTO flag_mappings (flag_id, team_name, image_path) VALUES ($1, $2, $3)",
}

func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range statements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
