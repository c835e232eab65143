// Package postgres reads table definitions from PostgreSQL's
// information_schema through pgx.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexanderjulianmartinez/upload-watch/internal/source"
)

const (
	defaultSchema  = "public"
	defaultTimeout = 5 * time.Second
)

func init() {
	source.Register("postgres", func(ctx context.Context, cfg source.Config) (source.Inspector, error) {
		return NewInspector(ctx, cfg.DSN, cfg.Database)
	})
}

type Inspector struct {
	pool    *pgxpool.Pool
	schema  string
	timeout time.Duration
}

// NewInspector connects to dsn. schema defaults to "public".
func NewInspector(ctx context.Context, dsn, schema string) (*Inspector, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	if schema == "" {
		schema = defaultSchema
	}
	return &Inspector{pool: pool, schema: schema, timeout: defaultTimeout}, nil
}

// splitName separates an optional "schema." prefix from a table name.
func splitName(name, fallback string) (string, string) {
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i], name[i+1:]
	}
	return fallback, name
}

// FetchTable returns the column definitions of table in ordinal order. table
// may be qualified as "schema.table".
func (i *Inspector) FetchTable(ctx context.Context, table string) (*source.TableInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	schema, name := splitName(table, i.schema)
	rows, err := i.pool.Query(ctx, `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`, schema, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	info := &source.TableInfo{Name: table}
	for rows.Next() {
		var col, dataType, nullable string
		if err := rows.Scan(&col, &dataType, &nullable); err != nil {
			return nil, err
		}
		info.Columns = append(info.Columns, source.ColumnInfo{
			Name:     col,
			Type:     dataType,
			Nullable: nullable == "YES",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(info.Columns) == 0 {
		return nil, fmt.Errorf("%w: %s.%s", source.ErrTableNotFound, schema, name)
	}
	return info, nil
}

func (i *Inspector) Close() error {
	i.pool.Close()
	return nil
}
