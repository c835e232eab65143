// Package sqlite reads table definitions from a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alexanderjulianmartinez/upload-watch/internal/source"
)

const defaultTimeout = 5 * time.Second

func init() {
	source.Register("sqlite", func(ctx context.Context, cfg source.Config) (source.Inspector, error) {
		return NewInspector(ctx, cfg.DSN)
	})
}

type Inspector struct {
	db      *sql.DB
	timeout time.Duration
}

// NewInspector opens dsn, a file path or "file:" URI.
func NewInspector(ctx context.Context, dsn string) (*Inspector, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return &Inspector{db: db, timeout: defaultTimeout}, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// FetchTable returns the column definitions of table in declaration order.
func (i *Inspector) FetchTable(ctx context.Context, table string) (*source.TableInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	rows, err := i.db.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(table)+")")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	info := &source.TableInfo{Name: table}
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		info.Columns = append(info.Columns, source.ColumnInfo{
			Name:     name,
			Type:     colType,
			Nullable: notNull == 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(info.Columns) == 0 {
		return nil, fmt.Errorf("%w: %s", source.ErrTableNotFound, table)
	}
	return info, nil
}

func (i *Inspector) Close() error {
	return i.db.Close()
}
