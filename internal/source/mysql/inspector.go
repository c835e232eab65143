package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/alexanderjulianmartinez/upload-watch/internal/source"
)

const defaultTimeout = 5 * time.Second

func init() {
	source.Register("mysql", func(ctx context.Context, cfg source.Config) (source.Inspector, error) {
		return NewInspector(ctx, cfg.DSN, cfg.Database)
	})
}

type Inspector struct {
	db      *sql.DB
	schema  string
	timeout time.Duration
}

// NewInspector connects to dsn. An empty schema means the database named in
// the DSN.
func NewInspector(ctx context.Context, dsn string, schema string) (*Inspector, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql ping failed: %w", err)
	}

	return &Inspector{
		db:      db,
		schema:  schema,
		timeout: defaultTimeout,
	}, nil
}

func (i *Inspector) FetchSchema(ctx context.Context, tableName string) ([]source.ColumnInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	rows, err := i.db.QueryContext(ctx, `
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE()) AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`, i.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cols []source.ColumnInfo
	for rows.Next() {
		var name, dataType, nullable string
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			return nil, err
		}
		cols = append(cols, source.ColumnInfo{
			Name:     name,
			Type:     dataType,
			Nullable: nullable == "YES",
		})
	}
	return cols, rows.Err()
}

func (i *Inspector) Close() error {
	return i.db.Close()
}
