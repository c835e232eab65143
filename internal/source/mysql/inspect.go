package mysql

import (
	"context"
	"fmt"

	"github.com/alexanderjulianmartinez/upload-watch/internal/source"
)

// FetchTable returns the column definitions of tableName in ordinal order.
func (i *Inspector) FetchTable(ctx context.Context, tableName string) (*source.TableInfo, error) {
	cols, err := i.FetchSchema(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", source.ErrTableNotFound, tableName)
	}
	return &source.TableInfo{
		Name:    tableName,
		Columns: cols,
	}, nil
}
