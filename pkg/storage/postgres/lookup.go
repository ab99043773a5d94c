package postgres

import (
	"context"
	"dedupgate/pkg/domain"
	"dedupgate/pkg/storage"
	"fmt"

	"github.com/doug-martin/goqu/v9"
)

// LookupExact returns the records of collection whose field equals value,
// oldest first.
func (p *PgSQL) LookupExact(ctx context.Context, collection, field, value string) ([]domain.StoredRecord, error) {
	if err := storage.CheckLookup(collection, field); err != nil {
		return nil, fmt.Errorf("could not look up %s.%s: %w", collection, field, err)
	}

	var rows []PgRecord
	if err := p.Builder.From(collection).
		Select(&PgRecord{}).
		Where(goqu.I(field).Eq(value)).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not look up %s.%s in pg: %w", collection, field, err)
	}

	return pgRecordsToDomain(rows), nil
}
