package postgres

import (
	"database/sql"
	"dedupgate/pkg/domain"
	"time"

	"github.com/google/uuid"
)

// PgRecord is the lookup projection shared by sales_clients and companies.
type PgRecord struct {
	ID    uuid.UUID      `db:"id"`
	Name  sql.NullString `db:"name"`
	Email sql.NullString `db:"email"`
	Phone sql.NullString `db:"phone"`

	CreatedAt time.Time `db:"created_at"`
}

func (p *PgRecord) ToDomain() domain.StoredRecord {
	return domain.StoredRecord{
		ID:    p.ID.String(),
		Name:  p.Name.String,
		Email: p.Email.String,
		Phone: p.Phone.String,
	}
}

func pgRecordsToDomain(rows []PgRecord) []domain.StoredRecord {
	res := make([]domain.StoredRecord, 0, len(rows))
	for i := range rows {
		res = append(res, rows[i].ToDomain())
	}

	return res
}
