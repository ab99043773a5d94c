// Package storage defines the persistence capabilities the validation gate
// relies on. The gate only ever reads: it asks whether stored records share a
// value with a submission. Concrete backends (PostgreSQL, Supabase REST) live
// in sub-packages.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"dedupgate/pkg/domain"
)

// Lookup finds stored records by exact field value.
type Lookup interface {
	// LookupExact returns every record of collection whose field equals value,
	// in the backend's stable native order. An empty result is not an error.
	LookupExact(ctx context.Context, collection, field, value string) ([]domain.StoredRecord, error)
}

// Storage is a backend handle with lifecycle management.
type Storage interface {
	Lookup

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases any resources held by the backend (e.g. the underlying
	// connection pool). After Close, the instance should not be used.
	Close() error
}
