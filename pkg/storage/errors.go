package storage

import "errors"

// Common errors returned by storage implementations.
var (
	// ErrUnknownCollection is returned when a lookup targets a collection the
	// backend does not expose.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrUnknownField is returned when a lookup filters on a field that is not
	// part of the stored record projection.
	ErrUnknownField = errors.New("unknown field")
)

// Collection names of the stored entities.
const (
	CollectionClients   = "sales_clients"
	CollectionCompanies = "companies"
)

var lookupFields = map[string]struct{}{ //nolint: gochecknoglobals
	"id":    {},
	"name":  {},
	"email": {},
	"phone": {},
}

// CheckLookup validates the collection and field of a lookup against the
// entities this service knows about.
func CheckLookup(collection, field string) error {
	if collection != CollectionClients && collection != CollectionCompanies {
		return ErrUnknownCollection
	}
	if _, ok := lookupFields[field]; !ok {
		return ErrUnknownField
	}

	return nil
}
