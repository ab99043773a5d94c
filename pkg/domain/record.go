package domain

// Identifying field names shared by every collection.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
)

// StoredRecord is the projection of an existing client or company returned by
// an exact-match lookup.
type StoredRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Value returns the stored value of one of the identifying fields, or an empty
// string for any other field name.
func (r StoredRecord) Value(field string) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	default:
		return ""
	}
}

// Duplicate is the lookup outcome of one checked field. Record is nil when no
// stored record shares the submitted value.
type Duplicate struct {
	Field string
	// Record is the first match in the store's order.
	Record *StoredRecord
	// Matches is the total number of stored records sharing the value.
	Matches int
}

// DuplicateSet holds one entry per checked field in check order. Fields that
// were empty in the submission are never checked and have no entry.
type DuplicateSet []Duplicate

// Get returns the entry of the given field and whether the field was checked.
func (s DuplicateSet) Get(field string) (Duplicate, bool) {
	for _, d := range s {
		if d.Field == field {
			return d, true
		}
	}

	return Duplicate{}, false
}

// Collides reports whether the given field was checked and matched a stored
// record.
func (s DuplicateSet) Collides(field string) bool {
	d, ok := s.Get(field)

	return ok && d.Record != nil
}

// Valid reports whether no checked field collides.
func (s DuplicateSet) Valid() bool {
	for _, d := range s {
		if d.Record != nil {
			return false
		}
	}

	return true
}
