package domain

// RecordField is one resolved field of a normalized record.
type RecordField struct {
	Name  string
	Value string
	// JSON marks a Value that is a JSON literal (number, true, object or
	// array) taken from a structured payload, to be reproduced as is.
	JSON bool
}

// NormalizedRecord is the record prepared for persistence, in output order.
type NormalizedRecord []RecordField

// Get returns the value of the named field and whether it was resolved.
func (r NormalizedRecord) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}

	return "", false
}

// Rejection explains why a submission cannot be registered.
type Rejection struct {
	Message string
	// FieldsToChange lists the localized labels of the colliding fields.
	FieldsToChange []string
}

// Outcome is the result of validating a submission.
type Outcome struct {
	IsValid    bool
	Duplicates DuplicateSet
	// Rejection is set only when IsValid is false.
	Rejection *Rejection
	// Registration is set only for valid submissions carrying a payload.
	Registration NormalizedRecord
	// Message accompanies Registration.
	Message string
}
