package domain

// PayloadKind tells how the free-form part of a submission was sent.
type PayloadKind int

const (
	// PayloadAbsent means no payload, or a falsy one (null, "", false, 0).
	PayloadAbsent PayloadKind = iota
	// PayloadObject means a JSON object, kept raw in Payload.Raw.
	PayloadObject
	// PayloadText means a string meant to describe a mapping, kept in Payload.Text.
	PayloadText
	// PayloadOther means any other truthy JSON value. It carries no fields.
	PayloadOther
)

// Payload is the optional description of the record to register.
type Payload struct {
	Kind PayloadKind
	Raw  []byte
	Text string
}

// Present reports whether the payload takes part in normalization.
func (p Payload) Present() bool { return p.Kind != PayloadAbsent }

// Submission is one request to validate a new client or company.
type Submission struct {
	// Fields holds the top-level request values by name. Empty values are
	// treated as absent.
	Fields  map[string]string
	Payload Payload
}

// Field returns the top-level value of the given name.
func (s Submission) Field(name string) string {
	return s.Fields[name]
}
