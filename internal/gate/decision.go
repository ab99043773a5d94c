package gate

import (
	"dedupgate/pkg/domain"
	"fmt"
	"strings"
)

// Decide turns the lookup outcome into a verdict. An invalid verdict comes
// with the rejection shown to the caller: one line per colliding field in the
// profile's message order, quoting the stored value, and the labels of those
// fields in the same order.
func Decide(p Profile, dups domain.DuplicateSet) (bool, *domain.Rejection) {
	if dups.Valid() {
		return true, nil
	}

	var msg strings.Builder
	msg.WriteString(p.Messages.Rejection)

	fields := make([]string, 0, len(p.MessageOrder))
	for _, field := range p.MessageOrder {
		d, ok := dups.Get(field)
		if !ok || d.Record == nil {
			continue
		}
		label := p.Catalog.Label(field)
		fmt.Fprintf(&msg, p.Catalog.DuplicateLine, label, d.Record.Value(field))
		fields = append(fields, label)
	}
	msg.WriteString(p.Messages.Resubmit)

	return false, &domain.Rejection{
		Message:        msg.String(),
		FieldsToChange: fields,
	}
}
