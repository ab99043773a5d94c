package gate_test

import (
	"dedupgate/internal/gate"
	"testing"

	"github.com/stretchr/testify/require"
)

var companyKeys = []string{"name", "email", "phone", "website", "industry", "size", "city", "country", "owner_name"}

func TestExtract_barePairs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]string
	}{
		{
			name: "shorthand",
			text: "name: Acme Corp, email: x@y.com, phone: 123",
			want: map[string]string{"name": "Acme Corp", "email": "x@y.com", "phone": "123"},
		},
		{
			name: "braces and urls",
			text: "{name: Acme, website: https://acme.com, city: Lima}",
			want: map[string]string{"name": "Acme", "website": "https://acme.com", "city": "Lima"},
		},
		{
			name: "owner name does not shadow name",
			text: "owner_name: Bob, name: Acme",
			want: map[string]string{"owner_name": "Bob", "name": "Acme"},
		},
		{
			name: "quoted keys and values",
			text: `{"name": "Acme", "size": 10,`,
			want: map[string]string{"name": "Acme", "size": "10"},
		},
		{
			name: "first occurrence wins",
			text: "name: First, name: Second",
			want: map[string]string{"name": "First"},
		},
		{
			name: "empty values are absent",
			text: "name: , email:   ,phone: 9",
			want: map[string]string{"phone": "9"},
		},
		{
			name: "line breaks end values",
			text: "name: Acme\nemail: hi@acme.com\r\ncountry: Perú",
			want: map[string]string{"name": "Acme", "email": "hi@acme.com", "country": "Perú"},
		},
		{
			name: "unknown keys ignored",
			text: "nombre: Acme, stage: won, industry: retail",
			want: map[string]string{"industry": "retail"},
		},
		{
			name: "stray quote does not hide later keys",
			text: `name: "Acme, email: x@y.com, phone: "123"`,
			want: map[string]string{"name": "Acme", "email": "x@y.com", "phone": "123"},
		},
		{
			name: "key prefix of a longer word",
			text: "names: many, cityname: x, city: Lima",
			want: map[string]string{"city": "Lima"},
		},
		{
			name: "no pairs",
			text: "just some text without structure",
			want: map[string]string{},
		},
		{
			name: "empty text",
			text: "",
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, gate.Extract(tt.text, gate.BarePairs, companyKeys))
		})
	}
}

func TestExtract_quotedPairs(t *testing.T) {
	keys := []string{"name", "email", "phone", "company"}

	tests := []struct {
		name string
		text string
		want map[string]string
	}{
		{
			name: "truncated json",
			text: `{"name": "Ana", "email": "ana@x.com", "phone": "555"`,
			want: map[string]string{"name": "Ana", "email": "ana@x.com", "phone": "555"},
		},
		{
			name: "unquoted values are rejected",
			text: `{"name": "Ana", "phone": 555, company: Acme}`,
			want: map[string]string{"name": "Ana"},
		},
		{
			name: "nested objects are scanned",
			text: `{"client": {"name": "Ana", "company": "Acme, Inc"}, oops}`,
			want: map[string]string{"name": "Ana", "company": "Acme, Inc"},
		},
		{
			name: "later quoted pair recovers a bare one",
			text: `name: Bob, "name": "Ana"`,
			want: map[string]string{"name": "Ana"},
		},
		{
			name: "empty quoted value is absent",
			text: `{"name": "", "email": "a@x.com"`,
			want: map[string]string{"email": "a@x.com"},
		},
		{
			name: "stray quote does not hide later keys",
			text: `{"name": "Ana "Jefa Pérez", "email": "ana@x.com", "phone": "555"}`,
			want: map[string]string{"name": "Ana ", "email": "ana@x.com", "phone": "555"},
		},
		{
			name: "keys are independent of order and position",
			text: `garbage "phone":"555" more "email" : "a@x.com" {"company": "Acme"`,
			want: map[string]string{"phone": "555", "email": "a@x.com", "company": "Acme"},
		},
		{
			name: "quoted key without colon is skipped",
			text: `"name" is "Bob", "name": "Ana"`,
			want: map[string]string{"name": "Ana"},
		},
		{
			name: "unterminated value",
			text: `{"name": "Ana`,
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, gate.Extract(tt.text, gate.QuotedPairs, keys))
		})
	}
}

func TestExtract_neverPanics(t *testing.T) {
	inputs := []string{`"`, `::::`, `{{{`, `"a":`, `a:"`, `,,,`, "ñ:é", `"":"x"`, "\x00\xff:"}
	for _, in := range inputs {
		require.NotPanics(t, func() {
			_ = gate.Extract(in, gate.BarePairs, companyKeys)
			_ = gate.Extract(in, gate.QuotedPairs, companyKeys)
		}, in)
	}
}
