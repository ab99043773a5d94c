package v1handler_test

import (
	"dedupgate/internal/api/handler/v1handler"
	"dedupgate/internal/gate"
	"dedupgate/pkg/domain"
	"testing"

	"github.com/go-faster/jx"
	"github.com/stretchr/testify/require"
)

func encode(p gate.Profile, out *domain.Outcome) string {
	var e jx.Encoder
	v1handler.EncodeOutcome(&e, p, out)

	return e.String()
}

func TestEncodeOutcome_validWithoutPayload(t *testing.T) {
	p := gate.ClientProfile(catalog(t))

	got := encode(p, &domain.Outcome{
		IsValid:    true,
		Duplicates: domain.DuplicateSet{{Field: "email"}},
	})
	// member order and nulls for unchecked fields are part of the contract
	require.Equal(t, `{"isValid":true,"duplicates":{"email":null,"phone":null}}`, got)
}

func TestEncodeOutcome_registration(t *testing.T) {
	p := gate.CompanyProfile(catalog(t))

	got := encode(p, &domain.Outcome{
		IsValid:    true,
		Duplicates: domain.DuplicateSet{{Field: "email"}, {Field: "name"}},
		Registration: domain.NormalizedRecord{
			{Name: "name", Value: "Acme"},
			{Name: "stage", Value: "prospect"},
			{Name: "notes", Value: ""},
		},
		Message: "Empresa válida, listo para registro",
	})
	require.Equal(t, `{"isValid":true,"duplicates":{"email":null,"phone":null,"name":null},`+
		`"registrationData":{"name":"Acme","stage":"prospect","notes":""},`+
		`"message":"Empresa válida, listo para registro"}`, got)
}

func TestEncodeOutcome_registrationKeepsJSONValues(t *testing.T) {
	p := gate.ClientProfile(catalog(t))

	got := encode(p, &domain.Outcome{
		IsValid:    true,
		Duplicates: domain.DuplicateSet{{Field: "email"}},
		Registration: domain.NormalizedRecord{
			{Name: "name", Value: "Ana"},
			{Name: "phone", Value: "5551234", JSON: true},
			{Name: "notes", Value: `{"city":"Lima"}`, JSON: true},
			{Name: "company", Value: "123"},
		},
		Message: "Cliente válido, listo para registro",
	})
	require.Equal(t, `{"isValid":true,"duplicates":{"email":null,"phone":null},`+
		`"registrationData":{"name":"Ana","phone":5551234,"notes":{"city":"Lima"},"company":"123"},`+
		`"message":"Cliente válido, listo para registro"}`, got)
}

func TestEncodeOutcome_rejection(t *testing.T) {
	p := gate.ClientProfile(catalog(t))

	got := encode(p, &domain.Outcome{
		IsValid: false,
		Duplicates: domain.DuplicateSet{
			{Field: "email", Record: &domain.StoredRecord{ID: "1", Name: "Acme", Email: "a@x.com"}, Matches: 3},
			{Field: "phone"},
		},
		Rejection: &domain.Rejection{Message: "rejected", FieldsToChange: []string{"correo"}},
	})
	require.JSONEq(t, `{
		"isValid": false,
		"duplicates": {
			"email": {"id": "1", "name": "Acme", "email": "a@x.com", "phone": null},
			"phone": null
		},
		"errorMessage": "rejected",
		"requiresNewData": true,
		"fieldsToChange": ["correo"]
	}`, got)
}
