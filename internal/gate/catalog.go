package gate

import (
	"dedupgate/pkg/domain"
	"fmt"
)

// DefaultLocale is the locale of the catalog used when none is configured.
const DefaultLocale = "es"

// EntityMessages are the texts specific to one kind of submission.
type EntityMessages struct {
	// Rejection opens the explanation of a collision.
	Rejection string
	// Resubmit closes the explanation of a collision.
	Resubmit string
	// Valid accompanies a normalized record.
	Valid string
}

// Catalog holds every caller-visible text of the gate for one locale.
type Catalog struct {
	// Labels names identifying fields in messages and in fieldsToChange.
	Labels map[string]string
	// DuplicateLine formats one collision line from a label and the stored value.
	DuplicateLine string
	// NoCompany is the default company of a client record.
	NoCompany string
	// LookupFailed is returned when the store fails.
	LookupFailed string
	// Internal is returned for any other failure.
	Internal string

	Client  EntityMessages
	Company EntityMessages
}

// Label returns the localized label of field, or field itself.
func (c Catalog) Label(field string) string {
	if l, ok := c.Labels[field]; ok {
		return l
	}

	return field
}

var catalogs = map[string]Catalog{ //nolint: gochecknoglobals
	"es": {
		Labels: map[string]string{
			domain.FieldName:  "nombre",
			domain.FieldEmail: "correo",
			domain.FieldPhone: "teléfono",
		},
		DuplicateLine: "\n El %s \"%s\" ya está registrado",
		NoCompany:     "Sin empresa",
		LookupFailed:  "Error en la validación",
		Internal:      "Error interno",
		Client: EntityMessages{
			Rejection: "No se puede registrar el cliente porque:",
			Resubmit:  "\n\nPor favor, proporciona un correo y teléfono diferentes para continuar con el registro.",
			Valid:     "Cliente válido, listo para registro",
		},
		Company: EntityMessages{
			Rejection: "No se puede registrar la empresa porque:",
			Resubmit: "\n\nPor favor, proporciona un nombre, correo y teléfono diferentes " +
				"para continuar con el registro.",
			Valid: "Empresa válida, listo para registro",
		},
	},
	"en": {
		Labels: map[string]string{
			domain.FieldName:  "name",
			domain.FieldEmail: "email",
			domain.FieldPhone: "phone",
		},
		DuplicateLine: "\n The %s \"%s\" is already registered",
		NoCompany:     "No company",
		LookupFailed:  "Validation error",
		Internal:      "Internal error",
		Client: EntityMessages{
			Rejection: "The client cannot be registered because:",
			Resubmit:  "\n\nPlease provide a different email and phone to continue with the registration.",
			Valid:     "Valid client, ready for registration",
		},
		Company: EntityMessages{
			Rejection: "The company cannot be registered because:",
			Resubmit:  "\n\nPlease provide a different name, email and phone to continue with the registration.",
			Valid:     "Valid company, ready for registration",
		},
	},
}

// CatalogFor returns the catalog of locale. An empty locale selects
// DefaultLocale.
func CatalogFor(locale string) (Catalog, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	c, ok := catalogs[locale]
	if !ok {
		return Catalog{}, fmt.Errorf("no message catalog for locale %q", locale)
	}

	return c, nil
}
