package gate

import (
	"dedupgate/pkg/domain"
	"dedupgate/pkg/storage"
)

// OutputField describes how one field of the normalized record is resolved.
// Candidates are tried in order: Keys of the candidate source, then the
// Fallback top-level request field, then Default when HasDefault is set.
type OutputField struct {
	Name       string
	Keys       []string
	Fallback   string
	Default    string
	HasDefault bool
}

// Profile configures the gate for one kind of submission.
type Profile struct {
	// Kind names the submission kind in logs and metrics.
	Kind string
	// Collection is the store collection checked for duplicates.
	Collection string
	// PayloadKey is the request member carrying the record description.
	PayloadKey string
	// RequestFields are the accepted top-level request members.
	RequestFields []string
	// Identifiers are the fields checked for duplicates, in check order.
	Identifiers []string
	// MessageOrder is the order of colliding fields in a rejection.
	MessageOrder []string
	// Extraction drives the recovery of malformed text payloads.
	Extraction Extraction
	// Schema is the normalized record, in output order.
	Schema []OutputField
	// Messages are the entity-specific texts.
	Messages EntityMessages
	// Catalog holds the shared texts.
	Catalog Catalog
}

func keys(k ...string) []string { return k }

// ClientProfile configures the gate for sales clients.
func ClientProfile(c Catalog) Profile {
	return Profile{
		Kind:          "client",
		Collection:    storage.CollectionClients,
		PayloadKey:    "clientData",
		RequestFields: []string{domain.FieldEmail, domain.FieldPhone},
		Identifiers:   []string{domain.FieldEmail, domain.FieldPhone},
		MessageOrder:  []string{domain.FieldEmail, domain.FieldPhone},
		Extraction: Extraction{
			Style: QuotedPairs,
			Keys:  keys("name", "email", "phone", "company"),
		},
		Schema: []OutputField{
			// a client without a name is registered under its email
			{Name: "name", Keys: keys("name", "nombre"), Fallback: domain.FieldEmail},
			{Name: "email", Keys: keys("email", "correo"), Fallback: domain.FieldEmail},
			{Name: "phone", Keys: keys("phone", "telefono"), Fallback: domain.FieldPhone},
			{Name: "company", Keys: keys("company", "empresa"), Default: c.NoCompany, HasDefault: true},
			{Name: "notes", Keys: keys("address", "direccion"), HasDefault: true},
			{Name: "status", Default: "active", HasDefault: true},
		},
		Messages: c.Client,
		Catalog:  c,
	}
}

// CompanyProfile configures the gate for companies.
func CompanyProfile(c Catalog) Profile {
	return Profile{
		Kind:       "company",
		Collection: storage.CollectionCompanies,
		PayloadKey: "companyData",
		RequestFields: []string{
			domain.FieldEmail, domain.FieldPhone, domain.FieldName,
			"website", "industry", "size", "city", "country", "owner_name",
		},
		Identifiers:  []string{domain.FieldEmail, domain.FieldPhone, domain.FieldName},
		MessageOrder: []string{domain.FieldName, domain.FieldEmail, domain.FieldPhone},
		Extraction: Extraction{
			Style: BarePairs,
			Keys: keys("name", "email", "phone", "website", "industry",
				"size", "city", "country", "owner_name"),
		},
		Schema: []OutputField{
			{Name: "name", Keys: keys("name", "nombre"), Fallback: domain.FieldName},
			{Name: "email", Keys: keys("email", "correo"), Fallback: domain.FieldEmail},
			{Name: "phone", Keys: keys("phone", "telefono"), Fallback: domain.FieldPhone},
			{Name: "website", Keys: keys("website", "sitio_web"), Fallback: "website", HasDefault: true},
			{Name: "industry", Keys: keys("industry", "industria"), Fallback: "industry", HasDefault: true},
			{Name: "size", Keys: keys("size", "tamaño"), Fallback: "size", HasDefault: true},
			{Name: "city", Keys: keys("city", "ciudad"), Fallback: "city", HasDefault: true},
			{Name: "country", Keys: keys("country", "país"), Fallback: "country", HasDefault: true},
			{Name: "owner_name", Keys: keys("owner_name", "nombre_propietario"), Fallback: "owner_name", HasDefault: true},
			{Name: "stage", Default: "prospect", HasDefault: true},
			{Name: "notes", HasDefault: true},
		},
		Messages: c.Company,
		Catalog:  c,
	}
}
