// Package supabase implements storage.Storage on top of the PostgREST API
// exposed by a Supabase project.
package supabase

import (
	"context"
	"dedupgate/pkg/domain"
	"dedupgate/pkg/serrors"
	"dedupgate/pkg/storage"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// lookupColumns is the projection requested on every lookup.
const lookupColumns = "id,name,email,phone"

// Options configures the Supabase client.
type Options struct {
	// URL is the project URL, e.g. https://xyz.supabase.co.
	URL string
	// APIKey is the anon (or service) key sent as apikey and bearer token.
	APIKey string
	// Order is an optional PostgREST order clause (e.g. "created_at.asc")
	// applied to lookups. Empty keeps the server's native order.
	Order string
}

// Client performs exact-match lookups through PostgREST. It is safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	options    Options
}

// New creates a Client using the given HTTP client for every request.
func New(httpClient *http.Client, options Options) *Client {
	options.URL = strings.TrimRight(options.URL, "/")

	return &Client{httpClient: httpClient, options: options}
}

type row struct {
	ID    json.RawMessage `json:"id"`
	Name  *string         `json:"name"`
	Email *string         `json:"email"`
	Phone *string         `json:"phone"`
}

func (r row) toDomain() domain.StoredRecord {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}

		return *s
	}

	return domain.StoredRecord{
		ID:    rawID(r.ID),
		Name:  deref(r.Name),
		Email: deref(r.Email),
		Phone: deref(r.Phone),
	}
}

// rawID renders string and numeric primary keys alike.
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}

	return string(raw)
}

// LookupExact returns the rows of collection whose field equals value.
func (c *Client) LookupExact(ctx context.Context, collection, field, value string) ([]domain.StoredRecord, error) {
	if err := storage.CheckLookup(collection, field); err != nil {
		return nil, fmt.Errorf("could not look up %s.%s: %w", collection, field, err)
	}

	query := url.Values{}
	query.Set("select", lookupColumns)
	query.Set(field, "eq."+value)
	if c.options.Order != "" {
		query.Set("order", c.options.Order)
	}

	b, err := c.get(ctx, collection, query)
	if err != nil {
		return nil, fmt.Errorf("could not look up %s.%s: %w", collection, field, err)
	}

	var rows []row
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("could not decode %s rows: %w", collection, err)
	}

	res := make([]domain.StoredRecord, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.toDomain())
	}

	return res, nil
}

// Ping issues a minimal select on the clients collection.
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("select", "id")
	query.Set("limit", "1")

	if _, err := c.get(ctx, storage.CollectionClients, query); err != nil {
		return fmt.Errorf("could not ping supabase: %w", err)
	}

	return nil
}

// Close is a no-op; the HTTP client is owned by the caller.
func (c *Client) Close() error { return nil }

func (c *Client) get(ctx context.Context, table string, query url.Values) ([]byte, error) {
	u := c.options.URL + "/rest/v1/" + url.PathEscape(table) + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("apikey", c.options.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.options.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, serrors.With(serrors.ErrRateLimited, "rate limited: %s", strings.TrimSpace(string(b)))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("select %s failed (%d): %s", table, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	return b, nil
}
