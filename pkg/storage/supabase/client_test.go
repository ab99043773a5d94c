package supabase_test

import (
	"context"
	"dedupgate/pkg/serrors"
	"dedupgate/pkg/storage"
	"dedupgate/pkg/storage/supabase"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(order string, fn rtFunc) *supabase.Client {
	return supabase.New(&http.Client{Transport: fn}, supabase.Options{
		URL:    "https://project.supabase.co/",
		APIKey: "anon-key",
		Order:  order,
	})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClient_LookupExact_success(t *testing.T) {
	c := newTestClient("", func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "project.supabase.co", r.URL.Host)
		require.Equal(t, "/rest/v1/sales_clients", r.URL.Path)
		require.Equal(t, "id,name,email,phone", r.URL.Query().Get("select"))
		require.Equal(t, "eq.a+b@x.com", r.URL.Query().Get("email"))
		require.Empty(t, r.URL.Query().Get("order"))
		require.Equal(t, "anon-key", r.Header.Get("apikey"))
		require.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))

		return jsonResponse(http.StatusOK,
			`[{"id":"1f0c","name":"Ana","email":"a+b@x.com","phone":null},{"id":42,"name":null,"email":"a+b@x.com","phone":"555"}]`), nil
	})

	res, err := c.LookupExact(context.Background(), storage.CollectionClients, "email", "a+b@x.com")
	require.NoError(t, err)
	require.Len(t, res, 2)
	require.Equal(t, "1f0c", res[0].ID)
	require.Equal(t, "Ana", res[0].Name)
	require.Empty(t, res[0].Phone)
	require.Equal(t, "42", res[1].ID)
	require.Equal(t, "555", res[1].Phone)
}

func TestClient_LookupExact_order(t *testing.T) {
	c := newTestClient("created_at.asc", func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "/rest/v1/companies", r.URL.Path)
		require.Equal(t, "eq.Acme Corp", r.URL.Query().Get("name"))
		require.Equal(t, "created_at.asc", r.URL.Query().Get("order"))

		return jsonResponse(http.StatusOK, `[]`), nil
	})

	res, err := c.LookupExact(context.Background(), storage.CollectionCompanies, "name", "Acme Corp")
	require.NoError(t, err)
	require.Empty(t, res)
}

func TestClient_LookupExact_serverError(t *testing.T) {
	c := newTestClient("", func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"code":"42703","message":"column does not exist"}`), nil
	})

	_, err := c.LookupExact(context.Background(), storage.CollectionClients, "phone", "555")
	require.Error(t, err)
	require.Contains(t, err.Error(), "400")
	require.Contains(t, err.Error(), "column does not exist")
}

func TestClient_LookupExact_rateLimited(t *testing.T) {
	c := newTestClient("", func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `slow down`), nil
	})

	_, err := c.LookupExact(context.Background(), storage.CollectionClients, "phone", "555")
	require.ErrorIs(t, err, serrors.ErrRateLimited)
}

func TestClient_LookupExact_transportError(t *testing.T) {
	boom := errors.New("dial tcp: connection refused")
	c := newTestClient("", func(r *http.Request) (*http.Response, error) {
		return nil, boom
	})

	_, err := c.LookupExact(context.Background(), storage.CollectionClients, "email", "a@x.com")
	require.ErrorIs(t, err, boom)
}

func TestClient_LookupExact_badBody(t *testing.T) {
	c := newTestClient("", func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"not":"a list"}`), nil
	})

	_, err := c.LookupExact(context.Background(), storage.CollectionClients, "email", "a@x.com")
	require.Error(t, err)
}

func TestClient_LookupExact_unknownField(t *testing.T) {
	c := newTestClient("", func(r *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")

		return nil, nil
	})

	_, err := c.LookupExact(context.Background(), storage.CollectionClients, "company", "Acme")
	require.ErrorIs(t, err, storage.ErrUnknownField)
}

func TestClient_Ping(t *testing.T) {
	c := newTestClient("", func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "/rest/v1/sales_clients", r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("limit"))

		return jsonResponse(http.StatusOK, `[]`), nil
	})

	require.NoError(t, c.Ping(context.Background()))
}
