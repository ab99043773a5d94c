package controller_test

import (
	"dedupgate/pkg/controller"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithRecover(t *testing.T) {
	body := []byte(`{"error":"Error interno"}`)

	t.Run("panic", func(t *testing.T) {
		next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		})
		rec := httptest.NewRecorder()
		controller.WithRecover(next, body).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		require.Equal(t, string(body), rec.Body.String())
	})

	t.Run("no panic", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		})
		rec := httptest.NewRecorder()
		controller.WithRecover(next, body).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		require.Equal(t, http.StatusAccepted, rec.Code)
		require.Empty(t, rec.Body.String())
	})

	t.Run("abort handler", func(t *testing.T) {
		next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		})
		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			controller.WithRecover(next, body).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}
