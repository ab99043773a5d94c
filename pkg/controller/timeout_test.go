package controller_test

import (
	"dedupgate/pkg/controller"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithTimeout(t *testing.T) {
	var deadline time.Time
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		deadline, ok = r.Context().Deadline()
		require.True(t, ok)

		<-r.Context().Done()
		w.WriteHeader(http.StatusGatewayTimeout)
	})

	start := time.Now()
	rec := httptest.NewRecorder()
	controller.WithTimeout(next, 20*time.Millisecond).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
	require.WithinDuration(t, start.Add(20*time.Millisecond), deadline, 10*time.Millisecond)
}
