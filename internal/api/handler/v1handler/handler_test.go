package v1handler_test

import (
	"dedupgate/internal/api/handler/v1handler"
	"dedupgate/internal/gate"
	"dedupgate/pkg/logger"
	"dedupgate/pkg/serrors"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	if err := logger.Setup(logger.DevelopmentEnvironment, ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func catalog(t *testing.T) gate.Catalog {
	t.Helper()

	c, err := gate.CatalogFor("es")
	require.NoError(t, err)

	return c
}

func TestErrorMessage(t *testing.T) {
	c := catalog(t)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain error", errors.New("boom"), "Error interno"},
		{"bad request", serrors.With(serrors.ErrBadRequest, "invalid payload"), "Error interno"},
		{"unavailable", serrors.Wrap(serrors.ErrUnavailable, errors.New("conn reset"), "could not look up email"), "Error en la validación"},
		{
			"rate limited store wrapped as unavailable",
			serrors.Wrap(serrors.ErrUnavailable, serrors.KindOnly(serrors.ErrRateLimited), "could not look up phone"),
			"Error en la validación",
		},
		{"timeout", serrors.KindOnly(serrors.ErrTimeout), "Error interno"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, v1handler.ErrorMessage(c, tt.err))
		})
	}
}

func TestErrorBody(t *testing.T) {
	require.JSONEq(t, `{"error":"Error en la validación"}`, string(v1handler.ErrorBody("Error en la validación")))
	require.Equal(t, `{"error":"a \"quoted\" text"}`, string(v1handler.ErrorBody(`a "quoted" text`)))
}
