package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
)

func executeWithTraceID(h *Handler, traceID string) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside handler")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	if traceID != "" {
		req.Header.Set(traceIDHeader, traceID)
	}

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	return rr
}

func TestWithTraceID(t *testing.T) {
	t.Run("trace id from request header is reused", func(t *testing.T) {
		var buf bytes.Buffer
		h := &Handler{logger: logger.NewLoggerWithWriter("test", &buf)}

		rr := executeWithTraceID(h, "my-custom-trace-id")

		assert.Equal(t, "my-custom-trace-id", rr.Header().Get(traceIDHeader))
		assert.Contains(t, buf.String(), `"trace_id":"my-custom-trace-id"`)
	})

	t.Run("trace id is generated when absent", func(t *testing.T) {
		var buf bytes.Buffer
		h := &Handler{logger: logger.NewLoggerWithWriter("test", &buf)}

		rr := executeWithTraceID(h, "")

		traceID := rr.Header().Get(traceIDHeader)
		_, err := uuid.Parse(traceID)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), traceID)
	})
}
