package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftwise/draftwise-api/internal/api/shared"
)

func TestTraceMiddlewareSetsTraceID(t *testing.T) {
	t.Parallel()

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/anything", nil)
	w := httptest.NewRecorder()

	TraceMiddleware(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, traceID, shared.TraceIDLength*2)
}
