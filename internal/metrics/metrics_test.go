package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveHTTP(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/sessions/{id}/snapshot", "200"))
	ObserveHTTP("GET", "/sessions/{id}/snapshot", 200, 10*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/sessions/{id}/snapshot", "200"))
	assert.Equal(t, before+1, after)
}

func TestHandlerServesRegistry(t *testing.T) {
	Actions.WithLabelValues("mint", "success").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ezkey_actions_total{action="mint",outcome="success"}`)
}
