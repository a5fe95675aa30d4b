package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandler_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/teams/{teamID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/teams/{teamID}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teams/3f1a", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/teams/{teamID}", "418"))
	assert.Equal(t, before+1, after)
}

func TestRecordStandingsComputation(t *testing.T) {
	before := testutil.ToFloat64(standingsComputations.WithLabelValues(OutcomeUnknownTeam))
	RecordStandingsComputation(OutcomeUnknownTeam, 0)
	RecordStandingsComputation(OutcomeUnknownTeam, 3*time.Millisecond)
	assert.Equal(t, before+2, testutil.ToFloat64(standingsComputations.WithLabelValues(OutcomeUnknownTeam)))
}

func TestWebsocketClientsGauge(t *testing.T) {
	before := testutil.ToFloat64(websocketClients)
	WebsocketClientConnected()
	WebsocketClientConnected()
	WebsocketClientDisconnected()
	assert.Equal(t, before+1, testutil.ToFloat64(websocketClients))
	WebsocketClientDisconnected()
}

func TestHandler_ExposesCollectors(t *testing.T) {
	RecordBroadcast("STANDINGS_UPDATED")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "football_console_websocket_broadcasts_total"))
	assert.True(t, strings.Contains(body, `type="STANDINGS_UPDATED"`))
}
