package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/XavierBriggs/fortuna/services/betedge/internal/metrics"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
)

func TestObserveScan(t *testing.T) {
	m := metrics.NewManager()

	m.ObserveScan(models.OpportunityTypeArbitrage, 10, 2, 5*time.Millisecond)
	m.ObserveScan(models.OpportunityTypeArbitrage, 4, 1, time.Millisecond)
	m.ObserveScan(models.OpportunityTypePositiveEV, 10, 7, time.Millisecond)

	expected := `
# HELP betedge_detector_opportunities_found_total Opportunities produced by detection scans, by opportunity type
# TYPE betedge_detector_opportunities_found_total counter
betedge_detector_opportunities_found_total{type="arbitrage"} 3
betedge_detector_opportunities_found_total{type="positive_ev"} 7
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "betedge_detector_opportunities_found_total"); err != nil {
		t.Error(err)
	}
}

func TestObserveFetch(t *testing.T) {
	m := metrics.NewManager()

	m.ObserveFetch("basketball_nba", nil, time.Millisecond)
	m.ObserveFetch("basketball_nba", errors.New("boom"), time.Millisecond)
	m.AddDroppedQuotes(3)

	expected := `
# HELP betedge_ingest_fetches_total Per-sport snapshot fetches, by sport and result
# TYPE betedge_ingest_fetches_total counter
betedge_ingest_fetches_total{result="error",sport="basketball_nba"} 1
betedge_ingest_fetches_total{result="success",sport="basketball_nba"} 1
# HELP betedge_ingest_dropped_quotes_total Outcome quotes rejected by validation (price <= 1.0)
# TYPE betedge_ingest_dropped_quotes_total counter
betedge_ingest_dropped_quotes_total 3
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"betedge_ingest_fetches_total", "betedge_ingest_dropped_quotes_total"); err != nil {
		t.Error(err)
	}
}

func TestNilManagerIsNoop(t *testing.T) {
	var m *metrics.Manager

	m.ObserveScan(models.OpportunityTypeArbitrage, 1, 1, time.Millisecond)
	m.ObserveFetch("soccer_epl", nil, time.Millisecond)
	m.AddDroppedQuotes(1)
	m.ObserveCacheLookup("hit")
	m.SetQuotaRemaining(10)
	m.ObserveHTTPRequest("/health", http.MethodGet, http.StatusOK, time.Millisecond)
}

func TestHandler(t *testing.T) {
	m := metrics.NewManager()
	m.SetQuotaRemaining(480)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "betedge_oddsapi_requests_remaining 480") {
		t.Errorf("quota gauge missing from exposition:\n%s", rec.Body.String())
	}
}
