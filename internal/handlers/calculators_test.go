package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/XavierBriggs/fortuna/services/betedge/internal/testutil"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
)

func post(t *testing.T, router http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestStakeDistributionEndpoint(t *testing.T) {
	router := setupRouter(t, testutil.NewStubSource())

	w := post(t, router, "/api/v1/calculators/stake-distribution", `{"odds":[2.10,2.20],"total_stake":100}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.StakeDistributionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Stakes[0] != 51.16 || resp.GuaranteedProfit != 7.44 {
		t.Errorf("unexpected distribution %+v", resp)
	}
}

func TestStakeDistributionEndpoint_NoArbitrage(t *testing.T) {
	router := setupRouter(t, testutil.NewStubSource())

	w := post(t, router, "/api/v1/calculators/stake-distribution", `{"odds":[1.90,1.90],"total_stake":100}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "no_arbitrage" || resp.Code != http.StatusUnprocessableEntity {
		t.Errorf("unexpected error response %+v", resp)
	}
}

func TestCalculatorEndpoints(t *testing.T) {
	router := setupRouter(t, testutil.NewStubSource())

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Kelly",
			path:       "/api/v1/calculators/kelly",
			body:       `{"odds":2.5,"win_probability":0.45,"bankroll":1000}`,
			wantStatus: http.StatusOK,
			wantBody:   `"full_kelly_stake":83.33`,
		},
		{
			name:       "Expected value",
			path:       "/api/v1/calculators/expected-value",
			body:       `{"odds":2.8,"fair_odds":2.5,"stake":100}`,
			wantStatus: http.StatusOK,
			wantBody:   `"ev_percentage":12`,
		},
		{
			name:       "Convert",
			path:       "/api/v1/calculators/convert",
			body:       `{"american":150}`,
			wantStatus: http.StatusOK,
			wantBody:   `"decimal":2.5`,
		},
		{
			name:       "ROI",
			path:       "/api/v1/calculators/roi",
			body:       `{"stake":50,"odds":3.0,"won":true}`,
			wantStatus: http.StatusOK,
			wantBody:   `"roi":200`,
		},
		{
			name:       "Invalid odds",
			path:       "/api/v1/calculators/kelly",
			body:       `{"odds":1.0,"win_probability":0.45,"bankroll":1000}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"code":400`,
		},
		{
			name:       "Malformed body",
			path:       "/api/v1/calculators/convert",
			body:       `{"decimal":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `invalid request body`,
		},
		{
			name:       "Unknown field",
			path:       "/api/v1/calculators/convert",
			body:       `{"fractional":"3/2"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `invalid request body`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, router, tt.path, tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("expected body to contain %s, got %s", tt.wantBody, w.Body.String())
			}
		})
	}
}
