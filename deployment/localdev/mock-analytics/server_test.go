package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/customerdesk/internal/analytics"
)

func newTestServer(t *testing.T, fixture *analyticsResponse) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newHandler(&server{
		fixture: fixture,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))
}

func TestAnalyticsRequiresPost(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/customer-analytics")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAnalyticsRequiresFileField(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Post(srv.URL+"/customer-analytics", "text/csv", strings.NewReader(salesCSV))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	srv := newTestServer(t, nil)
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.test")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestClientRoundTrip(t *testing.T) {
	srv := newTestServer(t, nil)
	client := analytics.NewClient(srv.URL+"/customer-analytics", 0, nil)

	res, err := client.Analyze(context.Background(), "req-1", "sales.csv", strings.NewReader(salesCSV))
	require.NoError(t, err)
	require.Equal(t, []analytics.TopCustomer{
		{Customer: "Acme", Revenue: 500},
		{Customer: "Gamma", Revenue: 250},
		{Customer: "Beta", Revenue: 100},
	}, res.TopCustomers)
	require.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, res.Months)
	require.Equal(t, []float64{500, 100, 250}, res.RevenueTrend)
	require.Equal(t, float64(34), res.Prediction)
	require.Empty(t, res.Anomalies)
}

func TestClientSeesServiceErrorAsMalformed(t *testing.T) {
	srv := newTestServer(t, nil)
	client := analytics.NewClient(srv.URL+"/customer-analytics", 0, nil)

	_, err := client.Analyze(context.Background(), "", "bad.csv", strings.NewReader("name,total\nAcme,1\n"))
	require.Error(t, err)
	require.True(t, analytics.IsKind(err, analytics.KindMalformed))
	require.Contains(t, err.Error(), "Missing column: customer_name")
}

func TestFixtureMode(t *testing.T) {
	fx, err := loadFixture("fixture.yaml")
	require.NoError(t, err)
	srv := newTestServer(t, fx)
	client := analytics.NewClient(srv.URL+"/customer-analytics", 0, nil)

	res, err := client.Analyze(context.Background(), "", "anything.csv", strings.NewReader("x\n"))
	require.NoError(t, err)
	require.Equal(t, []analytics.TopCustomer{{Customer: "Acme", Revenue: 500}}, res.TopCustomers)
	require.Equal(t, float64(550), res.Prediction)
}
