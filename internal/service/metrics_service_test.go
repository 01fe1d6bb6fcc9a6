package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceRecordsReferenceSync(t *testing.T) {
	m := NewMetricsService()

	m.ObserveReferenceSync("program.courses", "add", 2, nil)
	m.ObserveReferenceSync("program.courses", "add", 1, nil)
	m.ObserveReferenceSync("program.courses", "pull", 0, errors.New("boom"))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.syncRows.WithLabelValues("program.courses", "add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.syncFailures.WithLabelValues("program.courses", "pull")))
}

func TestMetricsServiceExposesRegistry(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/courses", http.StatusOK, 15*time.Millisecond)
	m.ObserveDBQuery("courses.find", 2*time.Millisecond)
	m.ObserveRateLimited("/api/auth/login")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/courses",status="200"} 1`)
	assert.Contains(t, body, `db_query_duration_seconds_count{query="courses.find"} 1`)
	assert.Contains(t, body, `rate_limited_requests_total{path="/api/auth/login"} 1`)
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveDBQuery("x", time.Millisecond)
	m.ObserveReferenceSync("x", "add", 1, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
