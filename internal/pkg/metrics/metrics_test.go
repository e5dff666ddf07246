//go:build unit

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"slot-reservation/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := metrics.New("test")

	m.ReservationCreated("parking")
	m.ReservationCreated("parking")
	m.ReservationConflict("ev")
	m.InvariantViolation("available_below_zero")

	count, err := testutil.GatherAndCount(m.Registry(), "test_reservations_created_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "one labelled series")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `test_reservations_created_total{resource_type="parking"} 2`)
	assert.Contains(t, body, `test_reservation_conflicts_total{resource_type="ev"} 1`)
	assert.Contains(t, body, `test_invariant_violations_total{invariant="available_below_zero"} 1`)
}
