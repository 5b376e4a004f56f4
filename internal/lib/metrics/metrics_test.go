package metrics

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

func TestOperation(t *testing.T) {
	m := New()
	m.Operation("create", ResultOk)
	m.Operation("create", ResultOk)
	m.Operation("update", ResultNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("create", ResultOk)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("update", ResultNotFound)))
}

func TestObserveStore(t *testing.T) {
	m := New()
	m.ObserveStore("persist", time.Now(), errors.New("disk full"))
	m.ObserveStore("load", time.Now(), nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeErrors.WithLabelValues("persist")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.storeErrors.WithLabelValues("load")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Operation("create", ResultOk)
		m.ObserveStore("load", time.Now(), nil)
		m.SetCollectionSize(3)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetCollectionSize(5)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "schoolql_collection_size 5")
}
