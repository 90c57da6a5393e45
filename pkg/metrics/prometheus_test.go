package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterAndGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCollector(reg)

	c.IncrementCounter("bulk_items_total", map[string]string{"kind": "product", "status": "Created"})
	c.IncrementCounter("bulk_items_total", map[string]string{"kind": "product", "status": "Created"})
	c.SetGauge("bulk_progress_ratio", 0.5, map[string]string{"kind": "inventory"})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.counters["bulk_items_total"].WithLabelValues("product", "Created")))
	assert.Equal(t, 0.5, testutil.ToFloat64(c.gauges["bulk_progress_ratio"].WithLabelValues("inventory")))
}

func TestHistogramIsRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCollector(reg)

	c.RecordDuration("upstream_request_duration_seconds", 0.2, map[string]string{"method": "POST", "outcome": "2xx"})

	count, err := testutil.GatherAndCount(reg, "api_console_upstream_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUnknownMetricIsIgnored(t *testing.T) {
	c := NewPrometheusCollector(prometheus.NewRegistry())

	assert.NotPanics(t, func() {
		c.IncrementCounter("missing", nil)
		c.RecordDuration("missing", 1, nil)
		c.SetGauge("missing", 1, nil)
	})
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		NewPrometheusCollector(prometheus.NewRegistry())
		NewPrometheusCollector(prometheus.NewRegistry())
	})
}
