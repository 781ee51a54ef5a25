package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveUpsert(t *testing.T) {
	created := testutil.ToFloat64(logUpsertTotal.WithLabelValues("created"))
	updated := testutil.ToFloat64(logUpsertTotal.WithLabelValues("updated"))

	ObserveUpsert(true)
	ObserveUpsert(false)
	ObserveUpsert(false)

	assert.Equal(t, created+1, testutil.ToFloat64(logUpsertTotal.WithLabelValues("created")))
	assert.Equal(t, updated+2, testutil.ToFloat64(logUpsertTotal.WithLabelValues("updated")))
}

func TestObserveRelay(t *testing.T) {
	before := testutil.ToFloat64(relayTotal.WithLabelValues("GET", "failure"))
	ObserveRelay("GET", true, 15*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(relayTotal.WithLabelValues("GET", "failure")))
}

func TestObserveRateLimited(t *testing.T) {
	before := testutil.ToFloat64(rateLimitedTotal)
	ObserveRateLimited()
	assert.Equal(t, before+1, testutil.ToFloat64(rateLimitedTotal))
}
