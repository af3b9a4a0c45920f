package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCacheOperation(t *testing.T) {
	before := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("products:list", ResultHit))

	RecordCacheOperation("products:list", ResultHit)
	RecordCacheOperation("products:list", ResultHit)
	RecordCacheOperation("products:list", ResultMiss)

	assert.Equal(t, before+2, testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("products:list", ResultHit)))
}

func TestRecordInvalidation(t *testing.T) {
	success := testutil.ToFloat64(CacheInvalidationsTotal.WithLabelValues("success"))
	failed := testutil.ToFloat64(CacheInvalidationsTotal.WithLabelValues("failed"))
	entries := testutil.ToFloat64(CacheInvalidatedEntries)

	RecordInvalidation(3, nil)
	RecordInvalidation(5, errors.New("redis down"))

	assert.Equal(t, success+1, testutil.ToFloat64(CacheInvalidationsTotal.WithLabelValues("success")))
	assert.Equal(t, failed+1, testutil.ToFloat64(CacheInvalidationsTotal.WithLabelValues("failed")))
	assert.Equal(t, entries+3, testutil.ToFloat64(CacheInvalidatedEntries))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues("GET", "/products", "200"))

	RecordHTTPRequest("GET", "/products", 200, 10*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestTotal.WithLabelValues("GET", "/products", "200")))
}

func TestUpdateCacheSize(t *testing.T) {
	UpdateCacheSize(42)
	assert.Equal(t, float64(42), testutil.ToFloat64(CacheSize))
}

func TestRecordStoreQuery(t *testing.T) {
	RecordStoreQuery("list_products", 5*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(StoreQueryDuration, "catalog_store_query_duration_seconds"), 1)
}
