package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCount(t *testing.T) {
	before := testutil.ToFloat64(CountsTotal.WithLabelValues("overflow"))

	RecordCount("overflow", 3, time.Millisecond)

	after := testutil.ToFloat64(CountsTotal.WithLabelValues("overflow"))
	if after-before != 1 {
		t.Errorf("Expected counter to increase by 1, got %v", after-before)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/parts", "200"))

	RecordHTTPRequest("GET", "/api/parts", "200", 5*time.Millisecond)
	RecordHTTPRequest("GET", "/api/parts", "200", 5*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/parts", "200"))
	if after-before != 2 {
		t.Errorf("Expected counter to increase by 2, got %v", after-before)
	}
}

func TestRecordMutation(t *testing.T) {
	before := testutil.ToFloat64(CatalogMutationsTotal.WithLabelValues("part_created"))
	RecordMutation("part_created")
	if got := testutil.ToFloat64(CatalogMutationsTotal.WithLabelValues("part_created")); got-before != 1 {
		t.Errorf("Expected counter to increase by 1, got %v", got-before)
	}
}
