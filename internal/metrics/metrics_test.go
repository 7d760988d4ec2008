package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAccessDenied(t *testing.T) {
	before := testutil.ToFloat64(accessDenied.WithLabelValues("clinic.delete", "patient"))
	ObserveAccessDenied("clinic.delete", "patient")
	after := testutil.ToFloat64(accessDenied.WithLabelValues("clinic.delete", "patient"))
	if after-before != 1 {
		t.Errorf("expected counter to grow by 1, got %v", after-before)
	}
}

func TestObserveHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/clinique", "200"))
	ObserveHTTPRequest("GET", "/clinique", "200", 15*time.Millisecond)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/clinique", "200"))
	if after-before != 1 {
		t.Errorf("expected counter to grow by 1, got %v", after-before)
	}
}

func TestSetLowStock(t *testing.T) {
	SetLowStock(3)
	if got := testutil.ToFloat64(lowStockItems); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
}
