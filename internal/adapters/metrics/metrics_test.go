package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_ObserveOperation(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveOperation("add_product", "ok", 10*time.Millisecond)
	m.ObserveOperation("add_product", "ok", 20*time.Millisecond)
	m.ObserveOperation("add_product", "stock_exceeded", time.Millisecond)

	if got := testutil.ToFloat64(m.operations.WithLabelValues("add_product", "ok")); got != 2 {
		t.Fatalf("expected 2 ok adds, got %v", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("add_product", "stock_exceeded")); got != 1 {
		t.Fatalf("expected 1 stock_exceeded add, got %v", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveOperation("remove_product", "remove_failed", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `cart_operations_total{operation="remove_product",outcome="remove_failed"} 1`) {
		t.Fatalf("expected counter in exposition, got:\n%s", body)
	}
}
