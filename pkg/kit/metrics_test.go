package kit

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetricsDump(t *testing.T) {
	m := NewMetrics()
	m.Observe("add", "ok", 5*time.Millisecond)
	m.Observe("add", "duplicate", time.Millisecond)
	m.Observe("list", "ok", time.Millisecond)

	var buf bytes.Buffer
	if err := m.Dump(&buf); err != nil {
		t.Fatalf("dump: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"catalog_operations_total",
		"catalog_operation_duration_seconds",
		`op="add",outcome="duplicate"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump output missing %q:\n%s", want, out)
		}
	}
}
