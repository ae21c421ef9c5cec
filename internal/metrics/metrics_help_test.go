package metrics

import (
	"regexp"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var snakeCase = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// TestMetricNamingAndHelp checks every exported family is namespaced, snake_case and documented
func TestMetricNamingAndHelp(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, zap.NewNop())

	// Vectors only show up in Gather once a child exists
	m.RecordHTTPRequest("GET", "/boards", 200, 0)
	m.RecordDBQuery("select", "boards", 0, nil)
	m.RecordDBQuery("select", "boards", 0, assertErr{})
	m.RecordExternalAPICall("https://api.github.com/user", "GET", 500, 0, nil)
	m.RecordTaskMoved("done")
	m.RecordInvitationEvent("sent")
	m.RecordRealtimeRelay("task-moved", 1)
	m.RecordRealtimeDrop(DropReasonBufferFull)
	m.RecordOrphansSwept("cards", 1)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("no metric families gathered")
	}

	for _, mf := range families {
		name := mf.GetName()
		if !strings.HasPrefix(name, namespace+"_") {
			t.Errorf("Metric '%s' is missing the %s namespace", name, namespace)
		}
		if !snakeCase.MatchString(name) {
			t.Errorf("Metric '%s' is not snake_case", name)
		}
		if strings.TrimSpace(mf.GetHelp()) == "" {
			t.Errorf("Metric '%s' has an empty help description", name)
		}
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "query failed" }
