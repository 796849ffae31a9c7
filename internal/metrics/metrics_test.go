package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.SetConnections(3)
	m.SetRooms(2)
	m.MessageReceived()
	m.MessageReceived()
	m.EventDispatched("join")
	m.MessageDropped(ReasonMalformed)
	m.Broadcast("userJoined", 2)
	m.Broadcast("codeUpdate", 1)

	if got := testutil.ToFloat64(m.Connections); got != 3 {
		t.Errorf("Connections = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.Rooms); got != 2 {
		t.Errorf("Rooms = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.MessagesReceived); got != 2 {
		t.Errorf("MessagesReceived = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Events.WithLabelValues("join")); got != 1 {
		t.Errorf("Events{join} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Dropped.WithLabelValues(ReasonMalformed)); got != 1 {
		t.Errorf("Dropped{malformed} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Broadcasts.WithLabelValues("userJoined")); got != 1 {
		t.Errorf("Broadcasts{userJoined} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Deliveries); got != 3 {
		t.Errorf("Deliveries = %v, want 3", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	m.SetConnections(1)
	m.SetRooms(1)
	m.MessageReceived()
	m.EventDispatched("join")
	m.MessageDropped(ReasonClosed)
	m.Broadcast("codeUpdate", 4)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.MessageReceived()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}

	if !strings.Contains(string(body), "relay_messages_received_total 1") {
		t.Errorf("exposition missing relay_messages_received_total, got:\n%s", body)
	}
}

func TestMetrics_Independent(t *testing.T) {
	a := New()
	b := New()
	a.MessageReceived()

	if got := testutil.ToFloat64(b.MessagesReceived); got != 0 {
		t.Errorf("second instance MessagesReceived = %v, want 0", got)
	}
}
