package metrics

// Drop reasons for realtime events
const (
	DropReasonBufferFull = "buffer_full"
	DropReasonNotJoined  = "not_joined"
	DropReasonMalformed  = "malformed"
	DropReasonDenied     = "denied"
)

// SetRealtimeConnections sets the connected clients gauge
func (m *Metrics) SetRealtimeConnections(n int) {
	m.safeExecute("SetRealtimeConnections", func() {
		m.RealtimeConnections.Set(float64(n))
	})
}

// SetRealtimeSubscriptions sets the board subscriptions gauge
func (m *Metrics) SetRealtimeSubscriptions(n int) {
	m.safeExecute("SetRealtimeSubscriptions", func() {
		m.RealtimeSubscriptions.Set(float64(n))
	})
}

// RecordRealtimeRelay counts deliveries of one event
func (m *Metrics) RecordRealtimeRelay(event string, deliveries int) {
	if deliveries <= 0 {
		return
	}
	m.safeExecute("RecordRealtimeRelay", func() {
		m.RealtimeEventsRelayed.WithLabelValues(event).Add(float64(deliveries))
	})
}

// RecordRealtimeDrop counts one dropped event
func (m *Metrics) RecordRealtimeDrop(reason string) {
	m.safeExecute("RecordRealtimeDrop", func() {
		m.RealtimeEventsDropped.WithLabelValues(reason).Inc()
	})
}
