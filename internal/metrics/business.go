package metrics

// IncrementBoardCreated increments board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardCreatedTotal.Inc()
	})
}

// IncrementCardCreated increments card creation counter
func (m *Metrics) IncrementCardCreated() {
	m.safeExecute("IncrementCardCreated", func() {
		m.CardCreatedTotal.Inc()
	})
}

// IncrementTaskCreated increments task creation counter
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TaskCreatedTotal.Inc()
	})
}

// RecordTaskMoved counts a status change into toStatus
func (m *Metrics) RecordTaskMoved(toStatus string) {
	m.safeExecute("RecordTaskMoved", func() {
		m.TaskMovedTotal.WithLabelValues(toStatus).Inc()
	})
}

// RecordInvitationEvent counts sent, accepted and declined invitations
func (m *Metrics) RecordInvitationEvent(event string) {
	m.safeExecute("RecordInvitationEvent", func() {
		m.InvitationEventsTotal.WithLabelValues(event).Inc()
	})
}

// Totals is one snapshot of the business gauges
type Totals struct {
	Users              int64
	Boards             int64
	Cards              int64
	Tasks              int64
	PendingInvitations int64
}

// SetTotals updates all business gauges at once
func (m *Metrics) SetTotals(t Totals) {
	m.safeExecute("SetTotals", func() {
		m.UsersTotal.Set(float64(t.Users))
		m.BoardsTotal.Set(float64(t.Boards))
		m.CardsTotal.Set(float64(t.Cards))
		m.TasksTotal.Set(float64(t.Tasks))
		m.PendingInvitationsTotal.Set(float64(t.PendingInvitations))
	})
}

// RecordOrphansSwept adds n removed rows of kind
func (m *Metrics) RecordOrphansSwept(kind string, n int64) {
	if n <= 0 {
		return
	}
	m.safeExecute("RecordOrphansSwept", func() {
		m.OrphansSweptTotal.WithLabelValues(kind).Add(float64(n))
	})
}
