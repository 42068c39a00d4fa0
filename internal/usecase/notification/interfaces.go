package notification

// Logger is the structured logging contract for the controller.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Recorder receives controller state-transition events for metrics.
type Recorder interface {
	// Dismissed is called when a visible alert is removed, either by
	// user action (auto=false) or timer expiry (auto=true).
	Dismissed(auto bool)

	// Promoted is called when a queued alert moves into a visible slot.
	Promoted()

	// Dropped is called when an arrival is rejected because both the
	// visible set and the wait queue are full.
	Dropped()

	// SlotCounts reports the sizes of the visible set and wait queue
	// after a transition.
	SlotCounts(visible, queued int)
}

// NopRecorder discards all controller events.
type NopRecorder struct{}

func (NopRecorder) Dismissed(bool)      {}
func (NopRecorder) Promoted()           {}
func (NopRecorder) Dropped()            {}
func (NopRecorder) SlotCounts(int, int) {}
