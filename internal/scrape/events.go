package scrape

// EventType identifies the kind of progress event.
type EventType int

const (
	EventRunStarted EventType = iota
	EventURLsDiscovered
	EventFixtureStarted
	EventFixtureDone
	EventFixtureSkipped
	EventFixtureError
	EventRunAborted
	EventRunFinished
)

// Event is a progress event emitted while a run executes.
type Event struct {
	Type    EventType
	Message string
	// Done and Total track position within the discovered URL list.
	Done  int
	Total int
}
