package models

import "fmt"

// Status is the lifecycle state of a match. The status also selects the
// match variant: FINISHED matches carry scores, SCHEDULED matches carry
// predictive context.
type Status int

const (
	StatusScheduled Status = iota
	StatusLive
	StatusFinished
	StatusPostponed
	StatusCancelled
	StatusAbandoned
)

var statusNames = [...]string{
	StatusScheduled: "SCHEDULED",
	StatusLive:      "LIVE",
	StatusFinished:  "FINISHED",
	StatusPostponed: "POSTPONED",
	StatusCancelled: "CANCELLED",
	StatusAbandoned: "ABANDONED",
}

func (s Status) String() string {
	if int(s) >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("STATUS(%d)", int(s))
}

// MarshalJSON renders the status as its name string.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}
