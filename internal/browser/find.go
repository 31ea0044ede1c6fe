package browser

import (
	"time"

	"github.com/go-rod/rod"
)

// FindOpts tunes a single lookup. The zero value means: session default
// timeout, element only needs to be present in the document, timeouts are
// logged.
type FindOpts struct {
	// Timeout overrides the session default when non-zero.
	Timeout time.Duration
	// Visible additionally requires the element to be rendered with a
	// non-zero box, which distinguishes "exists but hidden" from
	// "interactable".
	Visible bool
	// Suppress silences the log entry written when the lookup times out or
	// faults. The return value is unaffected.
	Suppress bool
}

func (s *Session) deadline(o FindOpts) time.Time {
	t := o.Timeout
	if t == 0 {
		t = s.timeout
	}
	return time.Now().Add(t)
}

// Find polls for a single element matching loc until it is found or the
// timeout elapses. Timeout is an ordinary outcome and yields (nil, false);
// it is never raised as an error because the target renders asynchronously
// and absence is expected.
func (s *Session) Find(loc Locator, o FindOpts) (*rod.Element, bool) {
	deadline := s.deadline(o)
	for {
		els, err := s.queryAll(loc)
		if err != nil {
			if !o.Suppress {
				s.log.Error("element query failed", "locator", loc.String(), "error", err)
			}
			return nil, false
		}
		for _, el := range els {
			if !o.Visible {
				return el, true
			}
			if ok, err := el.Visible(); err == nil && ok {
				return el, true
			}
		}
		if time.Now().After(deadline) {
			if !o.Suppress {
				s.log.Warn("element not found", "locator", loc.String())
			}
			return nil, false
		}
		time.Sleep(s.poll)
	}
}

// FindAll polls until at least one matching element exists, then returns all
// of them in document order. An empty slice after the timeout is the absent
// result, not an error.
func (s *Session) FindAll(loc Locator, o FindOpts) rod.Elements {
	deadline := s.deadline(o)
	for {
		els, err := s.queryAll(loc)
		if err != nil {
			if !o.Suppress {
				s.log.Error("element query failed", "locator", loc.String(), "error", err)
			}
			return nil
		}
		matched := els
		if o.Visible {
			matched = nil
			for _, el := range els {
				if ok, err := el.Visible(); err == nil && ok {
					matched = append(matched, el)
				}
			}
		}
		if len(matched) > 0 {
			return matched
		}
		if time.Now().After(deadline) {
			if !o.Suppress {
				s.log.Warn("no elements found", "locator", loc.String())
			}
			return nil
		}
		time.Sleep(s.poll)
	}
}

// WaitGone polls until no element matches loc. Reports false when the
// element is still present after the timeout.
func (s *Session) WaitGone(loc Locator, o FindOpts) bool {
	deadline := s.deadline(o)
	for {
		els, err := s.queryAll(loc)
		if err != nil {
			if !o.Suppress {
				s.log.Error("element query failed", "locator", loc.String(), "error", err)
			}
			return false
		}
		if len(els) == 0 {
			return true
		}
		if time.Now().After(deadline) {
			if !o.Suppress {
				s.log.Warn("element did not disappear", "locator", loc.String())
			}
			return false
		}
		time.Sleep(s.poll)
	}
}

// IsPresent reports whether an element matching loc shows up within the
// timeout, visibility not required.
func (s *Session) IsPresent(loc Locator, o FindOpts) bool {
	o.Visible = false
	_, ok := s.Find(loc, o)
	return ok
}
