package browser

import (
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// FollowLinkInNewTab clicks trigger, waits for the single tab it opens, reads
// that tab's address, closes it and returns focus to the main tab.
//
// Focus restoration is the protocol's central invariant: an extractor that
// leaves the session pointed at the wrong tab corrupts every operation that
// follows. The re-activation therefore runs deferred, on every exit path,
// success or failure.
func (s *Session) FollowLinkInNewTab(trigger *rod.Element) (string, bool) {
	before, err := s.browser.Pages()
	if err != nil {
		s.log.Error("list open tabs failed", "error", err)
		return "", false
	}
	known := make(map[proto.TargetTargetID]bool, len(before))
	for _, p := range before {
		known[p.TargetID] = true
	}

	defer func() {
		if _, err := s.page.Activate(); err != nil {
			s.log.Error("restore main tab focus failed", "error", err)
		}
	}()

	// Forced click: the trigger row may sit behind overlapping layers.
	if _, err := trigger.Eval(`() => this.click()`); err != nil {
		s.log.Error("click tab trigger failed", "error", err)
		return "", false
	}

	deadline := time.Now().Add(s.timeout)
	for {
		pages, err := s.browser.Pages()
		if err != nil {
			s.log.Error("list open tabs failed", "error", err)
			return "", false
		}

		var fresh []*rod.Page
		for _, p := range pages {
			if !known[p.TargetID] {
				fresh = append(fresh, p)
			}
		}
		if len(fresh) > 0 {
			url := ""
			if info, err := fresh[0].Info(); err == nil && info.URL != "about:blank" {
				url = info.URL
			}
			// A tab can exist before its address is committed. Keep it open
			// and poll again until the URL is readable.
			if url == "" && time.Now().Before(deadline) {
				time.Sleep(s.poll)
				continue
			}
			for _, p := range fresh {
				_ = p.Close()
			}
			return url, url != ""
		}

		if time.Now().After(deadline) {
			s.log.Warn("no new tab opened before timeout")
			return "", false
		}
		time.Sleep(s.poll)
	}
}
