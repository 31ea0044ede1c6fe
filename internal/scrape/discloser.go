package scrape

import (
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

const (
	// maxDiscloseAttempts caps "show more" clicks regardless of how much
	// content the control claims to have left.
	maxDiscloseAttempts = 10
	// verifyWindow bounds the wait for new content after a click.
	verifyWindow = 5 * time.Second
	// verifyPoll is the pause between content re-measurements.
	verifyPoll = 500 * time.Millisecond
)

// Discloser expands a paginated list behind a "show more" control until a
// requested number of logical items is visible or no further expansion is
// possible. Partial availability is expected: the caller compares the
// returned count against what it asked for and proceeds with what is there.
type Discloser struct {
	log *slog.Logger

	// ItemSelector counts the logical items (e.g. round headers).
	ItemSelector string
	// MoreSelector finds the "show more" control inside the container.
	MoreSelector string
	// DisabledClass marks the control as exhausted when present in its
	// class attribute.
	DisabledClass string
}

// NewDiscloser builds a loader over the given selectors.
func NewDiscloser(log *slog.Logger, itemSel, moreSel, disabledClass string) *Discloser {
	return &Discloser{
		log:           log,
		ItemSelector:  itemSel,
		MoreSelector:  moreSel,
		DisabledClass: disabledClass,
	}
}

// LoadAtLeast clicks "show more" until at least want+1 items are visible and
// returns the count actually reached. The extra item is the boundary proof:
// once header want+1 renders, the first want items are complete. The loop
// stops early when the control disappears, reports disabled, or a click
// produces no new content within the verification window.
func (d *Discloser) LoadAtLeast(container *rod.Element, want int) int {
	count := d.count(container)

	for attempts := 0; count < want+1 && attempts < maxDiscloseAttempts; attempts++ {
		more, ok := d.moreControl(container)
		if !ok {
			d.log.Info("no usable show-more control left", "visible", count)
			break
		}

		before := count
		if !d.click(more) {
			d.log.Warn("show-more click failed", "attempt", attempts+1)
			break
		}

		count = d.awaitGrowth(container, before)
		if count <= before {
			d.log.Warn("no new content after show-more click", "visible", count)
			break
		}
		d.log.Info("loaded more content", "visible", count, "wanted", want)
	}

	return count
}

func (d *Discloser) count(container *rod.Element) int {
	items, err := container.Elements(d.ItemSelector)
	if err != nil {
		return 0
	}
	return len(items)
}

// moreControl returns the "show more" element when it exists, is rendered,
// and is not flagged disabled.
func (d *Discloser) moreControl(container *rod.Element) (*rod.Element, bool) {
	els, err := container.Elements(d.MoreSelector)
	if err != nil || len(els) == 0 {
		return nil, false
	}
	more := els.First()

	if visible, err := more.Visible(); err != nil || !visible {
		return nil, false
	}
	if class, err := more.Attribute("class"); err == nil && class != nil {
		if d.DisabledClass != "" && strings.Contains(*class, d.DisabledClass) {
			return nil, false
		}
	}
	return more, true
}

func (d *Discloser) click(more *rod.Element) bool {
	if err := more.ScrollIntoView(); err != nil {
		d.log.Warn("scroll to show-more failed", "error", err)
	}
	if err := more.Click(proto.InputMouseButtonLeft, 1); err != nil {
		// The control can sit behind late-loading layers; a programmatic
		// click still reaches it.
		if _, err := more.Eval(`() => this.click()`); err != nil {
			return false
		}
	}
	return true
}

// awaitGrowth polls the item count until it strictly exceeds before or the
// verification window closes, and returns the last count observed.
func (d *Discloser) awaitGrowth(container *rod.Element, before int) int {
	deadline := time.Now().Add(verifyWindow)
	count := before
	for {
		count = d.count(container)
		if count > before || time.Now().After(deadline) {
			return count
		}
		time.Sleep(verifyPoll)
	}
}
