package browser

import (
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// overlaySelector matches the transient ad overlay that intercepts clicks on
// some pages. Coupled to the target site's markup.
const overlaySelector = ".adsclick"

// settleDelay is a fixed pause for animations with no observable completion
// condition. Everything else in this package waits on conditions instead.
const settleDelay = 500 * time.Millisecond

// Text returns the visible text of the first element matching loc.
func (s *Session) Text(loc Locator, o FindOpts) (string, bool) {
	el, ok := s.Find(loc, o)
	if !ok {
		return "", false
	}
	text, err := el.Text()
	if err != nil {
		if !o.Suppress {
			s.log.Error("read element text failed", "locator", loc.String(), "error", err)
		}
		return "", false
	}
	return text, true
}

// Attribute returns the named attribute of the first element matching loc.
// An element without the attribute yields ("", false).
func (s *Session) Attribute(loc Locator, name string, o FindOpts) (string, bool) {
	el, ok := s.Find(loc, o)
	if !ok {
		return "", false
	}
	attr, err := el.Attribute(name)
	if err != nil || attr == nil {
		return "", false
	}
	return *attr, true
}

// Click finds the element and clicks it if it is enabled. Interaction faults
// are reported through the return value; the caller decides whether to retry.
func (s *Session) Click(loc Locator, o FindOpts) bool {
	el, ok := s.Find(loc, o)
	if !ok {
		return false
	}
	if !elementEnabled(el) {
		return false
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		if !o.Suppress {
			s.log.Error("element not clickable", "locator", loc.String(), "error", err)
		}
		return false
	}
	return true
}

// InputText types text into the element, clearing existing content first when
// clearFirst is set.
func (s *Session) InputText(loc Locator, text string, clearFirst bool, o FindOpts) bool {
	el, ok := s.Find(loc, o)
	if !ok {
		return false
	}
	if !elementEnabled(el) {
		return false
	}
	if clearFirst {
		if err := el.SelectAllText(); err == nil {
			_ = el.Input("")
		}
	}
	if err := el.Input(text); err != nil {
		if !o.Suppress {
			s.log.Error("element not writable", "locator", loc.String(), "error", err)
		}
		return false
	}
	return true
}

// SelectOption picks a dropdown option by visible text, or by value attribute
// when text is empty.
func (s *Session) SelectOption(loc Locator, text, value string, o FindOpts) bool {
	el, ok := s.Find(loc, o)
	if !ok {
		return false
	}
	var err error
	switch {
	case text != "":
		err = el.Select([]string{text}, true, rod.SelectorTypeText)
	case value != "":
		err = el.Select([]string{`[value="` + value + `"]`}, true, rod.SelectorTypeCSSSector)
	default:
		s.log.Error("select needs option text or value", "locator", loc.String())
		return false
	}
	if err != nil {
		if !o.Suppress {
			s.log.Error("select option failed", "locator", loc.String(), "error", err)
		}
		return false
	}
	return true
}

// ElementState describes the interactability flags of an element.
type ElementState struct {
	Displayed bool
	Enabled   bool
	Selected  bool
}

// State reads the displayed/enabled/selected flags of the element. A missing
// element reports all flags false.
func (s *Session) State(loc Locator, o FindOpts) ElementState {
	el, ok := s.Find(loc, o)
	if !ok {
		return ElementState{}
	}
	displayed, _ := el.Visible()
	return ElementState{
		Displayed: displayed,
		Enabled:   elementEnabled(el),
		Selected:  elementSelected(el),
	}
}

// TableData extracts the cell text of an HTML table, one slice per non-empty
// row. Header rows (th) are included.
func (s *Session) TableData(loc Locator, o FindOpts) ([][]string, bool) {
	table, ok := s.Find(loc, o)
	if !ok {
		return nil, false
	}
	rows, err := table.Elements("tr")
	if err != nil {
		if !o.Suppress {
			s.log.Error("read table rows failed", "locator", loc.String(), "error", err)
		}
		return nil, false
	}

	var data [][]string
	for _, row := range rows {
		cells, err := row.Elements("td")
		if err != nil || len(cells) == 0 {
			cells, _ = row.Elements("th")
		}
		var rowData []string
		empty := true
		for _, cell := range cells {
			text, err := cell.Text()
			if err != nil {
				text = ""
			}
			text = strings.TrimSpace(text)
			if text != "" {
				empty = false
			}
			rowData = append(rowData, text)
		}
		if !empty {
			data = append(data, rowData)
		}
	}
	return data, true
}

// ClickThroughOverlay removes the known ad overlay if present, scrolls the
// target into view and performs a forced JS click. Needed where a naive click
// lands on the overlay instead of the target.
func (s *Session) ClickThroughOverlay(target Locator, o FindOpts) bool {
	overlay, found := s.Find(CSS(overlaySelector), FindOpts{Timeout: 5 * time.Second, Suppress: true})
	if found && overlay != nil {
		_, err := s.page.Eval(`(sel) => {
			document.querySelectorAll(sel).forEach((el) => el.remove());
		}`, overlaySelector)
		if err != nil && !o.Suppress {
			s.log.Warn("overlay removal failed", "error", err)
		}
	}

	el, ok := s.Find(target, o)
	if !ok {
		return false
	}
	if err := el.ScrollIntoView(); err != nil && !o.Suppress {
		s.log.Warn("scroll into view failed", "locator", target.String(), "error", err)
	}
	time.Sleep(settleDelay)

	if _, err := el.Eval(`() => this.click()`); err != nil {
		if !o.Suppress {
			s.log.Error("forced click failed", "locator", target.String(), "error", err)
		}
		return false
	}
	return true
}

func elementEnabled(el *rod.Element) bool {
	p, err := el.Property("disabled")
	if err != nil {
		return false
	}
	return !p.Bool()
}

func elementSelected(el *rod.Element) bool {
	if p, err := el.Property("selected"); err == nil && p.Bool() {
		return true
	}
	if p, err := el.Property("checked"); err == nil && p.Bool() {
		return true
	}
	return false
}
