package browser

import (
	"fmt"
	"strings"
)

// Kind identifies the strategy used to locate an element on a page.
type Kind int

const (
	ByCSS Kind = iota
	ByXPath
	ByID
	ByName
	ByClassName
	ByTagName
	ByLinkText
	ByPartialLinkText
)

var kindNames = map[Kind]string{
	ByCSS:             "css",
	ByXPath:           "xpath",
	ByID:              "id",
	ByName:            "name",
	ByClassName:       "class-name",
	ByTagName:         "tag-name",
	ByLinkText:        "link-text",
	ByPartialLinkText: "partial-link-text",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a configuration string into a Kind. It is meant for the
// config/CLI boundary; inside the engine locators are always typed.
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if n == strings.ToLower(strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return ByCSS, fmt.Errorf("unknown locator kind %q", s)
}

// Locator is an immutable (kind, value) pair identifying a page element.
type Locator struct {
	Kind  Kind
	Value string
}

// CSS builds a CSS-selector locator.
func CSS(selector string) Locator { return Locator{Kind: ByCSS, Value: selector} }

// XPath builds an XPath locator.
func XPath(expr string) Locator { return Locator{Kind: ByXPath, Value: expr} }

func (l Locator) String() string {
	return l.Kind.String() + "=" + l.Value
}

// query lowers the locator to either a CSS selector or an XPath expression.
// Every kind maps to exactly one of the two, so callers branch once on xpath.
func (l Locator) query() (q string, xpath bool) {
	switch l.Kind {
	case ByXPath:
		return l.Value, true
	case ByID:
		return fmt.Sprintf("[id=%q]", l.Value), false
	case ByName:
		return fmt.Sprintf("[name=%q]", l.Value), false
	case ByClassName:
		return "." + l.Value, false
	case ByTagName:
		return l.Value, false
	case ByLinkText:
		return fmt.Sprintf(`//a[normalize-space(.)=%s]`, xpathLiteral(l.Value)), true
	case ByPartialLinkText:
		return fmt.Sprintf(`//a[contains(normalize-space(.), %s)]`, xpathLiteral(l.Value)), true
	default:
		return l.Value, false
	}
}

// xpathLiteral quotes s for use inside an XPath expression. XPath 1.0 has no
// escape sequence for quotes, so a value containing both kinds is stitched
// together with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if p != "" {
			quoted = append(quoted, `"`+p+`"`)
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
