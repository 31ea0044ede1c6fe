// Package browser wraps a go-rod Chrome session with polling find/wait
// primitives tuned for flaky, asynchronously rendered pages. Element absence
// is an ordinary outcome here: lookups return (value, false) on timeout
// instead of an error, and callers decide per call-site whether that is worth
// logging.
package browser

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const (
	// DefaultTimeout bounds a single find/wait call.
	DefaultTimeout = 10 * time.Second
	// DefaultPollInterval is the pause between condition checks.
	DefaultPollInterval = 250 * time.Millisecond
	// DefaultPageLoadTimeout bounds a single navigation.
	DefaultPageLoadTimeout = 30 * time.Second
)

// Session owns the browser connection and the single main tab every engine
// component acts through. There is exactly one mutator of the current page at
// any time; any component that navigates away or switches tab focus must
// restore the previous state before returning.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	log     *slog.Logger

	timeout  time.Duration
	poll     time.Duration
	pageLoad time.Duration
}

// Options configures a Session.
type Options struct {
	Timeout         time.Duration
	PollInterval    time.Duration
	PageLoadTimeout time.Duration
	Logger          *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.PollInterval == 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.PageLoadTimeout == 0 {
		o.PageLoadTimeout = DefaultPageLoadTimeout
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// NewSession wraps an already-connected browser. The caller keeps ownership
// of browser launch configuration; Close tears down the whole connection.
func NewSession(b *rod.Browser, opts Options) (*Session, error) {
	opts = opts.withDefaults()

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("create main tab: %w", err)
	}

	return &Session{
		browser:  b,
		page:     page,
		log:      opts.Logger,
		timeout:  opts.Timeout,
		poll:     opts.PollInterval,
		pageLoad: opts.PageLoadTimeout,
	}, nil
}

// Launch starts a headless Chrome, connects to it and returns a Session that
// owns the whole browser process.
func Launch(headless bool, opts Options) (*Session, error) {
	u, err := launcher.New().
		Headless(headless).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	s, err := NewSession(b, opts)
	if err != nil {
		b.Close()
		return nil, err
	}
	return s, nil
}

// Navigate opens url in the main tab and waits for the load event. A failure
// here is a session-level fault, not an expected absence.
func (s *Session) Navigate(url string) error {
	if err := s.page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := s.page.Timeout(s.pageLoad).WaitLoad(); err != nil {
		return fmt.Errorf("wait load of %s: %w", url, err)
	}
	return nil
}

// CurrentURL reports the address of the main tab.
func (s *Session) CurrentURL() (string, error) {
	info, err := s.page.Info()
	if err != nil {
		return "", fmt.Errorf("read page info: %w", err)
	}
	return info.URL, nil
}

// Restore navigates back to url unless the main tab is already there. Used by
// extractors that had to leave the caller's page.
func (s *Session) Restore(url string) error {
	current, err := s.CurrentURL()
	if err == nil && current == url {
		return nil
	}
	return s.Navigate(url)
}

// Page exposes the main tab for element-scoped operations.
func (s *Session) Page() *rod.Page { return s.page }

// Timeout returns the session's default per-call timeout.
func (s *Session) Timeout() time.Duration { return s.timeout }

// Logger returns the session's logger so collaborating components can share it.
func (s *Session) Logger() *slog.Logger { return s.log }

// Close shuts the browser down. The session is unusable afterwards.
func (s *Session) Close() error {
	if s.browser == nil {
		return nil
	}
	err := s.browser.Close()
	s.log.Info("browser session closed")
	return err
}

// queryAll runs the locator against the page once, without waiting. Absence
// is reported as an empty slice, a non-nil error means the query itself
// failed (usually a session-level fault).
func (s *Session) queryAll(loc Locator) (rod.Elements, error) {
	q, xpath := loc.query()
	if xpath {
		return s.page.ElementsX(q)
	}
	return s.page.Elements(q)
}
