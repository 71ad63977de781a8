// Package browser manages browsing sessions: per-tab navigation state and
// documents, and the plugin that owns the tab registry. Parsing itself
// lives in the parser package; this package coordinates it per tab and
// guarantees that a superseded navigation can never overwrite a newer one.
package browser

import (
	"sync"

	"github.com/google/uuid"

	"github.com/essentia/browsercore/parser/spec"
)

// TabID uniquely identifies a tab session within a plugin's lifetime.
type TabID string

func newTabID() TabID {
	return TabID(uuid.NewString())
}

// NavigationState is the tab session lifecycle state.
type NavigationState uint

const (
	Idle NavigationState = iota
	Navigating
	Parsing
	Ready
	Failed
)

func (s NavigationState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Navigating:
		return "navigating"
	case Parsing:
		return "parsing"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

const (
	defaultURL   = "about:blank"
	defaultTitle = "New Tab"
)

// TabSession is one browsing context. Every navigation stamps a new
// generation; pipeline callbacks carry the generation they were started
// under, and any callback whose generation no longer matches is rejected
// with errStaleResult. That check is the whole cancellation mechanism:
// superseded pipelines run to completion and their results are dropped.
type TabSession struct {
	id TabID

	mu         sync.Mutex
	state      NavigationState
	url        string
	title      string
	history    []string
	document   *spec.Document
	generation uint64
	lastErr    error
	closed     bool
}

func newTabSession() *TabSession {
	return &TabSession{
		id:    newTabID(),
		state: Idle,
		url:   defaultURL,
		title: defaultTitle,
	}
}

func (s *TabSession) ID() TabID {
	return s.id
}

func (s *TabSession) State() NavigationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// URL is the most recently requested URL, committed or not.
func (s *TabSession) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// Title is the installed document's title, or "New Tab" before the first
// successful load.
func (s *TabSession) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// History returns the committed URLs in commit order.
func (s *TabSession) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// Document returns the currently installed document, nil before the first
// successful navigation. The tree is immutable once installed; it is
// replaced wholesale by the next navigation, never patched.
func (s *TabSession) Document() *spec.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

// Err returns the failure behind the current Failed state, nil otherwise.
func (s *TabSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Failed {
		return nil
	}
	return s.lastErr
}

// beginNavigation stamps a fresh generation, invalidating any in-flight
// pipeline, and moves the session to Navigating.
func (s *TabSession) beginNavigation(url string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, errStaleResult
	}
	s.generation++
	s.state = Navigating
	s.url = url
	return s.generation, nil
}

func (s *TabSession) beginParse(gen uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return errStaleResult
	}
	s.state = Parsing
	return nil
}

// completeParse installs the document if gen is still current, commits the
// URL to history and refreshes the title.
func (s *TabSession) completeParse(gen uint64, doc *spec.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return errStaleResult
	}
	s.document = doc
	s.state = Ready
	s.lastErr = nil
	s.history = append(s.history, doc.URL)
	if t := doc.Title(); t != "" {
		s.title = t
	} else {
		s.title = defaultTitle
	}
	return nil
}

// failNavigation moves the session to Failed, keeping the previously
// installed document so the tab does not regress to blank.
func (s *TabSession) failNavigation(gen uint64, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return errStaleResult
	}
	s.state = Failed
	s.lastErr = cause
	return nil
}

// close abandons the session. The generation bump turns every in-flight
// pipeline callback stale.
func (s *TabSession) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.generation++
}
