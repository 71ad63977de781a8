package browser

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/essentia/browsercore/parser"
	"github.com/essentia/browsercore/parser/spec"
)

// BrowserPlugin owns the tab registry and routes navigation requests. It
// is the only mutable shared state in the engine; one mutex guards the
// registry with short critical sections and is never held across a fetch
// or a parse. The host creates and owns the instance, there is no package
// singleton.
type BrowserPlugin struct {
	cfg      Config
	loader   ResourceLoader
	renderer Renderer
	observer Observer
	log      *logrus.Logger

	mu     sync.Mutex
	tabs   map[TabID]*TabSession
	order  []TabID
	active TabID
}

// Option customizes a BrowserPlugin at construction.
type Option func(*BrowserPlugin)

// WithObserver installs a navigation observer, replacing the default
// consciousness layer.
func WithObserver(o Observer) Option {
	return func(p *BrowserPlugin) { p.observer = o }
}

// WithRenderer installs the rendering collaborator.
func WithRenderer(r Renderer) Option {
	return func(p *BrowserPlugin) { p.renderer = r }
}

// WithLogger replaces the default logger.
func WithLogger(l *logrus.Logger) Option {
	return func(p *BrowserPlugin) { p.log = l }
}

// NewBrowserPlugin creates an empty registry backed by loader.
func NewBrowserPlugin(cfg Config, loader ResourceLoader, opts ...Option) *BrowserPlugin {
	p := &BrowserPlugin{
		cfg:      cfg,
		loader:   loader,
		renderer: nopRenderer{},
		log:      logrus.New(),
		tabs:     make(map[TabID]*TabSession),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.observer == nil && cfg.EnableConsciousness {
		p.observer = NewConsciousnessLayer(true)
	}
	return p
}

// NewTab creates an Idle session, registers it in creation order and
// focuses it.
func (p *BrowserPlugin) NewTab() TabID {
	s := newTabSession()
	p.mu.Lock()
	p.tabs[s.ID()] = s
	p.order = append(p.order, s.ID())
	p.active = s.ID()
	p.mu.Unlock()
	p.log.WithField("tab", s.ID()).Debug("tab created")
	return s.ID()
}

func (p *BrowserPlugin) lookup(id TabID) (*TabSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.tabs[id]
	if !ok {
		return nil, ErrUnknownTab
	}
	return s, nil
}

// Navigate starts an asynchronous fetch+parse pipeline for the tab. The
// call returns once the navigation is stamped; completion is observable
// through the tab's state, the renderer notification and the observer.
func (p *BrowserPlugin) Navigate(id TabID, url string) error {
	s, err := p.lookup(id)
	if err != nil {
		return err
	}
	gen, err := s.beginNavigation(url)
	if err != nil {
		return ErrUnknownTab
	}
	p.mu.Lock()
	p.active = id
	p.mu.Unlock()
	p.log.WithFields(logrus.Fields{"tab": id, "url": url, "generation": gen}).Info("navigation started")
	p.notify(id, url, OutcomeStarted)
	go p.runPipeline(s, url, gen)
	return nil
}

// runPipeline performs one generation-stamped fetch+parse. Stale results
// are discarded at each installation point.
func (p *BrowserPlugin) runPipeline(s *TabSession, url string, gen uint64) {
	log := p.log.WithFields(logrus.Fields{"tab": s.ID(), "url": url, "generation": gen})

	body, meta, err := p.loader.Fetch(context.Background(), url)
	if err != nil {
		cause := errors.Wrap(ErrNavigationFailed, err.Error())
		if s.failNavigation(gen, cause) == nil {
			log.WithError(err).Warn("fetch failed")
			p.notify(s.ID(), url, OutcomeFailed)
		}
		return
	}
	defer body.Close()

	if err := s.beginParse(gen); err != nil {
		log.Debug("navigation superseded before parse")
		return
	}
	result, err := parser.Parse(body, url, meta.Encoding)
	if err != nil {
		cause := errors.Wrap(ErrNavigationFailed, err.Error())
		if s.failNavigation(gen, cause) == nil {
			log.WithError(err).Warn("document stream failed")
			p.notify(s.ID(), url, OutcomeFailed)
		}
		return
	}
	if err := s.completeParse(gen, result.Document); err != nil {
		log.Debug("stale parse result discarded")
		return
	}
	log.WithFields(logrus.Fields{
		"encoding":     result.Encoding,
		"parse_errors": len(result.Errors),
	}).Info("document ready")
	p.renderer.DocumentChanged(s.ID())
	p.notify(s.ID(), url, OutcomeReady)
}

func (p *BrowserPlugin) notify(id TabID, url string, outcome Outcome) {
	if p.observer == nil {
		return
	}
	go p.observer.ObserveNavigation(id, url, outcome)
}

// CloseTab removes the session from the registry and abandons any
// in-flight pipeline for it.
func (p *BrowserPlugin) CloseTab(id TabID) error {
	p.mu.Lock()
	s, ok := p.tabs[id]
	if !ok {
		p.mu.Unlock()
		return ErrUnknownTab
	}
	delete(p.tabs, id)
	for i, other := range p.order {
		if other == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	if p.active == id {
		p.active = ""
		if len(p.order) > 0 {
			p.active = p.order[len(p.order)-1]
		}
	}
	p.mu.Unlock()
	s.close()
	p.log.WithField("tab", id).Debug("tab closed")
	return nil
}

// ListTabs returns tab ids in creation order.
func (p *BrowserPlugin) ListTabs() []TabID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]TabID(nil), p.order...)
}

// ActiveTab returns the focused tab id, false when no tabs are open.
func (p *BrowserPlugin) ActiveTab() (TabID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active, p.active != ""
}

// Tab returns the session for id, for state and history inspection.
func (p *BrowserPlugin) Tab(id TabID) (*TabSession, error) {
	return p.lookup(id)
}

// DocumentFor exposes the tab's current document to the rendering
// collaborator. Nil before the first successful navigation. The reference
// stays valid until the next successful navigation on the tab; readers
// must not retain it across a Navigate call.
func (p *BrowserPlugin) DocumentFor(id TabID) (*spec.Document, error) {
	s, err := p.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.Document(), nil
}

// Resize forwards a viewport change to the rendering collaborator.
func (p *BrowserPlugin) Resize(width, height float64) {
	p.renderer.Resize(width, height)
}

// CoherenceScore reports the consciousness layer's score, false when a
// custom observer is installed or the layer is disabled.
func (p *BrowserPlugin) CoherenceScore() (float64, bool) {
	if cl, ok := p.observer.(*ConsciousnessLayer); ok {
		return cl.CoherenceScore(), true
	}
	return 0, false
}
