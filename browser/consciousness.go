package browser

import (
	"sync"
	"time"
)

// Outcome classifies a navigation event handed to an Observer.
type Outcome string

const (
	OutcomeStarted Outcome = "started"
	OutcomeReady   Outcome = "ready"
	OutcomeFailed  Outcome = "failed"
)

// Observer receives navigation events. Notifications are fire-and-forget:
// implementations must not block on engine state and cannot mutate it.
type Observer interface {
	ObserveNavigation(tab TabID, url string, outcome Outcome)
}

// ConsciousnessLayer is the default observer. It keeps a coherence score
// summarizing how smoothly recent browsing has gone: successful loads pull
// the score toward 1, failures decay it.
type ConsciousnessLayer struct {
	mu        sync.Mutex
	enabled   bool
	coherence float64
	visits    int
}

func NewConsciousnessLayer(enabled bool) *ConsciousnessLayer {
	return &ConsciousnessLayer{enabled: enabled, coherence: 1.0}
}

func (c *ConsciousnessLayer) ObserveNavigation(tab TabID, url string, outcome Outcome) {
	if !c.enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visits++
	switch outcome {
	case OutcomeReady:
		c.coherence = c.coherence*0.9 + 0.1
	case OutcomeFailed:
		c.coherence *= 0.8
	}
}

// CoherenceScore reports the current score in [0, 1].
func (c *ConsciousnessLayer) CoherenceScore() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coherence
}

// Visits reports how many navigation events have been observed.
func (c *ConsciousnessLayer) Visits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visits
}

// AnalyzePattern scores engagement with a page from time spent on it,
// saturating at one minute.
func (c *ConsciousnessLayer) AnalyzePattern(url string, timeSpent time.Duration) float64 {
	if !c.enabled || timeSpent <= 0 {
		return 0
	}
	score := timeSpent.Seconds() / 60
	if score > 1 {
		score = 1
	}
	return score
}
