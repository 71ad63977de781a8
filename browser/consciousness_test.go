package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoherenceScoreTracksOutcomes(t *testing.T) {
	c := NewConsciousnessLayer(true)
	assert.Equal(t, 1.0, c.CoherenceScore())

	c.ObserveNavigation("tab", urlAlpha, OutcomeStarted)
	c.ObserveNavigation("tab", urlAlpha, OutcomeReady)
	assert.Equal(t, 1.0, c.CoherenceScore(), "successful loads keep a perfect score at 1")

	c.ObserveNavigation("tab", urlBeta, OutcomeFailed)
	failed := c.CoherenceScore()
	assert.Less(t, failed, 1.0)

	c.ObserveNavigation("tab", urlAlpha, OutcomeReady)
	assert.Greater(t, c.CoherenceScore(), failed, "a successful load recovers the score")
	assert.Equal(t, 4, c.Visits())
}

func TestDisabledLayerIgnoresEvents(t *testing.T) {
	c := NewConsciousnessLayer(false)
	c.ObserveNavigation("tab", urlAlpha, OutcomeFailed)
	assert.Equal(t, 1.0, c.CoherenceScore())
	assert.Equal(t, 0, c.Visits())
	assert.Equal(t, 0.0, c.AnalyzePattern(urlAlpha, time.Minute))
}

func TestAnalyzePattern(t *testing.T) {
	c := NewConsciousnessLayer(true)
	assert.Equal(t, 0.0, c.AnalyzePattern(urlAlpha, 0))
	assert.InDelta(t, 0.5, c.AnalyzePattern(urlAlpha, 30*time.Second), 0.001)
	assert.Equal(t, 1.0, c.AnalyzePattern(urlAlpha, 5*time.Minute), "engagement saturates at one minute")
}

func TestPluginExposesCoherence(t *testing.T) {
	p := NewBrowserPlugin(DefaultConfig(), testLoader())
	score, ok := p.CoherenceScore()
	assert.True(t, ok)
	assert.Equal(t, 1.0, score)

	custom := NewBrowserPlugin(testConfig(), testLoader(), WithObserver(&recordingObserver{}))
	_, ok = custom.CoherenceScore()
	assert.False(t, ok)
}
