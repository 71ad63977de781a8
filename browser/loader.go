package browser

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// Metadata describes a fetched resource. Encoding is the declared charset
// label, if the transport supplied one; empty means undeclared.
type Metadata struct {
	ContentType string
	Encoding    string
}

// ResourceLoader hands raw bytes plus metadata to the engine. Network
// concerns (caching, TLS, cookies, timeout policy) live behind this
// interface; the engine treats any fetch error as a navigation failure.
type ResourceLoader interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, Metadata, error)
}

type page struct {
	body []byte
	meta Metadata
}

// MapLoader serves documents from memory, keyed by URL. It backs the demo
// binary and the tests.
type MapLoader struct {
	mu    sync.RWMutex
	pages map[string]page
}

func NewMapLoader() *MapLoader {
	return &MapLoader{pages: make(map[string]page)}
}

// Add registers body under url, replacing any previous entry.
func (l *MapLoader) Add(url string, body []byte, meta Metadata) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pages[url] = page{body: body, meta: meta}
}

func (l *MapLoader) Fetch(ctx context.Context, url string) (io.ReadCloser, Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, Metadata{}, err
	}
	l.mu.RLock()
	p, ok := l.pages[url]
	l.mu.RUnlock()
	if !ok {
		return nil, Metadata{}, errors.Errorf("no document registered for %q", url)
	}
	return io.NopCloser(bytes.NewReader(p.body)), p.meta, nil
}
