package session

import (
	"net/http"
	"time"

	"github.com/Ziming-L/wwu-course-navigator/pkg/middleware/tabid"
)

// Transport attaches the tab identity header to every request passing
// through it. Components are handed a client built on this transport, so the
// header cannot be bypassed or forgotten by any individual caller.
type Transport struct {
	identity *Identity
	base     http.RoundTripper
}

// NewTransport wraps base (nil means http.DefaultTransport).
func NewTransport(identity *Identity, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{identity: identity, base: base}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	id, err := t.identity.GetOrCreate()
	if err != nil {
		return nil, err
	}

	clone := req.Clone(req.Context())
	clone.Header.Set(tabid.Header, id)
	return t.base.RoundTrip(clone)
}

// NewHTTPClient builds the shared session-scoped HTTP client.
func NewHTTPClient(identity *Identity, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: NewTransport(identity, nil),
		Timeout:   timeout,
	}
}
