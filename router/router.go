// Package router dispatches decoded protocol.Msg values to registered
// handlers, the way the teacher's mux/dispatch/cookie trio routes raw
// *Request values: a Filter composes into a Matcher, a Matcher selects a
// Handler, and a Router holds the registered (Matcher, Handler) pairs
// under a single RWMutex.
package router

import (
	"sync"

	"github.com/netrack/ofcore/protocol"
)

// Handler processes one decoded message.
type Handler interface {
	Serve(msg protocol.Msg)
}

// HandlerFunc adapts an ordinary function to a Handler.
type HandlerFunc func(protocol.Msg)

// Serve implements Handler.
func (f HandlerFunc) Serve(msg protocol.Msg) { f(msg) }

// Filter is one predicate a Matcher combines with others.
type Filter interface {
	Filter(msg protocol.Msg) bool
}

// FilterFunc adapts an ordinary function to a Filter.
type FilterFunc func(protocol.Msg) bool

// Filter implements Filter.
func (f FilterFunc) Filter(msg protocol.Msg) bool { return f(msg) }

// TypeFilter matches messages of exactly one (version, wire type) pair,
// since a raw Type is only meaningful alongside the version that
// defines it.
type TypeFilter struct {
	Version protocol.Version
	Type    protocol.Type
}

// Filter implements Filter.
func (f *TypeFilter) Filter(msg protocol.Msg) bool {
	return msg.Header.Version == f.Version && msg.Header.Type == f.Type
}

// Cookied is implemented by message bodies that carry a cookie
// identifying the flow entry that produced them (FlowMod, FlowRemoved,
// v1.3 PacketIn).
type Cookied interface {
	GetCookie() uint64
}

// CookieFilter matches messages whose body is Cookied and whose cookie
// equals Cookie.
type CookieFilter struct {
	Cookie uint64
}

// Filter implements Filter.
func (f *CookieFilter) Filter(msg protocol.Msg) bool {
	c, ok := msg.Body.(Cookied)
	return ok && c.GetCookie() == f.Cookie
}

// Matcher reports whether a message satisfies every Filter it holds.
type Matcher struct {
	Filters []Filter
}

// Add appends f to the Matcher's filter chain.
func (m *Matcher) Add(f Filter) *Matcher {
	m.Filters = append(m.Filters, f)
	return m
}

// Match reports whether msg satisfies every registered Filter. An empty
// Matcher matches everything.
func (m *Matcher) Match(msg protocol.Msg) bool {
	for _, f := range m.Filters {
		if !f.Filter(msg) {
			return false
		}
	}
	return true
}

// entry pairs a Matcher with the Handler it guards, in registration
// order so earlier-registered, more specific matchers are tried first.
type entry struct {
	matcher *Matcher
	handler Handler
}

// Router holds the registered (Matcher, Handler) pairs and dispatches
// each incoming message to every matcher that accepts it.
type Router struct {
	mu      sync.RWMutex
	entries []entry
}

// New returns an empty Router.
func New() *Router {
	return &Router{}
}

// Handle registers handler to run for every message m matches.
func (r *Router) Handle(m *Matcher, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry{matcher: m, handler: handler})
}

// HandleType registers handler for every message of exactly (version,
// typ).
func (r *Router) HandleType(version protocol.Version, typ protocol.Type, handler Handler) {
	r.Handle((&Matcher{}).Add(&TypeFilter{Version: version, Type: typ}), handler)
}

// HandleFunc is the HandlerFunc-adapting counterpart of Handle.
func (r *Router) HandleFunc(m *Matcher, f HandlerFunc) {
	r.Handle(m, f)
}

// Dispatch runs every handler whose Matcher accepts msg, in registration
// order. It returns the number of handlers invoked.
func (r *Router) Dispatch(msg protocol.Msg) int {
	r.mu.RLock()
	matched := make([]Handler, 0, len(r.entries))
	for _, e := range r.entries {
		if e.matcher.Match(msg) {
			matched = append(matched, e.handler)
		}
	}
	r.mu.RUnlock()

	for _, h := range matched {
		h.Serve(msg)
	}

	return len(matched)
}
