// Package transporttest provides an in-memory transport.Transport for
// exercising conn and channel without a real socket.
package transporttest

import (
	"sync"

	"github.com/netrack/ofcore/transport"
)

// Pipe is an in-memory, optionally capacity-limited transport.Transport.
// Writes past Capacity (if nonzero) return WouldBlock instead of
// buffering, simulating a congested socket; Drain then frees the
// buffered bytes and fires the writability notification, the way a
// real socket's send buffer drains and the poller wakes the writer.
type Pipe struct {
	Capacity int // 0 means unlimited

	mu       sync.Mutex
	inbox    []byte
	outbox   []byte
	closed   bool
	onNotify func()
}

// Open implements transport.Transport.
func (p *Pipe) Open() error { return nil }

// Close implements transport.Transport.
func (p *Pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	return nil
}

// Write implements transport.Transport.
func (p *Pipe) Write(b []byte) (transport.WriteResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Capacity > 0 && len(p.outbox)+len(b) > p.Capacity {
		return transport.WriteResult{Outcome: transport.WouldBlock}, nil
	}

	p.outbox = append(p.outbox, b...)
	return transport.WriteResult{Outcome: transport.Accepted, N: len(b)}, nil
}

// Read implements transport.Transport.
func (p *Pipe) Read() (transport.ReadResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.inbox) == 0 {
		if p.closed {
			return transport.ReadResult{Outcome: transport.Eof}, nil
		}
		return transport.ReadResult{Outcome: transport.NoBytes}, nil
	}

	data := p.inbox
	p.inbox = nil
	return transport.ReadResult{Outcome: transport.Bytes, Data: data}, nil
}

// Notify implements transport.Transport.
func (p *Pipe) Notify(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.onNotify = fn
}

// Feed appends b to the inbound queue a Read will next return, and wakes
// any registered Notify callback.
func (p *Pipe) Feed(b []byte) {
	p.mu.Lock()
	p.inbox = append(p.inbox, b...)
	fn := p.onNotify
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Drain empties the outbound buffer written so far, returning it, and
// wakes the writability notification so a previously WouldBlock'd
// sender can retry.
func (p *Pipe) Drain() []byte {
	p.mu.Lock()
	data := p.outbox
	p.outbox = nil
	fn := p.onNotify
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
	return data
}
