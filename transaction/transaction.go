// Package transaction allocates and tracks OpenFlow transaction ids
// (XIds). Every request/reply pair that flows through a Chan is
// correlated by XId, so allocation must never hand out a value still in
// flight.
package transaction

import (
	"sync"
	"sync/atomic"

	"github.com/netrack/ofcore/protocol"
)

// Registry allocates XIds and tracks the ones currently awaiting a
// synchronous reply. Async XIds (Echo-Request, unsolicited messages) are
// handed out from the same counter but are never registered, so they
// never collide with a pending sync XId and never need releasing.
type Registry struct {
	next uint32

	mu      sync.RWMutex
	pending map[protocol.XId]struct{}
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{pending: make(map[protocol.XId]struct{})}
}

// NextAsyncXID returns a fresh XId that is not tracked as pending. Use it
// for messages that have no reply to correlate, such as Echo-Request or
// an unsolicited Packet-Out.
func (reg *Registry) NextAsyncXID() protocol.XId {
	return protocol.XId(atomic.AddUint32(&reg.next, 1))
}

// NextSyncXID allocates a fresh XId and marks it pending, skipping ahead
// if the counter ever wraps into an XId still awaiting a reply. The
// caller must eventually pass the returned XId to ReleaseSyncXID, whether
// or not a reply arrives, to free it for reuse.
func (reg *Registry) NextSyncXID() protocol.XId {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for {
		xid := protocol.XId(atomic.AddUint32(&reg.next, 1))
		if _, busy := reg.pending[xid]; busy {
			continue
		}

		reg.pending[xid] = struct{}{}
		return xid
	}
}

// ReleaseSyncXID frees xid, making it eligible for reuse by a future
// NextSyncXID call. Releasing an xid that was never allocated, or that
// was already released, is a no-op.
func (reg *Registry) ReleaseSyncXID(xid protocol.XId) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	delete(reg.pending, xid)
}

// Pending reports whether xid is currently tracked as awaiting a reply.
func (reg *Registry) Pending(xid protocol.XId) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	_, busy := reg.pending[xid]
	return busy
}

// Len reports the number of XIds currently pending.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return len(reg.pending)
}
