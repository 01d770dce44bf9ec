// Package environment defines the upcall surface a Conn/Chan invokes on
// its embedder, plus the registry that lets Conn/Chan hold only a weak,
// non-owning reference to it.
//
// Conn and Chan never store an Environment directly: they store an ID
// and consult Registry immediately before every upcall. If the embedder
// has already torn the Environment down (Unregister), the call is
// dropped silently instead of racing a dangling pointer.
package environment

import (
	"sync"
	"sync/atomic"

	"github.com/netrack/ofcore/protocol"
)

// ChanID and ConnID are opaque handles an Environment implementation can
// use to correlate upcalls with its own channel/connection bookkeeping,
// without the library holding an owning reference back into the
// embedder's object graph.
type ChanID uint64
type ConnID uint64

// Environment is the single capability set an embedder implements to
// receive lifecycle and data events from a Chan/Conn pair, and to supply
// transaction ids on request.
type Environment interface {
	HandleEstablished(chanID ChanID, version protocol.Version)
	HandleClosed(chanID ChanID, connID ConnID)
	HandleConnectRefused(chanID ChanID, connID ConnID)
	HandleConnectFailed(chanID ChanID, connID ConnID)
	HandleAcceptFailed(chanID ChanID, connID ConnID)
	HandleNegotiationFailed(chanID ChanID, connID ConnID)

	// HandleSend reports that one message has been handed to the
	// transport in full, whether written directly or flushed later from
	// the congestion tail queue.
	HandleSend(chanID ChanID, connID ConnID)
	HandleRecv(chanID ChanID, connID ConnID, msg protocol.Msg)

	// CongestionIndication fires at most once per congestion episode;
	// there is no symmetric "drained" upcall.
	CongestionIndication(chanID ChanID, connID ConnID)

	GetAsyncXID(chanID ChanID, connID ConnID) protocol.XId
	GetSyncXID(chanID ChanID, connID ConnID, msgType protocol.Type, msgSub uint16) protocol.XId
	ReleaseSyncXID(chanID ChanID, connID ConnID, xid protocol.XId)
}

// ID identifies one registered Environment.
type ID uint64

// Registry is the process-wide set of live Environments, guarded by its
// own read-write lock. A Chan is constructed with the ID this registry
// returned from Register, and looks the Environment back up on every
// upcall.
type Registry struct {
	next uint64

	mu   sync.RWMutex
	envs map[ID]Environment
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{envs: make(map[ID]Environment)}
}

// Register adds env to the registry and returns its ID.
func (r *Registry) Register(env Environment) ID {
	id := ID(atomic.AddUint64(&r.next, 1))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.envs[id] = env

	return id
}

// Unregister removes id, if present. Once unregistered, upcalls
// addressed to id are dropped silently rather than erroring.
func (r *Registry) Unregister(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.envs, id)
}

// Get returns the Environment registered under id, or false if it has
// been unregistered (or never existed).
func (r *Registry) Get(id ID) (Environment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	env, ok := r.envs[id]
	return env, ok
}

// Len reports how many Environments are currently registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.envs)
}

// DefaultRegistry is the process-wide Environment registry most
// embedders share one Chan-tree with; tests and multi-tenant embedders
// may construct their own via NewRegistry instead.
var DefaultRegistry = NewRegistry()
