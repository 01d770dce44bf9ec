// Package channel multiplexes a primary connection and up to 255
// auxiliaries, grouped by datapath, into the single logical OpenFlow
// channel an Environment observes. It reflects a subset of the
// connection-level upcalls from conn up to the channel level: an
// established primary surfaces once as a channel-established event, and
// closing the primary cascades to every auxiliary.
package channel

import (
	"sync"

	"k8s.io/klog/v2"

	"github.com/netrack/ofcore/conn"
	"github.com/netrack/ofcore/environment"
	"github.com/netrack/ofcore/metrics"
	"github.com/netrack/ofcore/protocol"
	"github.com/netrack/ofcore/wire"
)

// Chan owns one primary Conn and its auxiliaries, all sharing a single
// negotiated version once the primary is established.
type Chan struct {
	envReg *environment.Registry
	envID  environment.ID
	id     environment.ChanID

	mu          sync.RWMutex
	conns       map[protocol.AuxId]*conn.Conn
	lastAuxID   protocol.AuxId
	version     protocol.Version
	established bool

	metrics *metrics.Collectors
}

// SetMetrics attaches the Prometheus collectors established/closed
// events are reported to. Optional; nil reports nothing.
func (ch *Chan) SetMetrics(m *metrics.Collectors) {
	ch.mu.Lock()
	ch.metrics = m
	ch.mu.Unlock()
}

// New constructs an empty Chan. AddConn(protocol.Primary, ...) must be
// called before any auxiliary is accepted.
func New(envReg *environment.Registry, envID environment.ID, id environment.ChanID) *Chan {
	return &Chan{
		envReg: envReg,
		envID:  envID,
		id:     id,
		conns:  make(map[protocol.AuxId]*conn.Conn),
	}
}

func (c *Chan) env() (environment.Environment, bool) {
	if c.envReg == nil {
		return nil, false
	}
	return c.envReg.Get(c.envID)
}

// AddConn registers c under auxID. Adding protocol.Primary is only valid
// on an empty Chan; adding an auxiliary before the primary has been
// established is refused with wire.ErrNotEstablished.
func (ch *Chan) AddConn(auxID protocol.AuxId, c *conn.Conn) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if auxID != protocol.Primary && !ch.established {
		return wire.Wrap(wire.ErrNotEstablished, "channel: auxiliary before primary established")
	}
	if _, exists := ch.conns[auxID]; exists {
		return wire.Wrap(wire.ErrChanExists, "channel: auxid %d already in use", auxID)
	}

	ch.conns[auxID] = c
	if auxID > ch.lastAuxID {
		ch.lastAuxID = auxID
	}

	if auxID == protocol.Primary {
		c.SetLifecycleHooks(ch.NotifyEstablished, func() { ch.NotifyClosed(protocol.Primary) })
	} else {
		// An auxiliary reaching Established has no channel-level
		// reflection of its own; only the primary's negotiated version
		// surfaces as the channel's handle_established.
		c.SetLifecycleHooks(func(protocol.Version) {}, func() { ch.NotifyClosed(auxID) })
	}

	return nil
}

// NextAuxID scans forward from the last assigned auxiliary id, wrapping
// at protocol.MaxAuxId, and returns the first id currently free. It
// returns wire.ErrChanExhausted once every one of the 256 slots (the
// primary included) is occupied.
func (ch *Chan) NextAuxID() (protocol.AuxId, error) {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.conns) > int(protocol.MaxAuxId) {
		return 0, wire.Wrap(wire.ErrChanExhausted, "channel: all auxiliary slots in use")
	}

	start := ch.lastAuxID
	for i := 0; i <= int(protocol.MaxAuxId); i++ {
		candidate := protocol.AuxId((int(start) + 1 + i) % (int(protocol.MaxAuxId) + 1))
		if candidate == protocol.Primary {
			continue
		}
		if _, taken := ch.conns[candidate]; !taken {
			return candidate, nil
		}
	}

	return 0, wire.Wrap(wire.ErrChanExhausted, "channel: all auxiliary slots in use")
}

// HasConn reports whether auxID is currently registered.
func (ch *Chan) HasConn(auxID protocol.AuxId) bool {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	_, ok := ch.conns[auxID]
	return ok
}

// GetConn returns the Conn registered under auxID, if any.
func (ch *Chan) GetConn(auxID protocol.AuxId) (*conn.Conn, bool) {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	c, ok := ch.conns[auxID]
	return c, ok
}

// Len reports how many connections (primary plus auxiliaries) are
// currently registered.
func (ch *Chan) Len() int {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	return len(ch.conns)
}

// NotifyEstablished reflects a primary Conn's negotiated-version upcall
// to channel scope: the first time the primary establishes, it surfaces
// as a single HandleEstablished for the whole channel. Re-establishment
// of an already-established channel (which cannot happen for the
// primary under this module's state machine) is a no-op.
func (ch *Chan) NotifyEstablished(version protocol.Version) {
	ch.mu.Lock()
	if ch.established {
		ch.mu.Unlock()
		return
	}
	ch.established = true
	ch.version = version
	m := ch.metrics
	ch.mu.Unlock()

	if m != nil {
		m.ObserveEstablished()
	}

	if env, ok := ch.env(); ok {
		env.HandleEstablished(ch.id, version)
	}
}

// NotifyClosed handles one Conn's closure. Each Conn reports its own
// closure exactly once, through the lifecycle hook AddConn attached to
// it: an auxiliary's call here only drops it from the Chan and forwards
// its HandleClosed; the primary's cascades by closing every remaining
// auxiliary first (each of which reports its own closure back through
// this same path) before dropping the primary and forwarding its
// HandleClosed last.
func (ch *Chan) NotifyClosed(auxID protocol.AuxId) {
	if auxID != protocol.Primary {
		ch.mu.Lock()
		delete(ch.conns, auxID)
		ch.mu.Unlock()

		if env, ok := ch.env(); ok {
			env.HandleClosed(ch.id, environment.ConnID(auxID))
		}
		return
	}

	ch.mu.Lock()
	auxiliaries := make([]*conn.Conn, 0, len(ch.conns))
	auxIDs := make([]protocol.AuxId, 0, len(ch.conns))
	for id, c := range ch.conns {
		if id == protocol.Primary {
			continue
		}
		auxiliaries = append(auxiliaries, c)
		auxIDs = append(auxIDs, id)
	}
	ch.mu.Unlock()

	// Each Close below runs this same NotifyClosed (non-primary branch)
	// through the auxiliary's own onClosed hook, which deletes it from
	// ch.conns and forwards its HandleClosed.
	for i, c := range auxiliaries {
		if err := c.Close(); err != nil {
			klog.ErrorS(err, "channel: auxiliary close failed", "auxid", auxIDs[i])
		}
	}

	ch.mu.Lock()
	delete(ch.conns, protocol.Primary)
	ch.established = false
	m := ch.metrics
	ch.mu.Unlock()

	if m != nil {
		m.ObserveClosed()
	}

	if env, ok := ch.env(); ok {
		env.HandleClosed(ch.id, environment.ConnID(protocol.Primary))
	}
}

// Close closes the primary, which cascades through NotifyClosed to every
// auxiliary (each auxiliary's HandleClosed precedes the primary's) and
// empties the Chan. Without a primary it only empties the Chan.
func (ch *Chan) Close() error {
	primary, hasPrimary := ch.GetConn(protocol.Primary)
	if !hasPrimary {
		ch.mu.Lock()
		ch.conns = make(map[protocol.AuxId]*conn.Conn)
		ch.mu.Unlock()
		return nil
	}

	return primary.Close()
}
