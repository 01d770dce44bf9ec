package protocol

import "github.com/netrack/ofcore/wire"

// Body is a decoded OpenFlow message payload: everything past the 8-byte
// Header. Concrete types live in the per-version packages (protocol/v10,
// protocol/v12, protocol/v13).
type Body interface {
	wire.Packable
	wire.Unpackable
}

// Msg is a complete OpenFlow message: a Header plus its version-specific
// Body.
type Msg struct {
	Header Header
	Body   Body
}

// Maker constructs a fresh, zero-valued Body for a given wire Type. A
// version package registers one Maker per Type it implements.
type Maker func() Body

// Registry maps a version's wire Type codes to Body constructors. Each
// version package exposes exactly one Registry, and protocol/codec holds
// one table per supported wire version.
type Registry map[Type]Maker

// Lookup returns the Maker registered for t, or nil and false if t is not
// recognized by this registry (the UnsupportedKind case).
func (reg Registry) Lookup(t Type) (Maker, bool) {
	m, ok := reg[t]
	return m, ok
}
