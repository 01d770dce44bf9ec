package v13

import (
	"github.com/netrack/ofcore/protocol/v12"
	"github.com/netrack/ofcore/wire"
)

// FeaturesRequest carries no fields.
type FeaturesRequest = v12.FeaturesRequest

// Capability re-exports v12's OFPC_* bits; v1.3 defines the same set.
type Capability = v12.Capability

const (
	CapabilityFlowStats   = v12.CapabilityFlowStats
	CapabilityTableStats  = v12.CapabilityTableStats
	CapabilityPortStats   = v12.CapabilityPortStats
	CapabilityGroupStats  = v12.CapabilityGroupStats
	CapabilityIPReasm     = v12.CapabilityIPReasm
	CapabilityQueueStats  = v12.CapabilityQueueStats
	CapabilityPortBlocked = v12.CapabilityPortBlocked
)

// FeaturesReply is a switch's identity. v1.3 replaces one of v1.2's
// reserved bytes with AuxiliaryID, identifying which auxiliary
// connection (if any) this reply was sent on.
type FeaturesReply struct {
	DatapathID   uint64
	NBuffers     uint32
	NTables      uint8
	AuxiliaryID  uint8
	Capabilities Capability
	Ports        v12.Ports
}

func (m *FeaturesReply) Len() int { return 24 + m.Ports.Len() }

func (m *FeaturesReply) Pack(w *wire.Writer) error {
	if err := w.PutUint64(m.DatapathID); err != nil {
		return err
	}
	if err := w.PutUint32(m.NBuffers); err != nil {
		return err
	}
	if err := w.PutUint8(m.NTables); err != nil {
		return err
	}
	if err := w.PutUint8(m.AuxiliaryID); err != nil {
		return err
	}
	if err := w.PutZero(2); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(m.Capabilities)); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
		return err
	}
	return m.Ports.Pack(w)
}

func (m *FeaturesReply) Unpack(r *wire.Reader) error {
	var err error
	if m.DatapathID, err = r.Uint64(); err != nil {
		return err
	}
	if m.NBuffers, err = r.Uint32(); err != nil {
		return err
	}
	if m.NTables, err = r.Uint8(); err != nil {
		return err
	}
	if m.AuxiliaryID, err = r.Uint8(); err != nil {
		return err
	}
	if err = r.Skip(2); err != nil {
		return err
	}

	capBits, err := r.Uint32()
	if err != nil {
		return err
	}
	m.Capabilities = Capability(capBits)

	if err = r.Skip(4); err != nil {
		return err
	}

	ports, err := unpackPorts(r, r.Len())
	m.Ports = ports
	return err
}

func unpackPorts(r *wire.Reader, n int) (v12.Ports, error) {
	if n%64 != 0 {
		return nil, wire.ErrLengthMismatch
	}

	ports := make(v12.Ports, n/64)
	for i := range ports {
		if err := ports[i].Unpack(r); err != nil {
			return nil, err
		}
	}

	return ports, nil
}
