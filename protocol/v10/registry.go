package v10

import (
	"github.com/netrack/ofcore/protocol"
	"github.com/netrack/ofcore/wire"
)

// VendorMsg is OFPT_VENDOR, the v1.0 top-level vendor-extension
// message (renamed OFPT_EXPERIMENTER in later versions).
type VendorMsg struct {
	Vendor uint32
	Data   []byte
}

func (m *VendorMsg) Len() int { return 4 + len(m.Data) }

func (m *VendorMsg) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.Vendor); err != nil {
		return err
	}
	return w.PutBytes(m.Data)
}

func (m *VendorMsg) Unpack(r *wire.Reader) error {
	var err error
	if m.Vendor, err = r.Uint32(); err != nil {
		return err
	}
	m.Data, err = r.Next(r.Len())
	return err
}

// DefaultRegistry is the v1.0 message type table.
var DefaultRegistry = protocol.Registry{
	TypeHello:       func() protocol.Body { return &Hello{} },
	TypeError:       func() protocol.Body { return &Error{} },
	TypeEchoRequest: func() protocol.Body { return &EchoRequest{} },
	TypeEchoReply:   func() protocol.Body { return &EchoReply{} },
	TypeVendor:      func() protocol.Body { return &VendorMsg{} },

	TypeFeaturesRequest:  func() protocol.Body { return &FeaturesRequest{} },
	TypeFeaturesReply:    func() protocol.Body { return &FeaturesReply{} },
	TypeGetConfigRequest: func() protocol.Body { return &GetConfigRequest{} },
	TypeGetConfigReply:   func() protocol.Body { return &GetConfigReply{} },
	TypeSetConfig:        func() protocol.Body { return &SetConfig{} },

	TypePacketIn:    func() protocol.Body { return &PacketIn{} },
	TypeFlowRemoved: func() protocol.Body { return &FlowRemoved{} },
	TypePortStatus:  func() protocol.Body { return &PortStatus{} },

	TypePacketOut: func() protocol.Body { return &PacketOut{} },
	TypeFlowMod:   func() protocol.Body { return &FlowMod{} },
	TypePortMod:   func() protocol.Body { return &PortMod{} },

	TypeStatsRequest: func() protocol.Body { return &StatsRequest{} },
	TypeStatsReply:   func() protocol.Body { return &StatsReply{} },

	TypeBarrierRequest: func() protocol.Body { return &BarrierRequest{} },
	TypeBarrierReply:   func() protocol.Body { return &BarrierReply{} },

	TypeQueueGetConfigRequest: func() protocol.Body { return &QueueGetConfigRequest{} },
	TypeQueueGetConfigReply:   func() protocol.Body { return &QueueGetConfigReply{} },
}
