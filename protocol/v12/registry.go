package v12

import (
	"github.com/netrack/ofcore/protocol"
	"github.com/netrack/ofcore/wire"
)

// DefaultRegistry is the v1.2 message type table: one constructor per
// wire Type, the per-version half of the header-then-body decode.
var DefaultRegistry = protocol.Registry{
	TypeHello:         func() protocol.Body { return &Hello{} },
	TypeError:         func() protocol.Body { return &Error{} },
	TypeEchoRequest:   func() protocol.Body { return &EchoRequest{} },
	TypeEchoReply:     func() protocol.Body { return &EchoReply{} },
	TypeExperimenter:  func() protocol.Body { return &ExperimenterMsg{} },

	TypeFeaturesRequest:  func() protocol.Body { return &FeaturesRequest{} },
	TypeFeaturesReply:    func() protocol.Body { return &FeaturesReply{} },
	TypeGetConfigRequest: func() protocol.Body { return &GetConfigRequest{} },
	TypeGetConfigReply:   func() protocol.Body { return &GetConfigReply{} },
	TypeSetConfig:        func() protocol.Body { return &SetConfig{} },

	TypePacketIn:     func() protocol.Body { return &PacketIn{} },
	TypeFlowRemoved:  func() protocol.Body { return &FlowRemoved{} },
	TypePortStatus:   func() protocol.Body { return &PortStatus{} },

	TypePacketOut: func() protocol.Body { return &PacketOut{} },
	TypeFlowMod:   func() protocol.Body { return &FlowMod{} },
	TypeGroupMod:  func() protocol.Body { return &GroupMod{} },
	TypePortMod:   func() protocol.Body { return &PortMod{} },
	TypeTableMod:  func() protocol.Body { return &TableMod{} },

	TypeMultipartRequest: func() protocol.Body { return &MultipartRequest{} },
	TypeMultipartReply:   func() protocol.Body { return &MultipartReply{} },

	TypeBarrierRequest: func() protocol.Body { return &BarrierRequest{} },
	TypeBarrierReply:   func() protocol.Body { return &BarrierReply{} },

	TypeQueueGetConfigRequest: func() protocol.Body { return &QueueGetConfigRequest{} },
	TypeQueueGetConfigReply:   func() protocol.Body { return &QueueGetConfigReply{} },

	TypeRoleRequest: func() protocol.Body { return &RoleRequest{} },
	TypeRoleReply:   func() protocol.Body { return &RoleReply{} },
}

// ExperimenterMsg carries vendor-specific message data at the top
// level, distinct from action/instruction Experimenter variants.
type ExperimenterMsg struct {
	ExperimenterID uint32
	ExpType        uint32
	Data           []byte
}

func (m *ExperimenterMsg) Len() int { return 8 + len(m.Data) }

func (m *ExperimenterMsg) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.ExperimenterID); err != nil {
		return err
	}
	if err := w.PutUint32(m.ExpType); err != nil {
		return err
	}
	return w.PutBytes(m.Data)
}

func (m *ExperimenterMsg) Unpack(r *wire.Reader) error {
	var err error
	if m.ExperimenterID, err = r.Uint32(); err != nil {
		return err
	}
	if m.ExpType, err = r.Uint32(); err != nil {
		return err
	}

	m.Data = append([]byte(nil), r.Bytes()...)
	return r.Skip(len(m.Data))
}
