package v13

import "github.com/netrack/ofcore/protocol"

// DefaultRegistry is the v1.3 message type table.
var DefaultRegistry = protocol.Registry{
	TypeHello:        func() protocol.Body { return &Hello{} },
	TypeError:        func() protocol.Body { return &Error{} },
	TypeEchoRequest:  func() protocol.Body { return &EchoRequest{} },
	TypeEchoReply:    func() protocol.Body { return &EchoReply{} },
	TypeExperimenter: func() protocol.Body { return &ExperimenterMsg{} },

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

	TypeGetAsyncRequest: func() protocol.Body { return &GetAsyncRequest{} },
	TypeGetAsyncReply:   func() protocol.Body { return &GetAsyncReply{} },
	TypeSetAsync:        func() protocol.Body { return &SetAsync{} },
	TypeMeterMod:        func() protocol.Body { return &MeterMod{} },
}
