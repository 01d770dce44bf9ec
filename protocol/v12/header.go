// Package v12 implements the OpenFlow v1.2 message codec: the
// per-type decoders registered in protocol/codec's version table, and
// the message bodies shared, largely unchanged, by protocol/v13.
package v12

import "github.com/netrack/ofcore/protocol"

// Wire type codes for OpenFlow v1.2. Numbering differs from v1.0 from
// OFPT_GROUP_MOD onward, and v1.3 adds four more types after
// OFPT_ROLE_REPLY; both reasons this module keeps one table per version
// rather than one shared enumeration.
const (
	TypeHello protocol.Type = iota
	TypeError
	TypeEchoRequest
	TypeEchoReply
	TypeExperimenter

	TypeFeaturesRequest
	TypeFeaturesReply
	TypeGetConfigRequest
	TypeGetConfigReply
	TypeSetConfig

	TypePacketIn
	TypeFlowRemoved
	TypePortStatus

	TypePacketOut
	TypeFlowMod
	TypeGroupMod
	TypePortMod
	TypeTableMod

	TypeMultipartRequest
	TypeMultipartReply

	TypeBarrierRequest
	TypeBarrierReply

	TypeQueueGetConfigRequest
	TypeQueueGetConfigReply

	TypeRoleRequest
	TypeRoleReply
)
