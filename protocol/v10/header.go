// Package v10 implements the OpenFlow v1.0 message codec. Unlike
// v1.2/v1.3, v1.0 has its own action set (no instructions, no groups)
// and a fixed-format match rather than OXM, so this package does not
// share protocol/action or protocol/oxm's Match; it reuses only
// oxm.Match10 and oxm.XM's underlying field-width table is unused here.
package v10

import "github.com/netrack/ofcore/protocol"

// Wire type codes for OpenFlow v1.0.
const (
	TypeHello protocol.Type = iota
	TypeError
	TypeEchoRequest
	TypeEchoReply
	TypeVendor

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
	TypePortMod

	TypeStatsRequest
	TypeStatsReply

	TypeBarrierRequest
	TypeBarrierReply

	TypeQueueGetConfigRequest
	TypeQueueGetConfigReply
)
