// Package v13 implements the OpenFlow v1.3 message codec. Most
// message bodies are byte-identical to v1.2 and are re-exported as
// type aliases from protocol/v12; only the bodies v1.3 actually changed
// or added get their own definition here.
package v13

import (
	"github.com/netrack/ofcore/protocol"
	"github.com/netrack/ofcore/protocol/v12"
)

// Wire type codes for OpenFlow v1.3. Identical to v1.2 through
// OFPT_ROLE_REPLY, plus four types v1.3 introduces for asynchronous
// configuration and metering.
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

	TypeGetAsyncRequest
	TypeGetAsyncReply
	TypeSetAsync
	TypeMeterMod
)

// Bodies carried over unchanged from v1.2.
type (
	Hello          = v12.Hello
	HelloElem      = v12.HelloElem
	Error          = v12.Error
	EchoRequest    = v12.EchoRequest
	EchoReply      = v12.EchoReply
	GetConfigRequest = v12.GetConfigRequest
	GetConfigReply   = v12.GetConfigReply
	SetConfig        = v12.SetConfig
	SwitchConfig     = v12.SwitchConfig
	PacketOut        = v12.PacketOut
	FlowMod          = v12.FlowMod
	FlowRemoved      = v12.FlowRemoved
	PortStatus       = v12.PortStatus
	PortMod          = v12.PortMod
	TableMod         = v12.TableMod
	GroupMod         = v12.GroupMod
	MultipartRequest = v12.MultipartRequest
	MultipartReply   = v12.MultipartReply
	BarrierRequest   = v12.BarrierRequest
	BarrierReply     = v12.BarrierReply
	QueueGetConfigRequest = v12.QueueGetConfigRequest
	QueueGetConfigReply   = v12.QueueGetConfigReply
	RoleRequest           = v12.RoleRequest
	RoleReply             = v12.RoleReply
	Port                  = v12.Port
	ExperimenterMsg       = v12.ExperimenterMsg
)
