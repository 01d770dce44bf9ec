package v10

import (
	"github.com/netrack/ofcore/protocol/oxm"
	"github.com/netrack/ofcore/wire"
)

// Hello negotiates the protocol version. v1.0 predates version
// bitmaps, so its Hello carries no elements.
type Hello struct{}

func (m *Hello) Len() int                   { return 0 }
func (m *Hello) Pack(w *wire.Writer) error   { return nil }
func (m *Hello) Unpack(r *wire.Reader) error { return nil }

// ErrorType is an OFPET_* error category.
type ErrorType uint16

const (
	ErrorTypeHelloFailed        ErrorType = 0
	ErrorTypeBadRequest         ErrorType = 1
	ErrorTypeBadAction          ErrorType = 2
	ErrorTypeFlowModFailed      ErrorType = 3
	ErrorTypePortModFailed      ErrorType = 4
	ErrorTypeQueueOpFailed      ErrorType = 5
)

// Error reports a failed request.
type Error struct {
	Type ErrorType
	Code uint16
	Data []byte
}

func (m *Error) Len() int { return 4 + len(m.Data) }

func (m *Error) Pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(m.Type)); err != nil {
		return err
	}
	if err := w.PutUint16(m.Code); err != nil {
		return err
	}
	return w.PutBytes(m.Data)
}

func (m *Error) Unpack(r *wire.Reader) error {
	typ, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Type = ErrorType(typ)

	if m.Code, err = r.Uint16(); err != nil {
		return err
	}

	m.Data = append([]byte(nil), r.Bytes()...)
	return r.Skip(len(m.Data))
}

type EchoRequest struct{ Data []byte }

func (m *EchoRequest) Len() int                 { return len(m.Data) }
func (m *EchoRequest) Pack(w *wire.Writer) error { return w.PutBytes(m.Data) }
func (m *EchoRequest) Unpack(r *wire.Reader) error {
	m.Data = append([]byte(nil), r.Bytes()...)
	return r.Skip(len(m.Data))
}

type EchoReply struct{ Data []byte }

func (m *EchoReply) Len() int                 { return len(m.Data) }
func (m *EchoReply) Pack(w *wire.Writer) error { return w.PutBytes(m.Data) }
func (m *EchoReply) Unpack(r *wire.Reader) error {
	m.Data = append([]byte(nil), r.Bytes()...)
	return r.Skip(len(m.Data))
}

// Capability are the OFPC_* bits of FeaturesReply.Capabilities.
type Capability uint32

const (
	CapabilityFlowStats Capability = 1 << iota
	CapabilityTableStats
	CapabilityPortStats
	CapabilitySTP
	CapabilityReserved
	CapabilityIPReasm
	CapabilityQueueStats
	CapabilityArpMatchIP
)

// ActionCapability are the OFPAT_* bits of FeaturesReply.Actions,
// advertising which actions the switch supports.
type ActionCapability uint32

const portLen = 48

// Port describes a switch port in the v1.0 fixed-size ofp_phy_port
// format (48 bytes, narrower than v1.2/v1.3's 64-byte Port).
type Port struct {
	PortNo     uint16
	HWAddr     [6]byte
	Name       string
	Config     uint32
	State      uint32
	Curr       uint32
	Advertised uint32
	Supported  uint32
	Peer       uint32
}

func (p *Port) Len() int { return portLen }

func (p *Port) Pack(w *wire.Writer) error {
	if err := w.PutUint16(p.PortNo); err != nil {
		return err
	}
	if err := w.PutBytes(p.HWAddr[:]); err != nil {
		return err
	}

	name := make([]byte, 16)
	copy(name, p.Name)
	if err := w.PutBytes(name); err != nil {
		return err
	}

	for _, v := range []uint32{p.Config, p.State, p.Curr, p.Advertised, p.Supported, p.Peer} {
		if err := w.PutUint32(v); err != nil {
			return err
		}
	}
	return nil
}

func (p *Port) Unpack(r *wire.Reader) error {
	var err error
	if p.PortNo, err = r.Uint16(); err != nil {
		return err
	}

	hw, err := r.Next(6)
	if err != nil {
		return err
	}
	copy(p.HWAddr[:], hw)

	name, err := r.Next(16)
	if err != nil {
		return err
	}
	p.Name = trimZero(name)

	fields := []*uint32{&p.Config, &p.State, &p.Curr, &p.Advertised, &p.Supported, &p.Peer}
	for _, f := range fields {
		if *f, err = r.Uint32(); err != nil {
			return err
		}
	}
	return nil
}

func trimZero(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

type FeaturesRequest struct{}

func (m *FeaturesRequest) Len() int                   { return 0 }
func (m *FeaturesRequest) Pack(w *wire.Writer) error   { return nil }
func (m *FeaturesRequest) Unpack(r *wire.Reader) error { return nil }

// FeaturesReply is a switch's identity.
type FeaturesReply struct {
	DatapathID   uint64
	NBuffers     uint32
	NTables      uint8
	Capabilities Capability
	Actions      ActionCapability
	Ports        []Port
}

func (m *FeaturesReply) Len() int { return 24 + len(m.Ports)*portLen }

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
	if err := w.PutZero(3); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(m.Capabilities)); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(m.Actions)); err != nil {
		return err
	}
	for i := range m.Ports {
		if err := m.Ports[i].Pack(w); err != nil {
			return err
		}
	}
	return nil
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
	if err = r.Skip(3); err != nil {
		return err
	}

	capBits, err := r.Uint32()
	if err != nil {
		return err
	}
	m.Capabilities = Capability(capBits)

	actions, err := r.Uint32()
	if err != nil {
		return err
	}
	m.Actions = ActionCapability(actions)

	if r.Len()%portLen != 0 {
		return wire.ErrLengthMismatch
	}
	m.Ports = make([]Port, r.Len()/portLen)
	for i := range m.Ports {
		if err := m.Ports[i].Unpack(r); err != nil {
			return err
		}
	}
	return nil
}

// ConfigFlags are the OFPC_* bits of a switch configuration's Flags.
type ConfigFlags uint16

const (
	ConfigFragNormal ConfigFlags = 0
	ConfigFragDrop   ConfigFlags = 1
	ConfigFragReasm  ConfigFlags = 2
	ConfigFragMask   ConfigFlags = 3
)

type GetConfigRequest struct{}

func (m *GetConfigRequest) Len() int                   { return 0 }
func (m *GetConfigRequest) Pack(w *wire.Writer) error   { return nil }
func (m *GetConfigRequest) Unpack(r *wire.Reader) error { return nil }

type SwitchConfig struct {
	Flags       ConfigFlags
	MissSendLen uint16
}

func (m *SwitchConfig) Len() int { return 4 }

func (m *SwitchConfig) Pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(m.Flags)); err != nil {
		return err
	}
	return w.PutUint16(m.MissSendLen)
}

func (m *SwitchConfig) Unpack(r *wire.Reader) error {
	flags, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Flags = ConfigFlags(flags)

	m.MissSendLen, err = r.Uint16()
	return err
}

type GetConfigReply struct{ SwitchConfig }
type SetConfig struct{ SwitchConfig }

const noBufferID uint32 = 0xffffffff

// PacketInReason is an OFPR_* reason code.
type PacketInReason uint8

const (
	PacketInReasonNoMatch PacketInReason = iota
	PacketInReasonAction
)

// PacketIn delivers a packet that missed the pipeline to the
// controller.
type PacketIn struct {
	BufferID uint32
	TotalLen uint16
	InPort   uint16
	Reason   PacketInReason
	Data     []byte
}

func (m *PacketIn) Len() int { return 10 + len(m.Data) }

func (m *PacketIn) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.BufferID); err != nil {
		return err
	}
	if err := w.PutUint16(m.TotalLen); err != nil {
		return err
	}
	if err := w.PutUint16(m.InPort); err != nil {
		return err
	}
	if err := w.PutUint8(uint8(m.Reason)); err != nil {
		return err
	}
	if err := w.PutZero(1); err != nil {
		return err
	}
	return w.PutBytes(m.Data)
}

func (m *PacketIn) Unpack(r *wire.Reader) error {
	var err error
	if m.BufferID, err = r.Uint32(); err != nil {
		return err
	}
	if m.TotalLen, err = r.Uint16(); err != nil {
		return err
	}
	if m.InPort, err = r.Uint16(); err != nil {
		return err
	}

	reason, err := r.Uint8()
	if err != nil {
		return err
	}
	m.Reason = PacketInReason(reason)

	if err = r.Skip(1); err != nil {
		return err
	}

	m.Data = append([]byte(nil), r.Bytes()...)
	return r.Skip(len(m.Data))
}

// PacketOut instructs the switch to process a packet through the given
// action list.
type PacketOut struct {
	BufferID uint32
	InPort   uint16
	Actions  List
	Data     []byte

	actions Registry
}

func (m *PacketOut) Len() int { return 8 + m.Actions.Len() + len(m.Data) }

func (m *PacketOut) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.BufferID); err != nil {
		return err
	}
	if err := w.PutUint16(m.InPort); err != nil {
		return err
	}
	if err := w.PutUint16(uint16(m.Actions.Len())); err != nil {
		return err
	}
	if err := m.Actions.Pack(w); err != nil {
		return err
	}
	return w.PutBytes(m.Data)
}

func (m *PacketOut) Unpack(r *wire.Reader) error {
	var err error
	if m.BufferID, err = r.Uint32(); err != nil {
		return err
	}
	if m.InPort, err = r.Uint16(); err != nil {
		return err
	}

	actionsLen, err := r.Uint16()
	if err != nil {
		return err
	}

	reg := m.actions
	if reg == nil {
		reg = DefaultRegistry
	}
	if m.Actions, err = UnpackList(r, reg, int(actionsLen)); err != nil {
		return err
	}

	m.Data = append([]byte(nil), r.Bytes()...)
	return r.Skip(len(m.Data))
}

// FlowModCommand is an OFPFC_* flow table modification command.
type FlowModCommand uint16

const (
	FlowModCommandAdd FlowModCommand = iota
	FlowModCommandModify
	FlowModCommandModifyStrict
	FlowModCommandDelete
	FlowModCommandDeleteStrict
)

// FlowModFlags are the OFPFF_* bits of FlowMod.Flags.
type FlowModFlags uint16

const (
	FlowModFlagSendFlowRem FlowModFlags = 1 << iota
	FlowModFlagCheckOverlap
	FlowModFlagEmergency
)

// FlowMod installs, updates or removes a flow table entry. v1.0 has no
// instructions: the action list executes directly, and matching uses
// the fixed-format oxm.Match10 rather than an OXM TLV list.
type FlowMod struct {
	Match       oxm.Match10
	Cookie      uint64
	Command     FlowModCommand
	IdleTimeout uint16
	HardTimeout uint16
	Priority    uint16
	BufferID    uint32
	OutPort     uint16
	Flags       FlowModFlags
	Actions     List

	actions Registry
}

func (m *FlowMod) Len() int { return m.Match.Len() + 24 + m.Actions.Len() }

func (m *FlowMod) Pack(w *wire.Writer) error {
	if err := m.Match.Pack(w); err != nil {
		return err
	}
	if err := w.PutUint64(m.Cookie); err != nil {
		return err
	}
	if err := w.PutUint16(uint16(m.Command)); err != nil {
		return err
	}
	if err := w.PutUint16(m.IdleTimeout); err != nil {
		return err
	}
	if err := w.PutUint16(m.HardTimeout); err != nil {
		return err
	}
	if err := w.PutUint16(m.Priority); err != nil {
		return err
	}
	if err := w.PutUint32(m.BufferID); err != nil {
		return err
	}
	if err := w.PutUint16(m.OutPort); err != nil {
		return err
	}
	if err := w.PutUint16(uint16(m.Flags)); err != nil {
		return err
	}
	return m.Actions.Pack(w)
}

func (m *FlowMod) Unpack(r *wire.Reader) error {
	if err := m.Match.Unpack(r); err != nil {
		return err
	}

	var err error
	if m.Cookie, err = r.Uint64(); err != nil {
		return err
	}

	command, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Command = FlowModCommand(command)

	if m.IdleTimeout, err = r.Uint16(); err != nil {
		return err
	}
	if m.HardTimeout, err = r.Uint16(); err != nil {
		return err
	}
	if m.Priority, err = r.Uint16(); err != nil {
		return err
	}
	if m.BufferID, err = r.Uint32(); err != nil {
		return err
	}
	if m.OutPort, err = r.Uint16(); err != nil {
		return err
	}

	flags, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Flags = FlowModFlags(flags)

	reg := m.actions
	if reg == nil {
		reg = DefaultRegistry
	}
	m.Actions, err = UnpackList(r, reg, r.Len())
	return err
}

// FlowRemovedReason is an OFPRR_* reason code.
type FlowRemovedReason uint8

const (
	FlowRemovedReasonIdleTimeout FlowRemovedReason = iota
	FlowRemovedReasonHardTimeout
	FlowRemovedReasonDelete
)

// FlowRemoved reports the eviction of a flow entry.
type FlowRemoved struct {
	Match        oxm.Match10
	Cookie       uint64
	Priority     uint16
	Reason       FlowRemovedReason
	DurationSec  uint32
	DurationNsec uint32
	IdleTimeout  uint16
	PacketCount  uint64
	ByteCount    uint64
}

func (m *FlowRemoved) Len() int { return m.Match.Len() + 40 }

func (m *FlowRemoved) Pack(w *wire.Writer) error {
	if err := m.Match.Pack(w); err != nil {
		return err
	}
	if err := w.PutUint64(m.Cookie); err != nil {
		return err
	}
	if err := w.PutUint16(m.Priority); err != nil {
		return err
	}
	if err := w.PutUint8(uint8(m.Reason)); err != nil {
		return err
	}
	if err := w.PutZero(1); err != nil {
		return err
	}
	if err := w.PutUint32(m.DurationSec); err != nil {
		return err
	}
	if err := w.PutUint32(m.DurationNsec); err != nil {
		return err
	}
	if err := w.PutUint16(m.IdleTimeout); err != nil {
		return err
	}
	if err := w.PutZero(2); err != nil {
		return err
	}
	if err := w.PutUint64(m.PacketCount); err != nil {
		return err
	}
	return w.PutUint64(m.ByteCount)
}

func (m *FlowRemoved) Unpack(r *wire.Reader) error {
	if err := m.Match.Unpack(r); err != nil {
		return err
	}

	var err error
	if m.Cookie, err = r.Uint64(); err != nil {
		return err
	}
	if m.Priority, err = r.Uint16(); err != nil {
		return err
	}

	reason, err := r.Uint8()
	if err != nil {
		return err
	}
	m.Reason = FlowRemovedReason(reason)

	if err = r.Skip(1); err != nil {
		return err
	}
	if m.DurationSec, err = r.Uint32(); err != nil {
		return err
	}
	if m.DurationNsec, err = r.Uint32(); err != nil {
		return err
	}
	if m.IdleTimeout, err = r.Uint16(); err != nil {
		return err
	}
	if err = r.Skip(2); err != nil {
		return err
	}
	if m.PacketCount, err = r.Uint64(); err != nil {
		return err
	}
	m.ByteCount, err = r.Uint64()
	return err
}

// PortStatusReason is an OFPPR_* reason code.
type PortStatusReason uint8

const (
	PortStatusReasonAdd PortStatusReason = iota
	PortStatusReasonDelete
	PortStatusReasonModify
)

// PortStatus notifies the controller of a port configuration or state
// change.
type PortStatus struct {
	Reason PortStatusReason
	Port   Port
}

func (m *PortStatus) Len() int { return 8 + m.Port.Len() }

func (m *PortStatus) Pack(w *wire.Writer) error {
	if err := w.PutUint8(uint8(m.Reason)); err != nil {
		return err
	}
	if err := w.PutZero(7); err != nil {
		return err
	}
	return m.Port.Pack(w)
}

func (m *PortStatus) Unpack(r *wire.Reader) error {
	reason, err := r.Uint8()
	if err != nil {
		return err
	}
	m.Reason = PortStatusReason(reason)

	if err = r.Skip(7); err != nil {
		return err
	}
	return m.Port.Unpack(r)
}

// PortMod changes a port's configuration.
type PortMod struct {
	PortNo    uint16
	HWAddr    [6]byte
	Config    uint32
	Mask      uint32
	Advertise uint32
}

func (m *PortMod) Len() int { return 24 }

func (m *PortMod) Pack(w *wire.Writer) error {
	if err := w.PutUint16(m.PortNo); err != nil {
		return err
	}
	if err := w.PutBytes(m.HWAddr[:]); err != nil {
		return err
	}
	if err := w.PutUint32(m.Config); err != nil {
		return err
	}
	if err := w.PutUint32(m.Mask); err != nil {
		return err
	}
	if err := w.PutUint32(m.Advertise); err != nil {
		return err
	}
	return w.PutZero(4)
}

func (m *PortMod) Unpack(r *wire.Reader) error {
	var err error
	if m.PortNo, err = r.Uint16(); err != nil {
		return err
	}

	hw, err := r.Next(6)
	if err != nil {
		return err
	}
	copy(m.HWAddr[:], hw)

	if m.Config, err = r.Uint32(); err != nil {
		return err
	}
	if m.Mask, err = r.Uint32(); err != nil {
		return err
	}
	if m.Advertise, err = r.Uint32(); err != nil {
		return err
	}
	return r.Skip(4)
}

type BarrierRequest struct{}

func (m *BarrierRequest) Len() int                   { return 0 }
func (m *BarrierRequest) Pack(w *wire.Writer) error   { return nil }
func (m *BarrierRequest) Unpack(r *wire.Reader) error { return nil }

type BarrierReply struct{}

func (m *BarrierReply) Len() int                   { return 0 }
func (m *BarrierReply) Pack(w *wire.Writer) error   { return nil }
func (m *BarrierReply) Unpack(r *wire.Reader) error { return nil }
