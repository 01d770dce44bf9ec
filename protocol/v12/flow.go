package v12

import (
	"github.com/netrack/ofcore/protocol/action"
	"github.com/netrack/ofcore/protocol/instruction"
	"github.com/netrack/ofcore/protocol/oxm"
	"github.com/netrack/ofcore/wire"
)

// NoBuffer means the packet is included in full rather than held in the
// switch's buffer pool.
const NoBuffer uint32 = 0xffffffff

// PacketInReason is an OFPR_* reason code.
type PacketInReason uint8

const (
	PacketInReasonNoMatch PacketInReason = iota
	PacketInReasonAction
	PacketInReasonInvalidTTL
)

// PacketIn delivers a packet that missed the pipeline (or matched a
// send-to-controller action) to the controller. OpenFlow v1.3 adds a
// Cookie field ahead of Data; that variant lives in protocol/v13.PacketIn.
type PacketIn struct {
	BufferID uint32
	TotalLen uint16
	Reason   PacketInReason
	TableID  uint8
	Match    oxm.Match
	Data     []byte
}

func (m *PacketIn) Len() int {
	return 8 + m.Match.Len() + 2 + len(m.Data)
}

func (m *PacketIn) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.BufferID); err != nil {
		return err
	}
	if err := w.PutUint16(m.TotalLen); err != nil {
		return err
	}
	if err := w.PutUint8(uint8(m.Reason)); err != nil {
		return err
	}
	if err := w.PutUint8(m.TableID); err != nil {
		return err
	}
	if err := m.Match.Pack(w); err != nil {
		return err
	}
	if err := w.PutZero(2); err != nil {
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

	reason, err := r.Uint8()
	if err != nil {
		return err
	}
	m.Reason = PacketInReason(reason)

	if m.TableID, err = r.Uint8(); err != nil {
		return err
	}
	if err = m.Match.Unpack(r); err != nil {
		return err
	}
	if err = r.Skip(2); err != nil {
		return err
	}

	m.Data = append([]byte(nil), r.Bytes()...)
	return r.Skip(len(m.Data))
}

// PacketOut instructs the switch to process a packet through the given
// action list, either buffered (BufferID != NoBuffer) or carried
// verbatim in Data.
type PacketOut struct {
	BufferID uint32
	InPort   uint32
	Actions  action.List
	Data     []byte

	actions action.Registry
}

func (m *PacketOut) Len() int {
	return 16 + m.Actions.Len() + len(m.Data)
}

func (m *PacketOut) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.BufferID); err != nil {
		return err
	}
	if err := w.PutUint32(m.InPort); err != nil {
		return err
	}
	if err := w.PutUint16(uint16(m.Actions.Len())); err != nil {
		return err
	}
	if err := w.PutZero(6); err != nil {
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
	if m.InPort, err = r.Uint32(); err != nil {
		return err
	}

	actionsLen, err := r.Uint16()
	if err != nil {
		return err
	}
	if err = r.Skip(6); err != nil {
		return err
	}

	reg := m.actions
	if reg == nil {
		reg = action.DefaultRegistry
	}
	if m.Actions, err = action.UnpackList(r, reg, int(actionsLen)); err != nil {
		return err
	}

	m.Data = append([]byte(nil), r.Bytes()...)
	return r.Skip(len(m.Data))
}

// FlowModCommand is an OFPFC_* flow table modification command.
type FlowModCommand uint8

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
	FlowModFlagResetCounts
	FlowModFlagNoPacketCounts
	FlowModFlagNoByteCounts
)

// FlowMod installs, updates or removes a flow table entry.
type FlowMod struct {
	Cookie       uint64
	CookieMask   uint64
	TableID      uint8
	Command      FlowModCommand
	IdleTimeout  uint16
	HardTimeout  uint16
	Priority     uint16
	BufferID     uint32
	OutPort      uint32
	OutGroup     uint32
	Flags        FlowModFlags
	Match        oxm.Match
	Instructions instruction.List

	instructions instruction.Registry
}

// GetCookie implements router.Cookied.
func (m *FlowMod) GetCookie() uint64 { return m.Cookie }

func (m *FlowMod) Len() int {
	return 40 + m.Match.Len() + m.Instructions.Len()
}

func (m *FlowMod) Pack(w *wire.Writer) error {
	if err := w.PutUint64(m.Cookie); err != nil {
		return err
	}
	if err := w.PutUint64(m.CookieMask); err != nil {
		return err
	}
	if err := w.PutUint8(m.TableID); err != nil {
		return err
	}
	if err := w.PutUint8(uint8(m.Command)); err != nil {
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
	if err := w.PutUint32(m.OutPort); err != nil {
		return err
	}
	if err := w.PutUint32(m.OutGroup); err != nil {
		return err
	}
	if err := w.PutUint16(uint16(m.Flags)); err != nil {
		return err
	}
	if err := w.PutZero(2); err != nil {
		return err
	}
	if err := m.Match.Pack(w); err != nil {
		return err
	}
	return m.Instructions.Pack(w)
}

func (m *FlowMod) Unpack(r *wire.Reader) error {
	var err error
	if m.Cookie, err = r.Uint64(); err != nil {
		return err
	}
	if m.CookieMask, err = r.Uint64(); err != nil {
		return err
	}
	if m.TableID, err = r.Uint8(); err != nil {
		return err
	}

	command, err := r.Uint8()
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
	if m.OutPort, err = r.Uint32(); err != nil {
		return err
	}
	if m.OutGroup, err = r.Uint32(); err != nil {
		return err
	}

	flags, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Flags = FlowModFlags(flags)

	if err = r.Skip(2); err != nil {
		return err
	}
	if err = m.Match.Unpack(r); err != nil {
		return err
	}

	reg := m.instructions
	if reg == nil {
		reg = instruction.DefaultRegistry(action.DefaultRegistry)
	}
	m.Instructions, err = instruction.UnpackList(r, reg, r.Len())
	return err
}

// FlowRemovedReason is an OFPRR_* reason code.
type FlowRemovedReason uint8

const (
	FlowRemovedReasonIdleTimeout FlowRemovedReason = iota
	FlowRemovedReasonHardTimeout
	FlowRemovedReasonDelete
	FlowRemovedReasonGroupDelete
)

// FlowRemoved reports the eviction of a flow entry installed with
// FlowModFlagSendFlowRem.
type FlowRemoved struct {
	Cookie       uint64
	Priority     uint16
	Reason       FlowRemovedReason
	TableID      uint8
	DurationSec  uint32
	DurationNsec uint32
	IdleTimeout  uint16
	HardTimeout  uint16
	PacketCount  uint64
	ByteCount    uint64
	Match        oxm.Match
}

// GetCookie implements router.Cookied.
func (m *FlowRemoved) GetCookie() uint64 { return m.Cookie }

func (m *FlowRemoved) Len() int { return 40 + m.Match.Len() }

func (m *FlowRemoved) Pack(w *wire.Writer) error {
	if err := w.PutUint64(m.Cookie); err != nil {
		return err
	}
	if err := w.PutUint16(m.Priority); err != nil {
		return err
	}
	if err := w.PutUint8(uint8(m.Reason)); err != nil {
		return err
	}
	if err := w.PutUint8(m.TableID); err != nil {
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
	if err := w.PutUint16(m.HardTimeout); err != nil {
		return err
	}
	if err := w.PutUint64(m.PacketCount); err != nil {
		return err
	}
	if err := w.PutUint64(m.ByteCount); err != nil {
		return err
	}
	return m.Match.Pack(w)
}

func (m *FlowRemoved) Unpack(r *wire.Reader) error {
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

	if m.TableID, err = r.Uint8(); err != nil {
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
	if m.HardTimeout, err = r.Uint16(); err != nil {
		return err
	}
	if m.PacketCount, err = r.Uint64(); err != nil {
		return err
	}
	if m.ByteCount, err = r.Uint64(); err != nil {
		return err
	}
	return m.Match.Unpack(r)
}
