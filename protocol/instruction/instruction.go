// Package instruction implements the OpenFlow v1.2/v1.3 instruction list
// codec: the per-table pipeline steps a Flow-Mod installs. OpenFlow
// v1.0 has no instructions; flow entries there carry an action list
// directly.
package instruction

import (
	"github.com/netrack/ofcore/protocol/action"
	"github.com/netrack/ofcore/wire"
)

// Type is an OFPIT_* instruction type code.
type Type uint16

const (
	TypeGotoTable     Type = 1
	TypeWriteMetadata Type = 2
	TypeWriteActions  Type = 3
	TypeApplyActions  Type = 4
	TypeClearActions  Type = 5
	TypeMeter         Type = 6
	TypeExperimenter  Type = 0xffff
)

const instructionHeaderLen = 4

// Instruction is a single element of an instruction list.
type Instruction interface {
	wire.Packable
	wire.Unpackable
	Kind() Type
}

// Maker constructs a fresh, zero-valued Instruction for a Type.
type Maker func() Instruction

// Registry maps instruction Types to constructors.
type Registry map[Type]Maker

// DefaultRegistry is the standard v1.2/v1.3 instruction set. It is
// parameterized by the action registry used to decode the action lists
// nested inside Write/Apply-Actions.
func DefaultRegistry(actions action.Registry) Registry {
	return Registry{
		TypeGotoTable:     func() Instruction { return &GotoTable{} },
		TypeWriteMetadata: func() Instruction { return &WriteMetadata{} },
		TypeWriteActions:  func() Instruction { return &WriteActions{actions: actions} },
		TypeApplyActions:  func() Instruction { return &ApplyActions{actions: actions} },
		TypeClearActions:  func() Instruction { return &ClearActions{actions: actions} },
		TypeMeter:         func() Instruction { return &Meter{} },
		TypeExperimenter:  func() Instruction { return &Experimenter{} },
	}
}

// List is an ordered sequence of instructions. The OpenFlow specification
// allows at most one instruction of each type per flow entry, but that
// invariant is the datapath pipeline's concern, not the codec's.
type List []Instruction

// Len implements wire.Packable.
func (l List) Len() int {
	var n int
	for _, i := range l {
		n += i.Len()
	}

	return n
}

// Pack implements wire.Packable.
func (l List) Pack(w *wire.Writer) error {
	for _, i := range l {
		if err := i.Pack(w); err != nil {
			return err
		}
	}

	return nil
}

// UnpackList reads instructions from r until exactly n bytes have been
// consumed.
func UnpackList(r *wire.Reader, reg Registry, n int) (List, error) {
	var list List

	for n > 0 {
		if n < instructionHeaderLen {
			return nil, wire.ErrInvalList
		}

		head := r.Bytes()
		if len(head) < instructionHeaderLen {
			return nil, wire.ErrTooShort
		}

		typ := Type(uint16(head[0])<<8 | uint16(head[1]))
		length := int(uint16(head[2])<<8 | uint16(head[3]))

		if length < instructionHeaderLen || length > n {
			return nil, wire.ErrInvalList
		}

		make, ok := reg[typ]
		if !ok {
			return nil, wire.ErrBadKind
		}

		inst := make()
		before := r.Len()

		if err := inst.Unpack(r); err != nil {
			return nil, err
		}

		if consumed := before - r.Len(); consumed != length {
			return nil, wire.ErrInvalList
		}

		list = append(list, inst)
		n -= length
	}

	return list, nil
}

func packHeader(w *wire.Writer, kind Type, length int) error {
	if err := w.PutUint16(uint16(kind)); err != nil {
		return err
	}
	return w.PutUint16(uint16(length))
}

func unpackHeaderLen(r *wire.Reader) (int, error) {
	if _, err := r.Uint16(); err != nil {
		return 0, err
	}

	length, err := r.Uint16()
	return int(length), err
}

// GotoTable directs the pipeline to the given table.
type GotoTable struct{ TableID uint8 }

func (i *GotoTable) Kind() Type { return TypeGotoTable }
func (i *GotoTable) Len() int   { return 8 }

func (i *GotoTable) Pack(w *wire.Writer) error {
	if err := packHeader(w, i.Kind(), i.Len()); err != nil {
		return err
	}
	if err := w.PutUint8(i.TableID); err != nil {
		return err
	}
	return w.PutZero(3)
}

func (i *GotoTable) Unpack(r *wire.Reader) error {
	if _, err := unpackHeaderLen(r); err != nil {
		return err
	}
	var err error
	if i.TableID, err = r.Uint8(); err != nil {
		return err
	}
	return r.Skip(3)
}

// WriteMetadata writes masked metadata bits into the pipeline's metadata
// field for subsequent tables.
type WriteMetadata struct {
	Metadata     uint64
	MetadataMask uint64
}

func (i *WriteMetadata) Kind() Type { return TypeWriteMetadata }
func (i *WriteMetadata) Len() int   { return 24 }

func (i *WriteMetadata) Pack(w *wire.Writer) error {
	if err := packHeader(w, i.Kind(), i.Len()); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
		return err
	}
	if err := w.PutUint64(i.Metadata); err != nil {
		return err
	}
	return w.PutUint64(i.MetadataMask)
}

func (i *WriteMetadata) Unpack(r *wire.Reader) error {
	if _, err := unpackHeaderLen(r); err != nil {
		return err
	}
	if err := r.Skip(4); err != nil {
		return err
	}
	var err error
	if i.Metadata, err = r.Uint64(); err != nil {
		return err
	}
	i.MetadataMask, err = r.Uint64()
	return err
}

func packActions(w *wire.Writer, kind Type, length int, actions action.List) error {
	if err := packHeader(w, kind, length); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
		return err
	}
	return actions.Pack(w)
}

func unpackActions(r *wire.Reader, reg action.Registry) (action.List, error) {
	length, err := unpackHeaderLen(r)
	if err != nil {
		return nil, err
	}
	if err := r.Skip(4); err != nil {
		return nil, err
	}

	return action.UnpackList(r, reg, length-instructionHeaderLen-4)
}

// WriteActions merges the given actions into the flow entry's action set.
type WriteActions struct {
	Actions action.List
	actions action.Registry
}

func (i *WriteActions) Kind() Type { return TypeWriteActions }
func (i *WriteActions) Len() int   { return instructionHeaderLen + 4 + i.Actions.Len() }

func (i *WriteActions) Pack(w *wire.Writer) error {
	return packActions(w, i.Kind(), i.Len(), i.Actions)
}

func (i *WriteActions) Unpack(r *wire.Reader) (err error) {
	i.Actions, err = unpackActions(r, i.actions)
	return
}

// ApplyActions executes actions immediately, in list order.
type ApplyActions struct {
	Actions action.List
	actions action.Registry
}

func (i *ApplyActions) Kind() Type { return TypeApplyActions }
func (i *ApplyActions) Len() int   { return instructionHeaderLen + 4 + i.Actions.Len() }

func (i *ApplyActions) Pack(w *wire.Writer) error {
	return packActions(w, i.Kind(), i.Len(), i.Actions)
}

func (i *ApplyActions) Unpack(r *wire.Reader) (err error) {
	i.Actions, err = unpackActions(r, i.actions)
	return
}

// ClearActions empties the flow entry's action set.
type ClearActions struct {
	Actions action.List
	actions action.Registry
}

func (i *ClearActions) Kind() Type { return TypeClearActions }
func (i *ClearActions) Len() int   { return instructionHeaderLen + 4 }

func (i *ClearActions) Pack(w *wire.Writer) error {
	return packActions(w, i.Kind(), i.Len(), nil)
}

func (i *ClearActions) Unpack(r *wire.Reader) (err error) {
	i.Actions, err = unpackActions(r, i.actions)
	return
}

// Meter applies a meter to the flow entry.
type Meter struct{ MeterID uint32 }

func (i *Meter) Kind() Type { return TypeMeter }
func (i *Meter) Len() int   { return 8 }

func (i *Meter) Pack(w *wire.Writer) error {
	if err := packHeader(w, i.Kind(), i.Len()); err != nil {
		return err
	}
	return w.PutUint32(i.MeterID)
}

func (i *Meter) Unpack(r *wire.Reader) error {
	if _, err := unpackHeaderLen(r); err != nil {
		return err
	}
	var err error
	i.MeterID, err = r.Uint32()
	return err
}

// Experimenter carries vendor-specific instruction data.
type Experimenter struct {
	ExperimenterID uint32
	Data           []byte
}

func (i *Experimenter) Kind() Type { return TypeExperimenter }
func (i *Experimenter) Len() int   { return instructionHeaderLen + 4 + len(i.Data) }

func (i *Experimenter) Pack(w *wire.Writer) error {
	if err := packHeader(w, i.Kind(), i.Len()); err != nil {
		return err
	}
	if err := w.PutUint32(i.ExperimenterID); err != nil {
		return err
	}
	return w.PutBytes(i.Data)
}

func (i *Experimenter) Unpack(r *wire.Reader) error {
	length, err := unpackHeaderLen(r)
	if err != nil {
		return err
	}
	if i.ExperimenterID, err = r.Uint32(); err != nil {
		return err
	}
	i.Data, err = r.Next(length - instructionHeaderLen - 4)
	if err != nil {
		return err
	}
	i.Data = append([]byte(nil), i.Data...)
	return nil
}
