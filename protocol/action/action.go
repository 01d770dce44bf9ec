// Package action implements the OpenFlow v1.2/v1.3 action list codec:
// the OFPAT_* action set shared by Flow-Mod, Packet-Out and group
// buckets. OpenFlow v1.0's distinct, smaller action set lives alongside
// the v1.0 message codec in protocol/v10, since its type numbering
// collides with this package's.
package action

import (
	"github.com/netrack/ofcore/protocol/oxm"
	"github.com/netrack/ofcore/wire"
)

// Type is an OFPAT_* action type code.
type Type uint16

const (
	TypeOutput       Type = 0
	TypeCopyTTLOut   Type = 11
	TypeCopyTTLIn    Type = 12
	TypeSetMPLSTTL   Type = 15
	TypeDecMPLSTTL   Type = 16
	TypePushVlan     Type = 17
	TypePopVlan      Type = 18
	TypePushMPLS     Type = 19
	TypePopMPLS      Type = 20
	TypeSetQueue     Type = 21
	TypeGroup        Type = 22
	TypeSetNWTTL     Type = 23
	TypeDecNWTTL     Type = 24
	TypeSetField     Type = 25
	TypePushPBB      Type = 26
	TypePopPBB       Type = 27
	TypeExperimenter Type = 0xffff
)

const actionHeaderLen = 4

// Action is a single element of an action list: a tagged, self-
// describing {type, length, payload} structure.
type Action interface {
	wire.Packable
	wire.Unpackable
	Kind() Type
}

// Maker constructs a fresh, zero-valued Action for a Type.
type Maker func() Action

// Registry maps action Types to constructors, used to decode a List.
type Registry map[Type]Maker

// DefaultRegistry is the standard v1.2/v1.3 action set.
var DefaultRegistry = Registry{
	TypeOutput:       func() Action { return &Output{} },
	TypeCopyTTLOut:   func() Action { return &CopyTTLOut{} },
	TypeCopyTTLIn:    func() Action { return &CopyTTLIn{} },
	TypeSetMPLSTTL:   func() Action { return &SetMPLSTTL{} },
	TypeDecMPLSTTL:   func() Action { return &DecMPLSTTL{} },
	TypePushVlan:     func() Action { return &PushVlan{} },
	TypePopVlan:      func() Action { return &PopVlan{} },
	TypePushMPLS:     func() Action { return &PushMPLS{} },
	TypePopMPLS:      func() Action { return &PopMPLS{} },
	TypeSetQueue:     func() Action { return &SetQueue{} },
	TypeGroup:        func() Action { return &Group{} },
	TypeSetNWTTL:     func() Action { return &SetNWTTL{} },
	TypeDecNWTTL:     func() Action { return &DecNWTTL{} },
	TypeSetField:     func() Action { return &SetField{} },
	TypePushPBB:      func() Action { return &PushPBB{} },
	TypePopPBB:       func() Action { return &PopPBB{} },
	TypeExperimenter: func() Action { return &Experimenter{} },
}

// List is an ordered sequence of actions.
type List []Action

// Len implements wire.Packable.
func (l List) Len() int {
	var n int
	for _, a := range l {
		n += a.Len()
	}

	return n
}

// Pack implements wire.Packable.
func (l List) Pack(w *wire.Writer) error {
	for _, a := range l {
		if err := a.Pack(w); err != nil {
			return err
		}
	}

	return nil
}

// UnpackList reads actions from r until exactly n bytes have been
// consumed, using reg to look up a constructor for each action's Type.
// Under- or over-reading n is ErrInvalList.
func UnpackList(r *wire.Reader, reg Registry, n int) (List, error) {
	var list List

	for n > 0 {
		if n < actionHeaderLen {
			return nil, wire.ErrInvalList
		}

		head := r.Bytes()
		if len(head) < actionHeaderLen {
			return nil, wire.ErrTooShort
		}

		typ := Type(uint16(head[0])<<8 | uint16(head[1]))
		length := int(uint16(head[2])<<8 | uint16(head[3]))

		if length < actionHeaderLen || length%8 != 0 || length > n {
			return nil, wire.ErrInvalList
		}

		make, ok := reg[typ]
		if !ok {
			return nil, wire.ErrBadKind
		}

		a := make()
		before := r.Len()

		if err := a.Unpack(r); err != nil {
			return nil, err
		}

		consumed := before - r.Len()
		if consumed != length {
			return nil, wire.ErrInvalList
		}

		list = append(list, a)
		n -= length
	}

	if n != 0 {
		return nil, wire.ErrInvalList
	}

	return list, nil
}

// padTo8 returns n rounded up to the next multiple of 8.
func padTo8(n int) int {
	return n + wire.Pad8(n)
}

// Output sends the packet out a port.
type Output struct {
	Port   uint32
	MaxLen uint16
}

func (a *Output) Kind() Type { return TypeOutput }
func (a *Output) Len() int   { return padTo8(actionHeaderLen + 8) }

func (a *Output) Pack(w *wire.Writer) error {
	if err := packHeader(w, a.Kind(), a.Len()); err != nil {
		return err
	}
	if err := w.PutUint32(a.Port); err != nil {
		return err
	}
	if err := w.PutUint16(a.MaxLen); err != nil {
		return err
	}
	return w.PutZero(6)
}

func (a *Output) Unpack(r *wire.Reader) error {
	if err := skipHeader(r); err != nil {
		return err
	}
	var err error
	if a.Port, err = r.Uint32(); err != nil {
		return err
	}
	if a.MaxLen, err = r.Uint16(); err != nil {
		return err
	}
	return r.Skip(6)
}

// packSimple/unpackSimple cover no-payload actions: 4-byte header + 4
// bytes of padding.
func packSimple(w *wire.Writer, kind Type) error {
	if err := packHeader(w, kind, padTo8(actionHeaderLen)); err != nil {
		return err
	}
	return w.PutZero(4)
}

func unpackSimple(r *wire.Reader) error {
	if err := skipHeader(r); err != nil {
		return err
	}
	return r.Skip(4)
}

type CopyTTLOut struct{}

func (a *CopyTTLOut) Kind() Type                 { return TypeCopyTTLOut }
func (a *CopyTTLOut) Len() int                   { return padTo8(actionHeaderLen) }
func (a *CopyTTLOut) Pack(w *wire.Writer) error  { return packSimple(w, a.Kind()) }
func (a *CopyTTLOut) Unpack(r *wire.Reader) error { return unpackSimple(r) }

type CopyTTLIn struct{}

func (a *CopyTTLIn) Kind() Type                 { return TypeCopyTTLIn }
func (a *CopyTTLIn) Len() int                   { return padTo8(actionHeaderLen) }
func (a *CopyTTLIn) Pack(w *wire.Writer) error  { return packSimple(w, a.Kind()) }
func (a *CopyTTLIn) Unpack(r *wire.Reader) error { return unpackSimple(r) }

type DecNWTTL struct{}

func (a *DecNWTTL) Kind() Type                 { return TypeDecNWTTL }
func (a *DecNWTTL) Len() int                   { return padTo8(actionHeaderLen) }
func (a *DecNWTTL) Pack(w *wire.Writer) error  { return packSimple(w, a.Kind()) }
func (a *DecNWTTL) Unpack(r *wire.Reader) error { return unpackSimple(r) }

type PopVlan struct{}

func (a *PopVlan) Kind() Type                 { return TypePopVlan }
func (a *PopVlan) Len() int                   { return padTo8(actionHeaderLen) }
func (a *PopVlan) Pack(w *wire.Writer) error  { return packSimple(w, a.Kind()) }
func (a *PopVlan) Unpack(r *wire.Reader) error { return unpackSimple(r) }

type PopPBB struct{}

func (a *PopPBB) Kind() Type                 { return TypePopPBB }
func (a *PopPBB) Len() int                   { return padTo8(actionHeaderLen) }
func (a *PopPBB) Pack(w *wire.Writer) error  { return packSimple(w, a.Kind()) }
func (a *PopPBB) Unpack(r *wire.Reader) error { return unpackSimple(r) }

// packTTL/unpackTTL cover ttl-bearing actions: 4-byte header + 1-byte ttl
// + 3 bytes of padding.
func packTTL(w *wire.Writer, kind Type, ttl uint8) error {
	if err := packHeader(w, kind, padTo8(actionHeaderLen+1)); err != nil {
		return err
	}
	if err := w.PutUint8(ttl); err != nil {
		return err
	}
	return w.PutZero(3)
}

func unpackTTL(r *wire.Reader) (uint8, error) {
	if err := skipHeader(r); err != nil {
		return 0, err
	}
	ttl, err := r.Uint8()
	if err != nil {
		return 0, err
	}
	return ttl, r.Skip(3)
}

type SetMPLSTTL struct{ TTL uint8 }

func (a *SetMPLSTTL) Kind() Type                { return TypeSetMPLSTTL }
func (a *SetMPLSTTL) Len() int                  { return padTo8(actionHeaderLen + 1) }
func (a *SetMPLSTTL) Pack(w *wire.Writer) error { return packTTL(w, a.Kind(), a.TTL) }
func (a *SetMPLSTTL) Unpack(r *wire.Reader) (err error) {
	a.TTL, err = unpackTTL(r)
	return
}

type DecMPLSTTL struct{}

func (a *DecMPLSTTL) Kind() Type                 { return TypeDecMPLSTTL }
func (a *DecMPLSTTL) Len() int                   { return padTo8(actionHeaderLen) }
func (a *DecMPLSTTL) Pack(w *wire.Writer) error  { return packSimple(w, a.Kind()) }
func (a *DecMPLSTTL) Unpack(r *wire.Reader) error { return unpackSimple(r) }

type SetNWTTL struct{ TTL uint8 }

func (a *SetNWTTL) Kind() Type                { return TypeSetNWTTL }
func (a *SetNWTTL) Len() int                  { return padTo8(actionHeaderLen + 1) }
func (a *SetNWTTL) Pack(w *wire.Writer) error { return packTTL(w, a.Kind(), a.TTL) }
func (a *SetNWTTL) Unpack(r *wire.Reader) (err error) {
	a.TTL, err = unpackTTL(r)
	return
}

// ethertype actions (push) share one shape: 4-byte header + 2-byte
// ethertype + 2 pad.
func packEthertype(w *wire.Writer, kind Type, et uint16) error {
	if err := packHeader(w, kind, padTo8(actionHeaderLen+2)); err != nil {
		return err
	}
	if err := w.PutUint16(et); err != nil {
		return err
	}
	return w.PutZero(2)
}

func unpackEthertype(r *wire.Reader) (uint16, error) {
	if err := skipHeader(r); err != nil {
		return 0, err
	}
	et, err := r.Uint16()
	if err != nil {
		return 0, err
	}
	return et, r.Skip(2)
}

type PushVlan struct{ Ethertype uint16 }

func (a *PushVlan) Kind() Type                { return TypePushVlan }
func (a *PushVlan) Len() int                  { return padTo8(actionHeaderLen + 2) }
func (a *PushVlan) Pack(w *wire.Writer) error { return packEthertype(w, a.Kind(), a.Ethertype) }
func (a *PushVlan) Unpack(r *wire.Reader) (err error) {
	a.Ethertype, err = unpackEthertype(r)
	return
}

type PushMPLS struct{ Ethertype uint16 }

func (a *PushMPLS) Kind() Type                { return TypePushMPLS }
func (a *PushMPLS) Len() int                  { return padTo8(actionHeaderLen + 2) }
func (a *PushMPLS) Pack(w *wire.Writer) error { return packEthertype(w, a.Kind(), a.Ethertype) }
func (a *PushMPLS) Unpack(r *wire.Reader) (err error) {
	a.Ethertype, err = unpackEthertype(r)
	return
}

type PopMPLS struct{ Ethertype uint16 }

func (a *PopMPLS) Kind() Type                { return TypePopMPLS }
func (a *PopMPLS) Len() int                  { return padTo8(actionHeaderLen + 2) }
func (a *PopMPLS) Pack(w *wire.Writer) error { return packEthertype(w, a.Kind(), a.Ethertype) }
func (a *PopMPLS) Unpack(r *wire.Reader) (err error) {
	a.Ethertype, err = unpackEthertype(r)
	return
}

type PushPBB struct{ Ethertype uint16 }

func (a *PushPBB) Kind() Type                { return TypePushPBB }
func (a *PushPBB) Len() int                  { return padTo8(actionHeaderLen + 2) }
func (a *PushPBB) Pack(w *wire.Writer) error { return packEthertype(w, a.Kind(), a.Ethertype) }
func (a *PushPBB) Unpack(r *wire.Reader) (err error) {
	a.Ethertype, err = unpackEthertype(r)
	return
}

// SetQueue sets the queue id used to map a flow to a queue.
type SetQueue struct{ QueueID uint32 }

func (a *SetQueue) Kind() Type { return TypeSetQueue }
func (a *SetQueue) Len() int   { return padTo8(actionHeaderLen + 4) }

func (a *SetQueue) Pack(w *wire.Writer) error {
	if err := packHeader(w, a.Kind(), a.Len()); err != nil {
		return err
	}
	return w.PutUint32(a.QueueID)
}

func (a *SetQueue) Unpack(r *wire.Reader) error {
	if err := skipHeader(r); err != nil {
		return err
	}
	var err error
	a.QueueID, err = r.Uint32()
	return err
}

// Group forwards the packet to a group.
type Group struct{ GroupID uint32 }

func (a *Group) Kind() Type { return TypeGroup }
func (a *Group) Len() int   { return padTo8(actionHeaderLen + 4) }

func (a *Group) Pack(w *wire.Writer) error {
	if err := packHeader(w, a.Kind(), a.Len()); err != nil {
		return err
	}
	return w.PutUint32(a.GroupID)
}

func (a *Group) Unpack(r *wire.Reader) error {
	if err := skipHeader(r); err != nil {
		return err
	}
	var err error
	a.GroupID, err = r.Uint32()
	return err
}

// SetField modifies a single packet header field, embedding one OXM TLV
// as its payload.
type SetField struct{ Field oxm.XM }

func (a *SetField) Kind() Type { return TypeSetField }

func (a *SetField) Len() int {
	return padTo8(actionHeaderLen + a.Field.Len())
}

func (a *SetField) Pack(w *wire.Writer) error {
	if err := packHeader(w, a.Kind(), a.Len()); err != nil {
		return err
	}
	if err := a.Field.Pack(w); err != nil {
		return err
	}
	return w.PutZero(a.Len() - actionHeaderLen - a.Field.Len())
}

func (a *SetField) Unpack(r *wire.Reader) error {
	_, length, err := unpackHeaderLen(r)
	if err != nil {
		return err
	}

	before := r.Len()
	if err := a.Field.Unpack(r); err != nil {
		return err
	}

	consumed := before - r.Len()
	return r.Skip(length - actionHeaderLen - consumed)
}

// Experimenter carries vendor-specific action data.
type Experimenter struct {
	ExperimenterID uint32
	Data           []byte
}

func (a *Experimenter) Kind() Type { return TypeExperimenter }
func (a *Experimenter) Len() int   { return padTo8(actionHeaderLen + 4 + len(a.Data)) }

func (a *Experimenter) Pack(w *wire.Writer) error {
	if err := packHeader(w, a.Kind(), a.Len()); err != nil {
		return err
	}
	if err := w.PutUint32(a.ExperimenterID); err != nil {
		return err
	}
	if err := w.PutBytes(a.Data); err != nil {
		return err
	}
	return w.PutZero(a.Len() - actionHeaderLen - 4 - len(a.Data))
}

func (a *Experimenter) Unpack(r *wire.Reader) error {
	_, length, err := unpackHeaderLen(r)
	if err != nil {
		return err
	}

	if a.ExperimenterID, err = r.Uint32(); err != nil {
		return err
	}

	dataLen := length - actionHeaderLen - 4
	if a.Data, err = r.Next(dataLen); err != nil {
		return err
	}
	a.Data = append([]byte(nil), a.Data...)

	return r.Skip(length - actionHeaderLen - 4 - dataLen)
}

func packHeader(w *wire.Writer, kind Type, length int) error {
	if err := w.PutUint16(uint16(kind)); err != nil {
		return err
	}
	return w.PutUint16(uint16(length))
}

func skipHeader(r *wire.Reader) error {
	_, _, err := unpackHeaderLen(r)
	return err
}

func unpackHeaderLen(r *wire.Reader) (Type, int, error) {
	typ, err := r.Uint16()
	if err != nil {
		return 0, 0, err
	}

	length, err := r.Uint16()
	if err != nil {
		return 0, 0, err
	}

	return Type(typ), int(length), nil
}
