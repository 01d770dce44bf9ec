package v10

import "github.com/netrack/ofcore/wire"

// Type is an OFPAT_* v1.0 action type code. Numbering is unrelated to
// protocol/action's v1.2/v1.3 set.
type Type uint16

const (
	TypeOutput     Type = 0
	TypeSetVlanVID Type = 1
	TypeSetVlanPCP Type = 2
	TypeStripVlan  Type = 3
	TypeSetDLSrc   Type = 4
	TypeSetDLDst   Type = 5
	TypeSetNWSrc   Type = 6
	TypeSetNWDst   Type = 7
	TypeSetNWTos   Type = 8
	TypeSetTPSrc   Type = 9
	TypeSetTPDst   Type = 10
	TypeEnqueue    Type = 11
	TypeVendor     Type = 0xffff
)

const actionHeaderLen = 4

// Action is a single element of a v1.0 action list.
type Action interface {
	wire.Packable
	wire.Unpackable
	Kind() Type
}

// Maker constructs a fresh, zero-valued Action for a Type.
type Maker func() Action

// Registry maps action Types to constructors.
type Registry map[Type]Maker

// DefaultRegistry is the standard v1.0 action set.
var DefaultRegistry = Registry{
	TypeOutput:     func() Action { return &Output{} },
	TypeSetVlanVID: func() Action { return &SetVlanVID{} },
	TypeSetVlanPCP: func() Action { return &SetVlanPCP{} },
	TypeStripVlan:  func() Action { return &StripVlan{} },
	TypeSetDLSrc:   func() Action { return &SetDLSrc{} },
	TypeSetDLDst:   func() Action { return &SetDLDst{} },
	TypeSetNWSrc:   func() Action { return &SetNWSrc{} },
	TypeSetNWDst:   func() Action { return &SetNWDst{} },
	TypeSetNWTos:   func() Action { return &SetNWTos{} },
	TypeSetTPSrc:   func() Action { return &SetTPSrc{} },
	TypeSetTPDst:   func() Action { return &SetTPDst{} },
	TypeEnqueue:    func() Action { return &Enqueue{} },
	TypeVendor:     func() Action { return &Vendor{} },
}

// List is an ordered sequence of actions.
type List []Action

func (l List) Len() int {
	var n int
	for _, a := range l {
		n += a.Len()
	}
	return n
}

func (l List) Pack(w *wire.Writer) error {
	for _, a := range l {
		if err := a.Pack(w); err != nil {
			return err
		}
	}
	return nil
}

// UnpackList reads actions from r until exactly n bytes are consumed.
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

		if consumed := before - r.Len(); consumed != length {
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

// Output sends the packet out a port.
type Output struct {
	Port   uint16
	MaxLen uint16
}

func (a *Output) Kind() Type { return TypeOutput }
func (a *Output) Len() int   { return 8 }

func (a *Output) Pack(w *wire.Writer) error {
	if err := packHeader(w, a.Kind(), a.Len()); err != nil {
		return err
	}
	if err := w.PutUint16(a.Port); err != nil {
		return err
	}
	return w.PutUint16(a.MaxLen)
}

func (a *Output) Unpack(r *wire.Reader) error {
	if _, err := unpackHeaderLen(r); err != nil {
		return err
	}
	var err error
	if a.Port, err = r.Uint16(); err != nil {
		return err
	}
	a.MaxLen, err = r.Uint16()
	return err
}

type SetVlanVID struct{ VlanVID uint16 }

func (a *SetVlanVID) Kind() Type { return TypeSetVlanVID }
func (a *SetVlanVID) Len() int   { return 8 }
func (a *SetVlanVID) Pack(w *wire.Writer) error {
	if err := packHeader(w, a.Kind(), a.Len()); err != nil {
		return err
	}
	if err := w.PutUint16(a.VlanVID); err != nil {
		return err
	}
	return w.PutZero(2)
}
func (a *SetVlanVID) Unpack(r *wire.Reader) error {
	if _, err := unpackHeaderLen(r); err != nil {
		return err
	}
	var err error
	if a.VlanVID, err = r.Uint16(); err != nil {
		return err
	}
	return r.Skip(2)
}

type SetVlanPCP struct{ VlanPCP uint8 }

func (a *SetVlanPCP) Kind() Type { return TypeSetVlanPCP }
func (a *SetVlanPCP) Len() int   { return 8 }
func (a *SetVlanPCP) Pack(w *wire.Writer) error {
	if err := packHeader(w, a.Kind(), a.Len()); err != nil {
		return err
	}
	if err := w.PutUint8(a.VlanPCP); err != nil {
		return err
	}
	return w.PutZero(3)
}
func (a *SetVlanPCP) Unpack(r *wire.Reader) error {
	if _, err := unpackHeaderLen(r); err != nil {
		return err
	}
	var err error
	if a.VlanPCP, err = r.Uint8(); err != nil {
		return err
	}
	return r.Skip(3)
}

type StripVlan struct{}

func (a *StripVlan) Kind() Type { return TypeStripVlan }
func (a *StripVlan) Len() int   { return 8 }
func (a *StripVlan) Pack(w *wire.Writer) error {
	if err := packHeader(w, a.Kind(), a.Len()); err != nil {
		return err
	}
	return w.PutZero(4)
}
func (a *StripVlan) Unpack(r *wire.Reader) error {
	if _, err := unpackHeaderLen(r); err != nil {
		return err
	}
	return r.Skip(4)
}

func packEthAddr(w *wire.Writer, kind Type, addr [6]byte) error {
	if err := packHeader(w, kind, 16); err != nil {
		return err
	}
	if err := w.PutBytes(addr[:]); err != nil {
		return err
	}
	return w.PutZero(6)
}

func unpackEthAddr(r *wire.Reader) ([6]byte, error) {
	var addr [6]byte
	if _, err := unpackHeaderLen(r); err != nil {
		return addr, err
	}
	b, err := r.Next(6)
	if err != nil {
		return addr, err
	}
	copy(addr[:], b)
	return addr, r.Skip(6)
}

type SetDLSrc struct{ Addr [6]byte }

func (a *SetDLSrc) Kind() Type                { return TypeSetDLSrc }
func (a *SetDLSrc) Len() int                  { return 16 }
func (a *SetDLSrc) Pack(w *wire.Writer) error { return packEthAddr(w, a.Kind(), a.Addr) }
func (a *SetDLSrc) Unpack(r *wire.Reader) (err error) {
	a.Addr, err = unpackEthAddr(r)
	return
}

type SetDLDst struct{ Addr [6]byte }

func (a *SetDLDst) Kind() Type                { return TypeSetDLDst }
func (a *SetDLDst) Len() int                  { return 16 }
func (a *SetDLDst) Pack(w *wire.Writer) error { return packEthAddr(w, a.Kind(), a.Addr) }
func (a *SetDLDst) Unpack(r *wire.Reader) (err error) {
	a.Addr, err = unpackEthAddr(r)
	return
}

func packIPv4(w *wire.Writer, kind Type, addr uint32) error {
	if err := packHeader(w, kind, 8); err != nil {
		return err
	}
	return w.PutUint32(addr)
}

func unpackIPv4(r *wire.Reader) (uint32, error) {
	if _, err := unpackHeaderLen(r); err != nil {
		return 0, err
	}
	return r.Uint32()
}

type SetNWSrc struct{ Addr uint32 }

func (a *SetNWSrc) Kind() Type                { return TypeSetNWSrc }
func (a *SetNWSrc) Len() int                  { return 8 }
func (a *SetNWSrc) Pack(w *wire.Writer) error { return packIPv4(w, a.Kind(), a.Addr) }
func (a *SetNWSrc) Unpack(r *wire.Reader) (err error) {
	a.Addr, err = unpackIPv4(r)
	return
}

type SetNWDst struct{ Addr uint32 }

func (a *SetNWDst) Kind() Type                { return TypeSetNWDst }
func (a *SetNWDst) Len() int                  { return 8 }
func (a *SetNWDst) Pack(w *wire.Writer) error { return packIPv4(w, a.Kind(), a.Addr) }
func (a *SetNWDst) Unpack(r *wire.Reader) (err error) {
	a.Addr, err = unpackIPv4(r)
	return
}

type SetNWTos struct{ ToS uint8 }

func (a *SetNWTos) Kind() Type { return TypeSetNWTos }
func (a *SetNWTos) Len() int   { return 8 }
func (a *SetNWTos) Pack(w *wire.Writer) error {
	if err := packHeader(w, a.Kind(), a.Len()); err != nil {
		return err
	}
	if err := w.PutUint8(a.ToS); err != nil {
		return err
	}
	return w.PutZero(3)
}
func (a *SetNWTos) Unpack(r *wire.Reader) error {
	if _, err := unpackHeaderLen(r); err != nil {
		return err
	}
	var err error
	if a.ToS, err = r.Uint8(); err != nil {
		return err
	}
	return r.Skip(3)
}

func packPort(w *wire.Writer, kind Type, port uint16) error {
	if err := packHeader(w, kind, 8); err != nil {
		return err
	}
	if err := w.PutUint16(port); err != nil {
		return err
	}
	return w.PutZero(2)
}

func unpackPort(r *wire.Reader) (uint16, error) {
	if _, err := unpackHeaderLen(r); err != nil {
		return 0, err
	}
	port, err := r.Uint16()
	if err != nil {
		return 0, err
	}
	return port, r.Skip(2)
}

type SetTPSrc struct{ Port uint16 }

func (a *SetTPSrc) Kind() Type                { return TypeSetTPSrc }
func (a *SetTPSrc) Len() int                  { return 8 }
func (a *SetTPSrc) Pack(w *wire.Writer) error { return packPort(w, a.Kind(), a.Port) }
func (a *SetTPSrc) Unpack(r *wire.Reader) (err error) {
	a.Port, err = unpackPort(r)
	return
}

type SetTPDst struct{ Port uint16 }

func (a *SetTPDst) Kind() Type                { return TypeSetTPDst }
func (a *SetTPDst) Len() int                  { return 8 }
func (a *SetTPDst) Pack(w *wire.Writer) error { return packPort(w, a.Kind(), a.Port) }
func (a *SetTPDst) Unpack(r *wire.Reader) (err error) {
	a.Port, err = unpackPort(r)
	return
}

// Enqueue sends the packet to a specific queue on a port.
type Enqueue struct {
	Port    uint16
	QueueID uint32
}

func (a *Enqueue) Kind() Type { return TypeEnqueue }
func (a *Enqueue) Len() int   { return 16 }

func (a *Enqueue) Pack(w *wire.Writer) error {
	if err := packHeader(w, a.Kind(), a.Len()); err != nil {
		return err
	}
	if err := w.PutUint16(a.Port); err != nil {
		return err
	}
	if err := w.PutZero(6); err != nil {
		return err
	}
	return w.PutUint32(a.QueueID)
}

func (a *Enqueue) Unpack(r *wire.Reader) error {
	if _, err := unpackHeaderLen(r); err != nil {
		return err
	}
	var err error
	if a.Port, err = r.Uint16(); err != nil {
		return err
	}
	if err = r.Skip(6); err != nil {
		return err
	}
	a.QueueID, err = r.Uint32()
	return err
}

// Vendor carries vendor-specific action data.
type Vendor struct {
	VendorID uint32
	Data     []byte
}

func (a *Vendor) Kind() Type { return TypeVendor }
func (a *Vendor) Len() int   { return pad8(actionHeaderLen + 4 + len(a.Data)) }

func (a *Vendor) Pack(w *wire.Writer) error {
	if err := packHeader(w, a.Kind(), a.Len()); err != nil {
		return err
	}
	if err := w.PutUint32(a.VendorID); err != nil {
		return err
	}
	if err := w.PutBytes(a.Data); err != nil {
		return err
	}
	return w.PutZero(a.Len() - actionHeaderLen - 4 - len(a.Data))
}

func (a *Vendor) Unpack(r *wire.Reader) error {
	length, err := unpackHeaderLen(r)
	if err != nil {
		return err
	}
	if a.VendorID, err = r.Uint32(); err != nil {
		return err
	}

	dataLen := length - actionHeaderLen - 4
	if a.Data, err = r.Next(dataLen); err != nil {
		return err
	}
	a.Data = append([]byte(nil), a.Data...)

	return r.Skip(length - actionHeaderLen - 4 - dataLen)
}

func pad8(n int) int { return n + wire.Pad8(n) }
