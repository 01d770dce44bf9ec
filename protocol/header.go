package protocol

import "github.com/netrack/ofcore/wire"

// Type is the raw OpenFlow message type code carried in the wire header.
// Its meaning is version-dependent (wire code 15 names OFPT_PORT_MOD in
// v1.0 but OFPT_GROUP_MOD in v1.2/v1.3), so Type carries no version-
// independent semantics by itself; each version package defines its own
// named constants of this type and its own Type -> decoder table.
type Type uint8

// HeaderLen is the fixed size in bytes of the OpenFlow message header
// that precedes every message body.
const HeaderLen = 8

// Header is the 8-byte envelope common to every OpenFlow message:
// {version, type, length, xid}. Length always includes the header
// itself.
type Header struct {
	Version Version
	Type    Type
	Length  uint16
	Xid     XId
}

// Len implements wire.Packable.
func (h Header) Len() int {
	return HeaderLen
}

// Pack implements wire.Packable.
func (h Header) Pack(w *wire.Writer) error {
	if err := w.PutUint8(uint8(h.Version)); err != nil {
		return err
	}

	if err := w.PutUint8(uint8(h.Type)); err != nil {
		return err
	}

	if err := w.PutUint16(h.Length); err != nil {
		return err
	}

	return w.PutUint32(uint32(h.Xid))
}

// Unpack implements wire.Unpackable.
func (h *Header) Unpack(r *wire.Reader) error {
	version, err := r.Uint8()
	if err != nil {
		return err
	}

	typ, err := r.Uint8()
	if err != nil {
		return err
	}

	length, err := r.Uint16()
	if err != nil {
		return err
	}

	xid, err := r.Uint32()
	if err != nil {
		return err
	}

	h.Version = Version(version)
	h.Type = Type(typ)
	h.Length = length
	h.Xid = XId(xid)
	return nil
}
