package oxm

import "github.com/netrack/ofcore/wire"

// MatchType is a match's type field: MatchTypeStandard is the fixed-
// format OFPMT_STANDARD match, MatchTypeXM the OXM TLV list. Match always
// reads and writes its fields in the OXM layout, whatever the type value.
type MatchType uint16

const (
	MatchTypeStandard MatchType = 0
	MatchTypeXM       MatchType = 1
)

const matchHeaderLen = 4

// Match is an ordered sequence of OXM fields, the {type, length,
// oxm_fields} structure used by OFPMT_OXM matches. Field ordering is
// preserved on round-trip.
type Match struct {
	Type   MatchType
	Fields []XM
}

// logicalLen is the self-describing, unpadded length that goes into the
// wire "length" field: 4 (type+length) plus every field's own length.
func (m *Match) logicalLen() int {
	n := matchHeaderLen
	for i := range m.Fields {
		n += m.Fields[i].Len()
	}

	return n
}

// Len implements wire.Packable: the padded wire footprint.
func (m *Match) Len() int {
	n := m.logicalLen()
	return n + wire.Pad8(n)
}

// Pack implements wire.Packable. The emitted length field is the real,
// unpadded length; the returned buffer is padded to 8 bytes with zeros.
func (m *Match) Pack(w *wire.Writer) error {
	n := m.logicalLen()

	if err := w.PutUint16(uint16(m.Type)); err != nil {
		return err
	}

	if err := w.PutUint16(uint16(n)); err != nil {
		return err
	}

	for i := range m.Fields {
		if err := m.Fields[i].Pack(w); err != nil {
			return err
		}
	}

	return w.PutZero(wire.Pad8(n))
}

// Unpack implements wire.Unpackable. It tolerates and skips trailing
// padding, and rejects duplicate (class, field) pairs.
func (m *Match) Unpack(r *wire.Reader) error {
	typ, err := r.Uint16()
	if err != nil {
		return err
	}

	length, err := r.Uint16()
	if err != nil {
		return err
	}

	if length < matchHeaderLen {
		return wire.ErrLengthMismatch
	}

	m.Type = MatchType(typ)
	m.Fields = nil

	remaining := int(length) - matchHeaderLen
	seen := make(map[key]bool, remaining/4)

	for remaining > 0 {
		var xm XM
		before := r.Len()

		if err := xm.Unpack(r); err != nil {
			return err
		}

		remaining -= before - r.Len()

		k := key{xm.Class, xm.Field}
		if seen[k] {
			return wire.ErrInvalList
		}

		seen[k] = true
		m.Fields = append(m.Fields, xm)
	}

	if remaining != 0 {
		return wire.ErrLengthMismatch
	}

	return r.Skip(wire.Pad8(int(length)))
}

// Get returns the field matching (class, field) and whether it is
// present.
func (m *Match) Get(class Class, field Field) (XM, bool) {
	for i := range m.Fields {
		if m.Fields[i].Class == class && m.Fields[i].Field == field {
			return m.Fields[i], true
		}
	}

	return XM{}, false
}

// Validate checks the match against the prerequisite table (§4.2): every
// field whose prerequisites are known must have each prerequisite field
// present with a value compatible with it.
func (m *Match) Validate() error {
	for i := range m.Fields {
		if err := checkPrereq(m, m.Fields[i].Field); err != nil {
			return err
		}
	}

	return nil
}
