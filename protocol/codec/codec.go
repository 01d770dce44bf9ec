// Package codec ties the per-version message registries together into a
// single Decode/Encode entry point: given a raw frame it reads the
// 8-byte header first, picks the registry matching Header.Version, then
// decodes the body against that registry's Maker for Header.Type.
package codec

import (
	"github.com/netrack/ofcore/protocol"
	"github.com/netrack/ofcore/protocol/v10"
	"github.com/netrack/ofcore/protocol/v12"
	"github.com/netrack/ofcore/protocol/v13"
	"github.com/netrack/ofcore/wire"
)

// Registries maps each supported wire Version to its message type table.
// Callers may replace an entry (or add one for an experimenter-defined
// version) before passing this table to Decode/Encode.
var Registries = map[protocol.Version]protocol.Registry{
	protocol.Version10: v10.DefaultRegistry,
	protocol.Version12: v12.DefaultRegistry,
	protocol.Version13: v13.DefaultRegistry,
}

// Decode reads one complete OpenFlow message from b: the header first,
// then the body, picked from Registries by Header.Version and
// Header.Type. b must hold exactly Header.Length bytes; trailing or
// missing bytes are ErrLengthMismatch.
func Decode(b []byte) (protocol.Msg, error) {
	var msg protocol.Msg

	r := wire.NewReader(b)
	if err := msg.Header.Unpack(r); err != nil {
		return msg, wire.Wrap(err, "codec: decode header")
	}

	if int(msg.Header.Length) != len(b) {
		return msg, wire.ErrLengthMismatch
	}

	reg, ok := Registries[msg.Header.Version]
	if !ok {
		return msg, wire.Wrap(wire.ErrBadVersion, "codec: version %s", msg.Header.Version)
	}

	make, ok := reg.Lookup(msg.Header.Type)
	if !ok {
		return msg, wire.Wrap(wire.ErrBadKind, "codec: type %#x for version %s", msg.Header.Type, msg.Header.Version)
	}

	msg.Body = make()
	if err := msg.Body.Unpack(r); err != nil {
		return msg, wire.Wrap(err, "codec: decode body")
	}

	return msg, nil
}

// Encode serializes msg into a freshly allocated buffer, filling in
// Header.Length from the body's actual wire footprint. The caller is
// responsible for Header.Version, Header.Type and Header.Xid.
func Encode(msg protocol.Msg) ([]byte, error) {
	msg.Header.Length = uint16(protocol.HeaderLen + msg.Body.Len())

	w := wire.NewWriter(make([]byte, msg.Header.Length))
	if err := msg.Header.Pack(w); err != nil {
		return nil, wire.Wrap(err, "codec: encode header")
	}

	if err := msg.Body.Pack(w); err != nil {
		return nil, wire.Wrap(err, "codec: encode body")
	}

	return w.Bytes(), nil
}
