package v12

import "github.com/netrack/ofcore/wire"

// HelloElemType is an OFPHET_* hello element type.
type HelloElemType uint16

const HelloElemVersionBitmap HelloElemType = 1

// HelloElem is one element of a Hello's elements list. Only the version
// bitmap element is implemented; unrecognized elements are preserved as
// opaque data so a Hello round-trips even when a peer sends elements
// this module doesn't interpret.
type HelloElem struct {
	Type   HelloElemType
	Bitmap []uint32 // only meaningful when Type == HelloElemVersionBitmap
	Data   []byte   // raw payload for any other element type
}

func (e *HelloElem) wireLen() int {
	if e.Type == HelloElemVersionBitmap {
		return 4 + 4*len(e.Bitmap)
	}
	return 4 + len(e.Data)
}

func (e *HelloElem) pack(w *wire.Writer) error {
	length := e.wireLen()
	if err := w.PutUint16(uint16(e.Type)); err != nil {
		return err
	}
	if err := w.PutUint16(uint16(length)); err != nil {
		return err
	}

	if e.Type == HelloElemVersionBitmap {
		for _, word := range e.Bitmap {
			if err := w.PutUint32(word); err != nil {
				return err
			}
		}
	} else if err := w.PutBytes(e.Data); err != nil {
		return err
	}

	return w.PutZero(wire.Pad8(length))
}

func (e *HelloElem) unpack(r *wire.Reader) error {
	typ, err := r.Uint16()
	if err != nil {
		return err
	}

	length, err := r.Uint16()
	if err != nil {
		return err
	}
	if length < 4 {
		return wire.ErrLengthMismatch
	}

	e.Type = HelloElemType(typ)
	body := int(length) - 4

	if e.Type == HelloElemVersionBitmap {
		if body%4 != 0 {
			return wire.ErrLengthMismatch
		}
		e.Bitmap = make([]uint32, body/4)
		for i := range e.Bitmap {
			if e.Bitmap[i], err = r.Uint32(); err != nil {
				return err
			}
		}
	} else {
		if e.Data, err = r.Next(body); err != nil {
			return err
		}
		e.Data = append([]byte(nil), e.Data...)
	}

	return r.Skip(wire.Pad8(int(length)))
}

// Hello negotiates the protocol version, its Elements optionally
// narrowing the handshake to a version bitmap.
type Hello struct {
	Elements []HelloElem
}

func (m *Hello) Len() int {
	n := 0
	for i := range m.Elements {
		n += m.Elements[i].wireLen() + wire.Pad8(m.Elements[i].wireLen())
	}
	return n
}

func (m *Hello) Pack(w *wire.Writer) error {
	for i := range m.Elements {
		if err := m.Elements[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Hello) Unpack(r *wire.Reader) error {
	m.Elements = nil
	for r.Len() > 0 {
		var e HelloElem
		if err := e.unpack(r); err != nil {
			return err
		}
		m.Elements = append(m.Elements, e)
	}
	return nil
}

// ErrorType is an OFPET_* error category.
type ErrorType uint16

const (
	ErrorTypeHelloFailed        ErrorType = 0
	ErrorTypeBadRequest         ErrorType = 1
	ErrorTypeBadAction          ErrorType = 2
	ErrorTypeBadInstruction     ErrorType = 3
	ErrorTypeBadMatch           ErrorType = 4
	ErrorTypeFlowModFailed      ErrorType = 5
	ErrorTypeGroupModFailed     ErrorType = 6
	ErrorTypePortModFailed      ErrorType = 7
	ErrorTypeTableModFailed     ErrorType = 8
	ErrorTypeQueueOpFailed      ErrorType = 9
	ErrorTypeSwitchConfigFailed ErrorType = 10
	ErrorTypeRoleRequestFailed  ErrorType = 11
	ErrorTypeExperimenter       ErrorType = 0xffff
)

// Error reports a failed request: the type/code pair plus up to 64
// bytes of the offending request, echoed back verbatim.
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

// EchoRequest/EchoReply carry an opaque payload the peer must echo back
// verbatim; conn uses them for the keepalive heartbeat.
type EchoRequest struct{ Data []byte }

func (m *EchoRequest) Len() int { return len(m.Data) }
func (m *EchoRequest) Pack(w *wire.Writer) error {
	return w.PutBytes(m.Data)
}
func (m *EchoRequest) Unpack(r *wire.Reader) error {
	m.Data = append([]byte(nil), r.Bytes()...)
	return r.Skip(len(m.Data))
}

type EchoReply struct{ Data []byte }

func (m *EchoReply) Len() int { return len(m.Data) }
func (m *EchoReply) Pack(w *wire.Writer) error {
	return w.PutBytes(m.Data)
}
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
	CapabilityGroupStats
	_
	CapabilityIPReasm
	CapabilityQueueStats
	_
	CapabilityPortBlocked
)

// FeaturesRequest solicits a switch's identity and capabilities.
type FeaturesRequest struct{}

func (m *FeaturesRequest) Len() int                     { return 0 }
func (m *FeaturesRequest) Pack(w *wire.Writer) error     { return nil }
func (m *FeaturesRequest) Unpack(r *wire.Reader) error   { return nil }

// FeaturesReply is a switch's identity, as defined for v1.0/v1.2 (the
// auxiliary_id byte v1.3 adds lives in protocol/v13.FeaturesReply).
type FeaturesReply struct {
	DatapathID   uint64
	NBuffers     uint32
	NTables      uint8
	Capabilities Capability
	Ports        Ports
}

func (m *FeaturesReply) Len() int { return 24 + m.Ports.Len() }

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
	if err := w.PutZero(4); err != nil {
		return err
	}
	return m.Ports.Pack(w)
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

	if err = r.Skip(4); err != nil {
		return err
	}

	m.Ports, err = unpackPorts(r, r.Len())
	return err
}

// ConfigFlags are the OFPC_* bits of a switch configuration's Flags.
type ConfigFlags uint16

const (
	ConfigFragNormal ConfigFlags = 0
	ConfigFragDrop   ConfigFlags = 1
	ConfigFragReasm  ConfigFlags = 2
	ConfigFragMask   ConfigFlags = 3
)

// GetConfigRequest solicits the switch's current configuration.
type GetConfigRequest struct{}

func (m *GetConfigRequest) Len() int                   { return 0 }
func (m *GetConfigRequest) Pack(w *wire.Writer) error   { return nil }
func (m *GetConfigRequest) Unpack(r *wire.Reader) error { return nil }

// SwitchConfig is the {flags, miss_send_len} configuration pair shared
// by GetConfigReply and SetConfig.
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

// GetConfigReply and SetConfig share SwitchConfig's wire shape exactly;
// named types keep the registry's Body constructors distinct per Type.
type GetConfigReply struct{ SwitchConfig }
type SetConfig struct{ SwitchConfig }
