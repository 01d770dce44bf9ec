package oxm

import "github.com/netrack/ofcore/wire"

// Wildcards are the OFPFW_* bits of a Match10's Wildcards field: a set
// bit means the corresponding field is wildcarded (not matched).
type Wildcards uint32

const (
	WildcardInPort Wildcards = 1 << iota
	WildcardVlanID
	WildcardEthSrc
	WildcardEthDst
	WildcardEthType
	WildcardIPProto
	WildcardTCPSrc
	WildcardTCPDst
)

// The nw_src/nw_dst wildcards occupy a 6-bit subfield each rather than a
// single bit, starting at bit 8 (src) and bit 14 (dst); each holds the
// number of wildcarded low-order address bits. Match10 derives them from
// IPv4SrcN/IPv4DstN.
const (
	ipv4SrcShift = 8
	ipv4DstShift = 14
)

const (
	WildcardVlanPCP Wildcards = 1 << 20
	WildcardIPTos   Wildcards = 1 << 21

	WildcardAll Wildcards = (1 << 22) - 1
)

const match10Len = 40

// Match10 is the fixed-format match structure OpenFlow v1.0 carries
// instead of the OXM TLV list: {wildcards, in_port, dl_src, dl_dst,
// dl_vlan, dl_vlan_pcp, pad, dl_type, nw_tos, nw_proto, pad, nw_src,
// nw_dst, tp_src, tp_dst}.
type Match10 struct {
	Wildcards Wildcards
	InPort    uint16
	EthSrc    [6]byte
	EthDst    [6]byte
	VlanID    uint16
	VlanPCP   uint8
	EthType   uint16
	IPTos     uint8
	IPProto   uint8
	IPv4Src   uint32
	IPv4SrcN  uint8 // CIDR prefix length: 32 is exact, 0 wildcards the whole address
	IPv4Dst   uint32
	IPv4DstN  uint8
	TCPSrc    uint16
	TCPDst    uint16
}

// Len implements wire.Packable.
func (m *Match10) Len() int {
	return match10Len
}

func (m *Match10) wire() uint32 {
	w := uint32(m.Wildcards)
	w |= uint32(32-m.IPv4SrcN) << ipv4SrcShift & (0x3f << ipv4SrcShift)
	w |= uint32(32-m.IPv4DstN) << ipv4DstShift & (0x3f << ipv4DstShift)
	return w
}

// Pack implements wire.Packable.
func (m *Match10) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.wire()); err != nil {
		return err
	}
	if err := w.PutUint16(m.InPort); err != nil {
		return err
	}
	if err := w.PutBytes(m.EthSrc[:]); err != nil {
		return err
	}
	if err := w.PutBytes(m.EthDst[:]); err != nil {
		return err
	}
	if err := w.PutUint16(m.VlanID); err != nil {
		return err
	}
	if err := w.PutUint8(m.VlanPCP); err != nil {
		return err
	}
	if err := w.PutZero(1); err != nil {
		return err
	}
	if err := w.PutUint16(m.EthType); err != nil {
		return err
	}
	if err := w.PutUint8(m.IPTos); err != nil {
		return err
	}
	if err := w.PutUint8(m.IPProto); err != nil {
		return err
	}
	if err := w.PutZero(2); err != nil {
		return err
	}
	if err := w.PutUint32(m.IPv4Src); err != nil {
		return err
	}
	if err := w.PutUint32(m.IPv4Dst); err != nil {
		return err
	}
	if err := w.PutUint16(m.TCPSrc); err != nil {
		return err
	}
	return w.PutUint16(m.TCPDst)
}

// Unpack implements wire.Unpackable.
func (m *Match10) Unpack(r *wire.Reader) error {
	wildcards, err := r.Uint32()
	if err != nil {
		return err
	}

	m.Wildcards = Wildcards(wildcards) &^ (0x3f<<ipv4SrcShift | 0x3f<<ipv4DstShift)
	m.IPv4SrcN = 32 - uint8((wildcards>>ipv4SrcShift)&0x3f)
	m.IPv4DstN = 32 - uint8((wildcards>>ipv4DstShift)&0x3f)

	if m.InPort, err = r.Uint16(); err != nil {
		return err
	}

	src, err := r.Next(6)
	if err != nil {
		return err
	}
	copy(m.EthSrc[:], src)

	dst, err := r.Next(6)
	if err != nil {
		return err
	}
	copy(m.EthDst[:], dst)

	if m.VlanID, err = r.Uint16(); err != nil {
		return err
	}
	if m.VlanPCP, err = r.Uint8(); err != nil {
		return err
	}
	if err = r.Skip(1); err != nil {
		return err
	}
	if m.EthType, err = r.Uint16(); err != nil {
		return err
	}
	if m.IPTos, err = r.Uint8(); err != nil {
		return err
	}
	if m.IPProto, err = r.Uint8(); err != nil {
		return err
	}
	if err = r.Skip(2); err != nil {
		return err
	}
	if m.IPv4Src, err = r.Uint32(); err != nil {
		return err
	}
	if m.IPv4Dst, err = r.Uint32(); err != nil {
		return err
	}
	if m.TCPSrc, err = r.Uint16(); err != nil {
		return err
	}
	m.TCPDst, err = r.Uint16()
	return err
}
