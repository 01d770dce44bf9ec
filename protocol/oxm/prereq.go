package oxm

import (
	"bytes"

	"github.com/netrack/ofcore/wire"
)

// EtherType values checked by the prerequisite table below.
var (
	ethTypeIPv4 = []byte{0x08, 0x00}
	ethTypeIPv6 = []byte{0x86, 0xdd}
	ethTypeARP  = []byte{0x08, 0x06}
	ethTypeMPLS = []byte{0x88, 0x47}
	ethTypeMPLS2 = []byte{0x88, 0x48}
)

// IP protocol numbers checked by the prerequisite table below.
var (
	ipProtoTCP  = []byte{0x06}
	ipProtoUDP  = []byte{0x11}
	ipProtoICMP = []byte{0x01}
	ipProtoICMPv6 = []byte{0x3a}
)

// ICMPv6 types required by the IPv6 neighbor discovery fields.
var (
	icmpv6NeighborSolicit    = []byte{0x87}
	icmpv6NeighborAdvertise  = []byte{0x88}
)

// prereq describes one field's prerequisites: it is valid only when every
// entry's (field, one-of-values) holds. An empty values slice means the
// field must merely be present, with any value.
type prereq struct {
	field  Field
	oneOf  [][]byte
}

// prereqs encodes the field-prerequisite relationships OpenFlow matches
// must satisfy (ip_proto requires eth_type IP/IPv6, and so on), following
// the richer set cofmatch.cc validates.
var prereqs = map[Field][]prereq{
	FieldIPDSCP:  {{FieldEthType, [][]byte{ethTypeIPv4, ethTypeIPv6}}},
	FieldIPECN:   {{FieldEthType, [][]byte{ethTypeIPv4, ethTypeIPv6}}},
	FieldIPProto: {{FieldEthType, [][]byte{ethTypeIPv4, ethTypeIPv6}}},
	FieldIPv4Src: {{FieldEthType, [][]byte{ethTypeIPv4}}},
	FieldIPv4Dst: {{FieldEthType, [][]byte{ethTypeIPv4}}},
	FieldIPv6Src: {{FieldEthType, [][]byte{ethTypeIPv6}}},
	FieldIPv6Dst: {{FieldEthType, [][]byte{ethTypeIPv6}}},
	FieldIPv6Flabel: {{FieldEthType, [][]byte{ethTypeIPv6}}},
	FieldTCPSrc: {
		{FieldEthType, [][]byte{ethTypeIPv4, ethTypeIPv6}},
		{FieldIPProto, [][]byte{ipProtoTCP}},
	},
	FieldTCPDst: {
		{FieldEthType, [][]byte{ethTypeIPv4, ethTypeIPv6}},
		{FieldIPProto, [][]byte{ipProtoTCP}},
	},
	FieldUDPSrc: {
		{FieldEthType, [][]byte{ethTypeIPv4, ethTypeIPv6}},
		{FieldIPProto, [][]byte{ipProtoUDP}},
	},
	FieldUDPDst: {
		{FieldEthType, [][]byte{ethTypeIPv4, ethTypeIPv6}},
		{FieldIPProto, [][]byte{ipProtoUDP}},
	},
	FieldICMPv4Type: {
		{FieldEthType, [][]byte{ethTypeIPv4}},
		{FieldIPProto, [][]byte{ipProtoICMP}},
	},
	FieldICMPv4Code: {
		{FieldEthType, [][]byte{ethTypeIPv4}},
		{FieldIPProto, [][]byte{ipProtoICMP}},
	},
	FieldICMPv6Type: {
		{FieldEthType, [][]byte{ethTypeIPv6}},
		{FieldIPProto, [][]byte{ipProtoICMPv6}},
	},
	FieldICMPv6Code: {
		{FieldEthType, [][]byte{ethTypeIPv6}},
		{FieldIPProto, [][]byte{ipProtoICMPv6}},
	},
	FieldIPv6NDTarget: {
		{FieldICMPv6Type, [][]byte{icmpv6NeighborSolicit, icmpv6NeighborAdvertise}},
	},
	FieldIPv6NDSLL: {
		{FieldICMPv6Type, [][]byte{icmpv6NeighborSolicit}},
	},
	FieldIPv6NDTLL: {
		{FieldICMPv6Type, [][]byte{icmpv6NeighborAdvertise}},
	},
	FieldARPSPA: {{FieldEthType, [][]byte{ethTypeARP}}},
	FieldARPTPA: {{FieldEthType, [][]byte{ethTypeARP}}},
	FieldARPSHA: {{FieldEthType, [][]byte{ethTypeARP}}},
	FieldARPTHA: {{FieldEthType, [][]byte{ethTypeARP}}},
	FieldMPLSTC: {{FieldEthType, [][]byte{ethTypeMPLS, ethTypeMPLS2}}},
	FieldMPLSBOS: {{FieldEthType, [][]byte{ethTypeMPLS, ethTypeMPLS2}}},
}

func checkPrereq(m *Match, f Field) error {
	for _, need := range prereqs[f] {
		xm, ok := m.Get(ClassOpenflowBasic, need.field)
		if !ok {
			return wire.ErrMatchPrereqViolated
		}

		if len(need.oneOf) == 0 {
			continue
		}

		matched := false
		for _, want := range need.oneOf {
			if bytes.Equal(xm.Value, want) {
				matched = true
				break
			}
		}

		if !matched {
			return wire.ErrMatchPrereqViolated
		}
	}

	return nil
}

// Overlaps reports whether two matches overlap: every field present in
// both has intersecting value+mask sets; fields missing from one side are
// wildcards and always intersect.
func (m *Match) Overlaps(other *Match) bool {
	for i := range m.Fields {
		a := m.Fields[i]
		b, ok := other.Get(a.Class, a.Field)
		if !ok {
			continue
		}

		if !valuesIntersect(a, b) {
			return false
		}
	}

	return true
}

// StrictlyOverlaps requires identical field sets and identical masks, the
// OFPFMFC_OVERLAP "strict" overlap test.
func (m *Match) StrictlyOverlaps(other *Match) bool {
	if len(m.Fields) != len(other.Fields) {
		return false
	}

	for i := range m.Fields {
		a := m.Fields[i]
		b, ok := other.Get(a.Class, a.Field)

		if !ok || !bytes.Equal(a.Mask, b.Mask) || !valuesIntersect(a, b) {
			return false
		}
	}

	return true
}

func valuesIntersect(a, b XM) bool {
	n := len(a.Value)
	if len(b.Value) != n {
		return false
	}

	for i := 0; i < n; i++ {
		am := byte(0xff)
		if a.HasMask() {
			am = a.Mask[i]
		}

		bm := byte(0xff)
		if b.HasMask() {
			bm = b.Mask[i]
		}

		mask := am & bm
		if a.Value[i]&mask != b.Value[i]&mask {
			return false
		}
	}

	return true
}
