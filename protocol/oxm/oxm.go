// Package oxm implements the OpenFlow Extensible Match TLV format: packed
// match-field list encode/decode with prerequisite validation, shared by
// the v1.2 and v1.3 message codecs. OpenFlow v1.0 uses a fixed 40-byte
// match structure instead; see Match10 in match10.go.
package oxm

import (
	"k8s.io/klog/v2"

	"github.com/netrack/ofcore/wire"
)

// Class identifies the namespace an XM's Field is drawn from.
type Class uint16

const (
	ClassNicira0       Class = 0x0000
	ClassNicira1       Class = 0x0001
	ClassOpenflowBasic Class = 0x8000
	ClassExperimenter  Class = 0xffff
)

// Field is a class-specific match field selector. Values are only
// meaningful relative to a Class; this module defines the
// ClassOpenflowBasic fields, the ones the OpenFlow specification assigns
// to OFPXMC_OPENFLOW_BASIC.
type Field uint8

// OpenFlow-basic match fields, numbered as OFPXMT_OFB_* in the OpenFlow
// 1.3 specification.
const (
	FieldInPort Field = iota
	FieldInPhyPort
	FieldMetadata
	FieldEthDst
	FieldEthSrc
	FieldEthType
	FieldVlanVID
	FieldVlanPCP
	FieldIPDSCP
	FieldIPECN
	FieldIPProto
	FieldIPv4Src
	FieldIPv4Dst
	FieldTCPSrc
	FieldTCPDst
	FieldUDPSrc
	FieldUDPDst
	FieldSCTPSrc
	FieldSCTPDst
	FieldICMPv4Type
	FieldICMPv4Code
	FieldARPOp
	FieldARPSPA
	FieldARPTPA
	FieldARPSHA
	FieldARPTHA
	FieldIPv6Src
	FieldIPv6Dst
	FieldIPv6Flabel
	FieldICMPv6Type
	FieldICMPv6Code
	FieldIPv6NDTarget
	FieldIPv6NDSLL
	FieldIPv6NDTLL
	FieldMPLSLabel
	FieldMPLSTC
	FieldMPLSBOS
	FieldPBBISID
	FieldTunnelID
	FieldIPv6EXTHDR
)

// width describes the wire footprint of a ClassOpenflowBasic field: the
// byte length of a single (unmasked) value, and whether a mask variant
// is legal for it.
type width struct {
	bytes     int
	maskable  bool
}

var basicWidths = map[Field]width{
	FieldInPort:       {4, false},
	FieldInPhyPort:    {4, false},
	FieldMetadata:     {8, true},
	FieldEthDst:       {6, true},
	FieldEthSrc:       {6, true},
	FieldEthType:      {2, false},
	FieldVlanVID:      {2, true},
	FieldVlanPCP:      {1, false},
	FieldIPDSCP:       {1, false},
	FieldIPECN:        {1, false},
	FieldIPProto:      {1, false},
	FieldIPv4Src:      {4, true},
	FieldIPv4Dst:      {4, true},
	FieldTCPSrc:       {2, false},
	FieldTCPDst:       {2, false},
	FieldUDPSrc:       {2, false},
	FieldUDPDst:       {2, false},
	FieldSCTPSrc:      {2, false},
	FieldSCTPDst:      {2, false},
	FieldICMPv4Type:   {1, false},
	FieldICMPv4Code:   {1, false},
	FieldARPOp:        {2, false},
	FieldARPSPA:       {4, true},
	FieldARPTPA:       {4, true},
	FieldARPSHA:       {6, true},
	FieldARPTHA:       {6, true},
	FieldIPv6Src:      {16, true},
	FieldIPv6Dst:      {16, true},
	FieldIPv6Flabel:   {4, true},
	FieldICMPv6Type:   {1, false},
	FieldICMPv6Code:   {1, false},
	FieldIPv6NDTarget: {16, false},
	FieldIPv6NDSLL:    {6, false},
	FieldIPv6NDTLL:    {6, false},
	FieldMPLSLabel:    {4, false},
	FieldMPLSTC:       {1, false},
	FieldMPLSBOS:      {1, false},
	FieldPBBISID:      {3, true},
	FieldTunnelID:     {8, true},
	FieldIPv6EXTHDR:   {2, true},
}

// XM is a single OpenFlow Extensible Match TLV.
type XM struct {
	Class Class
	Field Field
	Value []byte
	Mask  []byte
}

// HasMask reports whether this field carries a mask.
func (xm *XM) HasMask() bool {
	return xm.Mask != nil
}

// key identifies an XM by its (class, field) pair, the pair the
// OXM-uniqueness invariant is keyed on.
type key struct {
	class Class
	field Field
}

// Len implements wire.Packable.
func (xm *XM) Len() int {
	n := 4 + len(xm.Value)
	if xm.HasMask() {
		n += len(xm.Mask)
	}

	return n
}

// Pack implements wire.Packable.
func (xm *XM) Pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(xm.Class)); err != nil {
		return err
	}

	var hasmask uint8
	if xm.HasMask() {
		hasmask = 1
	}

	fieldByte := uint8(xm.Field)<<1 | hasmask
	if err := w.PutUint8(fieldByte); err != nil {
		return err
	}

	length := len(xm.Value)
	if xm.HasMask() {
		length += len(xm.Mask)
	}

	if err := w.PutUint8(uint8(length)); err != nil {
		return err
	}

	if err := w.PutBytes(xm.Value); err != nil {
		return err
	}

	if xm.HasMask() {
		return w.PutBytes(xm.Mask)
	}

	return nil
}

// Unpack implements wire.Unpackable. It validates the field width against
// the table for (class, field) when the class is ClassOpenflowBasic,
// returning wire.ErrInvalFieldLength on a mismatch.
func (xm *XM) Unpack(r *wire.Reader) error {
	class, err := r.Uint16()
	if err != nil {
		return err
	}

	fieldByte, err := r.Uint8()
	if err != nil {
		return err
	}

	length, err := r.Uint8()
	if err != nil {
		return err
	}

	xm.Class = Class(class)
	xm.Field = Field(fieldByte >> 1)
	hasmask := fieldByte&1 == 1

	valueLen := int(length)
	if hasmask {
		if length%2 != 0 {
			return wire.ErrInvalFieldLength
		}

		valueLen = int(length) / 2
	}

	if xm.Class == ClassOpenflowBasic {
		want, ok := basicWidths[xm.Field]
		if !ok {
			klog.V(4).InfoS("unknown openflow-basic oxm field", "field", xm.Field)
			return wire.ErrBadKind
		}

		if valueLen != want.bytes || (hasmask && !want.maskable) {
			return wire.ErrInvalFieldLength
		}
	}

	value, err := r.Next(valueLen)
	if err != nil {
		return err
	}

	xm.Value = append([]byte(nil), value...)
	xm.Mask = nil

	if hasmask {
		mask, err := r.Next(valueLen)
		if err != nil {
			return err
		}

		xm.Mask = append([]byte(nil), mask...)
	}

	return nil
}
