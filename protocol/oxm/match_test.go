package oxm_test

import (
	"testing"

	"github.com/netrack/ofcore/protocol/oxm"
	"github.com/netrack/ofcore/wire"
	"github.com/netrack/ofcore/wire/wiretest"
)

func TestMatchRoundTrip(t *testing.T) {
	cases := []wiretest.Case{
		{
			Name:  "empty match",
			Value: &oxm.Match{Type: oxm.MatchTypeXM},
			Bytes: []byte{0x00, 0x01, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00},
		},
		{
			Name: "in_port, padded to 8 bytes",
			Value: &oxm.Match{
				Type: oxm.MatchTypeXM,
				Fields: []oxm.XM{
					{Class: oxm.ClassOpenflowBasic, Field: oxm.FieldInPort, Value: []byte{0, 0, 0, 1}},
				},
			},
			Bytes: []byte{
				0x00, 0x01, 0x00, 0x0c,
				0x80, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x01,
				0x00, 0x00, 0x00, 0x00,
			},
		},
	}

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &oxm.Match{} }, cases)
}

func TestMatchUnpackRejectsDuplicateField(t *testing.T) {
	b := []byte{
		0x00, 0x01, 0x00, 0x14,
		0x80, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x01,
		0x80, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x02,
	}

	var m oxm.Match
	if err := m.Unpack(wire.NewReader(b)); err != wire.ErrInvalList {
		t.Fatalf("got %v, want ErrInvalList for a duplicate (class, field) pair", err)
	}
}

// TestMatchValidatePrereqViolation exercises spec's S4 scenario: a match
// carrying tcp_src without eth_type/ip_proto must be rejected.
func TestMatchValidatePrereqViolation(t *testing.T) {
	m := oxm.Match{
		Type: oxm.MatchTypeXM,
		Fields: []oxm.XM{
			{Class: oxm.ClassOpenflowBasic, Field: oxm.FieldTCPSrc, Value: []byte{0x00, 0x50}},
		},
	}

	if err := m.Validate(); err != wire.ErrMatchPrereqViolated {
		t.Fatalf("got %v, want ErrMatchPrereqViolated", err)
	}
}

func TestMatchValidateSatisfiedPrereq(t *testing.T) {
	m := oxm.Match{
		Type: oxm.MatchTypeXM,
		Fields: []oxm.XM{
			{Class: oxm.ClassOpenflowBasic, Field: oxm.FieldEthType, Value: []byte{0x08, 0x00}},
			{Class: oxm.ClassOpenflowBasic, Field: oxm.FieldIPProto, Value: []byte{0x06}},
			{Class: oxm.ClassOpenflowBasic, Field: oxm.FieldTCPSrc, Value: []byte{0x00, 0x50}},
		},
	}

	if err := m.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMatchOverlaps(t *testing.T) {
	a := oxm.Match{Fields: []oxm.XM{
		{Class: oxm.ClassOpenflowBasic, Field: oxm.FieldIPv4Src, Value: []byte{10, 0, 0, 0}, Mask: []byte{255, 255, 255, 0}},
	}}
	b := oxm.Match{Fields: []oxm.XM{
		{Class: oxm.ClassOpenflowBasic, Field: oxm.FieldIPv4Src, Value: []byte{10, 0, 0, 5}},
	}}

	if !a.Overlaps(&b) {
		t.Fatal("expected 10.0.0.0/24 to overlap a host route inside it")
	}
	if a.StrictlyOverlaps(&b) {
		t.Fatal("strict overlap requires identical field sets and masks")
	}
}
