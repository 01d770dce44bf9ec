package oxm_test

import (
	"testing"

	"github.com/netrack/ofcore/protocol/oxm"
	"github.com/netrack/ofcore/wire"
	"github.com/netrack/ofcore/wire/wiretest"
)

func TestXMRoundTrip(t *testing.T) {
	cases := []wiretest.Case{
		{
			Name:  "in_port",
			Value: &oxm.XM{Class: oxm.ClassOpenflowBasic, Field: oxm.FieldInPort, Value: []byte{0, 0, 0, 1}},
			Bytes: []byte{0x80, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x01},
		},
		{
			Name: "eth_dst masked",
			Value: &oxm.XM{
				Class: oxm.ClassOpenflowBasic,
				Field: oxm.FieldEthDst,
				Value: []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06},
				Mask:  []byte{0xff, 0xff, 0xff, 0x00, 0x00, 0x00},
			},
			Bytes: []byte{
				0x80, 0x00, 0x07, 0x0c,
				0x01, 0x02, 0x03, 0x04, 0x05, 0x06,
				0xff, 0xff, 0xff, 0x00, 0x00, 0x00,
			},
		},
	}

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &oxm.XM{} }, cases)
}

func TestXMUnpackUnknownBasicField(t *testing.T) {
	b := []byte{0x80, 0x00, 0xfe, 0x01, 0x00}
	r := wire.NewReader(b)

	var xm oxm.XM
	if err := xm.Unpack(r); err == nil {
		t.Fatal("expected an error for an unrecognized openflow-basic field")
	}
}

func TestXMUnpackBadMaskedLength(t *testing.T) {
	// hasmask bit set, length is odd: the value/mask split can't be even.
	b := []byte{0x80, 0x00, 0x01, 0x03, 0x00, 0x00, 0x00}
	r := wire.NewReader(b)

	var xm oxm.XM
	if err := xm.Unpack(r); err != wire.ErrInvalFieldLength {
		t.Fatalf("got %v, want ErrInvalFieldLength", err)
	}
}
