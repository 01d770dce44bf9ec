package v13_test

import (
	"testing"

	"github.com/netrack/ofcore/protocol/oxm"
	"github.com/netrack/ofcore/protocol/v13"
	"github.com/netrack/ofcore/wire"
	"github.com/netrack/ofcore/wire/wiretest"
)

// TestPacketInRoundTrip round-trips a v1.3 Packet-In carrying buffer id,
// total length, reason, table id, cookie and a populated match; the
// cookie is the field v1.3 adds relative to v1.2's Packet-In.
func TestPacketInRoundTrip(t *testing.T) {
	pin := &v13.PacketIn{
		BufferID: 42,
		TotalLen: 64,
		Reason:   v13.PacketInReasonAction,
		TableID:  2,
		Cookie:   0x1122334455667788,
		Match: oxm.Match{
			Type: oxm.MatchTypeXM,
			Fields: []oxm.XM{
				{Class: oxm.ClassOpenflowBasic, Field: oxm.FieldInPort, Value: []byte{0, 0, 0, 3}},
			},
		},
		Data: []byte{0x01, 0x02, 0x03, 0x04},
	}

	cases := []wiretest.Case{{Name: "packet-in with match and cookie", Value: pin}}

	b, err := wire.Pack(pin)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	cases[0].Bytes = b

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &v13.PacketIn{} }, cases)
}

func TestPacketInReasonInvalidTTL(t *testing.T) {
	pin := &v13.PacketIn{Reason: v13.PacketInReasonInvalidTTL}

	b, err := wire.Pack(pin)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	var got v13.PacketIn
	if err := got.Unpack(wire.NewReader(b)); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got.Reason != v13.PacketInReasonInvalidTTL {
		t.Fatalf("got reason %v, want PacketInReasonInvalidTTL", got.Reason)
	}
}
