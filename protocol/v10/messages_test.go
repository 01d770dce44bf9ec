package v10_test

import (
	"testing"

	"github.com/netrack/ofcore/protocol/v10"
	"github.com/netrack/ofcore/wire"
	"github.com/netrack/ofcore/wire/wiretest"
)

func TestPacketInRoundTrip(t *testing.T) {
	cases := []wiretest.Case{
		{
			Name: "no-match miss, buffered",
			Value: &v10.PacketIn{
				BufferID: 7,
				TotalLen: 4,
				InPort:   1,
				Reason:   v10.PacketInReasonNoMatch,
				Data:     []byte{0xde, 0xad, 0xbe, 0xef},
			},
			Bytes: []byte{
				0x00, 0x00, 0x00, 0x07,
				0x00, 0x04,
				0x00, 0x01,
				0x00,
				0x00,
				0xde, 0xad, 0xbe, 0xef,
			},
		},
	}

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &v10.PacketIn{} }, cases)
}

func TestOutputRoundTrip(t *testing.T) {
	cases := []wiretest.Case{
		{
			Name:  "output to port 9",
			Value: &v10.Output{Port: 9, MaxLen: 0xffff},
			Bytes: []byte{0x00, 0x00, 0x00, 0x08, 0x00, 0x09, 0xff, 0xff},
		},
	}

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &v10.Output{} }, cases)
}

func TestActionListRoundTrip(t *testing.T) {
	list := v10.List{
		&v10.Output{Port: 1, MaxLen: 0xffff},
		&v10.StripVlan{},
	}

	w := wire.NewWriter(make([]byte, list.Len()))
	if err := list.Pack(w); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	got, err := v10.UnpackList(wire.NewReader(w.Bytes()), v10.DefaultRegistry, list.Len())
	if err != nil {
		t.Fatalf("UnpackList failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d actions, want 2", len(got))
	}
	if _, ok := got[0].(*v10.Output); !ok {
		t.Fatalf("unexpected first action: %#v", got[0])
	}
	if _, ok := got[1].(*v10.StripVlan); !ok {
		t.Fatalf("unexpected second action: %#v", got[1])
	}
}
