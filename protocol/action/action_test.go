package action_test

import (
	"testing"

	"github.com/netrack/ofcore/protocol/action"
	"github.com/netrack/ofcore/protocol/oxm"
	"github.com/netrack/ofcore/wire"
	"github.com/netrack/ofcore/wire/wiretest"
)

func TestOutputRoundTrip(t *testing.T) {
	cases := []wiretest.Case{
		{
			Name:  "output to port 5",
			Value: &action.Output{Port: 5, MaxLen: 0xffff},
			Bytes: []byte{
				0x00, 0x00, 0x00, 0x10,
				0x00, 0x00, 0x00, 0x05,
				0xff, 0xff,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
		},
	}

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &action.Output{} }, cases)
}

func TestSetFieldRoundTrip(t *testing.T) {
	cases := []wiretest.Case{
		{
			Name: "set eth_type",
			Value: &action.SetField{
				Field: oxm.XM{Class: oxm.ClassOpenflowBasic, Field: oxm.FieldEthType, Value: []byte{0x08, 0x00}},
			},
			Bytes: []byte{
				0x00, 0x19, 0x00, 0x10,
				0x80, 0x00, 0x0a, 0x02, 0x08, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
		},
	}

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &action.SetField{} }, cases)
}

func TestExperimenterRoundTrip(t *testing.T) {
	cases := []wiretest.Case{
		{
			Name:  "vendor payload",
			Value: &action.Experimenter{ExperimenterID: 0x12345678, Data: []byte{0xaa, 0xbb, 0xcc, 0xdd}},
			Bytes: []byte{
				0xff, 0xff, 0x00, 0x10,
				0x12, 0x34, 0x56, 0x78,
				0xaa, 0xbb, 0xcc, 0xdd,
				0x00, 0x00, 0x00, 0x00,
			},
		},
	}

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &action.Experimenter{} }, cases)
}

func TestUnpackListRoundTrip(t *testing.T) {
	list := action.List{
		&action.Output{Port: 1, MaxLen: 0xffff},
		&action.DecNWTTL{},
	}

	w := wire.NewWriter(make([]byte, list.Len()))
	if err := list.Pack(w); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	got, err := action.UnpackList(wire.NewReader(w.Bytes()), action.DefaultRegistry, list.Len())
	if err != nil {
		t.Fatalf("UnpackList failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d actions, want 2", len(got))
	}
	out, ok := got[0].(*action.Output)
	if !ok || out.Port != 1 || out.MaxLen != 0xffff {
		t.Fatalf("unexpected first action: %#v", got[0])
	}
	if _, ok := got[1].(*action.DecNWTTL); !ok {
		t.Fatalf("unexpected second action: %#v", got[1])
	}
}

func TestUnpackListRejectsUnknownType(t *testing.T) {
	b := []byte{0xfe, 0xfe, 0x00, 0x08, 0x00, 0x00, 0x00, 0x00}
	if _, err := action.UnpackList(wire.NewReader(b), action.DefaultRegistry, len(b)); err != wire.ErrBadKind {
		t.Fatalf("got %v, want ErrBadKind", err)
	}
}

func TestUnpackListRejectsLengthMismatch(t *testing.T) {
	b := []byte{0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x05, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if _, err := action.UnpackList(wire.NewReader(b), action.DefaultRegistry, len(b)-1); err != wire.ErrInvalList {
		t.Fatalf("got %v, want ErrInvalList", err)
	}
}
