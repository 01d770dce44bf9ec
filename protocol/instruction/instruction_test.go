package instruction_test

import (
	"testing"

	"github.com/netrack/ofcore/protocol/action"
	"github.com/netrack/ofcore/protocol/instruction"
	"github.com/netrack/ofcore/wire"
	"github.com/netrack/ofcore/wire/wiretest"
)

func TestGotoTableRoundTrip(t *testing.T) {
	cases := []wiretest.Case{
		{
			Name:  "goto table 3",
			Value: &instruction.GotoTable{TableID: 3},
			Bytes: []byte{0x00, 0x01, 0x00, 0x08, 0x03, 0x00, 0x00, 0x00},
		},
	}

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &instruction.GotoTable{} }, cases)
}

func TestWriteMetadataRoundTrip(t *testing.T) {
	cases := []wiretest.Case{
		{
			Name:  "write metadata",
			Value: &instruction.WriteMetadata{Metadata: 0x0102030405060708, MetadataMask: 0xffffffffffffffff},
			Bytes: []byte{
				0x00, 0x02, 0x00, 0x18,
				0x00, 0x00, 0x00, 0x00,
				0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
			},
		},
	}

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &instruction.WriteMetadata{} }, cases)
}

func TestMeterRoundTrip(t *testing.T) {
	cases := []wiretest.Case{
		{
			Name:  "apply meter 7",
			Value: &instruction.Meter{MeterID: 7},
			Bytes: []byte{0x00, 0x06, 0x00, 0x08, 0x00, 0x00, 0x00, 0x07},
		},
	}

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &instruction.Meter{} }, cases)
}

// TestApplyActionsRoundTrip exercises the nested action-list decode path;
// the registry dependency means it can't go through wiretest's bare
// zero-value comparison, since two Registry maps of closures are never
// reflect.DeepEqual even when functionally identical.
func TestApplyActionsRoundTrip(t *testing.T) {
	list := instruction.List{
		&instruction.ApplyActions{Actions: action.List{&action.Output{Port: 4, MaxLen: 0xffff}}},
	}

	w := wire.NewWriter(make([]byte, list.Len()))
	if err := list.Pack(w); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	reg := instruction.DefaultRegistry(action.DefaultRegistry)
	got, err := instruction.UnpackList(wire.NewReader(w.Bytes()), reg, list.Len())
	if err != nil {
		t.Fatalf("UnpackList failed: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("got %d instructions, want 1", len(got))
	}
	apply, ok := got[0].(*instruction.ApplyActions)
	if !ok {
		t.Fatalf("unexpected instruction type: %#v", got[0])
	}
	if len(apply.Actions) != 1 {
		t.Fatalf("got %d actions, want 1", len(apply.Actions))
	}
	out, ok := apply.Actions[0].(*action.Output)
	if !ok || out.Port != 4 || out.MaxLen != 0xffff {
		t.Fatalf("unexpected action: %#v", apply.Actions[0])
	}
}

func TestUnpackListRejectsUnknownType(t *testing.T) {
	b := []byte{0xfe, 0xfe, 0x00, 0x08, 0x00, 0x00, 0x00, 0x00}
	reg := instruction.DefaultRegistry(action.DefaultRegistry)
	if _, err := instruction.UnpackList(wire.NewReader(b), reg, len(b)); err != wire.ErrBadKind {
		t.Fatalf("got %v, want ErrBadKind", err)
	}
}
