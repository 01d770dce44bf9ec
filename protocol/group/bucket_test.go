package group_test

import (
	"testing"

	"github.com/netrack/ofcore/protocol/action"
	"github.com/netrack/ofcore/protocol/group"
	"github.com/netrack/ofcore/wire"
)

func TestBucketListRoundTrip(t *testing.T) {
	list := group.List{
		{
			Weight:     1,
			WatchPort:  group.WatchNone,
			WatchGroup: group.WatchNone,
			Actions:    action.List{&action.Output{Port: 2, MaxLen: 0xffff}},
		},
		{
			Weight:     0,
			WatchPort:  group.WatchNone,
			WatchGroup: group.WatchNone,
			Actions:    action.List{&action.Output{Port: 3, MaxLen: 0xffff}},
		},
	}

	w := wire.NewWriter(make([]byte, list.Len()))
	if err := list.Pack(w); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	got, err := group.UnpackList(wire.NewReader(w.Bytes()), action.DefaultRegistry, list.Len())
	if err != nil {
		t.Fatalf("UnpackList failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d buckets, want 2", len(got))
	}
	for i, want := range list {
		if got[i].Weight != want.Weight || got[i].WatchPort != want.WatchPort || got[i].WatchGroup != want.WatchGroup {
			t.Fatalf("bucket %d header mismatch: got %+v, want %+v", i, got[i], want)
		}
		if len(got[i].Actions) != 1 {
			t.Fatalf("bucket %d: got %d actions, want 1", i, len(got[i].Actions))
		}
		out, ok := got[i].Actions[0].(*action.Output)
		wantOut := want.Actions[0].(*action.Output)
		if !ok || out.Port != wantOut.Port {
			t.Fatalf("bucket %d action mismatch: got %#v, want %#v", i, got[i].Actions[0], want.Actions[0])
		}
	}
}

func TestUnpackListRejectsLengthMismatch(t *testing.T) {
	list := group.List{{
		WatchPort:  group.WatchNone,
		WatchGroup: group.WatchNone,
		Actions:    action.List{&action.Output{Port: 1, MaxLen: 0xffff}},
	}}

	w := wire.NewWriter(make([]byte, list.Len()))
	if err := list.Pack(w); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	if _, err := group.UnpackList(wire.NewReader(w.Bytes()), action.DefaultRegistry, list.Len()-1); err != wire.ErrInvalList {
		t.Fatalf("got %v, want ErrInvalList", err)
	}
}
