// Package group implements the OpenFlow v1.2/v1.3 group bucket codec:
// the {length, weight, watch_port, watch_group, actions} structures
// carried by Group-Mod and the group-desc multipart body.
package group

import (
	"github.com/netrack/ofcore/protocol/action"
	"github.com/netrack/ofcore/wire"
)

// ModCommand is an OFPGC_* group modification command.
type ModCommand uint16

const (
	ModCommandAdd ModCommand = iota
	ModCommandModify
	ModCommandDelete
)

// Type is an OFPGT_* group type.
type Type uint8

const (
	TypeAll Type = iota
	TypeSelect
	TypeIndirect
	TypeFF
)

// WatchPort/WatchGroup sentinel meaning "none", used by non-FF buckets.
const WatchNone uint32 = 0xffffffff

const bucketHeaderLen = 16

// Bucket is one action bucket of a group: the ofp_bucket
// {length, weight, watch_port, watch_group, actions} structure.
type Bucket struct {
	Weight     uint16
	WatchPort  uint32
	WatchGroup uint32
	Actions    action.List
}

// Len implements wire.Packable.
func (b *Bucket) Len() int {
	return bucketHeaderLen + b.Actions.Len()
}

// Pack implements wire.Packable.
func (b *Bucket) Pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(b.Len())); err != nil {
		return err
	}
	if err := w.PutUint16(b.Weight); err != nil {
		return err
	}
	if err := w.PutUint32(b.WatchPort); err != nil {
		return err
	}
	if err := w.PutUint32(b.WatchGroup); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
		return err
	}

	return b.Actions.Pack(w)
}

// unpack reads a Bucket using reg to decode its nested action list.
func (b *Bucket) unpack(r *wire.Reader, reg action.Registry) error {
	length, err := r.Uint16()
	if err != nil {
		return err
	}
	if length < bucketHeaderLen {
		return wire.ErrLengthMismatch
	}
	if b.Weight, err = r.Uint16(); err != nil {
		return err
	}
	if b.WatchPort, err = r.Uint32(); err != nil {
		return err
	}
	if b.WatchGroup, err = r.Uint32(); err != nil {
		return err
	}
	if err = r.Skip(4); err != nil {
		return err
	}

	b.Actions, err = action.UnpackList(r, reg, int(length)-bucketHeaderLen)
	return err
}

// List is an ordered sequence of buckets.
type List []Bucket

// Len implements wire.Packable.
func (l List) Len() int {
	var n int
	for i := range l {
		n += l[i].Len()
	}

	return n
}

// Pack implements wire.Packable.
func (l List) Pack(w *wire.Writer) error {
	for i := range l {
		if err := l[i].Pack(w); err != nil {
			return err
		}
	}

	return nil
}

// UnpackList reads buckets from r until exactly n bytes have been
// consumed.
func UnpackList(r *wire.Reader, reg action.Registry, n int) (List, error) {
	var list List

	for n > 0 {
		var b Bucket
		before := r.Len()

		if err := b.unpack(r, reg); err != nil {
			return nil, err
		}

		n -= before - r.Len()
		list = append(list, b)
	}

	if n != 0 {
		return nil, wire.ErrInvalList
	}

	return list, nil
}
