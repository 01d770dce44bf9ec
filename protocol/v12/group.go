package v12

import (
	"github.com/netrack/ofcore/protocol/action"
	"github.com/netrack/ofcore/protocol/group"
	"github.com/netrack/ofcore/wire"
)

// GroupMod creates, modifies or deletes a group and its buckets.
type GroupMod struct {
	Command ModCommand
	Type    GroupType
	GroupID uint32
	Buckets group.List

	actions action.Registry
}

// ModCommand re-exports group.ModCommand so callers need only import
// this package to build a GroupMod.
type ModCommand = group.ModCommand

// GroupType re-exports group.Type.
type GroupType = group.Type

func (m *GroupMod) Len() int { return 8 + m.Buckets.Len() }

func (m *GroupMod) Pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(m.Command)); err != nil {
		return err
	}
	if err := w.PutUint8(uint8(m.Type)); err != nil {
		return err
	}
	if err := w.PutZero(1); err != nil {
		return err
	}
	if err := w.PutUint32(m.GroupID); err != nil {
		return err
	}
	return m.Buckets.Pack(w)
}

func (m *GroupMod) Unpack(r *wire.Reader) error {
	command, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Command = ModCommand(command)

	typ, err := r.Uint8()
	if err != nil {
		return err
	}
	m.Type = GroupType(typ)

	if err = r.Skip(1); err != nil {
		return err
	}
	if m.GroupID, err = r.Uint32(); err != nil {
		return err
	}

	reg := m.actions
	if reg == nil {
		reg = action.DefaultRegistry
	}
	m.Buckets, err = group.UnpackList(r, reg, r.Len())
	return err
}
