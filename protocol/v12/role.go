package v12

import "github.com/netrack/ofcore/wire"

// RoleValue is an OFPCR_ROLE_* controller role.
type RoleValue uint32

const (
	RoleNoChange RoleValue = iota
	RoleEqual
	RoleMaster
	RoleSlave
)

// roleBody is the {role, generation_id} pair shared by RoleRequest and
// RoleReply: they negotiate the sending controller's role among
// multiple controllers sharing one switch.
type roleBody struct {
	Role         RoleValue
	GenerationID uint64
}

func (m *roleBody) Len() int { return 16 }

func (m *roleBody) Pack(w *wire.Writer) error {
	if err := w.PutUint32(uint32(m.Role)); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
		return err
	}
	return w.PutUint64(m.GenerationID)
}

func (m *roleBody) Unpack(r *wire.Reader) error {
	role, err := r.Uint32()
	if err != nil {
		return err
	}
	m.Role = RoleValue(role)

	if err = r.Skip(4); err != nil {
		return err
	}
	m.GenerationID, err = r.Uint64()
	return err
}

type RoleRequest struct{ roleBody }
type RoleReply struct{ roleBody }
