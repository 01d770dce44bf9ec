package v12

import "github.com/netrack/ofcore/wire"

// PortStatusReason is an OFPPR_* reason code.
type PortStatusReason uint8

const (
	PortStatusReasonAdd PortStatusReason = iota
	PortStatusReasonDelete
	PortStatusReasonModify
)

// PortStatus notifies the controller of a port configuration or state
// change.
type PortStatus struct {
	Reason PortStatusReason
	Port   Port
}

func (m *PortStatus) Len() int { return 8 + m.Port.Len() }

func (m *PortStatus) Pack(w *wire.Writer) error {
	if err := w.PutUint8(uint8(m.Reason)); err != nil {
		return err
	}
	if err := w.PutZero(7); err != nil {
		return err
	}
	return m.Port.Pack(w)
}

func (m *PortStatus) Unpack(r *wire.Reader) error {
	reason, err := r.Uint8()
	if err != nil {
		return err
	}
	m.Reason = PortStatusReason(reason)

	if err = r.Skip(7); err != nil {
		return err
	}
	return m.Port.Unpack(r)
}

// PortMod changes a port's configuration.
type PortMod struct {
	PortNo    uint32
	HWAddr    [6]byte
	Config    PortConfig
	Mask      PortConfig
	Advertise PortFeature
}

func (m *PortMod) Len() int { return 32 }

func (m *PortMod) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.PortNo); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
		return err
	}
	if err := w.PutBytes(m.HWAddr[:]); err != nil {
		return err
	}
	if err := w.PutZero(2); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(m.Config)); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(m.Mask)); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(m.Advertise)); err != nil {
		return err
	}
	return w.PutZero(4)
}

func (m *PortMod) Unpack(r *wire.Reader) error {
	var err error
	if m.PortNo, err = r.Uint32(); err != nil {
		return err
	}
	if err = r.Skip(4); err != nil {
		return err
	}

	hw, err := r.Next(6)
	if err != nil {
		return err
	}
	copy(m.HWAddr[:], hw)

	if err = r.Skip(2); err != nil {
		return err
	}

	config, err := r.Uint32()
	if err != nil {
		return err
	}
	m.Config = PortConfig(config)

	mask, err := r.Uint32()
	if err != nil {
		return err
	}
	m.Mask = PortConfig(mask)

	adv, err := r.Uint32()
	if err != nil {
		return err
	}
	m.Advertise = PortFeature(adv)

	return r.Skip(4)
}

// TableConfig are the OFPTC_* bits of TableMod.Config.
type TableConfig uint32

// TableMod changes a flow table's configuration.
type TableMod struct {
	TableID uint8
	Config  TableConfig
}

func (m *TableMod) Len() int { return 8 }

func (m *TableMod) Pack(w *wire.Writer) error {
	if err := w.PutUint8(m.TableID); err != nil {
		return err
	}
	if err := w.PutZero(3); err != nil {
		return err
	}
	return w.PutUint32(uint32(m.Config))
}

func (m *TableMod) Unpack(r *wire.Reader) error {
	var err error
	if m.TableID, err = r.Uint8(); err != nil {
		return err
	}
	if err = r.Skip(3); err != nil {
		return err
	}

	config, err := r.Uint32()
	m.Config = TableConfig(config)
	return err
}
