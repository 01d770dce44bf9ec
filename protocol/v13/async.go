package v13

import "github.com/netrack/ofcore/wire"

// AsyncMask is a packed {master/slave} pair of OFPR_*/OFPPR_*/OFPRR_*
// reason bitmasks, one per asynchronous message class controlled by
// GetAsync/SetAsync.
type AsyncMask struct {
	Master uint32
	Slave  uint32
}

func (a *AsyncMask) pack(w *wire.Writer) error {
	if err := w.PutUint32(a.Master); err != nil {
		return err
	}
	return w.PutUint32(a.Slave)
}

func (a *AsyncMask) unpack(r *wire.Reader) error {
	var err error
	if a.Master, err = r.Uint32(); err != nil {
		return err
	}
	a.Slave, err = r.Uint32()
	return err
}

// AsyncConfig is the {packet_in, port_status, flow_removed} mask
// triple shared by GetAsyncReply and SetAsync: which asynchronous
// message reasons a controller receives on this connection.
type AsyncConfig struct {
	PacketIn    AsyncMask
	PortStatus  AsyncMask
	FlowRemoved AsyncMask
}

func (m *AsyncConfig) Len() int { return 24 }

func (m *AsyncConfig) Pack(w *wire.Writer) error {
	if err := m.PacketIn.pack(w); err != nil {
		return err
	}
	if err := m.PortStatus.pack(w); err != nil {
		return err
	}
	return m.FlowRemoved.pack(w)
}

func (m *AsyncConfig) Unpack(r *wire.Reader) error {
	if err := m.PacketIn.unpack(r); err != nil {
		return err
	}
	if err := m.PortStatus.unpack(r); err != nil {
		return err
	}
	return m.FlowRemoved.unpack(r)
}

// GetAsyncRequest solicits the controller connection's current
// asynchronous message configuration.
type GetAsyncRequest struct{}

func (m *GetAsyncRequest) Len() int                   { return 0 }
func (m *GetAsyncRequest) Pack(w *wire.Writer) error   { return nil }
func (m *GetAsyncRequest) Unpack(r *wire.Reader) error { return nil }

// GetAsyncReply and SetAsync share AsyncConfig's wire shape exactly.
type GetAsyncReply struct{ AsyncConfig }
type SetAsync struct{ AsyncConfig }
