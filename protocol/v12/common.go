package v12

import "github.com/netrack/ofcore/wire"

// PortConfig are the OFPPC_* bits of Port.Config.
type PortConfig uint32

const (
	PortConfigDown PortConfig = 1 << iota
	_
	PortConfigNoRecv
	_
	_
	PortConfigNoFwd
	PortConfigNoPacketIn
)

// PortState are the OFPPS_* bits of Port.State.
type PortState uint32

const (
	PortStateLinkDown PortState = 1 << iota
	PortStateBlocked
	PortStateLive
)

// PortFeature are the OFPPF_* bits of Port's curr/advertised/supported/peer
// feature bitmaps.
type PortFeature uint32

const (
	PortFeature10MBHD PortFeature = 1 << iota
	PortFeature10MBFD
	PortFeature100MBHD
	PortFeature100MBFD
	PortFeature1GBHD
	PortFeature1GBFD
	PortFeature10GBFD
	PortFeature40GBFD
	PortFeature100GBFD
	PortFeature1TBFD
	PortFeatureOther
	PortFeatureCopper
	PortFeatureFiber
	PortFeatureAutoneg
	PortFeaturePause
	PortFeaturePauseAsym
)

const portLen = 64

// Port describes a switch port, the ofp_port structure carried by
// Features-Reply and Port-Status.
type Port struct {
	PortNo     uint32
	HWAddr     [6]byte
	Name       string
	Config     PortConfig
	State      PortState
	Curr       PortFeature
	Advertised PortFeature
	Supported  PortFeature
	Peer       PortFeature
	CurrSpeed  uint32
	MaxSpeed   uint32
}

// Len implements wire.Packable.
func (p *Port) Len() int { return portLen }

// Pack implements wire.Packable.
func (p *Port) Pack(w *wire.Writer) error {
	if err := w.PutUint32(p.PortNo); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
		return err
	}
	if err := w.PutBytes(p.HWAddr[:]); err != nil {
		return err
	}
	if err := w.PutZero(2); err != nil {
		return err
	}

	name := make([]byte, 16)
	copy(name, p.Name)
	if err := w.PutBytes(name); err != nil {
		return err
	}

	if err := w.PutUint32(uint32(p.Config)); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(p.State)); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(p.Curr)); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(p.Advertised)); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(p.Supported)); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(p.Peer)); err != nil {
		return err
	}
	if err := w.PutUint32(p.CurrSpeed); err != nil {
		return err
	}
	return w.PutUint32(p.MaxSpeed)
}

// Unpack implements wire.Unpackable.
func (p *Port) Unpack(r *wire.Reader) error {
	var err error
	if p.PortNo, err = r.Uint32(); err != nil {
		return err
	}
	if err = r.Skip(4); err != nil {
		return err
	}

	hw, err := r.Next(6)
	if err != nil {
		return err
	}
	copy(p.HWAddr[:], hw)

	if err = r.Skip(2); err != nil {
		return err
	}

	name, err := r.Next(16)
	if err != nil {
		return err
	}
	p.Name = trimZero(name)

	config, err := r.Uint32()
	if err != nil {
		return err
	}
	p.Config = PortConfig(config)

	state, err := r.Uint32()
	if err != nil {
		return err
	}
	p.State = PortState(state)

	curr, err := r.Uint32()
	if err != nil {
		return err
	}
	p.Curr = PortFeature(curr)

	adv, err := r.Uint32()
	if err != nil {
		return err
	}
	p.Advertised = PortFeature(adv)

	sup, err := r.Uint32()
	if err != nil {
		return err
	}
	p.Supported = PortFeature(sup)

	peer, err := r.Uint32()
	if err != nil {
		return err
	}
	p.Peer = PortFeature(peer)

	if p.CurrSpeed, err = r.Uint32(); err != nil {
		return err
	}
	p.MaxSpeed, err = r.Uint32()
	return err
}

func trimZero(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// Ports is a list of ports, its wire footprint a simple concatenation
// (no self-describing length, since the enclosing message's header
// length bounds it).
type Ports []Port

func (p Ports) Len() int { return len(p) * portLen }

func (p Ports) Pack(w *wire.Writer) error {
	for i := range p {
		if err := p[i].Pack(w); err != nil {
			return err
		}
	}
	return nil
}

func unpackPorts(r *wire.Reader, n int) (Ports, error) {
	if n%portLen != 0 {
		return nil, wire.ErrLengthMismatch
	}

	ports := make(Ports, n/portLen)
	for i := range ports {
		if err := ports[i].Unpack(r); err != nil {
			return nil, err
		}
	}

	return ports, nil
}
