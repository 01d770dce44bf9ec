package v13

import "github.com/netrack/ofcore/wire"

// MeterModCommand is an OFPMC_* meter modification command.
type MeterModCommand uint16

const (
	MeterModCommandAdd MeterModCommand = iota
	MeterModCommandModify
	MeterModCommandDelete
)

// MeterFlags are the OFPMF_* bits of a meter's Flags.
type MeterFlags uint16

const (
	MeterFlagKBPS MeterFlags = 1 << iota
	MeterFlagPKTPS
	MeterFlagBurst
	MeterFlagStats
)

// MeterBandType is an OFPMBT_* meter band type.
type MeterBandType uint16

const (
	MeterBandTypeDrop    MeterBandType = 1
	MeterBandTypeDSCPRemark MeterBandType = 2
	MeterBandTypeExperimenter MeterBandType = 0xffff
)

const meterBandLen = 16

// MeterBand is one band of a meter: a rate threshold past which the
// band's action (drop, or DSCP remark) applies.
type MeterBand struct {
	Type      MeterBandType
	Rate      uint32
	BurstSize uint32
	PrecLevel uint8 // DSCP remark only
}

func (b *MeterBand) pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(b.Type)); err != nil {
		return err
	}
	if err := w.PutUint16(meterBandLen); err != nil {
		return err
	}
	if err := w.PutUint32(b.Rate); err != nil {
		return err
	}
	if err := w.PutUint32(b.BurstSize); err != nil {
		return err
	}
	if b.Type == MeterBandTypeDSCPRemark {
		if err := w.PutUint8(b.PrecLevel); err != nil {
			return err
		}
		return w.PutZero(3)
	}
	return w.PutZero(4)
}

func (b *MeterBand) unpack(r *wire.Reader) error {
	typ, err := r.Uint16()
	if err != nil {
		return err
	}
	b.Type = MeterBandType(typ)

	if _, err = r.Uint16(); err != nil {
		return err
	}
	if b.Rate, err = r.Uint32(); err != nil {
		return err
	}
	if b.BurstSize, err = r.Uint32(); err != nil {
		return err
	}

	if b.Type == MeterBandTypeDSCPRemark {
		if b.PrecLevel, err = r.Uint8(); err != nil {
			return err
		}
		return r.Skip(3)
	}
	return r.Skip(4)
}

// MeterMod creates, modifies or deletes a meter and its bands.
type MeterMod struct {
	Command MeterModCommand
	Flags   MeterFlags
	MeterID uint32
	Bands   []MeterBand
}

func (m *MeterMod) Len() int { return 8 + len(m.Bands)*meterBandLen }

func (m *MeterMod) Pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(m.Command)); err != nil {
		return err
	}
	if err := w.PutUint16(uint16(m.Flags)); err != nil {
		return err
	}
	if err := w.PutUint32(m.MeterID); err != nil {
		return err
	}
	for i := range m.Bands {
		if err := m.Bands[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *MeterMod) Unpack(r *wire.Reader) error {
	command, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Command = MeterModCommand(command)

	flags, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Flags = MeterFlags(flags)

	if m.MeterID, err = r.Uint32(); err != nil {
		return err
	}

	if r.Len()%meterBandLen != 0 {
		return wire.ErrLengthMismatch
	}

	m.Bands = make([]MeterBand, r.Len()/meterBandLen)
	for i := range m.Bands {
		if err := m.Bands[i].unpack(r); err != nil {
			return err
		}
	}
	return nil
}
