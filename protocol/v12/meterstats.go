package v12

import "github.com/netrack/ofcore/wire"

// MeterNoMeter requests stats/config for every configured meter
// (OFPM_ALL).
const MeterNoMeter uint32 = 0xffffffff

// MeterStatsRequest selects which meter(s) to report; MeterID
// MeterNoMeter requests all of them. MeterConfigRequest shares the
// same wire shape (ofp_meter_multipart_request), so it reuses this
// type under an alias below.
type MeterStatsRequest struct{ MeterID uint32 }

func (m *MeterStatsRequest) Len() int { return 8 }

func (m *MeterStatsRequest) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.MeterID); err != nil {
		return err
	}
	return w.PutZero(4)
}

func (m *MeterStatsRequest) Unpack(r *wire.Reader) error {
	var err error
	if m.MeterID, err = r.Uint32(); err != nil {
		return err
	}
	return r.Skip(4)
}

// MeterConfigRequest carries the same meter_id selector as
// MeterStatsRequest.
type MeterConfigRequest = MeterStatsRequest

// MeterBandStats is one band's packet/byte counters inside MeterStats.
type MeterBandStats struct {
	PacketBandCount uint64
	ByteBandCount   uint64
}

const meterBandStatsLen = 16

func (s *MeterBandStats) pack(w *wire.Writer) error {
	if err := w.PutUint64(s.PacketBandCount); err != nil {
		return err
	}
	return w.PutUint64(s.ByteBandCount)
}

func (s *MeterBandStats) unpack(r *wire.Reader) error {
	var err error
	if s.PacketBandCount, err = r.Uint64(); err != nil {
		return err
	}
	s.ByteBandCount, err = r.Uint64()
	return err
}

// MeterStats reports one meter's aggregate counters and per-band
// counters.
type MeterStats struct {
	MeterID      uint32
	FlowCount    uint32
	PacketInCount uint64
	ByteInCount  uint64
	DurationSec  uint32
	DurationNSec uint32
	BandStats    []MeterBandStats
}

const meterStatsHeaderLen = 40

func (s *MeterStats) Len() int { return meterStatsHeaderLen + len(s.BandStats)*meterBandStatsLen }

func (s *MeterStats) pack(w *wire.Writer) error {
	if err := w.PutUint32(s.MeterID); err != nil {
		return err
	}
	if err := w.PutUint16(uint16(s.Len())); err != nil {
		return err
	}
	if err := w.PutZero(6); err != nil {
		return err
	}
	if err := w.PutUint32(s.FlowCount); err != nil {
		return err
	}
	if err := w.PutUint64(s.PacketInCount); err != nil {
		return err
	}
	if err := w.PutUint64(s.ByteInCount); err != nil {
		return err
	}
	if err := w.PutUint32(s.DurationSec); err != nil {
		return err
	}
	if err := w.PutUint32(s.DurationNSec); err != nil {
		return err
	}
	for i := range s.BandStats {
		if err := s.BandStats[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (s *MeterStats) unpack(r *wire.Reader) error {
	var err error
	if s.MeterID, err = r.Uint32(); err != nil {
		return err
	}
	length, err := r.Uint16()
	if err != nil {
		return err
	}
	if err = r.Skip(6); err != nil {
		return err
	}
	if s.FlowCount, err = r.Uint32(); err != nil {
		return err
	}
	if s.PacketInCount, err = r.Uint64(); err != nil {
		return err
	}
	if s.ByteInCount, err = r.Uint64(); err != nil {
		return err
	}
	if s.DurationSec, err = r.Uint32(); err != nil {
		return err
	}
	if s.DurationNSec, err = r.Uint32(); err != nil {
		return err
	}

	nbands := int(length) - meterStatsHeaderLen
	if nbands < 0 || nbands%meterBandStatsLen != 0 {
		return wire.ErrLengthMismatch
	}
	s.BandStats = make([]MeterBandStats, nbands/meterBandStatsLen)
	for i := range s.BandStats {
		if err := s.BandStats[i].unpack(r); err != nil {
			return err
		}
	}
	return nil
}

// MeterStatsReply lists stats for every meter that was requested.
type MeterStatsReply struct{ Stats []MeterStats }

func (m *MeterStatsReply) Len() int {
	n := 0
	for i := range m.Stats {
		n += m.Stats[i].Len()
	}
	return n
}

func (m *MeterStatsReply) Pack(w *wire.Writer) error {
	for i := range m.Stats {
		if err := m.Stats[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *MeterStatsReply) Unpack(r *wire.Reader) error {
	var stats []MeterStats
	for r.Len() > 0 {
		var s MeterStats
		if err := s.unpack(r); err != nil {
			return err
		}
		stats = append(stats, s)
	}
	m.Stats = stats
	return nil
}

// MeterBand is one band of a meter config: a rate threshold past
// which the band's action (drop, or DSCP remark) applies. It mirrors
// v1.3's own meter-mod band, redeclared here so the multipart codec
// (which lives in v1.2, shared by both versions via type aliasing)
// never needs to import v1.3.
type MeterBand struct {
	Type      MeterBandType
	Rate      uint32
	BurstSize uint32
	PrecLevel uint8 // DSCP remark only
}

// MeterBandType is an OFPMBT_* meter band type.
type MeterBandType uint16

const (
	MeterBandTypeDrop         MeterBandType = 1
	MeterBandTypeDSCPRemark   MeterBandType = 2
	MeterBandTypeExperimenter MeterBandType = 0xffff
)

const meterBandLen = 16

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

// MeterFlags are the OFPMF_* bits of MeterConfig.Flags.
type MeterFlags uint16

const (
	MeterFlagKBPS MeterFlags = 1 << iota
	MeterFlagPKTPS
	MeterFlagBurst
	MeterFlagStats
)

// MeterConfig reports one meter's configured flags and bands.
type MeterConfig struct {
	MeterID uint32
	Flags   MeterFlags
	Bands   []MeterBand
}

const meterConfigHeaderLen = 8

func (m *MeterConfig) Len() int { return meterConfigHeaderLen + len(m.Bands)*meterBandLen }

func (m *MeterConfig) pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(m.Len())); err != nil {
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

func (m *MeterConfig) unpack(r *wire.Reader) error {
	length, err := r.Uint16()
	if err != nil {
		return err
	}
	flags, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Flags = MeterFlags(flags)
	if m.MeterID, err = r.Uint32(); err != nil {
		return err
	}

	nbands := int(length) - meterConfigHeaderLen
	if nbands < 0 || nbands%meterBandLen != 0 {
		return wire.ErrLengthMismatch
	}
	m.Bands = make([]MeterBand, nbands/meterBandLen)
	for i := range m.Bands {
		if err := m.Bands[i].unpack(r); err != nil {
			return err
		}
	}
	return nil
}

// MeterConfigReply lists the configuration of every meter that was
// requested.
type MeterConfigReply struct{ Configs []MeterConfig }

func (m *MeterConfigReply) Len() int {
	n := 0
	for i := range m.Configs {
		n += m.Configs[i].Len()
	}
	return n
}

func (m *MeterConfigReply) Pack(w *wire.Writer) error {
	for i := range m.Configs {
		if err := m.Configs[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *MeterConfigReply) Unpack(r *wire.Reader) error {
	var configs []MeterConfig
	for r.Len() > 0 {
		var c MeterConfig
		if err := c.unpack(r); err != nil {
			return err
		}
		configs = append(configs, c)
	}
	m.Configs = configs
	return nil
}

// MeterFeaturesRequest carries no fields.
type MeterFeaturesRequest struct{}

func (m *MeterFeaturesRequest) Len() int                   { return 0 }
func (m *MeterFeaturesRequest) Pack(w *wire.Writer) error   { return nil }
func (m *MeterFeaturesRequest) Unpack(r *wire.Reader) error { return nil }

// MeterFeatures reports the switch's meter capability limits.
type MeterFeatures struct {
	MaxMeter     uint32
	BandTypes    uint32
	Capabilities MeterFlags
	MaxBands     uint8
	MaxColor     uint8
}

func (m *MeterFeatures) Len() int { return 16 }

func (m *MeterFeatures) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.MaxMeter); err != nil {
		return err
	}
	if err := w.PutUint32(m.BandTypes); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(m.Capabilities)); err != nil {
		return err
	}
	if err := w.PutUint8(m.MaxBands); err != nil {
		return err
	}
	if err := w.PutUint8(m.MaxColor); err != nil {
		return err
	}
	return w.PutZero(2)
}

func (m *MeterFeatures) Unpack(r *wire.Reader) error {
	var err error
	if m.MaxMeter, err = r.Uint32(); err != nil {
		return err
	}
	if m.BandTypes, err = r.Uint32(); err != nil {
		return err
	}
	caps, err := r.Uint32()
	if err != nil {
		return err
	}
	m.Capabilities = MeterFlags(caps)
	if m.MaxBands, err = r.Uint8(); err != nil {
		return err
	}
	if m.MaxColor, err = r.Uint8(); err != nil {
		return err
	}
	return r.Skip(2)
}

// MeterFeaturesReply carries the switch's meter capability limits.
type MeterFeaturesReply struct{ MeterFeatures }
