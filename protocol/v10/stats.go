package v10

import (
	"github.com/netrack/ofcore/protocol/oxm"
	"github.com/netrack/ofcore/wire"
)

// StatsType is an OFPST_* stats message class.
type StatsType uint16

const (
	StatsDesc      StatsType = 0
	StatsFlow      StatsType = 1
	StatsAggregate StatsType = 2
	StatsTable     StatsType = 3
	StatsPort      StatsType = 4
	StatsQueue     StatsType = 5
	StatsVendor    StatsType = 0xffff
)

// StatsFlags are the OFPSF_* bits of a stats header; v1.0 defines none.
type StatsFlags uint16

// StatsBody is a stats sub-message: the request or reply payload
// selected by a StatsType.
type StatsBody interface {
	wire.Packable
	wire.Unpackable
}

type statsMaker func() StatsBody

var statsRequestBodies = map[StatsType]statsMaker{
	StatsDesc:      func() StatsBody { return &DescStats{} },
	StatsFlow:      func() StatsBody { return &FlowStatsRequest{} },
	StatsAggregate: func() StatsBody { return &AggregateStatsRequest{} },
	StatsTable:     func() StatsBody { return &TableStatsRequest{} },
	StatsPort:      func() StatsBody { return &PortStatsRequest{} },
	StatsQueue:     func() StatsBody { return &QueueStatsRequest{} },
}

var statsReplyBodies = map[StatsType]statsMaker{
	StatsDesc:      func() StatsBody { return &DescStats{} },
	StatsFlow:      func() StatsBody { return &FlowStatsReply{} },
	StatsAggregate: func() StatsBody { return &AggregateStatsReply{} },
	StatsTable:     func() StatsBody { return &TableStatsReply{} },
	StatsPort:      func() StatsBody { return &PortStatsReply{} },
	StatsQueue:     func() StatsBody { return &QueueStatsReply{} },
}

// StatsRequest is OFPT_STATS_REQUEST.
type StatsRequest struct {
	Type  StatsType
	Flags StatsFlags
	Body  StatsBody
}

func (m *StatsRequest) Len() int { return 4 + m.Body.Len() }

func (m *StatsRequest) Pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(m.Type)); err != nil {
		return err
	}
	if err := w.PutUint16(uint16(m.Flags)); err != nil {
		return err
	}
	return m.Body.Pack(w)
}

func (m *StatsRequest) Unpack(r *wire.Reader) error {
	typ, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Type = StatsType(typ)

	flags, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Flags = StatsFlags(flags)

	make, ok := statsRequestBodies[m.Type]
	if !ok {
		return wire.ErrBadKind
	}

	m.Body = make()
	return m.Body.Unpack(r)
}

// StatsReply is OFPT_STATS_REPLY.
type StatsReply struct {
	Type  StatsType
	Flags StatsFlags
	Body  StatsBody
}

func (m *StatsReply) Len() int { return 4 + m.Body.Len() }

func (m *StatsReply) Pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(m.Type)); err != nil {
		return err
	}
	if err := w.PutUint16(uint16(m.Flags)); err != nil {
		return err
	}
	return m.Body.Pack(w)
}

func (m *StatsReply) Unpack(r *wire.Reader) error {
	typ, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Type = StatsType(typ)

	flags, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Flags = StatsFlags(flags)

	make, ok := statsReplyBodies[m.Type]
	if !ok {
		return wire.ErrBadKind
	}

	m.Body = make()
	return m.Body.Unpack(r)
}

func putFixed(w *wire.Writer, s string, n int) error {
	buf := make([]byte, n)
	copy(buf, s)
	return w.PutBytes(buf)
}

// DescStats describes the switch manufacturer, hardware, software,
// serial number and datapath.
type DescStats struct {
	MfrDesc   string
	HWDesc    string
	SWDesc    string
	SerialNum string
	DPDesc    string
}

func (m *DescStats) Len() int { return 256*4 + 32 }

func (m *DescStats) Pack(w *wire.Writer) error {
	if err := putFixed(w, m.MfrDesc, 256); err != nil {
		return err
	}
	if err := putFixed(w, m.HWDesc, 256); err != nil {
		return err
	}
	if err := putFixed(w, m.SWDesc, 256); err != nil {
		return err
	}
	if err := putFixed(w, m.SerialNum, 32); err != nil {
		return err
	}
	return putFixed(w, m.DPDesc, 256)
}

func (m *DescStats) Unpack(r *wire.Reader) error {
	b, err := r.Next(256)
	if err != nil {
		return err
	}
	m.MfrDesc = trimZero(b)

	if b, err = r.Next(256); err != nil {
		return err
	}
	m.HWDesc = trimZero(b)

	if b, err = r.Next(256); err != nil {
		return err
	}
	m.SWDesc = trimZero(b)

	if b, err = r.Next(32); err != nil {
		return err
	}
	m.SerialNum = trimZero(b)

	if b, err = r.Next(256); err != nil {
		return err
	}
	m.DPDesc = trimZero(b)

	return nil
}

// FlowStatsRequest selects which installed flow entries to report.
type FlowStatsRequest struct {
	Match   oxm.Match10
	TableID uint8
	OutPort uint16
}

func (m *FlowStatsRequest) Len() int { return m.Match.Len() + 4 }

func (m *FlowStatsRequest) Pack(w *wire.Writer) error {
	if err := m.Match.Pack(w); err != nil {
		return err
	}
	if err := w.PutUint8(m.TableID); err != nil {
		return err
	}
	if err := w.PutZero(1); err != nil {
		return err
	}
	return w.PutUint16(m.OutPort)
}

func (m *FlowStatsRequest) Unpack(r *wire.Reader) error {
	if err := m.Match.Unpack(r); err != nil {
		return err
	}
	var err error
	if m.TableID, err = r.Uint8(); err != nil {
		return err
	}
	if err = r.Skip(1); err != nil {
		return err
	}
	m.OutPort, err = r.Uint16()
	return err
}

// FlowStats is one installed flow entry.
type FlowStats struct {
	Match        oxm.Match10
	TableID      uint8
	DurationSec  uint32
	DurationNsec uint32
	Priority     uint16
	IdleTimeout  uint16
	HardTimeout  uint16
	Cookie       uint64
	PacketCount  uint64
	ByteCount    uint64
	Actions      List

	actions Registry
}

func (s *FlowStats) Len() int { return 4 + s.Match.Len() + 44 + s.Actions.Len() }

func (s *FlowStats) pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(s.Len())); err != nil {
		return err
	}
	if err := w.PutUint8(s.TableID); err != nil {
		return err
	}
	if err := w.PutZero(1); err != nil {
		return err
	}
	if err := s.Match.Pack(w); err != nil {
		return err
	}
	if err := w.PutUint32(s.DurationSec); err != nil {
		return err
	}
	if err := w.PutUint32(s.DurationNsec); err != nil {
		return err
	}
	if err := w.PutUint16(s.Priority); err != nil {
		return err
	}
	if err := w.PutUint16(s.IdleTimeout); err != nil {
		return err
	}
	if err := w.PutUint16(s.HardTimeout); err != nil {
		return err
	}
	if err := w.PutZero(6); err != nil {
		return err
	}
	if err := w.PutUint64(s.Cookie); err != nil {
		return err
	}
	if err := w.PutUint64(s.PacketCount); err != nil {
		return err
	}
	if err := w.PutUint64(s.ByteCount); err != nil {
		return err
	}
	return s.Actions.Pack(w)
}

func (s *FlowStats) unpack(r *wire.Reader, reg Registry) error {
	length, err := r.Uint16()
	if err != nil {
		return err
	}
	if s.TableID, err = r.Uint8(); err != nil {
		return err
	}
	if err = r.Skip(1); err != nil {
		return err
	}
	if err = s.Match.Unpack(r); err != nil {
		return err
	}
	if s.DurationSec, err = r.Uint32(); err != nil {
		return err
	}
	if s.DurationNsec, err = r.Uint32(); err != nil {
		return err
	}
	if s.Priority, err = r.Uint16(); err != nil {
		return err
	}
	if s.IdleTimeout, err = r.Uint16(); err != nil {
		return err
	}
	if s.HardTimeout, err = r.Uint16(); err != nil {
		return err
	}
	if err = r.Skip(6); err != nil {
		return err
	}
	if s.Cookie, err = r.Uint64(); err != nil {
		return err
	}
	if s.PacketCount, err = r.Uint64(); err != nil {
		return err
	}
	if s.ByteCount, err = r.Uint64(); err != nil {
		return err
	}

	fixed := 4 + s.Match.Len() + 44
	s.Actions, err = UnpackList(r, reg, int(length)-fixed)
	return err
}

// FlowStatsReply is the array of FlowStats matching a
// FlowStatsRequest.
type FlowStatsReply struct {
	Stats []FlowStats

	actions Registry
}

func (m *FlowStatsReply) Len() int {
	var n int
	for i := range m.Stats {
		n += m.Stats[i].Len()
	}
	return n
}

func (m *FlowStatsReply) Pack(w *wire.Writer) error {
	for i := range m.Stats {
		if err := m.Stats[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *FlowStatsReply) Unpack(r *wire.Reader) error {
	reg := m.actions
	if reg == nil {
		reg = DefaultRegistry
	}

	m.Stats = nil
	for r.Len() > 0 {
		var s FlowStats
		if err := s.unpack(r, reg); err != nil {
			return err
		}
		m.Stats = append(m.Stats, s)
	}
	return nil
}

// AggregateStatsRequest selects which flow entries to aggregate.
type AggregateStatsRequest struct {
	Match   oxm.Match10
	TableID uint8
	OutPort uint16
}

func (m *AggregateStatsRequest) Len() int { return m.Match.Len() + 4 }

func (m *AggregateStatsRequest) Pack(w *wire.Writer) error {
	if err := m.Match.Pack(w); err != nil {
		return err
	}
	if err := w.PutUint8(m.TableID); err != nil {
		return err
	}
	if err := w.PutZero(1); err != nil {
		return err
	}
	return w.PutUint16(m.OutPort)
}

func (m *AggregateStatsRequest) Unpack(r *wire.Reader) error {
	if err := m.Match.Unpack(r); err != nil {
		return err
	}
	var err error
	if m.TableID, err = r.Uint8(); err != nil {
		return err
	}
	if err = r.Skip(1); err != nil {
		return err
	}
	m.OutPort, err = r.Uint16()
	return err
}

// AggregateStatsReply summarizes the matched flow entries.
type AggregateStatsReply struct {
	PacketCount uint64
	ByteCount   uint64
	FlowCount   uint32
}

func (m *AggregateStatsReply) Len() int { return 24 }

func (m *AggregateStatsReply) Pack(w *wire.Writer) error {
	if err := w.PutUint64(m.PacketCount); err != nil {
		return err
	}
	if err := w.PutUint64(m.ByteCount); err != nil {
		return err
	}
	if err := w.PutUint32(m.FlowCount); err != nil {
		return err
	}
	return w.PutZero(4)
}

func (m *AggregateStatsReply) Unpack(r *wire.Reader) error {
	var err error
	if m.PacketCount, err = r.Uint64(); err != nil {
		return err
	}
	if m.ByteCount, err = r.Uint64(); err != nil {
		return err
	}
	if m.FlowCount, err = r.Uint32(); err != nil {
		return err
	}
	return r.Skip(4)
}

type TableStatsRequest struct{}

func (m *TableStatsRequest) Len() int                   { return 0 }
func (m *TableStatsRequest) Pack(w *wire.Writer) error   { return nil }
func (m *TableStatsRequest) Unpack(r *wire.Reader) error { return nil }

// TableStats reports one flow table's occupancy and wildcard support.
type TableStats struct {
	TableID      uint8
	Name         string
	Wildcards    oxm.Wildcards
	MaxEntries   uint32
	ActiveCount  uint32
	LookupCount  uint64
	MatchedCount uint64
}

const tableStatsLen = 64

func (s *TableStats) pack(w *wire.Writer) error {
	if err := w.PutUint8(s.TableID); err != nil {
		return err
	}
	if err := w.PutZero(3); err != nil {
		return err
	}

	name := make([]byte, 32)
	copy(name, s.Name)
	if err := w.PutBytes(name); err != nil {
		return err
	}

	if err := w.PutUint32(uint32(s.Wildcards)); err != nil {
		return err
	}
	if err := w.PutUint32(s.MaxEntries); err != nil {
		return err
	}
	if err := w.PutUint32(s.ActiveCount); err != nil {
		return err
	}
	if err := w.PutUint64(s.LookupCount); err != nil {
		return err
	}
	return w.PutUint64(s.MatchedCount)
}

func (s *TableStats) unpack(r *wire.Reader) error {
	var err error
	if s.TableID, err = r.Uint8(); err != nil {
		return err
	}
	if err = r.Skip(3); err != nil {
		return err
	}

	name, err := r.Next(32)
	if err != nil {
		return err
	}
	s.Name = trimZero(name)

	wildcards, err := r.Uint32()
	if err != nil {
		return err
	}
	s.Wildcards = oxm.Wildcards(wildcards)

	if s.MaxEntries, err = r.Uint32(); err != nil {
		return err
	}
	if s.ActiveCount, err = r.Uint32(); err != nil {
		return err
	}
	if s.LookupCount, err = r.Uint64(); err != nil {
		return err
	}
	s.MatchedCount, err = r.Uint64()
	return err
}

type TableStatsReply struct{ Stats []TableStats }

func (m *TableStatsReply) Len() int { return len(m.Stats) * tableStatsLen }

func (m *TableStatsReply) Pack(w *wire.Writer) error {
	for i := range m.Stats {
		if err := m.Stats[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *TableStatsReply) Unpack(r *wire.Reader) error {
	if r.Len()%tableStatsLen != 0 {
		return wire.ErrLengthMismatch
	}
	m.Stats = make([]TableStats, r.Len()/tableStatsLen)
	for i := range m.Stats {
		if err := m.Stats[i].unpack(r); err != nil {
			return err
		}
	}
	return nil
}

// PortStatsRequest selects which port to report; OFPP_NONE requests
// all ports.
type PortStatsRequest struct{ Port uint16 }

func (m *PortStatsRequest) Len() int { return 8 }

func (m *PortStatsRequest) Pack(w *wire.Writer) error {
	if err := w.PutUint16(m.Port); err != nil {
		return err
	}
	return w.PutZero(6)
}

func (m *PortStatsRequest) Unpack(r *wire.Reader) error {
	var err error
	if m.Port, err = r.Uint16(); err != nil {
		return err
	}
	return r.Skip(6)
}

// PortStats reports one port's packet/byte/error counters.
type PortStats struct {
	Port       uint16
	RxPackets  uint64
	TxPackets  uint64
	RxBytes    uint64
	TxBytes    uint64
	RxDropped  uint64
	TxDropped  uint64
	RxErrors   uint64
	TxErrors   uint64
	RxFrameErr uint64
	RxOverErr  uint64
	RxCRCErr   uint64
	Collisions uint64
}

const portStatsLen = 104

func (s *PortStats) pack(w *wire.Writer) error {
	if err := w.PutUint16(s.Port); err != nil {
		return err
	}
	if err := w.PutZero(6); err != nil {
		return err
	}
	for _, v := range []uint64{
		s.RxPackets, s.TxPackets, s.RxBytes, s.TxBytes,
		s.RxDropped, s.TxDropped, s.RxErrors, s.TxErrors,
		s.RxFrameErr, s.RxOverErr, s.RxCRCErr, s.Collisions,
	} {
		if err := w.PutUint64(v); err != nil {
			return err
		}
	}
	return nil
}

func (s *PortStats) unpack(r *wire.Reader) error {
	var err error
	if s.Port, err = r.Uint16(); err != nil {
		return err
	}
	if err = r.Skip(6); err != nil {
		return err
	}

	fields := []*uint64{
		&s.RxPackets, &s.TxPackets, &s.RxBytes, &s.TxBytes,
		&s.RxDropped, &s.TxDropped, &s.RxErrors, &s.TxErrors,
		&s.RxFrameErr, &s.RxOverErr, &s.RxCRCErr, &s.Collisions,
	}
	for _, f := range fields {
		if *f, err = r.Uint64(); err != nil {
			return err
		}
	}
	return nil
}

type PortStatsReply struct{ Stats []PortStats }

func (m *PortStatsReply) Len() int { return len(m.Stats) * portStatsLen }

func (m *PortStatsReply) Pack(w *wire.Writer) error {
	for i := range m.Stats {
		if err := m.Stats[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *PortStatsReply) Unpack(r *wire.Reader) error {
	if r.Len()%portStatsLen != 0 {
		return wire.ErrLengthMismatch
	}
	m.Stats = make([]PortStats, r.Len()/portStatsLen)
	for i := range m.Stats {
		if err := m.Stats[i].unpack(r); err != nil {
			return err
		}
	}
	return nil
}

// QueueStatsRequest selects which port/queue pair(s) to report.
type QueueStatsRequest struct {
	Port    uint16
	QueueID uint32
}

func (m *QueueStatsRequest) Len() int { return 8 }

func (m *QueueStatsRequest) Pack(w *wire.Writer) error {
	if err := w.PutUint16(m.Port); err != nil {
		return err
	}
	if err := w.PutZero(2); err != nil {
		return err
	}
	return w.PutUint32(m.QueueID)
}

func (m *QueueStatsRequest) Unpack(r *wire.Reader) error {
	var err error
	if m.Port, err = r.Uint16(); err != nil {
		return err
	}
	if err = r.Skip(2); err != nil {
		return err
	}
	m.QueueID, err = r.Uint32()
	return err
}

// QueueStats reports one queue's transmit counters.
type QueueStats struct {
	Port      uint16
	QueueID   uint32
	TxBytes   uint64
	TxPackets uint64
	TxErrors  uint64
}

const queueStatsLen = 32

func (s *QueueStats) pack(w *wire.Writer) error {
	if err := w.PutUint16(s.Port); err != nil {
		return err
	}
	if err := w.PutZero(2); err != nil {
		return err
	}
	if err := w.PutUint32(s.QueueID); err != nil {
		return err
	}
	if err := w.PutUint64(s.TxBytes); err != nil {
		return err
	}
	if err := w.PutUint64(s.TxPackets); err != nil {
		return err
	}
	return w.PutUint64(s.TxErrors)
}

func (s *QueueStats) unpack(r *wire.Reader) error {
	var err error
	if s.Port, err = r.Uint16(); err != nil {
		return err
	}
	if err = r.Skip(2); err != nil {
		return err
	}
	if s.QueueID, err = r.Uint32(); err != nil {
		return err
	}
	if s.TxBytes, err = r.Uint64(); err != nil {
		return err
	}
	if s.TxPackets, err = r.Uint64(); err != nil {
		return err
	}
	s.TxErrors, err = r.Uint64()
	return err
}

type QueueStatsReply struct{ Stats []QueueStats }

func (m *QueueStatsReply) Len() int { return len(m.Stats) * queueStatsLen }

func (m *QueueStatsReply) Pack(w *wire.Writer) error {
	for i := range m.Stats {
		if err := m.Stats[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *QueueStatsReply) Unpack(r *wire.Reader) error {
	if r.Len()%queueStatsLen != 0 {
		return wire.ErrLengthMismatch
	}
	m.Stats = make([]QueueStats, r.Len()/queueStatsLen)
	for i := range m.Stats {
		if err := m.Stats[i].unpack(r); err != nil {
			return err
		}
	}
	return nil
}
