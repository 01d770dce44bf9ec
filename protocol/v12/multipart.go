package v12

import (
	"github.com/netrack/ofcore/protocol/action"
	"github.com/netrack/ofcore/protocol/group"
	"github.com/netrack/ofcore/protocol/instruction"
	"github.com/netrack/ofcore/protocol/oxm"
	"github.com/netrack/ofcore/wire"
)

// MultipartType is an OFPMP_* multipart message class.
type MultipartType uint16

const (
	MultipartDesc         MultipartType = 0
	MultipartFlow         MultipartType = 1
	MultipartAggregate    MultipartType = 2
	MultipartTable        MultipartType = 3
	MultipartPortStats    MultipartType = 4
	MultipartQueue        MultipartType = 5
	MultipartGroup        MultipartType = 6
	MultipartGroupDesc    MultipartType = 7
	MultipartGroupFeature  MultipartType = 8
	MultipartMeter         MultipartType = 9
	MultipartMeterConfig   MultipartType = 10
	MultipartMeterFeatures MultipartType = 11
	MultipartTableFeatures MultipartType = 12
	MultipartPortDesc      MultipartType = 13
	MultipartExperimenter  MultipartType = 0xffff
)

// MultipartFlags are the OFPMPF_* bits of a multipart header.
type MultipartFlags uint16

const MultipartFlagMore MultipartFlags = 1

// MultipartBody is a multipart sub-message: the request or reply
// payload selected by a MultipartType.
type MultipartBody interface {
	wire.Packable
	wire.Unpackable
}

// multipartMaker constructs the zero-valued body for a MultipartType,
// parameterized by the action registry nested bodies need to decode
// action lists.
type multipartMaker func(actions action.Registry) MultipartBody

var requestBodies = map[MultipartType]multipartMaker{
	MultipartDesc:         func(action.Registry) MultipartBody { return &DescStats{} },
	MultipartFlow:         func(action.Registry) MultipartBody { return &FlowStatsRequest{} },
	MultipartAggregate:    func(action.Registry) MultipartBody { return &AggregateStatsRequest{} },
	MultipartTable:        func(action.Registry) MultipartBody { return &TableStatsRequest{} },
	MultipartPortStats:    func(action.Registry) MultipartBody { return &PortStatsRequest{} },
	MultipartQueue:        func(action.Registry) MultipartBody { return &QueueStatsRequest{} },
	MultipartGroup:        func(action.Registry) MultipartBody { return &GroupStatsRequest{} },
	MultipartGroupDesc:    func(action.Registry) MultipartBody { return &GroupDescStatsRequest{} },
	MultipartGroupFeature: func(action.Registry) MultipartBody { return &GroupFeaturesRequest{} },
	MultipartMeter:         func(action.Registry) MultipartBody { return &MeterStatsRequest{} },
	MultipartMeterConfig:   func(action.Registry) MultipartBody { return &MeterConfigRequest{} },
	MultipartMeterFeatures: func(action.Registry) MultipartBody { return &MeterFeaturesRequest{} },
	MultipartTableFeatures: func(action.Registry) MultipartBody { return &TableFeaturesRequest{} },
	MultipartPortDesc:      func(action.Registry) MultipartBody { return &PortDescStatsRequest{} },
}

var replyBodies = map[MultipartType]multipartMaker{
	MultipartDesc:         func(action.Registry) MultipartBody { return &DescStats{} },
	MultipartFlow:         func(reg action.Registry) MultipartBody { return &FlowStatsReply{actions: reg} },
	MultipartAggregate:    func(action.Registry) MultipartBody { return &AggregateStatsReply{} },
	MultipartTable:        func(action.Registry) MultipartBody { return &TableStatsReply{} },
	MultipartPortStats:    func(action.Registry) MultipartBody { return &PortStatsReply{} },
	MultipartQueue:        func(action.Registry) MultipartBody { return &QueueStatsReply{} },
	MultipartGroup:        func(action.Registry) MultipartBody { return &GroupStatsReply{} },
	MultipartGroupDesc:    func(reg action.Registry) MultipartBody { return &GroupDescStatsReply{actions: reg} },
	MultipartGroupFeature: func(action.Registry) MultipartBody { return &GroupFeaturesReply{} },
	MultipartMeter:         func(action.Registry) MultipartBody { return &MeterStatsReply{} },
	MultipartMeterConfig:   func(action.Registry) MultipartBody { return &MeterConfigReply{} },
	MultipartMeterFeatures: func(action.Registry) MultipartBody { return &MeterFeaturesReply{} },
	MultipartTableFeatures: func(action.Registry) MultipartBody { return &TableFeaturesReply{} },
	MultipartPortDesc:      func(action.Registry) MultipartBody { return &PortDescStatsReply{} },
}

// MultipartRequest is OFPT_MULTIPART_REQUEST: a solicitation for one of
// the Desc/Flow/Aggregate/... statistics families.
type MultipartRequest struct {
	Type  MultipartType
	Flags MultipartFlags
	Body  MultipartBody

	actions action.Registry
}

func (m *MultipartRequest) Len() int { return 8 + m.Body.Len() }

func (m *MultipartRequest) Pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(m.Type)); err != nil {
		return err
	}
	if err := w.PutUint16(uint16(m.Flags)); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
		return err
	}
	return m.Body.Pack(w)
}

func (m *MultipartRequest) Unpack(r *wire.Reader) error {
	typ, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Type = MultipartType(typ)

	flags, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Flags = MultipartFlags(flags)

	if err = r.Skip(4); err != nil {
		return err
	}

	make, ok := requestBodies[m.Type]
	if !ok {
		return wire.ErrBadKind
	}

	reg := m.actions
	if reg == nil {
		reg = action.DefaultRegistry
	}

	m.Body = make(reg)
	return m.Body.Unpack(r)
}

// MultipartReply is OFPT_MULTIPART_REPLY. MultipartFlagMore signals
// there are further reply messages to come for this request.
type MultipartReply struct {
	Type  MultipartType
	Flags MultipartFlags
	Body  MultipartBody

	actions action.Registry
}

func (m *MultipartReply) Len() int { return 8 + m.Body.Len() }

func (m *MultipartReply) Pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(m.Type)); err != nil {
		return err
	}
	if err := w.PutUint16(uint16(m.Flags)); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
		return err
	}
	return m.Body.Pack(w)
}

func (m *MultipartReply) Unpack(r *wire.Reader) error {
	typ, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Type = MultipartType(typ)

	flags, err := r.Uint16()
	if err != nil {
		return err
	}
	m.Flags = MultipartFlags(flags)

	if err = r.Skip(4); err != nil {
		return err
	}

	make, ok := replyBodies[m.Type]
	if !ok {
		return wire.ErrBadKind
	}

	reg := m.actions
	if reg == nil {
		reg = action.DefaultRegistry
	}

	m.Body = make(reg)
	return m.Body.Unpack(r)
}

func fixedString(b []byte) string { return trimZero(b) }

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
	m.MfrDesc = fixedString(b)

	if b, err = r.Next(256); err != nil {
		return err
	}
	m.HWDesc = fixedString(b)

	if b, err = r.Next(256); err != nil {
		return err
	}
	m.SWDesc = fixedString(b)

	if b, err = r.Next(32); err != nil {
		return err
	}
	m.SerialNum = fixedString(b)

	if b, err = r.Next(256); err != nil {
		return err
	}
	m.DPDesc = fixedString(b)

	return nil
}

func packFlowSelector(w *wire.Writer, tableID uint8, outPort, outGroup uint32, cookie, cookieMask uint64, match *oxm.Match) error {
	if err := w.PutUint8(tableID); err != nil {
		return err
	}
	if err := w.PutZero(3); err != nil {
		return err
	}
	if err := w.PutUint32(outPort); err != nil {
		return err
	}
	if err := w.PutUint32(outGroup); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
		return err
	}
	if err := w.PutUint64(cookie); err != nil {
		return err
	}
	if err := w.PutUint64(cookieMask); err != nil {
		return err
	}
	return match.Pack(w)
}

func unpackFlowSelector(r *wire.Reader) (tableID uint8, outPort, outGroup uint32, cookie, cookieMask uint64, match oxm.Match, err error) {
	if tableID, err = r.Uint8(); err != nil {
		return
	}
	if err = r.Skip(3); err != nil {
		return
	}
	if outPort, err = r.Uint32(); err != nil {
		return
	}
	if outGroup, err = r.Uint32(); err != nil {
		return
	}
	if err = r.Skip(4); err != nil {
		return
	}
	if cookie, err = r.Uint64(); err != nil {
		return
	}
	if cookieMask, err = r.Uint64(); err != nil {
		return
	}
	err = match.Unpack(r)
	return
}

// FlowStatsRequest selects which installed flow entries to report.
type FlowStatsRequest struct {
	TableID    uint8
	OutPort    uint32
	OutGroup   uint32
	Cookie     uint64
	CookieMask uint64
	Match      oxm.Match
}

func (m *FlowStatsRequest) Len() int { return 32 + m.Match.Len() }

func (m *FlowStatsRequest) Pack(w *wire.Writer) error {
	return packFlowSelector(w, m.TableID, m.OutPort, m.OutGroup, m.Cookie, m.CookieMask, &m.Match)
}

func (m *FlowStatsRequest) Unpack(r *wire.Reader) (err error) {
	m.TableID, m.OutPort, m.OutGroup, m.Cookie, m.CookieMask, m.Match, err = unpackFlowSelector(r)
	return
}

// FlowStats is one installed flow entry, as reported by MultipartFlow.
type FlowStats struct {
	TableID      uint8
	DurationSec  uint32
	DurationNsec uint32
	Priority     uint16
	IdleTimeout  uint16
	HardTimeout  uint16
	Flags        FlowModFlags
	Cookie       uint64
	PacketCount  uint64
	ByteCount    uint64
	Match        oxm.Match
	Instructions instruction.List
}

func (s *FlowStats) Len() int { return 48 + s.Match.Len() + s.Instructions.Len() }

func (s *FlowStats) Pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(s.Len())); err != nil {
		return err
	}
	if err := w.PutUint8(s.TableID); err != nil {
		return err
	}
	if err := w.PutZero(1); err != nil {
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
	if err := w.PutUint16(uint16(s.Flags)); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
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
	if err := s.Match.Pack(w); err != nil {
		return err
	}
	return s.Instructions.Pack(w)
}

func (s *FlowStats) unpack(r *wire.Reader, reg instruction.Registry) error {
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

	flags, err := r.Uint16()
	if err != nil {
		return err
	}
	s.Flags = FlowModFlags(flags)

	if err = r.Skip(4); err != nil {
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

	before := r.Len()
	if err = s.Match.Unpack(r); err != nil {
		return err
	}
	matchLen := before - r.Len()

	remaining := int(length) - 48 - matchLen
	s.Instructions, err = instruction.UnpackList(r, reg, remaining)
	return err
}

// FlowStatsReply is the array of FlowStats matching a FlowStatsRequest.
type FlowStatsReply struct {
	Stats []FlowStats

	actions action.Registry
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
		if err := m.Stats[i].Pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *FlowStatsReply) Unpack(r *wire.Reader) error {
	reg := m.actions
	if reg == nil {
		reg = action.DefaultRegistry
	}
	instReg := instruction.DefaultRegistry(reg)

	m.Stats = nil
	for r.Len() > 0 {
		var s FlowStats
		if err := s.unpack(r, instReg); err != nil {
			return err
		}
		m.Stats = append(m.Stats, s)
	}
	return nil
}

// AggregateStatsRequest selects which flow entries to aggregate.
type AggregateStatsRequest struct {
	TableID    uint8
	OutPort    uint32
	OutGroup   uint32
	Cookie     uint64
	CookieMask uint64
	Match      oxm.Match
}

func (m *AggregateStatsRequest) Len() int { return 32 + m.Match.Len() }

func (m *AggregateStatsRequest) Pack(w *wire.Writer) error {
	return packFlowSelector(w, m.TableID, m.OutPort, m.OutGroup, m.Cookie, m.CookieMask, &m.Match)
}

func (m *AggregateStatsRequest) Unpack(r *wire.Reader) (err error) {
	m.TableID, m.OutPort, m.OutGroup, m.Cookie, m.CookieMask, m.Match, err = unpackFlowSelector(r)
	return
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

// TableStatsRequest carries no fields; the reply lists every table.
type TableStatsRequest struct{}

func (m *TableStatsRequest) Len() int                   { return 0 }
func (m *TableStatsRequest) Pack(w *wire.Writer) error   { return nil }
func (m *TableStatsRequest) Unpack(r *wire.Reader) error { return nil }

// TableStats reports one flow table's occupancy.
type TableStats struct {
	TableID      uint8
	ActiveCount  uint32
	LookupCount  uint64
	MatchedCount uint64
}

const tableStatsLen = 24

func (s *TableStats) pack(w *wire.Writer) error {
	if err := w.PutUint8(s.TableID); err != nil {
		return err
	}
	if err := w.PutZero(3); err != nil {
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
	if s.ActiveCount, err = r.Uint32(); err != nil {
		return err
	}
	if s.LookupCount, err = r.Uint64(); err != nil {
		return err
	}
	s.MatchedCount, err = r.Uint64()
	return err
}

// TableStatsReply lists every flow table's stats.
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

// PortStatsRequest selects which port(s) to report; Port OFPP_ANY
// requests all ports.
type PortStatsRequest struct{ Port uint32 }

func (m *PortStatsRequest) Len() int { return 8 }

func (m *PortStatsRequest) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.Port); err != nil {
		return err
	}
	return w.PutZero(4)
}

func (m *PortStatsRequest) Unpack(r *wire.Reader) error {
	var err error
	if m.Port, err = r.Uint32(); err != nil {
		return err
	}
	return r.Skip(4)
}

// PortStats reports one port's packet/byte/error counters.
type PortStats struct {
	Port         uint32
	RxPackets    uint64
	TxPackets    uint64
	RxBytes      uint64
	TxBytes      uint64
	RxDropped    uint64
	TxDropped    uint64
	RxErrors     uint64
	TxErrors     uint64
	RxFrameErr   uint64
	RxOverErr    uint64
	RxCRCErr     uint64
	Collisions   uint64
}

const portStatsLen = 104

func (s *PortStats) pack(w *wire.Writer) error {
	if err := w.PutUint32(s.Port); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
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
	if s.Port, err = r.Uint32(); err != nil {
		return err
	}
	if err = r.Skip(4); err != nil {
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

// PortStatsReply lists stats for every port that was requested.
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
	Port    uint32
	QueueID uint32
}

func (m *QueueStatsRequest) Len() int { return 8 }

func (m *QueueStatsRequest) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.Port); err != nil {
		return err
	}
	return w.PutUint32(m.QueueID)
}

func (m *QueueStatsRequest) Unpack(r *wire.Reader) error {
	var err error
	if m.Port, err = r.Uint32(); err != nil {
		return err
	}
	m.QueueID, err = r.Uint32()
	return err
}

// QueueStats reports one queue's transmit counters.
type QueueStats struct {
	Port      uint32
	QueueID   uint32
	TxBytes   uint64
	TxPackets uint64
	TxErrors  uint64
}

const queueStatsLen = 32

func (s *QueueStats) pack(w *wire.Writer) error {
	if err := w.PutUint32(s.Port); err != nil {
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
	if s.Port, err = r.Uint32(); err != nil {
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

// QueueStatsReply lists stats for every queue that was requested.
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

// GroupStatsRequest selects which group(s) to report.
type GroupStatsRequest struct{ GroupID uint32 }

func (m *GroupStatsRequest) Len() int { return 8 }

func (m *GroupStatsRequest) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.GroupID); err != nil {
		return err
	}
	return w.PutZero(4)
}

func (m *GroupStatsRequest) Unpack(r *wire.Reader) error {
	var err error
	if m.GroupID, err = r.Uint32(); err != nil {
		return err
	}
	return r.Skip(4)
}

// BucketCounter is one bucket's packet/byte counters within GroupStats.
type BucketCounter struct {
	PacketCount uint64
	ByteCount   uint64
}

// GroupStats reports one group's counters and its per-bucket
// breakdown.
type GroupStats struct {
	GroupID     uint32
	RefCount    uint32
	PacketCount uint64
	ByteCount   uint64
	Buckets     []BucketCounter
}

func (s *GroupStats) Len() int { return 32 + len(s.Buckets)*16 }

func (s *GroupStats) pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(s.Len())); err != nil {
		return err
	}
	if err := w.PutZero(2); err != nil {
		return err
	}
	if err := w.PutUint32(s.GroupID); err != nil {
		return err
	}
	if err := w.PutUint32(s.RefCount); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
		return err
	}
	if err := w.PutUint64(s.PacketCount); err != nil {
		return err
	}
	if err := w.PutUint64(s.ByteCount); err != nil {
		return err
	}
	for _, b := range s.Buckets {
		if err := w.PutUint64(b.PacketCount); err != nil {
			return err
		}
		if err := w.PutUint64(b.ByteCount); err != nil {
			return err
		}
	}
	return nil
}

func (s *GroupStats) unpack(r *wire.Reader) error {
	length, err := r.Uint16()
	if err != nil {
		return err
	}
	if err = r.Skip(2); err != nil {
		return err
	}
	if s.GroupID, err = r.Uint32(); err != nil {
		return err
	}
	if s.RefCount, err = r.Uint32(); err != nil {
		return err
	}
	if err = r.Skip(4); err != nil {
		return err
	}
	if s.PacketCount, err = r.Uint64(); err != nil {
		return err
	}
	if s.ByteCount, err = r.Uint64(); err != nil {
		return err
	}

	remaining := int(length) - 32
	if remaining < 0 || remaining%16 != 0 {
		return wire.ErrLengthMismatch
	}

	s.Buckets = make([]BucketCounter, remaining/16)
	for i := range s.Buckets {
		if s.Buckets[i].PacketCount, err = r.Uint64(); err != nil {
			return err
		}
		if s.Buckets[i].ByteCount, err = r.Uint64(); err != nil {
			return err
		}
	}
	return nil
}

// GroupStatsReply lists stats for every group that was requested.
type GroupStatsReply struct{ Stats []GroupStats }

func (m *GroupStatsReply) Len() int {
	var n int
	for i := range m.Stats {
		n += m.Stats[i].Len()
	}
	return n
}

func (m *GroupStatsReply) Pack(w *wire.Writer) error {
	for i := range m.Stats {
		if err := m.Stats[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *GroupStatsReply) Unpack(r *wire.Reader) error {
	m.Stats = nil
	for r.Len() > 0 {
		var s GroupStats
		if err := s.unpack(r); err != nil {
			return err
		}
		m.Stats = append(m.Stats, s)
	}
	return nil
}

// GroupDescStatsRequest carries no fields; the reply lists every
// configured group.
type GroupDescStatsRequest struct{}

func (m *GroupDescStatsRequest) Len() int                   { return 0 }
func (m *GroupDescStatsRequest) Pack(w *wire.Writer) error   { return nil }
func (m *GroupDescStatsRequest) Unpack(r *wire.Reader) error { return nil }

// GroupDescStats describes one configured group's type and buckets.
type GroupDescStats struct {
	Type    GroupType
	GroupID uint32
	Buckets group.List
}

func (s *GroupDescStats) Len() int { return 8 + s.Buckets.Len() }

func (s *GroupDescStats) pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(s.Len())); err != nil {
		return err
	}
	if err := w.PutUint8(uint8(s.Type)); err != nil {
		return err
	}
	if err := w.PutZero(1); err != nil {
		return err
	}
	if err := w.PutUint32(s.GroupID); err != nil {
		return err
	}
	return s.Buckets.Pack(w)
}

func (s *GroupDescStats) unpack(r *wire.Reader, reg action.Registry) error {
	length, err := r.Uint16()
	if err != nil {
		return err
	}

	typ, err := r.Uint8()
	if err != nil {
		return err
	}
	s.Type = GroupType(typ)

	if err = r.Skip(1); err != nil {
		return err
	}
	if s.GroupID, err = r.Uint32(); err != nil {
		return err
	}

	s.Buckets, err = group.UnpackList(r, reg, int(length)-8)
	return err
}

// GroupDescStatsReply lists every configured group's description.
type GroupDescStatsReply struct {
	Stats []GroupDescStats

	actions action.Registry
}

func (m *GroupDescStatsReply) Len() int {
	var n int
	for i := range m.Stats {
		n += m.Stats[i].Len()
	}
	return n
}

func (m *GroupDescStatsReply) Pack(w *wire.Writer) error {
	for i := range m.Stats {
		if err := m.Stats[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *GroupDescStatsReply) Unpack(r *wire.Reader) error {
	reg := m.actions
	if reg == nil {
		reg = action.DefaultRegistry
	}

	m.Stats = nil
	for r.Len() > 0 {
		var s GroupDescStats
		if err := s.unpack(r, reg); err != nil {
			return err
		}
		m.Stats = append(m.Stats, s)
	}
	return nil
}

// GroupCapability are the OFPGFC_* bits of GroupFeatures.Capabilities.
type GroupCapability uint32

const (
	GroupCapabilitySelectWeight GroupCapability = 1 << iota
	GroupCapabilitySelectLiveness
	GroupCapabilityChaining
	GroupCapabilityChainingChecks
)

// GroupFeaturesRequest carries no fields.
type GroupFeaturesRequest struct{}

func (m *GroupFeaturesRequest) Len() int                   { return 0 }
func (m *GroupFeaturesRequest) Pack(w *wire.Writer) error   { return nil }
func (m *GroupFeaturesRequest) Unpack(r *wire.Reader) error { return nil }

// GroupFeatures reports which group types and actions a switch
// supports, and the per-type bucket limits.
type GroupFeatures struct {
	Types        uint32
	Capabilities GroupCapability
	MaxGroups    [4]uint32
	Actions      [4]uint32
}

func (m *GroupFeatures) Len() int { return 40 }

func (m *GroupFeatures) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.Types); err != nil {
		return err
	}
	if err := w.PutUint32(uint32(m.Capabilities)); err != nil {
		return err
	}
	for _, v := range m.MaxGroups {
		if err := w.PutUint32(v); err != nil {
			return err
		}
	}
	for _, v := range m.Actions {
		if err := w.PutUint32(v); err != nil {
			return err
		}
	}
	return nil
}

func (m *GroupFeatures) Unpack(r *wire.Reader) error {
	types, err := r.Uint32()
	if err != nil {
		return err
	}
	m.Types = types

	capBits, err := r.Uint32()
	if err != nil {
		return err
	}
	m.Capabilities = GroupCapability(capBits)

	for i := range m.MaxGroups {
		if m.MaxGroups[i], err = r.Uint32(); err != nil {
			return err
		}
	}
	for i := range m.Actions {
		if m.Actions[i], err = r.Uint32(); err != nil {
			return err
		}
	}
	return nil
}

type GroupFeaturesReply struct{ GroupFeatures }
