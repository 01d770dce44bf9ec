package v12

import "github.com/netrack/ofcore/wire"

// TableFeaturesRequest, when Tables is empty, asks the switch to
// describe every table's current configuration; a non-empty Tables
// instead attempts to configure the named tables (OFPMP_TABLE_FEATURES
// doubles as both a stats request and a reconfiguration request).
type TableFeaturesRequest struct{ Tables []TableFeatures }

func (m *TableFeaturesRequest) Len() int {
	n := 0
	for i := range m.Tables {
		n += m.Tables[i].Len()
	}
	return n
}

func (m *TableFeaturesRequest) Pack(w *wire.Writer) error {
	for i := range m.Tables {
		if err := m.Tables[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *TableFeaturesRequest) Unpack(r *wire.Reader) error {
	tables, err := unpackTableFeatures(r)
	if err != nil {
		return err
	}
	m.Tables = tables
	return nil
}

const tableFeaturesHeaderLen = 64

// TableFeatures describes one flow table's name, metadata masks, entry
// limit and the OFPTFPT_* property TLVs advertising which matches,
// instructions and actions it supports. The properties themselves are
// kept as opaque bytes: interpreting the OFPTFPT_* TLV set is a
// controller-application concern, not a wire-codec one, the same
// tradeoff the codec already makes for vendor Experimenter payloads.
type TableFeatures struct {
	TableID       uint8
	Name          string
	MetadataMatch uint64
	MetadataWrite uint64
	Config        uint32
	MaxEntries    uint32
	PropertiesRaw []byte
}

func (m *TableFeatures) Len() int { return tableFeaturesHeaderLen + len(m.PropertiesRaw) }

func (m *TableFeatures) pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(m.Len())); err != nil {
		return err
	}
	if err := w.PutUint8(m.TableID); err != nil {
		return err
	}
	if err := w.PutZero(5); err != nil {
		return err
	}
	if err := putFixed(w, m.Name, 32); err != nil {
		return err
	}
	if err := w.PutUint64(m.MetadataMatch); err != nil {
		return err
	}
	if err := w.PutUint64(m.MetadataWrite); err != nil {
		return err
	}
	if err := w.PutUint32(m.Config); err != nil {
		return err
	}
	if err := w.PutUint32(m.MaxEntries); err != nil {
		return err
	}
	return w.PutBytes(m.PropertiesRaw)
}

func (m *TableFeatures) unpack(r *wire.Reader) error {
	length, err := r.Uint16()
	if err != nil {
		return err
	}
	if m.TableID, err = r.Uint8(); err != nil {
		return err
	}
	if err = r.Skip(5); err != nil {
		return err
	}
	name, err := r.Next(32)
	if err != nil {
		return err
	}
	m.Name = fixedString(name)

	if m.MetadataMatch, err = r.Uint64(); err != nil {
		return err
	}
	if m.MetadataWrite, err = r.Uint64(); err != nil {
		return err
	}
	if m.Config, err = r.Uint32(); err != nil {
		return err
	}
	if m.MaxEntries, err = r.Uint32(); err != nil {
		return err
	}

	nprops := int(length) - tableFeaturesHeaderLen
	if nprops < 0 {
		return wire.ErrLengthMismatch
	}
	props, err := r.Next(nprops)
	if err != nil {
		return err
	}
	m.PropertiesRaw = append([]byte(nil), props...)
	return nil
}

func unpackTableFeatures(r *wire.Reader) ([]TableFeatures, error) {
	var tables []TableFeatures
	for r.Len() > 0 {
		var t TableFeatures
		if err := t.unpack(r); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// TableFeaturesReply lists every table's current feature set.
type TableFeaturesReply struct{ Tables []TableFeatures }

func (m *TableFeaturesReply) Len() int {
	n := 0
	for i := range m.Tables {
		n += m.Tables[i].Len()
	}
	return n
}

func (m *TableFeaturesReply) Pack(w *wire.Writer) error {
	for i := range m.Tables {
		if err := m.Tables[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *TableFeaturesReply) Unpack(r *wire.Reader) error {
	tables, err := unpackTableFeatures(r)
	if err != nil {
		return err
	}
	m.Tables = tables
	return nil
}

// PortDescStatsRequest carries no fields.
type PortDescStatsRequest struct{}

func (m *PortDescStatsRequest) Len() int                   { return 0 }
func (m *PortDescStatsRequest) Pack(w *wire.Writer) error   { return nil }
func (m *PortDescStatsRequest) Unpack(r *wire.Reader) error { return nil }

// PortDescStatsReply lists every port's description, the same
// ofp_port layout Features-Reply and Port-Status carry.
type PortDescStatsReply struct{ Ports Ports }

func (m *PortDescStatsReply) Len() int { return m.Ports.Len() }

func (m *PortDescStatsReply) Pack(w *wire.Writer) error { return m.Ports.Pack(w) }

func (m *PortDescStatsReply) Unpack(r *wire.Reader) error {
	ports, err := unpackPorts(r, r.Len())
	if err != nil {
		return err
	}
	m.Ports = ports
	return nil
}
