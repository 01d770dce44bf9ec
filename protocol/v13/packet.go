package v13

import (
	"github.com/netrack/ofcore/protocol/oxm"
	"github.com/netrack/ofcore/protocol/v12"
	"github.com/netrack/ofcore/wire"
)

// NoBuffer re-exports v12.NoBuffer.
const NoBuffer = v12.NoBuffer

// PacketInReason re-exports v12's OFPR_* reason codes.
type PacketInReason = v12.PacketInReason

const (
	PacketInReasonNoMatch   = v12.PacketInReasonNoMatch
	PacketInReasonAction    = v12.PacketInReasonAction
	PacketInReasonInvalidTTL = v12.PacketInReasonInvalidTTL
)

// PacketIn delivers a packet that missed the pipeline to the
// controller. v1.3 adds a Cookie field identifying the flow entry that
// sent the packet here, ahead of the two bytes of Data padding.
type PacketIn struct {
	BufferID uint32
	TotalLen uint16
	Reason   PacketInReason
	TableID  uint8
	Cookie   uint64
	Match    oxm.Match
	Data     []byte
}

// GetCookie implements router.Cookied.
func (m *PacketIn) GetCookie() uint64 { return m.Cookie }

func (m *PacketIn) Len() int {
	return 16 + m.Match.Len() + 2 + len(m.Data)
}

func (m *PacketIn) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.BufferID); err != nil {
		return err
	}
	if err := w.PutUint16(m.TotalLen); err != nil {
		return err
	}
	if err := w.PutUint8(uint8(m.Reason)); err != nil {
		return err
	}
	if err := w.PutUint8(m.TableID); err != nil {
		return err
	}
	if err := w.PutUint64(m.Cookie); err != nil {
		return err
	}
	if err := m.Match.Pack(w); err != nil {
		return err
	}
	if err := w.PutZero(2); err != nil {
		return err
	}
	return w.PutBytes(m.Data)
}

func (m *PacketIn) Unpack(r *wire.Reader) error {
	var err error
	if m.BufferID, err = r.Uint32(); err != nil {
		return err
	}
	if m.TotalLen, err = r.Uint16(); err != nil {
		return err
	}

	reason, err := r.Uint8()
	if err != nil {
		return err
	}
	m.Reason = PacketInReason(reason)

	if m.TableID, err = r.Uint8(); err != nil {
		return err
	}
	if m.Cookie, err = r.Uint64(); err != nil {
		return err
	}
	if err = m.Match.Unpack(r); err != nil {
		return err
	}
	if err = r.Skip(2); err != nil {
		return err
	}

	m.Data = append([]byte(nil), r.Bytes()...)
	return r.Skip(len(m.Data))
}
