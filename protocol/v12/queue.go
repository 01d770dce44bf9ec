package v12

import "github.com/netrack/ofcore/wire"

// QueuePropType is an OFPQT_* queue property type.
type QueuePropType uint16

const (
	QueuePropMinRate QueuePropType = 1
	QueuePropMaxRate QueuePropType = 2
)

// QueueProp is one property of a Queue: currently the min/max-rate
// pair, each carrying a per-mille rate (0-1000, 0xffff disables).
type QueueProp struct {
	Type QueuePropType
	Rate uint16
}

const queuePropLen = 16

func (p *QueueProp) pack(w *wire.Writer) error {
	if err := w.PutUint16(uint16(p.Type)); err != nil {
		return err
	}
	if err := w.PutUint16(queuePropLen); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
		return err
	}
	if err := w.PutUint16(p.Rate); err != nil {
		return err
	}
	return w.PutZero(6)
}

func (p *QueueProp) unpack(r *wire.Reader) error {
	typ, err := r.Uint16()
	if err != nil {
		return err
	}
	p.Type = QueuePropType(typ)

	if _, err = r.Uint16(); err != nil {
		return err
	}
	if err = r.Skip(4); err != nil {
		return err
	}
	if p.Rate, err = r.Uint16(); err != nil {
		return err
	}
	return r.Skip(6)
}

// Queue describes one queue attached to a port.
type Queue struct {
	QueueID uint32
	Port    uint32
	Props   []QueueProp
}

func (q *Queue) Len() int { return 16 + len(q.Props)*queuePropLen }

func (q *Queue) Pack(w *wire.Writer) error {
	if err := w.PutUint32(q.QueueID); err != nil {
		return err
	}
	if err := w.PutUint32(q.Port); err != nil {
		return err
	}
	if err := w.PutUint16(uint16(q.Len())); err != nil {
		return err
	}
	if err := w.PutZero(6); err != nil {
		return err
	}
	for i := range q.Props {
		if err := q.Props[i].pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queue) Unpack(r *wire.Reader) error {
	var err error
	if q.QueueID, err = r.Uint32(); err != nil {
		return err
	}
	if q.Port, err = r.Uint32(); err != nil {
		return err
	}

	length, err := r.Uint16()
	if err != nil {
		return err
	}
	if err = r.Skip(6); err != nil {
		return err
	}

	remaining := int(length) - 16
	if remaining < 0 || remaining%queuePropLen != 0 {
		return wire.ErrLengthMismatch
	}

	q.Props = make([]QueueProp, remaining/queuePropLen)
	for i := range q.Props {
		if err := q.Props[i].unpack(r); err != nil {
			return err
		}
	}
	return nil
}

// QueueGetConfigRequest solicits the queues configured on a port.
type QueueGetConfigRequest struct{ Port uint32 }

func (m *QueueGetConfigRequest) Len() int { return 8 }

func (m *QueueGetConfigRequest) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.Port); err != nil {
		return err
	}
	return w.PutZero(4)
}

func (m *QueueGetConfigRequest) Unpack(r *wire.Reader) error {
	var err error
	if m.Port, err = r.Uint32(); err != nil {
		return err
	}
	return r.Skip(4)
}

// QueueGetConfigReply lists the queues configured on Port.
type QueueGetConfigReply struct {
	Port   uint32
	Queues []Queue
}

func (m *QueueGetConfigReply) Len() int {
	n := 8
	for i := range m.Queues {
		n += m.Queues[i].Len()
	}
	return n
}

func (m *QueueGetConfigReply) Pack(w *wire.Writer) error {
	if err := w.PutUint32(m.Port); err != nil {
		return err
	}
	if err := w.PutZero(4); err != nil {
		return err
	}
	for i := range m.Queues {
		if err := m.Queues[i].Pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *QueueGetConfigReply) Unpack(r *wire.Reader) error {
	var err error
	if m.Port, err = r.Uint32(); err != nil {
		return err
	}
	if err = r.Skip(4); err != nil {
		return err
	}

	m.Queues = nil
	for r.Len() > 0 {
		var q Queue
		if err := q.Unpack(r); err != nil {
			return err
		}
		m.Queues = append(m.Queues, q)
	}
	return nil
}
