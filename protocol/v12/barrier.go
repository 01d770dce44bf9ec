package v12

import "github.com/netrack/ofcore/wire"

// BarrierRequest/BarrierReply bound earlier requests: the switch must
// finish processing everything before the request before it may
// process anything after, and must reply only once that's done.
type BarrierRequest struct{}

func (m *BarrierRequest) Len() int                   { return 0 }
func (m *BarrierRequest) Pack(w *wire.Writer) error   { return nil }
func (m *BarrierRequest) Unpack(r *wire.Reader) error { return nil }

type BarrierReply struct{}

func (m *BarrierReply) Len() int                   { return 0 }
func (m *BarrierReply) Pack(w *wire.Writer) error   { return nil }
func (m *BarrierReply) Unpack(r *wire.Reader) error { return nil }
