package conn_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netrack/ofcore/conn"
	"github.com/netrack/ofcore/environment"
	"github.com/netrack/ofcore/metrics"
	"github.com/netrack/ofcore/protocol"
	"github.com/netrack/ofcore/protocol/codec"
	"github.com/netrack/ofcore/protocol/oxm"
	"github.com/netrack/ofcore/protocol/v12"
	"github.com/netrack/ofcore/protocol/v13"
	"github.com/netrack/ofcore/transport/transporttest"
)

type event struct {
	name    string
	version protocol.Version
	msg     protocol.Msg
}

type recordingEnv struct {
	events chan event
}

func newRecordingEnv() *recordingEnv {
	return &recordingEnv{events: make(chan event, 64)}
}

func (e *recordingEnv) push(name string) {
	e.events <- event{name: name}
}

func (e *recordingEnv) HandleEstablished(chanID environment.ChanID, version protocol.Version) {
	e.events <- event{name: "established", version: version}
}
func (e *recordingEnv) HandleClosed(environment.ChanID, environment.ConnID) { e.push("closed") }
func (e *recordingEnv) HandleConnectRefused(environment.ChanID, environment.ConnID) {
	e.push("connect_refused")
}
func (e *recordingEnv) HandleConnectFailed(environment.ChanID, environment.ConnID) {
	e.push("connect_failed")
}
func (e *recordingEnv) HandleAcceptFailed(environment.ChanID, environment.ConnID) {
	e.push("accept_failed")
}
func (e *recordingEnv) HandleNegotiationFailed(environment.ChanID, environment.ConnID) {
	e.push("negotiation_failed")
}
func (e *recordingEnv) HandleSend(environment.ChanID, environment.ConnID) { e.push("send") }
func (e *recordingEnv) HandleRecv(chanID environment.ChanID, connID environment.ConnID, msg protocol.Msg) {
	e.events <- event{name: "recv", msg: msg}
}
func (e *recordingEnv) CongestionIndication(environment.ChanID, environment.ConnID) {
	e.push("congestion")
}
func (e *recordingEnv) GetAsyncXID(environment.ChanID, environment.ConnID) protocol.XId { return 0 }
func (e *recordingEnv) GetSyncXID(environment.ChanID, environment.ConnID, protocol.Type, uint16) protocol.XId {
	return 0
}
func (e *recordingEnv) ReleaseSyncXID(environment.ChanID, environment.ConnID, protocol.XId) {}

func (e *recordingEnv) waitFor(t *testing.T, name string) event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-e.events:
			if ev.name == name {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event %q", name)
		}
	}
}

func newHarness(t *testing.T, local protocol.Bitmap) (*conn.Conn, *transporttest.Pipe, *recordingEnv) {
	t.Helper()

	envReg := environment.NewRegistry()
	env := newRecordingEnv()
	id := envReg.Register(env)

	pipe := &transporttest.Pipe{}
	c := conn.New(conn.Config{
		LocalVersions: local,
		Transport:     pipe,
		EnvRegistry:   envReg,
		EnvID:         id,
		EchoInterval:  time.Hour, // keepalive not under test here
	})

	require.NoError(t, c.Open())
	pipe.Drain() // discard the Hello we just sent

	return c, pipe, env
}

func encodeFrame(t *testing.T, msg protocol.Msg) []byte {
	t.Helper()
	b, err := codec.Encode(msg)
	require.NoError(t, err)
	return b
}

// TestNegotiationSuccess exercises local {v1.0, v1.3} against a peer
// advertising {v1.0, v1.2, v1.3}: the negotiated version is the highest
// both share, v1.3.
func TestNegotiationSuccess(t *testing.T) {
	local := protocol.BitmapOf(protocol.Version10, protocol.Version13)
	c, pipe, env := newHarness(t, local)

	peerBitmap := protocol.BitmapOf(protocol.Version10, protocol.Version12, protocol.Version13)
	peerHello := protocol.Msg{
		Header: protocol.Header{Version: protocol.Version13, Type: v13.TypeHello},
		Body: &v12.Hello{Elements: []v12.HelloElem{
			{Type: v12.HelloElemVersionBitmap, Bitmap: []uint32{uint32(peerBitmap)}},
		}},
	}
	pipe.Feed(encodeFrame(t, peerHello))

	ev := env.waitFor(t, "established")
	assert.Equal(t, protocol.Version13, ev.version)
	assert.Equal(t, conn.StateEstablished, c.State())
	assert.Equal(t, protocol.Version13, c.Version())
}

// TestNegotiationFailure exercises disjoint bitmaps: local speaks only
// v1.0, the peer only v1.3, so negotiation must fail rather than pick
// an unsupported version.
func TestNegotiationFailure(t *testing.T) {
	local := protocol.BitmapOf(protocol.Version10)
	c, pipe, env := newHarness(t, local)

	peerBitmap := protocol.BitmapOf(protocol.Version13)
	peerHello := protocol.Msg{
		Header: protocol.Header{Version: protocol.Version13, Type: v13.TypeHello},
		Body: &v12.Hello{Elements: []v12.HelloElem{
			{Type: v12.HelloElemVersionBitmap, Bitmap: []uint32{uint32(peerBitmap)}},
		}},
	}
	pipe.Feed(encodeFrame(t, peerHello))

	env.waitFor(t, "negotiation_failed")
	assert.Equal(t, conn.StateNegotiationFailed, c.State())
}

// TestFramingPartialRead delivers a single PacketIn one byte at a time;
// the frame must only surface once the full length has arrived.
func TestFramingPartialRead(t *testing.T) {
	local := protocol.BitmapOf(protocol.Version13)
	c, pipe, env := newHarness(t, local)

	peerBitmap := protocol.BitmapOf(protocol.Version13)
	pipe.Feed(encodeFrame(t, protocol.Msg{
		Header: protocol.Header{Version: protocol.Version13, Type: v13.TypeHello},
		Body: &v12.Hello{Elements: []v12.HelloElem{
			{Type: v12.HelloElemVersionBitmap, Bitmap: []uint32{uint32(peerBitmap)}},
		}},
	}))
	env.waitFor(t, "established")

	packetIn := protocol.Msg{
		Header: protocol.Header{Version: protocol.Version13, Type: v13.TypePacketIn, Xid: 42},
		Body: &v13.PacketIn{
			BufferID: v13.NoBuffer,
			TotalLen: 4,
			Reason:   v13.PacketInReasonAction,
			TableID:  2,
			Cookie:   0x1122334455667788,
			Match: oxm.Match{
				Type: oxm.MatchTypeXM,
				Fields: []oxm.XM{
					{Class: oxm.ClassOpenflowBasic, Field: oxm.FieldInPort, Value: []byte{0, 0, 0, 3}},
				},
			},
			Data: []byte{0xde, 0xad, 0xbe, 0xef},
		},
	}
	frame := encodeFrame(t, packetIn)

	for _, b := range frame[:len(frame)-1] {
		pipe.Feed([]byte{b})
	}
	select {
	case ev := <-env.events:
		t.Fatalf("frame surfaced before fully delivered: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}

	pipe.Feed(frame[len(frame)-1:])
	ev := env.waitFor(t, "recv")
	require.IsType(t, &v13.PacketIn{}, ev.msg.Body)
	got := ev.msg.Body.(*v13.PacketIn)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got.Data)
	assert.Equal(t, v13.NoBuffer, got.BufferID)
	assert.Equal(t, uint8(2), got.TableID)
	assert.Equal(t, uint64(0x1122334455667788), got.Cookie)
	require.Len(t, got.Match.Fields, 1)
	assert.Equal(t, oxm.FieldInPort, got.Match.Fields[0].Field)
	assert.Equal(t, []byte{0, 0, 0, 3}, got.Match.Fields[0].Value)
}

// TestCongestionFiresOnce simulates a tiny-capacity transport: a send
// larger than Capacity must WouldBlock, buffer, and fire
// CongestionIndication, with no second indication in the 50ms that
// follow while the send stays buffered. It then drains the pipe and lifts
// the capacity limit so the buffered send can flush; the flush itself is
// not asserted.
func TestCongestionFiresOnce(t *testing.T) {
	local := protocol.BitmapOf(protocol.Version13)

	envReg := environment.NewRegistry()
	env := newRecordingEnv()
	id := envReg.Register(env)

	pipe := &transporttest.Pipe{Capacity: 64}
	c := conn.New(conn.Config{
		LocalVersions: local,
		Transport:     pipe,
		EnvRegistry:   envReg,
		EnvID:         id,
		EchoInterval:  time.Hour,
	})
	require.NoError(t, c.Open())
	pipe.Drain()

	big := make([]byte, 4096)
	err := c.Send(protocol.Msg{
		Header: protocol.Header{Version: protocol.Version13, Type: v13.TypeEchoRequest},
		Body:   &v12.EchoRequest{Data: big},
	})
	require.NoError(t, err)

	env.waitFor(t, "congestion")

	select {
	case ev := <-env.events:
		if ev.name == "congestion" {
			t.Fatalf("congestion indication fired twice")
		}
	case <-time.After(50 * time.Millisecond):
	}

	pipe.Drain()
	pipe.Capacity = 0
	pipe.Drain() // wake the writer again with room now unlimited
}

// TestMetricsObserveSendRecv checks that a Conn with SetMetrics attached
// reports the peer Hello it receives and the Echo-Request it sends, via
// the shared Collectors rather than a private counter.
func TestMetricsObserveSendRecv(t *testing.T) {
	local := protocol.BitmapOf(protocol.Version13)
	c, pipe, env := newHarness(t, local)

	m := metrics.NewCollectors()
	c.SetMetrics(m)

	peerBitmap := protocol.BitmapOf(protocol.Version13)
	pipe.Feed(encodeFrame(t, protocol.Msg{
		Header: protocol.Header{Version: protocol.Version13, Type: v13.TypeHello},
		Body: &v12.Hello{Elements: []v12.HelloElem{
			{Type: v12.HelloElemVersionBitmap, Bitmap: []uint32{uint32(peerBitmap)}},
		}},
	}))
	env.waitFor(t, "established")

	require.NoError(t, c.Send(protocol.Msg{
		Header: protocol.Header{Version: protocol.Version13, Type: v13.TypeEchoRequest},
		Body:   &v12.EchoRequest{},
	}))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.MessagesReceived.WithLabelValues("1.3")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.MessagesSent.WithLabelValues("1.3")))
}
