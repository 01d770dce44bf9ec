// Package conn implements the per-connection OpenFlow state machine: one
// transport, version handshake, frame extraction, keepalive and a
// congestion-aware send path. Framing follows the accumulate-then-slice
// approach of antrea-io-libOpenflow's util.MessageStream: bytes from the
// transport pile into a growing buffer; once it holds a full frame
// (header.Length bytes), the frame is sliced off, decoded and delivered,
// and the loop repeats on whatever remains.
package conn

import (
	"sync"
	"time"

	"k8s.io/klog/v2"

	"github.com/netrack/ofcore/environment"
	"github.com/netrack/ofcore/metrics"
	"github.com/netrack/ofcore/protocol"
	"github.com/netrack/ofcore/protocol/codec"
	"github.com/netrack/ofcore/protocol/v10"
	"github.com/netrack/ofcore/protocol/v12"
	"github.com/netrack/ofcore/transport"
	"github.com/netrack/ofcore/wire"
)

// State is a Conn's position in its handshake/lifecycle state machine.
type State uint8

const (
	StateDisconnected State = iota
	StateConnecting
	StateHelloSent
	StateEstablished
	StateClosing
	StateClosed

	// Terminal failure states; a Conn in any of these has already
	// delivered the matching failure upcall, keeps that state once its
	// transport is closed, and is otherwise equivalent to StateClosed.
	StateConnectFailed
	StateConnectRefused
	StateAcceptFailed
	StateNegotiationFailed
)

// Defaults for the keepalive timers, overridable per Conn at
// construction, the way the teacher's Server exposes ReadTimeout/
// WriteTimeout as plain fields.
const (
	DefaultEchoInterval = 5 * time.Second
	DefaultEchoTimeout  = 2 * DefaultEchoInterval

	// DefaultMaxMessageBytes bounds a single frame; declaring a length
	// beyond this is ErrOversizeFrame rather than an unbounded
	// allocation.
	DefaultMaxMessageBytes = 64 * 1024

	// maxTailQueue bounds how many congested sends a Conn buffers
	// before Send starts reporting the backpressure to its caller
	// instead of absorbing it silently.
	maxTailQueue = 256
)

// Config carries the construction-time parameters of a Conn. Zero values
// are replaced by the package defaults.
type Config struct {
	AuxID           protocol.AuxId
	LocalVersions   protocol.Bitmap
	Transport       transport.Transport
	EnvRegistry     *environment.Registry
	EnvID           environment.ID
	ChanID          environment.ChanID
	EchoInterval    time.Duration
	EchoTimeout     time.Duration
	MaxMessageBytes int
}

// Conn is one transport carrying framed OpenFlow messages for a single
// auxiliary (or the primary) of a Chan. Its own I/O thread owns rxBuf,
// txQueue and every state transition; other goroutines only call the
// exported methods, which take conn.mu.
type Conn struct {
	auxID         protocol.AuxId
	localVersions protocol.Bitmap
	transport     transport.Transport

	envReg *environment.Registry
	envID  environment.ID
	chanID environment.ChanID

	echoInterval    time.Duration
	echoTimeout     time.Duration
	maxMessageBytes int

	mu        sync.Mutex
	state     State
	version   protocol.Version
	rxBuf     []byte
	txQueue   [][]byte
	congested bool

	lastSeen    time.Time
	echoPending bool
	echoXID     protocol.XId

	metrics *metrics.Collectors

	onEstablished func(protocol.Version)
	onClosed      func()

	closeOnce sync.Once
	stopCh    chan struct{}
	wakeCh    chan struct{}
}

// SetLifecycleHooks overrides how this Conn reports reaching Established
// or Closed: instead of upcalling its Environment directly, it calls
// onEstablished/onClosed. A Chan uses this to become the sole source of
// handle_established/handle_closed upcalls for the Conns it owns, so it
// can dedupe the once-per-channel handle_established and cascade-close
// its auxiliaries without a second, redundant handle_closed per Conn. A
// Conn with no hooks set (the default) upcalls its Environment directly,
// which is what a standalone Conn not owned by any Chan does.
func (c *Conn) SetLifecycleHooks(onEstablished func(protocol.Version), onClosed func()) {
	c.mu.Lock()
	c.onEstablished = onEstablished
	c.onClosed = onClosed
	c.mu.Unlock()
}

// SetMetrics attaches the Prometheus collectors Send/Recv/congestion
// events are reported to. Optional; a nil or never-called Conn reports
// nothing. Must be called before Open to avoid missing early events.
func (c *Conn) SetMetrics(m *metrics.Collectors) {
	c.mu.Lock()
	c.metrics = m
	c.mu.Unlock()
}

// New constructs a Conn in StateDisconnected. Call Open to begin the
// handshake.
func New(cfg Config) *Conn {
	echoInterval := cfg.EchoInterval
	if echoInterval == 0 {
		echoInterval = DefaultEchoInterval
	}

	echoTimeout := cfg.EchoTimeout
	if echoTimeout == 0 {
		echoTimeout = DefaultEchoTimeout
	}

	maxMessageBytes := cfg.MaxMessageBytes
	if maxMessageBytes == 0 {
		maxMessageBytes = DefaultMaxMessageBytes
	}

	return &Conn{
		auxID:           cfg.AuxID,
		localVersions:   cfg.LocalVersions,
		transport:       cfg.Transport,
		envReg:          cfg.EnvRegistry,
		envID:           cfg.EnvID,
		chanID:          cfg.ChanID,
		echoInterval:    echoInterval,
		echoTimeout:     echoTimeout,
		maxMessageBytes: maxMessageBytes,
		state:           StateDisconnected,
		stopCh:          make(chan struct{}),
		wakeCh:          make(chan struct{}, 1),
	}
}

// AuxID reports the auxiliary id this Conn was constructed with.
func (c *Conn) AuxID() protocol.AuxId { return c.auxID }

// State reports the Conn's current lifecycle state.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Version reports the negotiated wire version. Only meaningful once
// State is StateEstablished.
func (c *Conn) Version() protocol.Version {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// setState moves the Conn to s. States only move forward, so closing the
// transport after a terminal failure state keeps that failure state.
func (c *Conn) setState(s State) {
	c.mu.Lock()
	if s > c.state {
		c.state = s
	}
	c.mu.Unlock()
}

func (c *Conn) env() (environment.Environment, bool) {
	if c.envReg == nil {
		return nil, false
	}
	return c.envReg.Get(c.envID)
}

func (c *Conn) mtr() *metrics.Collectors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metrics
}

// Open transitions Disconnected -> Connecting, opens the transport, and
// on success sends the local Hello and moves to HelloSent. Failure
// transitions to StateConnectFailed and upcalls HandleConnectFailed.
func (c *Conn) Open() error {
	c.setState(StateConnecting)

	if err := c.transport.Open(); err != nil {
		c.setState(StateConnectFailed)
		if env, ok := c.env(); ok {
			env.HandleConnectFailed(c.chanID, environment.ConnID(c.auxID))
		}
		return wire.Wrap(err, "conn: open transport")
	}

	c.transport.Notify(c.wake)

	if err := c.sendHello(); err != nil {
		c.setState(StateConnectFailed)
		return wire.Wrap(err, "conn: send hello")
	}

	c.setState(StateHelloSent)
	c.mu.Lock()
	c.lastSeen = time.Now()
	c.mu.Unlock()

	go c.pump()
	go c.keepaliveLoop()

	return nil
}

func (c *Conn) wake() {
	select {
	case c.wakeCh <- struct{}{}:
	default:
	}
}

func (c *Conn) sendHello() error {
	version := highestVersion(c.localVersions)

	// v1.0 Hello carries no elements at all; a peer on that version
	// infers our support solely from the header's raw Version byte. A
	// version bitmap element narrows the handshake for v1.2/v1.3 peers.
	if version == protocol.Version10 {
		return c.writeFrame(protocol.Msg{
			Header: protocol.Header{Version: version, Type: v10.TypeHello},
			Body:   &v10.Hello{},
		})
	}

	hello := &v12.Hello{Elements: []v12.HelloElem{
		{Type: v12.HelloElemVersionBitmap, Bitmap: []uint32{uint32(c.localVersions)}},
	}}

	return c.writeFrame(protocol.Msg{
		Header: protocol.Header{Version: version, Type: v12.TypeHello},
		Body:   hello,
	})
}

func highestVersion(b protocol.Bitmap) protocol.Version {
	for _, v := range protocol.Supported {
		if b.Has(v) {
			return v
		}
	}
	return protocol.Version13
}

// pump is the Conn's I/O goroutine: it wakes on transport readability
// and drains whatever frames have become available.
func (c *Conn) pump() {
	for {
		select {
		case <-c.stopCh:
			return
		case <-c.wakeCh:
			c.drainReadable()
			c.drainCongested()
		}
	}
}

func (c *Conn) drainReadable() {
	for {
		res, err := c.transport.Read()
		if err != nil {
			klog.ErrorS(err, "conn: transport read failed", "auxid", c.auxID)
			c.fail()
			return
		}

		switch res.Outcome {
		case transport.NoBytes:
			return
		case transport.Eof:
			c.fail()
			return
		case transport.Bytes:
			c.mu.Lock()
			c.rxBuf = append(c.rxBuf, res.Data...)
			c.lastSeen = time.Now()
			c.mu.Unlock()

			c.extractFrames()
		}
	}
}

// extractFrames slices complete frames off the front of rxBuf, leaving
// any trailing partial frame for the next read to complete.
func (c *Conn) extractFrames() {
	for {
		c.mu.Lock()
		if len(c.rxBuf) < protocol.HeaderLen {
			c.mu.Unlock()
			return
		}

		length := int(c.rxBuf[2])<<8 | int(c.rxBuf[3])
		if length < protocol.HeaderLen {
			c.mu.Unlock()
			klog.ErrorS(wire.ErrLengthMismatch, "conn: frame shorter than header", "auxid", c.auxID)
			c.fail()
			return
		}
		if length > c.maxMessageBytes {
			c.mu.Unlock()
			klog.ErrorS(wire.ErrOversizeFrame, "conn: oversize frame", "auxid", c.auxID, "length", length)
			c.fail()
			return
		}
		if len(c.rxBuf) < length {
			c.mu.Unlock()
			return // partial frame; resume on next read
		}

		frame := c.rxBuf[:length]
		c.rxBuf = append([]byte(nil), c.rxBuf[length:]...)
		c.mu.Unlock()

		c.handleFrame(frame)
	}
}

func (c *Conn) handleFrame(frame []byte) {
	msg, err := codec.Decode(frame)
	if err != nil {
		klog.ErrorS(err, "conn: decode failed, closing", "auxid", c.auxID)
		c.fail()
		return
	}

	if m := c.mtr(); m != nil {
		m.ObserveRecv(msg.Header.Version)
	}

	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	if state == StateHelloSent {
		c.handlePeerHello(msg)
		return
	}

	if c.isEchoReply(msg) {
		c.mu.Lock()
		c.echoPending = false
		c.mu.Unlock()
		return
	}

	if c.isEchoRequest(msg) {
		c.replyEcho(msg.Header.Xid)
		return
	}

	if env, ok := c.env(); ok {
		env.HandleRecv(c.chanID, environment.ConnID(c.auxID), msg)
	}
}

func (c *Conn) isEchoRequest(msg protocol.Msg) bool {
	if msg.Header.Version == protocol.Version10 {
		return msg.Header.Type == v10.TypeEchoRequest
	}
	return msg.Header.Type == v12.TypeEchoRequest
}

func (c *Conn) isEchoReply(msg protocol.Msg) bool {
	if msg.Header.Version == protocol.Version10 {
		return msg.Header.Type == v10.TypeEchoReply
	}
	return msg.Header.Type == v12.TypeEchoReply
}

func (c *Conn) replyEcho(xid protocol.XId) {
	c.mu.Lock()
	version := c.version
	c.mu.Unlock()

	var reply protocol.Msg
	if version == protocol.Version10 {
		reply = protocol.Msg{
			Header: protocol.Header{Version: version, Type: v10.TypeEchoReply, Xid: xid},
			Body:   &v10.EchoReply{},
		}
	} else {
		reply = protocol.Msg{
			Header: protocol.Header{Version: version, Type: v12.TypeEchoReply, Xid: xid},
			Body:   &v12.EchoReply{},
		}
	}

	if err := c.writeFrame(reply); err != nil {
		klog.ErrorS(err, "conn: echo reply failed", "auxid", c.auxID)
	}
}

// handlePeerHello computes the negotiated version from the peer's
// advertised bitmap (or, absent one, its header version alone) and
// transitions to Established, or to NegotiationFailed on empty
// intersection.
func (c *Conn) handlePeerHello(msg protocol.Msg) {
	peerBitmap := protocol.BitmapOf(msg.Header.Version)

	if hello, ok := msg.Body.(*v12.Hello); ok {
		for _, elem := range hello.Elements {
			if elem.Type == v12.HelloElemVersionBitmap && len(elem.Bitmap) > 0 {
				peerBitmap = protocol.Bitmap(elem.Bitmap[0])
			}
		}
	}

	version, ok := protocol.Negotiate(c.localVersions, peerBitmap)
	if !ok {
		c.setState(StateNegotiationFailed)
		if env, ok := c.env(); ok {
			env.HandleNegotiationFailed(c.chanID, environment.ConnID(c.auxID))
		}
		c.closeTransport()
		return
	}

	c.mu.Lock()
	c.version = version
	c.state = StateEstablished
	onEstablished := c.onEstablished
	c.mu.Unlock()

	if onEstablished != nil {
		onEstablished(version)
	} else if env, ok := c.env(); ok {
		env.HandleEstablished(c.chanID, version)
	}
}

// keepaliveLoop issues an Echo-Request after echoInterval of silence and,
// while that request is unanswered, closes the Conn once echoTimeout has
// passed since the last bytes were received. The timeout counts from the
// last received bytes, not from when the Echo-Request was sent.
func (c *Conn) keepaliveLoop() {
	ticker := time.NewTicker(c.echoInterval / 2)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.checkKeepalive()
		}
	}
}

func (c *Conn) checkKeepalive() {
	c.mu.Lock()
	state := c.state
	silence := time.Since(c.lastSeen)
	pending := c.echoPending
	c.mu.Unlock()

	if state != StateEstablished && state != StateHelloSent {
		return
	}

	if pending {
		if silence > c.echoTimeout {
			klog.InfoS("conn: echo timeout, closing", "auxid", c.auxID)
			c.fail()
		}
		return
	}

	if silence < c.echoInterval {
		return
	}

	var xid protocol.XId
	if env, ok := c.env(); ok {
		xid = env.GetAsyncXID(c.chanID, environment.ConnID(c.auxID))
	}

	c.mu.Lock()
	version := c.version
	c.echoPending = true
	c.echoXID = xid
	c.mu.Unlock()

	var req protocol.Msg
	if version == protocol.Version10 {
		req = protocol.Msg{
			Header: protocol.Header{Version: version, Type: v10.TypeEchoRequest, Xid: xid},
			Body:   &v10.EchoRequest{},
		}
	} else {
		req = protocol.Msg{
			Header: protocol.Header{Version: version, Type: v12.TypeEchoRequest, Xid: xid},
			Body:   &v12.EchoRequest{},
		}
	}
	if err := c.writeFrame(req); err != nil {
		klog.ErrorS(err, "conn: echo request failed", "auxid", c.auxID)
	}
}

// Send encodes and writes msg. If the transport reports backpressure,
// the remainder is buffered in a bounded tail queue and
// CongestionIndication fires exactly once for the episode.
func (c *Conn) Send(msg protocol.Msg) error {
	b, err := codec.Encode(msg)
	if err != nil {
		return wire.Wrap(err, "conn: encode")
	}

	if m := c.mtr(); m != nil {
		m.ObserveSend(msg.Header.Version)
	}

	return c.writeBytes(b)
}

func (c *Conn) writeFrame(msg protocol.Msg) error {
	b, err := codec.Encode(msg)
	if err != nil {
		return wire.Wrap(err, "conn: encode")
	}

	if m := c.mtr(); m != nil {
		m.ObserveSend(msg.Header.Version)
	}

	return c.writeBytes(b)
}

func (c *Conn) writeBytes(b []byte) error {
	c.mu.Lock()
	alreadyCongested := c.congested
	c.mu.Unlock()

	if alreadyCongested {
		return c.enqueueTail(b)
	}

	res, err := c.transport.Write(b)
	if err != nil {
		return wire.Wrap(err, "conn: transport write")
	}

	if res.Outcome == transport.WouldBlock {
		return c.enterCongestion(b)
	}
	if res.N < len(b) {
		return c.enterCongestion(b[res.N:])
	}

	if env, ok := c.env(); ok {
		env.HandleSend(c.chanID, environment.ConnID(c.auxID))
	}
	return nil
}

func (c *Conn) enterCongestion(remainder []byte) error {
	c.mu.Lock()
	c.congested = true
	c.mu.Unlock()

	if err := c.enqueueTail(remainder); err != nil {
		return err
	}

	if m := c.mtr(); m != nil {
		m.ObserveCongestion()
	}

	if env, ok := c.env(); ok {
		env.CongestionIndication(c.chanID, environment.ConnID(c.auxID))
	}
	return nil
}

func (c *Conn) enqueueTail(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.txQueue) >= maxTailQueue {
		return wire.Wrap(wire.ErrBufferFull, "conn: tail queue full")
	}

	c.txQueue = append(c.txQueue, b)
	return nil
}

// drainCongested retries buffered sends once the transport signals it
// may have room again. It clears the congested flag silently on full
// drain; there is no symmetric "uncongested" upcall.
func (c *Conn) drainCongested() {
	for {
		c.mu.Lock()
		if len(c.txQueue) == 0 {
			c.congested = false
			c.mu.Unlock()
			return
		}
		next := c.txQueue[0]
		c.mu.Unlock()

		res, err := c.transport.Write(next)
		if err != nil {
			klog.ErrorS(err, "conn: drain write failed", "auxid", c.auxID)
			c.fail()
			return
		}
		if res.Outcome == transport.WouldBlock {
			return
		}
		if res.N < len(next) {
			c.mu.Lock()
			c.txQueue[0] = next[res.N:]
			c.mu.Unlock()
			continue
		}

		c.mu.Lock()
		c.txQueue = c.txQueue[1:]
		c.mu.Unlock()

		if env, ok := c.env(); ok {
			env.HandleSend(c.chanID, environment.ConnID(c.auxID))
		}
	}
}

func (c *Conn) fail() {
	c.setState(StateClosing)
	c.closeTransport()
}

// Close transitions the Conn to Closing/Closed and delivers exactly one
// HandleClosed upcall. Safe to call more than once.
func (c *Conn) Close() error {
	c.setState(StateClosing)
	c.closeTransport()
	return nil
}

func (c *Conn) closeTransport() {
	c.closeOnce.Do(func() {
		close(c.stopCh)
		if err := c.transport.Close(); err != nil {
			klog.ErrorS(err, "conn: transport close failed", "auxid", c.auxID)
		}

		c.setState(StateClosed)

		c.mu.Lock()
		onClosed := c.onClosed
		c.mu.Unlock()

		if onClosed != nil {
			onClosed()
		} else if env, ok := c.env(); ok {
			env.HandleClosed(c.chanID, environment.ConnID(c.auxID))
		}
	})
}
