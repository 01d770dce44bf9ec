package channel_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netrack/ofcore/channel"
	"github.com/netrack/ofcore/conn"
	"github.com/netrack/ofcore/environment"
	"github.com/netrack/ofcore/metrics"
	"github.com/netrack/ofcore/protocol"
	"github.com/netrack/ofcore/transport/transporttest"
	"github.com/netrack/ofcore/wire"
)

type stubEnv struct {
	established []protocol.Version
	closed      []environment.ConnID
}

func (e *stubEnv) HandleEstablished(chanID environment.ChanID, version protocol.Version) {
	e.established = append(e.established, version)
}
func (e *stubEnv) HandleClosed(chanID environment.ChanID, connID environment.ConnID) {
	e.closed = append(e.closed, connID)
}
func (e *stubEnv) HandleConnectRefused(environment.ChanID, environment.ConnID)     {}
func (e *stubEnv) HandleConnectFailed(environment.ChanID, environment.ConnID)      {}
func (e *stubEnv) HandleAcceptFailed(environment.ChanID, environment.ConnID)       {}
func (e *stubEnv) HandleNegotiationFailed(environment.ChanID, environment.ConnID)  {}
func (e *stubEnv) HandleSend(environment.ChanID, environment.ConnID)               {}
func (e *stubEnv) HandleRecv(environment.ChanID, environment.ConnID, protocol.Msg) {}
func (e *stubEnv) CongestionIndication(environment.ChanID, environment.ConnID)     {}
func (e *stubEnv) GetAsyncXID(environment.ChanID, environment.ConnID) protocol.XId { return 0 }
func (e *stubEnv) GetSyncXID(environment.ChanID, environment.ConnID, protocol.Type, uint16) protocol.XId {
	return 0
}
func (e *stubEnv) ReleaseSyncXID(environment.ChanID, environment.ConnID, protocol.XId) {}

func newConn(t *testing.T, envReg *environment.Registry, envID environment.ID, auxID protocol.AuxId) *conn.Conn {
	t.Helper()

	c := conn.New(conn.Config{
		AuxID:         auxID,
		LocalVersions: protocol.BitmapOf(protocol.Version12),
		Transport:     &transporttest.Pipe{},
		EnvRegistry:   envReg,
		EnvID:         envID,
	})
	require.NoError(t, c.Open())
	return c
}

func TestAddConnRefusesAuxiliaryBeforePrimary(t *testing.T) {
	envReg := environment.NewRegistry()
	id := envReg.Register(&stubEnv{})

	ch := channel.New(envReg, id, 1)
	aux := newConn(t, envReg, id, 1)

	err := ch.AddConn(1, aux)
	assert.Error(t, err)
}

func TestAuxIDExhaustion(t *testing.T) {
	envReg := environment.NewRegistry()
	id := envReg.Register(&stubEnv{})

	ch := channel.New(envReg, id, 1)
	primary := newConn(t, envReg, id, protocol.Primary)
	require.NoError(t, ch.AddConn(protocol.Primary, primary))
	ch.NotifyEstablished(protocol.Version12)

	for i := 0; i < int(protocol.MaxAuxId); i++ {
		auxID, err := ch.NextAuxID()
		require.NoError(t, err)
		require.NoError(t, ch.AddConn(auxID, newConn(t, envReg, id, auxID)))
	}

	_, err := ch.NextAuxID()
	assert.ErrorIs(t, err, wire.ErrChanExhausted)
}

func TestCloseCascadesToAuxiliaries(t *testing.T) {
	envReg := environment.NewRegistry()
	env := &stubEnv{}
	id := envReg.Register(env)

	ch := channel.New(envReg, id, 7)
	primary := newConn(t, envReg, id, protocol.Primary)
	require.NoError(t, ch.AddConn(protocol.Primary, primary))
	ch.NotifyEstablished(protocol.Version12)

	var auxIDs []protocol.AuxId
	for i := 0; i < 3; i++ {
		auxID, err := ch.NextAuxID()
		require.NoError(t, err)
		require.NoError(t, ch.AddConn(auxID, newConn(t, envReg, id, auxID)))
		auxIDs = append(auxIDs, auxID)
	}
	require.Equal(t, 4, ch.Len())

	ch.NotifyClosed(protocol.Primary)

	assert.Len(t, env.closed, 4)
	assert.Equal(t, 0, ch.Len())
}

// TestMetricsObserveEstablishedAndClosed checks that a Chan with
// SetMetrics attached reports channel-level establishment and closure
// through the shared Collectors, at the same points it upcalls its
// Environment.
func TestMetricsObserveEstablishedAndClosed(t *testing.T) {
	envReg := environment.NewRegistry()
	env := &stubEnv{}
	id := envReg.Register(env)

	ch := channel.New(envReg, id, 9)
	m := metrics.NewCollectors()
	ch.SetMetrics(m)

	primary := newConn(t, envReg, id, protocol.Primary)
	require.NoError(t, ch.AddConn(protocol.Primary, primary))
	ch.NotifyEstablished(protocol.Version12)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ChannelsEstablished))

	ch.NotifyClosed(protocol.Primary)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ChannelsClosed))
}
