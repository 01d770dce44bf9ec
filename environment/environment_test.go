package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netrack/ofcore/environment"
	"github.com/netrack/ofcore/protocol"
)

type stubEnv struct{}

func (stubEnv) HandleEstablished(environment.ChanID, protocol.Version)       {}
func (stubEnv) HandleClosed(environment.ChanID, environment.ConnID)         {}
func (stubEnv) HandleConnectRefused(environment.ChanID, environment.ConnID) {}
func (stubEnv) HandleConnectFailed(environment.ChanID, environment.ConnID)  {}
func (stubEnv) HandleAcceptFailed(environment.ChanID, environment.ConnID)   {}
func (stubEnv) HandleNegotiationFailed(environment.ChanID, environment.ConnID) {
}
func (stubEnv) HandleSend(environment.ChanID, environment.ConnID) {}
func (stubEnv) HandleRecv(environment.ChanID, environment.ConnID, protocol.Msg) {
}
func (stubEnv) CongestionIndication(environment.ChanID, environment.ConnID) {}
func (stubEnv) GetAsyncXID(environment.ChanID, environment.ConnID) protocol.XId {
	return 0
}
func (stubEnv) GetSyncXID(environment.ChanID, environment.ConnID, protocol.Type, uint16) protocol.XId {
	return 0
}
func (stubEnv) ReleaseSyncXID(environment.ChanID, environment.ConnID, protocol.XId) {}

func TestRegisterLookupUnregister(t *testing.T) {
	reg := environment.NewRegistry()

	id := reg.Register(stubEnv{})
	require.Equal(t, 1, reg.Len())

	env, ok := reg.Get(id)
	require.True(t, ok)
	assert.NotNil(t, env)

	reg.Unregister(id)
	_, ok = reg.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
}

func TestUnregisterUnknownIsNoop(t *testing.T) {
	reg := environment.NewRegistry()
	reg.Unregister(999)
	assert.Equal(t, 0, reg.Len())
}

func TestDistinctIDsPerRegister(t *testing.T) {
	reg := environment.NewRegistry()

	a := reg.Register(stubEnv{})
	b := reg.Register(stubEnv{})
	assert.NotEqual(t, a, b)
}
