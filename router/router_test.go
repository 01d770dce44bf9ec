package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netrack/ofcore/protocol"
	"github.com/netrack/ofcore/protocol/v12"
	"github.com/netrack/ofcore/protocol/v13"
	"github.com/netrack/ofcore/router"
)

func TestHandleTypeDispatchesOnlyMatchingVersionAndType(t *testing.T) {
	r := router.New()

	var helloCount, echoCount int
	r.HandleType(protocol.Version13, v13.TypeHello, router.HandlerFunc(func(protocol.Msg) {
		helloCount++
	}))
	r.HandleType(protocol.Version12, v12.TypeHello, router.HandlerFunc(func(protocol.Msg) {
		echoCount++
	}))

	n := r.Dispatch(protocol.Msg{
		Header: protocol.Header{Version: protocol.Version13, Type: v13.TypeHello},
		Body:   &v12.Hello{},
	})

	assert.Equal(t, 1, n)
	assert.Equal(t, 1, helloCount)
	assert.Equal(t, 0, echoCount)
}

func TestCookieFilterMatchesFlowMod(t *testing.T) {
	r := router.New()

	var got uint64
	m := (&router.Matcher{}).
		Add(&router.TypeFilter{Version: protocol.Version13, Type: v13.TypeFlowMod}).
		Add(&router.CookieFilter{Cookie: 0xabc})

	r.Handle(m, router.HandlerFunc(func(msg protocol.Msg) {
		got = msg.Body.(*v13.FlowMod).Cookie
	}))

	n := r.Dispatch(protocol.Msg{
		Header: protocol.Header{Version: protocol.Version13, Type: v13.TypeFlowMod},
		Body:   &v13.FlowMod{Cookie: 0xabc},
	})
	require.Equal(t, 1, n)
	assert.Equal(t, uint64(0xabc), got)

	n = r.Dispatch(protocol.Msg{
		Header: protocol.Header{Version: protocol.Version13, Type: v13.TypeFlowMod},
		Body:   &v13.FlowMod{Cookie: 0xdef},
	})
	assert.Equal(t, 0, n)
}

func TestMultipleHandlersAllRun(t *testing.T) {
	r := router.New()

	var calls int
	handler := router.HandlerFunc(func(protocol.Msg) { calls++ })

	r.HandleType(protocol.Version13, v13.TypeEchoRequest, handler)
	r.HandleType(protocol.Version13, v13.TypeEchoRequest, handler)

	n := r.Dispatch(protocol.Msg{
		Header: protocol.Header{Version: protocol.Version13, Type: v13.TypeEchoRequest},
		Body:   &v12.EchoRequest{},
	})

	assert.Equal(t, 2, n)
	assert.Equal(t, 2, calls)
}
