package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netrack/ofcore/protocol"
	"github.com/netrack/ofcore/protocol/codec"
	"github.com/netrack/ofcore/protocol/oxm"
	"github.com/netrack/ofcore/protocol/v10"
	"github.com/netrack/ofcore/protocol/v12"
	"github.com/netrack/ofcore/protocol/v13"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		msg  protocol.Msg
	}{
		{
			name: "v1.0 EchoRequest",
			msg: protocol.Msg{
				Header: protocol.Header{Version: protocol.Version10, Type: v10.TypeEchoRequest, Xid: 7},
				Body:   &v10.EchoRequest{Data: []byte("ping")},
			},
		},
		{
			name: "v1.2 Hello",
			msg: protocol.Msg{
				Header: protocol.Header{Version: protocol.Version12, Type: v12.TypeHello, Xid: 1},
				Body:   &v12.Hello{},
			},
		},
		{
			name: "v1.3 BarrierRequest",
			msg: protocol.Msg{
				Header: protocol.Header{Version: protocol.Version13, Type: v13.TypeBarrierRequest, Xid: 42},
				Body:   &v13.BarrierRequest{},
			},
		},
		{
			name: "v1.3 PacketIn with match and data",
			msg: protocol.Msg{
				Header: protocol.Header{Version: protocol.Version13, Type: v13.TypePacketIn, Xid: 99},
				Body: &v13.PacketIn{
					BufferID: v13.NoBuffer,
					TotalLen: 4,
					Reason:   v13.PacketInReasonAction,
					TableID:  1,
					Cookie:   0xabad1dea,
					Match: oxm.Match{
						Type: oxm.MatchTypeXM,
						Fields: []oxm.XM{
							{Class: oxm.ClassOpenflowBasic, Field: oxm.FieldInPort, Value: []byte{0, 0, 0, 1}},
						},
					},
					Data: []byte{0xca, 0xfe, 0xba, 0xbe},
				},
			},
		},
		{
			name: "v1.2 MultipartRequest meter stats",
			msg: protocol.Msg{
				Header: protocol.Header{Version: protocol.Version12, Type: v12.TypeMultipartRequest, Xid: 5},
				Body: &v12.MultipartRequest{
					Type: v12.MultipartMeter,
					Body: &v12.MeterStatsRequest{MeterID: 9},
				},
			},
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			b, err := codec.Encode(c.msg)
			require.NoError(t, err)

			got, err := codec.Decode(b)
			require.NoError(t, err)

			assert.Equal(t, c.msg.Header.Version, got.Header.Version)
			assert.Equal(t, c.msg.Header.Type, got.Header.Type)
			assert.Equal(t, c.msg.Header.Xid, got.Header.Xid)
			assert.Equal(t, c.msg.Body, got.Body)
		})
	}
}

func TestDecodeUnknownVersion(t *testing.T) {
	b, err := codec.Encode(protocol.Msg{
		Header: protocol.Header{Version: protocol.Version12, Type: v12.TypeHello},
		Body:   &v12.Hello{},
	})
	require.NoError(t, err)

	b[0] = 0x09 // no registry for this wire version

	_, err = codec.Decode(b)
	assert.Error(t, err)
}

func TestDecodeUnknownType(t *testing.T) {
	b, err := codec.Encode(protocol.Msg{
		Header: protocol.Header{Version: protocol.Version12, Type: v12.TypeHello},
		Body:   &v12.Hello{},
	})
	require.NoError(t, err)

	b[1] = 0xff // not a registered v1.2 type

	_, err = codec.Decode(b)
	assert.Error(t, err)
}

func TestDecodeLengthMismatch(t *testing.T) {
	b, err := codec.Encode(protocol.Msg{
		Header: protocol.Header{Version: protocol.Version12, Type: v12.TypeHello},
		Body:   &v12.Hello{},
	})
	require.NoError(t, err)

	_, err = codec.Decode(append(b, 0x00))
	assert.Error(t, err)
}
