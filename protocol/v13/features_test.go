package v13_test

import (
	"testing"

	"github.com/netrack/ofcore/protocol/v12"
	"github.com/netrack/ofcore/protocol/v13"
	"github.com/netrack/ofcore/wire"
	"github.com/netrack/ofcore/wire/wiretest"
)

// TestFeaturesReplyAuxiliaryID covers the field v1.3 changed relative to
// v1.2's FeaturesReply: one of the reserved pad bytes becomes AuxiliaryID.
func TestFeaturesReplyAuxiliaryID(t *testing.T) {
	reply := &v13.FeaturesReply{
		DatapathID:   1,
		NBuffers:     256,
		NTables:      4,
		AuxiliaryID:  2,
		Capabilities: v13.CapabilityFlowStats | v13.CapabilityPortStats,
		Ports: v12.Ports{
			{PortNo: 1, Name: "eth0"},
		},
	}

	cases := []wiretest.Case{{Name: "features reply with auxiliary id", Value: reply}}

	b, err := wire.Pack(reply)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	cases[0].Bytes = b

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &v13.FeaturesReply{} }, cases)
}
