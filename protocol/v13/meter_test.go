package v13_test

import (
	"testing"

	"github.com/netrack/ofcore/protocol/v13"
	"github.com/netrack/ofcore/wire"
	"github.com/netrack/ofcore/wire/wiretest"
)

func TestMeterModRoundTrip(t *testing.T) {
	mod := &v13.MeterMod{
		Command: v13.MeterModCommandAdd,
		Flags:   v13.MeterFlagKBPS | v13.MeterFlagStats,
		MeterID: 5,
		Bands: []v13.MeterBand{
			{Type: v13.MeterBandTypeDrop, Rate: 500, BurstSize: 10},
			{Type: v13.MeterBandTypeDSCPRemark, Rate: 1000, BurstSize: 20, PrecLevel: 1},
		},
	}

	cases := []wiretest.Case{{Name: "meter-mod add, two bands", Value: mod}}

	b, err := wire.Pack(mod)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	cases[0].Bytes = b

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &v13.MeterMod{} }, cases)
}
