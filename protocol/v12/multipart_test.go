package v12_test

import (
	"testing"

	"github.com/netrack/ofcore/protocol/v12"
	"github.com/netrack/ofcore/wire"
	"github.com/netrack/ofcore/wire/wiretest"
)

func TestDescStatsRoundTrip(t *testing.T) {
	cases := []wiretest.Case{
		{
			Name: "desc stats",
			Value: &v12.DescStats{
				MfrDesc:   "Netrack",
				HWDesc:    "softswitch",
				SWDesc:    "1.0",
				SerialNum: "0001",
				DPDesc:    "test datapath",
			},
		},
	}

	b, err := wire.Pack(cases[0].Value)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	cases[0].Bytes = b

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &v12.DescStats{} }, cases)
}

// TestMultipartRequestMeterRoundTrip covers OFPMP_METER, one of the v1.3
// multipart families this package's MultipartType/requestBodies table
// didn't originally carry.
func TestMultipartRequestMeterRoundTrip(t *testing.T) {
	cases := []wiretest.Case{
		{
			Name: "meter stats request for meter 3",
			Value: &v12.MultipartRequest{
				Type: v12.MultipartMeter,
				Body: &v12.MeterStatsRequest{MeterID: 3},
			},
		},
	}

	b, err := wire.Pack(cases[0].Value)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	cases[0].Bytes = b

	wiretest.RunRoundTrip(t, func() wire.Unpackable { return &v12.MultipartRequest{} }, cases)
}

func TestMultipartReplyMeterConfigRoundTrip(t *testing.T) {
	reply := v12.MultipartReply{
		Type: v12.MultipartMeterConfig,
		Body: &v12.MeterConfigReply{Configs: []v12.MeterConfig{
			{
				MeterID: 1,
				Flags:   v12.MeterFlagKBPS | v12.MeterFlagBurst,
				Bands: []v12.MeterBand{
					{Type: v12.MeterBandTypeDrop, Rate: 1000, BurstSize: 100},
				},
			},
		}},
	}

	b, err := wire.Pack(&reply)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	var got v12.MultipartReply
	if err := got.Unpack(wire.NewReader(b)); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}

	gotBody, ok := got.Body.(*v12.MeterConfigReply)
	if !ok {
		t.Fatalf("unexpected body type: %#v", got.Body)
	}
	if len(gotBody.Configs) != 1 || gotBody.Configs[0].MeterID != 1 || len(gotBody.Configs[0].Bands) != 1 {
		t.Fatalf("unexpected meter config: %#v", gotBody.Configs)
	}
	if gotBody.Configs[0].Bands[0].Rate != 1000 {
		t.Fatalf("unexpected band rate: %#v", gotBody.Configs[0].Bands[0])
	}
}

func TestMultipartReplyMeterFeaturesRoundTrip(t *testing.T) {
	reply := v12.MultipartReply{
		Type: v12.MultipartMeterFeatures,
		Body: &v12.MeterFeaturesReply{MeterFeatures: v12.MeterFeatures{
			MaxMeter:     100,
			BandTypes:    1,
			Capabilities: v12.MeterFlagKBPS,
			MaxBands:     8,
			MaxColor:     1,
		}},
	}

	b, err := wire.Pack(&reply)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	var got v12.MultipartReply
	if err := got.Unpack(wire.NewReader(b)); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}

	gotBody, ok := got.Body.(*v12.MeterFeaturesReply)
	if !ok || gotBody.MaxMeter != 100 || gotBody.MaxBands != 8 {
		t.Fatalf("unexpected body: %#v", got.Body)
	}
}

func TestMultipartReplyTableFeaturesRoundTrip(t *testing.T) {
	reply := v12.MultipartReply{
		Type: v12.MultipartTableFeatures,
		Body: &v12.TableFeaturesReply{Tables: []v12.TableFeatures{
			{
				TableID:       0,
				Name:          "table0",
				MetadataMatch: 0xffffffffffffffff,
				MetadataWrite: 0xffffffffffffffff,
				MaxEntries:    1024,
				PropertiesRaw: []byte{0x00, 0x02, 0x00, 0x04},
			},
		}},
	}

	b, err := wire.Pack(&reply)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	var got v12.MultipartReply
	if err := got.Unpack(wire.NewReader(b)); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}

	gotBody, ok := got.Body.(*v12.TableFeaturesReply)
	if !ok || len(gotBody.Tables) != 1 {
		t.Fatalf("unexpected body: %#v", got.Body)
	}
	if gotBody.Tables[0].Name != "table0" || gotBody.Tables[0].MaxEntries != 1024 {
		t.Fatalf("unexpected table: %#v", gotBody.Tables[0])
	}
}

func TestMultipartReplyPortDescRoundTrip(t *testing.T) {
	reply := v12.MultipartReply{
		Type: v12.MultipartPortDesc,
		Body: &v12.PortDescStatsReply{Ports: v12.Ports{
			{PortNo: 1, Name: "eth0"},
		}},
	}

	b, err := wire.Pack(&reply)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	var got v12.MultipartReply
	if err := got.Unpack(wire.NewReader(b)); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}

	gotBody, ok := got.Body.(*v12.PortDescStatsReply)
	if !ok || len(gotBody.Ports) != 1 || gotBody.Ports[0].PortNo != 1 {
		t.Fatalf("unexpected body: %#v", got.Body)
	}
}

func TestMultipartUnpackRejectsUnknownType(t *testing.T) {
	req := v12.MultipartRequest{Type: v12.MultipartDesc, Body: &v12.DescStats{}}
	b, err := wire.Pack(&req)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	b[1] = 0xfe // not a registered MultipartType

	var got v12.MultipartRequest
	if err := got.Unpack(wire.NewReader(b)); err != wire.ErrBadKind {
		t.Fatalf("got %v, want ErrBadKind", err)
	}
}
