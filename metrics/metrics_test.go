package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/netrack/ofcore/metrics"
	"github.com/netrack/ofcore/protocol"
)

func counterValue(t *testing.T, c prometheus.Collector, labels prometheus.Labels) float64 {
	t.Helper()

	ch := make(chan prometheus.Metric, 8)
	c.Collect(ch)
	close(ch)

	for m := range ch {
		var pb dto.Metric
		require.NoError(t, m.Write(&pb))

		if len(labels) == 0 {
			return pb.GetCounter().GetValue()
		}

		match := true
		for _, lp := range pb.GetLabel() {
			if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
				match = false
			}
		}
		if match {
			return pb.GetCounter().GetValue()
		}
	}

	t.Fatalf("no metric collected")
	return 0
}

func TestObserveSendIncrementsByVersion(t *testing.T) {
	c := metrics.NewCollectors()

	c.ObserveSend(protocol.Version13)
	c.ObserveSend(protocol.Version13)
	c.ObserveSend(protocol.Version10)

	assert13 := counterValue(t, c.MessagesSent, prometheus.Labels{"version": "1.3"})
	require.Equal(t, float64(2), assert13)
}

func TestObserveCongestionAccumulates(t *testing.T) {
	c := metrics.NewCollectors()

	c.ObserveCongestion()
	c.ObserveCongestion()
	c.ObserveCongestion()

	require.Equal(t, float64(3), counterValue(t, c.CongestionTotal, nil))
}

func TestRegisterAddsAllCollectors(t *testing.T) {
	c := metrics.NewCollectors()
	reg := prometheus.NewRegistry()

	require.NoError(t, c.Register(reg))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}
