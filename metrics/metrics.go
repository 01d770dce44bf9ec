// Package metrics exposes the Prometheus collectors conn and channel
// update at the same points they fire Environment upcalls. No collector
// is ever touched while a Conn/Chan mutex is held.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/netrack/ofcore/protocol"
)

// Collectors groups every metric this module exports. Register adds
// them all to a prometheus.Registerer in one call; the zero value is
// not usable, construct with NewCollectors.
type Collectors struct {
	MessagesSent     *prometheus.CounterVec
	MessagesReceived *prometheus.CounterVec
	CongestionTotal  prometheus.Counter
	ChannelsEstablished prometheus.Counter
	ChannelsClosed      prometheus.Counter
	PendingTransactions prometheus.Gauge
}

// NewCollectors builds a fresh, unregistered Collectors set.
func NewCollectors() *Collectors {
	return &Collectors{
		MessagesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ofcore",
			Name:      "messages_sent_total",
			Help:      "OpenFlow messages sent, by negotiated wire version.",
		}, []string{"version"}),

		MessagesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ofcore",
			Name:      "messages_received_total",
			Help:      "OpenFlow messages received, by negotiated wire version.",
		}, []string{"version"}),

		CongestionTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ofcore",
			Name:      "congestion_episodes_total",
			Help:      "Send-path backpressure episodes across all connections.",
		}),

		ChannelsEstablished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ofcore",
			Name:      "channels_established_total",
			Help:      "Channels whose primary connection completed negotiation.",
		}),

		ChannelsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ofcore",
			Name:      "channels_closed_total",
			Help:      "Channels whose primary connection has closed.",
		}),

		PendingTransactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ofcore",
			Name:      "pending_sync_transactions",
			Help:      "Sync transaction ids currently awaiting a reply.",
		}),
	}
}

// Register adds every collector to reg.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		c.MessagesSent,
		c.MessagesReceived,
		c.CongestionTotal,
		c.ChannelsEstablished,
		c.ChannelsClosed,
		c.PendingTransactions,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// ObserveSend increments the sent-message counter for version.
func (c *Collectors) ObserveSend(version protocol.Version) {
	c.MessagesSent.WithLabelValues(version.String()).Inc()
}

// ObserveRecv increments the received-message counter for version.
func (c *Collectors) ObserveRecv(version protocol.Version) {
	c.MessagesReceived.WithLabelValues(version.String()).Inc()
}

// ObserveCongestion records one backpressure episode.
func (c *Collectors) ObserveCongestion() {
	c.CongestionTotal.Inc()
}

// ObserveEstablished records a channel reaching Established.
func (c *Collectors) ObserveEstablished() {
	c.ChannelsEstablished.Inc()
}

// ObserveClosed records a channel's primary closing.
func (c *Collectors) ObserveClosed() {
	c.ChannelsClosed.Inc()
}

// SetPendingTransactions reports the current sync-transaction occupancy.
func (c *Collectors) SetPendingTransactions(n int) {
	c.PendingTransactions.Set(float64(n))
}
