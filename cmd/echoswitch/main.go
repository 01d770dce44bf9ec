// Command echoswitch runs a minimal OpenFlow hub controller: it accepts
// switch connections and floods every Packet-In, the way the teacher's
// own examples/hub.go glues net.Listener to the protocol stack.
package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"github.com/netrack/ofcore/examples/echoswitch"
)

func main() {
	klog.InitFlags(nil)
	addr := flag.String("listen", ":6653", "TCP address to accept OpenFlow connections on")
	metricsAddr := flag.String("metrics", ":2112", "address to serve Prometheus metrics on")
	flag.Parse()

	srv, err := echoswitch.Listen(*addr)
	if err != nil {
		klog.ErrorS(err, "echoswitch: listen failed", "addr", *addr)
		return
	}
	defer srv.Close()

	registry := prometheus.NewRegistry()
	collectors := srv.Hub().Metrics()
	registry.MustRegister(
		collectors.MessagesSent,
		collectors.MessagesReceived,
		collectors.CongestionTotal,
		collectors.ChannelsEstablished,
		collectors.ChannelsClosed,
		collectors.PendingTransactions,
	)

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		klog.InfoS("echoswitch: serving metrics", "addr", *metricsAddr)
		if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
			klog.ErrorS(err, "echoswitch: metrics server failed")
		}
	}()

	klog.InfoS("echoswitch: listening", "addr", srv.Addr().String())
	if err := srv.Serve(); err != nil {
		klog.ErrorS(err, "echoswitch: serve failed")
	}
}
