// Command dcpsim runs a PROFINET DCP responder against a Linux network
// interface, exposing operator-facing metrics and logs. It wires
// identity+dispatch+scheduler behind the cooperative handle_periodic
// boundary of spec §5.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/soypat/pndcp/examples/linuxraw"
	"github.com/soypat/pndcp/identity"
	"github.com/soypat/pndcp/responder"
)

var (
	ifaceName  string
	metricsBnd string
	macHex     string
	stationNm  string
	vendorNm   string
)

var rootCmd = &cobra.Command{
	Use:   "dcpsim",
	Short: "Runs a PROFINET DCP responder on a network interface",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&ifaceName, "iface", "eth0", "network interface to bind the raw DCP socket to")
	rootCmd.Flags().StringVar(&metricsBnd, "metrics-addr", ":9991", "address to serve /metrics on")
	rootCmd.Flags().StringVar(&macHex, "mac", "00:00:23:53:4e:fe", "device MAC address, colon separated hex")
	rootCmd.Flags().StringVar(&stationNm, "station-name", "plcxb1d0ed", "initial station name")
	rootCmd.Flags().StringVar(&vendorNm, "vendor", "S7-1200", "initial device vendor string")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("dcpsim exited with error", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mac, err := parseMAC(macHex)
	if err != nil {
		return fmt.Errorf("dcpsim: %w", err)
	}
	id := identity.New(mac)
	if err := id.SetName([]byte(stationNm)); err != nil {
		return fmt.Errorf("dcpsim: station name: %w", err)
	}
	if err := id.SetVendor([]byte(vendorNm)); err != nil {
		return fmt.Errorf("dcpsim: vendor: %w", err)
	}

	tr, err := linuxraw.Open(ifaceName)
	if err != nil {
		return fmt.Errorf("dcpsim: open %s: %w", ifaceName, err)
	}
	defer tr.Close()

	metrics := newMetrics()
	prometheus.MustRegister(metrics.identify, metrics.get, metrics.set, metrics.sent, metrics.queueFull)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(metricsBnd, mux); err != nil {
			log.Error("metrics server stopped", slog.Any("err", err))
		}
	}()

	r := responder.New(&id, tr, log)
	r.Hooks = responder.Hooks{
		OnIdentify:     metrics.identify.Inc,
		OnGet:          metrics.get.Inc,
		OnSet:          metrics.set.Inc,
		OnResponseSent: metrics.sent.Inc,
		OnQueueFull:    metrics.queueFull.Inc,
	}
	log.Info("dcpsim ready", slog.String("iface", ifaceName), slog.String("mac", macHex), slog.String("metrics_addr", metricsBnd))

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	start := time.Now()
	for range ticker.C {
		r.HandlePeriodic(uint64(time.Since(start).Milliseconds()))
	}
	return nil
}

func parseMAC(s string) ([6]byte, error) {
	var mac [6]byte
	n, err := fmt.Sscanf(s, "%02x:%02x:%02x:%02x:%02x:%02x",
		&mac[0], &mac[1], &mac[2], &mac[3], &mac[4], &mac[5])
	if err != nil || n != 6 {
		return mac, fmt.Errorf("invalid MAC %q", s)
	}
	return mac, nil
}

type metrics struct {
	identify  prometheus.Counter
	get       prometheus.Counter
	set       prometheus.Counter
	sent      prometheus.Counter
	queueFull prometheus.Counter
}

func newMetrics() *metrics {
	return &metrics{
		identify: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dcp_identify_requests_total",
			Help: "Number of DCP Identify requests received.",
		}),
		get: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dcp_get_requests_total",
			Help: "Number of DCP Get requests received.",
		}),
		set: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dcp_set_requests_total",
			Help: "Number of DCP Set requests received.",
		}),
		sent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dcp_responses_sent_total",
			Help: "Number of DCP responses enqueued for transmission.",
		}),
		queueFull: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dcp_responses_dropped_queue_full_total",
			Help: "Number of DCP responses dropped because the outgoing queue was full.",
		}),
	}
}
