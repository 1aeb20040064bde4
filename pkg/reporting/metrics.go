package reporting

import (
	"context"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes fuzzer progress as Prometheus gauges/counters. It
// adapts the chaos monitoring collector's ticker-driven poll-and-store
// shape into a push model: the fuzz loop calls ObserveRound once per
// instance instead of the collector polling an external source.
type Metrics struct {
	registry       *prometheus.Registry
	instancesTotal prometheus.Counter
	problemsTotal  prometheus.Counter
	roundsWithBugs prometheus.Counter
	server         *http.Server
}

// NewMetrics builds a Metrics instance registered against a private
// registry (never the global default, so multiple fuzz runs in one
// process don't collide).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		instancesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fazer_instances_tested_total",
			Help: "Total number of generated instances evaluated by the oracle.",
		}),
		problemsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fazer_problems_found_total",
			Help: "Total number of classified problems found across all instances.",
		}),
		roundsWithBugs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fazer_buggy_instances_total",
			Help: "Total number of instances that produced at least one problem.",
		}),
	}
	reg.MustRegister(m.instancesTotal, m.problemsTotal, m.roundsWithBugs)
	return m
}

// ObserveRound records the outcome of one fuzz round.
func (m *Metrics) ObserveRound(numProblems int) {
	m.instancesTotal.Inc()
	if numProblems > 0 {
		m.roundsWithBugs.Inc()
		m.problemsTotal.Add(float64(numProblems))
	}
}

// Serve starts an HTTP server exposing /metrics on addr, returning
// immediately; call Shutdown to stop it.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	m.server = &http.Server{Addr: addr, Handler: mux}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	go m.server.Serve(ln)
	return nil
}

// Shutdown stops the metrics HTTP server, if one was started.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}
	return m.server.Shutdown(ctx)
}
