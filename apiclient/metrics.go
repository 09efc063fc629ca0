package apiclient

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the transport. A nil *Metrics records nothing.
type Metrics struct {
	responses *prometheus.CounterVec
	refreshes *prometheus.CounterVec
	waiting   prometheus.Gauge
}

// NewMetrics registers the client collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		responses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "internship_client_responses_total",
				Help: "API responses received, by status class.",
			},
			[]string{"class"},
		),
		refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "internship_client_token_refreshes_total",
				Help: "Access token refresh attempts, by outcome.",
			},
			[]string{"outcome"},
		),
		waiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "internship_client_requests_awaiting_refresh",
			Help: "Requests queued behind an in-flight token refresh.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.responses, m.refreshes, m.waiting)
	}
	return m
}

func (m *Metrics) observe(status int) {
	if m == nil {
		return
	}
	m.responses.WithLabelValues(strconv.Itoa(status/100) + "xx").Inc()
}

func (m *Metrics) refreshed(err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.refreshes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) queued(delta int) {
	if m == nil || delta == 0 {
		return
	}
	m.waiting.Add(float64(delta))
}

// Refreshes returns the refresh counter for the given outcome.
func (m *Metrics) Refreshes(outcome string) prometheus.Counter {
	return m.refreshes.WithLabelValues(outcome)
}
