package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	BountyTransitionTotal      = "bounty_transitions_total"
	RedemptionRequestTotal     = "redemption_requests_total"
)

// Values of the transition label of BountyTransitionTotal.
const (
	TransitionCreate   = "create"
	TransitionClaim    = "claim"
	TransitionComplete = "complete"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		BountyTransitionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: BountyTransitionTotal,
			Help: "Count of successful bounty state transitions",
		}, []string{"transition"}),
		RedemptionRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RedemptionRequestTotal,
			Help: "Count of accepted redemption requests",
		}, []string{"wallet_type"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}
)

func IncBountyTransition(transition string) {
	PromCounters[BountyTransitionTotal].WithLabelValues(transition).Inc()
}

func IncRedemptionRequest(walletType string) {
	PromCounters[RedemptionRequestTotal].WithLabelValues(walletType).Inc()
}
