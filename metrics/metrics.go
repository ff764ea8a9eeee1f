// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts API requests by route and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sigil",
		Name:      "http_requests_total",
		Help:      "API requests by route and status code.",
	}, []string{"route", "status"})

	// CheckIns counts accepted check-ins by weight.
	CheckIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sigil",
		Name:      "check_ins_total",
		Help:      "Accepted daily check-ins by weight.",
	}, []string{"weight"})

	// DaysSettled counts settlement outcomes by status.
	DaysSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sigil",
		Name:      "days_settled_total",
		Help:      "Settlement attempts by outcome.",
	}, []string{"status"})

	// RewardsPaid tracks lamports dispatched to holders.
	RewardsPaid = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sigil",
		Name:      "rewards_paid_lamports_total",
		Help:      "Total lamports dispatched as check-in rewards.",
	})

	// Broadcasts counts social broadcasts by platform and outcome.
	Broadcasts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sigil",
		Name:      "broadcasts_total",
		Help:      "Social platform posts by platform and outcome.",
	}, []string{"platform", "outcome"})
)
