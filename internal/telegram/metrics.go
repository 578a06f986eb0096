package telegram

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	updatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Processed webhook updates by kind.",
	}, []string{"kind"})

	routeErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_route_errors_total",
		Help: "Update handling errors by kind.",
	}, []string{"kind"})

	activeFlowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_flow_messages_total",
		Help: "Messages consumed by an active flow, by flow kind.",
	}, []string{"flow"})
)
