package keypad

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	keyPressesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keypad_key_presses_total",
			Help: "Total number of applied key presses by key kind",
		},
		[]string{"kind"},
	)

	sessionsOpenedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keypad_sessions_opened_total",
			Help: "Total number of opened keypad sessions",
		},
	)
)
