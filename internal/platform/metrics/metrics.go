package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the application.
type Metrics struct {
	TokensIssued       prometheus.Counter
	TokenVerifications *prometheus.CounterVec
	UsersRegistered    prometheus.Counter
	BiodatasCreated    prometheus.Counter
	FavouritesCreated  prometheus.Counter
	RequestDuration    *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TokensIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shaadi_tokens_issued_total",
			Help: "Total number of identity tokens issued",
		}),
		TokenVerifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shaadi_token_verifications_total",
			Help: "Token verification attempts by result",
		}, []string{"result"}),
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shaadi_users_registered_total",
			Help: "Total number of users registered",
		}),
		BiodatasCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shaadi_biodatas_created_total",
			Help: "Total number of biodata records created",
		}),
		FavouritesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shaadi_favourites_created_total",
			Help: "Total number of favourite records created",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shaadi_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}
