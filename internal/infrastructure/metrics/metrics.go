package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Values of the "result" label.
const (
	ContactsCreated = "contacts_created_total"
	ContactsUpdated = "contacts_updated_total"
	ContactsDeleted = "contacts_deleted_total"
	EventsDropped   = "events_dropped_total"
	RequestsTotal   = "app_requests_total"
	RateLimited     = "rate_limited_total"
)

func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contacts_api",
			Name:      "general_counters",
		},
		[]string{"result"})
}
