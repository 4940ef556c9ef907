package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors of the phone book. A nil *Metrics
// records nothing.
type Metrics struct {
	ContactsAdded       prometheus.Counter
	ContactsRemoved     prometheus.Counter
	NumbersAdded        prometheus.Counter
	NumbersRemoved      prometheus.Counter
	Sorts               *prometheus.CounterVec
	Rejections          *prometheus.CounterVec
	PersistenceFailures *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ContactsAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_contacts_added_total",
			Help: "Total number of contacts added to the book",
		}),
		ContactsRemoved: f.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_contacts_removed_total",
			Help: "Total number of contacts removed from the book",
		}),
		NumbersAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_numbers_added_total",
			Help: "Total number of phone numbers added or replaced",
		}),
		NumbersRemoved: f.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_numbers_removed_total",
			Help: "Total number of phone numbers removed",
		}),
		Sorts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "phonebook_sorts_total",
			Help: "Total number of sorts by resulting direction",
		}, []string{"direction"}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "phonebook_rejections_total",
			Help: "Total number of rejected mutations by reason",
		}, []string{"reason"}),
		PersistenceFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "phonebook_persistence_failures_total",
			Help: "Total number of failed loads and saves",
		}, []string{"operation"}),
	}
}

func (m *Metrics) ContactAdded() {
	if m != nil {
		m.ContactsAdded.Inc()
	}
}

func (m *Metrics) ContactRemoved() {
	if m != nil {
		m.ContactsRemoved.Inc()
	}
}

func (m *Metrics) NumberAdded() {
	if m != nil {
		m.NumbersAdded.Inc()
	}
}

func (m *Metrics) NumberRemoved() {
	if m != nil {
		m.NumbersRemoved.Inc()
	}
}

func (m *Metrics) Sorted(direction string) {
	if m != nil {
		m.Sorts.WithLabelValues(direction).Inc()
	}
}

func (m *Metrics) Rejected(reason string) {
	if m != nil {
		m.Rejections.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) PersistenceFailed(operation string) {
	if m != nil {
		m.PersistenceFailures.WithLabelValues(operation).Inc()
	}
}
