// Package metrics exports store activity to prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/schoolhub/console/core/store"
)

const namespace = "console"

type Recorder struct {
	dispatches *prometheus.CounterVec
	sizes      *prometheus.GaugeVec
}

var _ store.Recorder = (*Recorder)(nil)

// NewRecorder registers the store metrics on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "dispatch_total",
			Help:      "Store dispatches by action kind and outcome.",
		}, []string{"action", "outcome"}),
		sizes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "collection_size",
			Help:      "Number of records per store collection.",
		}, []string{"collection"}),
	}
	for _, c := range []prometheus.Collector{r.dispatches, r.sizes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) ObserveDispatch(kind store.Kind, outcome string) {
	r.dispatches.WithLabelValues(string(kind), outcome).Inc()
}

// ObserveState sets the collection gauges from st.
func (r *Recorder) ObserveState(st store.State) {
	c := st.Counts()
	r.sizes.WithLabelValues("students").Set(float64(c.Students))
	r.sizes.WithLabelValues("teachers").Set(float64(c.Teachers))
	r.sizes.WithLabelValues("classes").Set(float64(c.Classes))
	r.sizes.WithLabelValues("parents").Set(float64(c.Parents))
	r.sizes.WithLabelValues("notifications").Set(float64(c.Notifications))
}

// Watch keeps the collection gauges in sync with s until the returned func is called.
func (r *Recorder) Watch(s *store.Store) func() {
	r.ObserveState(s.State())
	return s.Subscribe(r.ObserveState)
}
