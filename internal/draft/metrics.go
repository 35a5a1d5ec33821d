package draft

import "github.com/prometheus/client_golang/prometheus"

// RegisterMetrics exposes the number of live drafts as a gauge.
func RegisterMetrics(reg prometheus.Registerer, s *Store) error {
	return reg.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "gstinvoice",
		Name:      "drafts_open",
		Help:      "Invoice drafts held in memory.",
	}, func() float64 {
		return float64(s.Len())
	}))
}
