package bridge

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kochabx/jwekit/errors"
)

const (
	opKeyPair = "keypair"
	opEncrypt = "encrypt"
	opDecrypt = "decrypt"

	resultOK = "ok"
)

// Metrics counts bridge operations by outcome
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics registers the bridge collectors with reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jwekit",
			Subsystem: "bridge",
			Name:      "operations_total",
			Help:      "Bridge operations by operation and result reason.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jwekit",
			Subsystem: "bridge",
			Name:      "operation_duration_seconds",
			Help:      "Bridge operation latency.",
			Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025},
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}

	result := resultOK
	if err != nil {
		result = errors.Reason(err)
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
