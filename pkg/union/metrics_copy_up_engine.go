package union

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	copyUpEnginePrometheusMetrics sync.Once

	copyUpEngineOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stratumfs",
			Subsystem: "union",
			Name:      "copy_up_engine_operations_total",
			Help:      "Number of copy-up operations performed, partitioned by outcome.",
		},
		[]string{"outcome"})
)

type metricsCopyUpEngine struct {
	base CopyUpEngine
}

// NewMetricsCopyUpEngine creates a decorator for CopyUpEngine that
// exposes Prometheus metrics on how many copy-up operations are
// performed and how many of them fail.
func NewMetricsCopyUpEngine(base CopyUpEngine) CopyUpEngine {
	copyUpEnginePrometheusMetrics.Do(func() {
		prometheus.MustRegister(copyUpEngineOperations)
	})

	return &metricsCopyUpEngine{
		base: base,
	}
}

func (ce *metricsCopyUpEngine) observe(s Status) Status {
	if s == StatusOK {
		copyUpEngineOperations.WithLabelValues("success").Inc()
	} else {
		copyUpEngineOperations.WithLabelValues("failure").Inc()
	}
	return s
}

func (ce *metricsCopyUpEngine) CopyUp(ctx context.Context, node *Node) Status {
	return ce.observe(ce.base.CopyUp(ctx, node))
}

func (ce *metricsCopyUpEngine) CopyUpWithAccess(ctx context.Context, node *Node, access AccessMask, truncate bool) Status {
	return ce.observe(ce.base.CopyUpWithAccess(ctx, node, access, truncate))
}
