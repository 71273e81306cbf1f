package world

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// worldMetrics — Prometheus-метрики симуляции.
// Регистрируются один раз на процесс: несколько миров (например, в тестах)
// разделяют общие счётчики.
type worldMetrics struct {
	ticks      prometheus.Counter
	broken     prometheus.Counter
	explosions prometheus.Counter
	score      prometheus.Gauge
}

var (
	metricsOnce    sync.Once
	metricsGlobals *worldMetrics
)

func getWorldMetrics() *worldMetrics {
	metricsOnce.Do(func() {
		metricsGlobals = &worldMetrics{
			ticks: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "world",
				Name:      "ticks_total",
				Help:      "Общее число тиков симуляции.",
			}),
			broken: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "world",
				Name:      "tiles_broken_total",
				Help:      "Общее число разрушенных тайлов.",
			}),
			explosions: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "world",
				Name:      "explosions_total",
				Help:      "Общее число состоявшихся взрывов.",
			}),
			score: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "world",
				Name:      "score",
				Help:      "Текущие очки забега.",
			}),
		}
		prometheus.MustRegister(
			metricsGlobals.ticks,
			metricsGlobals.broken,
			metricsGlobals.explosions,
			metricsGlobals.score,
		)
	})
	return metricsGlobals
}
