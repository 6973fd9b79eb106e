package bridge

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sethgrid/catflip/internal/game"
)

// Metrics uses its own registry so several servers (and tests) can coexist
// in one process.
type Metrics struct {
	registry *prometheus.Registry

	connections prometheus.Gauge
	actions     *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	rounds      prometheus.Counter
	deaths      prometheus.Counter
	sales       prometheus.Counter
	salePrice   prometheus.Histogram
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		connections: f.NewGauge(prometheus.GaugeOpts{
			Name: "catflip_connections",
			Help: "Open websocket sessions.",
		}),
		actions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catflip_actions_total",
			Help: "Accepted care actions and item uses, by action or item id.",
		}, []string{"action"}),
		rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catflip_rejections_total",
			Help: "Rejected commands, partitioned by reason.",
		}, []string{"reason"}),
		rounds: f.NewCounter(prometheus.CounterOpts{
			Name: "catflip_rounds_ended_total",
			Help: "Rounds that reached the selling phase.",
		}),
		deaths: f.NewCounter(prometheus.CounterOpts{
			Name: "catflip_pet_deaths_total",
			Help: "Cats that died before they could be sold.",
		}),
		sales: f.NewCounter(prometheus.CounterOpts{
			Name: "catflip_sales_total",
			Help: "Cats sold.",
		}),
		salePrice: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "catflip_sale_price",
			Help:    "Price paid per cat.",
			Buckets: []float64{150, 250, 400, 600, 800, 1000, 1500, 2000},
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// observe is subscribed to every session.
func (m *Metrics) observe(e game.Event) {
	switch e.Type {
	case game.EventRoundEnded:
		m.rounds.Inc()
	case game.EventPetDied:
		m.deaths.Inc()
	case game.EventCatSold:
		m.sales.Inc()
		m.salePrice.Observe(float64(e.Price))
	}
}
