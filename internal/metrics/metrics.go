// Package metrics exposes game outcomes as prometheus metrics.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/tatianab/monty-hall/internal/models"
)

const namespace = "montyhall"

// Collector counts simulated trials and interactive games.
type Collector struct {
	trials  *prometheus.CounterVec
	batches *prometheus.CounterVec
	winRate *prometheus.GaugeVec
	games   *prometheus.CounterVec
}

// NewCollector creates the collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		trials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "trials_total",
				Help:      "Simulated trials by host mode, strategy and outcome",
			},
			[]string{"mode", "strategy", "outcome"},
		),
		batches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batches_total",
				Help:      "Completed simulation batches",
			},
			[]string{"mode", "strategy"},
		),
		winRate: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "win_rate",
				Help:      "Win rate of the last batch, early reveals excluded",
			},
			[]string{"mode", "strategy"},
		),
		games: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "games_total",
				Help:      "Interactive games by host mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
	}
	for _, col := range []prometheus.Collector{c.trials, c.batches, c.winRate, c.games} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return c, nil
}

// RecordBatch adds a finished batch. It satisfies engine.Observer.
func (c *Collector) RecordBatch(mode models.HostMode, strategy models.Strategy, t models.Tally) {
	m, s := mode.String(), strategy.String()
	c.trials.WithLabelValues(m, s, models.Win.String()).Add(float64(t.Wins))
	c.trials.WithLabelValues(m, s, models.Loss.String()).Add(float64(t.Losses))
	c.trials.WithLabelValues(m, s, models.EarlyReveal.String()).Add(float64(t.EarlyReveals))
	c.batches.WithLabelValues(m, s).Inc()
	c.winRate.WithLabelValues(m, s).Set(t.WinRate())
}

// RecordGame counts one interactive game.
func (c *Collector) RecordGame(mode models.HostMode, o models.Outcome) {
	c.games.WithLabelValues(mode.String(), o.String()).Inc()
}

// WriteText writes everything g gathers in the prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
