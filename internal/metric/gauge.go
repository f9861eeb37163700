package metric

import "github.com/prometheus/client_golang/prometheus"

type Gauge struct {
	Name string
	Help string

	vec *prometheus.GaugeVec
}

func (g *Gauge) Set(value float64, val ...string) {
	g.vec.WithLabelValues(val...).Set(value)
}

func NewGaugeWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Gauge {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "popup_menu",
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(gauge)

	return &Gauge{
		Name: name,
		Help: help,
		vec:  gauge,
	}
}
