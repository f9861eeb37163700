package metric

import "github.com/prometheus/client_golang/prometheus"

// Recorder counts menu interactions on its own registry.
type Recorder struct {
	registry   *prometheus.Registry
	dispatches *Counter
	relays     *Counter
	reloads    *Counter
	keys       *Gauge
}

// NewRecorder registers the menu counters on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	return &Recorder{
		registry:   reg,
		dispatches: NewCounterWithRegistry(reg, "key_dispatch_total", "Root key dispatches by outcome.", "outcome"),
		relays:     NewCounterWithRegistry(reg, "relay_events_total", "Item events relayed to the consumer by kind.", "event"),
		reloads:    NewCounterWithRegistry(reg, "definition_reloads_total", "Menu definition reloads by result.", "result"),
		keys:       NewGaugeWithRegistry(reg, "state_keys", "Open submenus and selected items in the shared store.", "kind"),
	}
}

// Registry exposes the registry for serving and tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) KeyDispatched(handled bool) {
	outcome := "ignored"
	if handled {
		outcome = "handled"
	}
	r.dispatches.Increment(outcome)
}

func (r *Recorder) Relayed(event string) {
	r.relays.Increment(event)
}

func (r *Recorder) Reloaded(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.reloads.Increment(result)
}

// StateChanged mirrors the size of the store's open and selected keys.
func (r *Recorder) StateChanged(open, selected int) {
	r.keys.Set(float64(open), "open")
	r.keys.Set(float64(selected), "selected")
}
