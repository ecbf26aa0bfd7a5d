// Package metrics accumulates training loss for reporting.
package metrics

// Window accumulates per-sample loss across one epoch.
type Window struct {
	samples int
	total   float64
	last    float64
}

// Record adds the loss of one sample to the window.
func (w *Window) Record(loss float64) {
	w.samples++
	w.total += loss
	w.last = loss
}

// Snapshot returns aggregated metrics for epoch and resets the window.
func (w *Window) Snapshot(epoch int) Snapshot {
	snap := Snapshot{
		Epoch:     epoch,
		Samples:   w.samples,
		TotalLoss: w.total,
		LastLoss:  w.last,
	}
	if w.samples > 0 {
		snap.MeanLoss = w.total / float64(w.samples)
	}

	w.samples = 0
	w.total = 0
	w.last = 0
	return snap
}

// Snapshot represents loggable metrics for one epoch.
type Snapshot struct {
	Epoch     int
	Samples   int
	TotalLoss float64 // Sum of per-sample MSE over the epoch
	MeanLoss  float64
	LastLoss  float64
}
