package dispatch

import "log/slog"

// TickReport summarizes one poll cycle.
type TickReport struct {
	Selected   int
	Claimed    int
	Skipped    int
	Dispatched int
	Failed     int
	Faulted    int
}

// LogValue implements slog.LogValuer.
func (r TickReport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("selected", r.Selected),
		slog.Int("claimed", r.Claimed),
		slog.Int("skipped", r.Skipped),
		slog.Int("dispatched", r.Dispatched),
		slog.Int("failed", r.Failed),
		slog.Int("faulted", r.Faulted),
	)
}

type result int

const (
	resultDispatched result = iota
	resultFailed
	resultFaulted
)
