package telemetry

import (
	"log/slog"
	"time"
)

// Recorder fans events out to the session and the CSV output.
// Output failures are logged and never interrupt the caller.
type Recorder struct {
	out        *OutputManager
	session    *Session
	logTicks   bool
	logSummary bool
}

// NewRecorder creates a recorder. out may be nil.
func NewRecorder(out *OutputManager, logTicks, logSummary bool) *Recorder {
	return &Recorder{
		out:        out,
		session:    NewSession(),
		logTicks:   logTicks,
		logSummary: logSummary,
	}
}

// Session returns the underlying session.
func (r *Recorder) Session() *Session {
	return r.session
}

// Record folds e into the session and appends it to events.csv.
func (r *Recorder) Record(e Event) {
	r.session.Record(e)

	if e.Kind == EventTick && !r.logTicks {
		return
	}
	if err := r.out.WriteEvent(e); err != nil {
		slog.Warn("telemetry write failed", "kind", e.Kind.String(), "error", err)
	}
}

// Finish summarizes the session, logs it and writes summary.csv.
func (r *Recorder) Finish(duration time.Duration) Summary {
	sum := r.session.Summary(duration)
	if r.logSummary {
		slog.Info("session", "summary", sum)
	}
	if err := r.out.WriteSummary(sum); err != nil {
		slog.Warn("telemetry summary failed", "error", err)
	}
	return sum
}
