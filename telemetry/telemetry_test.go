package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/dusk/config"
	"github.com/pthm-cable/dusk/tracker"
)

func click(offset time.Duration, level int) Event {
	return NewEvent(EventClick, offset, tracker.State{ClickLevel: level, MaxLevel: 18, Cap: 180}, "#fcf8f2")
}

func TestSessionClickIntervals(t *testing.T) {
	s := NewSession()
	s.Record(click(1*time.Second, 1))
	s.Record(click(3*time.Second, 2))
	s.Record(click(7*time.Second, 3))

	sum := s.Summary(10 * time.Second)
	if sum.Clicks != 3 {
		t.Errorf("clicks = %d, want 3", sum.Clicks)
	}
	// Intervals 2s and 4s
	if math.Abs(sum.MeanIntervalSec-3) > 1e-9 {
		t.Errorf("mean interval = %v, want 3", sum.MeanIntervalSec)
	}
	if math.Abs(sum.StdIntervalSec-math.Sqrt2) > 1e-9 {
		t.Errorf("std interval = %v, want sqrt(2)", sum.StdIntervalSec)
	}
	if sum.PeakLevel != 3 || sum.FinalLevel != 3 {
		t.Errorf("peak/final level = %d/%d, want 3/3", sum.PeakLevel, sum.FinalLevel)
	}
	if sum.DurationSec != 10 {
		t.Errorf("duration = %v, want 10", sum.DurationSec)
	}
}

func TestSessionFewClicks(t *testing.T) {
	tests := []struct {
		name     string
		offsets  []time.Duration
		wantMean float64
	}{
		{"none", nil, 0},
		{"single", []time.Duration{time.Second}, 0},
		{"pair", []time.Duration{time.Second, 1500 * time.Millisecond}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			for i, off := range tt.offsets {
				s.Record(click(off, i+1))
			}
			sum := s.Summary(time.Minute)
			if math.Abs(sum.MeanIntervalSec-tt.wantMean) > 1e-9 {
				t.Errorf("mean = %v, want %v", sum.MeanIntervalSec, tt.wantMean)
			}
			if sum.StdIntervalSec != 0 || math.IsNaN(sum.StdIntervalSec) {
				t.Errorf("std = %v, want 0", sum.StdIntervalSec)
			}
		})
	}
}

func TestSessionCountsKinds(t *testing.T) {
	s := NewSession()
	st := tracker.State{Cap: 180, MaxLevel: 18}
	for _, k := range []EventKind{EventTick, EventTick, EventRippleExpired, EventLongPressReveal, EventLongPressDismiss, EventMotion} {
		s.Record(NewEvent(k, 0, st, ""))
	}
	sum := s.Summary(0)
	if sum.Ticks != 2 || sum.RipplesExpired != 1 || sum.Reveals != 1 || sum.MotionChanges != 1 {
		t.Errorf("unexpected counts: %+v", sum)
	}
}

func TestNilOutputManagerIsNoop(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	if err := om.WriteEvent(Event{}); err != nil {
		t.Errorf("WriteEvent on nil: %v", err)
	}
	if err := om.WriteSummary(Summary{}); err != nil {
		t.Errorf("WriteSummary on nil: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Errorf("WriteConfig on nil: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir on nil = %q", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteEvent(click(250*time.Millisecond, 1)); err != nil {
		t.Fatalf("WriteEvent: %v", err)
	}
	if err := om.WriteEvent(click(900*time.Millisecond, 2)); err != nil {
		t.Fatalf("WriteEvent: %v", err)
	}
	if err := om.WriteSummary(Summary{Clicks: 2, FinalColor: "#f2ebe3"}); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatalf("reading events.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("events.csv has %d lines, want header + 2 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "offset_ms,kind,") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "250,click,") {
		t.Errorf("first row = %q", lines[1])
	}

	summary, err := os.ReadFile(filepath.Join(dir, "summary.csv"))
	if err != nil {
		t.Fatalf("reading summary.csv: %v", err)
	}
	if !strings.Contains(string(summary), "#f2ebe3") {
		t.Errorf("summary.csv missing final color:\n%s", summary)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}

func TestRecorderSkipsTicksUnlessEnabled(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	r := NewRecorder(om, false, false)
	st := tracker.State{Cap: 180, MaxLevel: 18}
	r.Record(NewEvent(EventTick, time.Second, st, ""))
	r.Record(click(2*time.Second, 1))
	sum := r.Finish(3 * time.Second)
	om.Close()

	if sum.Ticks != 1 {
		t.Errorf("session ticks = %d, want 1", sum.Ticks)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "events.csv"))
	if strings.Contains(string(data), "tick") {
		t.Errorf("tick row written with log_ticks disabled:\n%s", data)
	}
}

func TestPerfCollectorStats(t *testing.T) {
	pc := NewPerfCollector(10)

	empty := pc.Stats()
	if empty.AvgFrame != 0 || empty.PhaseAvg == nil || empty.FPS() != 0 {
		t.Errorf("unexpected empty stats: %+v", empty)
	}

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseSchedule)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseDraw)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.Frames != 5 {
		t.Errorf("frames = %d, want 5", stats.Frames)
	}
	if stats.AvgFrame <= 0 || stats.MinFrame > stats.AvgFrame || stats.MaxFrame < stats.AvgFrame {
		t.Errorf("inconsistent frame stats: %+v", stats)
	}
	if stats.PhasePct[PhaseDraw] <= stats.PhasePct[PhaseSchedule] {
		t.Errorf("expected draw (%v%%) > schedule (%v%%)", stats.PhasePct[PhaseDraw], stats.PhasePct[PhaseSchedule])
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(3)
	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.EndFrame()
	}
	if got := pc.Stats().Frames; got != 3 {
		t.Errorf("frames = %d, want window size 3", got)
	}
}
