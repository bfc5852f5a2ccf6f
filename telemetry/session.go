package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary holds aggregated statistics for one session.
type Summary struct {
	DurationSec     float64 `csv:"duration_sec"`
	Ticks           int     `csv:"ticks"`
	Clicks          int     `csv:"clicks"`
	MeanIntervalSec float64 `csv:"mean_click_interval_sec"`
	StdIntervalSec  float64 `csv:"std_click_interval_sec"`
	PeakLevel       int     `csv:"peak_level"`
	RipplesExpired  int     `csv:"ripples_expired"`
	Reveals         int     `csv:"reveals"`
	MotionChanges   int     `csv:"motion_changes"`
	FinalElapsed    int     `csv:"final_elapsed"`
	FinalLevel      int     `csv:"final_level"`
	FinalColor      string  `csv:"final_color"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("duration_sec", s.DurationSec),
		slog.Int("ticks", s.Ticks),
		slog.Int("clicks", s.Clicks),
		slog.Float64("mean_click_interval_sec", s.MeanIntervalSec),
		slog.Float64("std_click_interval_sec", s.StdIntervalSec),
		slog.Int("peak_level", s.PeakLevel),
		slog.Int("ripples_expired", s.RipplesExpired),
		slog.Int("reveals", s.Reveals),
		slog.Int("motion_changes", s.MotionChanges),
		slog.String("final_color", s.FinalColor),
	)
}

// Session accumulates events into a Summary.
type Session struct {
	ticks         int
	clicks        int
	peakLevel     int
	ripples       int
	reveals       int
	motionChanges int

	lastClick time.Duration
	intervals []float64 // Seconds between consecutive clicks

	last Event
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Record folds one event into the session counters.
func (s *Session) Record(e Event) {
	switch e.Kind {
	case EventTick:
		s.ticks++
	case EventClick:
		if s.clicks > 0 {
			s.intervals = append(s.intervals, (e.Offset() - s.lastClick).Seconds())
		}
		s.clicks++
		s.lastClick = e.Offset()
	case EventRippleExpired:
		s.ripples++
	case EventLongPressReveal:
		s.reveals++
	case EventMotion:
		s.motionChanges++
	}
	if e.ClickLevel > s.peakLevel {
		s.peakLevel = e.ClickLevel
	}
	s.last = e
}

// Summary computes the session statistics up to duration.
func (s *Session) Summary(duration time.Duration) Summary {
	sum := Summary{
		DurationSec:    duration.Seconds(),
		Ticks:          s.ticks,
		Clicks:         s.clicks,
		PeakLevel:      s.peakLevel,
		RipplesExpired: s.ripples,
		Reveals:        s.reveals,
		MotionChanges:  s.motionChanges,
		FinalElapsed:   s.last.Elapsed,
		FinalLevel:     s.last.ClickLevel,
		FinalColor:     s.last.Color,
	}

	switch len(s.intervals) {
	case 0:
	case 1:
		sum.MeanIntervalSec = s.intervals[0]
	default:
		sum.MeanIntervalSec, sum.StdIntervalSec = stat.MeanStdDev(s.intervals, nil)
	}
	return sum
}
