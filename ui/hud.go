package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dusk/engine"
	"github.com/pthm-cable/dusk/palette"
	"github.com/pthm-cable/dusk/telemetry"
)

// Legend builds the key legend shown with the controls overlay from the
// registered overlays.
func Legend(overlays []OverlayDescriptor) string {
	var b strings.Builder
	b.WriteString("Click: ripple  Hold title: message  M: reduced motion")
	for _, desc := range overlays {
		if desc.KeyLabel == "" {
			continue
		}
		fmt.Fprintf(&b, "  %s: %s", desc.KeyLabel, strings.ToLower(desc.Name))
	}
	b.WriteString("  F11: fullscreen")
	return b.String()
}

// HUDData is what the state panel reads each frame.
type HUDData struct {
	Frame engine.Composition
	Phase string // Ambient light phase
	Press string // Long-press phase
}

func hud(data any) HUDData {
	h, _ := data.(HUDData)
	return h
}

func swatch(c palette.RGB) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

// StatePanel describes the interaction state readout.
var StatePanel = PanelDescriptor{
	ID:     "state",
	Title:  "Interaction",
	Width:  260,
	Anchor: AnchorTopLeft,
	Sections: []SectionDescriptor{
		{
			ID:    "tracker",
			Title: "Tracker",
			Fields: []FieldDescriptor{
				{ID: "elapsed", Label: "Elapsed", Widget: WidgetText, TextGetter: func(d any) string {
					s := hud(d).Frame.State
					return fmt.Sprintf("%ds / %ds", s.ElapsedSeconds, s.Cap)
				}},
				{ID: "time", Label: "Time", Widget: WidgetBar, Getter: func(d any) float32 {
					return float32(hud(d).Frame.State.TimeProgress())
				}},
				{ID: "level", Label: "Level", Widget: WidgetText, TextGetter: func(d any) string {
					s := hud(d).Frame.State
					return fmt.Sprintf("%d / %d", s.ClickLevel, s.MaxLevel)
				}},
				{ID: "clicks", Label: "Clicks", Widget: WidgetBar, Getter: func(d any) float32 {
					return float32(hud(d).Frame.State.ClickProgress())
				}},
				{ID: "reduced", Label: "Reduced", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%v", hud(d).Frame.State.ReducedMotion)
				}},
			},
		},
		{
			ID:    "layers",
			Title: "Layers",
			Fields: []FieldDescriptor{
				{ID: "background", Label: "Background", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color {
					return swatch(hud(d).Frame.Background)
				}},
				{ID: "horizon", Label: "Horizon", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color {
					return swatch(hud(d).Frame.Horizon)
				}},
				{ID: "paper", Label: "Paper", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%.3f", hud(d).Frame.Paper.Opacity)
				}},
				{ID: "grain", Label: "Grain", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%.3f", hud(d).Frame.Grain.BaseOpacity)
				}},
			},
		},
		{
			ID:    "effects",
			Title: "Effects",
			Fields: []FieldDescriptor{
				{ID: "lights", Label: "Lights", Widget: WidgetText, TextGetter: func(d any) string {
					h := hud(d)
					return fmt.Sprintf("%s (%d drawn)", h.Phase, len(h.Frame.Lights))
				}},
				{ID: "ripples", Label: "Ripples", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", len(hud(d).Frame.Ripples))
				}},
				{ID: "press", Label: "Press", Widget: WidgetText, TextGetter: func(d any) string {
					return hud(d).Press
				}},
				{ID: "hold", Label: "Hold", Widget: WidgetBar, Getter: func(d any) float32 {
					return float32(hud(d).Frame.Message.Hold)
				}, Visible: func(d any) bool {
					return hud(d).Frame.Message.Hold > 0
				}},
			},
		},
	},
}

func perf(data any) telemetry.PerfStats {
	p, _ := data.(telemetry.PerfStats)
	return p
}

func phaseField(phase string) FieldDescriptor {
	return FieldDescriptor{ID: phase, Label: phase, Widget: WidgetBar, Getter: func(d any) float32 {
		return float32(perf(d).PhasePct[phase] / 100)
	}}
}

// PerfPanel describes the frame timing readout.
var PerfPanel = PanelDescriptor{
	ID:     "perf",
	Title:  "Frame Timing",
	Width:  240,
	Anchor: AnchorTopRight,
	Sections: []SectionDescriptor{
		{
			ID: "frame",
			Fields: []FieldDescriptor{
				{ID: "fps", Label: "FPS", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%.0f", perf(d).FPS())
				}},
				{ID: "avg", Label: "Avg", Widget: WidgetText, TextGetter: func(d any) string {
					p := perf(d)
					return fmt.Sprintf("%dus (max %dus)", p.AvgFrame.Microseconds(), p.MaxFrame.Microseconds())
				}},
			},
		},
		{
			ID:    "phases",
			Title: "Phases",
			Fields: []FieldDescriptor{
				phaseField(telemetry.PhaseSchedule),
				phaseField(telemetry.PhaseCompose),
				phaseField(telemetry.PhaseGrain),
				phaseField(telemetry.PhaseDraw),
			},
		},
	},
}
