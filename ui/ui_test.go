package ui

import (
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dusk/engine"
	"github.com/pthm-cable/dusk/tracker"
)

func TestOverlayRegistryToggle(t *testing.T) {
	r := NewOverlayRegistry()

	if len(r.EnabledOverlays()) != 0 {
		t.Fatalf("overlays enabled by default: %v", r.EnabledOverlays())
	}

	id, on, ok := r.HandleKeyPress(rl.KeyP)
	if !ok || id != OverlayPerf || !on {
		t.Errorf("HandleKeyPress(P) = %v, %v, %v", id, on, ok)
	}
	if _, _, ok := r.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key toggled an overlay")
	}

	r.SetEnabled(OverlayState, true)
	got := r.EnabledOverlays()
	if len(got) != 2 || got[0] != OverlayState || got[1] != OverlayPerf {
		t.Errorf("EnabledOverlays = %v, want registration order [state perf]", got)
	}

	if r.Toggle(OverlayPerf) {
		t.Error("second toggle should disable")
	}
	if r.Toggle("missing") {
		t.Error("unknown overlay toggled on")
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := NewOverlayRegistry()
	n := len(r.All())
	r.Register(OverlayDescriptor{ID: OverlayState, Name: "Renamed"})
	if len(r.All()) != n {
		t.Errorf("re-register grew registry to %d", len(r.All()))
	}
	if r.All()[0].Name != "Renamed" {
		t.Errorf("descriptor not replaced: %+v", r.All()[0])
	}
}

func TestPanelHeightSkipsHiddenFields(t *testing.T) {
	theme := DefaultTheme()
	idle := HUDData{Frame: engine.Composition{State: tracker.State{Cap: 180, MaxLevel: 18}}}
	holding := idle
	holding.Frame.Message.Hold = 0.5

	hIdle := theme.PanelHeight(StatePanel, idle)
	hHold := theme.PanelHeight(StatePanel, holding)
	if hHold-hIdle != theme.LineHeight+2 {
		t.Errorf("hold bar adds %d, want %d", hHold-hIdle, theme.LineHeight+2)
	}
}

func TestPanelOrigin(t *testing.T) {
	theme := DefaultTheme()
	tests := []struct {
		anchor PanelAnchor
		x, y   int32
	}{
		{AnchorTopLeft, 12, 12},
		{AnchorTopRight, 1000 - 200 - 12, 12},
		{AnchorBottomLeft, 12, 800 - 100 - 12},
		{AnchorBottomRight, 1000 - 200 - 12, 800 - 100 - 12},
	}
	for _, tt := range tests {
		x, y := theme.PanelOrigin(tt.anchor, 200, 100, 1000, 800)
		if x != tt.x || y != tt.y {
			t.Errorf("anchor %d: origin (%d, %d), want (%d, %d)", tt.anchor, x, y, tt.x, tt.y)
		}
	}
}

func TestLegendListsOverlayKeys(t *testing.T) {
	legend := Legend(NewOverlayRegistry().All())
	for _, want := range []string{"S: interaction state", "P: ", "H: ", "F11: fullscreen"} {
		if !strings.Contains(legend, want) {
			t.Errorf("legend %q missing %q", legend, want)
		}
	}
}
