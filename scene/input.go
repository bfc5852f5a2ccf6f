package scene

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dusk/renderer"
	"github.com/pthm-cable/dusk/ui"
)

// handleInput processes keyboard and pointer input.
func (s *Scene) handleInput() {
	s.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		s.engine.Motion().Toggle()
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := s.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", on)
		}
	}

	s.handlePointer()
}

// handlePointer routes a press on the title to the long-press detector and
// any other press on the background to a ripple. Touch input arrives as
// mouse events.
func (s *Scene) handlePointer() {
	pos := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		switch {
		case s.overUI(pos):
		case rl.CheckCollisionPointRec(pos, renderer.TitleBounds(s.cfg.Screen.Title, float64(s.screenWidth), float64(s.screenHeight))):
			s.pressing = true
			s.engine.Press()
		default:
			s.engine.Click(float64(pos.X), float64(pos.Y))
		}
	}

	if s.pressing && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		s.pressing = false
		s.engine.Release()
	}
}

// overUI reports whether pos is over an interactive control.
func (s *Scene) overUI(pos rl.Vector2) bool {
	if !s.overlays.IsEnabled(ui.OverlayControls) {
		return false
	}
	return rl.CheckCollisionPointRec(pos, s.strip.Bounds(int32(s.screenHeight)))
}

// handleResize tracks the window size; every layer is sampled per frame at
// the current size, so nothing else needs resizing.
func (s *Scene) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	s.screenWidth = float32(rl.GetScreenWidth())
	s.screenHeight = float32(rl.GetScreenHeight())
}
