package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlStrip is the raygui strip along the bottom-left edge.
type ControlStrip struct {
	renderer *Renderer
	legend   string
}

// ControlState is the strip's input and output for one frame.
type ControlState struct {
	ReducedMotion bool
	ShowState     bool
	ShowPerf      bool
}

// NewControlStrip creates a control strip whose legend lists the overlays
// in reg.
func NewControlStrip(reg *OverlayRegistry) *ControlStrip {
	return &ControlStrip{renderer: NewRenderer(), legend: Legend(reg.All())}
}

// Bounds returns the strip rectangle, so pointer input over it is not
// treated as a background click.
func (c *ControlStrip) Bounds(screenH int32) rl.Rectangle {
	t := c.renderer.Theme
	return rl.Rectangle{
		X:      float32(t.Margin),
		Y:      float32(screenH - t.Margin - 64),
		Width:  680,
		Height: 64,
	}
}

// Draw renders the strip and returns the state after user edits.
func (c *ControlStrip) Draw(state ControlState, screenH int32) ControlState {
	b := c.Bounds(screenH)
	t := c.renderer.Theme
	c.renderer.DrawPanel(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))

	x := b.X + float32(t.Padding)
	y := b.Y + float32(t.Padding)
	box := float32(14)

	state.ReducedMotion = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: box, Height: box}, "Reduced motion", state.ReducedMotion)
	state.ShowState = gui.CheckBox(rl.Rectangle{X: x + 150, Y: y, Width: box, Height: box}, "State", state.ShowState)
	state.ShowPerf = gui.CheckBox(rl.Rectangle{X: x + 240, Y: y, Width: box, Height: box}, "Timing", state.ShowPerf)

	rl.DrawText(c.legend, int32(x), int32(y+box+12), t.FontSize-2, t.LabelColor)
	return state
}
