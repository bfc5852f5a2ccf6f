package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dusk/palette"
)

// BackgroundRenderer clears the frame to the displayed background color.
type BackgroundRenderer struct {
	last palette.RGB
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer() *BackgroundRenderer {
	return &BackgroundRenderer{}
}

// Draw fills the frame.
func (b *BackgroundRenderer) Draw(c palette.RGB) {
	b.last = c
	rl.ClearBackground(rgba(c, 1))
}

// Last returns the most recently drawn color.
func (b *BackgroundRenderer) Last() palette.RGB {
	return b.last
}
