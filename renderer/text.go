package renderer

import (
	"fmt"
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dusk/engine"
	"github.com/pthm-cable/dusk/visitor"
)

var ink = color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 255}

const (
	titleFontSize   = 48
	messageFontSize = 22
	footerFontSize  = 12
	footerMargin    = 32
	messageFade     = 300 * time.Millisecond
)

// TitleBounds returns the screen rectangle of the centered title. Pressing
// inside it starts a long press; clicks elsewhere spawn ripples.
func TitleBounds(title string, width, height float64) rl.Rectangle {
	w := float64(rl.MeasureText(title, titleFontSize))
	pad := float64(titleFontSize) / 2
	return rl.Rectangle{
		X:      float32((width-w)/2 - pad),
		Y:      float32(height/2 - titleFontSize - pad),
		Width:  float32(w + 2*pad),
		Height: float32(titleFontSize + 2*pad),
	}
}

// TextRenderer draws the title, the hidden message and the visitor footer.
type TextRenderer struct{}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// DrawTitle draws the title and, while a press is held, its progress arc.
func (t *TextRenderer) DrawTitle(title string, hold, width, height float64) {
	if title == "" {
		return
	}
	b := TitleBounds(title, width, height)
	pad := float32(titleFontSize) / 2
	rl.DrawText(title, int32(b.X+pad), int32(b.Y+pad), titleFontSize, ink)

	if hold > 0 {
		center := rl.Vector2{X: b.X + b.Width/2, Y: b.Y + b.Height + 12}
		rl.DrawRing(center, 5, 6, -90, float32(-90+360*hold), 32, rl.Fade(ink, 0.3))
	}
}

// DrawMessage draws the revealed message centered below the title, fading
// out over its final moments.
func (t *TextRenderer) DrawMessage(m engine.Message, width, height float64) {
	if !m.Visible || m.Text == "" {
		return
	}
	alpha := 0.7
	if m.Remaining < messageFade {
		alpha *= float64(m.Remaining) / float64(messageFade)
	}
	w := rl.MeasureText(m.Text, messageFontSize)
	x := int32(width/2) - w/2
	y := int32(height/2) + messageFontSize
	rl.DrawText(m.Text, x, y, messageFontSize, rl.Fade(ink, float32(alpha)))
}

// DrawFooter draws the visitor count at the bottom of the frame.
func (t *TextRenderer) DrawFooter(visitors int, width, height float64) {
	if visitors <= 0 {
		return
	}
	text := fmt.Sprintf("You're the %s visitor", visitor.Ordinal(visitors))
	w := rl.MeasureText(text, footerFontSize)
	x := int32(width/2) - w/2
	y := int32(height) - footerMargin - footerFontSize
	rl.DrawText(text, x, y, footerFontSize, rl.Fade(ink, 0.3))
}
