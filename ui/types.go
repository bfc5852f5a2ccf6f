// Package ui provides a descriptor-driven debug UI for the backdrop.
// Panels are described by metadata and rendered by a themed Renderer, so a
// new readout is a new descriptor rather than new drawing code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text
	WidgetBar                           // Progress bar [0, 1]
	WidgetColorSwatch                   // Color preview square
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID          string
	Label       string
	Widget      WidgetType
	Visible     func(any) bool     // nil = always visible
	Getter      func(any) float32  // For bars
	TextGetter  func(any) string   // For text
	ColorGetter func(any) rl.Color // For swatches
}

// SectionDescriptor groups fields under a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	ID       string
	Title    string
	Sections []SectionDescriptor
	Width    int32
	Anchor   PanelAnchor
}

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	TitleColor     rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	Margin         int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns a muted light theme that sits on the paper background.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 250, G: 246, B: 240, A: 230},
		PanelBorder:    rl.Color{R: 200, G: 190, B: 175, A: 255},
		TitleColor:     rl.Color{R: 26, G: 26, B: 26, A: 255},
		SectionHeader:  rl.Color{R: 150, G: 110, B: 70, A: 255},
		LabelColor:     rl.Color{R: 90, G: 85, B: 80, A: 255},
		ValueColor:     rl.Color{R: 40, G: 38, B: 36, A: 255},
		BarBg:          rl.Color{R: 225, G: 218, B: 208, A: 255},
		BarFill:        rl.Color{R: 210, G: 185, B: 155, A: 255},
		Padding:        10,
		Margin:         12,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 13,
	}
}

// PanelHeight returns the height a panel needs for data.
func (t Theme) PanelHeight(p PanelDescriptor, data any) int32 {
	h := t.Padding * 2
	if p.Title != "" {
		h += t.LineHeight + 4
	}
	for _, s := range p.Sections {
		if s.Visible != nil && !s.Visible(data) {
			continue
		}
		if s.Title != "" {
			h += t.LineHeight
		}
		for _, f := range s.Fields {
			if f.Visible != nil && !f.Visible(data) {
				continue
			}
			h += t.fieldHeight(f)
		}
		h += 4
	}
	return h
}

func (t Theme) fieldHeight(f FieldDescriptor) int32 {
	switch f.Widget {
	case WidgetBar:
		return t.LineHeight + 2
	case WidgetSpacer:
		return 6
	}
	return t.LineHeight
}

// PanelOrigin returns the top-left corner of a panel of the given size.
func (t Theme) PanelOrigin(anchor PanelAnchor, width, height, screenW, screenH int32) (int32, int32) {
	switch anchor {
	case AnchorTopRight:
		return screenW - width - t.Margin, t.Margin
	case AnchorBottomLeft:
		return t.Margin, screenH - height - t.Margin
	case AnchorBottomRight:
		return screenW - width - t.Margin, screenH - height - t.Margin
	}
	return t.Margin, t.Margin
}
