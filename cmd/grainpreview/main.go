// Grain preview tool - interactive visualization of the click-driven grain
// texture with sliders for click level and per-layer frequencies.
//
// Usage: go run ./cmd/grainpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/dusk/config"
	"github.com/pthm-cable/dusk/palette"
	"github.com/pthm-cable/dusk/texture"
	"github.com/pthm-cable/dusk/tracker"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	rasterSize   = 128
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	defaults := cloneLayers(cfg.Grain.Layers)

	rl.InitWindow(windowWidth, windowHeight, "Grain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	state := tracker.State{Cap: cfg.Tracker.CapSeconds, MaxLevel: cfg.Tracker.MaxLevel}
	pal := palette.New(cfg)

	var tex rl.Texture2D
	loaded := false
	var img *image.NRGBA
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			img = texture.Rasterize(texture.Grain(state, cfg.Grain), rasterSize)
			if loaded {
				rl.UnloadTexture(tex)
			}
			rimg := rl.NewImageFromImage(img)
			tex = rl.LoadTextureFromImage(rimg)
			rl.UnloadImage(rimg)
			rl.SetTextureWrap(tex, rl.WrapRepeat)
			loaded = true
			needsRegen = false
		}
		grain := texture.Grain(state, cfg.Grain)
		bg := palette.Background(state, pal)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Preview: background color with the tiled grain on top
		rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Color{R: bg.R, G: bg.G, B: bg.B, A: 255})
		rl.DrawTexturePro(
			tex,
			rl.Rectangle{X: 0, Y: 0, Width: previewSize, Height: previewSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.Fade(rl.White, float32(grain.BaseOpacity)),
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Stats
		mean, std := alphaStats(img)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Alpha mean: %.3f  std: %.3f", mean, std), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Base opacity: %.3f  Background: %s", grain.BaseOpacity, bg.Hex()), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Grain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Click level", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newLevel := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", fmt.Sprintf("%d", state.MaxLevel),
			float32(state.ClickLevel), 0, float32(state.MaxLevel),
		)
		rl.DrawText(fmt.Sprintf("%d", state.ClickLevel), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newLevel) != state.ClickLevel {
			state.ClickLevel = int(newLevel)
			needsRegen = true
		}
		panelY += 35

		for i := range cfg.Grain.Layers {
			l := &cfg.Grain.Layers[i]

			rl.DrawText(fmt.Sprintf("Layer %d base frequency", i+1), int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			newFreq := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"0.1", "2.0",
				float32(l.BaseFrequency), 0.1, 2.0,
			)
			rl.DrawText(fmt.Sprintf("%.2f", l.BaseFrequency), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if float64(newFreq) != l.BaseFrequency {
				l.BaseFrequency = float64(newFreq)
				needsRegen = true
			}
			panelY += 30

			rl.DrawText(fmt.Sprintf("Layer %d spread", i+1), int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			newSpread := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"0", "1.0",
				float32(l.Spread), 0, 1.0,
			)
			rl.DrawText(fmt.Sprintf("%.2f", l.Spread), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if float64(newSpread) != l.Spread {
				l.Spread = float64(newSpread)
				needsRegen = true
			}
			panelY += 35
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Next Click") {
			state.ClickLevel = (state.ClickLevel + 1) % (state.MaxLevel + 1)
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			cfg.Grain.Layers = cloneLayers(defaults)
			state.ClickLevel = 0
			needsRegen = true
		}
		panelY += 45

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlText := layersYAML(cfg.Grain.Layers)
		for _, line := range strings.Split(yamlText, "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yamlText)
		}

		rl.EndDrawing()
	}

	if loaded {
		rl.UnloadTexture(tex)
	}
}

func cloneLayers(layers []config.GrainLayerConfig) []config.GrainLayerConfig {
	return append([]config.GrainLayerConfig(nil), layers...)
}

// layersYAML formats the layer frequencies as a grain config fragment.
func layersYAML(layers []config.GrainLayerConfig) string {
	var b strings.Builder
	b.WriteString("grain:\n  layers:")
	for _, l := range layers {
		fmt.Fprintf(&b, "\n    - base_frequency: %.2f\n      spread: %.2f", l.BaseFrequency, l.Spread)
	}
	return b.String()
}

// alphaStats returns the mean and standard deviation of the tile's alpha.
func alphaStats(img *image.NRGBA) (mean, std float64) {
	if img == nil || len(img.Pix) == 0 {
		return 0, 0
	}
	alpha := make([]float64, 0, len(img.Pix)/4)
	for i := 3; i < len(img.Pix); i += 4 {
		alpha = append(alpha, float64(img.Pix[i])/255)
	}
	return stat.MeanStdDev(alpha, nil)
}
