package texture

import (
	"image"
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Rasterize renders the grain layers into a size x size grayscale tile.
//
// Each layer is desaturated fractal noise (fBm over OpenSimplex, one generator
// per seed) painted over the previous layers with the layer's opacity. The
// noise is sampled on a 4D torus so the tile repeats without seams.
func Rasterize(g GrainTexture, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	if size <= 0 {
		return img
	}

	gray := make([]float64, size*size)
	alpha := make([]float64, size*size)

	for _, layer := range g.Layers {
		noise := opensimplex.NewNormalized(int64(layer.Seed))
		a := clamp01(layer.Opacity)
		if a == 0 {
			continue
		}
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				v := tileableFBM(noise, x, y, size, layer.BaseFrequency, layer.OctaveCount)
				i := y*size + x
				// Porter-Duff "over" onto what is already there
				outA := a + alpha[i]*(1-a)
				if outA > 0 {
					gray[i] = (v*a + gray[i]*alpha[i]*(1-a)) / outA
				}
				alpha[i] = outA
			}
		}
	}

	for i := range gray {
		img.Pix[i*4+0] = uint8(gray[i] * 255)
		img.Pix[i*4+1] = uint8(gray[i] * 255)
		img.Pix[i*4+2] = uint8(gray[i] * 255)
		img.Pix[i*4+3] = uint8(alpha[i] * 255)
	}
	return img
}

// tileableFBM sums octaves of noise sampled on a torus of circumference size.
// Frequency doubles and amplitude halves per octave; result is in [0, 1].
func tileableFBM(noise opensimplex.Noise, x, y, size int, frequency float64, octaves int) float64 {
	ax := 2 * math.Pi * float64(x) / float64(size)
	ay := 2 * math.Pi * float64(y) / float64(size)
	cx, sx := math.Cos(ax), math.Sin(ax)
	cy, sy := math.Cos(ay), math.Sin(ay)

	var total, amplitude, maxValue float64 = 0, 1, 0
	for o := 0; o < octaves; o++ {
		// Radius such that one lap of the torus spans size*frequency cycles
		r := float64(size) * frequency / (2 * math.Pi)
		total += noise.Eval4(r*cx, r*sx, r*cy, r*sy) * amplitude
		maxValue += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	if maxValue == 0 {
		return 0
	}
	return clamp01(total / maxValue)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// maxTiles bounds the memoized tiles. The click level cycles through
// MaxLevel+1 patterns, so the default configuration never evicts.
const maxTiles = 32

// Cache memoizes rasterized grain tiles by texture key, so each pattern is
// rasterized at most once while it stays cached.
type Cache struct {
	size   int
	limit  int
	key    string
	tiles  map[string]*image.NRGBA
	order  []string // Insertion order, oldest first
	builds int
}

// NewCache creates a cache producing size x size tiles.
func NewCache(size int) *Cache {
	return &Cache{size: size, limit: maxTiles, tiles: make(map[string]*image.NRGBA)}
}

// Get returns the tile for g and whether this call rasterized it.
// Returning to a pattern seen before hands back the same image.
func (c *Cache) Get(g GrainTexture) (*image.NRGBA, bool) {
	key := g.Key()
	c.key = key
	if img, ok := c.tiles[key]; ok {
		return img, false
	}

	img := Rasterize(g, c.size)
	if len(c.order) >= c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.tiles, oldest)
	}
	c.tiles[key] = img
	c.order = append(c.order, key)
	c.builds++
	return img, true
}

// Builds returns how many times a tile has been rasterized.
func (c *Cache) Builds() int {
	return c.builds
}

// Len returns the number of memoized tiles.
func (c *Cache) Len() int {
	return len(c.tiles)
}

// Key returns the key of the most recently requested tile.
func (c *Cache) Key() string {
	return c.key
}
