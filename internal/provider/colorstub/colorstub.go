// Package colorstub implements an offline CandidateProvider on plain color
// clustering in LAB space. It stands in for a neural segmentation model in
// tests, the CLI harness and development machines without model weights: the
// candidates it produces are rough, which is exactly what the refinement
// pipeline is built to handle.
package colorstub

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/balamernstackdev/latest-paint-visualizer/internal/segment"
	"github.com/balamernstackdev/latest-paint-visualizer/pkg/geometry"
)

// defaultTolerances are LAB distances for the three granularity levels,
// most-granular first.
var defaultTolerances = [3]float64{0.12, 0.22, 0.35}

// Provider grows three candidate masks of increasing tolerance around the
// prompt location.
type Provider struct {
	width  int
	height int
	lab    []colorful.Color // row-major, one per pixel

	// Tolerances may be overridden before SetImage for tests that need
	// candidates of a specific looseness.
	Tolerances [3]float64
}

// New returns a provider with the default granularity tolerances.
func New() *Provider {
	return &Provider{Tolerances: defaultTolerances}
}

// SetImage converts the image to LAB once; Predict is then a pure distance
// scan per candidate.
func (p *Provider) SetImage(img image.Image) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return fmt.Errorf("colorstub: empty image %dx%d", w, h)
	}
	p.width, p.height = w, h
	p.lab = make([]colorful.Color, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, _ := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
			p.lab[y*w+x] = c
		}
	}
	return nil
}

// Predict grows one candidate per tolerance level around the prompt. Box
// prompts are seeded at the box center and restricted to the box; point
// prompts grow from every positive point.
func (p *Provider) Predict(points []geometry.PointInt, labels []int, box *geometry.RectInt) ([]*segment.Mask, []float64, error) {
	if p.lab == nil {
		return nil, nil, fmt.Errorf("colorstub: no image set")
	}

	var seeds []geometry.PointInt
	switch {
	case box != nil:
		seeds = []geometry.PointInt{box.Center().Clamp(p.width, p.height)}
	case len(points) > 0:
		for i, pt := range points {
			if i < len(labels) && labels[i] != 1 {
				continue
			}
			seeds = append(seeds, pt.Clamp(p.width, p.height))
		}
	}
	if len(seeds) == 0 {
		return nil, nil, fmt.Errorf("colorstub: prompt has no positive location")
	}

	masks := make([]*segment.Mask, 3)
	scores := make([]float64, 3)
	for level := 0; level < 3; level++ {
		masks[level] = p.grow(seeds, box, p.Tolerances[level])
		scores[level] = 0.95 - 0.15*float64(level)
	}
	return masks, scores, nil
}

func (p *Provider) grow(seeds []geometry.PointInt, box *geometry.RectInt, tol float64) *segment.Mask {
	seedColors := make([]colorful.Color, len(seeds))
	for i, s := range seeds {
		seedColors[i] = p.lab[s.Y*p.width+s.X]
	}

	x1, y1, x2, y2 := 0, 0, p.width, p.height
	if box != nil {
		x1, y1 = max(0, box.X1), max(0, box.Y1)
		x2, y2 = min(p.width, box.X2), min(p.height, box.Y2)
	}

	m := segment.NewMask(p.width, p.height)
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			c := p.lab[y*p.width+x]
			for _, s := range seedColors {
				if c.DistanceLab(s) < tol {
					m.Set(x, y, true)
					break
				}
			}
		}
	}
	return m
}
