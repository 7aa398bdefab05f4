package segment

import (
	"image"
	"image/color"

	"github.com/balamernstackdev/latest-paint-visualizer/pkg/geometry"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

// fakeProvider returns canned candidates and counts SetImage calls.
type fakeProvider struct {
	masks    []*Mask
	scores   []float64
	setCalls int
}

func (f *fakeProvider) SetImage(img image.Image) error {
	f.setCalls++
	return nil
}

func (f *fakeProvider) Predict(points []geometry.PointInt, labels []int, box *geometry.RectInt) ([]*Mask, []float64, error) {
	return f.masks, f.scores, nil
}

// paintImage builds an NRGBA image from a per-pixel color function.
func paintImage(w, h int, at func(x, y int) color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, at(x, y))
		}
	}
	return img
}

// halfImage is red on the left (x < split) and blue on the right.
func halfImage(w, h, split int) *image.NRGBA {
	return paintImage(w, h, func(x, y int) color.NRGBA {
		if x < split {
			return red
		}
		return blue
	})
}

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	return paintImage(w, h, func(x, y int) color.NRGBA { return c })
}

// rectMask has x1 <= x < x2, y1 <= y < y2 set.
func rectMask(w, h, x1, y1, x2, y2 int) *Mask {
	m := NewMask(w, h)
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}

func fullMask(w, h int) *Mask {
	return rectMask(w, h, 0, 0, w, h)
}

// reachableFrom runs an 8-connected flood over the mask from start and
// reports whether every set pixel was reached.
func reachableFrom(m *Mask, start geometry.PointInt) bool {
	if !m.At(start.X, start.Y) {
		return false
	}
	seen := make([]bool, len(m.Pix))
	queue := []geometry.PointInt{start}
	seen[start.Y*m.Width+start.X] = true
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				x, y := p.X+dx, p.Y+dy
				if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
					continue
				}
				i := y*m.Width + x
				if m.Pix[i] && !seen[i] {
					seen[i] = true
					queue = append(queue, geometry.PointInt{X: x, Y: y})
				}
			}
		}
	}
	for i, set := range m.Pix {
		if set && !seen[i] {
			return false
		}
	}
	return true
}

// testSession builds a session directly for stage-level tests.
func testSession(img image.Image) *Session {
	s, err := newSession(img, 1, DefaultParams())
	if err != nil {
		panic(err)
	}
	return s
}
