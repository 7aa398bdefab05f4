package segment

import (
	"image/color"

	"gocv.io/x/gocv"

	"github.com/balamernstackdev/latest-paint-visualizer/pkg/geometry"
)

// white is the fill value for mask drawing operations.
var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Mask is a boolean pixel mask with the same dimensions as the bound image.
// Masks returned from the pipeline are owned by the caller and never mutated
// afterwards.
type Mask struct {
	Width  int
	Height int
	Pix    []bool // row-major, length Width*Height
}

// NewMask returns an empty mask of the given size.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Pix: make([]bool, width*height)}
}

// At reports whether the pixel at (x, y) is set. Out-of-bounds reads are false.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x]
}

// Set sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = v
}

// Area returns the number of set pixels.
func (m *Mask) Area() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	out := NewMask(m.Width, m.Height)
	copy(out.Pix, m.Pix)
	return out
}

// Or sets every pixel that is set in other.
func (m *Mask) Or(other *Mask) {
	for i, v := range other.Pix {
		if v {
			m.Pix[i] = true
		}
	}
}

// Bounds returns the bounding box of the set pixels. ok is false for an
// empty mask.
func (m *Mask) Bounds() (box geometry.RectInt, ok bool) {
	minX, minY := m.Width, m.Height
	maxX, maxY := -1, -1
	for y := 0; y < m.Height; y++ {
		row := m.Pix[y*m.Width : (y+1)*m.Width]
		for x, v := range row {
			if !v {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return geometry.RectInt{}, false
	}
	return geometry.RectInt{X1: minX, Y1: minY, X2: maxX + 1, Y2: maxY + 1}, true
}

// matFromMask converts to an 8-bit 0/255 Mat for OpenCV operations.
func matFromMask(m *Mask) gocv.Mat {
	data := make([]byte, len(m.Pix))
	for i, v := range m.Pix {
		if v {
			data[i] = 255
		}
	}
	mat, err := gocv.NewMatFromBytes(m.Height, m.Width, gocv.MatTypeCV8U, data)
	if err != nil {
		return gocv.Zeros(m.Height, m.Width, gocv.MatTypeCV8U)
	}
	return mat
}

// maskFromMat converts a single-channel Mat back to a Mask. Any nonzero
// pixel is set.
func maskFromMat(mat gocv.Mat) *Mask {
	h, w := mat.Rows(), mat.Cols()
	out := NewMask(w, h)
	data, err := mat.DataPtrUint8()
	if err != nil {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Pix[y*w+x] = mat.GetUCharAt(y, x) != 0
			}
		}
		return out
	}
	for i, v := range data {
		out.Pix[i] = v != 0
	}
	return out
}

// StampDisk sets a small filled disk, guaranteeing the clicked location is
// part of the mask after gating.
func (m *Mask) StampDisk(center geometry.PointInt, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				m.Set(center.X+dx, center.Y+dy, true)
			}
		}
	}
}
