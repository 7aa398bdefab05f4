package segment

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/balamernstackdev/latest-paint-visualizer/internal/imaging"
	"github.com/balamernstackdev/latest-paint-visualizer/pkg/colorutil"
)

// Session holds the per-image feature buffers the pipeline reads: the RGB
// image, a 16-bit widened copy for overflow-safe differencing, grayscale,
// its Gaussian blur, and the absolute Laplacian edge-magnitude map.
//
// A Session is created once per bound image by Engine.BindImage, is immutable
// for its lifetime, and is replaced wholesale when a new image is bound.
// Different sessions may be used from different goroutines; a single session
// must not be rebound while GenerateMask calls are in flight.
type Session struct {
	width   int
	height  int
	version uint64

	rgb     gocv.Mat // 8UC3, RGB channel order
	gray    gocv.Mat // 8UC1
	blurred gocv.Mat // 8UC1, Gaussian blur of gray
	edges   gocv.Mat // 8UC1, |Laplacian| of blurred

	pix16 []uint16 // widened RGB triples, row-major
	raw   []byte   // original RGB bytes, for rebind comparison
}

// newSession precomputes every feature buffer for the image.
func newSession(img image.Image, version uint64, p Params) (*Session, error) {
	rgb, err := imaging.ToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}

	data, err := rgb.DataPtrUint8()
	if err != nil {
		rgb.Close()
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	raw := make([]byte, len(data))
	copy(raw, data)
	pix16 := make([]uint16, len(data))
	for i, v := range data {
		pix16[i] = uint16(v)
	}

	gray := gocv.NewMat()
	gocv.CvtColor(rgb, &gray, gocv.ColorRGBToGray)

	blurred := gocv.NewMat()
	k := p.GaussianKernelSize
	gocv.GaussianBlur(gray, &blurred, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	// 16-bit signed Laplacian, then absolute 8-bit magnitude. The blur in
	// front keeps single-pixel noise from registering as a barrier, and the
	// 1-aperture kernel keeps plain color boundaries (no luminance ridge)
	// well under the wall thresholds so they gate color, not edges.
	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(blurred, &lap, gocv.MatTypeCV16S, 1, 1, 0, gocv.BorderDefault)
	edges := gocv.NewMat()
	gocv.ConvertScaleAbs(lap, &edges, 1, 0)

	return &Session{
		width:   rgb.Cols(),
		height:  rgb.Rows(),
		version: version,
		rgb:     rgb,
		gray:    gray,
		blurred: blurred,
		edges:   edges,
		pix16:   pix16,
		raw:     raw,
	}, nil
}

// Width returns the bound image width in pixels.
func (s *Session) Width() int { return s.width }

// Height returns the bound image height in pixels.
func (s *Session) Height() int { return s.height }

// Version returns the monotonically increasing session version assigned by
// the engine at bind time.
func (s *Session) Version() uint64 { return s.version }

// Close releases the underlying Mats. The engine closes a session when it is
// replaced; callers holding a session across a rebind must not use it after.
func (s *Session) Close() {
	s.rgb.Close()
	s.gray.Close()
	s.blurred.Close()
	s.edges.Close()
}

// rgbAt returns the widened color at (x, y). Coordinates must be in bounds.
func (s *Session) rgbAt(x, y int) colorutil.RGB {
	i := (y*s.width + x) * 3
	return colorutil.RGB{
		R: float64(s.pix16[i]),
		G: float64(s.pix16[i+1]),
		B: float64(s.pix16[i+2]),
	}
}

// edgeAt returns the Laplacian edge magnitude at (x, y).
func (s *Session) edgeAt(x, y int) uint8 {
	return s.edges.GetUCharAt(y, x)
}

// sameImage reports whether the raw RGB bytes match this session's image.
func (s *Session) sameImage(raw []byte) bool {
	if len(raw) != len(s.raw) {
		return false
	}
	for i, v := range raw {
		if s.raw[i] != v {
			return false
		}
	}
	return true
}
