// Package imaging provides image loading and conversion for the segmentation
// pipeline: decoding, bounding to the working resolution, and packing into
// OpenCV Mats.
package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	dimaging "github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	_ "golang.org/x/image/tiff"
)

// MaxDimension bounds the working resolution. Every tuned threshold in the
// pipeline was calibrated at this scale; processing full camera resolution
// would both slow the provider down and invalidate the kernel sizes.
const MaxDimension = 800

// Load reads and decodes an image file, downscaled so that the long side is
// at most MaxDimension.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return Bound(img), nil
}

// Bound downscales an image so the long side is at most MaxDimension,
// preserving aspect ratio. Images already within bounds pass through.
func Bound(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= MaxDimension && b.Dy() <= MaxDimension {
		return img
	}
	return dimaging.Fit(img, MaxDimension, MaxDimension, dimaging.Lanczos)
}

// ToMatRGB packs an image into an 8-bit 3-channel Mat in RGB channel order.
func ToMatRGB(img image.Image) (gocv.Mat, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return gocv.Mat{}, fmt.Errorf("empty image %dx%d", w, h)
	}

	data := make([]byte, w*h*3)
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w*4]
			for x := 0; x < w; x++ {
				i := (y*w + x) * 3
				data[i] = row[x*4]
				data[i+1] = row[x*4+1]
				data[i+2] = row[x*4+2]
			}
		}
	} else {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				i := (y*w + x) * 3
				data[i] = uint8(r >> 8)
				data[i+1] = uint8(g >> 8)
				data[i+2] = uint8(bl >> 8)
			}
		}
	}

	mat, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC3, data)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to build mat: %w", err)
	}
	return mat, nil
}
