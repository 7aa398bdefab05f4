// Command masktest runs the mask refinement pipeline on a room photo and
// writes the resulting mask as a PNG. It uses the offline color-clustering
// provider, so it works without model weights; the output shows what the
// refinement stages do with coarse candidates.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/balamernstackdev/latest-paint-visualizer/internal/config"
	"github.com/balamernstackdev/latest-paint-visualizer/internal/imaging"
	"github.com/balamernstackdev/latest-paint-visualizer/internal/provider/colorstub"
	"github.com/balamernstackdev/latest-paint-visualizer/internal/segment"
	"github.com/balamernstackdev/latest-paint-visualizer/pkg/geometry"
)

func main() {
	imagePath := flag.String("image", "", "Path to room photo (TIFF, PNG, or JPEG)")
	point := flag.String("point", "", "Click location as x,y")
	box := flag.String("box", "", "Box selection as x1,y1,x2,y2")
	level := flag.Int("level", -1, "Granularity: -1 auto, 0 wall, 1 detail, 2 object")
	wallOnly := flag.Bool("wall-only", false, "Tighter wall-only gating")
	wallClick := flag.Bool("wall-click", false, "Merge and bridge wall fragments")
	rawOnly := flag.Bool("raw", false, "Skip refinement, output the raw candidate")
	outPath := flag.String("out", "mask.png", "Output mask path")
	flag.Parse()

	if *imagePath == "" || (*point == "" && *box == "") {
		fmt.Println("Usage: masktest -image <path> (-point x,y | -box x1,y1,x2,y2) [-level N] [-wall-only] [-wall-click] [-out mask.png]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	img, err := imaging.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	fmt.Printf("Loaded image: %dx%d pixels (working resolution)\n", bounds.Dx(), bounds.Dy())

	opts := []segment.Option{segment.WithParams(cfg.Params)}
	if cfg.Debug {
		log, err := zap.NewDevelopment()
		if err == nil {
			defer log.Sync()
			opts = append(opts, segment.WithTraceSink(segment.NewZapSink(log)))
		}
	}
	engine := segment.NewEngine(colorstub.New(), opts...)

	session, err := engine.BindImage(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind image: %v\n", err)
		os.Exit(1)
	}

	prompt, err := parsePrompt(*point, *box)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ropts := segment.RefinementOptions{
		Level:     segment.Level(*level),
		WallOnly:  *wallOnly,
		WallClick: *wallClick,
		Cleanup:   !*rawOnly,
	}
	fmt.Printf("Level: %s  wall-only: %v  wall-click: %v\n", ropts.Level, ropts.WallOnly, ropts.WallClick)

	mask, err := engine.GenerateMask(prompt, ropts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Mask generation failed: %v\n", err)
		os.Exit(1)
	}
	if mask == nil {
		fmt.Println("No usable selection at that location")
		os.Exit(0)
	}

	area := mask.Area()
	ratio := float64(area) / float64(mask.Width*mask.Height)
	fmt.Printf("Mask: %d pixels (%.1f%% of image)\n", area, ratio*100)

	if pp, ok := prompt.(segment.PointPrompt); ok {
		objType := segment.ClassifyObject(session, mask, pp.Point)
		params := segment.ParamsForObject(objType)
		fmt.Printf("Classified as: %s (blur %dpx, tolerance %.0f, bilateral %v)\n",
			objType, params.BlurKernel, params.ColorTolerance, params.UseBilateral)
	}

	if err := writeMaskPNG(*outPath, mask); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write mask: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outPath)
}

// parsePrompt builds the prompt from the -point or -box flag.
func parsePrompt(point, box string) (segment.Prompt, error) {
	if point != "" {
		vals, err := parseInts(point, 2)
		if err != nil {
			return nil, fmt.Errorf("invalid -point %q: %w", point, err)
		}
		return segment.PointPrompt{Point: geometry.PointInt{X: vals[0], Y: vals[1]}}, nil
	}
	vals, err := parseInts(box, 4)
	if err != nil {
		return nil, fmt.Errorf("invalid -box %q: %w", box, err)
	}
	return segment.BoxPrompt{Box: geometry.RectInt{X1: vals[0], Y1: vals[1], X2: vals[2], Y2: vals[3]}}, nil
}

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated values", n)
	}
	vals := make([]int, n)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// writeMaskPNG saves the mask as a grayscale PNG, white where selected.
func writeMaskPNG(path string, m *segment.Mask) error {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()
	return png.Encode(f, img)
}
