package segment

import (
	"image"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	"github.com/balamernstackdev/latest-paint-visualizer/pkg/geometry"
)

// ObjectType classifies a selected region so downstream rendering can pick
// type-specific processing parameters.
type ObjectType int

const (
	ObjectSmall ObjectType = iota
	ObjectWallSmooth
	ObjectWallTextured
	ObjectFloor
	ObjectCeiling
	ObjectFurniture
)

func (t ObjectType) String() string {
	switch t {
	case ObjectSmall:
		return "small_object"
	case ObjectWallSmooth:
		return "wall_smooth"
	case ObjectWallTextured:
		return "wall_textured"
	case ObjectFloor:
		return "floor"
	case ObjectCeiling:
		return "ceiling"
	case ObjectFurniture:
		return "furniture"
	default:
		return "unknown"
	}
}

// AdaptiveParams are the rendering-side processing parameters chosen per
// object type: blur strength, mask dilation and the color/edge gates used
// when compositing paint over the photo.
type AdaptiveParams struct {
	BlurKernel         int
	DilationIterations int
	ColorTolerance     float64
	EdgeThreshold      float64

	// Bilateral filtering preserves texture detail on stucco and brick.
	UseBilateral        bool
	BilateralDiameter   int
	BilateralSigmaColor float64
	BilateralSigmaSpace float64
}

// Classification thresholds. Area ratios split small objects from room-scale
// surfaces; the vertical click position separates ceilings from floors.
const (
	cannyLowThreshold  = 50
	cannyHighThreshold = 150

	edgeDensitySharp  = 0.3
	edgeDensityMedium = 0.1

	textureVarianceThreshold = 100.0

	smallObjectAreaRatio = 0.03
	largeObjectAreaRatio = 0.30
	ceilingYFraction     = 0.3
	floorYFraction       = 0.7
)

// EdgeDensity returns the fraction of Canny edge pixels inside the region.
// High density indicates sharp objects (furniture, doors); low density
// indicates smooth surfaces.
func EdgeDensity(s *Session, box geometry.RectInt) float64 {
	region := s.gray.Region(image.Rect(box.X1, box.Y1, box.X2, box.Y2))
	defer region.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(region, &edges, cannyLowThreshold, cannyHighThreshold)

	total := edges.Rows() * edges.Cols()
	if total == 0 {
		return 0
	}
	return float64(gocv.CountNonZero(edges)) / float64(total)
}

// IsTextured reports whether the region carries significant high-frequency
// detail (brick, stucco, fabric), measured as Laplacian variance.
func IsTextured(s *Session, box geometry.RectInt) bool {
	region := s.gray.Region(image.Rect(box.X1, box.Y1, box.X2, box.Y2))
	defer region.Close()

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(region, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)

	vals, err := lap.DataPtrFloat64()
	if err != nil || len(vals) == 0 {
		return false
	}
	return stat.PopVariance(vals, nil) > textureVarianceThreshold
}

// ClassifyObject determines the object type of a final mask from its area,
// texture and the vertical position of the click.
func ClassifyObject(s *Session, m *Mask, seed geometry.PointInt) ObjectType {
	box, ok := m.Bounds()
	if !ok {
		return ObjectSmall
	}
	areaRatio := float64(m.Area()) / float64(s.width*s.height)
	if areaRatio < smallObjectAreaRatio {
		return ObjectSmall
	}

	textured := IsTextured(s, box)

	if areaRatio > largeObjectAreaRatio {
		// Room-scale surface: the click height separates ceiling and floor.
		switch {
		case float64(seed.Y) < float64(s.height)*ceilingYFraction:
			return ObjectCeiling
		case float64(seed.Y) > float64(s.height)*floorYFraction:
			return ObjectFloor
		case textured:
			return ObjectWallTextured
		default:
			return ObjectWallSmooth
		}
	}

	if EdgeDensity(s, box) > edgeDensitySharp {
		return ObjectFurniture
	}
	if textured {
		return ObjectWallTextured
	}
	return ObjectWallSmooth
}

// ParamsForObject returns the per-type rendering parameters.
func ParamsForObject(t ObjectType) AdaptiveParams {
	bilateral := AdaptiveParams{
		BilateralDiameter:   9,
		BilateralSigmaColor: 75,
		BilateralSigmaSpace: 75,
	}
	switch t {
	case ObjectWallTextured:
		p := bilateral
		p.BlurKernel = 3
		p.DilationIterations = 1
		p.ColorTolerance = 50
		p.EdgeThreshold = 40
		p.UseBilateral = true
		return p
	case ObjectFloor, ObjectCeiling:
		p := bilateral
		p.BlurKernel = 7
		p.DilationIterations = 3
		p.ColorTolerance = 60
		p.EdgeThreshold = 25
		return p
	case ObjectSmall:
		p := bilateral
		p.BlurKernel = 3
		p.DilationIterations = 0
		p.ColorTolerance = 30
		p.EdgeThreshold = 45
		return p
	case ObjectFurniture:
		p := bilateral
		p.BlurKernel = 3
		p.DilationIterations = 1
		p.ColorTolerance = 35
		p.EdgeThreshold = 50
		return p
	default: // ObjectWallSmooth
		p := bilateral
		p.BlurKernel = 5
		p.DilationIterations = 2
		p.ColorTolerance = 40
		p.EdgeThreshold = 30
		return p
	}
}

// AdaptiveBlurKernel picks a blur kernel size from edge density alone, a fast
// alternative to full classification when only blur strength is needed.
func AdaptiveBlurKernel(s *Session, m *Mask) int {
	box, ok := m.Bounds()
	if !ok {
		return 5
	}
	density := EdgeDensity(s, box)
	switch {
	case density > edgeDensitySharp:
		return 3
	case density > edgeDensityMedium:
		return 5
	default:
		return 7
	}
}
