package segment

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"github.com/balamernstackdev/latest-paint-visualizer/pkg/colorutil"
	"github.com/balamernstackdev/latest-paint-visualizer/pkg/geometry"
)

// refineResult carries the gated mask and which branch produced it.
type refineResult struct {
	mask        *Mask
	strategy    Strategy
	smallObject bool
}

// refineMask gates the selected candidate by color similarity to a seed and
// by the Laplacian edge barrier. Wall modes additionally bridge gaps and grow
// a connected region from the click instead of staying inside the candidate.
func refineMask(s *Session, selected *Mask, pr promptInfo, opts RefinementOptions, p Params, sink TraceSink) refineResult {
	if pr.isBox {
		res := refineResult{mask: refineBox(s, selected, pr.ref, p), strategy: StrategyPrecise}
		sink.StrategyChosen(res.strategy, false)
		return res
	}

	var res refineResult
	switch opts.Level {
	case LevelWall:
		small := float64(selected.Area()) < p.SmallObjectRatio*float64(s.width*s.height)
		if small {
			res = refineResult{
				mask:        refineSmall(s, selected, pr.ref, opts.WallOnly, p),
				strategy:    StrategyPrecise,
				smallObject: true,
			}
		} else {
			res = refineLargeWall(s, selected, pr.ref, opts, p)
		}
	case LevelDetail:
		seed := seedPatchMedian(s, pr.ref)
		res = refineResult{
			mask:     gateByChannelDiff(s, selected, seed, p.IntensityDiffDetail),
			strategy: StrategyPrecise,
		}
	default: // LevelObject and LevelAuto
		seed := seedPatchMedian(s, pr.ref)
		res = refineResult{
			mask:     gateByChannelDiff(s, selected, seed, p.IntensityDiffLoose),
			strategy: StrategyLoose,
		}
	}

	// The clicked location itself must survive gating.
	res.mask.StampDisk(pr.ref, p.ClickPreserveRadius)
	sink.StrategyChosen(res.strategy, res.smallObject)
	return res
}

// seedPatchMedian samples the 3x3 patch around the reference point and takes
// the per-channel median, so a click on a boundary still picks the dominant
// side instead of a blend.
func seedPatchMedian(s *Session, ref geometry.PointInt) colorutil.RGB {
	x1, x2 := max(0, ref.X-1), min(s.width, ref.X+2)
	y1, y2 := max(0, ref.Y-1), min(s.height, ref.Y+2)
	colors := make([]colorutil.RGB, 0, 9)
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			colors = append(colors, s.rgbAt(x, y))
		}
	}
	return colorutil.Median(colors)
}

// maskMedianColor takes the per-channel median over the mask's own pixels.
func maskMedianColor(s *Session, m *Mask) (colorutil.RGB, bool) {
	colors := make([]colorutil.RGB, 0, m.Area())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) {
				colors = append(colors, s.rgbAt(x, y))
			}
		}
	}
	if len(colors) == 0 {
		return colorutil.RGB{}, false
	}
	return colorutil.Median(colors), true
}

// gateByChannelDiff keeps mask pixels whose max channel difference from the
// seed stays under tol. No edge barrier; LevelDetail and loose selections
// rely on the candidate boundary alone.
func gateByChannelDiff(s *Session, m *Mask, seed colorutil.RGB, tol float64) *Mask {
	out := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) && colorutil.MaxChannelDiff(s.rgbAt(x, y), seed) < tol {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

// refineBox gates a box selection. The seed is the median over the mask's own
// pixels, which is robust against the box center landing on a window or
// shadow. The edge barrier snaps the result to strong lines.
func refineBox(s *Session, m *Mask, ref geometry.PointInt, p Params) *Mask {
	seed, ok := maskMedianColor(s, m)
	if !ok {
		seed = seedPatchMedian(s, ref)
	}
	out := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.At(x, y) {
				continue
			}
			if colorutil.MaxChannelDiff(s.rgbAt(x, y), seed) < p.ColorDiffBoxMode &&
				float64(s.edgeAt(x, y)) <= p.EdgeThresholdBoxMode {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

// refineSmall handles small or thin objects (strips, pillars, trim). The gate
// mixes max channel difference with wrapped hue distance, weighted toward RGB,
// and vibrant seeds get extra tolerance because saturated paint shifts more
// between sun and shade than neutral plaster does.
func refineSmall(s *Session, m *Mask, ref geometry.PointInt, wallOnly bool, p Params) *Mask {
	seed := seedPatchMedian(s, ref)
	tol := p.ColorDiffSmallObject
	edgeThresh := p.EdgeThresholdSmallObject
	if wallOnly {
		tol = p.ColorDiffWallOnly
		edgeThresh = p.EdgeThresholdWallOnly
	}
	if seed.Saturation() > p.VibrantSaturationMin {
		tol += p.VibrantBoostSmall
	}
	seedHue := seed.Hue()
	hw := p.HueWeightSmall

	out := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.At(x, y) {
				continue
			}
			rgb := s.rgbAt(x, y)
			diff := (1-hw)*colorutil.MaxChannelDiff(rgb, seed) +
				hw*2*colorutil.HueDistance(rgb.Hue(), seedHue)
			if diff < tol && float64(s.edgeAt(x, y)) <= edgeThresh {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

// refineLargeWall handles large wall surfaces. The tolerance decays with
// distance from the click so paint flows near it and tightens far away. Wall
// modes thin the edge barrier, bridge gaps with a closing pass and keep only
// the region connected to the click; plain standard mode stays inside the
// candidate boundary.
func refineLargeWall(s *Session, m *Mask, ref geometry.PointInt, opts RefinementOptions, p Params) refineResult {
	seed := seedPatchMedian(s, ref)

	baseTol := p.ColorDiffStandardWall
	edgeThresh := p.EdgeThresholdStandardWall
	strategy := StrategyPrecise
	switch {
	case opts.WallClick:
		baseTol = p.ColorDiffWallClick
		edgeThresh = p.EdgeThresholdWallClick
		strategy = StrategyWallClick
	case opts.WallOnly:
		baseTol = p.ColorDiffWallOnly
		edgeThresh = p.EdgeThresholdWallOnly
		strategy = StrategyWallStandard
	}
	if seed.Saturation() > p.VibrantSaturationMin {
		baseTol += p.VibrantBoostStandard
	}
	seedHue := seed.Hue()
	hw := p.HueWeightStandard

	w, h := s.width, s.height
	gate := make([]byte, w*h)
	barrier := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			rgb := s.rgbAt(x, y)
			diff := (1-hw)*colorutil.MaxChannelDiff(rgb, seed) +
				hw*2*colorutil.HueDistance(rgb.Hue(), seedHue)

			dist := math.Hypot(float64(x-ref.X), float64(y-ref.Y))
			decay := 1.0 - dist/p.DecayDistanceMax
			if decay < p.DecayFactorMin {
				decay = p.DecayFactorMin
			}
			if diff < baseTol*decay {
				gate[i] = 255
			}
			if float64(s.edgeAt(x, y)) <= edgeThresh {
				barrier[i] = 255
			}
		}
	}

	wallMode := opts.WallClick || opts.WallOnly
	if wallMode {
		// Thin the barrier so brick and stucco texture does not wall off
		// whole regions of an otherwise uniform surface.
		barrier = erodeBytes(barrier, w, h, p.BarrierErodeKernel)
	}

	if !wallMode {
		out := NewMask(w, h)
		for i := range out.Pix {
			out.Pix[i] = m.Pix[i] && gate[i] != 0 && barrier[i] != 0
		}
		return refineResult{mask: out, strategy: strategy}
	}

	// Connected flow: the gated region replaces the candidate entirely. Close
	// with a large kernel to bridge window frames and shadows, then keep only
	// what is reachable from the click.
	flow := make([]byte, w*h)
	for i := range flow {
		if gate[i] != 0 && barrier[i] != 0 {
			flow[i] = 255
		}
	}
	bridgeK := p.BridgeKernelWall
	smoothK := p.SmoothKernelWall
	if opts.WallClick {
		bridgeK = p.BridgeKernelClick
		smoothK = p.SmoothKernelClick
	}
	bridged := closeBytes(flow, w, h, bridgeK, 1)
	connected := connectedAt(bridged, w, h, ref, p.Connectivity)
	smoothed := closeBytes(connected, w, h, smoothK, 1)

	out := NewMask(w, h)
	for i, v := range smoothed {
		out.Pix[i] = v != 0
	}
	return refineResult{mask: out, strategy: strategy}
}

// connectedAt keeps the connected component containing the reference point.
// When the reference lands on background the region cannot be anchored and
// the input is returned unchanged.
func connectedAt(data []byte, w, h int, ref geometry.PointInt, connectivity int) []byte {
	src, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8U, data)
	if err != nil {
		return data
	}
	defer src.Close()

	labels := gocv.NewMat()
	defer labels.Close()
	n := gocv.ConnectedComponentsWithParams(src, &labels, connectivity, gocv.MatTypeCV32S)
	if n <= 1 {
		return data
	}
	target := labels.GetIntAt(ref.Y, ref.X)
	if target == 0 {
		return data
	}

	out := make([]byte, len(data))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if labels.GetIntAt(y, x) == target {
				out[y*w+x] = 255
			}
		}
	}
	return out
}

// erodeBytes erodes a 0/255 byte mask with a square kernel.
func erodeBytes(data []byte, w, h, ksize int) []byte {
	src, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8U, data)
	if err != nil {
		return data
	}
	defer src.Close()
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(ksize, ksize))
	defer kernel.Close()
	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Erode(src, &dst, kernel)
	return matBytes(dst)
}

// closeBytes applies morphological closing with an elliptical kernel.
func closeBytes(data []byte, w, h, ksize, iterations int) []byte {
	src, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8U, data)
	if err != nil {
		return data
	}
	defer src.Close()
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(ksize, ksize))
	defer kernel.Close()
	dst := gocv.NewMat()
	defer dst.Close()
	gocv.MorphologyExWithParams(src, &dst, gocv.MorphClose, kernel, iterations, gocv.BorderConstant)
	return matBytes(dst)
}

// matBytes copies a single-channel Mat into a byte slice.
func matBytes(mat gocv.Mat) []byte {
	h, w := mat.Rows(), mat.Cols()
	out := make([]byte, w*h)
	data, err := mat.DataPtrUint8()
	if err != nil {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out[y*w+x] = mat.GetUCharAt(y, x)
			}
		}
		return out
	}
	copy(out, data)
	return out
}
