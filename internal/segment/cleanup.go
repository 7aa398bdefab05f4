package segment

import (
	"image"

	"gocv.io/x/gocv"
)

// applyCleanup closes small gaps and fills spurious interior holes. Closing
// runs first (two iterations in wall-click mode, one otherwise) to seal
// cracks along texture lines, then interior holes below the noise threshold
// are filled.
func applyCleanup(s *Session, m *Mask, wallClick bool, p Params) *Mask {
	closeIters := 1
	if wallClick {
		closeIters = 2
	}

	mat := matFromMask(m)
	defer mat.Close()
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse,
		image.Pt(p.MorphKernelSize, p.MorphKernelSize))
	defer kernel.Close()
	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyExWithParams(mat, &closed, gocv.MorphClose, kernel, closeIters, gocv.BorderConstant)

	return fillHoles(s, maskFromMat(closed), wallClick, p)
}

// fillHoles walks the contour hierarchy of the mask: RetrievalCComp separates
// outer boundaries from interior holes, and only contours with a parent are
// holes. A hole is filled when its pixel count is at or below the noise-area
// fraction of the image; in wall-click mode unconditionally, in standard mode
// only when the average edge magnitude inside it stays low, so genuine small
// details (switches, vents) survive.
func fillHoles(s *Session, m *Mask, wallClick bool, p Params) *Mask {
	mat := matFromMask(m)
	defer mat.Close()

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()
	contours := gocv.FindContoursWithParams(mat, &hierarchy, gocv.RetrievalCComp, gocv.ChainApproxSimple)
	defer contours.Close()

	out := mat.Clone()
	defer out.Close()

	inverted := gocv.NewMat()
	defer inverted.Close()
	gocv.BitwiseNot(mat, &inverted)

	maxHole := p.NoiseAreaRatio * float64(s.width*s.height)
	for i := 0; i < contours.Size(); i++ {
		if hierarchy.GetVeciAt(0, i)[3] == -1 {
			continue // outer boundary
		}

		// Rasterize the hole: the filled contour includes its foreground rim,
		// so intersect with the mask inverse to get the hole pixels exactly.
		roi := gocv.Zeros(s.height, s.width, gocv.MatTypeCV8U)
		gocv.DrawContours(&roi, contours, i, white, -1)
		hole := gocv.NewMat()
		gocv.BitwiseAnd(roi, inverted, &hole)
		roi.Close()

		area := gocv.CountNonZero(hole)
		fill := false
		if area > 0 && float64(area) <= maxHole {
			if wallClick {
				// Shadows and texture inside wall patches carry edge energy,
				// so the smoothness check would leave speckles unfilled.
				fill = true
			} else if s.edges.MeanWithMask(hole).Val1 < p.HoleEdgeMeanMax {
				fill = true
			}
		}
		if fill {
			gocv.BitwiseOr(out, hole, &out)
		}
		hole.Close()
	}

	return maskFromMat(out)
}
