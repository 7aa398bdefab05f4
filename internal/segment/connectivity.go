package segment

import (
	"math"

	"gocv.io/x/gocv"
)

// filterComponents removes disconnected pieces that are not part of the
// intended selection, preventing paint from landing on unrelated pots or
// decorations that happened to match the gate.
//
// Box prompts keep every component whose centroid lies inside the box, plus
// any large component (a perforated wall selected by box keeps all pieces).
// Wall-click keeps the clicked component and every piece above a small area
// floor, trusting the earlier candidate merge. Standard point clicks isolate
// the clicked component and only readmit nearby pieces of comparable size.
func filterComponents(m *Mask, pr promptInfo, wallClick bool, p Params, sink TraceSink) *Mask {
	mat := matFromMask(m)
	defer mat.Close()

	labels := gocv.NewMat()
	defer labels.Close()
	stats := gocv.NewMat()
	defer stats.Close()
	centroids := gocv.NewMat()
	defer centroids.Close()
	n := gocv.ConnectedComponentsWithStatsWithParams(mat, &labels, &stats, &centroids,
		p.Connectivity, gocv.MatTypeCV32S)
	if n <= 1 {
		return m
	}

	area := func(label int) int {
		return int(stats.GetIntAt(label, int(gocv.CCStatArea)))
	}
	centroid := func(label int) (float64, float64) {
		return centroids.GetDoubleAt(label, 0), centroids.GetDoubleAt(label, 1)
	}

	imageArea := float64(m.Width * m.Height)
	keep := make([]bool, n)

	if pr.isBox {
		box := *pr.box
		for i := 1; i < n; i++ {
			cx, cy := centroid(i)
			if box.ContainsF(cx, cy) || float64(area(i)) > p.BoxKeepRatio*imageArea {
				keep[i] = true
			}
		}
		if !anyKept(keep) {
			return m
		}
	} else {
		target := int(labels.GetIntAt(pr.ref.Y, pr.ref.X))
		switch {
		case target == 0:
			// Click landed outside every component (eroded away or gated
			// out); keep the largest one.
			largest := 1
			for i := 2; i < n; i++ {
				if area(i) > area(largest) {
					largest = i
				}
			}
			keep[largest] = true

		case wallClick:
			floor := p.WallClickKeepRatio * imageArea
			for i := 1; i < n; i++ {
				if i == target || float64(area(i)) > floor {
					keep[i] = true
				}
			}

		default:
			mainArea := float64(area(target))
			keep[target] = true
			for i := 1; i < n; i++ {
				if i == target {
					continue
				}
				cx, cy := centroid(i)
				dist := math.Hypot(cx-float64(pr.ref.X), cy-float64(pr.ref.Y))
				if float64(area(i)) >= mainArea*p.MinComponentRatio &&
					dist < p.MaxComponentDistance {
					keep[i] = true
				}
			}
		}
	}

	out := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if keep[labels.GetIntAt(y, x)] {
				out.Pix[y*m.Width+x] = true
			}
		}
	}

	kept, dropped := 0, 0
	for i := 1; i < n; i++ {
		if keep[i] {
			kept++
		} else {
			dropped++
		}
	}
	sink.ComponentsFiltered(kept, dropped)
	return out
}

func anyKept(keep []bool) bool {
	for _, v := range keep {
		if v {
			return true
		}
	}
	return false
}
