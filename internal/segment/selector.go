package segment

import (
	"image"
	"sort"

	"gocv.io/x/gocv"
)

// CandidateStats describes the shape of one candidate mask, normalized by the
// image dimensions.
type CandidateStats struct {
	AreaRatio   float64 // mask area / image area
	AspectRatio float64 // bounding-box height / width
	WidthRatio  float64 // bounding-box width / image width
}

// CandidateScorer rates how door/window-like a candidate is. Higher scores
// mean the mask looks like a door or window rather than an open wall face.
// The scorer is replaceable so the handcrafted rule set can be swapped for a
// learned classifier without touching selection.
type CandidateScorer interface {
	Score(stats CandidateStats) int
}

// AdditiveDoorScorer is the hand-tuned default: small area, tall-narrow
// aspect and narrow width each contribute fixed additive bands.
type AdditiveDoorScorer struct{}

// Score rates a candidate from 0 (wall-like) to 13 (unmistakably a door).
func (AdditiveDoorScorer) Score(stats CandidateStats) int {
	score := 0

	// Small area (max 5 points)
	switch {
	case stats.AreaRatio < 0.05:
		score += 5
	case stats.AreaRatio < 0.10:
		score += 3
	case stats.AreaRatio < 0.15:
		score += 1
	}

	// Tall aspect (max 5 points)
	switch {
	case stats.AspectRatio > 2.0:
		score += 5
	case stats.AspectRatio > 1.5:
		score += 3
	case stats.AspectRatio > 1.3:
		score += 1
	}

	// Narrow width (max 3 points)
	switch {
	case stats.WidthRatio < 0.15:
		score += 3
	case stats.WidthRatio < 0.25:
		score += 2
	case stats.WidthRatio < 0.30:
		score += 1
	}

	return score
}

// selection is the outcome of candidate selection.
type selection struct {
	mask      *Mask
	index     int // chosen candidate index, -1 when merged
	doorScore int // -1 when the door classifier did not run
	merged    int // number of candidates merged (wall-click mode)
}

// statsFor computes shape statistics for one candidate.
func statsFor(m *Mask) (CandidateStats, bool) {
	area := m.Area()
	if area == 0 {
		return CandidateStats{}, false
	}
	box, _ := m.Bounds()
	w := box.Width()
	if w < 1 {
		w = 1
	}
	return CandidateStats{
		AreaRatio:   float64(area) / float64(m.Width*m.Height),
		AspectRatio: float64(box.Height()) / float64(w),
		WidthRatio:  float64(box.Width()) / float64(m.Width),
	}, true
}

// selectCandidate picks one working mask from the three candidates, or merges
// several of them, following the level/mode heuristics.
func selectCandidate(set *CandidateSet, pr promptInfo, opts RefinementOptions, p Params, scorer CandidateScorer) selection {
	switch opts.Level {
	case LevelDetail:
		return selectDetail(set, p)
	case LevelWall:
		if pr.isBox {
			return selectBox(set, p)
		}
		if opts.WallClick {
			return selectWallMerge(set, p)
		}
		return selectDoorAware(set, p, scorer)
	case LevelObject:
		return selection{mask: set.Masks[2], index: 2, doorScore: -1}
	default: // LevelAuto
		if pr.isBox {
			return selectBox(set, p)
		}
		return selectGranularFirst(set, p)
	}
}

// selectBox prefers the holistic candidate for box selections: the user drew
// the extent explicitly, so the whole object is wanted.
func selectBox(set *CandidateSet, p Params) selection {
	if set.Scores[2] > p.MinScore {
		return selection{mask: set.Masks[2], index: 2, doorScore: -1}
	}
	return selection{mask: set.Masks[1], index: 1, doorScore: -1}
}

// selectGranularFirst prefers the most granular candidate for point clicks:
// index 0 is usually the exact part clicked, while index 1 often merges
// neighbors. Index 0 is skipped only when it is basically noise.
func selectGranularFirst(set *CandidateSet, p Params) selection {
	if set.Masks[0].Area() < p.MinMaskAreaPixels {
		best := set.bestScoreIndex()
		return selection{mask: set.Masks[best], index: best, doorScore: -1}
	}
	return selection{mask: set.Masks[0], index: 0, doorScore: -1}
}

// selectDetail prefers index 0 but falls back to index 1 when index 0 is tiny
// noise and index 1 is materially larger.
func selectDetail(set *CandidateSet, p Params) selection {
	area0 := set.Masks[0].Area()
	area1 := set.Masks[1].Area()
	if area0 < p.MinMaskAreaPixels*10 && area1 > area0*2 {
		return selection{mask: set.Masks[1], index: 1, doorScore: -1}
	}
	return selection{mask: set.Masks[0], index: 0, doorScore: -1}
}

// selectWallMerge ORs together every candidate that plausibly is a wall
// region, so disjoint wall faces detected as separate candidates paint as
// one surface. Candidates are visited in descending score order.
func selectWallMerge(set *CandidateSet, p Params) selection {
	order := []int{0, 1, 2}
	sort.Slice(order, func(i, j int) bool {
		return set.Scores[order[i]] > set.Scores[order[j]]
	})

	m0 := set.Masks[0]
	imageArea := float64(m0.Width * m0.Height)
	combined := NewMask(m0.Width, m0.Height)
	merged := 0
	for _, idx := range order {
		ratio := float64(set.Masks[idx].Area()) / imageArea
		// Reject noise slivers and whole-image errors.
		if ratio > p.WallMergeMinRatio && ratio < p.WallMergeMaxRatio && set.Scores[idx] > p.MinScore {
			combined.Or(set.Masks[idx])
			merged++
		}
	}
	if merged == 0 {
		best := set.bestScoreIndex()
		return selection{mask: set.Masks[best], index: best, doorScore: -1}
	}
	return selection{mask: combined, index: -1, doorScore: -1, merged: merged}
}

// selectDoorAware scores all three candidates with the door/window classifier
// and picks the best match. Clear doors get an erosion safety margin so the
// paint cannot bleed onto the surrounding wall; when nothing looks like a
// door the granular-first rule applies.
func selectDoorAware(set *CandidateSet, p Params, scorer CandidateScorer) selection {
	best := selection{mask: set.Masks[0], index: 0, doorScore: -1}
	for idx := 0; idx < 3; idx++ {
		stats, ok := statsFor(set.Masks[idx])
		if !ok {
			continue
		}
		score := scorer.Score(stats)
		if score > best.doorScore {
			best = selection{mask: set.Masks[idx], index: idx, doorScore: score}
		}
	}

	if best.doorScore >= p.DoorScoreErode {
		best.mask = erodeMargin(best.mask, p)
		return best
	}

	if best.doorScore < p.DoorScoreFallback {
		fallback := selectGranularFirst(set, p)
		fallback.doorScore = best.doorScore
		return fallback
	}
	return best
}

// erodeMargin shrinks a door/window mask to create a safety margin.
// Smaller objects erode harder relative to their size.
func erodeMargin(m *Mask, p Params) *Mask {
	stats, ok := statsFor(m)
	if !ok {
		return m
	}

	iterations := 1
	if stats.AreaRatio >= 0.05 && stats.AreaRatio < 0.10 {
		iterations = 2
	}

	src := matFromMask(m)
	defer src.Close()
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse,
		image.Pt(p.DoorErodeKernel, p.DoorErodeKernel))
	defer kernel.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.ErodeWithParams(src, &dst, kernel, image.Pt(-1, -1), iterations, int(gocv.BorderConstant))
	return maskFromMat(dst)
}
