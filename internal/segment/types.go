// Package segment implements the prompt-driven mask refinement pipeline:
// candidate selection, color/edge gated region refinement, morphological
// cleanup and connectivity filtering over the raw multi-candidate output of a
// promptable segmentation model.
package segment

import (
	"github.com/balamernstackdev/latest-paint-visualizer/pkg/geometry"
)

// Level selects the granularity of the requested selection.
type Level int

const (
	// LevelAuto lets the pipeline pick a candidate without a granularity hint.
	LevelAuto Level = -1
	// LevelWall is the standard walls mode: door/window aware selection,
	// distance-decayed color gating, hole filling.
	LevelWall Level = 0
	// LevelDetail targets small/fine structures. Morphological cleanup is
	// skipped entirely so lattice and mesh patterns survive.
	LevelDetail Level = 1
	// LevelObject selects the whole-object candidate directly.
	LevelObject Level = 2
)

func (l Level) String() string {
	switch l {
	case LevelWall:
		return "wall"
	case LevelDetail:
		return "detail"
	case LevelObject:
		return "object"
	default:
		return "auto"
	}
}

// Strategy identifies which refinement branch a call took. One pipeline is
// parameterized by the strategy instead of maintaining parallel engine copies.
type Strategy int

const (
	// StrategyPrecise stays within the model's candidate boundary.
	StrategyPrecise Strategy = iota
	// StrategyWallStandard uses wall tolerances and a thinned edge barrier,
	// bridging gaps before growing from the click.
	StrategyWallStandard
	// StrategyWallClick merges candidates and bridges aggressively for large
	// continuous wall surfaces.
	StrategyWallClick
	// StrategyLoose applies only a wide intensity gate (whole-object and
	// auto-level selections).
	StrategyLoose
)

func (s Strategy) String() string {
	switch s {
	case StrategyPrecise:
		return "precise"
	case StrategyWallStandard:
		return "wall-standard"
	case StrategyWallClick:
		return "wall-click"
	case StrategyLoose:
		return "loose"
	default:
		return "unknown"
	}
}

// RefinementOptions configures a single GenerateMask call.
type RefinementOptions struct {
	// Level is the requested granularity. The zero value is LevelWall;
	// use LevelAuto for score-driven selection.
	Level Level
	// WallOnly tightens boundary gating for wall-only painting.
	WallOnly bool
	// WallClick enables multi-candidate merge, gap bridging and
	// connected-flow growth from the click.
	WallClick bool
	// Cleanup enables the whole refinement pipeline. When false the raw
	// selected candidate is returned untouched.
	Cleanup bool
}

// DefaultOptions returns the options used for a plain click.
func DefaultOptions() RefinementOptions {
	return RefinementOptions{Level: LevelAuto, Cleanup: true}
}

// Prompt is a user selection: a point, a set of labeled points, or a box.
type Prompt interface {
	isPrompt()
}

// PointPrompt is a single foreground click.
type PointPrompt struct {
	Point geometry.PointInt
}

// MultiPointPrompt is a set of clicks with foreground/background labels
// (1 = foreground, 0 = background). A nil Labels slice means all foreground.
type MultiPointPrompt struct {
	Points []geometry.PointInt
	Labels []int
}

// BoxPrompt is a rectangular selection.
type BoxPrompt struct {
	Box geometry.RectInt
}

func (PointPrompt) isPrompt()      {}
func (MultiPointPrompt) isPrompt() {}
func (BoxPrompt) isPrompt()        {}

// CandidateSet holds the normalized provider output: exactly three masks with
// confidence scores, ordered from most granular to most holistic. Produced
// fresh per call and never cached.
type CandidateSet struct {
	Masks  [3]*Mask
	Scores [3]float64
}

// Empty reports whether every candidate mask is empty or missing.
func (c *CandidateSet) Empty() bool {
	for _, m := range c.Masks {
		if m != nil && m.Area() > 0 {
			return false
		}
	}
	return true
}

// bestScoreIndex returns the index of the highest-scoring candidate.
func (c *CandidateSet) bestScoreIndex() int {
	best := 0
	for i := 1; i < 3; i++ {
		if c.Scores[i] > c.Scores[best] {
			best = i
		}
	}
	return best
}
