package segment

// Params collects every tuned threshold of the pipeline. The defaults were
// calibrated against interior and exterior room photos at the bounded working
// resolution (long side 800 px); deployments processing other resolutions or
// lighting should recalibrate through overrides rather than editing code.
type Params struct {
	// Color tolerances (0-255 channel scale). Lower is stricter.
	ColorDiffSmallObject  float64 // max channel diff for small/thin objects
	ColorDiffStandardWall float64 // base tolerance for standard wall clicks
	ColorDiffWallOnly     float64 // tolerance in wall-only mode
	ColorDiffWallClick    float64 // higher base for sunlit exterior walls
	ColorDiffBoxMode      float64 // relaxed tolerance for box selections
	IntensityDiffDetail   float64 // plain channel gate for LevelDetail
	IntensityDiffLoose    float64 // wide gate for LevelObject/auto

	// Vibrant seeds (high saturation) get extra tolerance: saturated paint
	// shifts more between sun and shade than neutral plaster does.
	VibrantSaturationMin float64
	VibrantBoostSmall    float64
	VibrantBoostStandard float64

	// Hue weighting. color diff = (1-w)*maxChannelDiff + w*(2*hueDiff).
	HueWeightSmall    float64 // small objects trust RGB more
	HueWeightStandard float64 // large walls trust hue more

	// Laplacian edge-barrier thresholds (0-255). Higher lets paint flow
	// over faint texture edges; lower stops at weaker boundaries.
	EdgeThresholdSmallObject  float64
	EdgeThresholdStandardWall float64
	EdgeThresholdWallOnly     float64
	EdgeThresholdWallClick    float64 // ignores brick/stucco texture edges
	EdgeThresholdBoxMode      float64

	// Distance decay: tolerance shrinks linearly with distance from the
	// click, clamped at DecayFactorMin of the base.
	DecayDistanceMax float64
	DecayFactorMin   float64

	// Size thresholds.
	MinMaskAreaPixels int     // below this a mask is treated as noise
	SmallObjectRatio  float64 // mask area / image area for the small branch
	NoiseAreaRatio    float64 // max hole area (fraction of image) to fill
	HoleEdgeMeanMax   float64 // holes with stronger interior edges survive

	// Morphology.
	MorphKernelSize     int // elliptical closing kernel
	GaussianKernelSize  int // session blur before the Laplacian
	ClickPreserveRadius int // the click itself is never gated away
	BridgeKernelWall    int // gap bridging, wall-only mode
	BridgeKernelClick   int // gap bridging, wall-click mode
	SmoothKernelWall    int // post-flow smoothing, wall-only mode
	SmoothKernelClick   int // post-flow smoothing, wall-click mode
	BarrierErodeKernel  int // thinning kernel for textured-wall barriers

	// Candidate selection.
	MinScore          float64 // provider confidence floor
	WallMergeMinRatio float64 // candidates below this are noise
	WallMergeMaxRatio float64 // candidates above this are whole-image errors
	DoorScoreErode    int     // score at which the erosion margin kicks in
	DoorScoreFallback int     // below this the shape is not door-like
	DoorErodeKernel   int     // elliptical kernel for the safety margin

	// Connectivity filtering.
	Connectivity         int     // 4 or 8
	MinComponentRatio    float64 // detached piece vs clicked component area
	MaxComponentDistance float64 // px from click for detached pieces
	WallClickKeepRatio   float64 // wall-click keeps components above this
	BoxKeepRatio         float64 // box mode keeps components above this

	// Refinement fallback: gating that keeps less than this fraction of the
	// candidate indicates a bad seed and is discarded.
	RefineKeepMinFraction float64
}

// DefaultParams returns the hand-tuned defaults.
func DefaultParams() Params {
	return Params{
		ColorDiffSmallObject:  50,
		ColorDiffStandardWall: 95,
		ColorDiffWallOnly:     95,
		ColorDiffWallClick:    120,
		ColorDiffBoxMode:      100,
		IntensityDiffDetail:   45,
		IntensityDiffLoose:    100,

		VibrantSaturationMin: 0.3,
		VibrantBoostSmall:    15,
		VibrantBoostStandard: 10,

		HueWeightSmall:    0.3,
		HueWeightStandard: 0.6,

		EdgeThresholdSmallObject:  20,
		EdgeThresholdStandardWall: 35,
		EdgeThresholdWallOnly:     25,
		EdgeThresholdWallClick:    35,
		EdgeThresholdBoxMode:      15,

		// Effectively disabled for typical room widths; keeps full-wall
		// coverage while still tightening on very wide exteriors.
		DecayDistanceMax: 3000.0,
		DecayFactorMin:   0.80,

		MinMaskAreaPixels: 50,
		SmallObjectRatio:  0.03,
		NoiseAreaRatio:    0.01,
		HoleEdgeMeanMax:   15.0,

		MorphKernelSize:     5,
		GaussianKernelSize:  3,
		ClickPreserveRadius: 2,
		BridgeKernelWall:    17,
		BridgeKernelClick:   21,
		SmoothKernelWall:    7,
		SmoothKernelClick:   9,
		BarrierErodeKernel:  3,

		// Lowered to capture weaker wall segments from the provider.
		MinScore:          0.1,
		WallMergeMinRatio: 0.001,
		WallMergeMaxRatio: 0.95,
		DoorScoreErode:    5,
		DoorScoreFallback: 3,
		DoorErodeKernel:   3,

		Connectivity:         8,
		MinComponentRatio:    0.02,
		MaxComponentDistance: 250,
		WallClickKeepRatio:   0.005,
		BoxKeepRatio:         0.05,

		RefineKeepMinFraction: 0.1,
	}
}
