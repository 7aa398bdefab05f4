package segment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/balamernstackdev/latest-paint-visualizer/pkg/geometry"
)

func TestGenerateMaskRequiresBoundImage(t *testing.T) {
	engine := NewEngine(&fakeProvider{})
	_, err := engine.GenerateMask(PointPrompt{Point: geometry.PointInt{X: 1, Y: 1}}, DefaultOptions())
	require.ErrorIs(t, err, ErrSessionNotBound)
}

func TestBindImageReusesIdenticalImage(t *testing.T) {
	provider := &fakeProvider{}
	engine := NewEngine(provider)

	img := halfImage(64, 64, 32)
	s1, err := engine.BindImage(img)
	require.NoError(t, err)
	require.Equal(t, uint64(1), s1.Version())

	// Same pixel content in a fresh allocation must not recompute anything.
	s2, err := engine.BindImage(halfImage(64, 64, 32))
	require.NoError(t, err)
	require.Same(t, s1, s2)
	require.Equal(t, 1, provider.setCalls)

	// Different pixels replace the session.
	s3, err := engine.BindImage(halfImage(64, 64, 40))
	require.NoError(t, err)
	require.NotSame(t, s1, s3)
	require.Equal(t, uint64(2), s3.Version())
	require.Equal(t, 2, provider.setCalls)
}

// A perfect left-half candidate on a red/blue split image must come back
// untouched: the color gate keeps every red pixel and the closing pass must
// not move the boundary.
func TestGenerateMaskExactHalfSelection(t *testing.T) {
	left := rectMask(100, 100, 0, 0, 50, 100)
	provider := &fakeProvider{masks: []*Mask{left}, scores: []float64{0.98}}
	engine := NewEngine(provider)

	_, err := engine.BindImage(halfImage(100, 100, 50))
	require.NoError(t, err)

	mask, err := engine.GenerateMask(
		PointPrompt{Point: geometry.PointInt{X: 25, Y: 50}},
		RefinementOptions{Level: LevelWall, Cleanup: true},
	)
	require.NoError(t, err)
	require.NotNil(t, mask)
	require.Equal(t, 100, mask.Width)
	require.Equal(t, 100, mask.Height)

	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			require.Equal(t, x < 50, mask.At(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

// A box fully inside the red region yields a non-empty subset of the box.
func TestGenerateMaskBoxInsideUniformRegion(t *testing.T) {
	boxMask := rectMask(100, 100, 10, 10, 40, 40)
	provider := &fakeProvider{masks: []*Mask{boxMask, boxMask, boxMask}, scores: []float64{0.7, 0.8, 0.9}}
	engine := NewEngine(provider)

	_, err := engine.BindImage(halfImage(100, 100, 50))
	require.NoError(t, err)

	mask, err := engine.GenerateMask(
		BoxPrompt{Box: geometry.RectInt{X1: 10, Y1: 10, X2: 40, Y2: 40}},
		RefinementOptions{Level: LevelWall, Cleanup: true},
	)
	require.NoError(t, err)
	require.NotNil(t, mask)
	require.Greater(t, mask.Area(), 0)

	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if mask.At(x, y) {
				require.True(t, x >= 10 && x < 40 && y >= 10 && y < 40 && x < 50,
					"pixel (%d,%d) escaped the box", x, y)
			}
		}
	}
}

// Gating with a wrong-colored seed must not erase the selection: the raw
// candidate is restored when almost nothing survives.
func TestGenerateMaskFallbackOnWrongSeed(t *testing.T) {
	right := rectMask(100, 100, 50, 0, 100, 100)
	provider := &fakeProvider{masks: []*Mask{right}, scores: []float64{0.9}}
	engine := NewEngine(provider)

	_, err := engine.BindImage(halfImage(100, 100, 50))
	require.NoError(t, err)

	// Click lands on red but the candidate covers the blue half.
	mask, err := engine.GenerateMask(
		PointPrompt{Point: geometry.PointInt{X: 25, Y: 50}},
		RefinementOptions{Level: LevelWall, Cleanup: true},
	)
	require.NoError(t, err)
	require.NotNil(t, mask)
	require.Equal(t, right.Area(), mask.Area())
}

func TestGenerateMaskNilForEmptyCandidates(t *testing.T) {
	provider := &fakeProvider{masks: []*Mask{NewMask(64, 64)}, scores: []float64{0.9}}
	engine := NewEngine(provider)

	_, err := engine.BindImage(uniformImage(64, 64, red))
	require.NoError(t, err)

	mask, err := engine.GenerateMask(PointPrompt{Point: geometry.PointInt{X: 10, Y: 10}}, DefaultOptions())
	require.NoError(t, err)
	require.Nil(t, mask)
}

func TestGenerateMaskRawCandidateWithoutCleanup(t *testing.T) {
	cand := rectMask(64, 64, 5, 5, 30, 30)
	provider := &fakeProvider{masks: []*Mask{cand}, scores: []float64{0.9}}
	engine := NewEngine(provider)

	_, err := engine.BindImage(uniformImage(64, 64, red))
	require.NoError(t, err)

	mask, err := engine.GenerateMask(
		PointPrompt{Point: geometry.PointInt{X: 10, Y: 10}},
		RefinementOptions{Level: LevelWall, Cleanup: false},
	)
	require.NoError(t, err)
	require.Equal(t, cand.Pix, mask.Pix)
}

// Level 1 skips closing and hole filling entirely, so a small interior hole
// in the candidate survives to the output.
func TestGenerateMaskLevelDetailPreservesHoles(t *testing.T) {
	cand := fullMask(100, 100)
	for y := 60; y < 63; y++ {
		for x := 60; x < 63; x++ {
			cand.Set(x, y, false)
		}
	}
	provider := &fakeProvider{masks: []*Mask{cand}, scores: []float64{0.9}}
	engine := NewEngine(provider)

	_, err := engine.BindImage(uniformImage(100, 100, red))
	require.NoError(t, err)

	mask, err := engine.GenerateMask(
		PointPrompt{Point: geometry.PointInt{X: 25, Y: 50}},
		RefinementOptions{Level: LevelDetail, Cleanup: true},
	)
	require.NoError(t, err)
	require.NotNil(t, mask)
	require.Equal(t, cand.Pix, mask.Pix)
}

// Wall-click output must be one region reachable from the click: bridging
// closes the gap across a thin stripe instead of returning two islands.
func TestGenerateMaskWallClickConnected(t *testing.T) {
	photo := halfImage(100, 100, 48)
	for y := 0; y < 100; y++ {
		for x := 51; x < 100; x++ {
			photo.SetNRGBA(x, y, red)
		}
	}
	// photo is now red everywhere except a blue stripe at x in [48,51).

	leftWall := rectMask(100, 100, 0, 0, 48, 100)
	rightWall := rectMask(100, 100, 51, 0, 100, 100)
	provider := &fakeProvider{masks: []*Mask{leftWall, rightWall}, scores: []float64{0.9, 0.85}}
	engine := NewEngine(provider)

	_, err := engine.BindImage(photo)
	require.NoError(t, err)

	ref := geometry.PointInt{X: 25, Y: 50}
	mask, err := engine.GenerateMask(
		PointPrompt{Point: ref},
		RefinementOptions{Level: LevelWall, WallClick: true, Cleanup: true},
	)
	require.NoError(t, err)
	require.NotNil(t, mask)
	require.True(t, mask.At(ref.X, ref.Y))
	require.True(t, reachableFrom(mask, ref), "wall-click output must be a single connected region")

	// Both wall faces are painted.
	require.True(t, mask.At(10, 50))
	require.True(t, mask.At(90, 50))
}
