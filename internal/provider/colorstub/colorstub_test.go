package colorstub

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/balamernstackdev/latest-paint-visualizer/pkg/geometry"
)

func splitImage(w, h, split int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < split {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestPredictRequiresImage(t *testing.T) {
	p := New()
	_, _, err := p.Predict([]geometry.PointInt{{X: 1, Y: 1}}, []int{1}, nil)
	require.Error(t, err)
}

func TestPredictPointCandidates(t *testing.T) {
	p := New()
	require.NoError(t, p.SetImage(splitImage(100, 100, 50)))

	masks, scores, err := p.Predict([]geometry.PointInt{{X: 25, Y: 50}}, []int{1}, nil)
	require.NoError(t, err)
	require.Len(t, masks, 3)
	require.Len(t, scores, 3)

	for i, m := range masks {
		require.Equal(t, 100, m.Width)
		require.Equal(t, 100, m.Height)
		require.True(t, m.At(25, 50), "candidate %d must contain the click", i)
		require.False(t, m.At(75, 50), "candidate %d must not cross the color boundary", i)
	}

	// Scores decline with looseness.
	require.Greater(t, scores[0], scores[1])
	require.Greater(t, scores[1], scores[2])
}

func TestPredictBoxRestrictsToBox(t *testing.T) {
	p := New()
	require.NoError(t, p.SetImage(splitImage(100, 100, 50)))

	box := geometry.RectInt{X1: 10, Y1: 10, X2: 40, Y2: 40}
	masks, _, err := p.Predict(nil, nil, &box)
	require.NoError(t, err)

	for _, m := range masks {
		require.True(t, m.At(20, 20))
		for y := 0; y < 100; y++ {
			for x := 0; x < 100; x++ {
				if m.At(x, y) {
					require.True(t, x >= 10 && x < 40 && y >= 10 && y < 40)
				}
			}
		}
	}
}

func TestPredictIgnoresBackgroundPoints(t *testing.T) {
	p := New()
	require.NoError(t, p.SetImage(splitImage(100, 100, 50)))

	masks, _, err := p.Predict(
		[]geometry.PointInt{{X: 75, Y: 50}, {X: 25, Y: 50}},
		[]int{0, 1}, nil)
	require.NoError(t, err)
	require.True(t, masks[0].At(25, 50))
	require.False(t, masks[0].At(75, 50), "background point must not seed growth")
}

func TestPredictNoPositiveLocation(t *testing.T) {
	p := New()
	require.NoError(t, p.SetImage(splitImage(50, 50, 25)))

	_, _, err := p.Predict([]geometry.PointInt{{X: 1, Y: 1}}, []int{0}, nil)
	require.Error(t, err)
}
