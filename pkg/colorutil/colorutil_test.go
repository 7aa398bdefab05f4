package colorutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRGBToHSVPrimaries(t *testing.T) {
	h, s, v := RGBToHSV(255, 0, 0)
	require.Equal(t, 0.0, h)
	require.Equal(t, 255.0, s)
	require.Equal(t, 255.0, v)

	h, _, _ = RGBToHSV(0, 255, 0)
	require.Equal(t, 60.0, h)

	h, _, _ = RGBToHSV(0, 0, 255)
	require.Equal(t, 120.0, h)

	_, s, v = RGBToHSV(128, 128, 128)
	require.Equal(t, 0.0, s)
	require.InDelta(t, 128.0, v, 0.5)
}

func TestHueDistanceWraps(t *testing.T) {
	require.Equal(t, 10.0, HueDistance(5, 175))
	require.Equal(t, 60.0, HueDistance(0, 120))
	require.Equal(t, 0.0, HueDistance(90, 90))
	require.Equal(t, 90.0, HueDistance(0, 90))
}

func TestMaxChannelDiff(t *testing.T) {
	a := RGB{R: 100, G: 150, B: 200}
	b := RGB{R: 110, G: 120, B: 205}
	require.Equal(t, 30.0, MaxChannelDiff(a, b))
	require.Equal(t, 0.0, MaxChannelDiff(a, a))
}

func TestMedianPicksDominantSide(t *testing.T) {
	// Five red samples and four blue ones: the median must be pure red,
	// not a purple blend.
	colors := []RGB{
		{R: 255}, {R: 255}, {R: 255}, {R: 255}, {R: 255},
		{B: 255}, {B: 255}, {B: 255}, {B: 255},
	}
	m := Median(colors)
	require.Equal(t, RGB{R: 255}, m)

	require.Equal(t, RGB{}, Median(nil))
}

func TestSaturation(t *testing.T) {
	require.InDelta(t, 0.996, RGB{R: 255}.Saturation(), 0.01)
	require.Equal(t, 0.0, RGB{R: 128, G: 128, B: 128}.Saturation())
}
