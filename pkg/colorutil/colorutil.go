// Package colorutil provides shared color utilities for the paint visualizer.
package colorutil

import (
	"math"
	"sort"
)

// RGB is an 8-bit RGB triple carried as float64 so that medians and
// channel differences can be computed without repeated conversions.
type RGB struct {
	R, G, B float64
}

// Intensity returns the plain channel mean.
func (c RGB) Intensity() float64 {
	return (c.R + c.G + c.B) / 3.0
}

// Saturation estimates how vivid the color is as (max-min)/(max+1).
// A plain chroma ratio is enough to separate "vibrant" paint seeds
// from neutral plaster; it avoids a full HSV round trip.
func (c RGB) Saturation() float64 {
	maxC := math.Max(c.R, math.Max(c.G, c.B))
	minC := math.Min(c.R, math.Min(c.G, c.B))
	return (maxC - minC) / (maxC + 1)
}

// Hue returns the hue in the OpenCV convention (0-180).
func (c RGB) Hue() float64 {
	h, _, _ := RGBToHSV(c.R, c.G, c.B)
	return h
}

// RGBToHSV converts RGB (0-255) to HSV (OpenCV convention: H 0-180, S 0-255, V 0-255).
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC * 255.0 // V in 0-255

	if maxC == 0 {
		s = 0
	} else {
		s = (diff / maxC) * 255.0 // S in 0-255
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	h = h / 2 // Convert to OpenCV's 0-180 range

	return h, s, v
}

// HueDistance returns the wrapped distance between two OpenCV hues (0-180).
func HueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 90 {
		d = 180 - d
	}
	return d
}

// MaxChannelDiff returns the largest absolute per-channel difference
// between two colors. Stricter than a mean difference: a tint shift in
// any single channel is enough to reject a pixel.
func MaxChannelDiff(a, b RGB) float64 {
	dr := math.Abs(a.R - b.R)
	dg := math.Abs(a.G - b.G)
	db := math.Abs(a.B - b.B)
	return math.Max(dr, math.Max(dg, db))
}

// Median returns the per-channel median of a set of colors. The median,
// not the mean, is used for seed colors: sampling across a boundary must
// pick the dominant color instead of blending the two sides.
func Median(colors []RGB) RGB {
	if len(colors) == 0 {
		return RGB{}
	}
	rs := make([]float64, len(colors))
	gs := make([]float64, len(colors))
	bs := make([]float64, len(colors))
	for i, c := range colors {
		rs[i] = c.R
		gs[i] = c.G
		bs[i] = c.B
	}
	sort.Float64s(rs)
	sort.Float64s(gs)
	sort.Float64s(bs)
	mid := len(colors) / 2
	return RGB{R: rs[mid], G: gs[mid], B: bs[mid]}
}
