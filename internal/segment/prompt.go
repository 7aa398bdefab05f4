package segment

import (
	"fmt"

	"github.com/balamernstackdev/latest-paint-visualizer/pkg/geometry"
)

// promptInfo is a prompt normalized into the shape the candidate provider
// and the refinement stages expect.
type promptInfo struct {
	points []geometry.PointInt
	labels []int // 1 foreground, 0 background, parallel to points
	box    *geometry.RectInt

	// ref is the reference location used for seed color sampling, distance
	// decay and connectivity: the last positive point, or the box center.
	ref    geometry.PointInt
	hasRef bool
	isBox  bool
}

// normalizePrompt validates a prompt against the session dimensions and
// derives the reference point. Geometric validation proper (box corner
// ordering, canvas-to-image scaling) happens in the UI layer before a prompt
// reaches the engine; the checks here only catch programming errors.
func normalizePrompt(p Prompt, width, height int) (promptInfo, error) {
	switch pr := p.(type) {
	case PointPrompt:
		pt := pr.Point.Clamp(width, height)
		return promptInfo{
			points: []geometry.PointInt{pt},
			labels: []int{1},
			ref:    pt,
			hasRef: true,
		}, nil

	case MultiPointPrompt:
		if len(pr.Points) == 0 {
			return promptInfo{}, fmt.Errorf("multi-point prompt has no points")
		}
		labels := pr.Labels
		if labels == nil {
			labels = make([]int, len(pr.Points))
			for i := range labels {
				labels[i] = 1
			}
		}
		if len(labels) != len(pr.Points) {
			return promptInfo{}, fmt.Errorf("prompt has %d points but %d labels",
				len(pr.Points), len(labels))
		}
		info := promptInfo{labels: labels}
		info.points = make([]geometry.PointInt, len(pr.Points))
		for i, pt := range pr.Points {
			info.points[i] = pt.Clamp(width, height)
		}
		// Last positive point wins: it is the user's most recent intent.
		for i := len(labels) - 1; i >= 0; i-- {
			if labels[i] == 1 {
				info.ref = info.points[i]
				info.hasRef = true
				break
			}
		}
		return info, nil

	case BoxPrompt:
		if pr.Box.X2 <= pr.Box.X1 || pr.Box.Y2 <= pr.Box.Y1 {
			return promptInfo{}, fmt.Errorf("degenerate box prompt: %+v", pr.Box)
		}
		box := pr.Box
		return promptInfo{
			box:    &box,
			ref:    box.Center().Clamp(width, height),
			hasRef: true,
			isBox:  true,
		}, nil

	default:
		return promptInfo{}, fmt.Errorf("unsupported prompt type %T", p)
	}
}
