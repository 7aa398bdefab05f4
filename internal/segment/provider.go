package segment

import (
	"fmt"
	"image"

	"github.com/balamernstackdev/latest-paint-visualizer/pkg/geometry"
)

// CandidateProvider is the promptable segmentation capability the pipeline
// consumes. Implementations are expected to be expensive (neural inference)
// and sequential; the engine issues at most one Predict per GenerateMask and
// never calls Predict concurrently with SetImage.
type CandidateProvider interface {
	// SetImage binds an image for subsequent Predict calls (for a neural
	// provider this is where embeddings are computed).
	SetImage(img image.Image) error

	// Predict returns candidate masks with confidence scores for a prompt.
	// Either points (with parallel labels) or box may be nil. Providers may
	// return one or more candidates; NormalizeCandidates reshapes the output
	// to the exactly-three contract before it enters the pipeline.
	Predict(points []geometry.PointInt, labels []int, box *geometry.RectInt) ([]*Mask, []float64, error)
}

// NormalizeCandidates reshapes raw provider output to exactly three masks and
// scores, ordered most-granular first. A single mask is replicated; more than
// three keeps the first three; missing scores default to zero.
func NormalizeCandidates(masks []*Mask, scores []float64, width, height int) (*CandidateSet, error) {
	if len(masks) == 0 {
		return nil, fmt.Errorf("provider returned no masks")
	}
	for i, m := range masks {
		if m == nil {
			return nil, fmt.Errorf("provider returned nil mask at index %d", i)
		}
		if m.Width != width || m.Height != height {
			return nil, fmt.Errorf("candidate %d is %dx%d, image is %dx%d",
				i, m.Width, m.Height, width, height)
		}
	}

	set := &CandidateSet{}
	for i := 0; i < 3; i++ {
		src := i
		if src >= len(masks) {
			src = len(masks) - 1
		}
		set.Masks[i] = masks[src]
		if src < len(scores) {
			set.Scores[i] = scores[src]
		}
	}
	return set, nil
}
