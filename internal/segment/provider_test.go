package segment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCandidatesReplicatesSingleMask(t *testing.T) {
	m := rectMask(64, 64, 0, 0, 10, 10)
	set, err := NormalizeCandidates([]*Mask{m}, []float64{0.9}, 64, 64)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.Same(t, m, set.Masks[i])
	}
	require.Equal(t, [3]float64{0.9, 0.9, 0.9}, set.Scores)
}

func TestNormalizeCandidatesTruncatesExtras(t *testing.T) {
	masks := []*Mask{
		rectMask(64, 64, 0, 0, 5, 5),
		rectMask(64, 64, 0, 0, 10, 10),
		rectMask(64, 64, 0, 0, 20, 20),
		rectMask(64, 64, 0, 0, 40, 40),
	}
	set, err := NormalizeCandidates(masks, []float64{0.9, 0.8, 0.7, 0.6}, 64, 64)
	require.NoError(t, err)
	require.Same(t, masks[0], set.Masks[0])
	require.Same(t, masks[2], set.Masks[2])
	require.Equal(t, [3]float64{0.9, 0.8, 0.7}, set.Scores)
}

func TestNormalizeCandidatesMissingScoresDefaultToZero(t *testing.T) {
	masks := []*Mask{
		rectMask(64, 64, 0, 0, 5, 5),
		rectMask(64, 64, 0, 0, 10, 10),
	}
	set, err := NormalizeCandidates(masks, []float64{0.9}, 64, 64)
	require.NoError(t, err)
	require.Equal(t, [3]float64{0.9, 0, 0}, set.Scores)
	// The last mask is repeated to fill the set.
	require.Same(t, masks[1], set.Masks[2])
}

func TestNormalizeCandidatesRejectsBadInput(t *testing.T) {
	_, err := NormalizeCandidates(nil, nil, 64, 64)
	require.Error(t, err)

	_, err = NormalizeCandidates([]*Mask{nil}, nil, 64, 64)
	require.Error(t, err)

	wrongSize := rectMask(32, 32, 0, 0, 5, 5)
	_, err = NormalizeCandidates([]*Mask{wrongSize}, []float64{0.9}, 64, 64)
	require.Error(t, err)
}

func TestCandidateSetEmpty(t *testing.T) {
	set := &CandidateSet{Masks: [3]*Mask{NewMask(8, 8), NewMask(8, 8), NewMask(8, 8)}}
	require.True(t, set.Empty())

	set.Masks[1].Set(3, 3, true)
	require.False(t, set.Empty())
}
