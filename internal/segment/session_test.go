package segment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionBuffers(t *testing.T) {
	s := testSession(halfImage(64, 48, 32))
	defer s.Close()

	require.Equal(t, 64, s.Width())
	require.Equal(t, 48, s.Height())
	require.Equal(t, uint64(1), s.Version())
	require.Len(t, s.pix16, 64*48*3)
	require.Len(t, s.raw, 64*48*3)
	require.Equal(t, 48, s.edges.Rows())
	require.Equal(t, 64, s.edges.Cols())
}

func TestSessionColorAccess(t *testing.T) {
	s := testSession(halfImage(64, 48, 32))
	defer s.Close()

	left := s.rgbAt(10, 10)
	require.Equal(t, 255.0, left.R)
	require.Equal(t, 0.0, left.G)
	require.Equal(t, 0.0, left.B)

	right := s.rgbAt(50, 10)
	require.Equal(t, 0.0, right.R)
	require.Equal(t, 255.0, right.B)
}

func TestSessionEdgeMap(t *testing.T) {
	s := testSession(halfImage(64, 48, 32))
	defer s.Close()

	// Uniform interior has no edge energy; the color boundary does.
	require.Zero(t, s.edgeAt(10, 24))
	require.Zero(t, s.edgeAt(55, 24))
	boundary := s.edgeAt(32, 24)
	require.Greater(t, int(boundary), 0)
}

func TestSessionSameImage(t *testing.T) {
	s := testSession(halfImage(64, 48, 32))
	defer s.Close()

	other := testSession(halfImage(64, 48, 32))
	defer other.Close()
	require.True(t, s.sameImage(other.raw))

	shifted := testSession(halfImage(64, 48, 33))
	defer shifted.Close()
	require.False(t, s.sameImage(shifted.raw))

	require.False(t, s.sameImage(nil))
}
