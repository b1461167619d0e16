package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotCodes(t *testing.T) {
	t.Run("track codes follow color sides and junctions", func(t *testing.T) {
		expected := map[int]string{0: "r1", 5: "r6", 6: "rg", 7: "g1", 13: "gy", 14: "y1", 20: "yb", 21: "b1", 27: "br"}
		for i, code := range expected {
			s, err := TrackSlot(i)
			require.NoError(t, err)
			require.Equal(t, code, s.Code())
		}
	})

	t.Run("every code parses back to its slot", func(t *testing.T) {
		for i := 0; i < NumSlots; i++ {
			s := Slot(i)
			got, err := ParseSlot(s.Code())
			require.NoError(t, err)
			require.Equal(t, s, got)
		}
	})

	t.Run("home stretch codes are upper case per owner", func(t *testing.T) {
		s, err := StretchSlot(Yellow, 2)
		require.NoError(t, err)
		require.Equal(t, "Y3", s.Code())
		require.True(t, s.IsStretch())
		require.Equal(t, Yellow, s.StretchOwner())
		require.Equal(t, 2, s.StretchIndex())
	})
}

func TestSlotIndexErrors(t *testing.T) {
	t.Run("rejecting out of range track index", func(t *testing.T) {
		_, err := TrackSlot(TrackSlots)

		var indexErr *BoardIndexError
		require.True(t, errors.As(err, &indexErr), "Should return a BoardIndexError")
		require.Equal(t, TrackSlots, indexErr.Index)
		require.ErrorIs(t, err, ErrBoardIndex)
	})

	t.Run("rejecting out of range stretch index", func(t *testing.T) {
		_, err := StretchSlot(Red, StretchSlots)
		require.ErrorIs(t, err, ErrBoardIndex)

		_, err = StretchSlot(Color(7), 0)
		require.ErrorIs(t, err, ErrBoardIndex)
	})

	t.Run("rejecting unknown codes", func(t *testing.T) {
		_, err := ParseSlot("zz")
		require.ErrorIs(t, err, ErrBoardIndex)
	})
}

func TestStartAndJunctionSlots(t *testing.T) {
	starts := map[Color]string{Red: "r1", Green: "g1", Yellow: "y1", Blue: "b1"}
	junctions := map[Color]string{Red: "br", Green: "rg", Yellow: "gy", Blue: "yb"}
	for _, c := range AllColors {
		require.Equal(t, starts[c], StartSlot(c).Code(), "start slot of %s", c)
		require.Equal(t, junctions[c], JunctionSlot(c).Code(), "junction slot of %s", c)
		require.Equal(t, JunctionProgress, Distance(StartSlot(c), JunctionSlot(c)))
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("Green")
	require.NoError(t, err)
	require.Equal(t, Green, c)

	c, err = ParseColor("b")
	require.NoError(t, err)
	require.Equal(t, Blue, c)

	_, err = ParseColor("purple")
	require.Error(t, err)
}
