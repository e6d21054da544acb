package scrapeerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsMatchesByKind(t *testing.T) {
	err := New(KindUserNotFound, "leetcode", "ghost", fmt.Errorf("http 404"))
	require.True(t, errors.Is(err, ErrUserNotFound))
	require.False(t, errors.Is(err, ErrAccessDenied))
}

func TestFromStatus(t *testing.T) {
	require.Nil(t, FromStatus("codechef", "x", 200))
	require.True(t, errors.Is(FromStatus("codechef", "x", 404), ErrUserNotFound))
	require.True(t, errors.Is(FromStatus("codechef", "x", 403), ErrAccessDenied))
	require.True(t, errors.Is(FromStatus("codechef", "x", 429), ErrAccessDenied))
	require.True(t, errors.Is(FromStatus("codechef", "x", 502), ErrNetwork))
}

func TestWrappedErrorsUnwrap(t *testing.T) {
	inner := fmt.Errorf("selector missing")
	err := New(KindParse, "hackerrank", "x", inner)
	require.ErrorIs(t, err, inner)
	require.Equal(t, KindParse, KindOf(err))
}

func TestKindOfUnclassified(t *testing.T) {
	require.Equal(t, KindNetwork, KindOf(fmt.Errorf("dial tcp: timeout")))
}
