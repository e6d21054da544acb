package statistics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func noopTier(name string) Tier {
	return Tier{
		Name: name,
		Fetch: func(ctx context.Context, username string) (RawProfile, error) {
			return RawProfile{Leetcode: nil}, nil
		},
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	platform := Platform{Name: "leetcode", Tiers: []Tier{noopTier("fast")}}

	require.NoError(t, registry.Register(platform))
	require.Error(t, registry.Register(platform))
}

func TestRegistryRequiresNameAndTiers(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(Platform{Tiers: []Tier{noopTier("fast")}})
	require.Error(t, err)

	err = registry.Register(Platform{Name: "codeforces"})
	require.Error(t, err)
}

func TestRegistryNamesSorted(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"hackerrank", "codechef", "leetcode"} {
		require.NoError(t, registry.Register(Platform{
			Name:  name,
			Tiers: []Tier{noopTier("fast")},
		}))
	}

	require.Equal(t, []string{"codechef", "hackerrank", "leetcode"}, registry.Names())

	_, ok := registry.Get("codechef")
	require.True(t, ok)
	_, ok = registry.Get("atcoder")
	require.False(t, ok)
}
