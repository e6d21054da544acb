package statcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	require.Equal(t, "leetcode:alice", Key("leetcode", "alice"))
}

func TestExpiry(t *testing.T) {
	c := New[string](16, time.Millisecond*50)

	c.Add(Key("codeforces", "alice"), "cached")
	got, hit := c.Get(Key("codeforces", "alice"))
	require.True(t, hit)
	require.Equal(t, "cached", got)

	_, hit = c.Get(Key("codeforces", "bob"))
	require.False(t, hit)

	time.Sleep(time.Millisecond * 80)
	_, hit = c.Get(Key("codeforces", "alice"))
	require.False(t, hit)
}

func TestRemove(t *testing.T) {
	c := New[int](16, time.Minute)
	c.Add("a", 1)
	c.Remove("a")
	_, hit := c.Get("a")
	require.False(t, hit)
}
