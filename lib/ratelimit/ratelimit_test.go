package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSameKeySpacing(t *testing.T) {
	k := NewKeyed(time.Millisecond * 100)
	ctx := context.Background()

	require.Nil(t, k.Await(ctx, "leetcode"))
	start := time.Now()
	require.Nil(t, k.Await(ctx, "leetcode"))
	require.GreaterOrEqual(t, time.Since(start), time.Millisecond*90)
}

func TestDifferentKeysIndependent(t *testing.T) {
	k := NewKeyed(time.Second * 5)
	ctx := context.Background()

	require.Nil(t, k.Await(ctx, "leetcode"))

	start := time.Now()
	require.Nil(t, k.Await(ctx, "codeforces"))
	require.Less(t, time.Since(start), time.Second)
}

func TestAwaitHonorsContext(t *testing.T) {
	k := NewKeyed(time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*50)
	defer cancel()

	require.Nil(t, k.Await(ctx, "codechef"))
	err := k.Await(ctx, "codechef")
	require.NotNil(t, err)
}
