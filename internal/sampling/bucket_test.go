package sampling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBucket(t *testing.T) {
	for _, weight := range []int{0, 1, 25, 50, 73, 100} {
		b := NewBucket(weight)

		kept := 0
		for i := 0; i < 1000; i++ {
			if b.IsInBucket() {
				kept++
			}
		}

		require.Equal(t, weight*10, kept, "weight %d", weight)
	}
}

func TestBucketSpreadsEvenly(t *testing.T) {
	b := NewBucket(50)

	var got []bool
	for i := 0; i < 4; i++ {
		got = append(got, b.IsInBucket())
	}
	require.Equal(t, []bool{false, true, false, true}, got)
}

func TestNewBucketPanics(t *testing.T) {
	require.Panics(t, func() { NewBucket(-1) })
	require.Panics(t, func() { NewBucket(101) })
}
