package spiro

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGCD(t *testing.T) {
	for a := 1; a <= 60; a++ {
		for b := 1; b <= 60; b++ {
			g := GCD(a, b)
			assert.Zero(t, a%g, "gcd(%d, %d) = %d doesn't divide a", a, b, g)
			assert.Zero(t, b%g, "gcd(%d, %d) = %d doesn't divide b", a, b, g)
			assert.Equal(t, g, GCD(b, a))
			assert.Positive(t, orbitCount(a, b))
			assert.Equal(t, b/g, orbitCount(a, b))
		}
	}

	assert.Equal(t, 12, GCD(96, 36))
	assert.Equal(t, 7, GCD(7, 0))
	assert.Equal(t, 9, GCD(0, 9))
	assert.Equal(t, 4, GCD(-8, 12))
	assert.Equal(t, 1, GCD(0, 0), "degenerate input must not yield a zero divisor")
}

func TestOptimalSnapPrefersFewerOrbits(t *testing.T) {
	// 97 and 36 are coprime (36 orbits); 96 gives 3.
	assert.Equal(t, 96, snapFixed(36, 5, 97, 1000))
	// 101: +1 → 102 (6 orbits), -2 → 99 (4 orbits).
	assert.Equal(t, 99, snapFixed(36, 5, 101, 1000))
	// Already optimal within the window.
	assert.Equal(t, 96, snapFixed(36, 5, 96, 1000))
	// 40/96 needs 5 orbits; nothing within ±3 does better.
	assert.Equal(t, 40, snapMoving(96, 5, 40, 91))
}

func TestOptimalSnapScanOrder(t *testing.T) {
	// Every neighbour ties, so the first one scanned (+1) wins.
	orbits := func(v int) int {
		if v == 10 {
			return 5
		}
		return 1
	}
	assert.Equal(t, 11, optimalSnap(10, 0, 100, orbits))

	// With +1 out of range, -1 comes next.
	assert.Equal(t, 9, optimalSnap(10, 0, 10, orbits))

	// A strictly smaller count further out still wins.
	orbits = func(v int) int {
		switch v {
		case 10:
			return 5
		case 8:
			return 1
		}
		return 3
	}
	assert.Equal(t, 8, optimalSnap(10, 0, 100, orbits))
}

func TestOptimalSnapStaysInWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		other := 5 + rng.Intn(300)
		lo := 5 + rng.Intn(100)
		hi := lo + rng.Intn(200)
		requested := lo + rng.Intn(hi-lo+1)

		got := snapFixed(other, lo, requested, hi)
		assert.GreaterOrEqual(t, got, max(lo, requested-snapTolerance))
		assert.LessOrEqual(t, got, min(hi, requested+snapTolerance))
		assert.LessOrEqual(t, orbitCount(got, other), orbitCount(requested, other))

		got = snapMoving(other, lo, requested, hi)
		assert.GreaterOrEqual(t, got, max(lo, requested-snapTolerance))
		assert.LessOrEqual(t, got, min(hi, requested+snapTolerance))
	}
}
