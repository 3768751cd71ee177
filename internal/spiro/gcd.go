package spiro

// snapTolerance is how far (in units) a requested radius may be nudged to
// find a curve that closes after fewer orbits.
const snapTolerance = 3

// GCD returns the greatest common divisor of a and b using Euclid's
// algorithm, with GCD(a, 0) = a and GCD(0, b) = b. Radii are never zero, so
// GCD(0, 0) signals a degenerate curve; it is logged and treated as 1 so that
// callers dividing by it stay finite.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		spiroLogger.Printf("degenerate curve: gcd(0, 0)")
		return 1
	}
	return a
}

// orbitCount is the number of times the moving circle travels around the
// fixed one before the curve closes.
func orbitCount(fixed, moving int) int {
	return max(moving/GCD(fixed, moving), 1)
}

// optimalSnap picks an integer within snapTolerance of requested, and within
// [lo, hi], whose orbit count is smallest. Candidates are scanned outwards,
// +1, -1, +2, -2, ..., and only a strictly smaller orbit count displaces the
// current choice, so ties go to the candidate found first.
func optimalSnap(requested, lo, hi int, orbits func(int) int) int {
	if lo <= hi {
		requested = min(max(requested, lo), hi)
	}
	lo = max(lo, requested-snapTolerance)
	hi = min(hi, requested+snapTolerance)

	best, bestOrbits := requested, orbits(requested)
	for dx := 1; dx <= snapTolerance; dx++ {
		for _, tv := range [2]int{requested + dx, requested - dx} {
			if tv < lo || tv > hi || tv <= 0 {
				continue
			}
			if o := orbits(tv); o < bestOrbits {
				best, bestOrbits = tv, o
			}
		}
	}
	return best
}

// snapFixed snaps a fixed radius for the given moving radius.
func snapFixed(moving, lo, requested, hi int) int {
	return optimalSnap(requested, lo, hi, func(fixed int) int { return orbitCount(fixed, moving) })
}

// snapMoving snaps a moving radius for the given fixed radius.
func snapMoving(fixed, lo, requested, hi int) int {
	return optimalSnap(requested, lo, hi, func(moving int) int { return orbitCount(fixed, moving) })
}
