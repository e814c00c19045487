package ipcore

import "math/bits"

// CeilDiv returns ceil(a/b) for positive b.
func CeilDiv(a, b int) int {
	if b <= 0 {
		panic("ipcore: CeilDiv by non-positive divisor")
	}
	return (a + b - 1) / b
}

// Clog2 returns the number of address bits needed to index n entries.
// The result is never below 1 so that a generated bus is never zero-width.
func Clog2(n int) int {
	if n <= 2 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns log2(n) for a power of two n, and -1 otherwise.
func Log2(n int) int {
	if !IsPow2(n) {
		return -1
	}
	return bits.TrailingZeros(uint(n))
}
