// Package money provides saturating arithmetic for monetary amounts and
// counters. Saturation is preferred over wraparound everywhere: a saturated
// counter halts new-entity creation instead of reissuing IDs, and a saturated
// earnings computation caps the payout instead of corrupting it.
package money

import "math"

// SaturatingAddUint64 returns a+b, clamped to MaxUint64.
func SaturatingAddUint64(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// SaturatingMulInt64 returns a*b for non-negative operands, clamped to
// MaxInt64. Negative operands are treated as zero.
func SaturatingMulInt64(a, b int64) int64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}

// SaturatingAddUint32 returns a+b, clamped to MaxUint32.
func SaturatingAddUint32(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}
