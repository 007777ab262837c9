package money

import (
	"math"
	"testing"
)

func TestSaturatingAddUint64(t *testing.T) {
	if got := SaturatingAddUint64(1, 2); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
	if got := SaturatingAddUint64(math.MaxUint64, 1); got != math.MaxUint64 {
		t.Errorf("overflow should saturate, got %d", got)
	}
	if got := SaturatingAddUint64(math.MaxUint64-1, 1); got != math.MaxUint64 {
		t.Errorf("got %d, want MaxUint64", got)
	}
}

func TestSaturatingMulInt64(t *testing.T) {
	if got := SaturatingMulInt64(1000, 3); got != 3000 {
		t.Errorf("got %d, want 3000", got)
	}
	if got := SaturatingMulInt64(math.MaxInt64, 2); got != math.MaxInt64 {
		t.Errorf("overflow should saturate, got %d", got)
	}
	if got := SaturatingMulInt64(0, 5); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
	if got := SaturatingMulInt64(-3, 5); got != 0 {
		t.Errorf("negative operand should yield 0, got %d", got)
	}
}

func TestSaturatingAddUint32(t *testing.T) {
	if got := SaturatingAddUint32(math.MaxUint32, 1); got != math.MaxUint32 {
		t.Errorf("overflow should saturate, got %d", got)
	}
	if got := SaturatingAddUint32(99, 1); got != 100 {
		t.Errorf("got %d, want 100", got)
	}
}
