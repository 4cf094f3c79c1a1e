package buf

import (
	"math"
	"testing"
)

func TestAddInt64(t *testing.T) {
	tests := []struct {
		name   string
		a, b   int64
		want   int64
		wantOK bool
	}{
		{"simple", 1, 2, 3, true},
		{"zero", 0, 0, 0, true},
		{"max plus zero", math.MaxInt64, 0, math.MaxInt64, true},
		{"overflow", math.MaxInt64, 1, 0, false},
		{"negative a", -1, 2, 0, false},
		{"negative b", 2, -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AddInt64(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("AddInt64(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("AddInt64(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMulInt64(t *testing.T) {
	tests := []struct {
		name   string
		a, b   int64
		want   int64
		wantOK bool
	}{
		{"simple", 64, 4096, 262144, true},
		{"zero a", 0, 4096, 0, true},
		{"zero b", 64, 0, 0, true},
		{"overflow", math.MaxInt64, 2, 0, false},
		{"negative a", -64, 4096, 0, false},
		{"negative b", 64, -4096, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MulInt64(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("MulInt64(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("MulInt64(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	b := make([]byte, 16)

	got, ok := Slice(b, 4, 8)
	if !ok || len(got) != 8 {
		t.Fatalf("Slice(b, 4, 8) = len %d, ok %v", len(got), ok)
	}

	if _, ok := Slice(b, 12, 8); ok {
		t.Fatal("expected out-of-bounds slice to fail")
	}
	if _, ok := Slice(b, -1, 4); ok {
		t.Fatal("expected negative offset to fail")
	}
	if _, ok := Slice(b, 4, -1); ok {
		t.Fatal("expected negative length to fail")
	}
	if _, ok := Slice(b, 17, 0); ok {
		t.Fatal("expected offset past end to fail")
	}

	// Zero-length view at the exact end is fine.
	if _, ok := Slice(b, 16, 0); !ok {
		t.Fatal("expected zero-length slice at end to succeed")
	}
}

func TestHas(t *testing.T) {
	b := make([]byte, 8)
	if !Has(b, 0, 8) {
		t.Fatal("Has(b, 0, 8) should hold")
	}
	if Has(b, 1, 8) {
		t.Fatal("Has(b, 1, 8) should not hold")
	}
}
