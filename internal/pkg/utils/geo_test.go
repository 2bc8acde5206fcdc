package utils

import (
	"math"
	"testing"
)

func TestHaversineSamePoint(t *testing.T) {
	d := CalculateHaversineDistance(-6.2088, 106.8456, -6.2088, 106.8456)
	if d != 0 {
		t.Errorf("distance between identical points = %f, want 0", d)
	}
}

func TestHaversineAntipodal(t *testing.T) {
	// Antipodal points are half the earth's circumference apart.
	want := math.Pi * 6371000
	d := CalculateHaversineDistance(0, 0, 0, 180)
	if math.Abs(d-want) > 1 {
		t.Errorf("antipodal distance = %f, want %f", d, want)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Jakarta Monas to Kota Tua, roughly 5.1 km.
	d := CalculateHaversineDistance(-6.1754, 106.8272, -6.1352, 106.8133)
	if d < 4500 || d > 5500 {
		t.Errorf("distance = %f, want roughly 5100", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := CalculateHaversineDistance(51.5007, -0.1246, 40.6892, -74.0445)
	b := CalculateHaversineDistance(40.6892, -74.0445, 51.5007, -0.1246)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("haversine not symmetric: %f vs %f", a, b)
	}
}
