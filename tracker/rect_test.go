package tracker

import (
	"math"
	"testing"
)

// almostEqual checks if two float values are approximately equal
func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestRectDimensions(t *testing.T) {

	r := NewRect(10, 20, 30, 40)

	if r.X1 != 10 || r.Y1 != 20 || r.X2 != 40 || r.Y2 != 60 {
		t.Errorf("unexpected corners [%f, %f, %f, %f]", r.X1, r.Y1, r.X2, r.Y2)
	}

	if r.Width() != 30 || r.Height() != 40 {
		t.Errorf("expected 30x40, got %fx%f", r.Width(), r.Height())
	}

	cx, cy := r.Center()

	if cx != 25 || cy != 40 {
		t.Errorf("expected center (25, 40), got (%f, %f)", cx, cy)
	}
}

func TestRectValid(t *testing.T) {

	cases := []struct {
		name string
		rect Rect
		want bool
	}{
		{"well formed", NewRectFromCorners(0, 0, 10, 10), true},
		{"inverted x", NewRectFromCorners(10, 0, 0, 10), false},
		{"inverted y", NewRectFromCorners(0, 10, 10, 0), false},
		{"zero width", NewRectFromCorners(5, 0, 5, 10), false},
		{"zero height", NewRectFromCorners(0, 5, 10, 5), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rect.Valid(); got != tc.want {
				t.Errorf("expected Valid() = %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCalcIoU(t *testing.T) {

	cases := []struct {
		name string
		a, b Rect
		want float64
	}{
		{
			"identical",
			NewRect(0, 0, 100, 100),
			NewRect(0, 0, 100, 100),
			1.0,
		},
		{
			"disjoint",
			NewRect(0, 0, 10, 10),
			NewRect(50, 50, 10, 10),
			0.0,
		},
		{
			"touching edges",
			NewRect(0, 0, 10, 10),
			NewRect(10, 0, 10, 10),
			0.0,
		},
		{
			// overlap 50x100 over union 2*100x100 - 50x100
			"half shifted",
			NewRect(0, 0, 100, 100),
			NewRect(50, 0, 100, 100),
			5000.0 / 15000.0,
		},
		{
			// 10x10 contained in 20x20
			"contained",
			NewRect(0, 0, 20, 20),
			NewRect(5, 5, 10, 10),
			100.0 / 400.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.CalcIoU(tc.b)

			if !almostEqual(got, tc.want, 1e-9) {
				t.Errorf("expected IoU %f, got %f", tc.want, got)
			}

			// IoU is symmetric
			if rev := tc.b.CalcIoU(tc.a); !almostEqual(rev, got, 1e-9) {
				t.Errorf("IoU not symmetric: %f vs %f", got, rev)
			}
		})
	}
}

func TestXyahRoundTrip(t *testing.T) {

	r := NewRect(100, 150, 60, 120)
	xyah := r.GetXyah()

	if !almostEqual(xyah[0], 130, 1e-9) || !almostEqual(xyah[1], 210, 1e-9) ||
		!almostEqual(xyah[2], 0.5, 1e-9) || !almostEqual(xyah[3], 120, 1e-9) {
		t.Errorf("unexpected xyah %v", xyah)
	}

	back := GenerateRectByXyah(xyah)

	if !almostEqual(back.X1, r.X1, 1e-9) || !almostEqual(back.Y1, r.Y1, 1e-9) ||
		!almostEqual(back.X2, r.X2, 1e-9) || !almostEqual(back.Y2, r.Y2, 1e-9) {
		t.Errorf("expected round trip %v, got %v", r, back)
	}
}
