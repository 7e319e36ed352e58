package video

import (
	"testing"
)

// takeFrames runs count frames through the sampler and returns the kept
// frame indices
func takeFrames(s *Sampler, count int) []int {

	var kept []int

	for i := 0; i < count; i++ {
		if s.Take(i) {
			kept = append(kept, i)
		}
	}

	return kept
}

func TestSamplerIntegerInterval(t *testing.T) {

	s, err := NewSampler(30, 1)

	if err != nil {
		t.Fatalf("error creating sampler: %v", err)
	}

	kept := takeFrames(s, 90)

	want := []int{0, 30, 60}

	if len(kept) != len(want) {
		t.Fatalf("expected %d frames, got %v", len(want), kept)
	}

	for i, idx := range want {
		if kept[i] != idx {
			t.Errorf("expected frame %d at position %d, got %d", idx, i,
				kept[i])
		}
	}
}

// TestSamplerFractionalInterval checks a non integer frame interval does
// not drift, 25fps sampled at 2fps has an interval of 12.5 frames
func TestSamplerFractionalInterval(t *testing.T) {

	s, err := NewSampler(25, 2)

	if err != nil {
		t.Fatalf("error creating sampler: %v", err)
	}

	kept := takeFrames(s, 51)

	want := []int{0, 13, 25, 38, 50}

	if len(kept) != len(want) {
		t.Fatalf("expected %d frames, got %v", len(want), kept)
	}

	for i, idx := range want {
		if kept[i] != idx {
			t.Errorf("expected frame %d at position %d, got %d", idx, i,
				kept[i])
		}
	}
}

// TestSamplerNoDrift checks the achieved rate over a long run matches the
// requested rate exactly, truncating the interval would yield 21 frames
// here instead of 20
func TestSamplerNoDrift(t *testing.T) {

	s, err := NewSampler(25, 2)

	if err != nil {
		t.Fatalf("error creating sampler: %v", err)
	}

	// 250 frames is 10 seconds of video, 2fps keeps exactly 20 frames
	kept := takeFrames(s, 250)

	if len(kept) != 20 {
		t.Errorf("expected 20 frames over 10 seconds, got %d", len(kept))
	}
}

func TestSamplerRateAboveSource(t *testing.T) {

	s, err := NewSampler(25, 60)

	if err != nil {
		t.Fatalf("error creating sampler: %v", err)
	}

	if kept := takeFrames(s, 10); len(kept) != 10 {
		t.Errorf("expected every frame kept, got %d of 10", len(kept))
	}
}

func TestSamplerInvalidArgs(t *testing.T) {

	if _, err := NewSampler(0, 1); err == nil {
		t.Errorf("expected error for zero source frame rate")
	}

	if _, err := NewSampler(-25, 1); err == nil {
		t.Errorf("expected error for negative source frame rate")
	}

	if _, err := NewSampler(25, 0); err == nil {
		t.Errorf("expected error for zero sampling rate")
	}
}

func TestSamplerReset(t *testing.T) {

	s, err := NewSampler(30, 1)

	if err != nil {
		t.Fatalf("error creating sampler: %v", err)
	}

	takeFrames(s, 45)

	s.Reset()

	if !s.Take(0) {
		t.Errorf("expected frame 0 kept after reset")
	}
}
