package video

import (
	"fmt"
)

// Sampler selects which frames of a video to keep so that a target
// sampling rate is achieved.  The fractional frame interval is
// accumulated rather than truncated, so non integer ratios between the
// source frame rate and the target rate do not drift the achieved rate
// over the length of the video.
type Sampler struct {
	interval float64
	next     float64
}

// NewSampler returns a Sampler that keeps rate frames per second from a
// source running at sourceFPS.  A rate at or above the source frame rate
// keeps every frame.
func NewSampler(sourceFPS, rate float64) (*Sampler, error) {

	if sourceFPS <= 0 {
		return nil, fmt.Errorf("invalid source frame rate %f", sourceFPS)
	}

	if rate <= 0 {
		return nil, fmt.Errorf("invalid sampling rate %f", rate)
	}

	interval := sourceFPS / rate

	if interval < 1 {
		interval = 1
	}

	return &Sampler{
		interval: interval,
	}, nil
}

// Take reports whether the frame at the given zero based index should be
// kept.  Frames must be offered in order.
func (s *Sampler) Take(frameIdx int) bool {

	if float64(frameIdx) < s.next {
		return false
	}

	s.next += s.interval

	return true
}

// Reset restarts the sampling schedule for a new video
func (s *Sampler) Reset() {
	s.next = 0
}
