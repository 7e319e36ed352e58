package tracker

import (
	"fmt"
	"sort"
)

// Config holds the tunable parameters of a tracking Session
type Config struct {
	// HighConfThreshold is the minimum detection score for the first
	// association stage.  Detections below it only take part in the
	// second, recovery stage and never seed new tracks.
	HighConfThreshold float64
	// MatchThreshold is the maximum IoU distance (1-IoU) allowed for a
	// valid track/detection pairing.  No match is better than a bad match.
	MatchThreshold float64
	// MinHits is the number of consecutive matched frames required to
	// confirm a new track
	MinHits int
	// MaxMisses is the number of consecutive missed frames a confirmed
	// track survives before removal
	MaxMisses int
	// ReportLost includes recently lost tracks in the Update output in
	// addition to confirmed ones
	ReportLost bool
}

// DefaultConfig returns the reference session parameters, tuned for a
// 30fps video source
func DefaultConfig() Config {
	return Config{
		HighConfThreshold: 0.5,
		MatchThreshold:    0.8,
		MinHits:           3,
		MaxMisses:         30,
	}
}

// Validate checks the config values are usable
func (c Config) Validate() error {

	if c.HighConfThreshold < 0 || c.HighConfThreshold > 1 {
		return fmt.Errorf("high confidence threshold %f outside [0,1]",
			c.HighConfThreshold)
	}

	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("match threshold %f outside (0,1]",
			c.MatchThreshold)
	}

	if c.MinHits < 1 {
		return fmt.Errorf("minimum hits %d must be at least 1", c.MinHits)
	}

	if c.MaxMisses < 1 {
		return fmt.Errorf("maximum misses %d must be at least 1",
			c.MaxMisses)
	}

	return nil
}

// Session tracks object identities across the frames of a single video.
// It owns the track set exclusively, a Session must not be shared across
// goroutines but independent Sessions are fully isolated from each other.
type Session struct {
	cfg Config
	// Kalman filter shared by all tracks of this session
	kalmanFilter *KalmanFilter
	// tracks maps track ID to the live tracks of the session
	tracks map[int]*Track
	// Current frame ID
	frameID int
	// Counter for assigning unique track IDs
	trackIDCount int
}

// NewSession returns a Session with the given parameters
func NewSession(cfg Config) (*Session, error) {

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}

	return &Session{
		cfg:          cfg,
		kalmanFilter: NewKalmanFilter(1.0/20, 1.0/160),
		tracks:       make(map[int]*Track),
	}, nil
}

// Reset clears all tracks and the identifier counter so the Session can
// start on a new video
func (s *Session) Reset() {
	s.frameID = 0
	s.trackIDCount = 0
	s.tracks = make(map[int]*Track)
}

// FrameID returns the number of frames processed since creation or the
// last Reset
func (s *Session) FrameID() int {
	return s.frameID
}

// Tracks returns every live track of the session regardless of state,
// ordered by track ID
func (s *Session) Tracks() []*Track {

	out := make([]*Track, 0, len(s.tracks))

	for _, t := range s.tracks {
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].id < out[j].id
	})

	return out
}

// Update advances the session by one frame.  It predicts every live track
// forward, associates the predictions with the frame's detections in two
// confidence stratified stages, applies the lifecycle transitions and
// returns the confirmed tracks (plus lost ones when ReportLost is set)
// ordered by track ID.
//
// Malformed detections are returned in the rejected slice and skipped,
// they never fail the frame.  A non-nil error means an internal invariant
// was violated and the session state is no longer trustworthy.
func (s *Session) Update(dets []Detection) ([]*Track, []Rejected, error) {

	s.frameID++

	// Step 1: validate at the boundary and stratify by confidence
	var rejected []Rejected
	var detsHigh, detsLow []Detection

	for i, det := range dets {

		if err := det.Validate(); err != nil {
			rejected = append(rejected, Rejected{
				Index:     i,
				Detection: det,
				Err:       err,
			})
			continue
		}

		if det.Score >= s.cfg.HighConfThreshold {
			detsHigh = append(detsHigh, det)
		} else {
			detsLow = append(detsLow, det)
		}
	}

	// Step 2: predict all live tracks.  The pool is ordered by hit streak
	// so equal cost assignment ties resolve toward established identities.
	pool := make([]*Track, 0, len(s.tracks))

	for _, track := range s.tracks {
		pool = append(pool, track)
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].hitStreak != pool[j].hitStreak {
			return pool[i].hitStreak > pool[j].hitStreak
		}
		return pool[i].id < pool[j].id
	})

	for _, track := range pool {
		track.predict()
	}

	// Step 3: first association stage, high confidence detections against
	// all live tracks
	matchesIdx, unmatchedTrackIdx, unmatchedDetIdx, err := linearAssignment(
		iouDistance(pool, detsHigh),
		len(pool), len(detsHigh), s.cfg.MatchThreshold,
	)

	if err != nil {
		return nil, rejected, fmt.Errorf("association stage 1: %w", err)
	}

	for _, matchIdx := range matchesIdx {
		track := pool[matchIdx[0]]
		det := detsHigh[matchIdx[1]]

		if err := track.applyDetection(det, s.frameID, s.cfg.MinHits); err != nil {
			return nil, rejected, fmt.Errorf("association stage 1: %w", err)
		}
	}

	remainTracks := make([]*Track, 0, len(unmatchedTrackIdx))

	for _, idx := range unmatchedTrackIdx {
		remainTracks = append(remainTracks, pool[idx])
	}

	// Step 4: second association stage, remaining tracks against low
	// confidence detections to recover through occlusion and detector
	// uncertainty
	matchesIdx, unmatchedTrackIdx, _, err = linearAssignment(
		iouDistance(remainTracks, detsLow),
		len(remainTracks), len(detsLow), s.cfg.MatchThreshold,
	)

	if err != nil {
		return nil, rejected, fmt.Errorf("association stage 2: %w", err)
	}

	for _, matchIdx := range matchesIdx {
		track := remainTracks[matchIdx[0]]
		det := detsLow[matchIdx[1]]

		if err := track.applyDetection(det, s.frameID, s.cfg.MinHits); err != nil {
			return nil, rejected, fmt.Errorf("association stage 2: %w", err)
		}
	}

	// Step 5: lifecycle transitions for tracks that missed both stages
	for _, idx := range unmatchedTrackIdx {
		remainTracks[idx].markMissed(s.cfg.MaxMisses)
	}

	// Step 6: unclaimed high confidence detections seed new tracks
	for _, idx := range unmatchedDetIdx {
		det := detsHigh[idx]

		s.trackIDCount++
		track := newTrack(s.kalmanFilter, det, s.trackIDCount, s.frameID)

		if track.hitStreak >= s.cfg.MinHits {
			track.state = Confirmed
		}

		s.tracks[track.id] = track
	}

	// Step 7: drop removed tracks from the track set, their IDs are
	// never reused
	for id, track := range s.tracks {
		if track.state == Removed {
			delete(s.tracks, id)
		}
	}

	return s.output(), rejected, nil
}

// output collects the reportable tracks ordered by track ID
func (s *Session) output() []*Track {

	out := make([]*Track, 0, len(s.tracks))

	for _, track := range s.tracks {
		if track.state == Confirmed ||
			(s.cfg.ReportLost && track.state == Lost) {
			out = append(out, track)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].id < out[j].id
	})

	return out
}
