package tracker

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// State represents the lifecycle state of a track
type State int

const (
	// Tentative is a newly created track not yet confirmed by enough
	// consecutive matches
	Tentative State = iota
	// Confirmed is an established track reported to the caller
	Confirmed
	// Lost is a confirmed track that missed its match and is retained
	// for possible recovery
	Lost
	// Removed is terminal, the track is deleted from the track set
	Removed
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Tentative:
		return "Tentative"
	case Confirmed:
		return "Confirmed"
	case Lost:
		return "Lost"
	case Removed:
		return "Removed"
	}
	return "Unknown"
}

// Track represents a persistent identity hypothesis for one physical object
// across frames.  Tracks are created and mutated only by the Session that
// owns them.
type Track struct {
	// Kalman filter shared with the owning session
	kalmanFilter *KalmanFilter
	// Mean state vector
	mean StateMean
	// Covariance matrix
	covariance *StateCov
	// id is the unique track identifier, immutable and never reused
	id int
	// Current lifecycle state of the track
	state State
	// box is the current corrected bounding box
	box Rect
	// predicted is the box projected by the motion model for the current
	// frame, compared against detections during association
	predicted Rect
	// label is the object class, fixed at creation
	label int
	// score of the last matched detection
	score float64
	// detectionID is the caller supplied ID of the last matched detection
	detectionID int64
	// hitStreak counts consecutive frames with a matched detection
	hitStreak int
	// missStreak counts consecutive frames without a match
	missStreak int
	// age in frames since creation
	age int
	// Frame ID when the track was created
	startFrameID int
	// Frame ID of the last matched detection
	frameID int
}

// newTrack creates a Tentative track from an unmatched detection.  The
// detection itself counts as the first hit.
func newTrack(kf *KalmanFilter, det Detection, id, frameID int) *Track {

	t := &Track{
		kalmanFilter: kf,
		mean:         make(StateMean, 8),
		covariance:   &StateCov{mat.NewDense(8, 8, nil)},
		id:           id,
		state:        Tentative,
		box:          det.Box,
		predicted:    det.Box,
		label:        det.Label,
		score:        det.Score,
		detectionID:  det.ID,
		hitStreak:    1,
		startFrameID: frameID,
		frameID:      frameID,
	}

	t.kalmanFilter.Initiate(t.mean, t.covariance, det.Box.GetXyah())

	return t
}

// GetID returns the unique identifier of the track
func (t *Track) GetID() int {
	return t.id
}

// GetState returns the current lifecycle state
func (t *Track) GetState() State {
	return t.state
}

// GetBox returns the current corrected bounding box
func (t *Track) GetBox() Rect {
	return t.box
}

// GetPredictedBox returns the box projected by the motion model for the
// current frame
func (t *Track) GetPredictedBox() Rect {
	return t.predicted
}

// GetLabel returns the object class label assigned at creation
func (t *Track) GetLabel() int {
	return t.label
}

// GetScore returns the confidence score of the last matched detection
func (t *Track) GetScore() float64 {
	return t.score
}

// GetDetectionID returns the caller supplied ID of the last matched
// detection
func (t *Track) GetDetectionID() int64 {
	return t.detectionID
}

// GetHitStreak returns the number of consecutive matched frames
func (t *Track) GetHitStreak() int {
	return t.hitStreak
}

// GetMissStreak returns the number of consecutive missed frames
func (t *Track) GetMissStreak() int {
	return t.missStreak
}

// GetAge returns the track age in frames since creation
func (t *Track) GetAge() int {
	return t.age
}

// GetStartFrameID returns the frame ID the track was created on
func (t *Track) GetStartFrameID() int {
	return t.startFrameID
}

// GetFrameID returns the frame ID of the last matched detection
func (t *Track) GetFrameID() int {
	return t.frameID
}

// GetVelocity returns the estimated per frame velocity of the box center
func (t *Track) GetVelocity() (float64, float64) {
	return t.mean[4], t.mean[5]
}

// predict projects the track state one frame forward with the motion model.
// Only the predicted box changes, the corrected box is committed by
// applyDetection once association has run.
func (t *Track) predict() {

	// a lost track has no height observations, freeze its height velocity
	// so the predicted box does not balloon during occlusion
	if t.state == Lost {
		t.mean[7] = 0
	}

	t.kalmanFilter.Predict(t.mean, t.covariance)
	t.predicted = GenerateRectByXyah(Xyah(t.mean[:4]))
	t.age++
}

// applyDetection corrects the track state with a matched detection and
// applies the hit side of the lifecycle transitions
func (t *Track) applyDetection(det Detection, frameID, minHits int) error {

	err := t.kalmanFilter.Update(t.mean, t.covariance, det.Box.GetXyah())

	if err != nil {
		return fmt.Errorf("error updating track %d: %w", t.id, err)
	}

	t.box = GenerateRectByXyah(Xyah(t.mean[:4]))
	t.score = det.Score
	t.detectionID = det.ID
	t.hitStreak++
	t.missStreak = 0
	t.frameID = frameID

	switch t.state {
	case Tentative:
		if t.hitStreak >= minHits {
			t.state = Confirmed
		}
	case Lost:
		// recovered through occlusion, same identity returns
		t.state = Confirmed
	}

	return nil
}

// markMissed applies the miss side of the lifecycle transitions for a frame
// where no detection matched the track
func (t *Track) markMissed(maxMisses int) {

	t.hitStreak = 0
	t.missStreak++

	switch t.state {
	case Tentative:
		// a single miss invalidates an unconfirmed candidate
		t.state = Removed
	case Confirmed:
		t.state = Lost
	case Lost:
		if t.missStreak > maxMisses {
			t.state = Removed
		}
	}
}
