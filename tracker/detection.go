package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedBox indicates a detection bounding box that is not well
	// formed, ie: x_min >= x_max or y_min >= y_max
	ErrMalformedBox = errors.New("malformed bounding box")
	// ErrScoreRange indicates a detection confidence score outside [0,1]
	ErrScoreRange = errors.New("confidence score outside [0,1]")
)

// Detection represents a single object proposal from the detector for one
// frame.  It carries no persistent identity, that is the tracker's job.
type Detection struct {
	// Box is the bounding box of the detected object
	Box Rect
	// Score is the confidence/probability of the detection in range [0,1]
	Score float64
	// Label is the class label of the object detected
	Label int
	// ID is an optional caller supplied ID which can be used to match
	// the input detection against the resulting tracked object
	ID int64
}

// NewDetection is a constructor function for the Detection struct
func NewDetection(box Rect, score float64, label int, id int64) Detection {
	return Detection{
		Box:   box,
		Score: score,
		Label: label,
		ID:    id,
	}
}

// Validate checks the detection is well formed and safe to feed into the
// association engine
func (d Detection) Validate() error {

	if !d.Box.Valid() {
		return fmt.Errorf("%w: [%f, %f, %f, %f]", ErrMalformedBox,
			d.Box.X1, d.Box.Y1, d.Box.X2, d.Box.Y2)
	}

	if d.Score < 0 || d.Score > 1 {
		return fmt.Errorf("%w: %f", ErrScoreRange, d.Score)
	}

	return nil
}

// Rejected reports a single detection that failed validation at the session
// boundary.  The frame itself is still processed using the remaining valid
// detections.
type Rejected struct {
	// Index is the position of the detection in the slice passed to Update
	Index int
	// Detection is the offending input
	Detection Detection
	// Err is the validation failure
	Err error
}
