package tracker

import "sync"

// Point represents the x,y coordinates of the center of a tracked
// bounding box
type Point struct {
	X, Y int
}

// history holds the recent center points for one track ID
type history struct {
	points []Point
}

// Trail keeps a bounded history of track box centers used for drawing a
// movement trail
type Trail struct {
	// size is the maximum number of most recent points to keep per track
	size int
	// tracks maps track ID to its point history
	tracks map[int]*history
	sync.Mutex
}

// NewTrail returns a new trail history instance.  Size specifies the
// maximum trail length to maintain per track
func NewTrail(size int) *Trail {
	return &Trail{
		size:   size,
		tracks: make(map[int]*history),
	}
}

// Reset clears all history
func (t *Trail) Reset() {
	t.Lock()
	defer t.Unlock()

	t.tracks = make(map[int]*history)
}

// Add records the current box center of the given track
func (t *Trail) Add(track *Track) {
	t.Lock()
	defer t.Unlock()

	if _, exists := t.tracks[track.GetID()]; !exists {
		t.tracks[track.GetID()] = &history{}
	}

	h := t.tracks[track.GetID()]

	cx, cy := track.GetBox().Center()

	h.points = append(h.points, Point{
		X: int(cx),
		Y: int(cy),
	})

	// drop oldest point once history is exceeded
	if len(h.points) > t.size {
		h.points = h.points[1:]
	}
}

// GetPoints gets the point history for a specific track ID
func (t *Trail) GetPoints(id int) []Point {
	t.Lock()
	defer t.Unlock()

	if h, exists := t.tracks[id]; exists {
		return h.points
	}

	return nil
}
