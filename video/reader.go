// Package video supplies frames from video files to the tracking engine
// and runs the detect/track/annotate pipeline over them
package video

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Reader delivers the decoded frames of a video file in strict temporal
// order.  It performs no buffering or reordering of its own.
type Reader struct {
	cap  *gocv.VideoCapture
	file string
	// frameID counts frames delivered so far
	frameID int
}

// OpenReader opens a handle to read the frames of the given video file
func OpenReader(file string) (*Reader, error) {

	cap, err := gocv.VideoCaptureFile(file)

	if err != nil {
		return nil, fmt.Errorf("error opening video %s: %w", file, err)
	}

	return &Reader{
		cap:  cap,
		file: file,
	}, nil
}

// FPS returns the frame rate of the source video
func (r *Reader) FPS() float64 {
	return r.cap.Get(gocv.VideoCaptureFPS)
}

// Size returns the frame width and height of the source video
func (r *Reader) Size() (int, int) {
	return int(r.cap.Get(gocv.VideoCaptureFrameWidth)),
		int(r.cap.Get(gocv.VideoCaptureFrameHeight))
}

// FrameID returns the number of frames delivered so far
func (r *Reader) FrameID() int {
	return r.frameID
}

// Read reads the next frame of the video into img.  It returns false once
// the last frame has been read.
func (r *Reader) Read(img *gocv.Mat) bool {

	for {
		if ok := r.cap.Read(img); !ok {
			// reached last video frame
			return false
		}

		// skip over empty frames the decoder may emit
		if img.Empty() {
			continue
		}

		r.frameID++

		return true
	}
}

// Close releases the video capture handle
func (r *Reader) Close() error {
	return r.cap.Close()
}
