package video

import (
	"fmt"
	"log"

	"github.com/cvtrack/go-cvtrack/render"
	"github.com/cvtrack/go-cvtrack/tracker"
	"gocv.io/x/gocv"
)

// Detector is the boundary to the external object detector.  For each
// frame it must supply the list of detected objects with confidence
// scores in [0,1].  The tracking pipeline performs no confidence
// calibration of its own.
type Detector interface {
	Detect(img gocv.Mat, frameID int) ([]tracker.Detection, error)
}

// Stats reports what a pipeline run processed
type Stats struct {
	// Frames is the number of frames processed
	Frames int
	// Detections is the total number of detections received
	Detections int
	// Rejected is the number of malformed detections dropped at the
	// session boundary
	Rejected int
}

// Pipeline runs the full per frame loop over one video: detect objects,
// update the tracking session and write the annotated frame to the output
// video.  All state is held explicitly, independent pipelines over
// different videos can run concurrently.
type Pipeline struct {
	detector Detector
	session  *tracker.Session
	// classNames are the detector class labels used for box annotation
	classNames []string
	font       render.Font
	// trail history, only drawn when trailSize is set
	trail         *tracker.Trail
	lineThickness int
}

// NewPipeline returns a Pipeline combining the given detector and
// tracking session
func NewPipeline(detector Detector, session *tracker.Session,
	classNames []string) *Pipeline {

	return &Pipeline{
		detector:      detector,
		session:       session,
		classNames:    classNames,
		font:          render.DefaultFont(),
		lineThickness: 2,
	}
}

// SetFont overrides the default annotation font
func (p *Pipeline) SetFont(font render.Font) {
	p.font = font
}

// EnableTrail turns on trail drawing keeping the given number of recent
// points per track
func (p *Pipeline) EnableTrail(size int) {
	p.trail = tracker.NewTrail(size)
}

// Run processes the source video and writes the annotated result to
// dstFile.  The session is reset first so one pipeline can be reused for
// several videos in turn.
func (p *Pipeline) Run(srcFile, dstFile string) (Stats, error) {

	stats := Stats{}

	reader, err := OpenReader(srcFile)

	if err != nil {
		return stats, err
	}

	defer reader.Close()

	width, height := reader.Size()

	writer, err := gocv.VideoWriterFile(dstFile, "mp4v", reader.FPS(),
		width, height, true)

	if err != nil {
		return stats, fmt.Errorf("error opening video writer %s: %w",
			dstFile, err)
	}

	defer writer.Close()

	p.session.Reset()

	if p.trail != nil {
		p.trail.Reset()
	}

	img := gocv.NewMat()
	defer img.Close()

	for reader.Read(&img) {

		frameID := reader.FrameID()

		dets, err := p.detector.Detect(img, frameID)

		if err != nil {
			return stats, fmt.Errorf("detector failed on frame %d: %w",
				frameID, err)
		}

		tracks, rejected, err := p.session.Update(dets)

		if err != nil {
			return stats, fmt.Errorf("tracker failed on frame %d: %w",
				frameID, err)
		}

		for _, rej := range rejected {
			log.Printf("frame %d: dropped detection %d: %v\n", frameID,
				rej.Index, rej.Err)
		}

		render.TrackBoxes(&img, tracks, p.classNames, p.font,
			p.lineThickness)

		if p.trail != nil {
			for _, track := range tracks {
				p.trail.Add(track)
			}

			render.Trail(&img, tracks, p.trail,
				render.DefaultTrailStyle())
		}

		if err := writer.Write(img); err != nil {
			return stats, fmt.Errorf("error writing frame %d: %w",
				frameID, err)
		}

		stats.Frames++
		stats.Detections += len(dets)
		stats.Rejected += len(rejected)
	}

	return stats, nil
}
