/*
Example code showing how to run object tracking over a video using
precomputed detections.  Detections are read from a JSON lines file with
one object per line:

	{"frame": 1, "x1": 79, "y1": 205, "x2": 169, "y2": 609, "score": 0.85, "class": 3}

Frame numbers start at 1 and match the video frame order.  The annotated
result video is written to the output file.
*/
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	cvtrack "github.com/cvtrack/go-cvtrack"
	"github.com/cvtrack/go-cvtrack/tracker"
	"github.com/cvtrack/go-cvtrack/video"
	"gocv.io/x/gocv"
)

// detRecord is one line of the detections file
type detRecord struct {
	Frame int     `json:"frame"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Score float64 `json:"score"`
	Class int     `json:"class"`
}

// fileDetector implements video.Detector from a detections file loaded
// into memory
type fileDetector struct {
	frames map[int][]tracker.Detection
}

// loadDetections reads the JSON lines detections file and groups the
// detections by frame number
func loadDetections(file string) (*fileDetector, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening detections file: %w", err)
	}

	defer f.Close()

	frames := make(map[int][]tracker.Detection)
	scanner := bufio.NewScanner(f)
	line := 0
	nextID := int64(0)

	for scanner.Scan() {
		line++

		var rec detRecord

		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("error parsing detections line %d: %w",
				line, err)
		}

		nextID++

		frames[rec.Frame] = append(frames[rec.Frame], tracker.NewDetection(
			tracker.NewRectFromCorners(rec.X1, rec.Y1, rec.X2, rec.Y2),
			rec.Score, rec.Class, nextID,
		))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading detections file: %w", err)
	}

	return &fileDetector{frames: frames}, nil
}

// Detect returns the preloaded detections for the given frame
func (d *fileDetector) Detect(img gocv.Mat, frameID int) ([]tracker.Detection, error) {
	return d.frames[frameID], nil
}

func main() {

	vidFile := flag.String("video", "", "Source video file to process")
	detFile := flag.String("dets", "", "Detections file in JSON lines format")
	labelFile := flag.String("labels", "", "Text file with class names, one per line")
	outFile := flag.String("output", "result.mp4", "Annotated output video file")
	highConf := flag.Float64("high", 0.5, "High confidence threshold")
	matchThresh := flag.Float64("match", 0.8, "Maximum IoU distance for a valid match")
	minHits := flag.Int("hits", 3, "Consecutive hits to confirm a track")
	maxMisses := flag.Int("misses", 30, "Consecutive misses before track removal")
	trailSize := flag.Int("trail", 0, "Number of trail points to draw, 0 disables")

	flag.Parse()

	if *vidFile == "" || *detFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	var labels []string
	var err error

	if *labelFile != "" {
		labels, err = cvtrack.LoadLabels(*labelFile)

		if err != nil {
			log.Fatalf("Error loading class labels: %v\n", err)
		}
	}

	detector, err := loadDetections(*detFile)

	if err != nil {
		log.Fatalf("Error loading detections: %v\n", err)
	}

	cfg := tracker.DefaultConfig()
	cfg.HighConfThreshold = *highConf
	cfg.MatchThreshold = *matchThresh
	cfg.MinHits = *minHits
	cfg.MaxMisses = *maxMisses

	session, err := tracker.NewSession(cfg)

	if err != nil {
		log.Fatalf("Error creating tracking session: %v\n", err)
	}

	pipeline := video.NewPipeline(detector, session, labels)

	if *trailSize > 0 {
		pipeline.EnableTrail(*trailSize)
	}

	stats, err := pipeline.Run(*vidFile, *outFile)

	if err != nil {
		log.Fatalf("Error processing video: %v\n", err)
	}

	log.Printf("Processed %d frames, %d detections (%d rejected), wrote %s\n",
		stats.Frames, stats.Detections, stats.Rejected, *outFile)
}
