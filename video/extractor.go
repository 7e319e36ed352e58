package video

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
)

// videoExtensions are the video container extensions the extractor will
// process when scanning a folder
var videoExtensions = []string{".mp4", ".avi", ".mov", ".mkv"}

// Extractor extracts still frames from videos at a consistent rate and
// saves them as JPEG files
type Extractor struct {
	// rate is the number of frames to extract per second of video
	rate float64
}

// NewExtractor returns an Extractor saving the given number of frames per
// second of video
func NewExtractor(rate float64) (*Extractor, error) {

	if rate <= 0 {
		return nil, fmt.Errorf("invalid extraction rate %f", rate)
	}

	return &Extractor{
		rate: rate,
	}, nil
}

// ExtractVideo samples frames from the video file and writes them to the
// output directory as frame_NNNNN.jpg files, creating the directory if
// needed.  It returns the number of frames written.
func (e *Extractor) ExtractVideo(videoPath, outDir string) (int, error) {

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("error creating output directory: %w", err)
	}

	reader, err := OpenReader(videoPath)

	if err != nil {
		return 0, err
	}

	defer reader.Close()

	sampler, err := NewSampler(reader.FPS(), e.rate)

	if err != nil {
		return 0, err
	}

	img := gocv.NewMat()
	defer img.Close()

	frameIdx := 0
	extracted := 0

	for reader.Read(&img) {

		if sampler.Take(frameIdx) {
			frameFile := filepath.Join(outDir,
				fmt.Sprintf("frame_%05d.jpg", extracted))

			if ok := gocv.IMWrite(frameFile, img); !ok {
				return extracted, fmt.Errorf("error writing frame %s",
					frameFile)
			}

			extracted++
		}

		frameIdx++
	}

	return extracted, nil
}

// ExtractFolder processes all videos in the input folder, saving each
// video's frames under a subdirectory of outDir named after the video file
func (e *Extractor) ExtractFolder(inDir, outDir string) error {

	entries, err := os.ReadDir(inDir)

	if err != nil {
		return fmt.Errorf("error reading input folder: %w", err)
	}

	for _, entry := range entries {

		if entry.IsDir() || !isVideoFile(entry.Name()) {
			continue
		}

		videoPath := filepath.Join(inDir, entry.Name())

		name := strings.TrimSuffix(entry.Name(),
			filepath.Ext(entry.Name()))

		videoOutDir := filepath.Join(outDir, name)

		count, err := e.ExtractVideo(videoPath, videoOutDir)

		if err != nil {
			return fmt.Errorf("error extracting %s: %w", videoPath, err)
		}

		log.Printf("Extracted %d frames from %s to %s\n", count,
			videoPath, videoOutDir)
	}

	return nil
}

// isVideoFile checks the file extension against the known video container
// extensions
func isVideoFile(name string) bool {

	ext := strings.ToLower(filepath.Ext(name))

	for _, videoExt := range videoExtensions {
		if ext == videoExt {
			return true
		}
	}

	return false
}
