/*
Example code showing how to extract still frames from videos at a fixed
rate, eg: for building a training data set.  All videos in the input
folder are processed and each video's frames are saved under its own
subdirectory of the output folder.
*/
package main

import (
	"flag"
	"log"
	"os"

	"github.com/cvtrack/go-cvtrack/video"
)

func main() {

	inDir := flag.String("input", "", "Folder containing the input videos")
	outDir := flag.String("output", "extracted_frames", "Folder to save extracted frames to")
	rate := flag.Float64("rate", 1, "Number of frames to extract per second of video")

	flag.Parse()

	if *inDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	extractor, err := video.NewExtractor(*rate)

	if err != nil {
		log.Fatalf("Error creating extractor: %v\n", err)
	}

	if err := extractor.ExtractFolder(*inDir, *outDir); err != nil {
		log.Fatalf("Error extracting frames: %v\n", err)
	}
}
