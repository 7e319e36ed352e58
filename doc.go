/*
go-cvtrack implements multi object tracking for video: it associates the
per frame detections produced by an external object detector into a stable
set of tracks with persistent identifiers, handling temporary occlusion,
detector misses and false positives.

The core engine lives in the tracker subdirectory and performs no I/O of
its own.  The video subdirectory supplies frames from video files, samples
frames to disk and runs the full detect/track/annotate pipeline, and the
render subdirectory draws tracked boxes, labels and trails onto frames.

See example code and usage in the example subdirectory.
*/
package cvtrack
