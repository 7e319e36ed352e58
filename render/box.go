package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cvtrack/go-cvtrack/tracker"
	"gocv.io/x/gocv"
)

// boxLabel records the label plate rendering details for one box
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// className resolves a class label index against the loaded class names,
// falling back to the numeric label when no name is known
func className(classNames []string, label int) string {

	if label >= 0 && label < len(classNames) {
		return classNames[label]
	}

	return fmt.Sprintf("class %d", label)
}

// TrackBoxes renders the bounding boxes around the tracked objects of the
// current frame.  Box color follows the track ID so identities keep their
// color across frames.
func TrackBoxes(img *gocv.Mat, tracks []*tracker.Track, classNames []string,
	font Font, lineThickness int) {

	// keep a record of all box labels for later rendering
	boxLabels := make([]boxLabel, 0, len(tracks))

	for _, track := range tracks {

		box := track.GetBox()
		useClr := TrackColor(track.GetID())

		// draw rectangle around tracked object
		rect := image.Rect(int(box.X1), int(box.Y1), int(box.X2), int(box.Y2))
		gocv.Rectangle(img, rect, useClr, lineThickness)

		text := fmt.Sprintf("#%d %s", track.GetID(),
			className(classNames, track.GetLabel()))

		boxLabels = append(boxLabels,
			makeBoxLabel(text, rect, useClr, font, lineThickness))
	}

	drawBoxLabels(img, boxLabels, font)
}

// DetectionBoxes renders the bounding boxes around raw detector output,
// labelled with class name and confidence
func DetectionBoxes(img *gocv.Mat, dets []tracker.Detection,
	classNames []string, font Font, lineThickness int) {

	boxLabels := make([]boxLabel, 0, len(dets))

	for i, det := range dets {

		useClr := TrackColor(i)

		rect := image.Rect(int(det.Box.X1), int(det.Box.Y1),
			int(det.Box.X2), int(det.Box.Y2))
		gocv.Rectangle(img, rect, useClr, lineThickness)

		text := fmt.Sprintf("%s %.2f", className(classNames, det.Label),
			det.Score)

		boxLabels = append(boxLabels,
			makeBoxLabel(text, rect, useClr, font, lineThickness))
	}

	drawBoxLabels(img, boxLabels, font)
}

// makeBoxLabel calculates the label plate position for a box taking the
// font alignment and padding into account
func makeBoxLabel(text string, box image.Rectangle, clr color.RGBA,
	font Font, lineThickness int) boxLabel {

	textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

	var centerX int

	switch font.Alignment {
	case Center:
		centerX = (box.Min.X + box.Max.X) / 2

	case Right:
		centerX = box.Max.X - (textSize.X / 2) - font.RightPad + (lineThickness / 2)

	case Left:
		fallthrough
	default:
		centerX = box.Min.X + (textSize.X / 2) + font.LeftPad - (lineThickness / 2)
	}

	// center the text horizontally on the plate
	labelPosition := image.Pt(centerX-textSize.X/2, box.Min.Y-font.BottomPad)

	plate := image.Rect(centerX-textSize.X/2-font.LeftPad,
		box.Min.Y-textSize.Y-font.TopPad-font.BottomPad,
		centerX+textSize.X/2+font.RightPad, box.Min.Y)

	return boxLabel{
		rect:    plate,
		clr:     clr,
		text:    text,
		textPos: labelPosition,
	}
}

// drawBoxLabels draws all precalculated box labels so they are the top
// most layer on the image and don't get overlapped by box lines
func drawBoxLabels(img *gocv.Mat, boxLabels []boxLabel, font Font) {

	for _, box := range boxLabels {
		// draw plate the text gets written on
		gocv.Rectangle(img, box.rect, box.clr, -1)

		// draw the label over the plate
		gocv.PutTextWithParams(img, box.text, box.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}
