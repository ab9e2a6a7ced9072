// Command objtest runs object detection on an image file and prints the
// results.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"gocv.io/x/gocv"

	"sight-assist/internal/detect"
	"sight-assist/internal/overlay"
	"sight-assist/internal/video"
	"sight-assist/pkg/colorutil"
)

func main() {
	imagePath := flag.String("image", "", "Path to image (PNG, JPEG, TIFF, or BMP)")
	model := flag.String("model", "", "Path to the ONNX model")
	names := flag.String("names", "", "Path to the class names file")
	confidence := flag.Float64("confidence", 0, "Confidence threshold override")
	out := flag.String("out", "", "Write an annotated copy to this path")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: objtest -image <path> [-model m.onnx] [-names coco.names] [-confidence 0.5] [-out annotated.png]")
		os.Exit(1)
	}

	img, err := video.LoadImage(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	defer img.Close()

	fmt.Printf("Loaded image: %dx%d pixels\n", img.Cols(), img.Rows())

	params := detect.DefaultParams().
		WithModel(*model, *names).
		WithThresholds(*confidence, 0)
	fmt.Printf("Model: %s\n", params.ModelPath)
	fmt.Printf("Thresholds: confidence %.2f, NMS %.2f, input %dpx\n",
		params.Confidence, params.NMS, params.InputSize)

	detector, err := detect.NewYOLO(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load detector: %v\n", err)
		os.Exit(1)
	}
	defer detector.Close()

	dets, err := detector.Detect(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nDetected %d objects:\n", len(dets))
	fmt.Printf("%-20s %12s %20s\n", "Label", "Confidence", "Box")
	fmt.Println(strings.Repeat("-", 54))
	for _, d := range dets {
		box := fmt.Sprintf("%d,%d %dx%d", d.Box.X, d.Box.Y, d.Box.Width, d.Box.Height)
		fmt.Printf("%-20s %12.2f %20s\n", d.Label, d.Confidence, box)
	}

	if best, ok := detect.Best(dets); ok {
		fmt.Printf("\nWould narrate: %s\n", best.Label)
	}

	if *out != "" {
		var boxes []overlay.Box
		for _, d := range dets {
			boxes = append(boxes, overlay.Box{
				Rect:  d.Box,
				Label: fmt.Sprintf("%s %.2f", d.Label, d.Confidence),
				Color: colorutil.Green,
			})
		}
		annotated := overlay.Annotate(img, boxes, "", "")
		defer annotated.Close()

		if ok := gocv.IMWrite(*out, annotated); !ok {
			fmt.Fprintf(os.Stderr, "Failed to write %s\n", *out)
			os.Exit(1)
		}
		fmt.Printf("Annotated copy written to %s\n", *out)
	}
}
