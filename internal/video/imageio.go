package video

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg" // register decoders for LoadImage
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"gocv.io/x/gocv"
)

// LoadImage reads a still image file into a BGR Mat. Useful for running
// the pipelines against saved photos instead of a live camera.
func LoadImage(path string) (gocv.Mat, error) {
	f, err := os.Open(path)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("cannot open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("cannot decode image %s: %w", path, err)
	}

	return imageToMat(img)
}

// imageToMat converts a Go image.Image to an OpenCV Mat.
func imageToMat(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	// Create RGBA image
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}

	// Create Mat from RGBA data
	mat, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return gocv.Mat{}, err
	}

	// Convert RGBA to BGR (OpenCV format)
	bgr := gocv.NewMat()
	gocv.CvtColor(mat, &bgr, gocv.ColorRGBAToBGR)
	mat.Close()

	return bgr, nil
}
