// Package video wraps frame capture, preview display, and still-image
// loading behind small interfaces the application loop can run against.
package video

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Source yields frames until the stream ends.
type Source interface {
	// Read fills dst with the next frame and reports whether one was
	// delivered. False means the stream has ended.
	Read(dst *gocv.Mat) bool
	Close() error
}

// Camera reads frames from a capture device.
type Camera struct {
	capture *gocv.VideoCapture
}

// OpenCamera opens the capture device with the given index.
func OpenCamera(device int) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("cannot open camera %d: %w", device, err)
	}
	return &Camera{capture: capture}, nil
}

// Read fills dst with the next frame. An empty grab counts as end of
// stream, the same as a closed device.
func (c *Camera) Read(dst *gocv.Mat) bool {
	if !c.capture.Read(dst) {
		return false
	}
	return !dst.Empty()
}

// Close releases the capture device.
func (c *Camera) Close() error {
	return c.capture.Close()
}
