// Package barcode locates and decodes machine-readable codes in camera
// frames. Medicine packs carry their product code as a printed symbol, so
// a successful decode is the fastest route to a catalog record.
package barcode

import (
	"fmt"

	"gocv.io/x/gocv"

	"sight-assist/pkg/geometry"
)

// Symbol is one decoded code and its bounding box in frame coordinates.
type Symbol struct {
	Data string           // decoded payload
	Box  geometry.RectInt // axis-aligned bounds of the symbol
}

// Decoder finds and decodes symbols in a frame. Zero symbols with a nil
// error means nothing readable was in view.
type Decoder interface {
	Decode(img gocv.Mat) ([]Symbol, error)
	Close() error
}

// QRDecoder reads QR codes with the OpenCV detector.
type QRDecoder struct {
	detector gocv.QRCodeDetector
}

// NewQRDecoder creates a ready-to-use QR decoder.
func NewQRDecoder() *QRDecoder {
	return &QRDecoder{detector: gocv.NewQRCodeDetector()}
}

// Close releases the underlying detector.
func (d *QRDecoder) Close() error {
	return d.detector.Close()
}

// Decode scans img for QR codes. Symbols that were located but could not
// be decoded are dropped.
func (d *QRDecoder) Decode(img gocv.Mat) ([]Symbol, error) {
	if img.Empty() {
		return nil, nil
	}

	var (
		decoded []string
		codes   []gocv.Mat
	)
	points := gocv.NewMat()
	defer points.Close()

	found := d.detector.DetectAndDecodeMulti(img, &decoded, &points, &codes)
	for i := range codes {
		codes[i].Close()
	}
	if !found {
		return nil, nil
	}

	// points holds four corner coordinates per symbol, eight floats each.
	corners, err := points.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("reading symbol corners: %w", err)
	}

	var symbols []Symbol
	for i, data := range decoded {
		if data == "" {
			continue
		}
		box := cornersToRect(corners, i).ClampTo(img.Cols(), img.Rows())
		symbols = append(symbols, Symbol{Data: data, Box: box})
	}
	return symbols, nil
}

// cornersToRect bounds the four corner points of symbol i.
func cornersToRect(corners []float32, i int) geometry.RectInt {
	base := i * 8
	if base+8 > len(corners) {
		return geometry.RectInt{}
	}

	minX, minY := corners[base], corners[base+1]
	maxX, maxY := minX, minY
	for c := 1; c < 4; c++ {
		x, y := corners[base+c*2], corners[base+c*2+1]
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return geometry.NewRectInt(int(minX), int(minY), int(maxX-minX), int(maxY-minY))
}
