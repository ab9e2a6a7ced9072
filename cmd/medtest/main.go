// Command medtest runs medicine identification on an image file and
// prints what the application would narrate.
package main

import (
	"flag"
	"fmt"
	"os"

	"sight-assist/internal/barcode"
	"sight-assist/internal/catalog"
	"sight-assist/internal/medicine"
	"sight-assist/internal/ocr"
	"sight-assist/internal/video"
)

func main() {
	imagePath := flag.String("image", "", "Path to image (PNG, JPEG, TIFF, or BMP)")
	catalogPath := flag.String("catalog", "meds.json", "Path to the medicine catalog")
	lang := flag.String("lang", "eng", "Tesseract language")
	noBarcode := flag.Bool("no-barcode", false, "Skip the barcode stage")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: medtest -image <path> [-catalog meds.json] [-lang eng] [-no-barcode]")
		os.Exit(1)
	}

	img, err := video.LoadImage(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	defer img.Close()

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded image %dx%d, catalog with %d records\n", img.Cols(), img.Rows(), cat.Len())

	reader, err := ocr.NewEngine(*lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start OCR: %v\n", err)
		os.Exit(1)
	}
	defer reader.Close()

	var decoder barcode.Decoder
	if !*noBarcode {
		qr := barcode.NewQRDecoder()
		defer qr.Close()
		decoder = qr
	}

	res := medicine.NewPipeline(cat, decoder, reader).Process(img)

	for _, b := range res.Overlays {
		if b.Label == "" {
			continue
		}
		fmt.Printf("Decoded symbol %q at (%d, %d) %dx%d\n", b.Label, b.Rect.X, b.Rect.Y, b.Rect.Width, b.Rect.Height)
	}

	if res.Preview != "" {
		fmt.Printf("Recognized text: %s (confidence %.0f)\n", res.Preview, res.Confidence)
	}

	if res.Record != nil {
		r := res.Record
		fmt.Printf("\nMatched record:\n")
		fmt.Printf("  Brand:    %s\n", r.Brand)
		fmt.Printf("  Generic:  %s\n", r.Generic)
		fmt.Printf("  Strength: %s\n", r.Strength)
		fmt.Printf("  Uses:     %s\n", r.Uses)
		fmt.Printf("  Warnings: %s\n", r.Warnings)
		fmt.Printf("  Barcode:  %s\n", r.Barcode)
	} else {
		fmt.Println("\nNo catalog match")
	}

	if res.Speech != "" {
		fmt.Printf("\nWould say: %s\n", res.Speech)
	} else {
		fmt.Println("\nNothing to say")
	}
}
