// Package main provides the entry point for the Sight Assist application.
package main

import (
	"flag"
	"log"

	"sight-assist/internal/app"
	"sight-assist/internal/barcode"
	"sight-assist/internal/catalog"
	"sight-assist/internal/config"
	"sight-assist/internal/detect"
	"sight-assist/internal/medicine"
	"sight-assist/internal/narration"
	"sight-assist/internal/ocr"
	"sight-assist/internal/version"
	"sight-assist/internal/video"
)

const appTitle = "Sight Assist"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	log.Printf("Starting %s v%s", appTitle, version.Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	log.Printf("Catalog: %d records from %s", cat.Len(), cfg.Catalog.Path)

	params := detect.DefaultParams().
		WithModel(cfg.Detector.Model, cfg.Detector.Names).
		WithThresholds(cfg.Detector.Confidence, cfg.Detector.NMS).
		WithInputSize(cfg.Detector.Size)
	detector, err := detect.NewYOLO(params)
	if err != nil {
		log.Fatalf("detector: %v", err)
	}
	defer detector.Close()

	reader, err := ocr.NewEngine(cfg.OCR.Language)
	if err != nil {
		log.Fatalf("ocr: %v", err)
	}
	defer reader.Close()

	// The barcode stage is optional: without it medicine mode goes
	// straight to reading the packaging text.
	var decoder barcode.Decoder
	if cfg.Barcode.Enabled {
		decoder = barcode.NewQRDecoder()
		defer decoder.Close()
	} else {
		log.Printf("Barcode scanning disabled")
	}

	camera, err := video.OpenCamera(cfg.Camera.Device)
	if err != nil {
		log.Fatalf("camera: %v", err)
	}
	defer camera.Close()

	window := video.NewWindow(appTitle)
	defer window.Close()

	narrator := narration.NewESpeak(cfg.Narration.Voice, cfg.Narration.Rate)
	gate := narration.NewGate(cfg.Narration.CooldownDuration())
	pipeline := medicine.NewPipeline(cat, decoder, reader)

	loop := app.NewLoop(camera, window, detector, pipeline, narrator, gate)
	loop.Run()

	log.Printf("Shutting down")
}
