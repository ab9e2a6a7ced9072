// Package config loads the application settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains the settings for capture, recognition, and narration.
type Config struct {
	Camera    CameraConfig    `yaml:"camera"`
	Detector  DetectorConfig  `yaml:"detector"`
	OCR       OCRConfig       `yaml:"ocr"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Barcode   BarcodeConfig   `yaml:"barcode"`
	Narration NarrationConfig `yaml:"narration"`
}

// CameraConfig selects the capture device.
type CameraConfig struct {
	Device int `yaml:"device"` // capture device index, 0 is the default camera
}

// DetectorConfig points at the object detection model.
type DetectorConfig struct {
	Model      string  `yaml:"model"`      // path to the ONNX model file
	Names      string  `yaml:"names"`      // path to the class names file, one label per line
	Confidence float64 `yaml:"confidence"` // 0-1, detections below this value are dropped
	NMS        float64 `yaml:"nms"`        // 0-1, overlap threshold for box suppression
	Size       int     `yaml:"size"`       // square network input size in pixels
}

// OCRConfig controls text recognition.
type OCRConfig struct {
	Language string `yaml:"language"` // tesseract language code, for example eng
}

// CatalogConfig points at the medicine database.
type CatalogConfig struct {
	Path string `yaml:"path"` // JSON catalog file, an absent file means an empty catalog
}

// BarcodeConfig toggles the barcode stage of medicine identification.
type BarcodeConfig struct {
	Enabled bool `yaml:"enabled"` // scan for codes before falling back to OCR
}

// NarrationConfig controls the speech output.
type NarrationConfig struct {
	Voice    string  `yaml:"voice"`    // espeak voice, for example en
	Rate     int     `yaml:"rate"`     // speech rate in words per minute
	Cooldown float64 `yaml:"cooldown"` // seconds the same sentence stays suppressed
}

// CooldownDuration converts the narration cooldown to a time.Duration.
func (n NarrationConfig) CooldownDuration() time.Duration {
	return time.Duration(n.Cooldown * float64(time.Second))
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Camera: CameraConfig{Device: 0},
		Detector: DetectorConfig{
			Model:      "models/yolov8n.onnx",
			Names:      "models/coco.names",
			Confidence: 0.5,
			NMS:        0.45,
			Size:       640,
		},
		OCR:       OCRConfig{Language: "eng"},
		Catalog:   CatalogConfig{Path: "meds.json"},
		Barcode:   BarcodeConfig{Enabled: true},
		Narration: NarrationConfig{Voice: "en", Rate: 175, Cooldown: 2},
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// a malformed file is an error. Keys left out of the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
