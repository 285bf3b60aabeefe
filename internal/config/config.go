// Package config loads command-line defaults from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Environment variable names.
const (
	EnvCorpus        = "PLATE_CORPUS"
	EnvCharModel     = "PLATE_CHAR_MODEL"
	EnvLayout        = "PLATE_LAYOUT"
	EnvFullPlate     = "PLATE_FULL_PLATE"
	EnvReader        = "PLATE_READER"
	EnvPassAccuracy  = "PLATE_PASS_ACCURACY"
	EnvPlateLength   = "PLATE_PLATE_LENGTH"
	EnvImageTimeout  = "PLATE_IMAGE_TIMEOUT"
	EnvCharAttempts  = "PLATE_CHAR_ATTEMPTS"
	EnvWorkDir       = "PLATE_WORK_DIR"
	EnvORTLibrary    = "ONNXRUNTIME_LIB"
	EnvAWSRegion     = "AWS_REGION"
	EnvMinConfidence = "PLATE_MIN_CONFIDENCE"
)

// Config holds the settings shared by the command-line tools.
type Config struct {
	Corpus        string
	CharModel     string
	Layout        string
	FullPlate     bool
	Reader        string // "tesseract" or "rekognition"
	PassAccuracy  float64
	PlateLength   int
	ImageTimeout  time.Duration
	CharAttempts  int
	WorkDir       string
	ORTLibrary    string
	AWSRegion     string
	MinConfidence float32
}

// Load reads .env from the working directory, if present, then the
// environment. Variables already set win over .env entries.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment alone.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Corpus:     getEnv(EnvCorpus, "img/plates"),
		CharModel:  getEnv(EnvCharModel, ""),
		Layout:     getEnv(EnvLayout, ""),
		Reader:     getEnv(EnvReader, "tesseract"),
		WorkDir:    getEnv(EnvWorkDir, ""),
		ORTLibrary: getEnv(EnvORTLibrary, ""),
		AWSRegion:  getEnv(EnvAWSRegion, ""),
	}

	var err error
	if cfg.FullPlate, err = cast.ToBoolE(getEnv(EnvFullPlate, "false")); err != nil {
		return nil, invalid(EnvFullPlate, err)
	}
	if cfg.PassAccuracy, err = cast.ToFloat64E(getEnv(EnvPassAccuracy, "90")); err != nil {
		return nil, invalid(EnvPassAccuracy, err)
	}
	if cfg.PlateLength, err = cast.ToIntE(getEnv(EnvPlateLength, "7")); err != nil {
		return nil, invalid(EnvPlateLength, err)
	}
	if cfg.ImageTimeout, err = cast.ToDurationE(getEnv(EnvImageTimeout, "0s")); err != nil {
		return nil, invalid(EnvImageTimeout, err)
	}
	if cfg.CharAttempts, err = cast.ToIntE(getEnv(EnvCharAttempts, "2")); err != nil {
		return nil, invalid(EnvCharAttempts, err)
	}
	if cfg.MinConfidence, err = cast.ToFloat32E(getEnv(EnvMinConfidence, "50")); err != nil {
		return nil, invalid(EnvMinConfidence, err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func invalid(key string, err error) error {
	return fmt.Errorf("config: invalid %s: %w", key, err)
}
