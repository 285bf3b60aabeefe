package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	EnvCorpus, EnvCharModel, EnvLayout, EnvFullPlate, EnvReader,
	EnvPassAccuracy, EnvPlateLength, EnvImageTimeout, EnvCharAttempts,
	EnvWorkDir, EnvORTLibrary, EnvAWSRegion, EnvMinConfidence,
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "img/plates", cfg.Corpus)
	assert.Equal(t, "tesseract", cfg.Reader)
	assert.False(t, cfg.FullPlate)
	assert.Equal(t, 90.0, cfg.PassAccuracy)
	assert.Equal(t, 7, cfg.PlateLength)
	assert.Equal(t, time.Duration(0), cfg.ImageTimeout)
	assert.Equal(t, 2, cfg.CharAttempts)
	assert.Equal(t, float32(50), cfg.MinConfidence)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCorpus, "/data/plates")
	t.Setenv(EnvFullPlate, "true")
	t.Setenv(EnvReader, "rekognition")
	t.Setenv(EnvPassAccuracy, "95.5")
	t.Setenv(EnvPlateLength, "8")
	t.Setenv(EnvImageTimeout, "3s")
	t.Setenv(EnvLayout, "NNNNLLL")
	t.Setenv(EnvAWSRegion, "eu-west-1")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/data/plates", cfg.Corpus)
	assert.True(t, cfg.FullPlate)
	assert.Equal(t, "rekognition", cfg.Reader)
	assert.Equal(t, 95.5, cfg.PassAccuracy)
	assert.Equal(t, 8, cfg.PlateLength)
	assert.Equal(t, 3*time.Second, cfg.ImageTimeout)
	assert.Equal(t, "NNNNLLL", cfg.Layout)
	assert.Equal(t, "eu-west-1", cfg.AWSRegion)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvFullPlate, "maybe"},
		{EnvPassAccuracy, "ninety"},
		{EnvPlateLength, "seven"},
		{EnvImageTimeout, "soon"},
		{EnvCharAttempts, "x"},
		{EnvMinConfidence, "high"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPlateLength, "6")

	dir := t.TempDir()
	env := "PLATE_CORPUS=from-dotenv\nPLATE_PLATE_LENGTH=9\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Corpus)
	assert.Equal(t, 6, cfg.PlateLength, "environment wins over .env")
}

func TestLoad_NoDotEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "img/plates", cfg.Corpus)
}
