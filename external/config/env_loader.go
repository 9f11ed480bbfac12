package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/rodneymbrown1/videodraft/internal/config"
)

type envConfig struct {
	Env         string `env:"ENV" envDefault:"production"`
	ProjectsDir string `env:"PROJECTS_DIR,required"`
	ProjectName string `env:"PROJECT_NAME,required"`

	Transcriber                string `env:"TRANSCRIBER" envDefault:"whisperx"`
	DefaultLanguage            string `env:"DEFAULT_LANGUAGE" envDefault:"en-US"`
	GoogleCloudProjectID       string `env:"GOOGLE_CLOUD_PROJECT_ID"`
	GoogleCloudCredentialsJSON string `env:"GOOGLE_CLOUD_CREDENTIALS_JSON"`
	GoogleCloudSpeechLocation  string `env:"GOOGLE_CLOUD_SPEECH_LOCATION" envDefault:"global"`
	GoogleCloudSpeechModel     string `env:"GOOGLE_CLOUD_SPEECH_MODEL" envDefault:"chirp_3"`
	WhisperxBinary             string `env:"WHISPERX_BINARY" envDefault:"whisperx"`

	SegmentMinDurationSec    float64 `env:"SEGMENT_MIN_DURATION_SEC" envDefault:"3"`
	SegmentMaxDurationSec    float64 `env:"SEGMENT_MAX_DURATION_SEC" envDefault:"15"`
	SegmentPauseThresholdSec float64 `env:"SEGMENT_PAUSE_THRESHOLD_SEC" envDefault:"1.5"`

	DatabaseURL        string `env:"DATABASE_URL"`
	StylePresetsFile   string `env:"STYLE_PRESETS_FILE"`
	ImageLibraryDir    string `env:"IMAGE_LIBRARY_DIR"`
	IntakeDir          string `env:"INTAKE_DIR"`
	BlenderAddr        string `env:"BLENDER_ADDR"`
	SnapshotWebhookURL string `env:"SNAPSHOT_WEBHOOK_URL"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                        raw.Env,
		ProjectsDir:                raw.ProjectsDir,
		ProjectName:                raw.ProjectName,
		Transcriber:                raw.Transcriber,
		DefaultLanguage:            raw.DefaultLanguage,
		GoogleCloudProjectID:       raw.GoogleCloudProjectID,
		GoogleCloudCredentialsJSON: raw.GoogleCloudCredentialsJSON,
		GoogleCloudSpeechLocation:  raw.GoogleCloudSpeechLocation,
		GoogleCloudSpeechModel:     raw.GoogleCloudSpeechModel,
		WhisperxBinary:             raw.WhisperxBinary,
		SegmentMinDurationSec:      raw.SegmentMinDurationSec,
		SegmentMaxDurationSec:      raw.SegmentMaxDurationSec,
		SegmentPauseThresholdSec:   raw.SegmentPauseThresholdSec,
		DatabaseURL:                raw.DatabaseURL,
		StylePresetsFile:           raw.StylePresetsFile,
		ImageLibraryDir:            raw.ImageLibraryDir,
		IntakeDir:                  raw.IntakeDir,
		BlenderAddr:                raw.BlenderAddr,
		SnapshotWebhookURL:         raw.SnapshotWebhookURL,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
