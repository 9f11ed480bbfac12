package config

import "fmt"

const (
	TranscriberCloudSpeech = "cloud_speech"
	TranscriberWhisperx    = "whisperx"
)

type Config struct {
	Env         string
	ProjectsDir string
	ProjectName string

	Transcriber                string
	DefaultLanguage            string
	GoogleCloudProjectID       string
	GoogleCloudCredentialsJSON string
	GoogleCloudSpeechLocation  string
	GoogleCloudSpeechModel     string
	WhisperxBinary             string

	SegmentMinDurationSec    float64
	SegmentMaxDurationSec    float64
	SegmentPauseThresholdSec float64

	DatabaseURL        string
	StylePresetsFile   string
	ImageLibraryDir    string
	IntakeDir          string
	BlenderAddr        string
	SnapshotWebhookURL string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	switch c.Transcriber {
	case TranscriberCloudSpeech:
		if c.GoogleCloudProjectID == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT_ID is required when TRANSCRIBER=%s", TranscriberCloudSpeech)
		}
		if c.GoogleCloudCredentialsJSON == "" {
			return fmt.Errorf("GOOGLE_CLOUD_CREDENTIALS_JSON is required when TRANSCRIBER=%s", TranscriberCloudSpeech)
		}
	case TranscriberWhisperx:
		if c.WhisperxBinary == "" {
			return fmt.Errorf("WHISPERX_BINARY is required when TRANSCRIBER=%s", TranscriberWhisperx)
		}
	default:
		return fmt.Errorf("TRANSCRIBER must be %s or %s, got %q", TranscriberCloudSpeech, TranscriberWhisperx, c.Transcriber)
	}
	if c.SegmentMinDurationSec <= 0 {
		return fmt.Errorf("SEGMENT_MIN_DURATION_SEC must be positive, got %v", c.SegmentMinDurationSec)
	}
	if c.SegmentMaxDurationSec <= c.SegmentMinDurationSec {
		return fmt.Errorf("SEGMENT_MAX_DURATION_SEC must exceed SEGMENT_MIN_DURATION_SEC, got %v", c.SegmentMaxDurationSec)
	}
	if c.SegmentPauseThresholdSec <= 0 {
		return fmt.Errorf("SEGMENT_PAUSE_THRESHOLD_SEC must be positive, got %v", c.SegmentPauseThresholdSec)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "PROJECTS_DIR", value: c.ProjectsDir},
		{name: "PROJECT_NAME", value: c.ProjectName},
		{name: "TRANSCRIBER", value: c.Transcriber},
		{name: "DEFAULT_LANGUAGE", value: c.DefaultLanguage},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
