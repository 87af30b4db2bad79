package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/XXS1337/rentease/internal/flagx"
	"github.com/XXS1337/rentease/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations can
// be given as strings like "15s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StateDir       string         `json:"state_dir"`
	EmailCheckRPS  float64        `json:"email_check_rps"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// Absent file path means no JSON stage. Only fields present in the file
// (non-zero after unmarshal) override.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.StateDir != "" {
		cfg.StateDir = jc.StateDir
	}
	if jc.EmailCheckRPS != 0 {
		cfg.EmailCheckRPS = jc.EmailCheckRPS
	}
}
