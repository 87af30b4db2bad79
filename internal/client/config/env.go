package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envConfig mirrors the overridable fields as RENTEASE_* variables, e.g.
// RENTEASE_API_BASE_URL, RENTEASE_REQUEST_TIMEOUT=30s.
type envConfig struct {
	APIBaseURL     string        `envconfig:"API_BASE_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	StateDir       string        `envconfig:"STATE_DIR"`
	EmailCheckRPS  float64       `envconfig:"EMAIL_CHECK_RPS"`
}

// parseEnv overlays cfg from the environment, loading a .env file first when
// one exists in the working directory. A missing .env is not an error, and a
// variable that is set but empty counts as unset rather than as a value.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()
	dropEmptyVars("RENTEASE_")

	var ec envConfig
	if err := envconfig.Process("rentease", &ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.StateDir != "" {
		cfg.StateDir = ec.StateDir
	}
	if ec.EmailCheckRPS != 0 {
		cfg.EmailCheckRPS = ec.EmailCheckRPS
	}
}

// dropEmptyVars unsets environment variables under the prefix whose value is
// empty. envconfig processes set-but-empty variables and fails converting ""
// to typed fields such as durations.
func dropEmptyVars(prefix string) {
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok && value == "" && strings.HasPrefix(key, prefix) {
			os.Unsetenv(key)
		}
	}
}
