package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable read by the client.
const EnvPrefix = "FUSCAO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App   AppConfig
	API   APIConfig
	State StateConfig
	PDF   PDFConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.ensureBaseURL(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FUSCAO_APP_ENV" default:"prod"`
	LogLevel     string `envconfig:"FUSCAO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FUSCAO_LOG_WARN_STACK" default:"false"`
	LogFile      string `envconfig:"FUSCAO_LOG_FILE" default:"fuscao.log"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL        string        `envconfig:"FUSCAO_API_BASE_URL" default:"http://localhost:8080"`
	Timeout        time.Duration `envconfig:"FUSCAO_API_TIMEOUT" default:"10s"`
	RetryAttempts  int           `envconfig:"FUSCAO_API_RETRY_ATTEMPTS" default:"3"`
	RetryBaseDelay time.Duration `envconfig:"FUSCAO_API_RETRY_BASE_DELAY" default:"250ms"`
}

type StateConfig struct {
	// Path of the sqlite file holding the session and draft state.
	Path string `envconfig:"FUSCAO_STATE_PATH" default:"fuscao.db"`
}

type PDFConfig struct {
	DownloadDir string `envconfig:"FUSCAO_PDF_DOWNLOAD_DIR" default:"."`
}

func (a *APIConfig) ensureBaseURL() error {
	raw := strings.TrimSpace(a.BaseURL)
	if raw == "" {
		return fmt.Errorf("FUSCAO_API_BASE_URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("FUSCAO_API_BASE_URL must be an absolute URL: %q", raw)
	}
	a.BaseURL = strings.TrimRight(raw, "/")
	return nil
}
