package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the assistant.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Data is the data directory
	Data string
	// DSN points to where verbalis stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of the assistant
	Version string

	// Backend configuration. An empty API key disables the backend.
	OllamaBaseURL  string // VERBALIS_OLLAMA_BASE_URL (default: http://localhost:11434/v1)
	OllamaModel    string // VERBALIS_OLLAMA_MODEL (default: llama3.2)
	OpenAIAPIKey   string // VERBALIS_OPENAI_API_KEY
	OpenAIBaseURL  string // VERBALIS_OPENAI_BASE_URL (default: https://api.openai.com/v1)
	OpenAIModel    string // VERBALIS_OPENAI_MODEL (default: gpt-4o-mini)
	DeepSeekAPIKey string // VERBALIS_DEEPSEEK_API_KEY
	DeepSeekBaseURL string // VERBALIS_DEEPSEEK_BASE_URL (default: https://api.deepseek.com/v1)
	DeepSeekModel  string // VERBALIS_DEEPSEEK_MODEL (default: deepseek-chat)
	GroqAPIKey     string // VERBALIS_GROQ_API_KEY
	GroqBaseURL    string // VERBALIS_GROQ_BASE_URL (default: https://api.groq.com/openai/v1)
	GroqModel      string // VERBALIS_GROQ_MODEL (default: llama-3.1-8b-instant)

	// Collaborator configuration
	SpeechEngine string // VERBALIS_SPEECH_ENGINE (espeak or log, default: log)
	EspeakPath   string // VERBALIS_ESPEAK_PATH (default: espeak)
	Effector     string // VERBALIS_EFFECTOR (adb or noop, default: noop)
	ADBPath      string // VERBALIS_ADB_PATH (default: adb)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// HasBackend returns true if at least one language-model backend is configured.
func (p *Profile) HasBackend() bool {
	return p.OllamaBaseURL != "" || p.OpenAIAPIKey != "" || p.DeepSeekAPIKey != "" || p.GroqAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from VERBALIS_* environment variables.
// Values already set on the profile (e.g. from flags) are not overwritten.
func (p *Profile) FromEnv() {
	setIfEmpty := func(dst *string, key, defaultValue string) {
		if *dst == "" {
			*dst = getEnvOrDefault(key, defaultValue)
		}
	}

	setIfEmpty(&p.Mode, "VERBALIS_MODE", "dev")
	setIfEmpty(&p.Driver, "VERBALIS_DRIVER", "sqlite")
	setIfEmpty(&p.Data, "VERBALIS_DATA", "")
	setIfEmpty(&p.DSN, "VERBALIS_DSN", "")

	setIfEmpty(&p.OllamaBaseURL, "VERBALIS_OLLAMA_BASE_URL", "http://localhost:11434/v1")
	setIfEmpty(&p.OllamaModel, "VERBALIS_OLLAMA_MODEL", "llama3.2")
	setIfEmpty(&p.OpenAIAPIKey, "VERBALIS_OPENAI_API_KEY", "")
	setIfEmpty(&p.OpenAIBaseURL, "VERBALIS_OPENAI_BASE_URL", "https://api.openai.com/v1")
	setIfEmpty(&p.OpenAIModel, "VERBALIS_OPENAI_MODEL", "gpt-4o-mini")
	setIfEmpty(&p.DeepSeekAPIKey, "VERBALIS_DEEPSEEK_API_KEY", "")
	setIfEmpty(&p.DeepSeekBaseURL, "VERBALIS_DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1")
	setIfEmpty(&p.DeepSeekModel, "VERBALIS_DEEPSEEK_MODEL", "deepseek-chat")
	setIfEmpty(&p.GroqAPIKey, "VERBALIS_GROQ_API_KEY", "")
	setIfEmpty(&p.GroqBaseURL, "VERBALIS_GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	setIfEmpty(&p.GroqModel, "VERBALIS_GROQ_MODEL", "llama-3.1-8b-instant")

	setIfEmpty(&p.SpeechEngine, "VERBALIS_SPEECH_ENGINE", "log")
	setIfEmpty(&p.EspeakPath, "VERBALIS_ESPEAK_PATH", "espeak")
	setIfEmpty(&p.Effector, "VERBALIS_EFFECTOR", "noop")
	setIfEmpty(&p.ADBPath, "VERBALIS_ADB_PATH", "adb")
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Data == "" {
		p.Data = "."
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}
	p.Data = dataDir

	switch p.Driver {
	case "sqlite":
		if p.DSN == "" {
			dbFile := fmt.Sprintf("verbalis_%s.db", p.Mode)
			p.DSN = filepath.Join(dataDir, dbFile)
		}
	case "postgres":
		if p.DSN == "" {
			return errors.New("DSN is required for the postgres driver")
		}
	default:
		return errors.Errorf("unknown db driver: %s", p.Driver)
	}

	return nil
}
