package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileDefaults(t *testing.T) {
	clearEnvVars(t)

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"Mode default", "dev", profile.Mode},
		{"Driver default", "sqlite", profile.Driver},
		{"OllamaBaseURL default", "http://localhost:11434/v1", profile.OllamaBaseURL},
		{"OllamaModel default", "llama3.2", profile.OllamaModel},
		{"OpenAIBaseURL default", "https://api.openai.com/v1", profile.OpenAIBaseURL},
		{"DeepSeekBaseURL default", "https://api.deepseek.com/v1", profile.DeepSeekBaseURL},
		{"GroqBaseURL default", "https://api.groq.com/openai/v1", profile.GroqBaseURL},
		{"SpeechEngine default", "log", profile.SpeechEngine},
		{"Effector default", "noop", profile.Effector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.actual)
		})
	}
}

func TestProfileFromEnv(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("VERBALIS_OPENAI_API_KEY", "sk-test")
	t.Setenv("VERBALIS_GROQ_MODEL", "mixtral-8x7b")
	t.Setenv("VERBALIS_SPEECH_ENGINE", "espeak")

	profile := &Profile{}
	profile.FromEnv()

	assert.Equal(t, "sk-test", profile.OpenAIAPIKey)
	assert.Equal(t, "mixtral-8x7b", profile.GroqModel)
	assert.Equal(t, "espeak", profile.SpeechEngine)
}

func TestProfileFlagsWinOverEnv(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("VERBALIS_DRIVER", "postgres")

	profile := &Profile{Driver: "sqlite"}
	profile.FromEnv()

	assert.Equal(t, "sqlite", profile.Driver)
}

func TestProfileValidate(t *testing.T) {
	clearEnvVars(t)

	t.Run("sqlite gets default DSN", func(t *testing.T) {
		profile := &Profile{Mode: "dev", Driver: "sqlite", Data: t.TempDir()}
		require.NoError(t, profile.Validate())
		assert.Contains(t, profile.DSN, "verbalis_dev.db")
	})

	t.Run("postgres requires DSN", func(t *testing.T) {
		profile := &Profile{Mode: "dev", Driver: "postgres", Data: t.TempDir()}
		require.Error(t, profile.Validate())
	})

	t.Run("unknown driver rejected", func(t *testing.T) {
		profile := &Profile{Mode: "dev", Driver: "mysql", Data: t.TempDir()}
		require.Error(t, profile.Validate())
	})

	t.Run("unknown mode falls back to dev", func(t *testing.T) {
		profile := &Profile{Mode: "staging", Driver: "sqlite", Data: t.TempDir()}
		require.NoError(t, profile.Validate())
		assert.Equal(t, "dev", profile.Mode)
	})
}

func TestHasBackend(t *testing.T) {
	profile := &Profile{}
	assert.False(t, profile.HasBackend())

	profile.OllamaBaseURL = "http://localhost:11434/v1"
	assert.True(t, profile.HasBackend())
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"VERBALIS_MODE", "VERBALIS_DRIVER", "VERBALIS_DATA", "VERBALIS_DSN",
		"VERBALIS_OLLAMA_BASE_URL", "VERBALIS_OLLAMA_MODEL",
		"VERBALIS_OPENAI_API_KEY", "VERBALIS_OPENAI_BASE_URL", "VERBALIS_OPENAI_MODEL",
		"VERBALIS_DEEPSEEK_API_KEY", "VERBALIS_DEEPSEEK_BASE_URL", "VERBALIS_DEEPSEEK_MODEL",
		"VERBALIS_GROQ_API_KEY", "VERBALIS_GROQ_BASE_URL", "VERBALIS_GROQ_MODEL",
		"VERBALIS_SPEECH_ENGINE", "VERBALIS_ESPEAK_PATH", "VERBALIS_EFFECTOR", "VERBALIS_ADB_PATH",
	} {
		t.Setenv(key, "")
	}
}
