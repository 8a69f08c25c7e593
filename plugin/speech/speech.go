// Package speech provides text-to-speech output engines. The default
// engine shells out to espeak; a log-only engine serves headless and
// test environments.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Config holds the speech output configuration.
type Config struct {
	// EspeakPath is the path to the espeak executable.
	EspeakPath string
	// Voice is an optional espeak voice name (e.g. "en-us").
	Voice string
	// WordsPerMinute controls speaking speed. espeak's default is 175.
	WordsPerMinute int
}

// DefaultConfig returns the default speech configuration.
func DefaultConfig() *Config {
	return &Config{
		EspeakPath:     "espeak",
		Voice:          "",
		WordsPerMinute: 160,
	}
}

// EspeakOutput speaks text through the espeak command-line synthesizer.
type EspeakOutput struct {
	config *Config
}

// NewEspeakOutput creates an espeak-backed speech engine.
func NewEspeakOutput(config *Config) *EspeakOutput {
	if config == nil {
		config = DefaultConfig()
	}
	return &EspeakOutput{config: config}
}

// Say synthesizes and plays the given text, blocking until playback
// finishes or the context expires.
func (e *EspeakOutput) Say(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	args := []string{}
	if e.config.Voice != "" {
		args = append(args, "-v", e.config.Voice)
	}
	if e.config.WordsPerMinute > 0 {
		args = append(args, "-s", fmt.Sprintf("%d", e.config.WordsPerMinute))
	}
	args = append(args, text)

	cmd := exec.CommandContext(ctx, e.config.EspeakPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		slog.Warn("espeak command failed", "error", err, "stderr", stderr.String())
		return errors.Wrap(err, "espeak command failed")
	}
	return nil
}

// LogOutput writes replies to the structured log instead of speaking.
// Used when no synthesizer is installed and in tests.
type LogOutput struct{}

// NewLogOutput creates a log-only speech engine.
func NewLogOutput() *LogOutput {
	return &LogOutput{}
}

func (l *LogOutput) Say(_ context.Context, text string) error {
	slog.Info("assistant reply", "text", text)
	return nil
}
