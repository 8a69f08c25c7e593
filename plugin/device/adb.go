// Package device provides effectors that carry out assistant actions on
// a connected device. The adb effector drives an Android phone over the
// Android Debug Bridge; the noop effector logs what would happen and is
// used when no device is attached.
package device

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Config holds the adb effector configuration.
type Config struct {
	// ADBPath is the path to the adb executable.
	ADBPath string
	// Serial selects a device when several are attached (adb -s).
	Serial string
}

// DefaultConfig returns the default adb configuration.
func DefaultConfig() *Config {
	return &Config{ADBPath: "adb"}
}

// ADBEffector performs device actions through adb shell intents and
// key events.
type ADBEffector struct {
	config *Config
}

// NewADBEffector creates an adb-backed effector.
func NewADBEffector(config *Config) *ADBEffector {
	if config == nil {
		config = DefaultConfig()
	}
	return &ADBEffector{config: config}
}

func (a *ADBEffector) run(ctx context.Context, args ...string) error {
	full := []string{}
	if a.config.Serial != "" {
		full = append(full, "-s", a.config.Serial)
	}
	full = append(full, args...)

	cmd := exec.CommandContext(ctx, a.config.ADBPath, full...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		slog.Warn("adb command failed",
			"args", strings.Join(args, " "),
			"error", err,
			"stderr", stderr.String())
		return errors.Wrap(err, "adb command failed")
	}
	return nil
}

// Call dials the given phone number.
func (a *ADBEffector) Call(ctx context.Context, phone string) error {
	if phone == "" {
		return errors.New("no phone number to call")
	}
	return a.run(ctx, "shell", "am", "start",
		"-a", "android.intent.action.CALL",
		"-d", "tel:"+phone)
}

// SMS opens the messaging app with the recipient and body prefilled,
// then sends it with an ENTER key event.
func (a *ADBEffector) SMS(ctx context.Context, phone, message string) error {
	if phone == "" {
		return errors.New("no phone number to message")
	}
	if err := a.run(ctx, "shell", "am", "start",
		"-a", "android.intent.action.SENDTO",
		"-d", "sms:"+phone,
		"--es", "sms_body", message,
		"--ez", "exit_on_sent", "true"); err != nil {
		return err
	}
	return a.run(ctx, "shell", "input", "keyevent", "KEYCODE_ENTER")
}

// WhatsApp opens a WhatsApp chat (or call) with the contact.
func (a *ADBEffector) WhatsApp(ctx context.Context, phone, message, mode string) error {
	if phone == "" {
		return errors.New("no phone number for whatsapp")
	}
	number := strings.TrimPrefix(phone, "+")
	if mode == "call" {
		return a.run(ctx, "shell", "am", "start",
			"-a", "android.intent.action.VIEW",
			"-d", "whatsapp://call?phone="+number)
	}
	uri := fmt.Sprintf("whatsapp://send?phone=%s&text=%s", number, url.QueryEscape(message))
	if err := a.run(ctx, "shell", "am", "start",
		"-a", "android.intent.action.VIEW",
		"-d", uri); err != nil {
		return err
	}
	return a.run(ctx, "shell", "input", "keyevent", "KEYCODE_ENTER")
}

// OpenApp launches an app by its launcher name through the monkey tool
// when given a package name, or a search intent otherwise.
func (a *ADBEffector) OpenApp(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("no app to open")
	}
	if strings.Contains(name, ".") {
		// Looks like a package name, e.g. com.android.chrome.
		return a.run(ctx, "shell", "monkey",
			"-p", name,
			"-c", "android.intent.category.LAUNCHER", "1")
	}
	return a.run(ctx, "shell", "am", "start",
		"-a", "android.intent.action.MAIN",
		"-c", "android.intent.category.LAUNCHER",
		"-e", "query", name)
}

// CloseApp force-stops the app.
func (a *ADBEffector) CloseApp(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("no app to close")
	}
	return a.run(ctx, "shell", "am", "force-stop", name)
}

// PlayMedia fires a media search intent for the query.
func (a *ADBEffector) PlayMedia(ctx context.Context, query string) error {
	if query == "" {
		return errors.New("nothing to play")
	}
	return a.run(ctx, "shell", "am", "start",
		"-a", "android.media.action.MEDIA_PLAY_FROM_SEARCH",
		"-e", "query", query)
}

// WebSearch opens the engine's search URL in the device browser.
func (a *ADBEffector) WebSearch(ctx context.Context, query, engine string) error {
	if query == "" {
		return errors.New("empty search query")
	}
	base, ok := searchURLs[engine]
	if !ok {
		base = searchURLs["google"]
	}
	return a.run(ctx, "shell", "am", "start",
		"-a", "android.intent.action.VIEW",
		"-d", base+url.QueryEscape(query))
}

var searchURLs = map[string]string{
	"google":     "https://www.google.com/search?q=",
	"bing":       "https://www.bing.com/search?q=",
	"duckduckgo": "https://duckduckgo.com/?q=",
	"youtube":    "https://www.youtube.com/results?search_query=",
}

// System executes a named device control command, either as a key
// event or an adb shell service call.
func (a *ADBEffector) System(ctx context.Context, command string) error {
	normalized := strings.ToLower(strings.TrimSpace(command))
	if key, ok := systemKeyEvents[normalized]; ok {
		return a.run(ctx, "shell", "input", "keyevent", key)
	}
	if args, ok := systemShellCommands[normalized]; ok {
		return a.run(ctx, append([]string{"shell"}, args...)...)
	}
	return errors.Errorf("unknown system command: %s", command)
}

var systemShellCommands = map[string][]string{
	"wifi on":       {"svc", "wifi", "enable"},
	"wifi off":      {"svc", "wifi", "disable"},
	"bluetooth on":  {"svc", "bluetooth", "enable"},
	"bluetooth off": {"svc", "bluetooth", "disable"},
}

var systemKeyEvents = map[string]string{
	"volume up":       "KEYCODE_VOLUME_UP",
	"volume down":     "KEYCODE_VOLUME_DOWN",
	"mute":            "KEYCODE_VOLUME_MUTE",
	"unmute":          "KEYCODE_VOLUME_MUTE",
	"brightness up":   "KEYCODE_BRIGHTNESS_UP",
	"brightness down": "KEYCODE_BRIGHTNESS_DOWN",
	"screenshot":      "KEYCODE_SYSRQ",
	"lock screen":     "KEYCODE_POWER",
}
