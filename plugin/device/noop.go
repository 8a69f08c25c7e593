package device

import (
	"context"
	"log/slog"
)

// NoopEffector logs every requested action without touching a device.
// It keeps the pipeline usable when no phone is attached.
type NoopEffector struct{}

// NewNoopEffector creates a log-only effector.
func NewNoopEffector() *NoopEffector {
	return &NoopEffector{}
}

func (n *NoopEffector) log(action string, args ...any) error {
	fields := append([]any{"action", action}, args...)
	slog.Info("device action (no device attached)", fields...)
	return nil
}

func (n *NoopEffector) Call(_ context.Context, phone string) error {
	return n.log("call", "phone", phone)
}

func (n *NoopEffector) SMS(_ context.Context, phone, message string) error {
	return n.log("sms", "phone", phone, "message", message)
}

func (n *NoopEffector) WhatsApp(_ context.Context, phone, message, mode string) error {
	return n.log("whatsapp", "phone", phone, "mode", mode)
}

func (n *NoopEffector) OpenApp(_ context.Context, name string) error {
	return n.log("open_app", "app", name)
}

func (n *NoopEffector) CloseApp(_ context.Context, name string) error {
	return n.log("close_app", "app", name)
}

func (n *NoopEffector) PlayMedia(_ context.Context, query string) error {
	return n.log("play_media", "query", query)
}

func (n *NoopEffector) WebSearch(_ context.Context, query, engine string) error {
	return n.log("web_search", "query", query, "engine", engine)
}

func (n *NoopEffector) System(_ context.Context, command string) error {
	return n.log("system", "command", command)
}
