// Package router provides the model routing service for the assistant.
// It fans a request across an ordered list of backends per task category
// and returns the first success, tagged with backend identity and timing.
package router

import (
	"context"
	"time"
)

// RouterService defines the model routing service interface.
type RouterService interface {
	// Generate routes a generation request across the backends configured
	// for the task category and returns the first success.
	// Total failure is a result value, never an error that aborts a turn.
	Generate(ctx context.Context, prompt string, category TaskCategory) GenerateResult

	// ClassifyIntent classifies a user utterance into a canonical intent.
	// On total backend failure the intent falls back to IntentGeneral.
	ClassifyIntent(ctx context.Context, utterance string) ClassificationResult

	// GenerateContent generates a piece of content of the given type
	// about the given topic.
	GenerateContent(ctx context.Context, contentType, topic string, opts ContentOptions) GenerateResult
}

// TaskCategory selects the system prompt template and, implicitly,
// which backends are eligible.
type TaskCategory string

const (
	TaskGeneral        TaskCategory = "general"
	TaskContent        TaskCategory = "content"
	TaskCode           TaskCategory = "code"
	TaskRealtime       TaskCategory = "realtime"
	TaskClassification TaskCategory = "classification"
)

// Intent represents the canonical category a user utterance maps to.
type Intent string

const (
	IntentOpenApp       Intent = "open_app"
	IntentCloseApp      Intent = "close_app"
	IntentPlayMedia     Intent = "play_media"
	IntentPhoneCall     Intent = "phone_call"
	IntentSendMessage   Intent = "send_message"
	IntentWhatsApp      Intent = "whatsapp"
	IntentSystemControl Intent = "system_control"
	IntentWebSearch     Intent = "web_search"
	IntentContent       Intent = "content_generation"
	IntentGeneral       Intent = "general"
	IntentExit          Intent = "exit"
)

// GenerateResult is the outcome of one routed generation request.
type GenerateResult struct {
	Text    string
	Backend string
	Elapsed time.Duration
	Success bool
	Err     error
}

// ClassificationResult is the outcome of intent classification.
// Confidence from the AI path is a fixed placeholder, not a calibrated
// probability; callers must rely on Success, not its magnitude.
type ClassificationResult struct {
	Intent     Intent
	Confidence float32
	Backend    string
	Success    bool
}

// ContentOptions tunes content generation.
type ContentOptions struct {
	// Tone is an optional style hint, e.g. "formal" or "casual".
	Tone string
	// Recipient is an optional addressee for emails and letters.
	Recipient string
}
