// Package assistant implements the command-understanding pipeline:
// a deterministic pattern matcher with an AI-backed classification
// fallback, intent handlers producing structured action requests, and
// an executor that performs the side effect through narrow collaborator
// interfaces.
package assistant

import (
	"context"

	"github.com/verbalis/verbalis/plugin/ai/router"
	"github.com/verbalis/verbalis/store"
)

// Slots holds the named values extracted from an utterance.
type Slots map[string]string

// ActionRequest is the handoff contract between decision-making
// (handlers) and effecting (executor).
type ActionRequest struct {
	Intent             router.Intent
	Action             string
	Parameters         map[string]any
	Reply              string
	NeedsClarification bool

	// Routing metadata carried through for the chat-history record.
	Backend   string
	ElapsedMs int64
}

// ActionResult reports the outcome of executing an ActionRequest.
type ActionResult struct {
	Success bool
	Message string
	Data    map[string]any
}

// Action names produced by the intent handlers.
const (
	ActionMakeCall     = "make_call"
	ActionSendSMS      = "send_sms"
	ActionSendWhatsApp = "send_whatsapp"
	ActionOpenApp      = "open_system_app"
	ActionCloseApp     = "close_app"
	ActionPlayMedia    = "play_media"
	ActionWebSearch    = "web_search"
	ActionSystem       = "system_command"
	ActionSpeakReply   = "speak_reply"
	ActionExit         = "exit"
)

// ContactLookup is the contact-store capability the pipeline needs.
// *store.Store satisfies it.
type ContactLookup interface {
	FindContactByName(ctx context.Context, name string) (*store.Contact, error)
}

// HistoryAppender is the chat-history capability the processor needs.
// *store.Store satisfies it.
type HistoryAppender interface {
	CreateChatExchange(ctx context.Context, create *store.ChatExchange) (*store.ChatExchange, error)
}

// Effector performs real-world device actions. Implementations live in
// plugin/device; failures are reported as errors and contained by the
// executor, never propagated past it.
type Effector interface {
	Call(ctx context.Context, phone string) error
	SMS(ctx context.Context, phone, message string) error
	WhatsApp(ctx context.Context, phone, message, mode string) error
	OpenApp(ctx context.Context, name string) error
	CloseApp(ctx context.Context, name string) error
	PlayMedia(ctx context.Context, query string) error
	WebSearch(ctx context.Context, query, engine string) error
	System(ctx context.Context, command string) error
}

// Speech speaks text to the user. Failures are logged, never fatal.
type Speech interface {
	Say(ctx context.Context, text string) error
}
