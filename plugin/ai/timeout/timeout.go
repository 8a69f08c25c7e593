// Package timeout defines centralized timeout constants for AI operations.
package timeout

import "time"

const (
	// BackendTimeout bounds a single generation attempt against one backend.
	// A stalled backend must not stall the whole fallback chain.
	BackendTimeout = 12 * time.Second

	// ClassifyTimeout bounds a single intent-classification attempt.
	// Classification prompts are short, so the bound is tighter.
	ClassifyTimeout = 8 * time.Second

	// ProbeTimeout bounds the startup health probe per backend.
	ProbeTimeout = 3 * time.Second

	// EffectorTimeout bounds one device-effector invocation.
	EffectorTimeout = 15 * time.Second

	// SpeechTimeout bounds one text-to-speech invocation.
	SpeechTimeout = 30 * time.Second

	// HistoryWriteTimeout bounds the chat-history append performed after
	// a turn completes.
	HistoryWriteTimeout = 5 * time.Second
)
