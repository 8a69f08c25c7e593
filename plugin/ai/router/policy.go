package router

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/verbalis/verbalis/plugin/ai"
)

// systemPrompts is the fixed prompt table keyed by task category.
// Lookups for unknown categories fall back to the general prompt.
var systemPrompts = map[TaskCategory]string{
	TaskGeneral: "You are Verbalis, a helpful voice assistant. " +
		"Answer briefly and conversationally; your replies are spoken aloud.",
	TaskContent: "You are a writing assistant. Produce well-structured text " +
		"of the requested kind. Output only the content itself, no preamble.",
	TaskCode: "You are a programming assistant. Reply with working code and " +
		"a one-line explanation.",
	TaskRealtime: "You are a voice assistant answering questions that may " +
		"involve recent events. If you are unsure whether your knowledge is " +
		"current, say so explicitly.",
	TaskClassification: "You are an intent classifier. Follow the " +
		"instructions exactly and output only what is asked for.",
}

// systemPromptFor returns the system prompt for a category,
// defaulting to the general prompt.
func systemPromptFor(category TaskCategory) string {
	if prompt, ok := systemPrompts[category]; ok {
		return prompt
	}
	return systemPrompts[TaskGeneral]
}

// backendSlot pairs a backend with its request rate limiter.
type backendSlot struct {
	backend ai.Backend
	limiter *rate.Limiter
}

// Policy holds the ordered backend list per task category.
// It is built once at startup and read-only thereafter.
type Policy struct {
	perCategory map[TaskCategory][]backendSlot
}

// NewPolicy builds the routing policy from the configured backends.
// The given order is the fallback priority; by default every category
// uses the same order, except realtime which skips the local backend
// (local models have no recency advantage and hosted ones answer faster
// for short factual queries).
func NewPolicy(backends []ai.Backend) *Policy {
	slots := make([]backendSlot, 0, len(backends))
	for _, b := range backends {
		slots = append(slots, backendSlot{
			backend: b,
			limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 3),
		})
	}

	hosted := make([]backendSlot, 0, len(slots))
	for _, s := range slots {
		if s.backend.Name() != "ollama" {
			hosted = append(hosted, s)
		}
	}
	if len(hosted) == 0 {
		hosted = slots
	}

	perCategory := map[TaskCategory][]backendSlot{
		TaskGeneral:        slots,
		TaskContent:        slots,
		TaskCode:           slots,
		TaskRealtime:       hosted,
		TaskClassification: slots,
	}

	return &Policy{perCategory: perCategory}
}

// slotsFor returns the ordered backend slots for a category,
// defaulting to the general list.
func (p *Policy) slotsFor(category TaskCategory) []backendSlot {
	if slots, ok := p.perCategory[category]; ok {
		return slots
	}
	return p.perCategory[TaskGeneral]
}

// Backends returns the backend names for a category in priority order.
func (p *Policy) Backends(category TaskCategory) []string {
	slots := p.slotsFor(category)
	names := make([]string, 0, len(slots))
	for _, s := range slots {
		names = append(names, s.backend.Name())
	}
	return names
}
