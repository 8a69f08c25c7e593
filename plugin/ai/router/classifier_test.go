package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verbalis/verbalis/plugin/ai"
)

func TestCanonicalIntent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Intent
	}{
		{"plain open", "open", IntentOpenApp},
		{"open in a sentence", "The intent is: open.", IntentOpenApp},
		{"close", "close", IntentCloseApp},
		{"play", "play", IntentPlayMedia},
		{"whatsapp beats message", "whatsapp message", IntentWhatsApp},
		{"call", "call", IntentPhoneCall},
		{"message", "message", IntentSendMessage},
		{"system", "system", IntentSystemControl},
		{"search", "search", IntentWebSearch},
		{"content", "content", IntentContent},
		{"unrecognized", "banana", IntentGeneral},
		{"empty", "", IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, canonicalIntent(tt.text))
		})
	}
}

// The substring mapping is deliberately permissive and order-dependent.
// These cases pin the known ambiguity so a future "fix" shows up as a
// deliberate behavioral change rather than an accident.
func TestCanonicalIntentAmbiguousCompounds(t *testing.T) {
	// "open" is checked before "close", so a compound answer that
	// mentions both maps to open_app.
	assert.Equal(t, IntentOpenApp, canonicalIntent("close the app after opening"))

	// "play" is checked before "call": "playing a call recording" maps
	// to play_media even though a human might read it as phone-related.
	assert.Equal(t, IntentPlayMedia, canonicalIntent("play the call recording"))
}

func TestClassifyIntentMapsBackendText(t *testing.T) {
	backend := &fakeBackend{name: "alpha", text: "open"}
	svc := newTestService(backend)

	res := svc.ClassifyIntent(context.Background(), "fire up chrome for me")

	require.True(t, res.Success)
	assert.Equal(t, IntentOpenApp, res.Intent)
	assert.Equal(t, "alpha", res.Backend)
	assert.InDelta(t, aiConfidence, res.Confidence, 0.001)
}

func TestClassifyIntentCachesSuccesses(t *testing.T) {
	backend := &fakeBackend{name: "alpha", text: "open"}
	svc := newTestService(backend)

	first := svc.ClassifyIntent(context.Background(), "fire up chrome for me")
	second := svc.ClassifyIntent(context.Background(), "  Fire up CHROME for me ")

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), backend.calls.Load(), "repeat classification must not hit the backend")
}

func TestClassifyIntentDoesNotCacheFailures(t *testing.T) {
	backend := &fakeBackend{name: "alpha", err: errors.New("down")}
	svc := newTestService(backend)

	svc.ClassifyIntent(context.Background(), "anything")
	svc.ClassifyIntent(context.Background(), "anything")

	assert.Equal(t, int32(2), backend.calls.Load())
}

func TestClassifyIntentTotalFailureFallsBackToGeneral(t *testing.T) {
	backend := &fakeBackend{name: "alpha", err: errors.New("down")}
	svc := newTestService(backend)

	res := svc.ClassifyIntent(context.Background(), "anything")

	assert.False(t, res.Success)
	assert.Equal(t, IntentGeneral, res.Intent)
	assert.Zero(t, res.Confidence)
}

func TestGenerateContentUsesTemplate(t *testing.T) {
	backend := &recordingBackend{fakeBackend: fakeBackend{name: "alpha", text: "Dear Tom, ..."}}
	svc := newTestService(backend)

	res := svc.GenerateContent(context.Background(), "email", "the quarterly report", ContentOptions{Recipient: "Tom", Tone: "formal"})

	require.True(t, res.Success)
	assert.Contains(t, backend.lastPrompt, "email about: the quarterly report")
	assert.Contains(t, backend.lastPrompt, "addressed to Tom")
	assert.Contains(t, backend.lastPrompt, "formal tone")
}

func TestGenerateContentUnknownTypeFallsBackToNote(t *testing.T) {
	backend := &recordingBackend{fakeBackend: fakeBackend{name: "alpha", text: "note text"}}
	svc := newTestService(backend)

	res := svc.GenerateContent(context.Background(), "sonnet-cycle", "spring", ContentOptions{})

	require.True(t, res.Success)
	assert.Contains(t, backend.lastPrompt, "note about: spring")
}

// recordingBackend captures the last prompt it was asked to complete.
type recordingBackend struct {
	fakeBackend
	lastPrompt string
}

func (r *recordingBackend) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	r.lastPrompt = userPrompt
	return r.fakeBackend.Complete(ctx, systemPrompt, userPrompt)
}

var _ ai.Backend = (*recordingBackend)(nil)
