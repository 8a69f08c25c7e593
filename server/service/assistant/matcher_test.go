package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verbalis/verbalis/plugin/ai/router"
)

func TestPatternMatcher(t *testing.T) {
	matcher := NewPatternMatcher()

	tests := []struct {
		name          string
		input         string
		expectIntent  router.Intent
		expectSlots   Slots
		expectMatched bool
	}{
		{
			name:          "call by name",
			input:         "call tom",
			expectIntent:  router.IntentPhoneCall,
			expectSlots:   Slots{"contact_name": "tom"},
			expectMatched: true,
		},
		{
			name:          "call with filler words",
			input:         "please make a call to alice",
			expectIntent:  router.IntentPhoneCall,
			expectSlots:   Slots{"contact_name": "alice"},
			expectMatched: true,
		},
		{
			name:          "open app",
			input:         "open chrome",
			expectIntent:  router.IntentOpenApp,
			expectSlots:   Slots{"app_name": "chrome"},
			expectMatched: true,
		},
		{
			name:          "launch app",
			input:         "launch the settings",
			expectIntent:  router.IntentOpenApp,
			expectSlots:   Slots{"app_name": "the settings"},
			expectMatched: true,
		},
		{
			name:          "close app",
			input:         "close spotify",
			expectIntent:  router.IntentCloseApp,
			expectSlots:   Slots{"app_name": "spotify"},
			expectMatched: true,
		},
		{
			name:          "play media",
			input:         "play bohemian rhapsody",
			expectIntent:  router.IntentPlayMedia,
			expectSlots:   Slots{"media": "bohemian rhapsody"},
			expectMatched: true,
		},
		{
			name:          "whatsapp message with body",
			input:         "send a whatsapp message to tom saying running late",
			expectIntent:  router.IntentWhatsApp,
			expectSlots:   Slots{"contact_name": "tom", "message": "running late", "mode": "message"},
			expectMatched: true,
		},
		{
			name:          "whatsapp call",
			input:         "whatsapp call tom",
			expectIntent:  router.IntentWhatsApp,
			expectSlots:   Slots{"contact_name": "tom", "mode": "call"},
			expectMatched: true,
		},
		{
			name:          "sms with body",
			input:         "send a text to alice saying see you at five",
			expectIntent:  router.IntentSendMessage,
			expectSlots:   Slots{"contact_name": "alice", "message": "see you at five"},
			expectMatched: true,
		},
		{
			name:          "search with engine",
			input:         "search for go generics on duckduckgo",
			expectIntent:  router.IntentWebSearch,
			expectSlots:   Slots{"query": "go generics", "engine": "duckduckgo"},
			expectMatched: true,
		},
		{
			name:          "search without engine",
			input:         "google weather in berlin",
			expectIntent:  router.IntentWebSearch,
			expectSlots:   Slots{"query": "weather in berlin"},
			expectMatched: true,
		},
		{
			name:          "system control",
			input:         "volume up",
			expectIntent:  router.IntentSystemControl,
			expectSlots:   Slots{"command": "volume up"},
			expectMatched: true,
		},
		{
			name:          "content generation",
			input:         "write an email about the quarterly report",
			expectIntent:  router.IntentContent,
			expectSlots:   Slots{"content_type": "email", "topic": "the quarterly report"},
			expectMatched: true,
		},
		{
			name:          "free-form question does not match",
			input:         "what is the capital of france",
			expectMatched: false,
		},
		{
			name:          "empty input does not match",
			input:         "   ",
			expectMatched: false,
		},
		{
			name:          "case insensitive",
			input:         "OPEN Chrome",
			expectIntent:  router.IntentOpenApp,
			expectSlots:   Slots{"app_name": "chrome"},
			expectMatched: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, slots, matched := matcher.Match(tt.input)
			require.Equal(t, tt.expectMatched, matched)
			if matched {
				assert.Equal(t, tt.expectIntent, intent)
				assert.Equal(t, tt.expectSlots, slots)
			}
		})
	}
}

// Overlapping rules are resolved purely by table order, first match wins.
func TestPatternMatcherRuleOrder(t *testing.T) {
	matcher := NewPatternMatcher()

	// "whatsapp call tom" matches both the WhatsApp rule and the generic
	// phone rule ("...call tom"); the WhatsApp rule is declared first.
	intent, slots, matched := matcher.Match("whatsapp call tom")
	require.True(t, matched)
	assert.Equal(t, router.IntentWhatsApp, intent)
	assert.Equal(t, "call", slots["mode"])
}

func TestPatternMatcherDeterminism(t *testing.T) {
	matcher := NewPatternMatcher()

	firstIntent, firstSlots, _ := matcher.Match("call tom")
	for i := 0; i < 10; i++ {
		intent, slots, _ := matcher.Match("call tom")
		assert.Equal(t, firstIntent, intent)
		assert.Equal(t, firstSlots, slots)
	}
}
