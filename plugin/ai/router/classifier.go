package router

import (
	"context"
	"fmt"
	"strings"
)

// aiConfidence is the fixed placeholder confidence for the AI path.
// It is not a calibrated probability; callers must key off Success.
const aiConfidence = 0.6

// classificationPrompt enumerates the intent vocabulary. The backend's
// free-text answer is mapped to a canonical intent by substring checks.
const classificationPrompt = `Classify the user's utterance into exactly one of these intents:
open, close, play, call, message, whatsapp, system, search, content, general.

- open: open or launch an application
- close: close or quit an application
- play: play music or a video
- call: make a phone call
- message: send an SMS or text message
- whatsapp: send a WhatsApp message or make a WhatsApp call
- system: control device settings (volume, brightness, wifi, bluetooth)
- search: search the web for something
- content: write an email, essay, poem, letter or other text
- general: anything else, including questions and conversation

Reply with only the intent word.

Utterance: %s`

// ClassifyIntent classifies an utterance by routing a classification
// request and mapping the returned text to a canonical intent.
// Total backend failure degrades to IntentGeneral with Success=false.
// Successful classifications are cached per normalized utterance; the
// mapping is stable, so repeats skip the network entirely.
func (s *Service) ClassifyIntent(ctx context.Context, utterance string) ClassificationResult {
	cacheKey := strings.ToLower(strings.TrimSpace(utterance))
	if cached, ok := s.classifyCache.Get(cacheKey); ok {
		if result, ok := cached.(ClassificationResult); ok {
			return result
		}
	}

	prompt := fmt.Sprintf(classificationPrompt, utterance)

	res := s.Generate(ctx, prompt, TaskClassification)
	if !res.Success {
		return ClassificationResult{
			Intent:     IntentGeneral,
			Confidence: 0,
			Backend:    res.Backend,
			Success:    false,
		}
	}

	result := ClassificationResult{
		Intent:     canonicalIntent(res.Text),
		Confidence: aiConfidence,
		Backend:    res.Backend,
		Success:    true,
	}
	s.classifyCache.Set(cacheKey, result)
	return result
}

// intentKeywords is the ordered substring mapping from classifier output
// to canonical intents. The order is load-bearing: checks are permissive
// (substring, not exact match), so a compound answer like "close after
// opening" maps to whichever keyword is checked first. Kept as-is for
// behavioral compatibility; see the classifier tests for the known
// ambiguity cases.
var intentKeywords = []struct {
	keyword string
	intent  Intent
}{
	{"open", IntentOpenApp},
	{"close", IntentCloseApp},
	{"play", IntentPlayMedia},
	{"whatsapp", IntentWhatsApp},
	{"call", IntentPhoneCall},
	{"message", IntentSendMessage},
	{"system", IntentSystemControl},
	{"search", IntentWebSearch},
	{"content", IntentContent},
}

// canonicalIntent maps the classifier's free-text output to a canonical
// intent via ordered substring checks, defaulting to general.
func canonicalIntent(text string) Intent {
	lower := strings.ToLower(text)
	for _, e := range intentKeywords {
		if strings.Contains(lower, e.keyword) {
			return e.intent
		}
	}
	return IntentGeneral
}
