package assistant

import (
	"regexp"
	"strings"

	"github.com/verbalis/verbalis/plugin/ai/router"
)

// PatternRule is one entry in the deterministic matching table.
// Patterns are tried in declared order; the first that matches wins for
// the rule. Capture groups map positionally onto slotNames, and fixed
// slots are merged in afterwards.
type PatternRule struct {
	intent    router.Intent
	patterns  []*regexp.Regexp
	slotNames []string
	fixed     Slots
}

// PatternMatcher applies an ordered rule table to an utterance before
// any network call. Rules are evaluated in table order and the first
// rule with any matching alternative terminates the search; overlaps
// (e.g. "call" in both WhatsApp and phone rules) are resolved purely by
// that order, not by scoring.
type PatternMatcher struct {
	rules []PatternRule
}

// NewPatternMatcher creates a matcher with the default rule table.
func NewPatternMatcher() *PatternMatcher {
	return &PatternMatcher{rules: defaultRules()}
}

// Match classifies an utterance against the rule table.
// It is a pure function over the utterance and the static table.
func (m *PatternMatcher) Match(utterance string) (router.Intent, Slots, bool) {
	input := strings.ToLower(strings.TrimSpace(utterance))
	if input == "" {
		return "", nil, false
	}

	for _, rule := range m.rules {
		for _, pattern := range rule.patterns {
			groups := pattern.FindStringSubmatch(input)
			if groups == nil {
				continue
			}

			slots := Slots{}
			for i, name := range rule.slotNames {
				if i+1 < len(groups) && groups[i+1] != "" {
					slots[name] = strings.TrimSpace(groups[i+1])
				}
			}
			for name, value := range rule.fixed {
				slots[name] = value
			}
			return rule.intent, slots, true
		}
	}
	return "", nil, false
}

func defaultRules() []PatternRule {
	return []PatternRule{
		// WhatsApp before phone/message: "whatsapp call tom" and
		// "send a whatsapp message to tom" must not fall through to the
		// generic call/message rules.
		{
			intent: router.IntentWhatsApp,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`^whatsapp call (.+)$`),
				regexp.MustCompile(`^(?:make a )?whatsapp call to (.+)$`),
			},
			slotNames: []string{"contact_name"},
			fixed:     Slots{"mode": "call"},
		},
		{
			intent: router.IntentWhatsApp,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`^send (?:a )?whatsapp(?: message)? to (.+?)(?: saying (.+))?$`),
				regexp.MustCompile(`^whatsapp (.+?) saying (.+)$`),
			},
			slotNames: []string{"contact_name", "message"},
			fixed:     Slots{"mode": "message"},
		},
		{
			intent: router.IntentPhoneCall,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`^(?:please )?(?:make a )?(?:phone )?call(?: to)? (.+)$`),
				regexp.MustCompile(`^(?:dial|ring|phone) (.+)$`),
			},
			slotNames: []string{"contact_name"},
		},
		{
			intent: router.IntentSendMessage,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`^send (?:a |an )?(?:sms|text|message) to (.+?)(?: saying (.+))?$`),
				regexp.MustCompile(`^text (\S+) (?:saying |that )?(.+)$`),
			},
			slotNames: []string{"contact_name", "message"},
		},
		{
			intent: router.IntentOpenApp,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`^(?:open|launch|start|run) (.+)$`),
			},
			slotNames: []string{"app_name"},
		},
		{
			intent: router.IntentCloseApp,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`^(?:close|quit|kill) (.+)$`),
			},
			slotNames: []string{"app_name"},
		},
		{
			intent: router.IntentPlayMedia,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`^play (.+)$`),
			},
			slotNames: []string{"media"},
		},
		{
			intent: router.IntentWebSearch,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`^(?:search for|search|google|look up) (.+?)(?: on (google|bing|duckduckgo|youtube))?$`),
			},
			slotNames: []string{"query", "engine"},
		},
		{
			intent: router.IntentSystemControl,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`^(?:turn )?(volume up|volume down|mute|unmute|brightness up|brightness down|wifi on|wifi off|bluetooth on|bluetooth off|screenshot|lock screen)$`),
				regexp.MustCompile(`^take a (screenshot)$`),
			},
			slotNames: []string{"command"},
		},
		{
			intent: router.IntentContent,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`^(?:write|compose|draft) (?:me )?(?:an? )?(email|essay|poem|letter|note|code) (?:about|on|regarding|to|for) (.+)$`),
			},
			slotNames: []string{"content_type", "topic"},
		},
	}
}
