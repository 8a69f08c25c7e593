package assistant

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verbalis/verbalis/plugin/ai/router"
	"github.com/verbalis/verbalis/plugin/ai/timeout"
	"github.com/verbalis/verbalis/internal/observability"
	"github.com/verbalis/verbalis/store"
)

// exitWords short-circuit the pipeline before any matching or routing.
var exitWords = map[string]bool{
	"stop": true, "exit": true, "quit": true, "goodbye": true, "bye": true,
}

// Processor orchestrates one conversation turn:
// pattern match, AI classification fallback, handler dispatch, and
// chat-history persistence. It never returns an error to the caller;
// every path ends in a usable ActionRequest with a non-empty reply.
type Processor struct {
	matcher   *PatternMatcher
	router    router.RouterService
	handlers  map[router.Intent]IntentHandler
	history   HistoryAppender
	sessionID string
}

// NewProcessor creates a processor with injected collaborators.
// history may be nil, in which case exchanges are not persisted.
func NewProcessor(routerSvc router.RouterService, contacts ContactLookup, history HistoryAppender, sessionID string) *Processor {
	deps := handlerDeps{router: routerSvc, contacts: contacts}
	return &Processor{
		matcher:   NewPatternMatcher(),
		router:    routerSvc,
		handlers:  newHandlerTable(deps),
		history:   history,
		sessionID: sessionID,
	}
}

// Process runs one utterance through the pipeline.
func (p *Processor) Process(ctx context.Context, raw string) *ActionRequest {
	start := time.Now()

	utterance := strings.ToLower(strings.TrimSpace(raw))
	if utterance == "" {
		return &ActionRequest{
			Intent:             router.IntentGeneral,
			Action:             ActionSpeakReply,
			Reply:              "I didn't catch that. Could you say it again?",
			NeedsClarification: true,
		}
	}

	if exitWords[utterance] {
		return &ActionRequest{
			Intent: router.IntentExit,
			Action: ActionExit,
			Reply:  "Goodbye!",
		}
	}

	intent, slots, matched := p.matcher.Match(utterance)
	backend := "pattern"
	if !matched {
		res := p.router.ClassifyIntent(ctx, utterance)
		intent = res.Intent
		backend = res.Backend
		slots = Slots{}
		slog.Debug("intent classified by router",
			"intent", intent,
			"backend", backend,
			"success", res.Success)
	} else {
		slog.Debug("intent matched by pattern", "intent", intent)
	}

	handler, ok := p.handlers[intent]
	if !ok {
		handler = p.handlers[router.IntentGeneral]
	}
	request := handler(ctx, utterance, slots)

	if request.Backend == "" {
		request.Backend = backend
	}
	elapsed := time.Since(start)
	if request.ElapsedMs == 0 {
		request.ElapsedMs = elapsed.Milliseconds()
	}

	p.appendExchange(utterance, request)

	metrics := observability.GlobalMetrics()
	metrics.RecordTurn()
	metrics.RecordRequest(request.Backend, elapsed, request.Reply == router.UnavailableMessage)

	slog.Info("turn processed",
		"intent", request.Intent,
		"action", request.Action,
		"backend", request.Backend,
		"latency_ms", elapsed.Milliseconds())
	return request
}

// appendExchange persists the turn. Persistence failures are logged and
// never fail the response.
func (p *Processor) appendExchange(utterance string, request *ActionRequest) {
	if p.history == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout.HistoryWriteTimeout)
	defer cancel()

	_, err := p.history.CreateChatExchange(ctx, &store.ChatExchange{
		UID:       uuid.NewString(),
		SessionID: p.sessionID,
		UserInput: utterance,
		Reply:     request.Reply,
		Intent:    string(request.Intent),
		Backend:   request.Backend,
		LatencyMs: request.ElapsedMs,
	})
	if err != nil {
		slog.Warn("failed to append chat exchange", "error", err)
	}
}
