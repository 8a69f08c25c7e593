package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/verbalis/verbalis/plugin/ai/timeout"
)

// Executor consumes ActionRequests and performs the real-world effect
// through the injected collaborators. Every branch produces an
// ActionResult; effector failures are contained here because a failed
// phone call must not crash the assistant loop.
type Executor struct {
	effector Effector
	speech   Speech
}

// NewExecutor creates an executor with injected collaborators.
func NewExecutor(effector Effector, speech Speech) *Executor {
	return &Executor{effector: effector, speech: speech}
}

// Execute maps the request's action to exactly one effector call, or to
// speech output for conversational actions.
func (e *Executor) Execute(ctx context.Context, request *ActionRequest) *ActionResult {
	if request.NeedsClarification {
		e.say(ctx, request.Reply)
		return &ActionResult{Success: true, Message: request.Reply}
	}

	effectorCtx, cancel := context.WithTimeout(ctx, timeout.EffectorTimeout)
	defer cancel()

	var err error
	switch request.Action {
	case ActionMakeCall:
		err = e.effector.Call(effectorCtx, stringParam(request, "phone"))
	case ActionSendSMS:
		err = e.effector.SMS(effectorCtx, stringParam(request, "phone"), stringParam(request, "message"))
	case ActionSendWhatsApp:
		err = e.effector.WhatsApp(effectorCtx,
			stringParam(request, "phone"),
			stringParam(request, "message"),
			stringParam(request, "mode"))
	case ActionOpenApp:
		err = e.effector.OpenApp(effectorCtx, stringParam(request, "app_name"))
	case ActionCloseApp:
		err = e.effector.CloseApp(effectorCtx, stringParam(request, "app_name"))
	case ActionPlayMedia:
		err = e.effector.PlayMedia(effectorCtx, stringParam(request, "media"))
	case ActionWebSearch:
		err = e.effector.WebSearch(effectorCtx, stringParam(request, "query"), stringParam(request, "engine"))
	case ActionSystem:
		err = e.effector.System(effectorCtx, stringParam(request, "command"))
	case ActionSpeakReply, ActionExit:
		e.say(ctx, request.Reply)
		return &ActionResult{Success: true, Message: request.Reply}
	default:
		return &ActionResult{
			Success: false,
			Message: fmt.Sprintf("I don't know how to perform %q.", request.Action),
		}
	}

	if err != nil {
		slog.Warn("effector call failed",
			"action", request.Action,
			"intent", request.Intent,
			"error", err)
		message := fmt.Sprintf("Sorry, that didn't work: %v", err)
		e.say(ctx, message)
		return &ActionResult{Success: false, Message: message}
	}

	e.say(ctx, request.Reply)
	return &ActionResult{
		Success: true,
		Message: request.Reply,
		Data:    request.Parameters,
	}
}

// say speaks text best-effort; speech failures are logged, never fatal.
func (e *Executor) say(ctx context.Context, text string) {
	if e.speech == nil || text == "" {
		return
	}
	speechCtx, cancel := context.WithTimeout(ctx, timeout.SpeechTimeout)
	defer cancel()
	if err := e.speech.Say(speechCtx, text); err != nil {
		slog.Warn("speech output failed", "error", err)
	}
}

func stringParam(request *ActionRequest, key string) string {
	if request.Parameters == nil {
		return ""
	}
	if v, ok := request.Parameters[key].(string); ok {
		return v
	}
	return ""
}
