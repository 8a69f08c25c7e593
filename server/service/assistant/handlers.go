package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/verbalis/verbalis/plugin/ai/router"
	"github.com/verbalis/verbalis/store"
)

// IntentHandler converts an utterance plus extracted slots into an
// ActionRequest. Handlers never perform side effects; the only calls
// they make are back into the router for content generation and into
// the contact store for name resolution.
type IntentHandler func(ctx context.Context, utterance string, slots Slots) *ActionRequest

// handlerDeps are the collaborators available to intent handlers.
type handlerDeps struct {
	router   router.RouterService
	contacts ContactLookup
}

// newHandlerTable builds the closed intent→handler table. Intents
// missing from the table fall back to the general handler at dispatch.
func newHandlerTable(deps handlerDeps) map[router.Intent]IntentHandler {
	return map[router.Intent]IntentHandler{
		router.IntentOpenApp:       deps.handleOpenApp,
		router.IntentCloseApp:      deps.handleCloseApp,
		router.IntentPlayMedia:     deps.handlePlayMedia,
		router.IntentPhoneCall:     deps.handlePhoneCall,
		router.IntentSendMessage:   deps.handleSendMessage,
		router.IntentWhatsApp:      deps.handleWhatsApp,
		router.IntentSystemControl: deps.handleSystemControl,
		router.IntentWebSearch:     deps.handleWebSearch,
		router.IntentContent:       deps.handleContent,
		router.IntentGeneral:       deps.handleGeneral,
	}
}

func clarification(intent router.Intent, reply string) *ActionRequest {
	return &ActionRequest{
		Intent:             intent,
		Action:             ActionSpeakReply,
		Reply:              reply,
		NeedsClarification: true,
	}
}

func (d handlerDeps) handleOpenApp(_ context.Context, _ string, slots Slots) *ActionRequest {
	app := slots["app_name"]
	if app == "" {
		return clarification(router.IntentOpenApp, "Which app would you like me to open?")
	}
	return &ActionRequest{
		Intent:     router.IntentOpenApp,
		Action:     ActionOpenApp,
		Parameters: map[string]any{"app_name": app},
		Reply:      fmt.Sprintf("Opening %s", app),
	}
}

func (d handlerDeps) handleCloseApp(_ context.Context, _ string, slots Slots) *ActionRequest {
	app := slots["app_name"]
	if app == "" {
		return clarification(router.IntentCloseApp, "Which app should I close?")
	}
	return &ActionRequest{
		Intent:     router.IntentCloseApp,
		Action:     ActionCloseApp,
		Parameters: map[string]any{"app_name": app},
		Reply:      fmt.Sprintf("Closing %s", app),
	}
}

func (d handlerDeps) handlePlayMedia(_ context.Context, _ string, slots Slots) *ActionRequest {
	media := slots["media"]
	if media == "" {
		return clarification(router.IntentPlayMedia, "What would you like me to play?")
	}
	return &ActionRequest{
		Intent:     router.IntentPlayMedia,
		Action:     ActionPlayMedia,
		Parameters: map[string]any{"media": media},
		Reply:      fmt.Sprintf("Playing %s", media),
	}
}

func (d handlerDeps) handlePhoneCall(ctx context.Context, _ string, slots Slots) *ActionRequest {
	name := slots["contact_name"]
	if name == "" {
		return clarification(router.IntentPhoneCall, "Who would you like to call?")
	}

	contact, err := d.resolveContact(ctx, name)
	if err != nil {
		return clarification(router.IntentPhoneCall,
			fmt.Sprintf("I couldn't find %s in your contacts. Who should I call?", name))
	}

	return &ActionRequest{
		Intent: router.IntentPhoneCall,
		Action: ActionMakeCall,
		Parameters: map[string]any{
			"contact_name": contact.Name,
			"phone":        contact.Phone,
		},
		Reply: fmt.Sprintf("Calling %s", contact.Name),
	}
}

func (d handlerDeps) handleSendMessage(ctx context.Context, _ string, slots Slots) *ActionRequest {
	name := slots["contact_name"]
	if name == "" {
		return clarification(router.IntentSendMessage, "Who should I send the message to?")
	}
	message := slots["message"]
	if message == "" {
		return clarification(router.IntentSendMessage,
			fmt.Sprintf("What should the message to %s say?", name))
	}

	contact, err := d.resolveContact(ctx, name)
	if err != nil {
		return clarification(router.IntentSendMessage,
			fmt.Sprintf("I couldn't find %s in your contacts. Who should receive the message?", name))
	}

	return &ActionRequest{
		Intent: router.IntentSendMessage,
		Action: ActionSendSMS,
		Parameters: map[string]any{
			"contact_name": contact.Name,
			"phone":        contact.Phone,
			"message":      message,
		},
		Reply: fmt.Sprintf("Sending your message to %s", contact.Name),
	}
}

func (d handlerDeps) handleWhatsApp(ctx context.Context, _ string, slots Slots) *ActionRequest {
	name := slots["contact_name"]
	if name == "" {
		return clarification(router.IntentWhatsApp, "Who is the WhatsApp for?")
	}

	mode := slots["mode"]
	if mode == "" {
		mode = "message"
	}
	message := slots["message"]
	if mode == "message" && message == "" {
		return clarification(router.IntentWhatsApp,
			fmt.Sprintf("What should the WhatsApp message to %s say?", name))
	}

	contact, err := d.resolveContact(ctx, name)
	if err != nil {
		return clarification(router.IntentWhatsApp,
			fmt.Sprintf("I couldn't find %s in your contacts.", name))
	}

	reply := fmt.Sprintf("Sending a WhatsApp message to %s", contact.Name)
	if mode == "call" {
		reply = fmt.Sprintf("Starting a WhatsApp call with %s", contact.Name)
	}

	return &ActionRequest{
		Intent: router.IntentWhatsApp,
		Action: ActionSendWhatsApp,
		Parameters: map[string]any{
			"contact_name": contact.Name,
			"phone":        contact.Phone,
			"message":      message,
			"mode":         mode,
		},
		Reply: reply,
	}
}

func (d handlerDeps) handleSystemControl(_ context.Context, utterance string, slots Slots) *ActionRequest {
	command := slots["command"]
	if command == "" {
		// The AI path classified this as system control without slots;
		// fall back to the raw utterance as the command.
		command = strings.TrimSpace(utterance)
	}
	return &ActionRequest{
		Intent:     router.IntentSystemControl,
		Action:     ActionSystem,
		Parameters: map[string]any{"command": command},
		Reply:      fmt.Sprintf("Done: %s", command),
	}
}

func (d handlerDeps) handleWebSearch(_ context.Context, utterance string, slots Slots) *ActionRequest {
	query := slots["query"]
	if query == "" {
		query = strings.TrimSpace(utterance)
	}
	engine := slots["engine"]
	if engine == "" {
		engine = "google"
	}
	return &ActionRequest{
		Intent: router.IntentWebSearch,
		Action: ActionWebSearch,
		Parameters: map[string]any{
			"query":  query,
			"engine": engine,
		},
		Reply: fmt.Sprintf("Searching %s for %s", engine, query),
	}
}

func (d handlerDeps) handleContent(ctx context.Context, utterance string, slots Slots) *ActionRequest {
	contentType := slots["content_type"]
	if contentType == "" {
		contentType = "note"
	}
	topic := slots["topic"]
	if topic == "" {
		topic = strings.TrimSpace(utterance)
	}

	res := d.router.GenerateContent(ctx, contentType, topic, router.ContentOptions{})
	if !res.Success {
		return &ActionRequest{
			Intent:    router.IntentContent,
			Action:    ActionSpeakReply,
			Reply:     router.UnavailableMessage,
			Backend:   res.Backend,
			ElapsedMs: res.Elapsed.Milliseconds(),
		}
	}

	return &ActionRequest{
		Intent: router.IntentContent,
		Action: ActionSpeakReply,
		Parameters: map[string]any{
			"content_type": contentType,
			"topic":        topic,
		},
		Reply:     res.Text,
		Backend:   res.Backend,
		ElapsedMs: res.Elapsed.Milliseconds(),
	}
}

func (d handlerDeps) handleGeneral(ctx context.Context, utterance string, _ Slots) *ActionRequest {
	res := d.router.Generate(ctx, utterance, router.TaskGeneral)
	if !res.Success {
		return &ActionRequest{
			Intent:    router.IntentGeneral,
			Action:    ActionSpeakReply,
			Reply:     router.UnavailableMessage,
			Backend:   res.Backend,
			ElapsedMs: res.Elapsed.Milliseconds(),
		}
	}

	return &ActionRequest{
		Intent:    router.IntentGeneral,
		Action:    ActionSpeakReply,
		Reply:     res.Text,
		Backend:   res.Backend,
		ElapsedMs: res.Elapsed.Milliseconds(),
	}
}

func (d handlerDeps) resolveContact(ctx context.Context, name string) (*store.Contact, error) {
	if d.contacts == nil {
		return nil, store.ErrContactNotFound
	}
	contact, err := d.contacts.FindContactByName(ctx, name)
	if err != nil {
		if !errors.Is(err, store.ErrContactNotFound) {
			slog.Warn("contact lookup failed", "name", name, "error", err)
		}
		return nil, err
	}
	return contact, nil
}
