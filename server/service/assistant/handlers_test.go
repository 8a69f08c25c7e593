package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verbalis/verbalis/plugin/ai/router"
	"github.com/verbalis/verbalis/store"
)

func newTestDeps() (handlerDeps, *router.MockRouterService) {
	mock := router.NewMockRouterService()
	contacts := &fakeContacts{contacts: []*store.Contact{
		{ID: 1, Name: "Tom Hardy", Phone: "+15550001"},
		{ID: 2, Name: "Alice", Phone: "+15550002"},
	}}
	return handlerDeps{router: mock, contacts: contacts}, mock
}

func TestHandlePhoneCall(t *testing.T) {
	ctx := context.Background()
	deps, _ := newTestDeps()

	t.Run("resolves contact", func(t *testing.T) {
		req := deps.handlePhoneCall(ctx, "call tom", Slots{"contact_name": "tom"})
		require.False(t, req.NeedsClarification)
		assert.Equal(t, ActionMakeCall, req.Action)
		assert.Equal(t, "Tom Hardy", req.Parameters["contact_name"])
		assert.Equal(t, "+15550001", req.Parameters["phone"])
		assert.Equal(t, "Calling Tom Hardy", req.Reply)
	})

	t.Run("unknown contact asks back", func(t *testing.T) {
		req := deps.handlePhoneCall(ctx, "call zoe", Slots{"contact_name": "zoe"})
		assert.True(t, req.NeedsClarification)
		assert.Equal(t, ActionSpeakReply, req.Action)
		assert.Contains(t, req.Reply, "zoe")
	})

	t.Run("missing slot asks back", func(t *testing.T) {
		req := deps.handlePhoneCall(ctx, "call", Slots{})
		assert.True(t, req.NeedsClarification)
	})
}

func TestHandleSendMessage(t *testing.T) {
	ctx := context.Background()
	deps, _ := newTestDeps()

	t.Run("full slots", func(t *testing.T) {
		req := deps.handleSendMessage(ctx, "", Slots{"contact_name": "alice", "message": "hello"})
		require.False(t, req.NeedsClarification)
		assert.Equal(t, ActionSendSMS, req.Action)
		assert.Equal(t, "+15550002", req.Parameters["phone"])
		assert.Equal(t, "hello", req.Parameters["message"])
	})

	t.Run("missing body asks for it", func(t *testing.T) {
		req := deps.handleSendMessage(ctx, "", Slots{"contact_name": "alice"})
		assert.True(t, req.NeedsClarification)
		assert.Contains(t, req.Reply, "alice")
	})
}

func TestHandleWhatsApp(t *testing.T) {
	ctx := context.Background()
	deps, _ := newTestDeps()

	t.Run("message mode requires body", func(t *testing.T) {
		req := deps.handleWhatsApp(ctx, "", Slots{"contact_name": "tom", "mode": "message"})
		assert.True(t, req.NeedsClarification)
	})

	t.Run("call mode needs no body", func(t *testing.T) {
		req := deps.handleWhatsApp(ctx, "", Slots{"contact_name": "tom", "mode": "call"})
		require.False(t, req.NeedsClarification)
		assert.Equal(t, ActionSendWhatsApp, req.Action)
		assert.Equal(t, "call", req.Parameters["mode"])
		assert.Contains(t, req.Reply, "WhatsApp call")
	})
}

func TestHandleOpenCloseApp(t *testing.T) {
	ctx := context.Background()
	deps, _ := newTestDeps()

	req := deps.handleOpenApp(ctx, "", Slots{"app_name": "chrome"})
	assert.Equal(t, ActionOpenApp, req.Action)
	assert.Equal(t, "chrome", req.Parameters["app_name"])

	req = deps.handleCloseApp(ctx, "", Slots{})
	assert.True(t, req.NeedsClarification)
}

func TestHandleWebSearchDefaultsEngine(t *testing.T) {
	deps, _ := newTestDeps()

	req := deps.handleWebSearch(context.Background(), "", Slots{"query": "go generics"})
	assert.Equal(t, ActionWebSearch, req.Action)
	assert.Equal(t, "google", req.Parameters["engine"])
}

func TestHandleSystemControlFallsBackToUtterance(t *testing.T) {
	deps, _ := newTestDeps()

	req := deps.handleSystemControl(context.Background(), "turn the volume down a bit", Slots{})
	assert.Equal(t, ActionSystem, req.Action)
	assert.Equal(t, "turn the volume down a bit", req.Parameters["command"])
}

func TestHandleContent(t *testing.T) {
	ctx := context.Background()

	t.Run("success speaks generated text", func(t *testing.T) {
		deps, mock := newTestDeps()
		mock.GenerateText = "Dear team, ..."
		req := deps.handleContent(ctx, "", Slots{"content_type": "email", "topic": "standup"})
		assert.Equal(t, ActionSpeakReply, req.Action)
		assert.Equal(t, "Dear team, ...", req.Reply)
		assert.Equal(t, "mock", req.Backend)
	})

	t.Run("total failure yields the unavailable message", func(t *testing.T) {
		deps, mock := newTestDeps()
		mock.Fail = true
		req := deps.handleContent(ctx, "", Slots{"content_type": "email", "topic": "standup"})
		assert.False(t, req.NeedsClarification)
		assert.Equal(t, router.UnavailableMessage, req.Reply)
	})
}

func TestHandleGeneral(t *testing.T) {
	ctx := context.Background()

	t.Run("routes the raw utterance", func(t *testing.T) {
		deps, mock := newTestDeps()
		mock.GenerateText = "It is in Paris."
		req := deps.handleGeneral(ctx, "where is the eiffel tower", Slots{})
		assert.Equal(t, "It is in Paris.", req.Reply)
		require.Len(t, mock.GenerateCalls, 1)
		assert.Equal(t, "where is the eiffel tower", mock.GenerateCalls[0])
	})

	t.Run("total failure yields the unavailable message", func(t *testing.T) {
		deps, mock := newTestDeps()
		mock.Fail = true
		req := deps.handleGeneral(ctx, "anything", Slots{})
		assert.Equal(t, router.UnavailableMessage, req.Reply)
	})
}
