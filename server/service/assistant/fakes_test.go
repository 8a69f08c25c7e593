package assistant

import (
	"context"
	"strings"
	"sync"

	"github.com/verbalis/verbalis/store"
)

// fakeContacts resolves names against a fixed list with the same
// case-insensitive substring semantics as the real store.
type fakeContacts struct {
	contacts []*store.Contact
}

func (f *fakeContacts) FindContactByName(_ context.Context, name string) (*store.Contact, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, c := range f.contacts {
		stored := strings.ToLower(c.Name)
		if strings.Contains(stored, needle) || strings.Contains(needle, stored) {
			return c, nil
		}
	}
	return nil, store.ErrContactNotFound
}

// fakeHistory records appended exchanges in memory.
type fakeHistory struct {
	mu        sync.Mutex
	exchanges []*store.ChatExchange
	err       error
}

func (f *fakeHistory) CreateChatExchange(_ context.Context, create *store.ChatExchange) (*store.ChatExchange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.exchanges = append(f.exchanges, create)
	return create, nil
}

func (f *fakeHistory) all() []*store.ChatExchange {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*store.ChatExchange(nil), f.exchanges...)
}

// effectorCall is one recorded invocation on the fake effector.
type effectorCall struct {
	method string
	args   []string
}

// fakeEffector records every call and can be scripted to fail.
type fakeEffector struct {
	calls []effectorCall
	err   error
}

func (f *fakeEffector) record(method string, args ...string) error {
	f.calls = append(f.calls, effectorCall{method: method, args: args})
	return f.err
}

func (f *fakeEffector) Call(_ context.Context, phone string) error {
	return f.record("Call", phone)
}

func (f *fakeEffector) SMS(_ context.Context, phone, message string) error {
	return f.record("SMS", phone, message)
}

func (f *fakeEffector) WhatsApp(_ context.Context, phone, message, mode string) error {
	return f.record("WhatsApp", phone, message, mode)
}

func (f *fakeEffector) OpenApp(_ context.Context, name string) error {
	return f.record("OpenApp", name)
}

func (f *fakeEffector) CloseApp(_ context.Context, name string) error {
	return f.record("CloseApp", name)
}

func (f *fakeEffector) PlayMedia(_ context.Context, query string) error {
	return f.record("PlayMedia", query)
}

func (f *fakeEffector) WebSearch(_ context.Context, query, engine string) error {
	return f.record("WebSearch", query, engine)
}

func (f *fakeEffector) System(_ context.Context, command string) error {
	return f.record("System", command)
}

// fakeSpeech records spoken text.
type fakeSpeech struct {
	spoken []string
	err    error
}

func (f *fakeSpeech) Say(_ context.Context, text string) error {
	f.spoken = append(f.spoken, text)
	return f.err
}
