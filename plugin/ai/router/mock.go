package router

import (
	"context"
	"strings"
)

// MockRouterService is a mock implementation of RouterService for testing.
type MockRouterService struct {
	// IntentOverrides allows tests to pin classification results per utterance.
	IntentOverrides map[string]Intent
	// GenerateText is returned by Generate and GenerateContent when set.
	GenerateText string
	// Fail makes every call report total backend failure.
	Fail bool

	// GenerateCalls records the prompts passed to Generate.
	GenerateCalls []string
	// ClassifyCalls records the utterances passed to ClassifyIntent.
	ClassifyCalls []string
}

// NewMockRouterService creates a new MockRouterService.
func NewMockRouterService() *MockRouterService {
	return &MockRouterService{
		IntentOverrides: make(map[string]Intent),
		GenerateText:    "mock response",
	}
}

func (m *MockRouterService) Generate(_ context.Context, prompt string, _ TaskCategory) GenerateResult {
	m.GenerateCalls = append(m.GenerateCalls, prompt)
	if m.Fail {
		return GenerateResult{Success: false, Err: ErrAllBackendsUnavailable}
	}
	return GenerateResult{Text: m.GenerateText, Backend: "mock", Success: true}
}

func (m *MockRouterService) ClassifyIntent(_ context.Context, utterance string) ClassificationResult {
	m.ClassifyCalls = append(m.ClassifyCalls, utterance)
	if m.Fail {
		return ClassificationResult{Intent: IntentGeneral, Success: false}
	}
	if intent, ok := m.IntentOverrides[utterance]; ok {
		return ClassificationResult{Intent: intent, Confidence: aiConfidence, Backend: "mock", Success: true}
	}

	// Simple keyword rules matching the real substring precedence.
	lower := strings.ToLower(utterance)
	for _, e := range intentKeywords {
		if strings.Contains(lower, e.keyword) {
			return ClassificationResult{Intent: e.intent, Confidence: aiConfidence, Backend: "mock", Success: true}
		}
	}
	return ClassificationResult{Intent: IntentGeneral, Confidence: aiConfidence, Backend: "mock", Success: true}
}

func (m *MockRouterService) GenerateContent(ctx context.Context, contentType, topic string, _ ContentOptions) GenerateResult {
	return m.Generate(ctx, contentType+": "+topic, TaskContent)
}

// Ensure MockRouterService implements RouterService.
var _ RouterService = (*MockRouterService)(nil)
