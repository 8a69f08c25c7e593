package router

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/verbalis/verbalis/plugin/ai/timeout"
	"github.com/verbalis/verbalis/store/cache"
)

// ErrAllBackendsUnavailable is returned inside GenerateResult when every
// backend in a category failed or timed out.
var ErrAllBackendsUnavailable = errors.New("all backends unavailable")

// UnavailableMessage is the fixed user-facing reply for total backend failure.
const UnavailableMessage = "Sorry, I can't reach any of my language models right now. Please try again in a moment."

// Service implements RouterService over a fixed routing policy.
type Service struct {
	policy *Policy

	// classifyCache memoizes successful intent classifications.
	classifyCache *cache.Cache

	// Per-attempt deadlines. Defaults come from the timeout package.
	attemptTimeout  time.Duration
	classifyTimeout time.Duration
}

// NewService creates a new router service.
func NewService(policy *Policy) *Service {
	return &Service{
		policy: policy,
		classifyCache: cache.New(cache.Config{
			DefaultTTL:      10 * time.Minute,
			CleanupInterval: 5 * time.Minute,
			MaxItems:        256,
		}),
		attemptTimeout:  timeout.BackendTimeout,
		classifyTimeout: timeout.ClassifyTimeout,
	}
}

// Close releases the service's background resources.
func (s *Service) Close() {
	s.classifyCache.Close()
}

// attemptResult carries one backend attempt's outcome.
type attemptResult struct {
	text string
	err  error
}

// Generate iterates the policy's ordered backend list for the category.
// Each attempt runs under its own deadline; on failure or timeout the next
// backend is tried. A timed-out attempt is abandoned: its goroutine delivers
// into a buffered channel nobody reads, so a late result can never be merged
// after the router has moved on.
func (s *Service) Generate(ctx context.Context, prompt string, category TaskCategory) GenerateResult {
	start := time.Now()
	systemPrompt := systemPromptFor(category)

	perAttempt := s.attemptTimeout
	if category == TaskClassification {
		perAttempt = s.classifyTimeout
	}

	for _, slot := range s.policy.slotsFor(category) {
		backend := slot.backend

		attemptCtx, cancel := context.WithTimeout(ctx, perAttempt)
		if err := slot.limiter.Wait(attemptCtx); err != nil {
			cancel()
			slog.Warn("backend rate limit wait aborted",
				"backend", backend.Name(),
				"category", category,
				"error", err)
			continue
		}

		resultCh := make(chan attemptResult, 1)
		go func() {
			text, err := backend.Complete(attemptCtx, systemPrompt, prompt)
			resultCh <- attemptResult{text: text, err: err}
		}()

		var res attemptResult
		select {
		case res = <-resultCh:
		case <-attemptCtx.Done():
			res = attemptResult{err: attemptCtx.Err()}
		}
		cancel()

		if res.err != nil {
			slog.Warn("backend attempt failed",
				"backend", backend.Name(),
				"category", category,
				"error", res.err)
			continue
		}

		elapsed := time.Since(start)
		slog.Debug("generation routed",
			"backend", backend.Name(),
			"category", category,
			"latency_ms", elapsed.Milliseconds())
		return GenerateResult{
			Text:    res.text,
			Backend: backend.Name(),
			Elapsed: elapsed,
			Success: true,
		}
	}

	slog.Warn("all backends unavailable",
		"category", category,
		"latency_ms", time.Since(start).Milliseconds())
	return GenerateResult{
		Elapsed: time.Since(start),
		Success: false,
		Err:     ErrAllBackendsUnavailable,
	}
}

// ProbeAll health-checks every configured backend concurrently.
// Probes are best-effort: failures are logged and never prevent startup.
func (s *Service) ProbeAll(ctx context.Context) {
	seen := map[string]bool{}
	var g errgroup.Group

	for _, slot := range s.policy.slotsFor(TaskGeneral) {
		backend := slot.backend
		if seen[backend.Name()] {
			continue
		}
		seen[backend.Name()] = true

		g.Go(func() error {
			probeCtx, cancel := context.WithTimeout(ctx, timeout.ProbeTimeout)
			defer cancel()

			if err := backend.Probe(probeCtx); err != nil {
				slog.Warn("backend probe failed", "backend", backend.Name(), "error", err)
				return nil
			}
			slog.Info("backend healthy", "backend", backend.Name())
			return nil
		})
	}

	_ = g.Wait()
}

// Ensure Service implements RouterService.
var _ RouterService = (*Service)(nil)
