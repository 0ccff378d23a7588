// Package orchestrator answers lookups and follow-up questions by routing
// calls through the provider registry with a bounded fallback policy.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"snapwort/internal/conversation"
	"snapwort/internal/language"
	"snapwort/internal/llm"
)

// Query is a single lookup request.
type Query struct {
	Text     string
	Language language.Code
	Provider llm.Family // empty selects the configured default
}

// StructuredAnswer is the composed lookup response.
type StructuredAnswer struct {
	Title       string   `json:"title"`
	Answer      string   `json:"answer"`
	Suggestions []string `json:"suggestions"`
	ModelUsed   string   `json:"modelUsed"`
}

// FollowUpQuery asks a question in the context of earlier turns, oldest first.
type FollowUpQuery struct {
	Question string
	Language language.Code
	History  []conversation.Turn
	Provider llm.Family
}

// FollowUpAnswer is the response to a follow-up question.
type FollowUpAnswer struct {
	Answer    string `json:"answer"`
	ModelUsed string `json:"modelUsed"`
}

// Assistant is what the HTTP layer needs from an orchestrator.
type Assistant interface {
	Lookup(ctx context.Context, q Query) (StructuredAnswer, error)
	FollowUp(ctx context.Context, q FollowUpQuery) (FollowUpAnswer, error)
}

// Settings selects families and per-call generation options.
type Settings struct {
	Default  llm.Family
	Fallback llm.Family
	Answer   llm.Options
	Meta     llm.Options
	FollowUp llm.Options
}

// Recorder receives attempt and fallback events. metrics.Collector
// satisfies it.
type Recorder interface {
	ObserveAttempt(call, family, model, outcome string, elapsed time.Duration)
	IncEscalation(call string)
	IncExhausted(call string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAttempt(string, string, string, string, time.Duration) {}
func (nopRecorder) IncEscalation(string)                                      {}
func (nopRecorder) IncExhausted(string)                                       {}

// Orchestrator implements Assistant. It holds no per-request state.
type Orchestrator struct {
	registry *llm.Registry
	settings Settings
	log      *slog.Logger
	rec      Recorder
	now      func() time.Time
}

// New validates settings against the registry. The universal fallback family
// must be registered; a missing default family only produces a warning since
// its calls escalate straight to the fallback.
func New(registry *llm.Registry, settings Settings, log *slog.Logger, rec Recorder) (*Orchestrator, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry required")
	}
	if settings.Fallback == "" {
		return nil, fmt.Errorf("fallback family required")
	}
	if !registry.Has(settings.Fallback) {
		return nil, fmt.Errorf("%w: fallback family %s is not configured", llm.ErrProviderUnavailable, settings.Fallback)
	}
	if settings.Default == "" {
		settings.Default = settings.Fallback
	}
	if log == nil {
		log = slog.Default()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	if !registry.Has(settings.Default) {
		log.Warn("default provider not configured; requests will use the fallback", "default", settings.Default, "fallback", settings.Fallback)
	}
	settings.Meta.Structured = true
	return &Orchestrator{
		registry: registry,
		settings: settings,
		log:      log,
		rec:      rec,
		now:      time.Now,
	}, nil
}

func (o *Orchestrator) resolve(f llm.Family) llm.Family {
	if f == "" {
		return o.settings.Default
	}
	return f
}
