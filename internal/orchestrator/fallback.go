package orchestrator

import (
	"context"
	"fmt"
	"time"

	"snapwort/internal/llm"
)

// Call names the logical request being made, for logs and metrics.
type Call string

const (
	CallAnswer   Call = "answer"
	CallMeta     Call = "meta"
	CallFollowUp Call = "followup"
)

// Outcome of a single provider attempt.
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeFailed      Outcome = "failed"
	OutcomeUnavailable Outcome = "unavailable"
)

const (
	// maxVariants bounds attempts within one family: primary plus one secondary.
	maxVariants = 2
	// maxEscalations bounds hops to the universal fallback family.
	maxEscalations = 1
)

// Attempt is a diagnostic record of one step of the fallback policy.
type Attempt struct {
	Family    llm.Family
	Model     string
	Secondary bool
	Hop       int
	Outcome   Outcome
	Err       error
	Elapsed   time.Duration
}

// Result is the output of one call after applying the fallback policy.
type Result struct {
	Content   string
	Family    llm.Family
	Model     string
	Secondary bool
	Fallback  bool
	Attempts  []Attempt
}

// ModelUsed is the caller-facing name of the backend that produced Content.
func (r Result) ModelUsed() string {
	switch {
	case r.Fallback:
		return string(r.Family) + " (fallback)"
	case r.Secondary:
		return fmt.Sprintf("%s (%s)", r.Family, r.Model)
	default:
		return string(r.Family)
	}
}

// complete runs one call through the fallback state machine:
//
//	SELECT_FAMILY -> ATTEMPT_VARIANT -> ATTEMPT_SECONDARY_VARIANT
//	              -> ESCALATE_TO_UNIVERSAL_FALLBACK -> SUCCESS | EXHAUSTED
//
// Attempts are strictly sequential and the escalation hop counter never
// exceeds maxEscalations, whatever family is configured as the fallback.
func (o *Orchestrator) complete(ctx context.Context, call Call, requested llm.Family, messages []llm.Message, opts llm.Options) (Result, error) {
	var attempts []Attempt
	family := requested

	for hop := 0; hop <= maxEscalations; hop++ {
		log := o.log.With("call", call, "family", family, "hop", hop)

		variants := o.registry.Variants(family)
		if len(variants) > maxVariants {
			variants = variants[:maxVariants]
		}
		if len(variants) == 0 {
			log.Warn("provider family not configured")
			attempts = append(attempts, Attempt{Family: family, Hop: hop, Outcome: OutcomeUnavailable, Err: llm.ErrProviderUnavailable})
			o.rec.ObserveAttempt(string(call), string(family), "", string(OutcomeUnavailable), 0)
		}

		for i, client := range variants {
			if err := ctx.Err(); err != nil {
				o.rec.IncExhausted(string(call))
				return Result{Attempts: attempts}, fmt.Errorf("%w: %s call: %w", llm.ErrExhaustedFallback, call, err)
			}
			start := o.now()
			content, err := client.Generate(ctx, messages, opts)
			a := Attempt{
				Family:    family,
				Model:     client.Model(),
				Secondary: i > 0,
				Hop:       hop,
				Elapsed:   o.now().Sub(start),
			}
			if err == nil {
				a.Outcome = OutcomeSuccess
				attempts = append(attempts, a)
				o.rec.ObserveAttempt(string(call), string(family), a.Model, string(a.Outcome), a.Elapsed)
				log.Debug("provider call succeeded", "model", a.Model, "secondary", a.Secondary, "duration_ms", a.Elapsed.Milliseconds())
				return Result{
					Content:   content,
					Family:    family,
					Model:     a.Model,
					Secondary: a.Secondary,
					Fallback:  hop > 0,
					Attempts:  attempts,
				}, nil
			}
			a.Outcome = OutcomeFailed
			a.Err = err
			attempts = append(attempts, a)
			o.rec.ObserveAttempt(string(call), string(family), a.Model, string(a.Outcome), a.Elapsed)
			log.Warn("provider call failed", "model", a.Model, "secondary", a.Secondary, "err", err)
		}

		if family == o.settings.Fallback || hop == maxEscalations {
			break
		}
		log.Warn("escalating to fallback provider", "fallback", o.settings.Fallback)
		o.rec.IncEscalation(string(call))
		family = o.settings.Fallback
	}

	o.rec.IncExhausted(string(call))
	o.log.Error("all providers failed", "call", call, "requested", requested, "attempts", len(attempts))
	return Result{Attempts: attempts}, fmt.Errorf("%w: %s call after %d attempts", llm.ErrExhaustedFallback, call, len(attempts))
}
