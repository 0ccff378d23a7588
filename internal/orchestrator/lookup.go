package orchestrator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"snapwort/internal/compose"
	"snapwort/internal/conversation"
	"snapwort/internal/llm"
)

// Lookup issues the answer call and the meta call concurrently, each with its
// own fallback chain, and composes the result. Only the answer call can fail
// the lookup; the meta call degrades to locally derived metadata.
func (o *Orchestrator) Lookup(ctx context.Context, q Query) (StructuredAnswer, error) {
	family := o.resolve(q.Provider)

	var (
		answer Result
		meta   compose.Meta
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := o.complete(gctx, CallAnswer, family, conversation.Build(q.Language, nil, q.Text), o.settings.Answer)
		if err != nil {
			return err
		}
		answer = res
		return nil
	})
	g.Go(func() error {
		meta = o.meta(gctx, family, q)
		return nil
	})
	if err := g.Wait(); err != nil {
		return StructuredAnswer{}, err
	}

	return StructuredAnswer{
		Title:       meta.Title,
		Answer:      answer.Content,
		Suggestions: meta.Suggestions,
		ModelUsed:   answer.ModelUsed(),
	}, nil
}

func (o *Orchestrator) meta(ctx context.Context, family llm.Family, q Query) compose.Meta {
	msgs := conversation.BuildWith(compose.Instruction(q.Language), nil, q.Text)
	res, err := o.complete(ctx, CallMeta, family, msgs, o.settings.Meta)
	if err != nil {
		o.log.Warn("meta call failed; deriving title and suggestions", "query", q.Text, "err", err)
		return compose.Derive(q.Text, q.Language)
	}
	m := compose.Compose(res.Content, q.Text, q.Language)
	if m.Derived {
		o.log.Warn("meta output malformed; derived fields from query", "query", q.Text, "model_used", res.ModelUsed())
	}
	return m
}
