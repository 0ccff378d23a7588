package orchestrator

import (
	"context"

	"snapwort/internal/conversation"
)

// FollowUp answers a question in the context of all prior turns with a single
// answer call. No metadata is produced.
func (o *Orchestrator) FollowUp(ctx context.Context, q FollowUpQuery) (FollowUpAnswer, error) {
	msgs := conversation.Build(q.Language, q.History, q.Question)
	res, err := o.complete(ctx, CallFollowUp, o.resolve(q.Provider), msgs, o.settings.FollowUp)
	if err != nil {
		return FollowUpAnswer{}, err
	}
	return FollowUpAnswer{Answer: res.Content, ModelUsed: res.ModelUsed()}, nil
}
