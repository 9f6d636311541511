package worker

import (
	"context"

	"github.com/vytor/wortflash/internal/gateway"
	"github.com/vytor/wortflash/internal/logger"
)

// CompletionJob runs one upstream completion. Output holds the reply text
// once Run returns nil.
type CompletionJob struct {
	Completer gateway.Completer
	Messages  []gateway.Message
	Label     string
	Output    string
}

func (j *CompletionJob) Name() string {
	if j.Label == "" {
		return "completion"
	}
	return j.Label
}

func (j *CompletionJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug("requesting completion with %d messages", len(j.Messages))

	out, err := j.Completer.Complete(ctx, j.Messages)
	if err != nil {
		return err
	}
	j.Output = out
	return nil
}
