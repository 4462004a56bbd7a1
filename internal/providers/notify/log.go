package notify

import (
	"context"

	"github.com/sandevgo/sejarahbot/pkg/log"
)

// LogNotifier writes notifications to the context logger instead of
// sending mail. Useful for local runs where the code is read from logs.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, to, subject, body string) error {
	log.FromCtx(ctx).Info().
		Str("component", "notifier").
		Str("to", to).
		Str("subject", subject).
		Msg(body)
	return nil
}
