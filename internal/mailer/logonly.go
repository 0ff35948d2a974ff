package mailer

import (
	"context"

	"go.uber.org/zap"
)

// LogOnly is the development fallback when no SMTP host is configured:
// notifications are logged and reported as sent.
type LogOnly struct {
	Log *zap.Logger
}

func (l *LogOnly) Send(ctx context.Context, subject, htmlBody string) error {
	l.Log.Info("mail suppressed (no SMTP configured)",
		zap.String("subject", subject),
	)
	return nil
}
