// Package notify decouples the operator email from the submit request.
// Submissions enqueue an outbox row; a background dispatcher drains
// pending rows with a bounded retry budget. Persistence success is
// therefore never reported as failure because of a mail outage, and a
// restart picks up whatever was still pending.
package notify

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evergreenwebsolutions/onboarding/internal/mailer"
	"github.com/evergreenwebsolutions/onboarding/internal/models"
)

const (
	subject = "New Client Onboarding Submission"
)

// Store is the outbox persistence the dispatcher needs.
type Store interface {
	Create(ctx context.Context, n *models.Notification) error
	NextPending(ctx context.Context, maxAttempts int) (*models.Notification, error)
	Update(ctx context.Context, n *models.Notification) error
}

type Config struct {
	Store        Store
	Mailer       mailer.Mailer
	Log          *zap.Logger
	PollInterval time.Duration
	MaxAttempts  int
}

type Dispatcher struct {
	store       Store
	mailer      mailer.Mailer
	log         *zap.Logger
	interval    time.Duration
	maxAttempts int
	done        chan struct{}
}

func NewDispatcher(cfg Config) *Dispatcher {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}
	return &Dispatcher{
		store:       cfg.Store,
		mailer:      cfg.Mailer,
		log:         cfg.Log,
		interval:    cfg.PollInterval,
		maxAttempts: cfg.MaxAttempts,
		done:        make(chan struct{}),
	}
}

// Enqueue records the outbox row for a freshly stored submission. A
// failure here is logged and swallowed: the submission is already
// durable and the caller's response must not change.
func (d *Dispatcher) Enqueue(ctx context.Context, sub *models.Submission) {
	n := &models.Notification{
		ID:           uuid.New().String(),
		SubmissionID: sub.ID,
		ClientName:   sub.ClientName,
		State:        models.NotificationPending,
	}
	if err := d.store.Create(ctx, n); err != nil {
		d.log.Error("enqueue notification failed",
			zap.Uint("submissionId", sub.ID),
			zap.Error(err),
		)
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	go d.run(ctx)
	d.log.Info("notification dispatcher started")
}

func (d *Dispatcher) Stop() {
	close(d.done)
	d.log.Info("notification dispatcher stopped")
}

func (d *Dispatcher) run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			for d.dispatchNext(ctx) {
			}
		}
	}
}

// dispatchNext sends one pending notification and reports whether it
// found one, so the caller can drain the backlog within a tick.
func (d *Dispatcher) dispatchNext(ctx context.Context) bool {
	n, err := d.store.NextPending(ctx, d.maxAttempts)
	if err != nil {
		d.log.Error("fetch pending notification failed", zap.Error(err))
		return false
	}
	if n == nil {
		return false
	}

	body := fmt.Sprintf("<p>New submission from %s</p>", html.EscapeString(n.ClientName))
	n.Attempts++

	if err := d.mailer.Send(ctx, subject, body); err != nil {
		n.LastError = err.Error()
		if n.Attempts >= d.maxAttempts {
			n.State = models.NotificationFailed
			d.log.Error("notification failed permanently",
				zap.String("id", n.ID),
				zap.Uint("submissionId", n.SubmissionID),
				zap.Int("attempts", n.Attempts),
				zap.Error(err),
			)
		} else {
			d.log.Warn("notification send failed, will retry",
				zap.String("id", n.ID),
				zap.Int("attempts", n.Attempts),
				zap.Error(err),
			)
		}
	} else {
		n.State = models.NotificationSent
		n.LastError = ""
		d.log.Info("notification sent",
			zap.String("id", n.ID),
			zap.Uint("submissionId", n.SubmissionID),
		)
	}

	if err := d.store.Update(ctx, n); err != nil {
		d.log.Error("update notification failed", zap.String("id", n.ID), zap.Error(err))
	}
	return true
}
