package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/evergreenwebsolutions/onboarding/internal/models"
	"github.com/evergreenwebsolutions/onboarding/internal/validate"
)

// SubmissionStore is the persistence the service needs. Satisfied by
// repository.SubmissionRepo; tests use in-memory fakes.
type SubmissionStore interface {
	Create(ctx context.Context, sub *models.Submission) error
	ListAll(ctx context.Context) ([]models.Submission, error)
}

// Notifier hands a stored submission to the notification outbox. It
// must not fail the caller: enqueue errors are its own to log.
type Notifier interface {
	Enqueue(ctx context.Context, sub *models.Submission)
}

type SubmissionService struct {
	store    SubmissionStore
	notifier Notifier
	log      *zap.Logger
}

func NewSubmissionService(store SubmissionStore, notifier Notifier, log *zap.Logger) *SubmissionService {
	return &SubmissionService{store: store, notifier: notifier, log: log}
}

// Submit validates the raw payload, persists it, and enqueues the
// operator notification. The three outcomes are disjoint: field errors
// (no persistence, no email), a store error (nothing enqueued), or the
// stored submission. Once the row is committed nothing downstream can
// turn the result into a failure.
func (s *SubmissionService) Submit(ctx context.Context, input any) (*models.Submission, validate.FieldErrors, error) {
	result := validate.Submission(input)
	if !result.Valid {
		return nil, result.Errors, nil
	}

	sub := result.Data
	if err := s.store.Create(ctx, sub); err != nil {
		return nil, nil, err
	}

	s.notifier.Enqueue(ctx, sub)

	s.log.Info("submission stored",
		zap.Uint("id", sub.ID),
		zap.String("clientName", sub.ClientName),
		zap.Int("files", len(sub.Files)),
	)
	return sub, nil, nil
}

func (s *SubmissionService) List(ctx context.Context) ([]models.Submission, error) {
	return s.store.ListAll(ctx)
}
