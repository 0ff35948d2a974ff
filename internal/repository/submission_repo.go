package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/evergreenwebsolutions/onboarding/internal/models"
)

type SubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// Create persists the submission and its file descriptors in one
// transaction. File positions are assigned by the caller; gorm inserts
// the association rows alongside the parent.
func (r *SubmissionRepo) Create(ctx context.Context, sub *models.Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// ListAll returns every submission with its files eagerly joined,
// newest first, file order preserved.
func (r *SubmissionRepo) ListAll(ctx context.Context) ([]models.Submission, error) {
	var subs []models.Submission
	err := r.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
