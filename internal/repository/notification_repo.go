package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/evergreenwebsolutions/onboarding/internal/models"
)

type NotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// NextPending returns the oldest pending notification that still has
// retry budget, or (nil, nil) when the outbox is drained.
func (r *NotificationRepo) NextPending(ctx context.Context, maxAttempts int) (*models.Notification, error) {
	var n models.Notification
	err := r.db.WithContext(ctx).
		Where("state = ? AND attempts < ?", models.NotificationPending, maxAttempts).
		Order("created_at ASC").
		First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepo) Update(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}
