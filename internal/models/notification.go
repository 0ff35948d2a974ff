package models

import "time"

const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// Notification is an outbox row for the email sent after a submission
// is stored. Email delivery is decoupled from the submit request: the
// row is written in the same breath as the submission and a background
// dispatcher drains pending rows, so a mail outage can never turn a
// stored submission into a reported failure.
type Notification struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	SubmissionID uint      `gorm:"index;not null" json:"submissionId"`
	ClientName   string    `gorm:"not null" json:"clientName"`
	State        string    `gorm:"index;not null;default:pending" json:"state"`
	Attempts     int       `gorm:"not null;default:0" json:"attempts"`
	LastError    string    `json:"lastError,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
