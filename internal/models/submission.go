package models

import "time"

// Submission is one completed onboarding form. Created once via the
// submit endpoint, read many times via the listing endpoint, never
// updated or deleted.
type Submission struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ClientName string     `gorm:"not null" json:"clientName"`
	Email      string     `gorm:"not null" json:"email"`
	Details    string     `gorm:"not null" json:"details"`
	Files      []FileMeta `gorm:"constraint:OnDelete:CASCADE" json:"files"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// FileMeta is the descriptor of one uploaded file, embedded in a
// Submission. Name, type and size are browser-reported and untrusted;
// only the URL is produced server-side by the upload relay.
type FileMeta struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	SubmissionID uint   `gorm:"index;not null" json:"-"`
	Position     int    `gorm:"not null" json:"-"`
	URL          string `gorm:"not null" json:"url"`
	Name         string `gorm:"not null" json:"name"`
	Type         string `json:"type"`
	Size         int64  `json:"size"`
}
