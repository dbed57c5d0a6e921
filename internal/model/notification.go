// internal/model/notification.go
package model

import "time"

// Notification delivery states. Pending is the only retryable state;
// sent and failed are terminal and are never mutated again.
const (
    NotificationPending = "pending"
    NotificationSent    = "sent"
    NotificationFailed  = "failed"
)

// MaxRetries caps delivery attempts per notification (1 immediate + dispatcher retries).
const MaxRetries = 3

type Notification struct {
    ID          string     `db:"id" json:"id"`
    Recipient   string     `db:"recipient" json:"recipient"`
    Subject     string     `db:"subject" json:"subject"`
    Body        string     `db:"body" json:"body"`
    ApplicantID *string    `db:"applicant_id" json:"applicant_id,omitempty"`
    Status      string     `db:"status" json:"status"` // pending, sent, failed
    RetryCount  int        `db:"retry_count" json:"retry_count"`
    LastError   string     `db:"last_error,omitempty" json:"last_error,omitempty"`
    CreatedAt   time.Time  `db:"created_at" json:"created_at"`
    SentAt      *time.Time `db:"sent_at" json:"sent_at,omitempty"`
}
