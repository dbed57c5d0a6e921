// internal/model/admission.go
package model

import "time"

// AdmissionStatus follows the workflow:
// created -> under_review -> confirmed/rejected -> closed
type AdmissionStatus string

const (
    StatusCreated     AdmissionStatus = "created"
    StatusUnderReview AdmissionStatus = "under_review"
    StatusConfirmed   AdmissionStatus = "confirmed"
    StatusRejected    AdmissionStatus = "rejected"
    StatusClosed      AdmissionStatus = "closed"
)

// ValidStatus reports whether s is a known admission status.
func ValidStatus(s AdmissionStatus) bool {
    switch s {
    case StatusCreated, StatusUnderReview, StatusConfirmed, StatusRejected, StatusClosed:
        return true
    }
    return false
}

// Terminal reports whether no further status updates are allowed.
func (s AdmissionStatus) Terminal() bool {
    return s == StatusClosed
}

type Admission struct {
    ID          string          `db:"id" json:"id"`
    ApplicantID string          `db:"applicant_id" json:"applicant_id"`
    Program     string          `db:"program" json:"program"`
    Status      AdmissionStatus `db:"status" json:"status"`
    CreatedAt   time.Time       `db:"created_at" json:"created_at"`
    UpdatedAt   *time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}
