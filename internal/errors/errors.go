// internal/errors/errors.go
package appErrors

import "fmt"

// ErrAdmissionNotFound is a sentinel error
type ErrAdmissionNotFound struct {
    AdmissionID string
}

func (e *ErrAdmissionNotFound) Error() string {
    return fmt.Sprintf("admission with ID %s not found", e.AdmissionID)
}

// Helper constructor
func NewAdmissionNotFound(id string) error {
    return &ErrAdmissionNotFound{AdmissionID: id}
}

type ErrApplicantNotFound struct {
    ApplicantID string
}

func (e *ErrApplicantNotFound) Error() string {
    return fmt.Sprintf("applicant with ID %s not found", e.ApplicantID)
}

func NewApplicantNotFound(id string) error {
    return &ErrApplicantNotFound{ApplicantID: id}
}

// ErrTerminalStatus signals a status update against a closed admission.
type ErrTerminalStatus struct {
    AdmissionID string
    Status      string
}

func (e *ErrTerminalStatus) Error() string {
    return fmt.Sprintf("admission %s is in terminal status %s", e.AdmissionID, e.Status)
}

func NewTerminalStatus(id, status string) error {
    return &ErrTerminalStatus{AdmissionID: id, Status: status}
}
