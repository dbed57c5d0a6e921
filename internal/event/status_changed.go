// internal/event/status_changed.go
package event

import "time"

// QueueName is the durable queue carrying status-change events
// between the admissions API and the notification worker.
const QueueName = "admission_status_changes"

// StatusChangedEvent is published once per committed admission status change.
// The applicant's email and name are denormalized at publish time so the
// consumer never queries back into the admissions side.
type StatusChangedEvent struct {
    AdmissionID    string    `json:"admission_id"`
    ApplicantID    string    `json:"applicant_id"`
    ApplicantEmail string    `json:"applicant_email"`
    ApplicantName  string    `json:"applicant_name"`
    OldStatus      string    `json:"old_status"`
    NewStatus      string    `json:"new_status"`
    OccurredAt     time.Time `json:"occurred_at"`
}
