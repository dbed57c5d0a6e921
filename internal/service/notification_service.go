// internal/service/notification_service.go
package service

import (
    "log"
    "time"

    "github.com/google/uuid"

    "github.com/campusops/admissions-backend/internal/event"
    "github.com/campusops/admissions-backend/internal/mailer"
    "github.com/campusops/admissions-backend/internal/model"
    "github.com/campusops/admissions-backend/internal/repository"
)

type NotificationService struct {
    NotificationRepo repository.NotificationRepositoryInterface
    Mailer           mailer.Mailer
}

// HandleStatusChanged processes one delivered status-change event: render,
// persist a pending row, attempt immediate delivery, record the outcome.
// A returned error means record-keeping failed and the broker should
// redeliver. A failed send is not an error here; it leaves a pending row
// for the dispatcher.
//
// Redelivered events insert a second row. There is no idempotency key; a
// duplicate email is the accepted cost of at-least-once delivery.
func (s *NotificationService) HandleStatusChanged(evt event.StatusChangedEvent) error {
    subject, body := mailer.RenderStatusChanged(evt)

    applicantID := evt.ApplicantID
    n := &model.Notification{
        ID:          uuid.NewString(),
        Recipient:   evt.ApplicantEmail,
        Subject:     subject,
        Body:        body,
        ApplicantID: &applicantID,
        Status:      model.NotificationPending,
        RetryCount:  0,
    }
    if err := s.NotificationRepo.Create(n); err != nil {
        return err
    }

    return s.deliver(n)
}

// Send creates and immediately attempts a directly-submitted notification.
// applicantID may be nil for notifications with no admission correlation.
func (s *NotificationService) Send(email, subject, body string, applicantID *string) (*model.Notification, error) {
    n := &model.Notification{
        ID:          uuid.NewString(),
        Recipient:   email,
        Subject:     subject,
        Body:        body,
        ApplicantID: applicantID,
        Status:      model.NotificationPending,
        RetryCount:  0,
    }
    if err := s.NotificationRepo.Create(n); err != nil {
        return nil, err
    }

    if err := s.deliver(n); err != nil {
        return nil, err
    }
    return n, nil
}

// deliver makes one send attempt against an already-persisted pending row
// and records the outcome. Only a persistence failure is returned.
func (s *NotificationService) deliver(n *model.Notification) error {
    if err := s.Mailer.Send(n.Recipient, n.Subject, n.Body); err != nil {
        log.Println("⚠️ failed to send notification", n.ID, "to", n.Recipient, ":", err)
        n.RetryCount++
        n.LastError = err.Error()
        n.Status = model.NotificationPending
        if n.RetryCount >= model.MaxRetries {
            n.Status = model.NotificationFailed
        }
        return s.NotificationRepo.UpdateAttempt(n.ID, n.Status, n.RetryCount, n.LastError)
    }

    now := time.Now().UTC()
    if err := s.NotificationRepo.MarkSent(n.ID); err != nil {
        return err
    }
    n.Status = model.NotificationSent
    n.SentAt = &now
    return nil
}

func (s *NotificationService) ListByApplicant(applicantID string) ([]*model.Notification, error) {
    return s.NotificationRepo.ListByApplicant(applicantID)
}

// List fetches notifications with pagination, newest first.
func (s *NotificationService) List(page, pageSize int) ([]*model.Notification, map[string]int, error) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }
    if pageSize > 100 {
        pageSize = 100
    }
    offset := (page - 1) * pageSize

    notifications, total, err := s.NotificationRepo.List(offset, pageSize)
    if err != nil {
        return nil, nil, err
    }

    totalPages := (total + pageSize - 1) / pageSize
    pagination := map[string]int{
        "page":        page,
        "page_size":   pageSize,
        "total_count": total,
        "total_pages": totalPages,
    }
    return notifications, pagination, nil
}
