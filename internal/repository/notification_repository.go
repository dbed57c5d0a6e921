package repository

import (
    "database/sql"
    "time"

    "github.com/campusops/admissions-backend/internal/model"
)

type NotificationRepositoryInterface interface {
    Create(n *model.Notification) error
    GetByID(id string) (*model.Notification, error)
    ListPending(limit, maxRetries int) ([]*model.Notification, error)
    MarkSent(id string) error
    UpdateAttempt(id, status string, retryCount int, lastError string) error
    ListByApplicant(applicantID string) ([]*model.Notification, error)
    List(offset, limit int) ([]*model.Notification, int, error)
}

type NotificationRepository struct {
    DB *sql.DB
}

func (r *NotificationRepository) Create(n *model.Notification) error {
    n.CreatedAt = time.Now().UTC()
    if n.Status == "" {
        n.Status = model.NotificationPending
    }
    query := `
        INSERT INTO notifications (id, recipient, subject, body, applicant_id, status, retry_count, last_error, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
    _, err := r.DB.Exec(
        query,
        n.ID,
        n.Recipient,
        n.Subject,
        n.Body,
        n.ApplicantID,
        n.Status,
        n.RetryCount,
        n.LastError,
        n.CreatedAt,
    )
    return err
}

func (r *NotificationRepository) GetByID(id string) (*model.Notification, error) {
    query := `
        SELECT id, recipient, subject, body, applicant_id, status, retry_count, last_error, created_at, sent_at
        FROM notifications
        WHERE id=$1
    `
    var n model.Notification
    err := r.DB.QueryRow(query, id).Scan(
        &n.ID, &n.Recipient, &n.Subject, &n.Body, &n.ApplicantID,
        &n.Status, &n.RetryCount, &n.LastError, &n.CreatedAt, &n.SentAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &n, nil
}

// ListPending returns the oldest retryable notifications, oldest first.
func (r *NotificationRepository) ListPending(limit, maxRetries int) ([]*model.Notification, error) {
    query := `
        SELECT id, recipient, subject, body, applicant_id, status, retry_count, last_error, created_at, sent_at
        FROM notifications
        WHERE status='pending' AND retry_count < $1
        ORDER BY created_at ASC
        LIMIT $2
    `
    rows, err := r.DB.Query(query, maxRetries, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    notifications := []*model.Notification{}
    for rows.Next() {
        n := &model.Notification{}
        if err := rows.Scan(
            &n.ID, &n.Recipient, &n.Subject, &n.Body, &n.ApplicantID,
            &n.Status, &n.RetryCount, &n.LastError, &n.CreatedAt, &n.SentAt,
        ); err != nil {
            return nil, err
        }
        notifications = append(notifications, n)
    }
    return notifications, rows.Err()
}

// MarkSent moves a pending notification to sent. The status guard keeps
// sent and failed rows immutable.
func (r *NotificationRepository) MarkSent(id string) error {
    query := `UPDATE notifications SET status='sent', sent_at=NOW() WHERE id=$1 AND status='pending'`
    _, err := r.DB.Exec(query, id)
    return err
}

// UpdateAttempt records a failed delivery attempt: the new retry count, the
// error, and either 'pending' (still retryable) or 'failed' (cap reached).
func (r *NotificationRepository) UpdateAttempt(id, status string, retryCount int, lastError string) error {
    query := `UPDATE notifications SET status=$1, retry_count=$2, last_error=$3 WHERE id=$4 AND status='pending'`
    _, err := r.DB.Exec(query, status, retryCount, lastError, id)
    return err
}

func (r *NotificationRepository) ListByApplicant(applicantID string) ([]*model.Notification, error) {
    query := `
        SELECT id, recipient, subject, body, applicant_id, status, retry_count, last_error, created_at, sent_at
        FROM notifications
        WHERE applicant_id=$1
        ORDER BY created_at DESC
    `
    rows, err := r.DB.Query(query, applicantID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    notifications := []*model.Notification{}
    for rows.Next() {
        n := &model.Notification{}
        if err := rows.Scan(
            &n.ID, &n.Recipient, &n.Subject, &n.Body, &n.ApplicantID,
            &n.Status, &n.RetryCount, &n.LastError, &n.CreatedAt, &n.SentAt,
        ); err != nil {
            return nil, err
        }
        notifications = append(notifications, n)
    }
    return notifications, rows.Err()
}

func (r *NotificationRepository) List(offset, limit int) ([]*model.Notification, int, error) {
    query := `
        SELECT id, recipient, subject, body, applicant_id, status, retry_count, last_error, created_at, sent_at
        FROM notifications
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `
    rows, err := r.DB.Query(query, limit, offset)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    notifications := []*model.Notification{}
    for rows.Next() {
        n := &model.Notification{}
        if err := rows.Scan(
            &n.ID, &n.Recipient, &n.Subject, &n.Body, &n.ApplicantID,
            &n.Status, &n.RetryCount, &n.LastError, &n.CreatedAt, &n.SentAt,
        ); err != nil {
            return nil, 0, err
        }
        notifications = append(notifications, n)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }

    var total int
    if err := r.DB.QueryRow(`SELECT COUNT(*) FROM notifications`).Scan(&total); err != nil {
        return nil, 0, err
    }

    return notifications, total, nil
}

var _ NotificationRepositoryInterface = (*NotificationRepository)(nil)
