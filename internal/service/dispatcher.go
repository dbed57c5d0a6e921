// internal/service/dispatcher.go
package service

import (
    "context"
    "log"
    "time"

    "github.com/campusops/admissions-backend/internal/mailer"
    "github.com/campusops/admissions-backend/internal/model"
    "github.com/campusops/admissions-backend/internal/repository"
)

const (
    defaultPollInterval = 30 * time.Second
    defaultBatchSize    = 10
)

// Dispatcher retries pending notifications that failed their immediate send.
// One loop per worker instance; batch size and interval throttle the drain
// rate so a backlog never bursts the mail gateway.
type Dispatcher struct {
    NotificationRepo repository.NotificationRepositoryInterface
    Mailer           mailer.Mailer
    Interval         time.Duration
    BatchSize        int
}

func NewDispatcher(repo repository.NotificationRepositoryInterface, m mailer.Mailer) *Dispatcher {
    return &Dispatcher{
        NotificationRepo: repo,
        Mailer:           m,
        Interval:         defaultPollInterval,
        BatchSize:        defaultBatchSize,
    }
}

// Run polls until ctx is cancelled. Shutdown is observed between cycles; an
// in-flight batch finishes its current rows first.
func (d *Dispatcher) Run(ctx context.Context) {
    log.Println("🔁 Retry dispatcher running, polling every", d.Interval)

    ticker := time.NewTicker(d.Interval)
    defer ticker.Stop()

    for {
        select {
        case <-ctx.Done():
            log.Println("Retry dispatcher stopped")
            return
        case <-ticker.C:
        }

        if err := d.ProcessBatch(); err != nil {
            log.Println("⚠️ dispatcher batch failed:", err)
        }
    }
}

// ProcessBatch retries one batch of pending notifications, oldest first.
// A row whose outcome cannot be persisted is logged and skipped; it never
// blocks the rest of the batch.
func (d *Dispatcher) ProcessBatch() error {
    pending, err := d.NotificationRepo.ListPending(d.BatchSize, model.MaxRetries)
    if err != nil {
        return err
    }

    for _, n := range pending {
        if err := d.Mailer.Send(n.Recipient, n.Subject, n.Body); err != nil {
            n.RetryCount++
            status := model.NotificationPending
            if n.RetryCount >= model.MaxRetries {
                // Cap reached: mark failed now, not on the next cycle
                status = model.NotificationFailed
            }
            log.Println("⚠️ retry failed for notification", n.ID, "attempt", n.RetryCount, ":", err)
            if perr := d.NotificationRepo.UpdateAttempt(n.ID, status, n.RetryCount, err.Error()); perr != nil {
                log.Println("⚠️ failed to record attempt for notification", n.ID, ":", perr)
            }
            continue
        }

        if perr := d.NotificationRepo.MarkSent(n.ID); perr != nil {
            log.Println("⚠️ failed to mark notification", n.ID, "sent:", perr)
            continue
        }
        log.Println("✅ Notification", n.ID, "sent on retry")
    }

    if len(pending) > 0 {
        log.Println("Processed", len(pending), "pending notifications")
    }
    return nil
}
