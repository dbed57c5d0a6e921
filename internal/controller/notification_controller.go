// internal/controller/notification_controller.go
package controller

import (
    "encoding/json"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    "github.com/campusops/admissions-backend/internal/service"
)

type NotificationController struct {
    NotificationService *service.NotificationService
}

// SendNotification creates a notification outside the event path. The same
// state machine applies: pending row first, then one immediate attempt.
func (c *NotificationController) SendNotification(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Email       string  `json:"email"`
        Subject     string  `json:"subject"`
        Body        string  `json:"body"`
        ApplicantID *string `json:"applicant_id"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if body.Email == "" || body.Subject == "" {
        http.Error(w, "email and subject are required", http.StatusBadRequest)
        return
    }

    notification, err := c.NotificationService.Send(body.Email, body.Subject, body.Body, body.ApplicantID)
    if err != nil {
        http.Error(w, "failed to send notification: "+err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "notification_id": notification.ID,
        "status":          notification.Status,
    })
}

func (c *NotificationController) ListByApplicant(w http.ResponseWriter, r *http.Request) {
    applicantID := chi.URLParam(r, "applicantId")

    notifications, err := c.NotificationService.ListByApplicant(applicantID)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "data": notifications,
    })
}

func (c *NotificationController) ListNotifications(w http.ResponseWriter, r *http.Request) {
    page, _ := strconv.Atoi(r.URL.Query().Get("page"))
    pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }

    notifications, pagination, err := c.NotificationService.List(page, pageSize)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "data":       notifications,
        "pagination": pagination,
    })
}
