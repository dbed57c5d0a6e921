// internal/controller/admission_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "net/http"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/campusops/admissions-backend/internal/errors"
    "github.com/campusops/admissions-backend/internal/model"
    "github.com/campusops/admissions-backend/internal/service"
)

type AdmissionController struct {
    AdmissionService *service.AdmissionService
}

func (c *AdmissionController) CreateApplicant(w http.ResponseWriter, r *http.Request) {
    var body struct {
        FullName string `json:"full_name"`
        Email    string `json:"email"`
        Phone    string `json:"phone"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if body.FullName == "" || body.Email == "" {
        http.Error(w, "full_name and email are required", http.StatusBadRequest)
        return
    }

    applicant, err := c.AdmissionService.CreateApplicant(body.FullName, body.Email, body.Phone)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusCreated)
    json.NewEncoder(w).Encode(applicant)
}

func (c *AdmissionController) GetApplicant(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")

    applicant, err := c.AdmissionService.GetApplicant(id)
    if err != nil {
        var notFound *appErrors.ErrApplicantNotFound
        if errors.As(err, &notFound) {
            http.Error(w, err.Error(), http.StatusNotFound)
            return
        }
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(applicant)
}

func (c *AdmissionController) CreateAdmission(w http.ResponseWriter, r *http.Request) {
    var body struct {
        ApplicantID string `json:"applicant_id"`
        Program     string `json:"program"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    admission, err := c.AdmissionService.CreateAdmission(body.ApplicantID, body.Program)
    if err != nil {
        var notFound *appErrors.ErrApplicantNotFound
        if errors.As(err, &notFound) {
            http.Error(w, err.Error(), http.StatusNotFound)
            return
        }
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusCreated)
    json.NewEncoder(w).Encode(admission)
}

// UpdateAdmissionStatus triggers the notification pipeline. The response
// reflects only the status mutation; delivery problems are visible in the
// notification history, never here.
func (c *AdmissionController) UpdateAdmissionStatus(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")

    var body struct {
        Status string `json:"status"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    admission, err := c.AdmissionService.UpdateStatus(id, model.AdmissionStatus(body.Status))
    if err != nil {
        var notFound *appErrors.ErrAdmissionNotFound
        var terminal *appErrors.ErrTerminalStatus
        switch {
        case errors.As(err, &notFound):
            http.Error(w, err.Error(), http.StatusNotFound)
        case errors.As(err, &terminal):
            http.Error(w, err.Error(), http.StatusConflict)
        default:
            http.Error(w, err.Error(), http.StatusBadRequest)
        }
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(admission)
}

func (c *AdmissionController) ListAdmissionsByApplicant(w http.ResponseWriter, r *http.Request) {
    applicantID := chi.URLParam(r, "applicantId")

    admissions, err := c.AdmissionService.ListByApplicant(applicantID)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "data": admissions,
    })
}
