// internal/service/admission_service.go
package service

import (
    "fmt"
    "log"
    "time"

    "github.com/google/uuid"

    appErrors "github.com/campusops/admissions-backend/internal/errors"
    "github.com/campusops/admissions-backend/internal/event"
    "github.com/campusops/admissions-backend/internal/model"
    "github.com/campusops/admissions-backend/internal/queue"
    "github.com/campusops/admissions-backend/internal/repository"
)

type AdmissionService struct {
    AdmissionRepo repository.AdmissionRepositoryInterface
    ApplicantRepo repository.ApplicantRepositoryInterface
    Publisher     queue.Publisher
}

func (s *AdmissionService) CreateApplicant(fullName, email, phone string) (*model.Applicant, error) {
    a := &model.Applicant{
        ID:       uuid.NewString(),
        FullName: fullName,
        Email:    email,
        Phone:    phone,
    }
    if err := s.ApplicantRepo.Create(a); err != nil {
        return nil, err
    }
    return a, nil
}

func (s *AdmissionService) GetApplicant(id string) (*model.Applicant, error) {
    return s.ApplicantRepo.GetByID(id)
}

func (s *AdmissionService) CreateAdmission(applicantID, program string) (*model.Admission, error) {
    // Applicant must exist before an admission can reference it
    if _, err := s.ApplicantRepo.GetByID(applicantID); err != nil {
        return nil, err
    }

    a := &model.Admission{
        ID:          uuid.NewString(),
        ApplicantID: applicantID,
        Program:     program,
        Status:      model.StatusCreated,
    }
    if err := s.AdmissionRepo.Create(a); err != nil {
        return nil, err
    }
    return a, nil
}

// UpdateStatus commits the new status, then publishes a status-change event.
// The publish is best-effort: the status change is the source of truth, and a
// broker outage must never fail the caller's request.
func (s *AdmissionService) UpdateStatus(admissionID string, newStatus model.AdmissionStatus) (*model.Admission, error) {
    if !model.ValidStatus(newStatus) {
        return nil, fmt.Errorf("unknown admission status: %s", newStatus)
    }

    admission, err := s.AdmissionRepo.GetByID(admissionID)
    if err != nil {
        return nil, err
    }
    if admission.Status.Terminal() {
        return nil, appErrors.NewTerminalStatus(admissionID, string(admission.Status))
    }

    applicant, err := s.ApplicantRepo.GetByID(admission.ApplicantID)
    if err != nil {
        return nil, err
    }

    oldStatus := admission.Status
    if err := s.AdmissionRepo.UpdateStatus(admissionID, newStatus); err != nil {
        return nil, err
    }
    admission.Status = newStatus
    now := time.Now().UTC()
    admission.UpdatedAt = &now

    evt := event.StatusChangedEvent{
        AdmissionID:    admission.ID,
        ApplicantID:    applicant.ID,
        ApplicantEmail: applicant.Email,
        ApplicantName:  applicant.FullName,
        OldStatus:      string(oldStatus),
        NewStatus:      string(newStatus),
        OccurredAt:     now,
    }
    if err := s.Publisher.PublishStatusChanged(evt); err != nil {
        // The status change already committed; publish failure is logged only
        log.Println("⚠️ failed to publish status change event for admission", admission.ID, ":", err)
    }

    return admission, nil
}

func (s *AdmissionService) ListByApplicant(applicantID string) ([]*model.Admission, error) {
    return s.AdmissionRepo.ListByApplicant(applicantID)
}
