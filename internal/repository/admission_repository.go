package repository

import (
    "database/sql"
    "time"

    appErrors "github.com/campusops/admissions-backend/internal/errors"
    "github.com/campusops/admissions-backend/internal/model"
)

type AdmissionRepositoryInterface interface {
    Create(a *model.Admission) error
    GetByID(id string) (*model.Admission, error)
    UpdateStatus(admissionID string, status model.AdmissionStatus) error
    ListByApplicant(applicantID string) ([]*model.Admission, error)
}

type AdmissionRepository struct {
    DB *sql.DB
}

func (r *AdmissionRepository) Create(a *model.Admission) error {
    a.CreatedAt = time.Now().UTC()
    if a.Status == "" {
        a.Status = model.StatusCreated
    }
    query := `
        INSERT INTO admissions (id, applicant_id, program, status, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
    _, err := r.DB.Exec(query, a.ID, a.ApplicantID, a.Program, a.Status, a.CreatedAt)
    return err
}

func (r *AdmissionRepository) GetByID(id string) (*model.Admission, error) {
    query := `
        SELECT id, applicant_id, program, status, created_at, updated_at
        FROM admissions WHERE id=$1
    `
    var a model.Admission
    err := r.DB.QueryRow(query, id).Scan(&a.ID, &a.ApplicantID, &a.Program, &a.Status, &a.CreatedAt, &a.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewAdmissionNotFound(id)
        }
        return nil, err
    }
    return &a, nil
}

func (r *AdmissionRepository) UpdateStatus(admissionID string, status model.AdmissionStatus) error {
    query := `UPDATE admissions SET status=$1, updated_at=NOW() WHERE id=$2`
    _, err := r.DB.Exec(query, status, admissionID)
    return err
}

func (r *AdmissionRepository) ListByApplicant(applicantID string) ([]*model.Admission, error) {
    query := `
        SELECT id, applicant_id, program, status, created_at, updated_at
        FROM admissions
        WHERE applicant_id=$1
        ORDER BY created_at DESC
    `
    rows, err := r.DB.Query(query, applicantID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    admissions := []*model.Admission{}
    for rows.Next() {
        a := &model.Admission{}
        if err := rows.Scan(&a.ID, &a.ApplicantID, &a.Program, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
            return nil, err
        }
        admissions = append(admissions, a)
    }
    return admissions, rows.Err()
}

var _ AdmissionRepositoryInterface = (*AdmissionRepository)(nil)
