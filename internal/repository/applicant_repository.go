package repository

import (
	"database/sql"
	"time"

	appErrors "github.com/campusops/admissions-backend/internal/errors"
	"github.com/campusops/admissions-backend/internal/model"
)

// ApplicantRepositoryInterface defines methods used by services
type ApplicantRepositoryInterface interface {
	Create(a *model.Applicant) error
	GetByID(id string) (*model.Applicant, error)
}

// ApplicantRepository is the concrete implementation
type ApplicantRepository struct {
	DB *sql.DB
}

func (r *ApplicantRepository) Create(a *model.Applicant) error {
	a.CreatedAt = time.Now().UTC()
	query := `
        INSERT INTO applicants (id, full_name, email, phone, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.DB.Exec(query, a.ID, a.FullName, a.Email, a.Phone, a.CreatedAt)
	return err
}

// GetByID fetches an applicant by ID
func (r *ApplicantRepository) GetByID(id string) (*model.Applicant, error) {
	query := `
        SELECT id, full_name, email, phone, created_at
        FROM applicants
        WHERE id = $1
    `
	row := r.DB.QueryRow(query, id)

	var a model.Applicant
	if err := row.Scan(&a.ID, &a.FullName, &a.Email, &a.Phone, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewApplicantNotFound(id)
		}
		return nil, err
	}
	return &a, nil
}

var _ ApplicantRepositoryInterface = (*ApplicantRepository)(nil)
