// internal/model/applicant.go
package model

import "time"

type Applicant struct {
    ID        string    `db:"id" json:"id"`
    FullName  string    `db:"full_name" json:"full_name"`
    Email     string    `db:"email" json:"email"`
    Phone     string    `db:"phone" json:"phone"`
    CreatedAt time.Time `db:"created_at" json:"created_at"`
}
