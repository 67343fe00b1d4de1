package models

import (
	"time"
)

// AnalysisRecord is the persisted outcome of one successful detection
// request. Records are created exactly once, never mutated and never
// deleted by any in-scope operation. UserEmail is a soft reference to
// users.email; no foreign key is enforced at write time.
type AnalysisRecord struct {
	ID          int64     `json:"id" db:"id"`
	UserEmail   string    `json:"-" db:"user_email"`
	Disease     string    `json:"disease" db:"disease"`
	Confidence  float64   `json:"confidence" db:"confidence"`
	Description string    `json:"description" db:"description"`
	Treatment   []string  `json:"treatment,omitempty" db:"treatment"`
	Filename    string    `json:"filename" db:"filename"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the database table name for the AnalysisRecord model.
func (r *AnalysisRecord) TableName() string {
	return "analysis_results"
}
