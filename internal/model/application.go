package model

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the review state of an application
type ApplicationStatus string

const (
	// StatusApplied is the initial state of every application
	StatusApplied ApplicationStatus = "applied"
	// StatusAccepted indicates that the applicant got the job
	StatusAccepted ApplicationStatus = "accepted"
	// StatusRejected indicates that the application has been rejected
	StatusRejected ApplicationStatus = "rejected"
	// StatusInterviewed indicates that the applicant has been interviewed
	StatusInterviewed ApplicationStatus = "interviewed"
)

// ApplicationStatuses lists every status admin may assign, in no particular order of progress.
var ApplicationStatuses = []ApplicationStatus{StatusApplied, StatusAccepted, StatusRejected, StatusInterviewed}

// Valid reports whether s belongs to the fixed status set.
func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Application represents a job application record
type Application struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// JobID references Job.ID; jobs with applications cannot be deleted
	JobID uint `gorm:"not null;index" json:"jobId"`
	Job   *Job `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:RESTRICT" json:"job,omitempty"`

	// UserID references User.ID; applications are removed together with their user
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User   *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`

	CoverLetter string            `gorm:"type:text;not null" json:"coverLetter"`
	CVLink      string            `gorm:"type:text;not null" json:"cvLink"`
	Status      ApplicationStatus `gorm:"type:text;not null;default:'applied'" json:"status"`
	AppliedAt   time.Time         `gorm:"autoCreateTime;<-:create;index" json:"appliedAt"`
}
