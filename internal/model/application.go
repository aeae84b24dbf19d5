package model

import "time"

// Application statuses accepted by the API.  Anything else is rejected
// with a 400 before it reaches the database.
const (
	StatusPending   = "pending"
	StatusInterview = "interview"
	StatusRejected  = "rejected"
	StatusOffered   = "offered"
	StatusAccepted  = "accepted"
)

// ValidStatuses lists every accepted application status in display order.
var ValidStatuses = []string{StatusPending, StatusInterview, StatusRejected, StatusOffered, StatusAccepted}

// IsValidStatus reports whether s is one of the accepted statuses.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// JobApplication tracks one job application owned by a single user.
//
// Fields:
//
//	ID          – primary key identifier.
//	UserID      – owner of the application.
//	Company     – company applied to.
//	Position    – role applied for.
//	Status      – one of ValidStatuses.
//	DateApplied – when the application was submitted.
//	Notes       – optional free-form notes.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type JobApplication struct {
	ID          uint64    // job_applications.id
	UserID      uint64    // job_applications.user_id
	Company     string    // job_applications.company
	Position    string    // job_applications.position
	Status      string    // job_applications.status
	DateApplied time.Time // job_applications.date_applied
	Notes       *string   // job_applications.notes (nullable)
	CreatedAt   time.Time // job_applications.created_at
	UpdatedAt   time.Time // job_applications.updated_at
}

// JobApplicationPatch carries a partial update; nil fields are left untouched.
type JobApplicationPatch struct {
	Company     *string
	Position    *string
	Status      *string
	DateApplied *time.Time
	Notes       *string
}
