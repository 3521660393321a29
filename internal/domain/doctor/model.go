package doctor

import "time"

// Collection is the name of the doctors collection in the file backend.
const Collection = "doctors"

// Doctor is a clinician on the clinic staff.
type Doctor struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"password,omitempty"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone,omitempty"`
	Specialization string    `json:"specialization"`
	LicenseNumber  *string   `json:"licenseNumber,omitempty"`
	Experience     int       `json:"experience"`
	Status         string    `json:"status"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Patch carries a partial update; nil fields are left unchanged.
type Patch struct {
	Password       *string `json:"password,omitempty"`
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	LicenseNumber  *string `json:"licenseNumber,omitempty"`
	Experience     *int    `json:"experience,omitempty"`
	Status         *string `json:"status,omitempty"`
	Role           *string `json:"role,omitempty"`
}

// Status values for a doctor record.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnLeave  = "on-leave"
)

// ListFilter selects a doctor listing. Results are always ordered by
// first name.
type ListFilter struct {
	Query          string // substring match across first name, last name, specialization
	Specialization string // substring match on specialization only
	Status         string // exact match
}
