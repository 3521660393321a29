package patient

import "time"

// Collection is the name of the patients collection in the file backend.
const Collection = "patients"

// ListLimit caps every patient listing regardless of how many records match.
const ListLimit = 200

// Patient is a person receiving care at the clinic.
type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       *int      `json:"age,omitempty"`
	Gender    string    `json:"gender"`
	Phone     *string   `json:"phone,omitempty"`
	Location  *string   `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Patch carries a partial update; nil fields are left unchanged.
type Patch struct {
	Name     *string `json:"name,omitempty"`
	Age      *int    `json:"age,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
}

// Sort keys accepted by ListFilter.
const (
	SortByName        = "name"
	SortByCreatedAt   = "createdAt"
	SortByAppointment = "appointment"
)

// Order values accepted by ListFilter.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListFilter selects and orders a patient listing.
type ListFilter struct {
	Query          string // case-insensitive literal substring match on name
	HasAppointment bool   // only patients with at least one appointment
	Sort           string // name (default), createdAt, or appointment
	Order          string // asc (default) or desc
}
