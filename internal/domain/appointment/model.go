package appointment

import "time"

// Collection is the name of the appointments collection in the file backend.
const Collection = "appointments"

// Appointment is a scheduled visit linking one patient and one doctor.
// Date carries the calendar day; Time is the clock time as entered,
// kept as a string so tie-breaking compares what the user typed.
type Appointment struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient"`
	DoctorID   string    `json:"doctor"`
	Date       time.Time `json:"date"`
	Time       string    `json:"time"`
	Duration   int       `json:"duration"`
	Reason     string    `json:"reason"`
	Notes      string    `json:"notes"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority"`
	AssignedTo string    `json:"assignedTo"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Patch carries a partial update; nil fields are left unchanged.
type Patch struct {
	PatientID *string    `json:"patient,omitempty"`
	DoctorID  *string    `json:"doctor,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Time      *string    `json:"time,omitempty"`
	Duration  *int       `json:"duration,omitempty"`
	Reason    *string    `json:"reason,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	Status    *string    `json:"status,omitempty"`
	Priority  *string    `json:"priority,omitempty"`
}

// Status values for an appointment.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

// Priority values for an appointment.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Defaults applied on create.
const (
	DefaultDuration   = 30
	DefaultAssignedTo = "doctor"
)

// ListFilter selects an appointment listing. All set filters combine with
// logical AND. Date matches the whole calendar day in its own location.
type ListFilter struct {
	Date      *time.Time
	DoctorID  string
	PatientID string
	Status    string
}

// Stats summarizes one doctor's appointment load. Pending counts the
// scheduled and confirmed statuses.
type Stats struct {
	Total   int `json:"total"`
	Today   int `json:"today"`
	Pending int `json:"pending"`
}

// dayWindow returns the start of t's calendar day and the start of the
// next day, in t's location.
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func inDay(at, day time.Time) bool {
	start, end := dayWindow(day)
	return !at.Before(start) && at.Before(end)
}

func isPending(status string) bool {
	return status == StatusScheduled || status == StatusConfirmed
}
