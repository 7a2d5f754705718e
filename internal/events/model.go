package events

import "time"

const (
	StatusPlanning  = "PLANNING"
	StatusDraft     = "DRAFT"
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
)

type Event struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	ClientName   string    `json:"clientName"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	VenueName    string    `json:"venueName"`
	VenueAddress string    `json:"venueAddress"`
	Timezone     string    `json:"timezone"`
	Sections     []Section `json:"sections"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Section groups tasks inside an event's planning checklist.
type Section struct {
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

type Task struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
}
