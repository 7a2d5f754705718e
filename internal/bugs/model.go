package bugs

import "time"

const (
	StatusPending = "PENDING"
	StatusFixed   = "FIXED"
)

type Bug struct {
	ID              string    `json:"id"`
	ReporterID      string    `json:"reporterId"`
	ElementSelector string    `json:"elementSelector"`
	ElementText     string    `json:"elementText"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
