package contracts

import "time"

// ContractResponse is the outward-facing representation of a contract.
type ContractResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Versions  []Version `json:"versions"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(c Contract) ContractResponse {
	versions := c.Versions
	if versions == nil {
		versions = []Version{}
	}
	return ContractResponse{
		ID:        c.ID,
		EventID:   c.EventID,
		Title:     c.Title,
		Status:    c.Status,
		Versions:  versions,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
