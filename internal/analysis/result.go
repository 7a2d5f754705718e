package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Result is the structured output of contract analysis. If a sidecar exists
// on disk it always matches this shape; malformed model output is rejected
// before anything is written.
type Result struct {
	Summary        string     `json:"summary"`
	ImportantDates []DateItem `json:"important_dates"`
	Costs          []CostItem `json:"costs"`
	Risks          []string   `json:"risks"`
}

// DateItem is one dated milestone pulled from a contract.
type DateItem struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

// CostItem is one cost line pulled from a contract, amount kept as the
// model's formatted string (e.g. "$500.00").
type CostItem struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// ParseModelOutput strips any Markdown code fences from raw model output and
// parses the remainder as a Result. Anything that is not valid JSON after
// fence-stripping is an error.
func ParseModelOutput(raw string) (Result, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var res Result
	if err := json.Unmarshal([]byte(cleaned), &res); err != nil {
		return Result{}, fmt.Errorf("parse model output: %w", err)
	}
	return res.normalized(), nil
}

func (r Result) normalized() Result {
	if r.ImportantDates == nil {
		r.ImportantDates = []DateItem{}
	}
	if r.Costs == nil {
		r.Costs = []CostItem{}
	}
	if r.Risks == nil {
		r.Risks = []string{}
	}
	return r
}
