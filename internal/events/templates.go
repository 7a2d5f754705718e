package events

// Template seeds a new event's checklist sections.
type Template struct {
	ID       string
	Name     string
	Type     string
	Sections []Section
}

var templates = []Template{
	{
		ID:       "blank",
		Name:     "Blank",
		Type:     "Other",
		Sections: []Section{},
	},
	{
		ID:   "wedding-basic",
		Name: "Wedding - basic",
		Type: "Wedding",
		Sections: []Section{
			{
				Title: "Venue & Catering",
				Tasks: []Task{
					{Title: "Book venue"},
					{Title: "Select menu"},
					{Title: "Final count"},
				},
			},
			{
				Title: "Logistics",
				Tasks: []Task{
					{Title: "Hire photographer"},
					{Title: "Book DJ/Music"},
					{Title: "Order flowers"},
				},
			},
		},
	},
	{
		ID:   "corporate-basic",
		Name: "Corporate - basic",
		Type: "Corporate",
		Sections: []Section{
			{
				Title: "Program",
				Tasks: []Task{
					{Title: "Confirm speakers"},
					{Title: "Set agenda"},
					{Title: "AV setup"},
				},
			},
			{
				Title: "Attendees",
				Tasks: []Task{
					{Title: "Send invitations"},
					{Title: "Registration setup"},
					{Title: "Badge printing"},
				},
			},
		},
	},
}

// TemplateByID looks up a seed template. Unknown ids return ok=false and the
// caller falls back to no sections.
func TemplateByID(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Templates returns all available seed templates.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}
