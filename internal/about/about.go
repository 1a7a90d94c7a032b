package about

import "time"

type TeamMember struct {
	Name        string   `json:"name" bson:"name"`
	Role        string   `json:"role" bson:"role"`
	Avatar      string   `json:"avatar" bson:"avatar"`
	Description string   `json:"description" bson:"description"`
	Skills      []string `json:"skills" bson:"skills"`
}

type TimelineEntry struct {
	Year        string `json:"year" bson:"year"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
}

type Value struct {
	Icon        string `json:"icon" bson:"icon"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
}

type Stat struct {
	Label string `json:"label" bson:"label"`
	Value string `json:"value" bson:"value"`
	Icon  string `json:"icon" bson:"icon"`
}

type Mission struct {
	Title   string `json:"title" bson:"title"`
	Content string `json:"content" bson:"content"`
}

// Page is the single about-page document.
type Page struct {
	TeamMembers []TeamMember      `json:"team_members" bson:"team_members"`
	Timeline    []TimelineEntry   `json:"timeline" bson:"timeline"`
	Values      []Value           `json:"values" bson:"values"`
	Stats       []Stat            `json:"stats" bson:"stats"`
	Mission     Mission           `json:"mission" bson:"mission"`
	Contact     map[string]string `json:"contact" bson:"contact"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}

// DefaultPage - what the frontend gets before anything was ever saved.
func DefaultPage() Page {
	return Page{
		TeamMembers: []TeamMember{},
		Timeline:    []TimelineEntry{},
		Values:      []Value{},
		Stats:       []Stat{},
		Contact:     map[string]string{},
	}
}
