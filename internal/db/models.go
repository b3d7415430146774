package db

// Card represents a row in the cards table
type Card struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Kind            string   `json:"kind"` // "card", "location"
	PosX            float64  `json:"pos_x"`
	PosY            float64  `json:"pos_y"`
	PosZ            float64  `json:"pos_z"`
	ZoomOffsetX     float64  `json:"zoom_offset_x"`
	ZoomOffsetY     float64  `json:"zoom_offset_y"`
	ZoomSize        *float64 `json:"zoom_size"`   // nil: default single-card size
	CostsBudget     bool     `json:"costs_budget"`
	InitiallyOpen   bool     `json:"initially_open"`
	Interaction     string   `json:"interaction"` // "active", "inactive", "hidden"
	SpecialRotation bool     `json:"special_rotation"`
	Reserve         bool     `json:"reserve"`
	SortOrder       int      `json:"sort_order"`
}

// Dep represents a row in the deps table
type Dep struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
	Type     string `json:"type"` // "hide", "open", "activator"
}

// Setting keys
const (
	SettingTitle  = "title"
	SettingBudget = "budget"
)
