package models

// Preference stores per-user dashboard settings. Layout holds the widget
// grid layout as an opaque JSON document owned by the client.
type Preference struct {
	Base
	UserID string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Layout string `gorm:"type:text;not null;default:'{}'" json:"layout"`
}
