package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// Category is the duration-based focus tier of a session. It is
// derived once at write time; records created before the field
// existed carry an empty Category and readers derive it on the fly.
type Category string

const (
	CategoryQuickNote    Category = "QuickNote"
	CategoryShortFocus   Category = "ShortFocus"
	CategoryDeepLearning Category = "DeepLearning"
	CategoryGrindMaster  Category = "GrindMaster"
)

// DeriveCategory maps a duration in minutes onto its tier. The
// boundaries are inclusive (<=5, <=20, <=60); the same mapping is
// used at write time and as the read-side fallback, so both call
// sites must stay in sync with these thresholds.
func DeriveCategory(durationMinutes int) Category {
	switch {
	case durationMinutes <= 5:
		return CategoryQuickNote
	case durationMinutes <= 20:
		return CategoryShortFocus
	case durationMinutes <= 60:
		return CategoryDeepLearning
	default:
		return CategoryGrindMaster
	}
}

// Moods a session may be tagged with. Visual only, no behavioral effect.
var Moods = []string{"cat1", "cat2", "cat3", "cat4", "cat5"}

// Session is one logged unit of study activity.
//
// DateString is the local calendar day (YYYY-MM-DD) at creation time
// and is the grouping key for streaks and daily aggregates. It is set
// once and never recomputed from CreatedAt, so editing a session does
// not change which day it counts toward.
type Session struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	OwnerID         string    `json:"owner_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
	DateString      string    `json:"date_string"`
	DurationMinutes int       `json:"duration_minutes"`
	Content         string    `json:"content"`
	Mood            string    `json:"mood"`
	IsEmergency     bool      `json:"is_emergency"`
	Category        Category  `json:"category,omitempty"`
}

// EffectiveCategory returns the stored category, or derives one from
// the duration for records that predate the field.
func (s *Session) EffectiveCategory() Category {
	if s.Category != "" {
		return s.Category
	}
	return DeriveCategory(s.DurationMinutes)
}

// Resource is an owner-scoped saved link.
type Resource struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	OwnerID   string    `json:"owner_id" gorm:"index"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Type      string    `json:"type"` // video, article, tool
	CreatedAt time.Time `json:"created_at"`
}
