package planner

import (
	"time"

	"github.com/classflow/gradego/core"
)

// Urgency levels
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Note is a teacher planner entry, private by default; shared notes
// (eg. exam schedules) are visible to the note's class.
type Note struct {
	ID        string    `json:"id"`
	TeacherID string    `json:"teacher_id"`
	ClassID   string    `json:"class_id,omitempty"`
	Date      time.Time `json:"date"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsPrivate bool      `json:"is_private"`
	Urgency   string    `json:"urgency"`
}

type NewNote struct {
	ClassID   string    `json:"class_id"`
	Date      time.Time `json:"date" validate:"required"`
	Title     string    `json:"title" validate:"required"`
	Content   string    `json:"content"`
	IsPrivate *bool     `json:"is_private"`
	Urgency   string    `json:"urgency" validate:"omitempty,oneof=low medium high"`
}

func (nn *NewNote) Validate() error {
	nn.Title = core.CleanString(nn.Title)
	nn.Content = core.CleanString(nn.Content)
	nn.Urgency = core.CleanString(nn.Urgency, true /* lower */)
	if nn.Urgency == "" {
		nn.Urgency = UrgencyLow
	}
	return core.Validate.Struct(nn)
}
