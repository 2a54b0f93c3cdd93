package announcement

import (
	"time"

	"github.com/classflow/gradego/core"
)

// Announcement is a teacher note on a class; IsShared controls whether
// students can see it.
type Announcement struct {
	ID        string    `json:"id"`
	ClassID   string    `json:"class_id"`
	TeacherID string    `json:"teacher_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsShared  bool      `json:"is_shared"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type NewAnnouncement struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	IsShared bool   `json:"is_shared"`
}

func (na *NewAnnouncement) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Content = core.CleanString(na.Content)
	return core.Validate.Struct(na)
}
