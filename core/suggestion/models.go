package suggestion

import (
	"time"

	"github.com/classflow/gradego/core"
)

// Suggestion is student feedback scoped to a tenant. Anonymous suggestions
// never expose the submitting student to teachers.
type Suggestion struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	StudentID   string    `json:"student_id,omitempty"` // empty when anonymous
	Content     string    `json:"content"`
	IsAnonymous bool      `json:"is_anonymous"`
	IsAnswered  bool      `json:"is_answered"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

type NewSuggestion struct {
	Content     string `json:"content" validate:"required"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func (ns *NewSuggestion) Validate() error {
	ns.Content = core.CleanString(ns.Content)
	return core.Validate.Struct(ns)
}
