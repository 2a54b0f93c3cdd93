package teacher

import (
	"strings"
	"time"

	"github.com/classflow/gradego/core"
)

// Teacher is the profile owned 1:1 by a teacher Account.
type Teacher struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"account_id"`
	TenantID   string    `json:"tenant_id"`
	FirstName  string    `json:"first_name"`
	MiddleName string    `json:"middle_name,omitempty"`
	LastName   string    `json:"last_name"`
	Extension  string    `json:"extension,omitempty"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// FullName renders "First [Middle] Last [Ext]".
func (t *Teacher) FullName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{t.FirstName, t.MiddleName, t.LastName, t.Extension} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// NewTeacher is the teacher registration form.
type NewTeacher struct {
	FirstName  string `json:"first_name" validate:"required"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name" validate:"required"`
	Extension  string `json:"extension"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=32"`
}

func (nt *NewTeacher) Validate() error {
	nt.FirstName = core.CleanString(nt.FirstName)
	nt.MiddleName = core.CleanString(nt.MiddleName)
	nt.LastName = core.CleanString(nt.LastName)
	nt.Extension = core.CleanString(nt.Extension)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	return core.Validate.Struct(nt)
}
