package tenant

import (
	"time"

	"github.com/classflow/gradego/core"
)

// Tenant is the isolation boundary grouping one school's teachers,
// students and classes. Tenants are created out-of-band (seed/admin CLI)
// and never mutated by the auth flow.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type NewTenant struct {
	Name  string `json:"name" validate:"required"`
	Theme string `json:"theme"`
}

func (nt *NewTenant) Validate() error {
	nt.Name = core.CleanString(nt.Name)
	nt.Theme = core.CleanString(nt.Theme, true /* lower */)
	if nt.Theme == "" {
		nt.Theme = "default"
	}
	return core.Validate.Struct(nt)
}
