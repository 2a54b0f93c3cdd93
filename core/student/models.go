package student

import (
	"strings"
	"time"
)

// Guardian contact attached to a student profile.
type Guardian struct {
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name,omitempty"`
	LastName     string `json:"last_name"`
	Extension    string `json:"extension,omitempty"`
	Relationship string `json:"relationship"`
	Number       string `json:"number"`
}

// Student is the profile owned 1:1 by a student Account.
type Student struct {
	ID         string `json:"id"`
	AccountID  string `json:"account_id"`
	TenantID   string `json:"tenant_id"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	Extension  string `json:"extension,omitempty"`

	Sex             string `json:"sex"`
	Gender          string `json:"gender,omitempty"`
	Birthday        string `json:"birthday"` // YYYY-MM-DD
	LRN             string `json:"lrn"`      // Learner Reference Number, digits only
	InterestingFact string `json:"interesting_fact,omitempty"`

	Guardian Guardian `json:"guardian"`

	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

func (s *Student) FullName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{s.FirstName, s.MiddleName, s.LastName, s.Extension} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
