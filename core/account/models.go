package account

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/classflow/gradego/core"
)

// Roles
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

var (
	AllRoles = []string{RoleTeacher, RoleStudent, RoleAdmin}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Admin", Value: RoleAdmin},
	}
)

// KnownRole reports whether role is one of the recognized role values.
func KnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

func (a *Account) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

// CheckPassword verifies pwd against the stored hash in constant time.
// A mismatch or malformed hash returns an error; it never panics.
func (a *Account) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

func (a *Account) IsTeacher() bool { return a.Role == RoleTeacher }
func (a *Account) IsStudent() bool { return a.Role == RoleStudent }
func (a *Account) IsAdmin() bool   { return a.Role == RoleAdmin }

// NewAccount contains information needed to create a new Account.
type NewAccount struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=32"`
	Role     string `json:"role" validate:"required,role"`
}

func (na *NewAccount) Validate() error {
	na.Email = core.CleanString(na.Email, true /* lower */)
	return core.Validate.Struct(na)
}
