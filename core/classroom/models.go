package classroom

import (
	"crypto/rand"
	"time"

	"github.com/classflow/gradego/core"
)

// enrollment codes: unambiguous uppercase alphabet, 6 chars
var (
	codeAlphabet = []byte("ABCDEFGHJKMNPQRSTUVWXYZ23456789")
	codeLen      = 6
)

// Class belongs to one tenant and one teacher; students join via the
// enrollment code.
type Class struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	TeacherID      string    `json:"teacher_id"`
	Name           string    `json:"name"`
	EnrollmentCode string    `json:"enrollment_code"`
	ThemeColor     string    `json:"theme_color"`
	BannerURL      string    `json:"banner_url,omitempty"`
	IsArchived     bool      `json:"is_archived"`
	CreatedAt      time.Time `json:"created_at"` // UTC
}

type NewClass struct {
	Name       string `json:"name" validate:"required"`
	ThemeColor string `json:"theme_color"`
	BannerURL  string `json:"banner_url" validate:"omitempty,url"`
}

func (nc *NewClass) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.ThemeColor = core.CleanString(nc.ThemeColor, true /* lower */)
	if nc.ThemeColor == "" {
		nc.ThemeColor = "blue"
	}
	return core.Validate.Struct(nc)
}

type UpdateClass struct {
	Name       string `json:"name"`
	ThemeColor string `json:"theme_color"`
	BannerURL  string `json:"banner_url" validate:"omitempty,url"`
}

func (uc *UpdateClass) Validate(orig Class) error {
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	if theme := core.CleanString(uc.ThemeColor, true /* lower */); theme != "" {
		uc.ThemeColor = theme
	} else {
		uc.ThemeColor = orig.ThemeColor
	}
	if uc.BannerURL == "" {
		uc.BannerURL = orig.BannerURL
	}
	return core.Validate.Struct(uc)
}

// GenerateEnrollmentCode returns a new random class join code. Bytes are
// rejection-sampled so every alphabet character is equally likely.
func GenerateEnrollmentCode() (string, error) {
	// largest multiple of len(codeAlphabet) that fits in a byte
	max := 256 - 256%len(codeAlphabet)
	code := make([]byte, 0, codeLen)
	buf := make([]byte, codeLen)
	for len(code) < codeLen {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= max {
				continue
			}
			code = append(code, codeAlphabet[int(b)%len(codeAlphabet)])
			if len(code) == codeLen {
				break
			}
		}
	}
	return string(code), nil
}
