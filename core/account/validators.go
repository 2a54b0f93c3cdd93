package account

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/classflow/gradego/core"
)

var (
	roleTag  = "role"
	roleText = "invalid role"

	// password policy
	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password cannot be similar to account attributes"
)

func init() {
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, roleTag, roleText)
	core.RegisterCustomTranslation(core.Validate, core.Translator, pwdAttrSimTag, pwdAttrSimText)

	core.Validate.RegisterStructValidation(accountStructValidation, NewAccount{})
}

// roleValidation checks that the provided role is a recognized one.
func roleValidation(fl validator.FieldLevel) bool {
	return KnownRole(fl.Field().String())
}

func accountStructValidation(sl validator.StructLevel) {
	na := sl.Current().Interface().(NewAccount)
	ValidatePasswordSimilarity(sl, na.Password, na.Email)
}

// ValidatePasswordSimilarity rejects passwords too similar to any of the
// holder's attributes (name, email, ...). Length bounds are left to field
// tags; this is the only policy a form cannot express with a tag.
func ValidatePasswordSimilarity(sl validator.StructLevel, pwd string, attrs ...string) {
	if pwd == "" {
		return
	}
	for _, attr := range attrs {
		if attr == "" {
			continue
		}
		ratio := difflib.NewMatcher(
			strings.Split(strings.ToLower(pwd), ""),
			strings.Split(strings.ToLower(attr), ""),
		).QuickRatio()
		if ratio >= pwdMaxSim {
			sl.ReportError(pwd, "password", "Password", pwdAttrSimTag, "")
			return
		}
	}
}
