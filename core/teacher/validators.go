package teacher

import (
	"github.com/go-playground/validator/v10"

	"github.com/classflow/gradego/core"
	"github.com/classflow/gradego/core/account"
)

func init() {
	core.Validate.RegisterStructValidation(newTeacherStructValidation, NewTeacher{})
}

func newTeacherStructValidation(sl validator.StructLevel) {
	nt := sl.Current().Interface().(NewTeacher)
	account.ValidatePasswordSimilarity(sl, nt.Password, nt.FirstName, nt.LastName, nt.Email)
}
