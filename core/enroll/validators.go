package enroll

import (
	"github.com/go-playground/validator/v10"

	"github.com/classflow/gradego/core"
	"github.com/classflow/gradego/core/account"
)

func init() {
	core.Validate.RegisterStructValidation(enrollFormStructValidation, Form{})
}

func enrollFormStructValidation(sl validator.StructLevel) {
	f := sl.Current().Interface().(Form)
	account.ValidatePasswordSimilarity(sl, f.Password, f.FirstName, f.LastName, f.Email)
}
