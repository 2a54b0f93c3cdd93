package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	phMobileTag   = "ph_mobile"
	phMobileText  = "invalid number. Must start with 09 and have 11 digits"
	phMobileRegex = regexp.MustCompile(`^09\d{9}$`)

	digitsTag   = "digits"
	digitsText  = "only digits are allowed"
	digitsRegex = regexp.MustCompile(`^\d+$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

func init() {
	Validate = validator.New()
	enLocale := en.New()
	Translator, _ = ut.New(enLocale, enLocale).GetTranslator("en")
	initValidators(Validate, Translator)
}

// initValidators instantiates the validator for use.
func initValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(phMobileTag, phMobileValidation)
	RegisterCustomTranslation(validate, translator, phMobileTag, phMobileText)

	_ = validate.RegisterValidation(digitsTag, digitsValidation)
	RegisterCustomTranslation(validate, translator, digitsTag, digitsText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// phMobileValidation allows Philippine mobile numbers only (09xxxxxxxxx).
func phMobileValidation(fl validator.FieldLevel) bool {
	return phMobileRegex.MatchString(fl.Field().String())
}

// digitsValidation only allows decimal digits.
func digitsValidation(fl validator.FieldLevel) bool {
	return digitsRegex.MatchString(fl.Field().String())
}
