// Package validation registers the domain's named field rules on a validator instance.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/guard"
)

var (
	codePattern       = regexp.MustCompile(`^[A-Z0-9]+$`)
	alphaSpacePattern = regexp.MustCompile(`^[A-Za-z\s]+$`)
	alnumSpacePattern = regexp.MustCompile(`^[A-Za-z0-9\s]+$`)
	phonePattern      = regexp.MustCompile(`^\+?[0-9\s\-]{7,15}$`)
	websitePattern    = regexp.MustCompile(`^(https?://)?([\w-]+\.)+[\w-]+(/[\w\-._~:/?#@!$&'()*+,;=%]*)?$`)
)

const passwordSymbols = "!@#$%^&*"

// Rules returns the named rules keyed by validator tag.
func Rules() map[string]validator.Func {
	return map[string]validator.Func{
		"code":       matches(codePattern),
		"alphaspace": matches(alphaSpacePattern),
		"alnumspace": matches(alnumSpacePattern),
		"phone":      matches(phonePattern),
		"website":    matches(websitePattern),
		"password":   strongPassword,
		"objectid":   objectID,
		"pastyear":   pastYear,
	}
}

// New returns a validator with the domain rules registered and json field names in errors.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	for tag, fn := range Rules() {
		_ = v.RegisterValidation(tag, fn)
	}
	return v
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || re.MatchString(s)
	}
}

func strongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return strings.ContainsAny(s, "0123456789") && strings.ContainsAny(s, passwordSymbols)
}

func objectID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || guard.IsValidID(s)
}

func pastYear(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return field.Int() <= int64(time.Now().Year())
	}
	return true
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Details converts validator errors into field descriptors.
func Details(err error) []appErrors.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]appErrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, appErrors.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// Error builds a validation error from a validator failure.
func Error(err error, message string) *appErrors.Error {
	e := appErrors.Validation(message, Details(err)...)
	e.Err = err
	return e
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "code":
		return "must contain only uppercase letters and digits"
	case "alphaspace":
		return "must contain only letters and spaces"
	case "alnumspace":
		return "must contain only letters, digits and spaces"
	case "phone":
		return "must be a valid phone number"
	case "website", "url":
		return "must be a valid URL"
	case "password":
		return "must contain at least one number and one special character"
	case "objectid":
		return "must be a valid id"
	case "pastyear":
		return "cannot be in the future"
	case "dive":
		return "contains an invalid value"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
