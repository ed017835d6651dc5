package auth

import (
	goerrors "errors"
	"fmt"
	"social-lab/errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// Credentials are what a user signs up with.
type Credentials struct {
	Username string `validate:"required,min=3,max=32,alphanum"`
	Password string `validate:"required,min=12,max=72"`
}

// A password needs one rune of every class.
var passwordClasses = []func(rune) bool{
	unicode.IsUpper,
	unicode.IsLower,
	unicode.IsNumber,
	func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) },
}

// ValidateCredentials checks the signup rules. Every failure wraps
// errors.ErrInvalidArgument; a password missing a character class is
// errors.ErrInvalidPassword.
func ValidateCredentials(c Credentials) error {
	if err := validate.Struct(c); err != nil {
		var fieldErrors validator.ValidationErrors
		if goerrors.As(err, &fieldErrors) {
			return fmt.Errorf("%w: %s", errors.ErrInvalidArgument, describe(fieldErrors))
		}
		return fmt.Errorf("%w: %v", errors.ErrInvalidArgument, err)
	}
	if !complexEnough(c.Password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

// describe renders "username min=3, password required" style details,
// never the rejected values.
func describe(fieldErrors validator.ValidationErrors) string {
	return strings.Join(lo.Map(fieldErrors, func(e validator.FieldError, _ int) string {
		rule := e.Tag()
		if e.Param() != "" {
			rule += "=" + e.Param()
		}
		return strings.ToLower(e.Field()) + " " + rule
	}), ", ")
}

func complexEnough(password string) bool {
	return lo.EveryBy(passwordClasses, func(class func(rune) bool) bool {
		return strings.IndexFunc(password, class) >= 0
	})
}
