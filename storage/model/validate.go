package model

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(
		func() {
			validate = validator.New(validator.WithRequiredStructEnabled())
			validate.RegisterTagNameFunc(
				func(fld reflect.StructField) string {
					name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
					if name == "-" {
						return ""
					}
					return name
				},
			)
			_ = validate.RegisterValidation(
				"enum", func(fl validator.FieldLevel) bool {
					v := fl.Field().String()
					// unset
					if v == "" {
						return true
					}
					return IsValidEnumValue(fl.Param(), v)
				},
			)
		},
	)
	return validate
}

// Validate checks a case before it is written through the API or CLI.
// Enumeration fields must be empty or hold a registered value, dates must be ISO calendar
// dates and the CSAT score must lie in [0, 5].
func (c Case) Validate() error {
	if strings.TrimSpace(c.CaseID) == "" {
		return ValidationError("case_id is required")
	}
	if err := getValidator().Struct(c); err != nil {
		return toValidationError(err)
	}
	if c.CSATScore.Valid && !CSATInRange(c.CSATScore.Decimal) {
		return ValidationErrorFmt("csat_score must be between %s and %s", CSATMin, CSATMax)
	}
	return nil
}

// Validate checks an update before it is written through the API or CLI.
// The sub-status list is open, so only presence is checked.
func (u Update) Validate() error {
	if strings.TrimSpace(u.CaseID) == "" {
		return ValidationError("case_id is required")
	}
	if strings.TrimSpace(u.SubStatus) == "" {
		return ValidationError("sub_status is required")
	}
	if u.Timestamp.IsZero() {
		return ValidationError("timestamp is required")
	}
	return nil
}

func toValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationError(err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "enum":
			msgs = append(msgs, fmt.Sprintf("invalid %s: '%v'", fe.Field(), fe.Value()))
		case "datetime":
			msgs = append(msgs, fe.Field()+" must be a date in the form YYYY-MM-DD")
		case "min":
			msgs = append(msgs, fe.Field()+" must not be negative")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return ValidationError(strings.Join(msgs, "; "))
}
