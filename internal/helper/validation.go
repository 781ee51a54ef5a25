package helper

import (
	"errors"
	"fmt"
	"postman-backend/internal/model/data"
	"regexp"
	"sort"
	"strconv"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation"
)

var Field = ozzo.Field

var errorMessages = map[string]string{
	"required":   "%s is required",
	"min_length": "%s must be at least %d characters",
	"max_length": "%s must be at most %d characters",
	"min":        "%s must be no less than %d",
	"max":        "%s must be no greater than %d",
	"in":         "%s has an unsupported value",
	"url":        "%s must be a valid URL",
}

var firstNumber = regexp.MustCompile(`\d+`)

func translateError(list map[string]string, field string, err error) data.ValidationErrorData {
	fieldName := getDisplayName(field, list)
	msg := err.Error()

	switch {
	case strings.Contains(msg, "cannot be blank"):
		msg = fmt.Sprintf(errorMessages["required"], fieldName)
	case strings.Contains(msg, "the length must be no less than"):
		msg = fmt.Sprintf(errorMessages["min_length"], fieldName, extractFirstNumber(msg))
	case strings.Contains(msg, "the length must be no more than"):
		msg = fmt.Sprintf(errorMessages["max_length"], fieldName, extractFirstNumber(msg))
	case strings.Contains(msg, "must be no less than"):
		msg = fmt.Sprintf(errorMessages["min"], fieldName, extractFirstNumber(msg))
	case strings.Contains(msg, "must be no greater than"):
		msg = fmt.Sprintf(errorMessages["max"], fieldName, extractFirstNumber(msg))
	case strings.Contains(msg, "must be a valid value"):
		msg = fmt.Sprintf(errorMessages["in"], fieldName)
	case strings.Contains(msg, "must be a valid URL"):
		msg = fmt.Sprintf(errorMessages["url"], fieldName)
	}

	return data.ValidationErrorData{
		Field:   field,
		Message: msg,
	}
}

func extractFirstNumber(msg string) int {
	match := firstNumber.FindString(msg)
	if match == "" {
		return 0
	}
	num, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return num
}

func getDisplayName(field string, list map[string]string) string {
	if name, exists := list[field]; exists {
		return name
	}
	return field
}

// ValidateStruct runs the ozzo field rules against s and flattens the result into
// field/message pairs ordered by field name. Rules carrying their own message
// (via .Error) keep it; stock ozzo messages are rewritten with the display names
// from list.
func ValidateStruct(list map[string]string, s interface{}, fields ...*ozzo.FieldRules) []data.ValidationErrorData {
	err := ozzo.ValidateStruct(s, fields...)
	if err == nil {
		return nil
	}

	var errs []data.ValidationErrorData
	var validationErrors ozzo.Errors
	if errors.As(err, &validationErrors) {
		for field, fieldErr := range validationErrors {
			errs = append(errs, translateError(list, field, fieldErr))
		}
	} else {
		errs = append(errs, data.ValidationErrorData{Field: "body", Message: err.Error()})
	}

	sort.Slice(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return errs
}
