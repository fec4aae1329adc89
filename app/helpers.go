package app

import (
	"errors"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// dollarsToCents converts a wire-format dollar amount to integer cents,
// rounding to the nearest cent.
func dollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// fieldErrors flattens a gin binding error into field -> reason pairs so
// validation failures come back with field-level detail.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "is required"
		case "email":
			out[field] = "must be a valid email address"
		case "gt":
			out[field] = "must be greater than " + fe.Param()
		default:
			out[field] = "failed " + fe.Tag() + " validation"
		}
	}
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
