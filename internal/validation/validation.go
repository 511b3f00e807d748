// Package validation holds input validation rules for API payloads.
package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"campusmarket/internal/models"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 64
	MinPasswordLength = 6
)

// Username checks registration usernames.
func Username(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < MinUsernameLength {
		return models.NewValidationError(fmt.Sprintf("Username must be at least %d characters", MinUsernameLength))
	}
	if len(username) > MaxUsernameLength {
		return models.NewValidationError(fmt.Sprintf("Username must be at most %d characters", MaxUsernameLength))
	}
	if strings.ContainsAny(username, " \t\n") {
		return models.NewValidationError("Username must not contain whitespace")
	}
	return nil
}

// Email checks address syntax.
func Email(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return models.NewValidationError("Invalid email address")
	}
	return nil
}

// Password checks registration passwords. The hash never leaves the
// server so the only rule is a minimum length.
func Password(password string) error {
	if len(password) < MinPasswordLength {
		return models.NewValidationError(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	return nil
}

// ContactInfo checks an optional roommate contact address. Blank is
// fine; when present it must be a well-formed email address.
func ContactInfo(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return models.NewValidationError("Contact info must be an email address")
	}
	return nil
}

// Required checks that a field carries a non-blank value.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return models.NewValidationError(field + " is required")
	}
	return nil
}

// Category checks a listing category against the canonical set. Input
// is expected in canonical lowercase already.
func Category(category string) error {
	for _, c := range models.ListingCategories {
		if category == c {
			return nil
		}
	}
	return models.NewValidationError(fmt.Sprintf("Unknown category %q", category))
}

// Condition checks a listing condition value.
func Condition(condition string) error {
	for _, c := range models.ListingConditions {
		if condition == c {
			return nil
		}
	}
	return models.NewValidationError(fmt.Sprintf("Unknown condition %q", condition))
}

// Price checks a listing price in whole currency units.
func Price(price int) error {
	if price < 0 {
		return models.NewValidationError("Price must not be negative")
	}
	return nil
}

// Budget checks an optional roommate budget.
func Budget(budget *int) error {
	if budget != nil && *budget < 0 {
		return models.NewValidationError("Budget must not be negative")
	}
	return nil
}
