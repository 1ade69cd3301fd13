package validation

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidateRequired checks that a field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(fieldName + " is required")
	}
	return nil
}

// ValidateMinLength checks the minimum length of a string
func ValidateMinLength(value string, minLength int, fieldName string) error {
	if utf8.RuneCountInString(value) < minLength {
		return errors.New(fieldName + " must be at least " + strconv.Itoa(minLength) + " characters long")
	}
	return nil
}

// ValidateMaxLength checks the maximum length of a string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return errors.New(fieldName + " must be at most " + strconv.Itoa(maxLength) + " characters long")
	}
	return nil
}

// ValidateUUID checks that a string is a valid UUID
func ValidateUUID(value, fieldName string) error {
	if _, err := uuid.Parse(value); err != nil {
		return errors.New(fieldName + " must be a valid UUID")
	}
	return nil
}

// ValidateYear checks that a year is plausible for an assignment run.
// The original rounds started in 2013; anything far in the future is a typo.
func ValidateYear(year int) error {
	if year < 2013 {
		return errors.New("year must be 2013 or later")
	}
	if year > time.Now().Year()+1 {
		return errors.New("year is too far in the future")
	}
	return nil
}

// ParticipantValidation contains participant-specific validations
type ParticipantValidation struct{}

// ValidateParticipantName checks a participant name
func (v ParticipantValidation) ValidateParticipantName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	if err := ValidateMinLength(name, 2, "name"); err != nil {
		return err
	}
	if err := ValidateMaxLength(name, 50, "name"); err != nil {
		return err
	}
	return nil
}

// ValidateParticipantPassword checks a participant password
func (v ParticipantValidation) ValidateParticipantPassword(password string) error {
	if err := ValidateRequired(password, "password"); err != nil {
		return err
	}
	return ValidateMinLength(password, 8, "password")
}

// MessageValidation contains message-specific validations
type MessageValidation struct{}

// ValidateMessageText checks a gift message body
func (v MessageValidation) ValidateMessageText(text string) error {
	if err := ValidateRequired(text, "message_text"); err != nil {
		return err
	}
	return ValidateMaxLength(text, 2000, "message_text")
}
