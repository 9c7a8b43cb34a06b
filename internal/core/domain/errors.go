package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Birth input errors. They are returned before any pillar arithmetic runs.

	// ErrInvalidGender indicates the gender token is not a male or female designator.
	ErrInvalidGender = errors.New("invalid gender")

	// ErrInvalidDate indicates the year, month and day do not form a Gregorian date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidHour indicates an hour outside 0..23.
	ErrInvalidHour = errors.New("invalid hour")

	// ErrRateLimited indicates the subject exceeded its request budget.
	ErrRateLimited = errors.New("rate limited")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Chart interpretation is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

// IsBirthInputError reports whether err is one of the birth input validation errors.
func IsBirthInputError(err error) bool {
	return errors.Is(err, ErrInvalidGender) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidHour)
}
