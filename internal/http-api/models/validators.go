package models

import (
	"errors"
	"time"
)

var (
	ErrScoreOutOfRange = errors.New("score must be between 1 and 10")
	ErrYearInFuture    = errors.New("year must not exceed the current year")
)

// ValidateScore is the single source of truth for the review score range.
// Both the request-shape layer and the review service call it, so the
// error message is identical no matter which layer rejects first.
func ValidateScore(score int) error {
	if score < 1 || score > 10 {
		return ErrScoreOutOfRange
	}
	return nil
}

func ValidateYear(year int) error {
	if year > time.Now().Year() {
		return ErrYearInFuture
	}
	return nil
}
