// Package clock supplies document identifiers and creation timestamps.
package clock

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the persisted timestamp format: UTC, second precision, literal Z.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Provider generates identifiers and timestamps for new documents.
type Provider interface {
	NewID() string
	Now() string
}

// System is the production Provider backed by uuid v4 and the wall clock.
type System struct{}

// NewID returns a random UUID string.
func (System) NewID() string { return uuid.NewString() }

// Now returns the current UTC time formatted with TimestampLayout.
func (System) Now() string { return Format(time.Now()) }

// Format renders t in UTC with TimestampLayout, dropping sub-second precision.
func Format(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimestampLayout)
}
