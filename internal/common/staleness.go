// Package common provides shared configuration, logging, and utility
// helpers used across the application.
package common

import (
	"fmt"
	"time"
)

// StalenessResult contains the result of a cache freshness check.
type StalenessResult struct {
	// IsStale indicates the cached payload should be refetched.
	IsStale bool
	// Reason provides a human-readable explanation for the decision.
	Reason string
}

// CheckPayloadStaleness determines whether a cached provider payload is
// still usable. Nonprofit filing data changes at most a few times a year,
// so a generous window is safe; a zero or negative maxAge disables
// caching entirely.
func CheckPayloadStaleness(fetchedAt, now time.Time, maxAge time.Duration) StalenessResult {
	if maxAge <= 0 {
		return StalenessResult{
			IsStale: true,
			Reason:  "caching disabled (max_age <= 0)",
		}
	}

	age := now.Sub(fetchedAt)
	if age < 0 {
		// Clock skew: a payload from the future is treated as stale so it
		// gets refetched with a sane timestamp.
		return StalenessResult{
			IsStale: true,
			Reason:  "payload timestamp is in the future",
		}
	}

	if age > maxAge {
		return StalenessResult{
			IsStale: true,
			Reason:  fmt.Sprintf("payload is %s old, past the %s window", age.Round(time.Minute), maxAge),
		}
	}

	return StalenessResult{
		IsStale: false,
		Reason:  fmt.Sprintf("payload is %s old, within the %s window", age.Round(time.Minute), maxAge),
	}
}
