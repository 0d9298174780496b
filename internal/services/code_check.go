package services

import (
	"strconv"
	"time"

	"ehandout_backend/internal/appErrors"
)

// checkCode validates a submitted one-time code against a stored slot.
// The checks run in a fixed order: no pending code, then expiry, then
// match. Unparseable input counts as a mismatch rather than a malformed
// request, so probing with garbage gets the same answer as a wrong code.
func checkCode(stored *int, expiry *time.Time, submitted string, errNoPending, errExpired, errMismatch *appErrors.AppError) error {
	if stored == nil || expiry == nil {
		return errNoPending
	}
	if time.Now().After(*expiry) {
		return errExpired
	}
	code, err := strconv.Atoi(submitted)
	if err != nil || code != *stored {
		return errMismatch
	}
	return nil
}
