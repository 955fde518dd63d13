package models

import "time"

// touch stamps a record for a write. CreatedAt is only set the first time.
func touch(createdAt, updatedAt *time.Time, now time.Time) {
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
