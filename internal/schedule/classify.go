package schedule

import (
	"errors"
	"time"

	"eldercare-backend/internal/model"
)

// LateThreshold is how long after the scheduled time an intake still counts
// as taken on time.
const LateThreshold = time.Hour

// ErrNotResolvable means the occurrence cannot be classified yet: nothing
// was taken and the occurrence window has not elapsed. Callers must not
// write an IntakeLog in that case.
var ErrNotResolvable = errors.New("occurrence not yet resolvable")

// Classify assigns an intake status to one occurrence.
//
//	takenAt set, within LateThreshold of scheduledAt  -> TAKEN
//	takenAt set, later than that                      -> LATE
//	takenAt absent, window elapsed                    -> MISSED
//	takenAt absent, window still open                 -> ErrNotResolvable
//
// An explicit skip does not go through Classify; the caller records SKIPPED
// directly since it is a user decision, not a timing outcome.
func Classify(scheduledAt time.Time, takenAt *time.Time, now time.Time) (model.IntakeStatus, error) {
	deadline := scheduledAt.Add(LateThreshold)
	if takenAt != nil {
		if takenAt.After(deadline) {
			return model.IntakeLate, nil
		}
		return model.IntakeTaken, nil
	}
	if now.After(deadline) {
		return model.IntakeMissed, nil
	}
	return "", ErrNotResolvable
}
