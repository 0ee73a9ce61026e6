package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eldercare-backend/internal/model"
)

func TestClassify(t *testing.T) {
	scheduled := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

	timeAt := func(offset time.Duration) *time.Time {
		ts := scheduled.Add(offset)
		return &ts
	}

	testCases := []struct {
		name    string
		takenAt *time.Time
		now     time.Time
		want    model.IntakeStatus
		wantErr error
	}{
		{
			name:    "taken exactly on time",
			takenAt: timeAt(0),
			now:     scheduled,
			want:    model.IntakeTaken,
		},
		{
			name:    "taken 59 minutes in is on time",
			takenAt: timeAt(59 * time.Minute),
			now:     scheduled.Add(59 * time.Minute),
			want:    model.IntakeTaken,
		},
		{
			name:    "taken at the threshold is still on time",
			takenAt: timeAt(time.Hour),
			now:     scheduled.Add(time.Hour),
			want:    model.IntakeTaken,
		},
		{
			name:    "taken 61 minutes in is late",
			takenAt: timeAt(61 * time.Minute),
			now:     scheduled.Add(61 * time.Minute),
			want:    model.IntakeLate,
		},
		{
			name:    "taken early is on time",
			takenAt: timeAt(-30 * time.Minute),
			now:     scheduled,
			want:    model.IntakeTaken,
		},
		{
			name:    "untaken before the scheduled time is not resolvable",
			takenAt: nil,
			now:     scheduled.Add(-time.Minute),
			wantErr: ErrNotResolvable,
		},
		{
			name:    "untaken inside the grace window is not resolvable",
			takenAt: nil,
			now:     scheduled.Add(30 * time.Minute),
			wantErr: ErrNotResolvable,
		},
		{
			name:    "untaken after the window elapsed is missed",
			takenAt: nil,
			now:     scheduled.Add(time.Hour + time.Second),
			want:    model.IntakeMissed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(scheduled, tc.takenAt, tc.now)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
