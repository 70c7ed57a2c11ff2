package reminder

import (
	"time"

	"github.com/poupanca/poupanca/pkg/plan"
)

// WeeklyFireDay is the designated day for weekly reminders.
const WeeklyFireDay = time.Sunday

// ShouldFire decides whether a plan's reminder is due at the given
// instant. The check is level-triggered and evaluated once per minute:
// the wall-clock "HH:MM" must match exactly, weekly reminders only fire
// on Sunday, and a previous fire on the same local calendar date
// suppresses the reminder for the rest of the day. The same-day guard
// is what keeps repeated polls within the matching minute idempotent.
func ShouldFire(settings *plan.NotificationSettings, now time.Time) bool {
	if settings == nil || !settings.Enabled {
		return false
	}
	if now.Format("15:04") != settings.Time {
		return false
	}
	if settings.Frequency == plan.FrequencyWeekly && now.Weekday() != WeeklyFireDay {
		return false
	}
	if settings.LastNotifiedAt != nil {
		last := time.UnixMilli(*settings.LastNotifiedAt).In(now.Location())
		if sameDate(last, now) {
			return false
		}
	}
	return true
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
