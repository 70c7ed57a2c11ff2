package plan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Entry is a single month's planned contribution. Value is the amount
// under the individual (non-multiplied) rate.
type Entry struct {
	Month   int             `json:"month"`
	Value   decimal.Decimal `json:"value"`
	IsSaved bool            `json:"isSaved"`
}

// NotificationSettings configures the reminder for one plan. A nil
// settings pointer on a plan means reminders were never configured.
type NotificationSettings struct {
	Enabled   bool      `json:"enabled"`
	Frequency Frequency `json:"frequency"`
	// Time is the wall-clock time of day the reminder fires, "HH:MM".
	Time string `json:"time"`
	// LastNotifiedAt is the epoch-millisecond timestamp of the last fire.
	// It never decreases once set.
	LastNotifiedAt *int64 `json:"lastNotifiedAt,omitempty"`
}

// SavingsPlan is a named savings goal: exactly 12 monthly entries, a
// couple/individual multiplier and an account-wide premium flag.
// Target is informational; progress is computed from summed entries.
type SavingsPlan struct {
	ID                   string                `json:"id"`
	Title                string                `json:"title"`
	Target               decimal.Decimal       `json:"target"`
	Entries              []Entry               `json:"entries"`
	IsCouple             bool                  `json:"isCouple"`
	IsPremium            bool                  `json:"isPremium"`
	CreatedAt            int64                 `json:"createdAt,omitempty"`
	NotificationSettings *NotificationSettings `json:"notificationSettings,omitempty"`
}

// Multiplier returns 2 in couple mode, 1 otherwise.
func (p SavingsPlan) Multiplier() int64 {
	if p.IsCouple {
		return 2
	}
	return 1
}

const (
	// MonthsPerPlan is the fixed length of every plan's schedule.
	MonthsPerPlan = 12

	// FallbackPlanID is assigned when a legacy single-plan state is
	// migrated into a collection and carries no identifier.
	FallbackPlanID = "default-plan"

	defaultTitle = "Juntando 10K"
)

// initialValues sum to 5000; doubled by couple mode they match the
// default plan's 10000 target.
var initialValues = []int64{120, 180, 230, 270, 360, 430, 450, 530, 550, 600, 630, 650}

// DefaultEntries returns a fresh 12-month schedule with the seeded
// values and nothing marked as saved.
func DefaultEntries() []Entry {
	entries := make([]Entry, 0, MonthsPerPlan)
	for i, v := range initialValues {
		entries = append(entries, Entry{
			Month: i + 1,
			Value: decimal.NewFromInt(v),
		})
	}
	return entries
}

// NewDefaultPlan builds the plan seeded on first start: couple mode on,
// non-premium.
func NewDefaultPlan(now time.Time) SavingsPlan {
	return SavingsPlan{
		ID:        FallbackPlanID,
		Title:     defaultTitle,
		Target:    decimal.NewFromInt(10000),
		Entries:   DefaultEntries(),
		IsCouple:  true,
		CreatedAt: now.UnixMilli(),
	}
}

func clonePlan(p SavingsPlan) SavingsPlan {
	entries := make([]Entry, len(p.Entries))
	copy(entries, p.Entries)
	p.Entries = entries
	if p.NotificationSettings != nil {
		settings := *p.NotificationSettings
		p.NotificationSettings = &settings
	}
	return p
}

func clonePlans(plans []SavingsPlan) []SavingsPlan {
	cloned := make([]SavingsPlan, 0, len(plans))
	for _, p := range plans {
		cloned = append(cloned, clonePlan(p))
	}
	return cloned
}

func findPlan(plans []SavingsPlan, id string) int {
	for idx, p := range plans {
		if p.ID == id {
			return idx
		}
	}
	return -1
}
