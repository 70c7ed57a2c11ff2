package plan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poupanca/poupanca/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var defaultNewPlanTarget = decimal.NewFromInt(5000)

// Store owns the plan collection and the active-plan pointer. It is the
// single source of truth: every mutation builds a new collection value
// under the lock (copy-on-write) and writes the whole collection
// through to the repo. Readers always observe a consistent snapshot.
//
// Persistence is write-through but fire-and-forget: a failed save is
// logged and never fails the mutation, so at most the latest mutation
// can be lost on a crash.
type Store struct {
	mu    sync.RWMutex
	repo  Repo
	clock utils.Clock

	plans    []SavingsPlan
	activeID string
}

func NewStore(repo Repo, clock utils.Clock) *Store {
	return &Store{repo: repo, clock: clock}
}

// Load rehydrates the collection from the repo, seeding a single
// default plan when nothing was persisted yet. A parse error is fatal
// to the caller; corrupt state is never silently discarded.
func (s *Store) Load(ctx context.Context) error {
	plans, found, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !found || len(plans) == 0 {
		plans = []SavingsPlan{NewDefaultPlan(s.clock.Now())}
		s.plans = plans
		s.activeID = plans[0].ID
		s.persist(ctx)
		return nil
	}

	s.plans = plans
	s.activeID = plans[0].ID
	return nil
}

// persist writes the collection through to the repo. Callers must hold
// the lock. Failures are logged only.
func (s *Store) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.plans); err != nil {
		log.Errorf("failed to persist plan collection: %v", err)
	}
}

// activeIndex resolves the active pointer, falling back to the first
// plan when the stored id is stale. Callers must hold the lock.
func (s *Store) activeIndex() int {
	if idx := findPlan(s.plans, s.activeID); idx >= 0 {
		return idx
	}
	return 0
}

// Plans returns a snapshot of the whole collection.
func (s *Store) Plans(ctx context.Context) []SavingsPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePlans(s.plans)
}

// Plan returns a snapshot of a single plan.
func (s *Store) Plan(ctx context.Context, id string) (SavingsPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := findPlan(s.plans, id)
	if idx < 0 {
		return SavingsPlan{}, ErrPlanNotFound
	}
	return clonePlan(s.plans[idx]), nil
}

// ActivePlan returns a snapshot of the currently active plan.
func (s *Store) ActivePlan(ctx context.Context) (SavingsPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.plans) == 0 {
		return SavingsPlan{}, fmt.Errorf("plan collection is not loaded")
	}
	return clonePlan(s.plans[s.activeIndex()]), nil
}

// ActiveID returns the id the active pointer currently resolves to.
func (s *Store) ActiveID(ctx context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.plans) == 0 {
		return ""
	}
	return s.plans[s.activeIndex()].ID
}

// SetActivePlan moves the active pointer. Unknown ids leave the pointer
// untouched.
func (s *Store) SetActivePlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if findPlan(s.plans, id) < 0 {
		return ErrPlanNotFound
	}
	s.activeID = id
	return nil
}

// ToggleEntry flips the saved flag of one month. Other entries are
// untouched.
func (s *Store) ToggleEntry(ctx context.Context, planID string, month int) (SavingsPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findPlan(s.plans, planID)
	if idx < 0 {
		return SavingsPlan{}, ErrPlanNotFound
	}

	plans := clonePlans(s.plans)
	entryIdx := -1
	for i, e := range plans[idx].Entries {
		if e.Month == month {
			entryIdx = i
			break
		}
	}
	if entryIdx < 0 {
		return SavingsPlan{}, ErrMonthNotFound
	}
	plans[idx].Entries[entryIdx].IsSaved = !plans[idx].Entries[entryIdx].IsSaved

	s.plans = plans
	s.persist(ctx)
	return clonePlan(plans[idx]), nil
}

// AddPlan creates a new goal. Creation beyond the first plan is a
// premium feature of the requesting (active) plan; without the
// entitlement the mutation is rejected with ErrPremiumRequired.
// The new plan starts in individual mode, inherits the premium flag and
// becomes active.
func (s *Store) AddPlan(ctx context.Context, title string, target decimal.Decimal) (SavingsPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.plans[s.activeIndex()]
	if !active.IsPremium && len(s.plans) >= 1 {
		return SavingsPlan{}, ErrPremiumRequired
	}

	if target.IsZero() {
		target = defaultNewPlanTarget
	}
	newPlan := SavingsPlan{
		ID:        uuid.NewString(),
		Title:     title,
		Target:    target,
		Entries:   DefaultEntries(),
		IsPremium: active.IsPremium,
		CreatedAt: s.clock.Now().UnixMilli(),
	}

	plans := append(clonePlans(s.plans), newPlan)
	s.plans = plans
	s.activeID = newPlan.ID
	s.persist(ctx)
	return clonePlan(newPlan), nil
}

// DeletePlan removes a plan. The collection never shrinks to zero; when
// the active plan is removed the pointer moves to the first remaining
// plan.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.plans) <= 1 {
		return ErrLastPlan
	}
	idx := findPlan(s.plans, id)
	if idx < 0 {
		return ErrPlanNotFound
	}

	plans := clonePlans(s.plans)
	plans = append(plans[:idx], plans[idx+1:]...)
	s.plans = plans
	if s.activeID == id {
		s.activeID = plans[0].ID
	}
	s.persist(ctx)
	return nil
}

// SetCoupleMode flips the contribution multiplier for one plan.
func (s *Store) SetCoupleMode(ctx context.Context, planID string, enabled bool) (SavingsPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findPlan(s.plans, planID)
	if idx < 0 {
		return SavingsPlan{}, ErrPlanNotFound
	}
	plans := clonePlans(s.plans)
	plans[idx].IsCouple = enabled
	s.plans = plans
	s.persist(ctx)
	return clonePlan(plans[idx]), nil
}

// SetPremiumForAll applies the tier uniformly to every plan in the
// collection. It models a one-time account-wide purchase, not a
// per-plan entitlement.
func (s *Store) SetPremiumForAll(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans := clonePlans(s.plans)
	for i := range plans {
		plans[i].IsPremium = enabled
	}
	s.plans = plans
	s.persist(ctx)
	return nil
}

// ApplyGeneratedSchedule atomically replaces the plan's target and all
// 12 entries. Anything other than exactly 12 values is rejected without
// touching the plan.
func (s *Store) ApplyGeneratedSchedule(ctx context.Context, planID string, target decimal.Decimal, values []decimal.Decimal) (SavingsPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(values) != MonthsPerPlan {
		return SavingsPlan{}, ErrInvalidSchedule
	}
	idx := findPlan(s.plans, planID)
	if idx < 0 {
		return SavingsPlan{}, ErrPlanNotFound
	}

	entries := make([]Entry, 0, MonthsPerPlan)
	for i, v := range values {
		entries = append(entries, Entry{Month: i + 1, Value: v})
	}
	plans := clonePlans(s.plans)
	plans[idx].Target = target
	plans[idx].Entries = entries
	s.plans = plans
	s.persist(ctx)
	return clonePlan(plans[idx]), nil
}

// ResetProgress clears the saved flag on every entry of a plan. Values
// and target are untouched.
func (s *Store) ResetProgress(ctx context.Context, planID string) (SavingsPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findPlan(s.plans, planID)
	if idx < 0 {
		return SavingsPlan{}, ErrPlanNotFound
	}
	plans := clonePlans(s.plans)
	for i := range plans[idx].Entries {
		plans[idx].Entries[i].IsSaved = false
	}
	s.plans = plans
	s.persist(ctx)
	return clonePlan(plans[idx]), nil
}

// ToggleReminders flips the reminder on or off, creating the default
// settings (daily at 09:00) the first time a plan configures reminders.
func (s *Store) ToggleReminders(ctx context.Context, planID string) (NotificationSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findPlan(s.plans, planID)
	if idx < 0 {
		return NotificationSettings{}, ErrPlanNotFound
	}
	plans := clonePlans(s.plans)
	settings := reminderSettingsOrDefault(plans[idx].NotificationSettings)
	settings.Enabled = !settings.Enabled
	plans[idx].NotificationSettings = &settings
	s.plans = plans
	s.persist(ctx)
	return settings, nil
}

// UpdateReminderSettings changes the cadence and time of day of a
// plan's reminder, creating the default settings when absent.
func (s *Store) UpdateReminderSettings(ctx context.Context, planID string, frequency Frequency, timeOfDay string) (NotificationSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if frequency != FrequencyDaily && frequency != FrequencyWeekly {
		return NotificationSettings{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidReminder, frequency)
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return NotificationSettings{}, fmt.Errorf("%w: time must be HH:MM, got %q", ErrInvalidReminder, timeOfDay)
	}
	idx := findPlan(s.plans, planID)
	if idx < 0 {
		return NotificationSettings{}, ErrPlanNotFound
	}

	plans := clonePlans(s.plans)
	settings := reminderSettingsOrDefault(plans[idx].NotificationSettings)
	settings.Frequency = frequency
	settings.Time = timeOfDay
	plans[idx].NotificationSettings = &settings
	s.plans = plans
	s.persist(ctx)
	return settings, nil
}

// RecordReminderFired stamps the last firing time. The timestamp is
// monotonically non-decreasing; a stale timestamp is ignored.
func (s *Store) RecordReminderFired(ctx context.Context, planID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findPlan(s.plans, planID)
	if idx < 0 {
		return ErrPlanNotFound
	}
	plans := clonePlans(s.plans)
	settings := plans[idx].NotificationSettings
	if settings == nil {
		return fmt.Errorf("%w: reminders are not configured for plan %s", ErrInvalidReminder, planID)
	}
	millis := at.UnixMilli()
	if settings.LastNotifiedAt != nil && *settings.LastNotifiedAt > millis {
		return nil
	}
	settings.LastNotifiedAt = &millis
	s.plans = plans
	s.persist(ctx)
	return nil
}

// reminderSettingsOrDefault returns a copy of the settings, or the
// defined default (disabled, daily, 09:00) when never configured.
func reminderSettingsOrDefault(settings *NotificationSettings) NotificationSettings {
	if settings == nil {
		return NotificationSettings{
			Frequency: FrequencyDaily,
			Time:      "09:00",
		}
	}
	return *settings
}
