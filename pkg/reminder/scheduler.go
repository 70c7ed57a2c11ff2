package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/poupanca/poupanca/internal/utils"
	"github.com/poupanca/poupanca/pkg/plan"
	log "github.com/sirupsen/logrus"
)

const (
	notificationTitle = "Hora de Poupar!"

	pollInterval = time.Minute
)

// PlanStore is the slice of the plan store the scheduler needs: the
// active plan snapshot and the firing stamp.
type PlanStore interface {
	ActivePlan(ctx context.Context) (plan.SavingsPlan, error)
	RecordReminderFired(ctx context.Context, planID string, at time.Time) error
}

// Scheduler polls once per minute and fires the active plan's reminder
// when it is due. Polling with an exact minute match plus the same-day
// guard avoids a persistent timer abstraction; a fire is missed when
// the process is not running at that minute, with no catch-up on the
// next start.
type Scheduler struct {
	store    PlanStore
	notifier Notifier
	clock    utils.Clock
	interval time.Duration
}

func NewScheduler(store PlanStore, notifier Notifier, clock utils.Clock) *Scheduler {
	return &Scheduler{
		store:    store,
		notifier: notifier,
		clock:    clock,
		interval: pollInterval,
	}
}

// Run blocks until ctx is cancelled. The ticker is released on return
// so no timer outlives the owning context.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Infof("reminder scheduler started (interval %s)", s.interval)
	for {
		select {
		case <-ctx.Done():
			log.Info("reminder scheduler stopping")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick performs one level-triggered check of the active plan.
func (s *Scheduler) Tick(ctx context.Context) {
	active, err := s.store.ActivePlan(ctx)
	if err != nil {
		log.Errorf("reminder check could not resolve active plan: %v", err)
		return
	}

	now := s.clock.Now()
	if !ShouldFire(active.NotificationSettings, now) {
		return
	}

	body := fmt.Sprintf("Não esqueça de registrar sua economia de hoje no plano: %s", active.Title)
	if err := s.notifier.Notify(ctx, notificationTitle, body); err != nil {
		log.Errorf("failed to deliver reminder for plan %s: %v", active.ID, err)
	}

	// Stamp the fire even when delivery failed so the same minute does
	// not produce a burst of retries.
	if err := s.store.RecordReminderFired(ctx, active.ID, now); err != nil {
		log.Errorf("failed to record reminder firing for plan %s: %v", active.ID, err)
	}
}
