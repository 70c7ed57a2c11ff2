package app

import (
	"database/sql"

	"github.com/poupanca/poupanca/internal/config"
	"github.com/poupanca/poupanca/internal/storage"
	"github.com/poupanca/poupanca/internal/utils"
	"github.com/poupanca/poupanca/pkg/advice"
	"github.com/poupanca/poupanca/pkg/export"
	"github.com/poupanca/poupanca/pkg/onboarding"
	"github.com/poupanca/poupanca/pkg/plan"
	"github.com/poupanca/poupanca/pkg/progress"
	"github.com/poupanca/poupanca/pkg/reminder"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Storage storage.Store

	PlanRepo    plan.Repo
	PlanStore   *plan.Store
	PlanHandler *plan.Handler

	ProgressHandler *progress.Handler

	AdviceClient  advice.Client
	AdviceHandler *advice.Handler

	ExportRenderer *export.CsvEntriesRenderer
	ExportHandler  *export.Handler

	OnboardingService onboarding.Service
	OnboardingHandler *onboarding.Handler

	Notifier  reminder.Notifier
	Scheduler *reminder.Scheduler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.Storage = storage.NewSQLStore(db)

	deps.PlanRepo = plan.NewStorageRepo(deps.Storage)
	deps.PlanStore = plan.NewStore(deps.PlanRepo, deps.Clock)
	deps.PlanHandler = plan.NewHandler(deps.PlanStore)

	deps.ProgressHandler = progress.NewHandler(deps.PlanStore)

	deps.AdviceClient = advice.NewGeminiClient(cfg.Advice)
	deps.AdviceHandler = advice.NewHandler(deps.AdviceClient, deps.PlanStore)

	deps.ExportRenderer = export.NewCsvEntriesRenderer()
	deps.ExportHandler = export.NewHandler(deps.PlanStore, deps.ExportRenderer)

	deps.OnboardingService = onboarding.NewService(deps.Storage)
	deps.OnboardingHandler = onboarding.NewHandler(deps.OnboardingService)

	var primary reminder.Notifier
	if cfg.Notifier.WebhookURL != "" {
		primary = reminder.NewWebhookNotifier(cfg.Notifier.WebhookURL)
	}
	deps.Notifier = reminder.NewFallbackNotifier(primary, reminder.NewAlertNotifier())
	deps.Scheduler = reminder.NewScheduler(deps.PlanStore, deps.Notifier, deps.Clock)

	return deps
}
