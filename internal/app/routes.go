package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Savings plans
	r.HandleFunc("/api/plan", deps.PlanHandler.ListPlans).Methods("GET")
	r.HandleFunc("/api/plan", deps.PlanHandler.CreatePlan).Methods("POST")
	r.HandleFunc("/api/plan/active", deps.PlanHandler.GetActivePlan).Methods("GET")
	r.HandleFunc("/api/plan/active", deps.PlanHandler.SetActivePlan).Methods("PUT")
	r.HandleFunc("/api/plan/{planId}", deps.PlanHandler.DeletePlan).Methods("DELETE")

	// Monthly entries
	r.HandleFunc("/api/plan/{planId}/entry/{month}/toggle", deps.PlanHandler.ToggleEntry).Methods("POST")
	r.HandleFunc("/api/plan/{planId}/couple", deps.PlanHandler.SetCoupleMode).Methods("PUT")
	r.HandleFunc("/api/plan/{planId}/reset", deps.PlanHandler.ResetProgress).Methods("POST")

	// Reminders
	r.HandleFunc("/api/plan/{planId}/reminders/toggle", deps.PlanHandler.ToggleReminders).Methods("POST")
	r.HandleFunc("/api/plan/{planId}/reminders", deps.PlanHandler.UpdateReminders).Methods("PUT")

	// Progress
	r.HandleFunc("/api/progress", deps.ProgressHandler.GetProgress).Methods("GET")
	r.HandleFunc("/api/plan/{planId}/progress", deps.ProgressHandler.GetProgress).Methods("GET")

	// Premium tier
	r.HandleFunc("/api/premium", deps.PlanHandler.SetPremium).Methods("PUT")

	// Advice + generated schedules
	r.HandleFunc("/api/advice", deps.AdviceHandler.GetAdvice).Methods("GET")
	r.HandleFunc("/api/plan/{planId}/schedule", deps.AdviceHandler.GenerateSchedule).Methods("POST")

	// Export (premium)
	r.HandleFunc("/api/plan/{planId}/export", deps.ExportHandler.ExportEntries).Methods("GET")

	// Onboarding walkthrough
	r.HandleFunc("/api/onboarding", deps.OnboardingHandler.GetStatus).Methods("GET")
	r.HandleFunc("/api/onboarding", deps.OnboardingHandler.Complete).Methods("PUT")
	r.HandleFunc("/api/onboarding", deps.OnboardingHandler.Replay).Methods("DELETE")
}
