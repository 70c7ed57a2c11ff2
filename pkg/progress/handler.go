package progress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/poupanca/poupanca/pkg/plan"
)

// PlanProvider is the slice of the plan store the progress handler
// needs.
type PlanProvider interface {
	Plan(ctx context.Context, id string) (plan.SavingsPlan, error)
	ActivePlan(ctx context.Context) (plan.SavingsPlan, error)
}

type SummaryDTO struct {
	CurrentTotal    float64 `json:"currentTotal"`
	NominalTarget   float64 `json:"nominalTarget"`
	Percentage      int64   `json:"percentage"`
	MonthsCompleted int     `json:"monthsCompleted"`
}

type Handler struct {
	plans PlanProvider
}

func NewHandler(plans PlanProvider) *Handler {
	return &Handler{plans: plans}
}

// GetProgress returns the derived metrics for one plan, or for the
// active plan when no planId is present in the route.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var p plan.SavingsPlan
	var err error
	if planID, ok := mux.Vars(r)["planId"]; ok {
		p, err = h.plans.Plan(r.Context(), planID)
	} else {
		p, err = h.plans.ActivePlan(r.Context())
	}
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	summary := Calculate(p)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SummaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func SummaryToDTO(s Summary) SummaryDTO {
	return SummaryDTO{
		CurrentTotal:    s.CurrentTotal.InexactFloat64(),
		NominalTarget:   s.NominalTarget.InexactFloat64(),
		Percentage:      s.Percentage,
		MonthsCompleted: s.MonthsCompleted,
	}
}
