package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/poupanca/poupanca/pkg/plan"
)

// PlanProvider is the slice of the plan store the export handler needs.
type PlanProvider interface {
	Plan(ctx context.Context, id string) (plan.SavingsPlan, error)
}

type Handler struct {
	plans    PlanProvider
	renderer *CsvEntriesRenderer
}

func NewHandler(plans PlanProvider, renderer *CsvEntriesRenderer) *Handler {
	return &Handler{plans: plans, renderer: renderer}
}

// ExportEntries streams a plan's schedule as a CSV download. Export is
// a premium feature; without the entitlement the request is rejected
// with an explicit upgrade-required response.
func (h *Handler) ExportEntries(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["planId"]

	p, err := h.plans.Plan(r.Context(), planID)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !p.IsPremium {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":           plan.ErrPremiumRequired.Error(),
			"upgradeRequired": true,
		})
		return
	}

	rendered, err := h.renderer.RenderEntries(p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_poupanca.csv", strings.ToLower(p.Title))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rendered))
}
