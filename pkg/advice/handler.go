package advice

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/poupanca/poupanca/pkg/plan"
	"github.com/poupanca/poupanca/pkg/progress"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	client Client
	store  *plan.Store
}

func NewHandler(client Client, store *plan.Store) *Handler {
	return &Handler{client: client, store: store}
}

// GetAdvice returns motivational advice for the active plan. The
// collaborator never propagates an error; a degraded fixed string is
// the worst case.
func (h *Handler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	active, err := h.store.ActivePlan(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	summary := progress.Calculate(active)

	text := h.client.GetAdvice(r.Context(), AdviceRequest{
		CurrentTotal: summary.CurrentTotal,
		Target:       summary.NominalTarget,
		IsCouple:     active.IsCouple,
		IsPremium:    active.IsPremium,
	})

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"advice": text}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GenerateSchedule asks the collaborator for a progressive 12-month
// schedule for the requested total and applies it atomically. The
// target sent to the generator is per multiplier unit: couple plans
// request half of the total, as each entry value is the individual rate.
func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	log.Debug("Generating custom schedule")
	w.Header().Set("Content-Type", "application/json")
	planID := mux.Vars(r)["planId"]

	var scheduleDTO struct {
		Target float64 `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&scheduleDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if scheduleDTO.Target <= 0 {
		http.Error(w, "target must be positive", http.StatusBadRequest)
		return
	}

	p, err := h.store.Plan(r.Context(), planID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	target := decimal.NewFromFloat(scheduleDTO.Target)
	perUnit := target.Div(decimal.NewFromInt(p.Multiplier()))

	values, err := h.client.GenerateSchedule(r.Context(), perUnit, plan.MonthsPerPlan)
	if err != nil {
		// Generation failure must leave the plan untouched.
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": ErrGenerationFailed.Error()})
		return
	}

	updated, err := h.store.ApplyGeneratedSchedule(r.Context(), planID, target, values)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(plan.PlanToDTO(updated, updated.ID == h.store.ActiveID(r.Context()))); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
