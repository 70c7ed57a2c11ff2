package plan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type EntryDTO struct {
	Month   int     `json:"month"`
	Value   float64 `json:"value"`
	IsSaved bool    `json:"isSaved"`
}

type NotificationSettingsDTO struct {
	Enabled        bool   `json:"enabled"`
	Frequency      string `json:"frequency"`
	Time           string `json:"time"`
	LastNotifiedAt *int64 `json:"lastNotifiedAt,omitempty"`
}

type PlanDTO struct {
	ID                   string                   `json:"id"`
	Title                string                   `json:"title"`
	Target               float64                  `json:"target"`
	Entries              []EntryDTO               `json:"entries"`
	IsCouple             bool                     `json:"isCouple"`
	IsPremium            bool                     `json:"isPremium"`
	CreatedAt            int64                    `json:"createdAt,omitempty"`
	NotificationSettings *NotificationSettingsDTO `json:"notificationSettings,omitempty"`
	Active               bool                     `json:"active"`
}

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	plans := h.store.Plans(r.Context())
	activeID := h.store.ActiveID(r.Context())

	plansDTO := make([]PlanDTO, 0, len(plans))
	for _, p := range plans {
		plansDTO = append(plansDTO, PlanToDTO(p, p.ID == activeID))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(plansDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new savings plan")
	w.Header().Set("Content-Type", "application/json")

	var createDTO struct {
		Title  string  `json:"title"`
		Target float64 `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if createDTO.Title == "" {
		http.Error(w, "plan title is required", http.StatusBadRequest)
		return
	}

	created, err := h.store.AddPlan(r.Context(), createDTO.Title, decimal.NewFromFloat(createDTO.Target))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(PlanToDTO(created, true)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["planId"]

	if err := h.store.DeletePlan(r.Context(), planID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetActivePlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	active, err := h.store.ActivePlan(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PlanToDTO(active, true)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) SetActivePlan(w http.ResponseWriter, r *http.Request) {
	var selectDTO struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&selectDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.SetActivePlan(r.Context(), selectDTO.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ToggleEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	planID := vars["planId"]
	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	updated, err := h.store.ToggleEntry(r.Context(), planID, month)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PlanToDTO(updated, updated.ID == h.store.ActiveID(r.Context()))); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) SetCoupleMode(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planID := mux.Vars(r)["planId"]

	var modeDTO struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&modeDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.store.SetCoupleMode(r.Context(), planID, modeDTO.Enabled)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PlanToDTO(updated, updated.ID == h.store.ActiveID(r.Context()))); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planID := mux.Vars(r)["planId"]

	updated, err := h.store.ResetProgress(r.Context(), planID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PlanToDTO(updated, updated.ID == h.store.ActiveID(r.Context()))); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) SetPremium(w http.ResponseWriter, r *http.Request) {
	var tierDTO struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&tierDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.SetPremiumForAll(r.Context(), tierDTO.Enabled); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ToggleReminders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planID := mux.Vars(r)["planId"]

	settings, err := h.store.ToggleReminders(r.Context(), planID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SettingsToDTO(settings)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateReminders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planID := mux.Vars(r)["planId"]

	var reminderDTO struct {
		Frequency string `json:"frequency"`
		Time      string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reminderDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	settings, err := h.store.UpdateReminderSettings(r.Context(), planID, Frequency(reminderDTO.Frequency), reminderDTO.Time)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SettingsToDTO(settings)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// writeStoreError maps store errors to HTTP statuses. The premium gate
// is surfaced as 402 with an explicit upgrade marker so clients can
// distinguish it from validation failures.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPremiumRequired):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":           ErrPremiumRequired.Error(),
			"upgradeRequired": true,
		})
	case errors.Is(err, ErrPlanNotFound), errors.Is(err, ErrMonthNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrLastPlan):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidSchedule), errors.Is(err, ErrInvalidReminder):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func PlanToDTO(p SavingsPlan, active bool) PlanDTO {
	entries := make([]EntryDTO, 0, len(p.Entries))
	for _, e := range p.Entries {
		entries = append(entries, EntryDTO{
			Month:   e.Month,
			Value:   e.Value.InexactFloat64(),
			IsSaved: e.IsSaved,
		})
	}
	var settings *NotificationSettingsDTO
	if p.NotificationSettings != nil {
		dto := SettingsToDTO(*p.NotificationSettings)
		settings = &dto
	}
	return PlanDTO{
		ID:                   p.ID,
		Title:                p.Title,
		Target:               p.Target.InexactFloat64(),
		Entries:              entries,
		IsCouple:             p.IsCouple,
		IsPremium:            p.IsPremium,
		CreatedAt:            p.CreatedAt,
		NotificationSettings: settings,
		Active:               active,
	}
}

func SettingsToDTO(s NotificationSettings) NotificationSettingsDTO {
	return NotificationSettingsDTO{
		Enabled:        s.Enabled,
		Frequency:      string(s.Frequency),
		Time:           s.Time,
		LastNotifiedAt: s.LastNotifiedAt,
	}
}
