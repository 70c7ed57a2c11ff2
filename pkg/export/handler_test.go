package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/poupanca/poupanca/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlanProvider struct {
	plans map[string]plan.SavingsPlan
}

func (s *stubPlanProvider) Plan(ctx context.Context, id string) (plan.SavingsPlan, error) {
	p, ok := s.plans[id]
	if !ok {
		return plan.SavingsPlan{}, plan.ErrPlanNotFound
	}
	return p, nil
}

func newExportRouter(plans map[string]plan.SavingsPlan) *mux.Router {
	handler := NewHandler(&stubPlanProvider{plans: plans}, NewCsvEntriesRenderer())
	r := mux.NewRouter()
	r.HandleFunc("/api/plan/{planId}/export", handler.ExportEntries).Methods("GET")
	return r
}

func TestHandler_ExportEntries(t *testing.T) {
	premium := plan.NewDefaultPlan(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	premium.IsPremium = true
	free := plan.NewDefaultPlan(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	free.ID = "free-plan"

	router := newExportRouter(map[string]plan.SavingsPlan{
		premium.ID: premium,
		free.ID:    free,
	})

	t.Run("premium plan downloads CSV", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/plan/"+premium.ID+"/export", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "juntando 10k_poupanca.csv")
		assert.Contains(t, rec.Body.String(), "Mes,Valor,Poupado")
	})

	t.Run("non-premium plan gets an upgrade-required rejection", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/plan/free-plan/export", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Contains(t, rec.Body.String(), "upgradeRequired")
	})

	t.Run("unknown plan is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/plan/missing/export", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
