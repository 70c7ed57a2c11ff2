package plan

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/poupanca/poupanca/internal/storage"
	"github.com/poupanca/poupanca/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*mux.Router, *Store) {
	t.Helper()
	stub := storage.NewStubStore()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := NewStore(NewStorageRepo(stub), clock)
	require.NoError(t, store.Load(ctx))

	handler := NewHandler(store)
	r := mux.NewRouter()
	r.HandleFunc("/api/plan", handler.ListPlans).Methods("GET")
	r.HandleFunc("/api/plan", handler.CreatePlan).Methods("POST")
	r.HandleFunc("/api/plan/{planId}", handler.DeletePlan).Methods("DELETE")
	r.HandleFunc("/api/plan/{planId}/entry/{month}/toggle", handler.ToggleEntry).Methods("POST")
	r.HandleFunc("/api/premium", handler.SetPremium).Methods("PUT")
	return r, store
}

func TestHandler_CreatePlan(t *testing.T) {
	t.Run("without premium responds 402 with an upgrade marker", func(t *testing.T) {
		router, _ := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"title":"Viagem"}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Contains(t, rec.Body.String(), `"upgradeRequired":true`)
	})

	t.Run("with premium creates and returns the plan", func(t *testing.T) {
		router, store := newTestRouter(t)
		require.NoError(t, store.SetPremiumForAll(ctx, true))
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"title":"Viagem","target":8000}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"title":"Viagem"`)
		assert.Len(t, store.Plans(ctx), 2)
	})

	t.Run("missing title is a validation error", func(t *testing.T) {
		router, _ := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_DeletePlan(t *testing.T) {
	t.Run("deleting the last plan is a conflict", func(t *testing.T) {
		router, _ := newTestRouter(t)
		req := httptest.NewRequest(http.MethodDelete, "/api/plan/"+FallbackPlanID, nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_ToggleEntry(t *testing.T) {
	t.Run("toggles a month and returns the updated plan", func(t *testing.T) {
		router, store := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/api/plan/"+FallbackPlanID+"/entry/3/toggle", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		p, err := store.Plan(ctx, FallbackPlanID)
		require.NoError(t, err)
		assert.True(t, p.Entries[2].IsSaved)
	})

	t.Run("unknown month is 404", func(t *testing.T) {
		router, _ := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/api/plan/"+FallbackPlanID+"/entry/42/toggle", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
