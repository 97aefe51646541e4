package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kennelbot/kennel/internal/execution"
	"github.com/kennelbot/kennel/internal/rebalance"
	"github.com/kennelbot/kennel/internal/scheduler"
	"github.com/kennelbot/kennel/internal/selection"
	"github.com/kennelbot/kennel/internal/strategyconfig"
	"github.com/kennelbot/kennel/pkg/logger"
)

// Handler serves the read-only status endpoints.
type Handler struct {
	broker       execution.Broker
	ranker       *selection.Ranker
	orchestrator *rebalance.Orchestrator
	scheduler    *scheduler.Scheduler
	strategy     *strategyconfig.Config
	logger       *logger.Logger
	startedAt    time.Time
}

// NewHandler creates the status API handler
func NewHandler(
	broker execution.Broker,
	ranker *selection.Ranker,
	orchestrator *rebalance.Orchestrator,
	sched *scheduler.Scheduler,
	strategy *strategyconfig.Config,
	log *logger.Logger,
) *Handler {
	return &Handler{
		broker:       broker,
		ranker:       ranker,
		orchestrator: orchestrator,
		scheduler:    sched,
		strategy:     strategy,
		logger:       log,
		startedAt:    time.Now(),
	}
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "kennel",
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetStrategy handles GET /api/strategy
func (h *Handler) GetStrategy(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategy_id":      h.strategy.Meta.StrategyID,
		"version":          h.strategy.Meta.Version,
		"universe":         h.strategy.Universe,
		"universe_size":    len(h.strategy.Universe),
		"top_n":            h.strategy.Selection.TopN,
		"capital_usd":      h.strategy.Allocation.CapitalUSD,
		"rebalance_month":  h.strategy.Rebalance.Month,
		"day_window":       h.strategy.Rebalance.DayWindow,
		"poll_schedule":    h.strategy.Rebalance.PollSchedule,
		"force_on_startup": h.strategy.Rebalance.ForceOnStartup,
	})
}

// GetDogs handles GET /api/dogs. It re-ranks the universe live but
// never submits orders.
func (h *Handler) GetDogs(w http.ResponseWriter, r *http.Request) {
	dogs, degraded := h.ranker.Dogs(r.Context(), h.strategy.Universe, h.strategy.Selection.TopN)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"dogs":            dogs,
		"degraded_quotes": degraded,
		"as_of":           time.Now().UTC().Format(time.RFC3339),
	})
}

// GetPositions handles GET /api/positions
func (h *Handler) GetPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.broker.ListPositions(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list positions")
		respondError(w, http.StatusBadGateway, "failed to read positions from broker")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"positions": positions,
		"count":     len(positions),
	})
}

// GetRuns handles GET /api/runs
func (h *Handler) GetRuns(w http.ResponseWriter, r *http.Request) {
	runs := h.orchestrator.History()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// GetScheduler handles GET /api/scheduler
func (h *Handler) GetScheduler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"jobs": h.scheduler.GetJobStats(),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
