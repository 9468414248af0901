// Package sim provides the HTTP handlers and orchestration for running
// simulations, ingesting custom return datasets, and serving the
// leaderboard.
//
// All monetary values use shopspring/decimal, never float64.
package sim

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xeniatay/venture-adventure/internal/asset"
	"github.com/xeniatay/venture-adventure/internal/dataset"
	"github.com/xeniatay/venture-adventure/internal/metrics"
	"github.com/xeniatay/venture-adventure/internal/model"
	"github.com/xeniatay/venture-adventure/internal/rank"
	"github.com/xeniatay/venture-adventure/internal/simulate"
	"github.com/xeniatay/venture-adventure/internal/store"
)

// maxDatasetBytes bounds uploaded CSV bodies.
const maxDatasetBytes = 1 << 20

// defaultPlayerName is used when a simulation request carries no name.
const defaultPlayerName = "Analyst"

// Allocation percentages must sum to ~100 before a simulation runs.
var (
	minAllocationTotal = decimal.NewFromFloat(99.99)
	maxAllocationTotal = decimal.NewFromFloat(100.01)
	hundred            = decimal.NewFromInt(100)
)

// Dataset sources reported by GET /api/v1/dataset.
const (
	SourceDefaults = "defaults"
	SourceCustom   = "custom"
)

// Service handles simulation and ingestion. A mutex sequences dataset
// updates against simulations so an upload fully completes (or fully
// fails) before any simulation reads the table.
type Service struct {
	table   *asset.Table
	store   store.Store
	capital decimal.Decimal
	mu      sync.Mutex
	wsHub   *WSHub // optional WebSocket hub for result broadcasts

	source        string
	appliedAssets []string
}

// NewService creates a new simulation service.
// Pass nil for hub if WebSocket broadcasting is not needed.
func NewService(tbl *asset.Table, st store.Store, initialCapital decimal.Decimal, hub *WSHub) *Service {
	return &Service{
		table:   tbl,
		store:   st,
		capital: initialCapital,
		wsHub:   hub,
		source:  SourceDefaults,
	}
}

// --- Request/Response types ---

// SimulateRequest is the JSON body for POST /api/v1/simulate.
// Allocation maps asset ids to percentage points (must sum to ~100).
type SimulateRequest struct {
	Name       string                     `json:"name"`
	Allocation map[string]decimal.Decimal `json:"allocation"`
}

// SimulateResponse is the JSON body returned from POST /api/v1/simulate.
type SimulateResponse struct {
	Result      model.SimulationResult   `json:"result"`
	Benchmarks  []model.Benchmark        `json:"benchmarks"`
	Percentile  decimal.Decimal          `json:"percentile"`
	Entry       model.LeaderboardEntry   `json:"entry"`
	Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
}

// UploadResponse is the JSON body returned from POST /api/v1/dataset.
type UploadResponse struct {
	AppliedAssets []string           `json:"applied_assets"`
	Warnings      []dataset.Warning  `json:"warnings"`
	RowErrors     []dataset.RowError `json:"row_errors"`
	Source        string             `json:"source"`
}

// DatasetStatus is the JSON body returned from GET /api/v1/dataset.
type DatasetStatus struct {
	Source        string   `json:"source"`
	AppliedAssets []string `json:"applied_assets"`
	YearFrom      int      `json:"year_from"`
	YearTo        int      `json:"year_to"`
}

// --- HTTP Handlers ---

// ListAssets handles GET /api/v1/assets
func (s *Service) ListAssets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.table.Assets())
}

// Simulate handles POST /api/v1/simulate
// Validates the allocation, runs the simulation and the three fixed
// benchmarks, persists a leaderboard entry, and broadcasts the result.
func (s *Service) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid_request", "invalid request body", http.StatusBadRequest)
		return
	}

	// --- Input validation ---
	total := decimal.Zero
	for id, pct := range req.Allocation {
		if !s.table.Contains(id) {
			writeError(w, "unknown_asset", "unknown asset id: "+id, http.StatusBadRequest)
			return
		}
		total = total.Add(pct)
	}
	if total.LessThan(minAllocationTotal) || total.GreaterThan(maxAllocationTotal) {
		writeError(w, "invalid_allocation",
			"allocation percentages must sum to 100, got "+total.String(), http.StatusBadRequest)
		return
	}

	weights := make(map[string]decimal.Decimal, len(req.Allocation))
	for id, pct := range req.Allocation {
		weights[id] = pct.Div(hundred)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = defaultPlayerName
	}

	ctx := r.Context()

	// Sequence against dataset ingestion.
	s.mu.Lock()
	defer s.mu.Unlock()

	assets := s.table.Assets()
	result := simulate.Run(s.capital, weights, assets)
	result.CAGR = rank.CAGR(result.FinalValue, s.capital, model.YearCount)
	benchmarks := rank.Benchmarks(s.capital, assets)

	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		writeError(w, "store_error", "failed to load leaderboard", http.StatusInternalServerError)
		return
	}
	percentile := rank.ProjectedPercentile(result.FinalValue, entries)

	entry := model.LeaderboardEntry{
		ID:         uuid.New().String(),
		Name:       name,
		FinalValue: result.FinalValue,
		CAGR:       result.CAGR,
		Allocation: req.Allocation,
		Timestamp:  time.Now().UTC(),
	}

	leaderboard, err := store.Append(ctx, s.store, entry)
	if err != nil {
		writeError(w, "store_error", "failed to persist result", http.StatusInternalServerError)
		return
	}

	metrics.SimulationsTotal.Inc()
	metrics.LeaderboardSize.Set(float64(len(leaderboard)))

	slog.Info("simulation completed",
		"name", name,
		"final_value", result.FinalValue.String(),
		"cagr", result.CAGR.String(),
		"percentile", percentile.String(),
	)

	if s.wsHub != nil {
		s.wsHub.Broadcast(WSMessage{
			Type:       "simulation_completed",
			Name:       name,
			FinalValue: result.FinalValue.String(),
			CAGR:       result.CAGR.String(),
			Percentile: percentile.String(),
		})
	}

	writeJSON(w, http.StatusOK, SimulateResponse{
		Result:      result,
		Benchmarks:  benchmarks,
		Percentile:  percentile,
		Entry:       entry,
		Leaderboard: leaderboard,
	})
}

// UploadDataset handles POST /api/v1/dataset
// Body is raw CSV text. Fatal failures (malformed CSV, missing header
// columns, no applicable data) leave the active table untouched.
func (s *Service) UploadDataset(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDatasetBytes))
	if err != nil {
		metrics.DatasetUploadsTotal.WithLabelValues("read_error").Inc()
		writeError(w, "read_error", "unable to read file", http.StatusBadRequest)
		return
	}

	rows, err := dataset.ParseCSV(string(body))
	if err != nil {
		metrics.DatasetUploadsTotal.WithLabelValues("malformed").Inc()
		writeError(w, "malformed_input", err.Error(), http.StatusBadRequest)
		return
	}

	validated, err := dataset.Validate(rows)
	if err != nil {
		metrics.DatasetUploadsTotal.WithLabelValues("schema_error").Inc()
		writeError(w, "schema_error", err.Error(), http.StatusBadRequest)
		return
	}

	// Sequence against simulations; the merge is all-or-nothing.
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := dataset.Merge(validated.Records, s.table)
	if err != nil {
		if errors.Is(err, dataset.ErrNoApplicableData) {
			metrics.DatasetUploadsTotal.WithLabelValues("no_applicable_data").Inc()
			writeError(w, "no_applicable_data", err.Error(), http.StatusUnprocessableEntity)
			return
		}
		metrics.DatasetUploadsTotal.WithLabelValues("merge_error").Inc()
		writeError(w, "merge_error", err.Error(), http.StatusInternalServerError)
		return
	}

	s.source = SourceCustom
	s.appliedAssets = result.AppliedAssets
	metrics.DatasetUploadsTotal.WithLabelValues("applied").Inc()

	slog.Info("dataset applied",
		"assets", len(result.AppliedAssets),
		"warnings", len(result.Warnings),
		"row_errors", len(validated.RowErrors),
	)

	writeJSON(w, http.StatusOK, UploadResponse{
		AppliedAssets: result.AppliedAssets,
		Warnings:      nonNilWarnings(result.Warnings),
		RowErrors:     nonNilRowErrors(validated.RowErrors),
		Source:        SourceCustom,
	})
}

// ResetDataset handles DELETE /api/v1/dataset
// Restores every asset's default return series.
func (s *Service) ResetDataset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table.Reset()
	s.source = SourceDefaults
	s.appliedAssets = nil

	slog.Info("dataset reset to defaults")
	writeJSON(w, http.StatusOK, s.statusLocked())
}

// GetDatasetStatus handles GET /api/v1/dataset
func (s *Service) GetDatasetStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.statusLocked())
}

// GetLeaderboard handles GET /api/v1/leaderboard
func (s *Service) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.ListEntries(r.Context())
	if err != nil {
		writeError(w, "store_error", "failed to load leaderboard", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// statusLocked must be called with the mutex held.
func (s *Service) statusLocked() DatasetStatus {
	applied := s.appliedAssets
	if applied == nil {
		applied = []string{}
	}
	return DatasetStatus{
		Source:        s.source,
		AppliedAssets: applied,
		YearFrom:      model.BaseYear,
		YearTo:        model.BaseYear + model.YearCount - 1,
	}
}

func nonNilWarnings(ws []dataset.Warning) []dataset.Warning {
	if ws == nil {
		return []dataset.Warning{}
	}
	return ws
}

func nonNilRowErrors(es []dataset.RowError) []dataset.RowError {
	if es == nil {
		return []dataset.RowError{}
	}
	return es
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response with a machine-readable kind.
func writeError(w http.ResponseWriter, kind, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message, "kind": kind})
}
