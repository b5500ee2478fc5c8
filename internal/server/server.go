// Package server exposes constructed landscapes over HTTP. Optimizer
// harnesses construct a landscape once, evaluate candidate solutions
// against it, inspect its global optima, and release it when done.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/copyleftdev/TDMK/internal/config"
	"github.com/copyleftdev/TDMK/internal/landscape"
	"github.com/copyleftdev/TDMK/internal/landscape/cliquetree"
	"github.com/copyleftdev/TDMK/internal/landscape/codomain"
	"github.com/copyleftdev/TDMK/internal/logging"
)

// instance is one constructed landscape held in the registry together
// with its immutable summary.
type instance struct {
	tree    *cliquetree.CliqueTree
	summary landscapeResponse
}

// Server manages the landscape registry and its HTTP endpoints. The
// registry is safe for concurrent use; the landscapes themselves are
// immutable after construction.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics

	mu         sync.RWMutex
	landscapes map[string]*instance
}

// NewServer creates a new server instance. Metrics are registered on
// reg; pass prometheus.DefaultRegisterer outside tests.
func NewServer(cfg *config.Config, logger *zap.Logger, reg prometheus.Registerer) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:        cfg,
		logger:     logger,
		metrics:    newMetrics(reg),
		landscapes: make(map[string]*instance),
	}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/landscapes", func(r chi.Router) {
		r.Post("/", s.handleConstruct)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Get("/optima", s.handleOptima)
			r.Post("/evaluate", s.handleEvaluate)
			r.Delete("/", s.handleRelease)
		})
	})
}

type constructRequest struct {
	M        int    `json:"m"`
	K        int    `json:"k"`
	O        int    `json:"o"`
	B        int    `json:"b"`
	Function string `json:"function"`
	// Seed pins the construction randomness; 0 or absent draws a fresh
	// seed, reported in the response.
	Seed int64 `json:"seed,omitempty"`
}

type landscapeResponse struct {
	ID             string    `json:"id"`
	M              int       `json:"m"`
	K              int       `json:"k"`
	O              int       `json:"o"`
	B              int       `json:"b"`
	N              int       `json:"n"`
	Function       string    `json:"function"`
	Seed           int64     `json:"seed"`
	OptimumScore   float64   `json:"optimum_score"`
	OptimumCount   int       `json:"optimum_count"`
	CodomainMean   float64   `json:"codomain_mean"`
	CodomainStddev float64   `json:"codomain_stddev"`
	CreatedAt      time.Time `json:"created_at"`
}

type optimaResponse struct {
	OptimumScore float64  `json:"optimum_score"`
	OptimumCount int      `json:"optimum_count"`
	Optima       []string `json:"optima"`
}

type evaluateRequest struct {
	Solution string `json:"solution"`
}

type evaluateResponse struct {
	Fitness         float64 `json:"fitness"`
	IsGlobalOptimum bool    `json:"is_global_optimum"`
}

// handleConstruct builds a landscape from the posted parameters and
// stores it under a fresh id.
func (s *Server) handleConstruct(w http.ResponseWriter, r *http.Request) {
	var req constructRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	fn, err := codomain.ParseFunction(req.Function)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if _, unknown := fn.(codomain.Unknown); unknown {
		s.respondError(w, r, http.StatusBadRequest, "codomain function unknown cannot generate fitness tables")
		return
	}
	params, err := landscape.NewInputParameters(req.M, req.K, req.O, req.B)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if max := s.cfg.Landscape.MaxK; max > 0 && params.K > max {
		s.respondError(w, r, http.StatusBadRequest, "clique size k above the service limit")
		return
	}
	if max := s.cfg.Landscape.MaxM; max > 0 && params.M > max {
		s.respondError(w, r, http.StatusBadRequest, "clique count m above the service limit")
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	tree, err := cliquetree.New(params, fn, landscape.NewRand(seed))
	if err != nil {
		s.respondError(w, r, statusForError(err), err.Error())
		return
	}
	elapsed := time.Since(start)

	mean, stddev := tree.CodomainStats()
	inst := &instance{
		tree: tree,
		summary: landscapeResponse{
			ID:             uuid.NewString(),
			M:              params.M,
			K:              params.K,
			O:              params.O,
			B:              params.B,
			N:              tree.ProblemSize(),
			Function:       fn.String(),
			Seed:           seed,
			OptimumScore:   tree.OptimumScore(),
			OptimumCount:   tree.OptimumCount(),
			CodomainMean:   mean,
			CodomainStddev: stddev,
			CreatedAt:      time.Now().UTC(),
		},
	}

	s.mu.Lock()
	s.landscapes[inst.summary.ID] = inst
	s.mu.Unlock()

	s.metrics.constructed.WithLabelValues(fn.Slug()).Inc()
	s.metrics.constructSeconds.Observe(elapsed.Seconds())
	s.metrics.optimaCount.Observe(float64(tree.OptimumCount()))
	s.metrics.active.Inc()

	s.logger.Info("constructed landscape",
		zap.String("id", inst.summary.ID),
		zap.String("parameters", params.String()),
		zap.String("function", fn.String()),
		zap.Int("variables", tree.ProblemSize()),
		zap.Int("optima", tree.OptimumCount()),
		zap.Duration("elapsed", elapsed),
	)
	s.respondJSON(w, http.StatusCreated, inst.summary)
}

// handleGet returns the summary recorded at construction time.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.lookup(r)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "landscape not found")
		return
	}
	s.respondJSON(w, http.StatusOK, inst.summary)
}

// handleOptima returns the exhaustive global optimum set.
func (s *Server) handleOptima(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.lookup(r)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "landscape not found")
		return
	}

	optima := inst.tree.Optima()
	resp := optimaResponse{
		OptimumScore: inst.tree.OptimumScore(),
		OptimumCount: len(optima),
		Optima:       make([]string, len(optima)),
	}
	for i, sol := range optima {
		resp.Optima[i] = sol.String()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleEvaluate scores one candidate solution against the landscape.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.lookup(r)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "landscape not found")
		return
	}

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	sol, err := landscape.ParseSolution(req.Solution)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	fitness, err := inst.tree.Evaluate(sol)
	if err != nil {
		s.respondError(w, r, statusForError(err), err.Error())
		return
	}

	s.metrics.evaluations.Inc()
	s.respondJSON(w, http.StatusOK, evaluateResponse{
		Fitness:         fitness,
		IsGlobalOptimum: inst.tree.IsGlobalOptimum(landscape.SolutionFit{Solution: sol, Fitness: fitness}),
	})
}

// handleRelease drops the landscape from the registry.
func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.landscapes[id]
	if ok {
		delete(s.landscapes, id)
	}
	s.mu.Unlock()

	if !ok {
		s.respondError(w, r, http.StatusNotFound, "landscape not found")
		return
	}

	s.metrics.releases.Inc()
	s.metrics.active.Dec()
	s.logger.Info("released landscape", zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// lookup resolves the {id} route parameter to a registry entry.
func (s *Server) lookup(r *http.Request) (*instance, bool) {
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.landscapes[id]
	return inst, ok
}

// Close releases every landscape in the registry.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.landscapes {
		delete(s.landscapes, id)
		s.metrics.active.Dec()
	}
	return nil
}

// statusForError maps the landscape error taxonomy onto HTTP statuses:
// caller mistakes are 400s, violated internal invariants are 500s.
func statusForError(err error) int {
	switch {
	case errors.Is(err, landscape.ErrConfiguration),
		errors.Is(err, landscape.ErrCodomainLength),
		errors.Is(err, landscape.ErrDimensionMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logger := logging.FromContext(r.Context())
	if status >= 500 {
		logger.Error("request failed", zap.Int("status", status), zap.String("message", message))
	} else {
		logger.Debug("request rejected", zap.Int("status", status), zap.String("message", message))
	}
	s.respondJSON(w, status, map[string]string{"error": message})
}
