package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/robertguss/vibe-academy-go/internal/config"
	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/events"
	"github.com/robertguss/vibe-academy-go/internal/orchestrator"
	"github.com/robertguss/vibe-academy-go/internal/storage"
)

// Server is the REST API server over a single wizard session
type Server struct {
	config *config.Config
	orch   *orchestrator.Orchestrator
	docs   storage.DocumentStore
	wsHub  *WebSocketHub

	mu          sync.RWMutex
	server      *http.Server
	running     bool
	unsubscribe func()
}

// NewServer creates a new API server. docs may be nil, in which case the
// document archive endpoints report an empty archive.
func NewServer(cfg *config.Config, orch *orchestrator.Orchestrator, docs storage.DocumentStore) *Server {
	wsHub := NewWebSocketHub()
	wsHub.SetSecurityConfig(cfg.APIKey, cfg.AllowedOrigins)

	return &Server{
		config: cfg,
		orch:   orch,
		docs:   docs,
		wsHub:  wsHub,
	}
}

// GetWebSocketHub returns the WebSocket hub
func (s *Server) GetWebSocketHub() *WebSocketHub {
	return s.wsHub
}

// Handler returns the routed handler without starting a listener
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// Start starts the API server on the given port and blocks until it stops
func (s *Server) Start(port int) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.running = true

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.setupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	srv := s.server
	s.unsubscribe = s.forwardEvents()
	s.mu.Unlock()

	go s.wsHub.Run()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop stops the API server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.wsHub.Stop()

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// IsRunning returns whether the server is running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// forwardEvents relays orchestrator events to WebSocket clients
func (s *Server) forwardEvents() func() {
	return s.orch.Bus().Subscribe(func(e events.Event) {
		s.BroadcastMessage(e.Type(), e)
	})
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(s.config.AllowedOrigins))

	// Health check (public, no auth required)
	r.Get("/health", s.healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiKeyAuthMiddleware(s.config.APIKey))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			// Session
			r.Get("/session", s.getSessionHandler)
			r.Post("/reset", s.resetHandler)

			// Stages
			r.Get("/stages", s.listStagesHandler)
			r.Post("/stages/{index}", s.goToStageHandler)
			r.Post("/advance", s.advanceHandler)
			r.Post("/retreat", s.retreatHandler)

			// Steps
			r.Get("/step", s.getStepHandler)
			r.Post("/select", s.selectHandler)
			r.Post("/validate", s.validateHandler)
			r.Post("/step/back", s.stepBackHandler)

			// Results
			r.Get("/requirements", s.getRequirementsHandler)
			r.Get("/documents", s.listDocumentsHandler)
			r.Get("/documents/{filename}", s.getDocumentHandler)
		})
	})

	// The hub authenticates the handshake itself, accepting api_key as a
	// query parameter since browsers cannot set headers on it
	r.Get("/api/ws", s.websocketHandler)

	return r
}

// corsMiddleware creates CORS middleware with the given allowed origins.
// Origins must be listed explicitly or matched by a wildcard pattern.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	exactOrigins := make(map[string]bool)
	var patterns []string
	for _, origin := range allowedOrigins {
		if strings.Contains(origin, "*") {
			patterns = append(patterns, origin)
		} else {
			exactOrigins[origin] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && originAllowed(origin, exactOrigins, patterns) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-API-Key")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, exact map[string]bool, patterns []string) bool {
	if exact[origin] {
		return true
	}
	for _, pattern := range patterns {
		if matchOriginPattern(origin, pattern) {
			return true
		}
	}
	return false
}

// apiKeyAuthMiddleware rejects requests that do not carry the configured key
// in X-API-Key or as a Bearer token. An empty key disables the check.
func apiKeyAuthMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			if requestAPIKey(r) != apiKey {
				respondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requestAPIKey extracts the key from X-API-Key, falling back to a Bearer token
func requestAPIKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// matchOriginPattern checks if an origin matches a pattern with wildcards
// e.g., "http://localhost:3000" matches "http://localhost:*"
func matchOriginPattern(origin, pattern string) bool {
	// port wildcard, e.g. "http://localhost:*"
	if strings.HasSuffix(pattern, ":*") {
		prefix := strings.TrimSuffix(pattern, "*")
		if !strings.HasPrefix(origin, prefix) {
			return false
		}
		_, err := strconv.Atoi(strings.TrimPrefix(origin, prefix))
		return err == nil
	}
	// subdomain wildcard, e.g. "*.example.com"
	if strings.HasPrefix(pattern, "*.") {
		suffix := strings.TrimPrefix(pattern, "*")
		parts := strings.SplitN(origin, "://", 2)
		if len(parts) == 2 {
			host := strings.Split(parts[1], "/")[0]
			host = strings.Split(host, ":")[0]
			return strings.HasSuffix(host, suffix) || host == strings.TrimPrefix(suffix, ".")
		}
	}
	return false
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Handlers

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// sessionResponse is the body of GET /api/session
type sessionResponse struct {
	SessionID     string                     `json:"sessionId"`
	State         domain.SessionState        `json:"state"`
	ActiveStage   int                        `json:"activeStage"`
	FurthestStage int                        `json:"furthestStage"`
	HasProgress   bool                       `json:"hasProgress"`
	Stages        []orchestrator.StageStatus `json:"stages"`
}

func (s *Server) session() sessionResponse {
	return sessionResponse{
		SessionID:     s.orch.SessionID(),
		State:         s.orch.State(),
		ActiveStage:   s.orch.ActiveStageIndex(),
		FurthestStage: s.orch.FurthestStageIndex(),
		HasProgress:   s.orch.HasUnsavedProgress(),
		Stages:        s.orch.Stages(),
	}
}

func (s *Server) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.session())
}

func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.orch.Reset(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.orch.Start()
	respondJSON(w, http.StatusOK, s.session())
}

func (s *Server) listStagesHandler(w http.ResponseWriter, r *http.Request) {
	stages := s.orch.Stages()
	respondJSON(w, http.StatusOK, map[string]any{
		"stages": stages,
		"count":  len(stages),
		"active": s.orch.ActiveStageIndex(),
	})
}

func (s *Server) goToStageHandler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 || index >= domain.StageCount {
		respondError(w, http.StatusBadRequest, "invalid stage index")
		return
	}
	if !s.orch.CanVisit(index) {
		respondError(w, http.StatusConflict, "stage not reached yet")
		return
	}
	s.orch.GoToStage(index)
	respondJSON(w, http.StatusOK, s.orch.ActiveStep())
}

func (s *Server) advanceHandler(w http.ResponseWriter, r *http.Request) {
	if !s.orch.CanVisit(s.orch.ActiveStageIndex() + 1) {
		respondError(w, http.StatusConflict, "current stage is not complete")
		return
	}
	s.orch.Advance()
	respondJSON(w, http.StatusOK, s.orch.ActiveStep())
}

func (s *Server) retreatHandler(w http.ResponseWriter, r *http.Request) {
	if !s.orch.Retreat() {
		respondError(w, http.StatusConflict, "already at the first stage")
		return
	}
	respondJSON(w, http.StatusOK, s.orch.ActiveStep())
}

func (s *Server) getStepHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.orch.ActiveStep())
}

// selectRequest is the body of POST /api/select
type selectRequest struct {
	Step        domain.StepName `json:"step"`
	Value       string          `json:"value"`
	MultiSelect bool            `json:"multiSelect"`
}

func (s *Server) selectHandler(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Step == "" {
		req.Step = s.orch.ActiveStep().Step
	}

	accepted := s.orch.Select(req.Step, req.Value, req.MultiSelect)
	respondJSON(w, http.StatusOK, map[string]any{
		"accepted": accepted,
		"step":     s.orch.ActiveStep(),
	})
}

func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	valid := s.orch.Validate()
	respondJSON(w, http.StatusOK, map[string]any{
		"valid": valid,
		"step":  s.orch.ActiveStep(),
	})
}

func (s *Server) stepBackHandler(w http.ResponseWriter, r *http.Request) {
	s.orch.StepBack()
	respondJSON(w, http.StatusOK, s.orch.ActiveStep())
}

func (s *Server) getRequirementsHandler(w http.ResponseWriter, r *http.Request) {
	req := s.orch.Requirement()
	if req == nil {
		respondError(w, http.StatusNotFound, "requirements not generated yet")
		return
	}
	respondJSON(w, http.StatusOK, req)
}

// documentSummary describes a document without its content
type documentSummary struct {
	ID        string                `json:"id,omitempty"`
	SessionID string                `json:"sessionId,omitempty"`
	Filename  string                `json:"filename"`
	Format    domain.DocumentFormat `json:"format"`
	Size      int                   `json:"size"`
	CreatedAt *time.Time            `json:"createdAt,omitempty"`
}

// listDocumentsHandler lists the current session's documents, or the
// archive when ?archive=true
func (s *Server) listDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("archive") == "true" {
		s.listArchiveHandler(w, r)
		return
	}

	result, ok := s.orch.Result()
	if !ok {
		respondJSON(w, http.StatusOK, map[string]any{
			"documents": []documentSummary{},
			"count":     0,
		})
		return
	}

	list := make([]documentSummary, 0, len(result.Documents))
	for _, doc := range result.Documents {
		list = append(list, documentSummary{
			Filename: doc.Filename,
			Format:   doc.Format,
			Size:     len(doc.Content),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"sessionId": s.orch.SessionID(),
		"documents": list,
		"count":     len(list),
	})
}

func (s *Server) listArchiveHandler(w http.ResponseWriter, r *http.Request) {
	list := make([]documentSummary, 0)
	if s.docs == nil {
		respondJSON(w, http.StatusOK, map[string]any{"documents": list, "count": 0})
		return
	}

	q := r.URL.Query()
	filter := &storage.DocumentFilter{
		SessionID: q.Get("session"),
		Filename:  q.Get("filename"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	records, err := s.docs.ListDocuments(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, rec := range records {
		created := rec.CreatedAt
		list = append(list, documentSummary{
			ID:        rec.ID,
			SessionID: rec.SessionID,
			Filename:  rec.Filename,
			Format:    rec.Format,
			Size:      rec.Size,
			CreatedAt: &created,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"documents": list, "count": len(list)})
}

// getDocumentHandler delivers one generated document with its own content
// type. ?download=true asks the client to save it.
func (s *Server) getDocumentHandler(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	result, ok := s.orch.Result()
	if !ok {
		respondError(w, http.StatusNotFound, "documents not generated yet")
		return
	}

	for _, doc := range result.Documents {
		if doc.Filename != filename {
			continue
		}
		w.Header().Set("Content-Type", doc.Format.ContentType()+"; charset=utf-8")
		if r.URL.Query().Get("download") == "true" && doc.Downloadable {
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(doc.Content))
		return
	}
	respondError(w, http.StatusNotFound, "document not found")
}

func (s *Server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	s.wsHub.ServeWs(w, r)
}

// BroadcastMessage sends a message to all connected WebSocket clients
func (s *Server) BroadcastMessage(msgType string, data any) {
	s.wsHub.Broadcast(WebSocketMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now(),
	})
}
