// Package server exposes the answering engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/history"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/ragservice"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server answers document questions over HTTP.
type Server struct {
	cfg        Config
	runtime    *Runtime
	log        *history.Store // optional, nil disables the chat log
	router     chi.Router
	httpServer *http.Server
}

// New creates a server around the given runtime. store may be nil.
func New(cfg Config, rt *Runtime, store *history.Store) *Server {
	s := &Server{
		cfg:     cfg,
		runtime: rt,
		log:     store,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", s.handleHealthz)
	r.Post("/chat", s.handleChat)
	r.Get("/history", s.handleHistory)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

type healthResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	status, detail := s.runtime.Status()
	writeJSON(w, http.StatusOK, healthResponse{Status: status, Detail: detail})
}

type chatRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	svc, initErr := s.runtime.Service()
	if initErr != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("engine failed to start: %v", initErr))
		return
	}
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "engine is still starting, try again shortly")
		return
	}

	start := time.Now()
	answer, err := svc.Answer(r.Context(), req.Question)
	if err != nil {
		switch {
		case errors.Is(err, ragservice.ErrEmptyQuestion):
			writeError(w, http.StatusBadRequest, "question must not be empty")
		default:
			var retrieval *ragservice.RetrievalError
			var generation *ragservice.GenerationError
			if errors.As(err, &retrieval) || errors.As(err, &generation) {
				writeError(w, http.StatusBadGateway, err.Error())
			} else {
				writeError(w, http.StatusInternalServerError, err.Error())
			}
		}
		return
	}

	s.record(r.Context(), req.Question, answer, time.Since(start))
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) record(ctx context.Context, question string, answer *ragservice.Answer, took time.Duration) {
	if s.log == nil {
		return
	}
	err := s.log.Record(ctx, history.Entry{
		Question:    question,
		Answer:      answer.Text,
		SourceCount: len(answer.Sources),
		Answered:    answer.Text != ragservice.NotInDocs,
		DurationMS:  took.Milliseconds(),
	})
	if err != nil {
		log.Printf("recording chat log entry: %v", err)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.log == nil {
		writeError(w, http.StatusNotFound, "chat log is disabled")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.log.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("genai server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
