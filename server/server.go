// Package server exposes the task engine over local HTTP: JSON endpoints
// mirroring the store API, an analytics endpoint, the calendar export, and
// the stateless chat passthrough.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/amonks/taskmaster/calendar"
	"github.com/amonks/taskmaster/chat"
	"github.com/amonks/taskmaster/stats"
	"github.com/amonks/taskmaster/task"
)

const shutdownTimeout = 5 * time.Second

// Options configures a server.
type Options struct {
	Store *task.Store

	// Chat is the collaborator client for the /chat passthrough.
	Chat *chat.Client

	// APIKey gates the /chat passthrough. Requests fail with a 500 when
	// it is empty, mirroring the collaborator's own proxy behavior.
	APIKey string

	Logger *log.Logger

	// Now is replaceable in tests.
	Now func() time.Time
}

// Server handles task engine RPCs.
type Server struct {
	store  *task.Store
	chat   *chat.Client
	apiKey string
	logger *log.Logger
	now    func() time.Time

	views task.ViewCache
}

// New creates a server. The store is required.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("store is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "taskmaster: ", log.LstdFlags)
	}
	chatClient := opts.Chat
	if chatClient == nil {
		chatClient = chat.NewClient("")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Server{
		store:  opts.Store,
		chat:   chatClient,
		apiKey: opts.APIKey,
		logger: logger,
		now:    now,
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks/list", s.handleTasksList)
	mux.HandleFunc("/tasks/query", s.handleTasksQuery)
	mux.HandleFunc("/tasks/create", s.handleTasksCreate)
	mux.HandleFunc("/tasks/update", s.handleTasksUpdate)
	mux.HandleFunc("/tasks/delete", s.handleTasksDelete)
	mux.HandleFunc("/tasks/reorder", s.handleTasksReorder)
	mux.HandleFunc("/stats", s.handleStats)
	// GET is allowed here so the export works as a browser download.
	mux.HandleFunc("/calendar.ics", s.handleCalendarExport)
	mux.HandleFunc("/chat", s.handleChat)
	return s.recoverHandler(mux)
}

// Serve runs the server on the given address until an error or interrupt.
func (s *Server) Serve(addr string) error {
	server := &http.Server{
		Addr:     addr,
		Handler:  s.Handler(),
		ErrorLog: s.logger,
	}

	listenErrs := make(chan error, 1)
	go func() {
		listenErrs <- server.ListenAndServe()
	}()
	s.logger.Printf("listening on %s", addr)

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	select {
	case err := <-listenErrs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-interrupts:
		s.logger.Printf("interrupt received, shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		shutdownErr := server.Shutdown(shutdownCtx)
		cancel()
		listenErr := <-listenErrs
		if errors.Is(listenErr, http.ErrServerClosed) {
			listenErr = nil
		}
		if errors.Is(shutdownErr, http.ErrServerClosed) {
			shutdownErr = nil
		}
		return errors.Join(shutdownErr, listenErr)
	}
}

type tasksResponse struct {
	Tasks []task.Task `json:"tasks"`
}

func (s *Server) handleTasksList(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, tasksResponse{Tasks: s.store.List()})
}

type queryRequest struct {
	Query string `json:"query"`
	Sort  string `json:"sort"`
}

func (s *Server) handleTasksQuery(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req queryRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	key, err := task.ParseSortKey(req.Sort)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	tasks, version := s.store.Snapshot()
	writeJSON(w, http.StatusOK, s.views.Views(tasks, version, req.Query, key))
}

type createRequest struct {
	Name             string `json:"name"`
	Details          string `json:"details"`
	StartDate        string `json:"startDate"`
	DueDate          string `json:"dueDate"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
}

func (s *Server) handleTasksCreate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req createRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	created := s.store.Add(req.Name, task.CreateOptions{
		Details:          req.Details,
		StartDate:        req.StartDate,
		DueDate:          req.DueDate,
		EstimatedMinutes: req.EstimatedMinutes,
	})
	if created == nil {
		s.writeError(w, r, http.StatusBadRequest, task.ErrEmptyName)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

type updateRequest struct {
	ID               int     `json:"id"`
	Name             *string `json:"name"`
	Details          *string `json:"details"`
	Status           *string `json:"status"`
	StartDate        *string `json:"startDate"`
	DueDate          *string `json:"dueDate"`
	EstimatedMinutes *int    `json:"estimatedMinutes"`
}

func (s *Server) handleTasksUpdate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req updateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	opts := task.UpdateOptions{
		Name:             req.Name,
		Details:          req.Details,
		StartDate:        req.StartDate,
		DueDate:          req.DueDate,
		EstimatedMinutes: req.EstimatedMinutes,
	}
	if req.Status != nil {
		status, err := task.ParseStatus(*req.Status)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		opts.Status = &status
	}

	updated := s.store.Update(req.ID, opts)
	if updated == nil {
		s.writeError(w, r, http.StatusNotFound, fmt.Errorf("no task with id %d", req.ID))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type deleteRequest struct {
	ID int `json:"id"`
}

func (s *Server) handleTasksDelete(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req deleteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if !s.store.Delete(req.ID) {
		s.writeError(w, r, http.StatusNotFound, fmt.Errorf("no task with id %d", req.ID))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": req.ID})
}

type reorderRequest struct {
	FromID int `json:"fromId"`
	ToID   int `json:"toId"`
}

func (s *Server) handleTasksReorder(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req reorderRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	moved := s.store.Reorder(req.FromID, req.ToID)
	writeJSON(w, http.StatusOK, map[string]bool{"moved": moved})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	type statsResponse struct {
		stats.Stats
		Burndown []int `json:"burndown"`
	}

	tasks := s.store.List()
	asOf := s.now()
	writeJSON(w, http.StatusOK, statsResponse{
		Stats:    stats.Compute(tasks, asOf),
		Burndown: stats.Burndown(tasks, asOf, 7),
	})
}

func (s *Server) handleCalendarExport(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	doc := calendar.ExportICS(s.store.List(), now)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", calendar.ExportFilename(now)))
	_, _ = w.Write(doc)
}

type chatRequest struct {
	Prompt string `json:"prompt"`
}

type chatResponse struct {
	Text string `json:"text"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if s.apiKey == "" {
		s.writeError(w, r, http.StatusInternalServerError, fmt.Errorf("chat API key not configured"))
		return
	}
	var req chatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Prompt == "" {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("missing prompt"))
		return
	}

	text, err := s.chat.Ask(r.Context(), req.Prompt)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Text: text})
}

func (s *Server) recoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				s.logger.Printf("panic handling request %s %s: %v\n%s", r.Method, r.URL.Path, recovered, debug.Stack())
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Printf("request %s %s failed (%d): %v", r.Method, r.URL.Path, status, err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
