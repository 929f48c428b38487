// Package apitest runs an in-process stand-in for the SAS Agent backend.
// It serves the same routes and JSON shapes as the Flask server and lets
// tests override any route to inject failures.
package apitest

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/soyeahso/sasagent/internal/domain"
)

// Chunking parameters used by the backend's text splitter.
const (
	chunkSize    = 500
	chunkOverlap = 50
)

// Request is a request seen by the fake backend.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Upload is a received multipart upload.
type Upload struct {
	AgentID  string
	Filename string
	Content  []byte
}

// Server is a fake backend bound to a local port.
type Server struct {
	*httptest.Server

	// Responder produces the chat answer. Defaults to an echo.
	Responder func(agentID, query string) string

	mu        sync.Mutex
	agents    []domain.Agent
	documents map[int64][]domain.Document
	history   map[int64][]domain.HistoryEntry
	uploads   []Upload
	requests  []Request
	overrides map[string]http.HandlerFunc
	token     string
	nextAgent int64
	nextDoc   int64
}

// New starts a fake backend that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		Responder: func(agentID, query string) string {
			return fmt.Sprintf("agent %s heard: %s", agentID, query)
		},
		documents: make(map[int64][]domain.Document),
		history:   make(map[int64][]domain.HistoryEntry),
		overrides: make(map[string]http.HandlerFunc),
		nextAgent: 1,
		nextDoc:   1,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// Override replaces the handler for "METHOD /path" (exact path match).
func (s *Server) Override(method, path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = h
}

// Fail makes "METHOD /path" answer with status and a raw body.
func (s *Server) Fail(method, path string, status int, body string) {
	s.Override(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
}

// RequireToken makes every route answer 401 unless the request carries
// "Authorization: Bearer <token>". An empty token disables the check.
func (s *Server) RequireToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// AddAgent seeds an agent and returns it.
func (s *Server) AddAgent(name, description string) domain.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAgentLocked(name, description)
}

func (s *Server) addAgentLocked(name, description string) domain.Agent {
	a := domain.Agent{ID: s.nextAgent, Name: name, Description: description}
	s.nextAgent++
	s.agents = append(s.agents, a)
	return a
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Uploads returns a copy of every accepted upload.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload(nil), s.uploads...)
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(requestID)
	r.Use(s.auth)
	r.Use(s.override)

	r.Get("/hello", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "Hello from SAS Agent")
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/agents", s.handleListAgents)
		r.Post("/create-agent", s.handleCreateAgent)
		r.Post("/upload", s.handleUpload)
		r.Post("/chat", s.handleChat)
		r.Get("/agent/{id}/history", s.handleHistory)
		r.Get("/agent/{id}/documents", s.handleDocuments)
		r.Delete("/document/{id}", s.handleDeleteDocument)
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// requestID echoes the client's X-Request-ID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-Request-ID"); id != "" {
			w.Header().Set("X-Request-ID", id)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		token := s.token
		s.mu.Unlock()

		if token != "" && !safeEqual(r.Header.Get("Authorization"), "Bearer "+token) {
			writeJSON(w, http.StatusUnauthorized, domain.ErrorBody{Error: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// safeEqual compares in constant time without leaking the secret's length.
func safeEqual(a, b string) bool {
	lenMatch := subtle.ConstantTimeEq(int32(len(a)), int32(len(b)))
	cmp := subtle.ConstantTimeCompare([]byte(a), []byte(b))
	return subtle.ConstantTimeSelect(lenMatch, cmp, 0) == 1
}

func (s *Server) override(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		h, ok := s.overrides[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if ok {
			h(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleListAgents(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	// newest first, like ORDER BY id DESC
	agents := make([]domain.Agent, 0, len(s.agents))
	for i := len(s.agents) - 1; i >= 0; i-- {
		agents = append(agents, s.agents[i])
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, agents)
}

func (s *Server) handleCreateAgent(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, domain.ErrorBody{Error: "Agent name is required"})
		return
	}

	s.mu.Lock()
	a := s.addAgentLocked(req.Name, req.Description)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, domain.CreateAgentResult{
		Message: "Agent created successfully",
		AgentID: a.ID,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	agentID := r.FormValue("agent_id")
	file, header, err := r.FormFile("file")
	if agentID == "" || err != nil {
		writeJSON(w, http.StatusBadRequest, domain.ErrorBody{Error: "agent_id or file missing"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, domain.ErrorBody{Error: "Failed to process the document."})
		return
	}

	s.mu.Lock()
	s.uploads = append(s.uploads, Upload{AgentID: agentID, Filename: header.Filename, Content: content})
	if id, err := strconv.ParseInt(agentID, 10, 64); err == nil {
		s.documents[id] = append([]domain.Document{{
			ID:         s.nextDoc,
			Filename:   header.Filename,
			UploadedAt: time.Now().UTC().Format(time.DateTime),
		}}, s.documents[id]...)
		s.nextDoc++
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "success",
		"chunks_stored": ChunkCount(len(content)),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeJSON(w, http.StatusBadRequest, domain.ErrorBody{Error: "No query provided"})
		return
	}

	id, err := strconv.ParseInt(req.AgentID, 10, 64)
	if err != nil || !s.hasAgent(id) {
		writeJSON(w, http.StatusNotFound, domain.ErrorBody{Error: "agent not found"})
		return
	}

	answer := s.Responder(req.AgentID, req.Query)

	s.mu.Lock()
	s.history[id] = append(s.history[id], domain.HistoryEntry{
		UserMessage:   req.Query,
		AgentResponse: answer,
		Timestamp:     time.Now().UTC().Format(time.DateTime),
	})
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, domain.ChatReply{Response: answer})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	entries := append([]domain.HistoryEntry{}, s.history[id]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	docs := append([]domain.Document{}, s.documents[id]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for agentID, docs := range s.documents {
		for i, d := range docs {
			if d.ID == id {
				s.documents[agentID] = append(docs[:i:i], docs[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Document deleted"})
				return
			}
		}
	}
	writeJSON(w, http.StatusNotFound, domain.ErrorBody{Error: "Document not found"})
}

func (s *Server) hasAgent(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.agents {
		if a.ID == id {
			return true
		}
	}
	return false
}

// ChunkCount mirrors the backend splitter: windows of 500 characters that
// advance by 450.
func ChunkCount(n int) int {
	count := 0
	for start := 0; start < n; start += chunkSize - chunkOverlap {
		count++
	}
	return count
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
