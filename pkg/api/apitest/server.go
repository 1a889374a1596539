// Package apitest runs an in-memory diary server for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/diary/pkg/api"
	"tableflip.dev/diary/pkg/entry"
)

const (
	Token    = "test-token"
	Email    = "me@example.com"
	Password = "hunter22"
)

// Request is one call the server received.
type Request struct {
	Method string
	Path   string
}

// Server holds the entries, files and account of one user.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	user     entry.User
	entries  map[string]*entry.Entry
	public   []*entry.Entry
	files    map[string]bool
	requests []Request

	// Fail forces the status for requests whose "METHOD path" has this
	// prefix, e.g. "DELETE /api/files/".
	Fail map[string]int
}

// New starts a server that is closed with the test.
func New(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		user:    entry.User{ID: "u1", Email: Email, DisplayName: "Me"},
		entries: make(map[string]*entry.Entry),
		files:   make(map[string]bool),
		Fail:    make(map[string]int),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("GET /api/auth/me", s.authed(s.me))
	mux.HandleFunc("GET /api/diaries", s.authed(s.list))
	mux.HandleFunc("GET /api/diaries/public", s.listPublic)
	mux.HandleFunc("POST /api/diaries", s.authed(s.create))
	mux.HandleFunc("PUT /api/diaries/{id}", s.authed(s.update))
	mux.HandleFunc("PATCH /api/diaries/{id}/visibility", s.authed(s.visibility))
	mux.HandleFunc("DELETE /api/diaries/{id}", s.authed(s.remove))
	mux.HandleFunc("POST /api/upload/{kind}", s.authed(s.upload))
	mux.HandleFunc("DELETE /api/files/{name}", s.authed(s.deleteFile))
	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// Client returns a client for the server carrying token.
func (s *Server) Client(token string) *api.Client {
	return api.NewClient(s.URL, api.WithToken(token))
}

// Seed stores entries as the user's own. Entries without an id get one.
func (s *Server) Seed(entries ...*entry.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		cp := *e
		s.entries[e.ID] = &cp
		for _, name := range []*string{e.ImageName, e.AudioName} {
			if name != nil && *name != "" {
				s.files[*name] = true
			}
		}
	}
}

// SeedPublic adds entries of other authors to the public feed.
func (s *Server) SeedPublic(entries ...*entry.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.public = append(s.public, entries...)
}

// Entry returns the stored entry id, or nil.
func (s *Server) Entry(id string) *entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok {
		cp := *e
		return &cp
	}
	return nil
}

// Len is the number of the user's entries.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// HasFile reports whether an attachment is still stored.
func (s *Server) HasFile(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[name]
}

// Requests returns the calls made with method whose path has prefix.
func (s *Server) Requests(method, prefix string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Request
	for _, r := range s.requests {
		if r.Method == method && strings.HasPrefix(r.Path, prefix) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path})
		status := 0
		for prefix, code := range s.Fail {
			if strings.HasPrefix(r.Method+" "+r.URL.Path, prefix) {
				status = code
			}
		}
		s.mu.Unlock()
		if status != 0 {
			writeError(w, status, "forced failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		h(w, r)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if creds.Email != Email || creds.Password != Password {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, api.AuthResult{Token: Token, User: s.user})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var reg api.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if reg.Email == Email {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	u := entry.User{ID: uuid.NewString(), Email: reg.Email, DisplayName: reg.DisplayName}
	writeData(w, http.StatusCreated, api.AuthResult{Token: Token, User: u})
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, s.user)
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entry.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeData(w, http.StatusOK, out)
}

func (s *Server) listPublic(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entry.Entry, 0, len(s.entries)+len(s.public))
	for _, e := range s.entries {
		if e.IsPublic {
			cp := *e
			cp.Author = &entry.Author{Name: s.user.DisplayName}
			out = append(out, &cp)
		}
	}
	out = append(out, s.public...)
	writeData(w, http.StatusOK, out)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	e, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	e.ID = uuid.NewString()
	e.UserID = s.user.ID
	e.Created = entry.Timestamp{Time: time.Now()}
	s.mu.Lock()
	s.entries[e.ID] = e
	s.mu.Unlock()
	writeData(w, http.StatusCreated, e)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	old, found := s.entries[id]
	s.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "diary not found")
		return
	}
	e, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	e.ID = id
	e.UserID = old.UserID
	e.Created = old.Created
	e.Updated = entry.Timestamp{Time: time.Now()}
	s.mu.Lock()
	s.entries[id] = e
	s.mu.Unlock()
	writeData(w, http.StatusOK, e)
}

func (s *Server) visibility(w http.ResponseWriter, r *http.Request) {
	var v api.Visibility
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		writeError(w, http.StatusNotFound, "diary not found")
		return
	}
	e.IsPublic = v.IsPublic
	writeData(w, http.StatusOK, api.Visibility{ID: id, IsPublic: v.IsPublic})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		writeError(w, http.StatusNotFound, "diary not found")
		return
	}
	delete(s.entries, id)
	writeData(w, http.StatusOK, map[string]string{"message": "diary deleted"})
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	f, hdr, err := r.FormFile(kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	_ = f.Close()
	name := uuid.NewString() + filepath.Ext(hdr.Filename)
	s.mu.Lock()
	s.files[name] = true
	s.mu.Unlock()
	writeData(w, http.StatusOK, api.FileRef{URL: "/uploads/" + name, Name: name})
}

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.files[name] {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	delete(s.files, name)
	writeData(w, http.StatusOK, map[string]string{"message": "file deleted"})
}

// decodeDraft reads a draft body into an entry; the JSON names match.
func decodeDraft(w http.ResponseWriter, r *http.Request) (*entry.Entry, bool) {
	var d entry.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return nil, false
	}
	data, _ := json.Marshal(d)
	var e entry.Entry
	if err := json.Unmarshal(data, &e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return nil, false
	}
	return &e, true
}

func writeData(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": v})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
