// Package resourcetest provides an in-memory REST server for exercising the
// resource client in tests.
package resourcetest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/andzheyevskiy/Toolbox/pkg/auth"
)

// Item is a stored resource. Every item has a numeric "id".
type Item = map[string]any

// Request is a recorded incoming request.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

type collection struct {
	nextID int
	order  []int
	items  map[int]Item
}

// Server serves GET/POST on /{collection} and GET/PUT/DELETE on
// /{collection}/{id}. Collections must be seeded with WithCollection.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	collections map[string]*collection
	requests    []Request
	jwtSecret   []byte
}

// Option configures a Server.
type Option func(*Server)

// WithCollection seeds a collection. Items get ids 1..n in order.
func WithCollection(name string, items ...Item) Option {
	return func(s *Server) {
		c := &collection{nextID: 1, items: make(map[int]Item)}
		for _, item := range items {
			c.insert(item)
		}
		s.collections[name] = c
	}
}

// WithJWTSecret requires every request to carry a bearer token signed with
// secret. Missing tokens get 401, invalid ones 403.
func WithJWTSecret(secret []byte) Option {
	return func(s *Server) {
		s.jwtSecret = secret
	}
}

// NewServer starts a server. Call Close when done.
func NewServer(opts ...Option) *Server {
	s := &Server{collections: make(map[string]*collection)}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.Use(s.record, s.authenticate)
	r.HandleFunc("/{collection}", s.list).Methods(http.MethodGet)
	r.HandleFunc("/{collection}", s.create).Methods(http.MethodPost)
	r.HandleFunc("/{collection}/{id}", s.get).Methods(http.MethodGet)
	r.HandleFunc("/{collection}/{id}", s.update).Methods(http.MethodPut)
	r.HandleFunc("/{collection}/{id}", s.remove).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	return s
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Items returns the items of a collection in insertion order.
func (s *Server) Items(name string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		return nil
	}
	items := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, c.items[id])
	}
	return items
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.jwtSecret == nil {
			next.ServeHTTP(w, r)
			return
		}

		token := auth.TokenFromHeader(r.Header.Get(auth.DefaultHeader))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}
		if _, err := auth.ParseToken(s.jwtSecret, token); err != nil {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	filters := r.URL.Query()
	items := []Item{}
	for _, id := range c.order {
		item := c.items[id]
		if matches(item, filters) {
			items = append(items, item)
		}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var item Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, c.insert(item))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, id, ok := s.lookupItem(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.items[id])
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var item Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, id, ok := s.lookupItem(w, r)
	if !ok {
		return
	}
	item["id"] = id
	c.items[id] = item
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, id, ok := s.lookupItem(w, r)
	if !ok {
		return
	}
	delete(c.items, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// lookup must be called with s.mu held.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*collection, bool) {
	name := mux.Vars(r)["collection"]
	c, ok := s.collections[name]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("collection %s not found", name))
	}
	return c, ok
}

// lookupItem must be called with s.mu held.
func (s *Server) lookupItem(w http.ResponseWriter, r *http.Request) (*collection, int, bool) {
	c, ok := s.lookup(w, r)
	if !ok {
		return nil, 0, false
	}

	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid id %q", raw))
		return nil, 0, false
	}
	if _, ok := c.items[id]; !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("item %d not found", id))
		return nil, 0, false
	}
	return c, id, true
}

func (c *collection) insert(item Item) Item {
	stored := make(Item, len(item)+1)
	for k, v := range item {
		stored[k] = v
	}
	stored["id"] = c.nextID
	c.items[c.nextID] = stored
	c.order = append(c.order, c.nextID)
	c.nextID++
	return stored
}

func matches(item Item, filters map[string][]string) bool {
	for k, values := range filters {
		if len(values) == 0 {
			continue
		}
		if fmt.Sprint(item[k]) != values[0] {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
