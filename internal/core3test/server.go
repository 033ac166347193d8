// Package core3test runs a stub Core3 REST server over TLS for tests.
package core3test

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"swgapi/internal/model"
)

const Token = "swgemu_secure_api_token_12345"

// Request is what the stub saw of one incoming call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers http.Header
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
}

// NewServer starts a self-signed TLS stub that serves the six Core3 routes
// and requires Token as a bearer token.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{}
	s.Server = httptest.NewTLSServer(s.router())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.record)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(requireToken)

	v1.HandleFunc("/version/", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, map[string]any{"version": "1.0", "core3": "swgemu-core3"})
	}).Methods(http.MethodGet)

	v1.HandleFunc("/object/{oid}/", func(w http.ResponseWriter, r *http.Request) {
		oid := mux.Vars(r)["oid"]
		if oid != "12345" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		respondJSON(w, map[string]any{"oid": oid, "objectName": "tatooine_city_hall"})
	}).Methods(http.MethodGet)

	v1.HandleFunc("/admin/config/", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, map[string]any{"Core3.RESTServer.Port": 44443})
	}).Methods(http.MethodGet)

	v1.HandleFunc("/admin/stats/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	v1.HandleFunc("/lookup/character/", lookup("character")).Methods(http.MethodGet)
	v1.HandleFunc("/lookup/guild/", lookup("guild")).Methods(http.MethodGet)

	return r
}

func lookup(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		out := map[string]any{"kind": kind}
		for _, k := range []string{"name", "oid"} {
			if v := q.Get(k); v != "" {
				out[k] = v
			}
		}
		respondJSON(w, out)
	}
}

func requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+Token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:  r.Method,
			Path:    r.URL.Path,
			Query:   r.URL.Query(),
			Headers: r.Header.Clone(),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the most recent request, if any.
func (s *Server) Last() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Connection points a connection at the stub with the right token.
func (s *Server) Connection() model.Connection {
	return ConnectionFor(s.Server, Token)
}

// ConnectionFor builds a connection aimed at any httptest server.
func ConnectionFor(srv *httptest.Server, token string) model.Connection {
	u, err := url.Parse(srv.URL)
	if err != nil {
		panic(err)
	}
	host, portStr, _ := net.SplitHostPort(u.Host)
	port, _ := strconv.Atoi(portStr)
	conn := model.DefaultConnection()
	conn.Host = strings.Trim(host, "[]")
	conn.Port = port
	conn.Token = token
	return conn
}
