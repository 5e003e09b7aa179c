// Package server exposes room graph editing over a JSON HTTP API.
//
// Each named graph is held in memory as a session while the server runs,
// so presentation state such as the selection survives between requests.
// Every successful mutation is written back through the workspace store.
// Requests on the same graph are serialised; different graphs are edited
// concurrently.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/roomgraph/internal/workspace"
	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

// Server is the HTTP API over a workspace.
type Server struct {
	ws     *workspace.Workspace
	logger *log.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// session is one open graph. A closed session has been dropped from the
// registry and must not be edited or saved again.
type session struct {
	mu     sync.Mutex
	g      *roomgraph.Graph
	closed bool
}

// New creates a server. A nil logger uses log.Default().
func New(ws *workspace.Workspace, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{ws: ws, logger: logger, sessions: make(map[string]*session)}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/types", s.handleTypes)

	r.Route("/graphs", func(r chi.Router) {
		r.Get("/", s.handleListGraphs)
		r.Post("/", s.handleCreateGraph)

		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGetGraph)
			r.Delete("/", s.handleDeleteGraph)
			r.Get("/validate", s.handleValidate)

			r.Post("/nodes", s.handleCreateNode)
			r.Delete("/nodes/{id}", s.handleDeleteNode)
			r.Put("/nodes/{id}/type", s.handleSetType)
			r.Put("/nodes/{id}/position", s.handleSetPosition)
			r.Put("/nodes/{id}/selected", s.handleSetSelected)

			r.Post("/edges", s.handleConnect)
			r.Delete("/edges/{parent}/{child}", s.handleDisconnect)

			r.Post("/selection/{action}", s.handleSelection)
		})
	})
	return r
}

// ListenAndServe serves the API on addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// open returns the session for name, loading it from the store on first
// use. The caller must hold sess.mu while touching the graph.
func (s *Server) open(ctx context.Context, name string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[name]; ok {
		return sess, nil
	}
	g, err := s.ws.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	sess := &session{g: g}
	s.sessions[name] = sess
	return sess, nil
}

// lock returns the named session with its mutex held. Sessions dropped
// while the caller waited are skipped and the graph is reloaded.
func (s *Server) lock(ctx context.Context, name string) (*session, error) {
	for {
		sess, err := s.open(ctx, name)
		if err != nil {
			return nil, err
		}
		sess.mu.Lock()
		if !sess.closed {
			return sess, nil
		}
		sess.mu.Unlock()
	}
}

// drop closes sess and removes it from the registry. The caller holds
// sess.mu.
func (s *Server) drop(name string, sess *session) {
	sess.closed = true
	s.mu.Lock()
	if s.sessions[name] == sess {
		delete(s.sessions, name)
	}
	s.mu.Unlock()
}

// withGraph runs fn on the named graph under its session lock. When fn
// reports a change, the graph is saved before the lock is released. If the
// save fails the session is dropped, so the next request reloads the graph
// as stored and the failed edit is not visible.
func (s *Server) withGraph(ctx context.Context, name string, fn func(g *roomgraph.Graph) (changed bool, err error)) error {
	sess, err := s.lock(ctx, name)
	if err != nil {
		return err
	}
	defer sess.mu.Unlock()

	changed, err := fn(sess.g)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := s.ws.Save(ctx, name, sess.g); err != nil {
		s.drop(name, sess)
		return err
	}
	return nil
}

// deleteGraph removes name from the store while holding its session, so no
// edit in flight can save the graph back afterwards.
func (s *Server) deleteGraph(ctx context.Context, name string) error {
	sess, err := s.lock(ctx, name)
	if rgerrors.Is(err, rgerrors.ErrCodeInvalidGraph) {
		// An undecodable graph never gets a session; delete it as stored.
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.ws.Delete(ctx, name)
	}
	if err != nil {
		return err
	}
	defer sess.mu.Unlock()

	if err := s.ws.Delete(ctx, name); err != nil {
		return err
	}
	s.drop(name, sess)
	return nil
}
