package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/roomgraph/internal/workspace"
	"github.com/matzehuels/roomgraph/pkg/buildinfo"
	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Short()})
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	types := s.ws.Catalog.Types()
	out := make([]typeView, len(types))
	for i, t := range types {
		out[i] = newTypeView(t)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	names, err := s.ws.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"graphs": names})
}

func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	// Holding the registry lock keeps a concurrent create of the same name
	// from racing the store check.
	s.mu.Lock()
	g, err := s.ws.Create(r.Context(), req.Name)
	if err == nil {
		s.sessions[req.Name] = &session{g: g}
	}
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newGraphView(req.Name, g))
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var view graphView
	err := s.withGraph(r.Context(), name, func(g *roomgraph.Graph) (bool, error) {
		view = newGraphView(name, g)
		return false, nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.deleteGraph(r.Context(), name); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var view validateView
	err := s.withGraph(r.Context(), chi.URLParam(r, "name"), func(g *roomgraph.Graph) (bool, error) {
		view = newValidateView(roomgraph.Audit(g))
		return false, nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCreateNode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string  `json:"type"`
		X    float64 `json:"x"`
		Y    float64 `json:"y"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var view nodeView
	err := s.withGraph(r.Context(), chi.URLParam(r, "name"), func(g *roomgraph.Graph) (bool, error) {
		var (
			n   *roomgraph.Node
			err error
		)
		if req.Type == "" {
			n, err = g.CreateDefaultNode(req.X, req.Y)
		} else {
			t, lerr := s.ws.LookupType(req.Type)
			if lerr != nil {
				return false, lerr
			}
			n, err = g.CreateNode(req.X, req.Y, t)
		}
		if err != nil {
			return false, workspace.Translate(err)
		}
		view = newNodeView(n)
		return true, nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleDeleteNode(w http.ResponseWriter, r *http.Request) {
	err := s.withGraph(r.Context(), chi.URLParam(r, "name"), func(g *roomgraph.Graph) (bool, error) {
		n, err := workspace.ResolveNode(g, chi.URLParam(r, "id"))
		if err != nil {
			return false, err
		}
		return true, workspace.DeleteNode(g, n)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp struct {
		Node    nodeView `json:"node"`
		Severed int      `json:"severed"`
	}
	err := s.withGraph(r.Context(), chi.URLParam(r, "name"), func(g *roomgraph.Graph) (bool, error) {
		n, err := workspace.ResolveNode(g, chi.URLParam(r, "id"))
		if err != nil {
			return false, err
		}
		t, err := s.ws.LookupType(req.Type)
		if err != nil {
			return false, err
		}
		severed, err := g.SetType(n.ID(), t)
		if err != nil {
			return false, workspace.Translate(err)
		}
		resp.Node, resp.Severed = newNodeView(n), severed
		return true, nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetPosition(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var view nodeView
	err := s.withGraph(r.Context(), chi.URLParam(r, "name"), func(g *roomgraph.Graph) (bool, error) {
		n, err := workspace.ResolveNode(g, chi.URLParam(r, "id"))
		if err != nil {
			return false, err
		}
		g.SetPosition(n.ID(), req.X, req.Y)
		view = newNodeView(n)
		return true, nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleSetSelected changes presentation state only; nothing is saved.
func (s *Server) handleSetSelected(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selected bool `json:"selected"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var view nodeView
	err := s.withGraph(r.Context(), chi.URLParam(r, "name"), func(g *roomgraph.Graph) (bool, error) {
		n, err := workspace.ResolveNode(g, chi.URLParam(r, "id"))
		if err != nil {
			return false, err
		}
		g.SetSelected(n.ID(), req.Selected)
		view = newNodeView(n)
		return false, nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Parent string `json:"parent"`
		Child  string `json:"child"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var view edgeView
	err := s.withGraph(r.Context(), chi.URLParam(r, "name"), func(g *roomgraph.Graph) (bool, error) {
		p, err := workspace.ResolveNode(g, req.Parent)
		if err != nil {
			return false, err
		}
		c, err := workspace.ResolveNode(g, req.Child)
		if err != nil {
			return false, err
		}
		if reason := g.Check(p.ID(), c.ID()); reason != roomgraph.ReasonOK {
			return false, workspace.ConnectError(p.ID(), c.ID(), reason)
		}
		g.TryConnect(p.ID(), c.ID())
		view = edgeView{Parent: p.ID(), Child: c.ID()}
		return true, nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	err := s.withGraph(r.Context(), chi.URLParam(r, "name"), func(g *roomgraph.Graph) (bool, error) {
		p, err := workspace.ResolveNode(g, chi.URLParam(r, "parent"))
		if err != nil {
			return false, err
		}
		c, err := workspace.ResolveNode(g, chi.URLParam(r, "child"))
		if err != nil {
			return false, err
		}
		return g.Disconnect(p.ID(), c.ID()), nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	var count int
	err := s.withGraph(r.Context(), chi.URLParam(r, "name"), func(g *roomgraph.Graph) (bool, error) {
		switch action {
		case "all":
			g.SelectAll()
			count = len(g.Selected())
			return false, nil
		case "clear":
			g.ClearSelection()
			return false, nil
		case "delete":
			count = g.DeleteSelected()
			return count > 0, nil
		case "unlink":
			count = g.DeleteSelectedLinks()
			return count > 0, nil
		}
		return false, rgerrors.New(rgerrors.ErrCodeInvalidInput, "unknown selection action %q", action)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}
