package mockserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/schism-dev/schism/internal/config"
	"github.com/schism-dev/schism/internal/dataset"
	"github.com/schism-dev/schism/internal/middleware"
)

// routeHandler dispatches to the method-specific handler after the
// shared preamble: dataset presence, route failure flag, middleware
// chain.
func (s *Server) routeHandler(route config.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.store.Has(route.DataSet) {
			writeJSON(w, http.StatusInternalServerError,
				errorBody(fmt.Sprintf("dataset %s not found", route.DataSet)))
			return
		}
		if s.flags.Consume(route.Key()) {
			writeJSON(w, http.StatusServiceUnavailable, errorBody("Simulated route failure"))
			return
		}
		if v := s.runMiddleware(r, route); v != nil {
			writeJSON(w, v.Status, v.Body)
			return
		}

		switch route.Method {
		case http.MethodGet:
			s.handleGet(w, r, route)
		case http.MethodPost:
			s.handlePost(w, r, route)
		case http.MethodPut:
			s.handlePut(w, r, route)
		case http.MethodDelete:
			s.handleDelete(w, r, route)
		}
	}
}

// runMiddleware runs the route's middleware chain in order and returns
// the first short-circuit verdict, or nil when all pass. An armed
// middleware flag takes the place of the real check for flag-driven
// middleware.
func (s *Server) runMiddleware(r *http.Request, route config.Route) *middleware.Verdict {
	for _, name := range route.Middleware {
		m, err := s.registry.Get(name)
		if err != nil {
			return middleware.ErrorVerdict(http.StatusInternalServerError,
				fmt.Sprintf("unknown middleware %s", name))
		}
		cfg := s.project.Middleware[name]
		if middleware.FlagDriven(cfg) && s.flags.Consume(MiddlewareKey(name)) {
			return m.FailVerdict()
		}
		if v := m.Handle(r, cfg, middleware.Metadata(route.Metadata)); v != nil {
			return v
		}
	}
	return nil
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, route config.Route) {
	entries, err := s.store.Query(route.DataSet, requestParams(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	if len(entries) == 0 {
		writeJSON(w, http.StatusNotFound, errorBody("Item not found"))
		return
	}
	if route.Metadata.Singular() {
		if len(entries) != 1 {
			writeJSON(w, http.StatusBadRequest, errorBody(singularMessage(len(entries))))
			return
		}
		writeJSON(w, http.StatusOK, entries[0])
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": entries})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request, route config.Route) {
	body, err := decodeBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid JSON body"))
		return
	}

	meta := route.Metadata
	if meta.CreatesUUID() {
		body["uuid"] = uuid.NewString()
	}
	if meta.CreatesCreatedAt() {
		body["created_at"] = time.Now().UTC().Format(time.RFC3339)
	}
	if meta.CreatesUpdatedAt() {
		body["updated_at"] = nil
	}

	if !meta.CreatesEntry() {
		writeJSON(w, http.StatusOK, map[string]any{"message": "Successful post, no entries created"})
		return
	}
	if err := s.store.Insert(route.DataSet, body); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, route config.Route) {
	params := requestParams(r)
	if len(params) == 0 {
		writeJSON(w, http.StatusInternalServerError,
			errorBody("DELETE route requires path or query parameters to locate entry"))
		return
	}

	removed, err := s.store.Remove(route.DataSet, params, route.Metadata.Singular())
	switch {
	case errors.Is(err, dataset.ErrNoMatch):
		writeJSON(w, http.StatusNotFound, errorBody("No matching entries found to delete"))
		return
	case errors.Is(err, dataset.ErrMultipleMatches):
		writeJSON(w, http.StatusBadRequest, errorBody(singularMessage(matchCount(err))))
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}

	if route.Metadata.Singular() {
		writeJSON(w, http.StatusOK, removed[0])
		return
	}
	writeJSON(w, http.StatusOK, removed)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request, route config.Route) {
	body, err := decodeBody(r)
	if err != nil || len(body) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("No body provided"))
		return
	}
	params := requestParams(r)
	if len(params) == 0 {
		writeJSON(w, http.StatusBadRequest,
			errorBody("PUT route requires path or query parameters to locate entry"))
		return
	}

	updated, err := s.store.Replace(route.DataSet, params, body)
	switch {
	case errors.Is(err, dataset.ErrNoMatch):
		writeJSON(w, http.StatusNotFound, errorBody("No matching entry found to update"))
		return
	case errors.Is(err, dataset.ErrMultipleMatches):
		writeJSON(w, http.StatusBadRequest, errorBody(singularMessage(matchCount(err))))
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// requestParams merges chi URL params and query params into one filter
// map. Query params win on key collision.
func requestParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// decodeBody decodes the request body as a JSON object.
func decodeBody(r *http.Request) (dataset.Entry, error) {
	var body dataset.Entry
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// singularMessage is the shared error text for singular routes that
// matched a different number of entries.
func singularMessage(n int) string {
	return fmt.Sprintf("%d entries found, this endpoint expects a single entry to be found.", n)
}

// matchCount extracts the count from a MultipleMatchesError.
func matchCount(err error) int {
	var m *dataset.MultipleMatchesError
	if errors.As(err, &m) {
		return m.Count
	}
	return 0
}

func errorBody(message string) map[string]any {
	return map[string]any{"error": message}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
