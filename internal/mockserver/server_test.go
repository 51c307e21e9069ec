package mockserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/schism-dev/schism/internal/config"
	"github.com/schism-dev/schism/internal/dataset"
	"github.com/schism-dev/schism/internal/middleware"
)

// newTestServer builds a server over a temp-dir dataset store seeded
// with a "greetings" dataset and the given routes.
func newTestServer(t *testing.T, routes []config.Route) (*Server, *dataset.Store) {
	t.Helper()

	dir := t.TempDir()
	content := `[
  {"id": 4, "message": "Hello World!"},
  {"id": 5, "message": "Goodbye!"},
  {"id": 6, "message": "Hello World!"}
]`
	if err := os.WriteFile(filepath.Join(dir, "greetings.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}

	store := dataset.NewStore(dir)
	if err := store.Load("greetings"); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	project := &config.Project{
		Middleware: map[string]middleware.Settings{
			"auth_token":  {"accepted_token": "validtoken123", "flag_driven": true},
			"input_check": {"flag_driven": true},
		},
		Routes: routes,
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(project, store, middleware.DefaultRegistry(), NewFlagSet(), log), store
}

// do performs a request against the server handler and decodes the JSON body.
func do(t *testing.T, s *Server, method, target, body, auth string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response body %q is not a JSON object: %v", rec.Body.String(), err)
	}
	return rec.Code, decoded
}

func getRoute(singular bool) config.Route {
	meta := config.RouteMetadata{}
	if singular {
		meta["singular_response"] = true
	}
	return config.Route{
		Method:   http.MethodGet,
		Endpoint: "/hello/{id}",
		DataSet:  "greetings",
		Metadata: meta,
	}
}

func TestGetSingular(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, []config.Route{getRoute(true)})

	status, body := do(t, s, http.MethodGet, "/hello/4", "", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body["message"] != "Hello World!" {
		t.Errorf("body = %v, want bare entry", body)
	}
}

func TestGetSingularMultipleMatches(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, []config.Route{{
		Method:   http.MethodGet,
		Endpoint: "/greetings",
		DataSet:  "greetings",
		Metadata: config.RouteMetadata{"singular_response": true},
	}})

	status, body := do(t, s, http.MethodGet, "/greetings?message=Hello+World!", "", "")
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	want := "2 entries found, this endpoint expects a single entry to be found."
	if body["error"] != want {
		t.Errorf("error = %v, want %q", body["error"], want)
	}
}

func TestGetQueryParamOverridesPathParam(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, []config.Route{getRoute(true)})

	// Both the path and the query carry an id; the query value wins.
	status, body := do(t, s, http.MethodGet, "/hello/4?id=5", "", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body["message"] != "Goodbye!" {
		t.Errorf("body = %v, want the entry selected by the query id", body)
	}
}

func TestGetPlural(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, []config.Route{{
		Method:   http.MethodGet,
		Endpoint: "/greetings",
		DataSet:  "greetings",
	}})

	status, body := do(t, s, http.MethodGet, "/greetings", "", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 3 {
		t.Errorf(`body["data"] = %v, want 3 entries`, body["data"])
	}
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, []config.Route{getRoute(true)})

	status, body := do(t, s, http.MethodGet, "/hello/99", "", "")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if body["error"] != "Item not found" {
		t.Errorf("error = %v, want Item not found", body["error"])
	}
}

func TestUnknownDataset(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, []config.Route{{
		Method:   http.MethodGet,
		Endpoint: "/ghosts",
		DataSet:  "ghosts",
	}})

	status, body := do(t, s, http.MethodGet, "/ghosts", "", "")
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if body["error"] != "dataset ghosts not found" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestAuthTokenMiddleware(t *testing.T) {
	t.Parallel()

	route := getRoute(true)
	route.Middleware = []string{"auth_token"}
	s, _ := newTestServer(t, []config.Route{route})

	status, body := do(t, s, http.MethodGet, "/hello/4", "", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", status)
	}
	if body["error"] != "Unauthorized" {
		t.Errorf("error = %v", body["error"])
	}

	status, _ = do(t, s, http.MethodGet, "/hello/4", "", "Bearer validtoken123")
	if status != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", status)
	}
}

func TestMiddlewareFailFlagIsOneShot(t *testing.T) {
	t.Parallel()

	route := getRoute(true)
	route.Middleware = []string{"auth_token"}
	s, _ := newTestServer(t, []config.Route{route})

	s.Flags().Arm(MiddlewareKey("auth_token"))

	status, body := do(t, s, http.MethodGet, "/hello/4", "", "Bearer validtoken123")
	if status != http.StatusForbidden {
		t.Fatalf("armed status = %d, want 403", status)
	}
	if body["error"] != "Simulated auth failure" {
		t.Errorf("error = %v", body["error"])
	}

	// The flag clears after one use.
	status, _ = do(t, s, http.MethodGet, "/hello/4", "", "Bearer validtoken123")
	if status != http.StatusOK {
		t.Errorf("second request status = %d, want 200", status)
	}
}

func TestRouteFailFlagIsOneShot(t *testing.T) {
	t.Parallel()

	route := getRoute(true)
	s, _ := newTestServer(t, []config.Route{route})

	s.Flags().Arm(route.Key())

	status, body := do(t, s, http.MethodGet, "/hello/4", "", "")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("armed status = %d, want 503", status)
	}
	if body["error"] != "Simulated route failure" {
		t.Errorf("error = %v", body["error"])
	}

	status, _ = do(t, s, http.MethodGet, "/hello/4", "", "")
	if status != http.StatusOK {
		t.Errorf("second request status = %d, want 200", status)
	}
}

func TestPostCreatesEntry(t *testing.T) {
	t.Parallel()

	s, store := newTestServer(t, []config.Route{{
		Method:   http.MethodPost,
		Endpoint: "/greetings",
		DataSet:  "greetings",
		Metadata: config.RouteMetadata{
			"creates_entry":      true,
			"creates_uuid":       true,
			"creates_created_at": true,
			"creates_updated_at": true,
		},
	}})

	status, body := do(t, s, http.MethodPost, "/greetings", `{"id": 7, "message": "Hi"}`, "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body["uuid"] == nil || body["uuid"] == "" {
		t.Error("response missing generated uuid")
	}
	if body["created_at"] == nil {
		t.Error("response missing created_at")
	}
	if v, ok := body["updated_at"]; !ok || v != nil {
		t.Errorf("updated_at = %v, want explicit null", v)
	}

	entries, _ := store.Entries("greetings")
	if len(entries) != 4 {
		t.Errorf("dataset has %d entries after POST, want 4", len(entries))
	}
}

func TestPostWithoutCreatesEntry(t *testing.T) {
	t.Parallel()

	s, store := newTestServer(t, []config.Route{{
		Method:   http.MethodPost,
		Endpoint: "/greetings",
		DataSet:  "greetings",
	}})

	status, body := do(t, s, http.MethodPost, "/greetings", `{"id": 7}`, "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body["message"] != "Successful post, no entries created" {
		t.Errorf("message = %v", body["message"])
	}
	entries, _ := store.Entries("greetings")
	if len(entries) != 3 {
		t.Errorf("dataset has %d entries, want unchanged 3", len(entries))
	}
}

func TestPostInvalidBody(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, []config.Route{{
		Method:   http.MethodPost,
		Endpoint: "/greetings",
		DataSet:  "greetings",
	}})

	status, _ := do(t, s, http.MethodPost, "/greetings", "{broken", "")
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	t.Run("requires selector", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestServer(t, []config.Route{{
			Method: http.MethodDelete, Endpoint: "/greetings", DataSet: "greetings",
		}})
		status, body := do(t, s, http.MethodDelete, "/greetings", "", "")
		if status != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", status)
		}
		if body["error"] != "DELETE route requires path or query parameters to locate entry" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestServer(t, []config.Route{{
			Method: http.MethodDelete, Endpoint: "/greetings/{id}", DataSet: "greetings",
		}})
		status, body := do(t, s, http.MethodDelete, "/greetings/99", "", "")
		if status != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", status)
		}
		if body["error"] != "No matching entries found to delete" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("singular removes one", func(t *testing.T) {
		t.Parallel()
		s, store := newTestServer(t, []config.Route{{
			Method: http.MethodDelete, Endpoint: "/greetings/{id}", DataSet: "greetings",
			Metadata: config.RouteMetadata{"singular_response": true},
		}})
		status, body := do(t, s, http.MethodDelete, "/greetings/5", "", "")
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if body["message"] != "Goodbye!" {
			t.Errorf("body = %v, want deleted entry", body)
		}
		entries, _ := store.Entries("greetings")
		if len(entries) != 2 {
			t.Errorf("dataset has %d entries, want 2", len(entries))
		}
	})

	t.Run("singular refuses multiple", func(t *testing.T) {
		t.Parallel()
		s, store := newTestServer(t, []config.Route{{
			Method: http.MethodDelete, Endpoint: "/greetings", DataSet: "greetings",
			Metadata: config.RouteMetadata{"singular_response": true},
		}})
		status, _ := do(t, s, http.MethodDelete, "/greetings?message=Hello+World!", "", "")
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		entries, _ := store.Entries("greetings")
		if len(entries) != 3 {
			t.Errorf("dataset has %d entries after refused delete, want 3", len(entries))
		}
	})
}

func TestPut(t *testing.T) {
	t.Parallel()

	route := config.Route{
		Method: http.MethodPut, Endpoint: "/greetings/{id}", DataSet: "greetings",
	}

	t.Run("replaces entry", func(t *testing.T) {
		t.Parallel()
		s, store := newTestServer(t, []config.Route{route})
		status, body := do(t, s, http.MethodPut, "/greetings/4", `{"id": 4, "message": "Edited"}`, "")
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if body["message"] != "Edited" {
			t.Errorf("body = %v, want updated entry", body)
		}
		entries, _ := store.Query("greetings", map[string]string{"id": "4"})
		if len(entries) != 1 || entries[0]["message"] != "Edited" {
			t.Errorf("stored entry = %v", entries)
		}
	})

	t.Run("no body", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestServer(t, []config.Route{route})
		status, body := do(t, s, http.MethodPut, "/greetings/4", "", "")
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["error"] != "No body provided" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestServer(t, []config.Route{route})
		status, body := do(t, s, http.MethodPut, "/greetings/99", `{"message": "x"}`, "")
		if status != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", status)
		}
		if body["error"] != "No matching entry found to update" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("multiple matches", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestServer(t, []config.Route{{
			Method: http.MethodPut, Endpoint: "/greetings", DataSet: "greetings",
		}})
		status, _ := do(t, s, http.MethodPut, "/greetings?message=Hello+World!", `{"message": "x"}`, "")
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})
}
