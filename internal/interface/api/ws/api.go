package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"esbBot/internal/usecase/commands"
	"esbBot/internal/usecase/esbconfig"
)

// SettingsManager is the esb configuration as exposed over HTTP.
type SettingsManager interface {
	Redacted() esbconfig.Config
	Overrides() map[string]string
	Configure(ctx context.Context, overrides map[string]string) error
	Reset(ctx context.Context) error
}

type apiHandlers struct {
	settings SettingsManager
	catalog  func() []commands.CommandDescriptor
	origins  originPolicy
}

func newAPIHandlers(cfg Config) *apiHandlers {
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = commands.BuiltinCommandCatalog
	}
	return &apiHandlers{
		settings: cfg.Settings,
		catalog:  catalog,
		origins:  newOriginPolicy(cfg.AllowedOrigins),
	}
}

func (a *apiHandlers) register(mux *http.ServeMux) {
	if a == nil || mux == nil {
		return
	}

	mux.HandleFunc("/api/commands", a.withCORS(a.handleCommands))
	if a.settings != nil {
		mux.HandleFunc("/api/esb/config", a.withCORS(a.handleEsbConfig))
	}
}

// withCORS refuses foreign origins outright, preflight included, and echoes
// accepted ones.
func (a *apiHandlers) withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.origins.allows(r) {
			log.Printf("api: refused %s %s from origin %q", r.Method, r.URL.Path, r.Header.Get("Origin"))
			writeError(w, http.StatusForbidden, "origin not allowed")
			return
		}
		setCORSHeaders(w, r.Header.Get("Origin"))
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

func setCORSHeaders(w http.ResponseWriter, origin string) {
	w.Header().Add("Vary", "Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
	}
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
}

type esbConfigResponse struct {
	Config    map[string]string `json:"config"`
	Overrides []string          `json:"overrides"`
}

type esbConfigRequest struct {
	Overrides map[string]string `json:"overrides"`
}

func (a *apiHandlers) handleCommands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, a.catalog())
}

func (a *apiHandlers) handleEsbConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.writeEsbConfig(w)

	case http.MethodPost:
		var req esbConfigRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.Overrides) == 0 {
			writeError(w, http.StatusBadRequest, "no overrides given")
			return
		}
		if err := a.settings.Configure(r.Context(), req.Overrides); err != nil {
			var verr *esbconfig.ValidationError
			if errors.As(err, &verr) {
				writeError(w, http.StatusBadRequest, verr.Error())
				return
			}
			log.Printf("api: esb configure failed: %v", err)
			writeError(w, http.StatusInternalServerError, "could not save configuration")
			return
		}
		a.writeEsbConfig(w)

	case http.MethodDelete:
		if err := a.settings.Reset(r.Context()); err != nil {
			log.Printf("api: esb reset failed: %v", err)
			writeError(w, http.StatusInternalServerError, "could not reset configuration")
			return
		}
		a.writeEsbConfig(w)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (a *apiHandlers) writeEsbConfig(w http.ResponseWriter) {
	persisted := a.settings.Overrides()
	overrides := make([]string, 0, len(persisted))
	for _, key := range esbconfig.KnownKeys() {
		if _, ok := persisted[key]; ok {
			overrides = append(overrides, key)
		}
	}
	writeJSON(w, http.StatusOK, esbConfigResponse{
		Config:    a.settings.Redacted(),
		Overrides: overrides,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
