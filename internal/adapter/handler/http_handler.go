package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rl1809/updatechecker/internal/common"
	"github.com/rl1809/updatechecker/internal/core/domain"
	"github.com/rl1809/updatechecker/internal/core/service"
)

const apiKeyHeader = "X-API-Key"

type HTTPHandler struct {
	queryService   *service.QueryService
	refreshService *service.RefreshService
	apiKey         string
	router         chi.Router
}

type OutcomeResponse struct {
	SoftwareID string `json:"software_id"`
	Status     string `json:"status"`
	Version    string `json:"version,omitempty"`
	Previous   string `json:"previous,omitempty"`
	Error      string `json:"error,omitempty"`
}

type RefreshHTTPResponse struct {
	Updated   int               `json:"updated"`
	Unchanged int               `json:"unchanged"`
	Failed    int               `json:"failed"`
	Outcomes  []OutcomeResponse `json:"outcomes"`
}

func NewHTTPHandler(queryService *service.QueryService, refreshService *service.RefreshService, apiKey string) *HTTPHandler {
	h := &HTTPHandler{
		queryService:   queryService,
		refreshService: refreshService,
		apiKey:         apiKey,
		router:         chi.NewRouter(),
	}
	h.routes()
	return h
}

func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *HTTPHandler) routes() {
	logger := common.Logger()
	h.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	h.router.Get("/health", h.HealthCheck)
	h.router.Handle("/metrics", promhttp.Handler())
	h.router.Get("/software", h.ListSoftware)
	h.router.Get("/software/{id}", h.ListVersions)
	h.router.Get("/software/{id}/{version}", h.GetVersion)
	h.router.Post("/refresh", h.Refresh)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) ListSoftware(w http.ResponseWriter, r *http.Request) {
	ids, err := h.queryService.ListSoftware(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"software": ids})
}

func (h *HTTPHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	view, err := h.queryService.ListVersions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *HTTPHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	detail, err := h.queryService.GetVersion(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "version"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Refresh runs one full refresh cycle synchronously. It is disabled when no
// API key is configured.
func (h *HTTPHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !validAPIKey(h.apiKey, r.Header.Get(apiKeyHeader)) {
		writeError(w, http.StatusForbidden, errors.New("invalid or missing api key"))
		return
	}

	outcomes := h.refreshService.RefreshAll(r.Context())
	resp := RefreshHTTPResponse{Outcomes: make([]OutcomeResponse, 0, len(outcomes))}
	for _, o := range outcomes {
		switch o.Status {
		case domain.RefreshUpdated:
			resp.Updated++
		case domain.RefreshUnchanged:
			resp.Unchanged++
		default:
			resp.Failed++
		}
		resp.Outcomes = append(resp.Outcomes, toOutcomeResponse(o))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toOutcomeResponse(o domain.RefreshOutcome) OutcomeResponse {
	resp := OutcomeResponse{
		SoftwareID: o.SoftwareID,
		Status:     string(o.Status),
		Version:    o.Version,
		Previous:   o.Previous,
	}
	if o.Err != nil {
		resp.Error = o.Err.Error()
	}
	return resp
}

func validAPIKey(configured, provided string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(provided)) == 1
}

func statusFor(err error) int {
	if errors.Is(err, service.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
