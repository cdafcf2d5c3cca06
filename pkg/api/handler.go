package api

import (
	"encoding/json"
	"net/http"

	"github.com/pgoetz/csvclean/pkg/kit"
)

// NewRouter returns an http.Handler with all csvclean API routes.
func NewRouter(cfg Config) http.Handler {
	mux := http.NewServeMux()
	h := &handler{
		normalizeValue: normalizeValueEndpoint(cfg),
		cleanRows:      cleanRowsEndpoint(cfg),
		listKinds:      listKindsEndpoint(cfg),
		hasResolver:    cfg.Resolver != nil,
	}

	mux.HandleFunc("GET /v1/clean", methodNotAllowed) // prevent GET on clean
	mux.HandleFunc("POST /v1/clean", h.handleClean)
	mux.HandleFunc("GET /v1/normalize/{kind}", h.handleNormalize)
	mux.HandleFunc("GET /v1/kinds", h.handleKinds)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	normalizeValue kit.Endpoint
	cleanRows      kit.Endpoint
	listKinds      kit.Endpoint
	hasResolver    bool
}

// --- normalize single value ---

func (h *handler) handleNormalize(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	q := r.URL.Query()
	if !q.Has("value") {
		writeError(w, http.StatusBadRequest, "missing value parameter")
		return
	}
	// An explicit empty value is a legal cell state and flows through the
	// normalizer like any other cell.
	value := q.Get("value")

	resp, err := h.normalizeValue(r.Context(), &normalizeReq{Kind: kind, Value: value})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- clean rows ---

func (h *handler) handleClean(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MiB max
	var req cleanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.cleanRows(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- list kinds ---

func (h *handler) handleKinds(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listKinds(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status   string `json:"status"`
	Resolver bool   `json:"resolver"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Resolver: h.hasResolver})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
