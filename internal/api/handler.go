package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mpalani/payflow/internal/domain"
	"github.com/mpalani/payflow/internal/engine"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payflow_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payflow_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "endpoint"})

	transactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payflow_transactions_total",
		Help: "Transactions processed, labeled by type and outcome",
	}, []string{"type", "outcome"})
)

// Handler serves the transaction ingestion and account reporting endpoints.
// The engine requires a total order over transactions, so every engine call
// is serialized behind mu.
type Handler struct {
	mu     sync.Mutex
	engine *engine.Engine
	log    *zap.Logger
}

func NewHandler(e *engine.Engine, log *zap.Logger) *Handler {
	return &Handler{engine: e, log: log}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// submitRequest is the wire form of a transaction. Amount accepts a JSON
// number or string; decimal parses both exactly.
type submitRequest struct {
	Type   string           `json:"type"`
	Client uint16           `json:"client"`
	Tx     uint32           `json:"tx"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

func (h *Handler) SubmitTransaction(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/transactions"))
	defer timer.ObserveDuration()

	var req submitRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		httpRequestsTotal.WithLabelValues("POST", "/transactions", "400").Inc()
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	typ, err := domain.ParseType(req.Type)
	if err != nil {
		httpRequestsTotal.WithLabelValues("POST", "/transactions", "400").Inc()
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := domain.Record{Type: typ, Client: req.Client, Tx: req.Tx, Amount: req.Amount}

	h.mu.Lock()
	err = h.engine.Process(rec)
	h.mu.Unlock()

	if err != nil {
		status := statusFor(err)
		transactionsTotal.WithLabelValues(string(typ), "rejected").Inc()
		httpRequestsTotal.WithLabelValues("POST", "/transactions", strconv.Itoa(status)).Inc()
		h.log.Warn("transaction rejected",
			zap.String("type", string(typ)),
			zap.Uint16("client", rec.Client),
			zap.Uint32("tx", rec.Tx),
			zap.Error(err))
		respondWithError(w, status, err.Error())
		return
	}

	transactionsTotal.WithLabelValues(string(typ), "accepted").Inc()
	httpRequestsTotal.WithLabelValues("POST", "/transactions", "201").Inc()
	respondWithJSON(w, http.StatusCreated, map[string]any{
		"client": rec.Client,
		"tx":     rec.Tx,
		"status": "applied",
	})
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	accounts := h.engine.Ledger().Accounts()
	snapshots := make([]domain.Snapshot, 0, len(accounts))
	for _, a := range accounts {
		snapshots = append(snapshots, domain.NewSnapshot(a))
	}
	h.mu.Unlock()

	httpRequestsTotal.WithLabelValues("GET", "/accounts", "200").Inc()
	respondWithJSON(w, http.StatusOK, snapshots)
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 16)
	if err != nil {
		httpRequestsTotal.WithLabelValues("GET", "/accounts/{id}", "400").Inc()
		respondWithError(w, http.StatusBadRequest, "Invalid client id")
		return
	}

	h.mu.Lock()
	a, ok := h.engine.Ledger().Get(uint16(id))
	var snapshot domain.Snapshot
	if ok {
		snapshot = domain.NewSnapshot(a)
	}
	h.mu.Unlock()

	if !ok {
		httpRequestsTotal.WithLabelValues("GET", "/accounts/{id}", "404").Inc()
		respondWithError(w, http.StatusNotFound, "Account not found")
		return
	}

	httpRequestsTotal.WithLabelValues("GET", "/accounts/{id}", "200").Inc()
	respondWithJSON(w, http.StatusOK, snapshot)
}

// statusFor maps engine rejections onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrAccountFrozen):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, engine.ErrMissingAmount),
		errors.Is(err, engine.ErrInvalidAmount),
		errors.Is(err, engine.ErrInsufficientFunds),
		errors.Is(err, engine.ErrAlreadyUnderDispute),
		errors.Is(err, engine.ErrNotUnderDispute):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}
