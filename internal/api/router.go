package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the HTTP surface: health, metrics and the v1 API.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/transactions", h.SubmitTransaction).Methods(http.MethodPost)
	apiV1.HandleFunc("/accounts", h.ListAccounts).Methods(http.MethodGet)
	apiV1.HandleFunc("/accounts/{id}", h.GetAccount).Methods(http.MethodGet)
	return r
}
