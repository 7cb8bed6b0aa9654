package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/rl1809/inventory-tracker/internal/core/domain"
	"github.com/rl1809/inventory-tracker/internal/core/service"
)

type HTTPHandler struct {
	inventory *service.InventoryService
	logger    *zap.Logger
}

type ItemHTTPRequest struct {
	Name string `json:"name"`
}

type ItemHTTPResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Quantity    int    `json:"quantity"`
}

type InventoryHTTPResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Items   []ItemHTTPResponse `json:"items"`
}

func NewHTTPHandler(inventory *service.InventoryService, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{inventory: inventory, logger: logger}
}

// Register mounts the inventory routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/items", h.Items)
	mux.HandleFunc("/api/items/increment", h.Increment)
	mux.HandleFunc("/api/items/decrement", h.Decrement)
}

// Items lists the inventory, filtered by the optional q parameter.
func (h *HTTPHandler) Items(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	items, err := h.inventory.Search(r.Context(), r.URL.Query().Get("q"))
	h.respond(w, r, "search", items, err)
}

func (h *HTTPHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "increment", h.inventory.Increment)
}

func (h *HTTPHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "decrement", h.inventory.Decrement)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type mutation func(ctx context.Context, name string) ([]domain.Item, error)

func (h *HTTPHandler) mutate(w http.ResponseWriter, r *http.Request, op string, fn mutation) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ItemHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestsTotal.WithLabelValues("http", op, "bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, InventoryHTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	items, err := fn(r.Context(), req.Name)
	h.respond(w, r, op, items, err)
}

func (h *HTTPHandler) respond(w http.ResponseWriter, r *http.Request, op string, items []domain.Item, err error) {
	class := classify(err)
	requestsTotal.WithLabelValues("http", op, class.label).Inc()

	if err != nil {
		loggerFrom(r.Context(), h.logger).Error("inventory request failed",
			zap.String("op", op),
			zap.Error(err),
		)
		writeJSON(w, class.httpStatus, InventoryHTTPResponse{
			Success: false,
			Message: class.message,
		})
		return
	}

	writeJSON(w, http.StatusOK, InventoryHTTPResponse{
		Success: true,
		Message: "ok",
		Items:   toHTTPItems(items),
	})
}

func toHTTPItems(items []domain.Item) []ItemHTTPResponse {
	out := make([]ItemHTTPResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ItemHTTPResponse{
			Name:        it.Name,
			DisplayName: it.DisplayName(),
			Quantity:    it.Quantity,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
