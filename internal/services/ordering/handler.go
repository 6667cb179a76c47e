package ordering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/metrics"
	"pizzeria-system/internal/models"
)

// Handler handles HTTP requests for the ordering service
type Handler struct {
	service *Service
	source  models.OrderSource
	name    string
	logger  *logger.Logger
}

// NewHandler creates a new ordering handler. The source tags every
// created order with the surface it came from.
func NewHandler(service *Service, source models.OrderSource, name string, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		source:  source,
		name:    name,
		logger:  log,
	}
}

// GetMenu handles GET /menu requests
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": h.service.Menu(),
	})
}

// GetItemOptions handles GET /menu/{itemID}/options requests
func (h *Handler) GetItemOptions(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFrom(r)

	opts, err := h.service.ItemOptions(r.PathValue("itemID"))
	if err != nil {
		h.WriteError(w, StatusFor(err), err.Error(), requestID)
		return
	}

	h.WriteJSON(w, http.StatusOK, opts)
}

// PricePreview handles POST /price requests
func (h *Handler) PricePreview(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFrom(r)

	var req models.PricePreviewRequest
	if !h.DecodeBody(w, r, &req, requestID) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := h.service.PricePreview(ctx, &req)
	if err != nil {
		h.logger.Error("price_preview_failed", "Failed to price customization", requestID, err, map[string]interface{}{
			"menu_item_id": req.MenuItemID,
		})
		h.WriteError(w, StatusFor(err), err.Error(), requestID)
		return
	}

	h.WriteJSON(w, http.StatusOK, response)
}

// CreateOrder handles POST /orders requests
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFrom(r)

	var req models.CreateOrderRequest
	if !h.DecodeBody(w, r, &req, requestID) {
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Error("validation_failed", "Request validation failed", requestID, err, map[string]interface{}{
			"customer_name": req.CustomerName,
			"order_type":    req.OrderType,
		})
		h.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := h.service.CreateOrder(ctx, &req, h.source, requestID)
	if err != nil {
		h.logger.Error("order_creation_failed", "Failed to create order", requestID, err, map[string]interface{}{
			"customer_name": req.CustomerName,
			"order_type":    req.OrderType,
		})
		h.WriteError(w, StatusFor(err), err.Error(), requestID)
		return
	}

	h.logger.Info("order_created", "Order created successfully", requestID, map[string]interface{}{
		"order_number": response.OrderNumber,
		"total_amount": response.TotalAmount,
	})

	h.WriteJSON(w, http.StatusCreated, response)
}

// GetOrderStatus handles GET /orders/{number}/status requests
func (h *Handler) GetOrderStatus(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFrom(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := h.service.GetOrderStatus(ctx, r.PathValue("number"), requestID)
	if err != nil {
		h.WriteError(w, StatusFor(err), err.Error(), requestID)
		return
	}

	h.WriteJSON(w, http.StatusOK, response)
}

// GetOrderHistory handles GET /orders/{number}/history requests
func (h *Handler) GetOrderHistory(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFrom(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	history, err := h.service.GetOrderHistory(ctx, r.PathValue("number"), requestID)
	if err != nil {
		h.WriteError(w, StatusFor(err), err.Error(), requestID)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"order_number": r.PathValue("number"),
		"history":      history,
	})
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   h.name,
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}

	h.WriteJSON(w, status, response)
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /menu", h.WithLogging("/menu", h.GetMenu))
	mux.HandleFunc("GET /menu/{itemID}/options", h.WithLogging("/menu/{itemID}/options", h.GetItemOptions))
	mux.HandleFunc("POST /price", h.WithLogging("/price", h.PricePreview))
	mux.HandleFunc("POST /orders", h.WithLogging("/orders", h.CreateOrder))
	mux.HandleFunc("GET /orders/{number}/status", h.WithLogging("/orders/{number}/status", h.GetOrderStatus))
	mux.HandleFunc("GET /orders/{number}/history", h.WithLogging("/orders/{number}/history", h.GetOrderHistory))
	mux.HandleFunc("GET /health", h.WithLogging("/health", h.HealthCheck))
	mux.Handle("GET /metrics", metrics.Handler())

	return mux
}

// WithLogging adds request logging and metrics middleware. The route
// pattern, not the raw path, is used as the metrics label to keep
// cardinality bounded.
func (h *Handler) WithLogging(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(rw, r)

		duration := time.Since(start)
		metrics.ObserveHTTPRequest(r.Method, route, rw.statusCode, duration)

		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

// DecodeBody parses a JSON request body, writing the error response
// itself on failure
func (h *Handler) DecodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, requestID string) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		h.WriteError(w, http.StatusBadRequest, "Content-Type must be application/json", requestID)
		return false
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return false
	}

	return true
}

// WriteJSON writes a successful JSON response
func (h *Handler) WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

// WriteError writes an error response in JSON format
func (h *Handler) WriteError(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

// StatusFor maps service errors to HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadRequest
	}
}

type requestIDKey struct{}

// RequestIDFrom extracts the request id set by the logging middleware
func RequestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok {
		return id
	}
	return logger.GenerateRequestID()
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
