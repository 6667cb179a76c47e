package pos

import (
	"context"
	"net/http"
	"time"

	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/models"
	"pizzeria-system/internal/services/ordering"
)

// Handler handles HTTP requests for the POS service. It serves the
// shared ordering routes plus the line-edit endpoint.
type Handler struct {
	*ordering.Handler

	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new POS handler
func NewHandler(service *Service, name string, log *logger.Logger) *Handler {
	return &Handler{
		Handler: ordering.NewHandler(service.Service, models.SourcePOS, name, log),
		service: service,
		logger:  log,
	}
}

// UpdateOrderLine handles PUT /orders/{number}/lines/{lineID} requests
func (h *Handler) UpdateOrderLine(w http.ResponseWriter, r *http.Request) {
	requestID := ordering.RequestIDFrom(r)

	var req models.UpdateOrderLineRequest
	if !h.DecodeBody(w, r, &req, requestID) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := h.service.UpdateOrderLine(ctx, r.PathValue("number"), r.PathValue("lineID"), &req, requestID)
	if err != nil {
		h.logger.Error("order_line_update_failed", "Failed to update order line", requestID, err, map[string]interface{}{
			"order_number": r.PathValue("number"),
			"line_id":      r.PathValue("lineID"),
		})
		h.WriteError(w, ordering.StatusFor(err), err.Error(), requestID)
		return
	}

	h.WriteJSON(w, http.StatusOK, response)
}

// SetupRoutes sets up the POS routes on top of the shared ordering routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := h.Handler.SetupRoutes()

	mux.HandleFunc("PUT /orders/{number}/lines/{lineID}",
		h.WithLogging("/orders/{number}/lines/{lineID}", h.UpdateOrderLine))

	return mux
}
