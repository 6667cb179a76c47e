package pos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pizzeria-system/internal/cart"
	"pizzeria-system/internal/catalog"
	"pizzeria-system/internal/database"
	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/models"
	"pizzeria-system/internal/pricing"
	"pizzeria-system/internal/services/ordering"
)

// Service implements the tablet POS surface. Checkout and tracking are
// shared with the customer ordering service; the POS adds editing of
// customized pizza lines on open orders.
type Service struct {
	*ordering.Service

	db      *database.DB
	catalog *catalog.Repository
	calc    *cart.Calculator
	policy  pricing.Policy
	logger  *logger.Logger
}

// NewService creates a new POS service on top of the shared ordering service
func NewService(shared *ordering.Service, db *database.DB, cat *catalog.Repository,
	calc *cart.Calculator, log *logger.Logger) *Service {
	return &Service{
		Service: shared,
		db:      db,
		catalog: cat,
		calc:    calc,
		policy:  pricing.DefaultPolicy(),
		logger:  log,
	}
}

// UpdateOrderLineResponse carries the edited line and the recomputed
// order totals
type UpdateOrderLineResponse struct {
	OrderNumber string              `json:"order_number"`
	Line        models.CartLineItem `json:"line"`
	Subtotal    float64             `json:"subtotal"`
	Tax         float64             `json:"tax"`
	DeliveryFee float64             `json:"delivery_fee"`
	TotalAmount float64             `json:"total_amount"`
}

// UpdateOrderLine replaces the customization of one pizza line on an
// open order and recomputes the order totals. Only customized pizza
// lines can be edited; plain lines have nothing to restore into the
// engine.
func (s *Service) UpdateOrderLine(ctx context.Context, orderNumber, lineID string,
	req *models.UpdateOrderLineRequest, requestID string) (*UpdateOrderLineResponse, error) {

	if req.PizzaCustomization == nil {
		return nil, fmt.Errorf("pizzaCustomization is required")
	}

	order, err := s.loadOrder(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.Status == models.StatusCompleted || order.Status == models.StatusCancelled {
		return nil, fmt.Errorf("order %s is %s and can no longer be edited", orderNumber, order.Status)
	}

	line, err := s.loadLine(ctx, orderNumber, lineID)
	if err != nil {
		return nil, err
	}
	if line.PizzaCustomization == nil {
		return nil, fmt.Errorf("line %s is not a customized pizza", lineID)
	}

	itemID := req.PizzaCustomization.OriginalItemID
	if itemID == "" {
		itemID = line.MenuItemID
	}
	if itemID != line.MenuItemID {
		return nil, fmt.Errorf("customization belongs to item %s, line is %s", itemID, line.MenuItemID)
	}

	opts, err := s.catalog.ItemOptions(itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: menu item %s", ordering.ErrNotFound, itemID)
	}

	session, err := pricing.SessionFromCustomization(opts, pricing.ModePOS, s.policy, req.PizzaCustomization)
	if err != nil {
		return nil, err
	}
	if !session.CanAddToOrder() {
		return nil, fmt.Errorf("customization is incomplete: size and crust are required")
	}

	line.Price = session.Price()
	line.TotalPrice = cart.LineTotal(line.Price, line.Quantity)
	line.PizzaCustomization = session.Customization()

	customization, err := json.Marshal(line.PizzaCustomization)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal customization: %v", ordering.ErrInternal, err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to start transaction: %v", ordering.ErrInternal, err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, database.UpdateOrderLineSQL,
		line.Price, line.TotalPrice, customization, line.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to update order line: %v", ordering.ErrInternal, err)
	}

	lines, err := s.loadLinesTx(ctx, tx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to reload order lines: %v", ordering.ErrInternal, err)
	}

	totals := s.calc.Totals(lines, order.Type)
	_, err = tx.Exec(ctx, database.UpdateOrderTotalsSQL,
		totals.Subtotal, totals.Tax, totals.Total, order.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to update order totals: %v", ordering.ErrInternal, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: failed to commit line update: %v", ordering.ErrInternal, err)
	}

	s.logger.Info("order_line_updated", "Order line customization replaced", requestID, map[string]interface{}{
		"order_number": orderNumber,
		"line_id":      lineID,
		"line_price":   line.Price,
		"total_amount": totals.Total,
	})

	return &UpdateOrderLineResponse{
		OrderNumber: orderNumber,
		Line:        *line,
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		DeliveryFee: totals.DeliveryFee,
		TotalAmount: totals.Total,
	}, nil
}

// loadOrder fetches the order header by number
func (s *Service) loadOrder(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := s.db.QueryRow(ctx, database.GetOrderByNumberSQL, orderNumber).Scan(
		&order.ID, &order.Number, &order.CustomerName, &order.Type, &order.Source,
		&order.TableNumber, &order.DeliveryAddress,
		&order.Subtotal, &order.Tax, &order.DeliveryFee, &order.TotalAmount,
		&order.Priority, &order.Status, &order.ProcessedBy,
		&order.CreatedAt, &order.UpdatedAt, &order.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %s", ordering.ErrNotFound, orderNumber)
		}
		return nil, fmt.Errorf("%w: database error: %v", ordering.ErrInternal, err)
	}
	return &order, nil
}

// loadLine fetches one order line by order number and line id
func (s *Service) loadLine(ctx context.Context, orderNumber, lineID string) (*models.CartLineItem, error) {
	var line models.CartLineItem
	var customization []byte

	err := s.db.QueryRow(ctx, database.GetOrderLineSQL, orderNumber, lineID).Scan(
		&line.ID, &line.MenuItemID, &line.Name, &line.Quantity,
		&line.Price, &line.TotalPrice, &customization,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: line %s on order %s", ordering.ErrNotFound, lineID, orderNumber)
		}
		return nil, fmt.Errorf("%w: database error: %v", ordering.ErrInternal, err)
	}

	if len(customization) > 0 {
		line.PizzaCustomization = &models.PizzaCustomization{}
		if err := json.Unmarshal(customization, line.PizzaCustomization); err != nil {
			return nil, fmt.Errorf("%w: failed to unmarshal customization: %v", ordering.ErrInternal, err)
		}
	}

	return &line, nil
}

// loadLinesTx reads all lines of an order inside the update transaction
func (s *Service) loadLinesTx(ctx context.Context, tx pgx.Tx, orderID int) ([]models.CartLineItem, error) {
	rows, err := tx.Query(ctx, database.GetOrderLinesSQL, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.CartLineItem
	for rows.Next() {
		var line models.CartLineItem
		var customization []byte
		err := rows.Scan(&line.ID, &line.MenuItemID, &line.Name, &line.Quantity,
			&line.Price, &line.TotalPrice, &customization)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
