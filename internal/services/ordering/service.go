package ordering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pizzeria-system/internal/cart"
	"pizzeria-system/internal/catalog"
	"pizzeria-system/internal/database"
	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/messaging"
	"pizzeria-system/internal/metrics"
	"pizzeria-system/internal/models"
	"pizzeria-system/internal/pricing"
)

// ErrNotFound is returned when an order or menu item does not exist
var ErrNotFound = errors.New("not found")

// ErrInternal marks infrastructure failures that should surface as 500s
var ErrInternal = errors.New("internal error")

// Service implements the customer-facing ordering flow: menu browsing,
// price previews and checkout. Customized pizza lines are always
// re-priced server side; prices submitted by clients are ignored for
// them.
type Service struct {
	db        *database.DB
	catalog   *catalog.Repository
	publisher *messaging.Publisher
	calc      *cart.Calculator
	policy    pricing.Policy
	mode      pricing.Mode
	logger    *logger.Logger
}

// NewService creates a new ordering service
func NewService(db *database.DB, cat *catalog.Repository, publisher *messaging.Publisher,
	calc *cart.Calculator, mode pricing.Mode, log *logger.Logger) *Service {
	return &Service{
		db:        db,
		catalog:   cat,
		publisher: publisher,
		calc:      calc,
		policy:    pricing.DefaultPolicy(),
		mode:      mode,
		logger:    log,
	}
}

// Menu returns all menu items
func (s *Service) Menu() []models.MenuItem {
	return s.catalog.Items()
}

// ItemOptions returns the customization options for one menu item
func (s *Service) ItemOptions(itemID string) (*models.ItemOptions, error) {
	opts, err := s.catalog.ItemOptions(itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: menu item %s", ErrNotFound, itemID)
	}
	return opts, nil
}

// PricePreview re-prices a customization without persisting anything
func (s *Service) PricePreview(ctx context.Context, req *models.PricePreviewRequest) (*models.PricePreviewResponse, error) {
	price, normalized, err := s.priceCustomization(req.MenuItemID, req.PizzaCustomization)
	if err != nil {
		return nil, err
	}

	metrics.PizzaPriced()

	return &models.PricePreviewResponse{
		Price:              price,
		PizzaCustomization: normalized,
	}, nil
}

// priceCustomization restores an engine session from the record and
// returns the computed price plus the normalized record
func (s *Service) priceCustomization(menuItemID string, c *models.PizzaCustomization) (float64, *models.PizzaCustomization, error) {
	if c == nil {
		return 0, nil, fmt.Errorf("pizzaCustomization is required")
	}

	itemID := c.OriginalItemID
	if itemID == "" {
		itemID = menuItemID
	}

	opts, err := s.catalog.ItemOptions(itemID)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: menu item %s", ErrNotFound, itemID)
	}

	if s.mode == pricing.ModeCustomer && c.ExtraAmount != 0 {
		return 0, nil, fmt.Errorf("extraAmount is not allowed on customer orders")
	}

	session, err := pricing.SessionFromCustomization(opts, s.mode, s.policy, c)
	if err != nil {
		return 0, nil, err
	}
	if !session.CanAddToOrder() {
		return 0, nil, fmt.Errorf("customization is incomplete: size and crust are required")
	}

	return session.Price(), session.Customization(), nil
}

// CreateOrder validates, re-prices and persists an order, then emits a
// kitchen ticket
func (s *Service) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, source models.OrderSource, requestID string) (*models.CreateOrderResponse, error) {
	lines, err := s.buildLines(req.Lines)
	if err != nil {
		return nil, err
	}

	orderType := models.OrderType(req.OrderType)
	totals := s.calc.Totals(lines, orderType)
	priority := models.CalculatePriority(totals.Total)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to start transaction: %v", ErrInternal, err)
	}
	defer tx.Rollback(ctx)

	orderNumber, err := s.nextOrderNumber(ctx, tx)
	if err != nil {
		return nil, err
	}

	var orderID int
	var createdAt time.Time
	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		orderNumber, req.CustomerName, orderType, source, req.TableNumber, req.DeliveryAddress,
		totals.Subtotal, totals.Tax, totals.DeliveryFee, totals.Total, priority, models.StatusReceived,
	).Scan(&orderID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to insert order: %v", ErrInternal, err)
	}

	for _, line := range lines {
		var customization []byte
		if line.PizzaCustomization != nil {
			customization, err = json.Marshal(line.PizzaCustomization)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to marshal customization: %v", ErrInternal, err)
			}
		}

		_, err = tx.Exec(ctx, database.InsertOrderLineSQL,
			line.ID, orderID, line.MenuItemID, line.Name, line.Quantity, line.Price, line.TotalPrice, customization)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to insert order line: %v", ErrInternal, err)
		}
	}

	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL,
		orderID, models.StatusReceived, string(source), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to insert status log: %v", ErrInternal, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: failed to commit order: %v", ErrInternal, err)
	}

	metrics.OrderCreated(req.OrderType, string(source))

	s.publishTicket(ctx, req, source, orderNumber, lines, totals.Total, priority, requestID)

	return &models.CreateOrderResponse{
		OrderNumber: orderNumber,
		Status:      string(models.StatusReceived),
		Lines:       lines,
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		DeliveryFee: totals.DeliveryFee,
		TotalAmount: totals.Total,
	}, nil
}

// buildLines converts request lines into priced cart lines. Customized
// pizzas go through the engine; plain items keep the validated client
// price.
func (s *Service) buildLines(reqLines []models.OrderLineRequest) ([]models.CartLineItem, error) {
	lines := make([]models.CartLineItem, 0, len(reqLines))

	for i, reqLine := range reqLines {
		line := models.CartLineItem{
			ID:         uuid.NewString(),
			MenuItemID: reqLine.MenuItemID,
			Name:       reqLine.Name,
			Quantity:   reqLine.Quantity,
			Price:      reqLine.Price,
		}

		if reqLine.PizzaCustomization != nil {
			price, normalized, err := s.priceCustomization(reqLine.MenuItemID, reqLine.PizzaCustomization)
			if err != nil {
				return nil, fmt.Errorf("lines[%d]: %w", i, err)
			}
			line.Price = price
			line.PizzaCustomization = normalized
		}

		line.TotalPrice = cart.LineTotal(line.Price, line.Quantity)
		lines = append(lines, line)
	}

	return lines, nil
}

// nextOrderNumber allocates the next daily sequence number inside the
// order transaction
func (s *Service) nextOrderNumber(ctx context.Context, tx pgx.Tx) (string, error) {
	today := time.Now().UTC()
	pattern := fmt.Sprintf("ORD_%s_%%", today.Format("20060102"))

	var sequence int
	err := tx.QueryRow(ctx, database.GetNextOrderSequenceSQL, pattern).Scan(&sequence)
	if err != nil {
		return "", fmt.Errorf("%w: failed to allocate order number: %v", ErrInternal, err)
	}

	return models.GenerateOrderNumber(today, sequence), nil
}

// publishTicket sends the kitchen ticket; failures are logged but do
// not fail the already-committed order
func (s *Service) publishTicket(ctx context.Context, req *models.CreateOrderRequest, source models.OrderSource,
	orderNumber string, lines []models.CartLineItem, total float64, priority int, requestID string) {

	category := s.dominantCategory(lines)

	ticket := &models.KitchenTicketMessage{
		OrderNumber:     orderNumber,
		CustomerName:    req.CustomerName,
		OrderType:       req.OrderType,
		Source:          source,
		TableNumber:     req.TableNumber,
		DeliveryAddress: req.DeliveryAddress,
		Lines:           lines,
		Category:        category,
		TotalAmount:     total,
		Priority:        priority,
	}

	routingKey := models.TicketRoutingKey(category, priority)

	if err := s.publisher.PublishTicket(ctx, ticket, routingKey, uint8(priority)); err != nil {
		s.logger.Error("ticket_publish_failed", "Order committed but kitchen ticket was not published",
			requestID, err, map[string]interface{}{
				"order_number": orderNumber,
				"routing_key":  routingKey,
			})
		return
	}

	metrics.TicketPublished(string(category))
}

func (s *Service) dominantCategory(lines []models.CartLineItem) models.Category {
	categories := make([]models.Category, 0, len(lines))
	for _, line := range lines {
		if category, ok := s.catalog.ItemCategory(line.MenuItemID); ok {
			categories = append(categories, category)
		}
	}
	return models.DominantCategory(categories)
}

// GetOrderStatus retrieves the current status of an order
func (s *Service) GetOrderStatus(ctx context.Context, orderNumber, requestID string) (*models.OrderTrackingResponse, error) {
	order, err := s.getOrder(ctx, orderNumber, requestID)
	if err != nil {
		return nil, err
	}

	var estimatedCompletion *time.Time
	if order.Status == models.StatusCooking {
		prepTime := models.GetPrepTime(s.dominantCategory(order.Lines))
		estimated := order.UpdatedAt.Add(prepTime)
		estimatedCompletion = &estimated
	}

	return &models.OrderTrackingResponse{
		OrderNumber:         order.Number,
		CurrentStatus:       string(order.Status),
		UpdatedAt:           order.UpdatedAt,
		EstimatedCompletion: estimatedCompletion,
		ProcessedBy:         order.ProcessedBy,
	}, nil
}

// GetOrderHistory retrieves the complete status history of an order
func (s *Service) GetOrderHistory(ctx context.Context, orderNumber, requestID string) ([]models.OrderStatusHistory, error) {
	if _, err := s.getOrder(ctx, orderNumber, requestID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, database.GetOrderStatusHistorySQL, orderNumber)
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to query order history", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
		return nil, fmt.Errorf("%w: database error: %v", ErrInternal, err)
	}
	defer rows.Close()

	var history []models.OrderStatusHistory
	for rows.Next() {
		var entry models.OrderStatusHistory
		if err := rows.Scan(&entry.Status, &entry.ChangedBy, &entry.ChangedAt, &entry.Notes); err != nil {
			return nil, fmt.Errorf("%w: database error: %v", ErrInternal, err)
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}

// getOrder loads an order with its lines
func (s *Service) getOrder(ctx context.Context, orderNumber, requestID string) (*models.Order, error) {
	var order models.Order

	err := s.db.QueryRow(ctx, database.GetOrderByNumberSQL, orderNumber).Scan(
		&order.ID,
		&order.Number,
		&order.CustomerName,
		&order.Type,
		&order.Source,
		&order.TableNumber,
		&order.DeliveryAddress,
		&order.Subtotal,
		&order.Tax,
		&order.DeliveryFee,
		&order.TotalAmount,
		&order.Priority,
		&order.Status,
		&order.ProcessedBy,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderNumber)
		}
		s.logger.Error("db_query_failed", "Failed to query order", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
		return nil, fmt.Errorf("%w: database error: %v", ErrInternal, err)
	}

	lines, err := s.getOrderLines(ctx, order.ID)
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to query order lines", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
		return nil, fmt.Errorf("%w: database error: %v", ErrInternal, err)
	}
	order.Lines = lines

	return &order, nil
}

func (s *Service) getOrderLines(ctx context.Context, orderID int) ([]models.CartLineItem, error) {
	rows, err := s.db.Query(ctx, database.GetOrderLinesSQL, orderID)
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
		if len(customization) > 0 {
			line.PizzaCustomization = &models.PizzaCustomization{}
			if err := json.Unmarshal(customization, line.PizzaCustomization); err != nil {
				return nil, fmt.Errorf("failed to unmarshal customization: %w", err)
			}
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// HealthCheck verifies database and messaging connectivity
func (s *Service) HealthCheck(ctx context.Context) bool {
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Error("health_check_failed", "Database ping failed", "", err, nil)
		return false
	}
	return true
}
