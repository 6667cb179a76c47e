package models

import (
	"fmt"
	"regexp"
	"time"
)

// OrderType represents the type of an order
type OrderType string

const (
	DineIn   OrderType = "dine_in"
	Takeout  OrderType = "takeout"
	Delivery OrderType = "delivery"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusReceived  OrderStatus = "received"
	StatusCooking   OrderStatus = "cooking"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderSource identifies which surface created the order
type OrderSource string

const (
	SourceOnline OrderSource = "online"
	SourcePOS    OrderSource = "pos"
)

// Order represents a persisted customer order
type Order struct {
	ID              int            `json:"id,omitempty" db:"id"`
	CreatedAt       time.Time      `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at,omitempty" db:"updated_at"`
	Number          string         `json:"order_number" db:"number"`
	CustomerName    string         `json:"customer_name" db:"customer_name"`
	Type            OrderType      `json:"order_type" db:"type"`
	Source          OrderSource    `json:"source" db:"source"`
	TableNumber     *int           `json:"table_number,omitempty" db:"table_number"`
	DeliveryAddress *string        `json:"delivery_address,omitempty" db:"delivery_address"`
	Lines           []CartLineItem `json:"lines"`
	Subtotal        float64        `json:"subtotal" db:"subtotal"`
	Tax             float64        `json:"tax" db:"tax"`
	DeliveryFee     float64        `json:"delivery_fee" db:"delivery_fee"`
	TotalAmount     float64        `json:"total_amount" db:"total_amount"`
	Priority        int            `json:"priority" db:"priority"`
	Status          OrderStatus    `json:"status" db:"status"`
	ProcessedBy     *string        `json:"processed_by,omitempty" db:"processed_by"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty" db:"completed_at"`
}

// OrderLineRequest is one line submitted at checkout. Prices supplied
// by clients are untrusted; customized pizza lines are re-priced by the
// engine on the server before persistence.
type OrderLineRequest struct {
	MenuItemID         string              `json:"menu_item_id"`
	Name               string              `json:"name"`
	Quantity           int                 `json:"quantity"`
	Price              float64             `json:"price"`
	PizzaCustomization *PizzaCustomization `json:"pizzaCustomization,omitempty"`
}

// CreateOrderRequest represents the request to create a new order
type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name"`
	OrderType       string             `json:"order_type"`
	TableNumber     *int               `json:"table_number,omitempty"`
	DeliveryAddress *string            `json:"delivery_address,omitempty"`
	Lines           []OrderLineRequest `json:"lines"`
}

// CreateOrderResponse represents the response after creating an order
type CreateOrderResponse struct {
	OrderNumber string         `json:"order_number"`
	Status      string         `json:"status"`
	Lines       []CartLineItem `json:"lines"`
	Subtotal    float64        `json:"subtotal"`
	Tax         float64        `json:"tax"`
	DeliveryFee float64        `json:"delivery_fee"`
	TotalAmount float64        `json:"total_amount"`
}

// PricePreviewRequest asks the engine to price a customization without
// persisting anything
type PricePreviewRequest struct {
	MenuItemID         string              `json:"menu_item_id"`
	PizzaCustomization *PizzaCustomization `json:"pizzaCustomization"`
}

// PricePreviewResponse carries the computed price and the normalized
// customization record
type PricePreviewResponse struct {
	Price              float64             `json:"price"`
	PizzaCustomization *PizzaCustomization `json:"pizzaCustomization"`
}

// UpdateOrderLineRequest replaces the customization of an existing
// order line (POS edit flow)
type UpdateOrderLineRequest struct {
	PizzaCustomization *PizzaCustomization `json:"pizzaCustomization"`
}

// OrderStatusHistory represents an entry in the order status log
type OrderStatusHistory struct {
	Status    OrderStatus `json:"status" db:"status"`
	ChangedBy string      `json:"changed_by" db:"changed_by"`
	ChangedAt time.Time   `json:"timestamp" db:"changed_at"`
	Notes     *string     `json:"notes,omitempty" db:"notes"`
}

// OrderTrackingResponse represents the response for order tracking
type OrderTrackingResponse struct {
	OrderNumber         string     `json:"order_number"`
	CurrentStatus       string     `json:"current_status"`
	UpdatedAt           time.Time  `json:"updated_at"`
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
	ProcessedBy         *string    `json:"processed_by,omitempty"`
}

// Validate validates the create order request
func (req *CreateOrderRequest) Validate() error {
	if err := validateCustomerName(req.CustomerName); err != nil {
		return err
	}

	orderType, err := validateOrderType(req.OrderType)
	if err != nil {
		return err
	}

	if err := validateConditionalFields(orderType, req.TableNumber, req.DeliveryAddress); err != nil {
		return err
	}

	if err := validateLines(req.Lines); err != nil {
		return err
	}

	return nil
}

// CalculatePriority calculates the kitchen priority based on total amount
func CalculatePriority(total float64) int {
	if total > 100.0 {
		return 10
	}
	if total >= 50.0 {
		return 5
	}
	return 1
}

// GenerateOrderNumber generates a unique order number in format ORD_YYYYMMDD_NNN
func GenerateOrderNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("ORD_%s_%03d", date.Format("20060102"), sequence)
}

// validateCustomerName validates the customer name field
func validateCustomerName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("customer_name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("customer_name must not exceed 100 characters")
	}

	validNamePattern := regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	if !validNamePattern.MatchString(name) {
		return fmt.Errorf("customer_name contains invalid characters")
	}

	return nil
}

// validateOrderType validates the order type field
func validateOrderType(orderType string) (OrderType, error) {
	switch OrderType(orderType) {
	case DineIn, Takeout, Delivery:
		return OrderType(orderType), nil
	default:
		return "", fmt.Errorf("order_type must be one of: dine_in, takeout, delivery")
	}
}

// validateConditionalFields validates fields based on order type
func validateConditionalFields(orderType OrderType, tableNumber *int, deliveryAddress *string) error {
	switch orderType {
	case DineIn:
		if tableNumber == nil {
			return fmt.Errorf("table_number is required for dine_in orders")
		}
		if *tableNumber < 1 || *tableNumber > 100 {
			return fmt.Errorf("table_number must be between 1 and 100")
		}
		if deliveryAddress != nil {
			return fmt.Errorf("delivery_address must not be present for dine_in orders")
		}
	case Delivery:
		if deliveryAddress == nil || *deliveryAddress == "" {
			return fmt.Errorf("delivery_address is required for delivery orders")
		}
		if len(*deliveryAddress) < 10 {
			return fmt.Errorf("delivery_address must be at least 10 characters")
		}
		if tableNumber != nil {
			return fmt.Errorf("table_number must not be present for delivery orders")
		}
	case Takeout:
		if tableNumber != nil {
			return fmt.Errorf("table_number must not be present for takeout orders")
		}
		if deliveryAddress != nil {
			return fmt.Errorf("delivery_address must not be present for takeout orders")
		}
	}

	return nil
}

// validateLines validates the order lines
func validateLines(lines []OrderLineRequest) error {
	if len(lines) == 0 {
		return fmt.Errorf("lines array cannot be empty")
	}
	if len(lines) > 20 {
		return fmt.Errorf("lines array cannot contain more than 20 items")
	}

	for i, line := range lines {
		if err := validateLine(line, i); err != nil {
			return err
		}
	}

	return nil
}

// validateLine validates a single order line
func validateLine(line OrderLineRequest, index int) error {
	prefix := fmt.Sprintf("lines[%d]", index)

	if len(line.MenuItemID) == 0 {
		return fmt.Errorf("%s.menu_item_id is required", prefix)
	}
	if len(line.Name) == 0 {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if len(line.Name) > 50 {
		return fmt.Errorf("%s.name must not exceed 50 characters", prefix)
	}

	if line.PizzaCustomization != nil {
		// Customized pizzas are distinct lines, never multiplied
		if line.Quantity != 1 {
			return fmt.Errorf("%s.quantity must be 1 for customized pizzas", prefix)
		}
		return nil
	}

	if line.Quantity < 1 || line.Quantity > 10 {
		return fmt.Errorf("%s.quantity must be between 1 and 10", prefix)
	}
	if line.Price < 0.01 || line.Price > 999.99 {
		return fmt.Errorf("%s.price must be between 0.01 and 999.99", prefix)
	}

	return nil
}
