package models

import (
	"fmt"
	"time"
)

// KitchenTicketMessage represents a message sent to kitchen stations
// when an order is created. Lines carry the full customization record
// so the kitchen display can render diff-from-default summaries without
// a database round trip.
type KitchenTicketMessage struct {
	OrderNumber     string         `json:"order_number"`
	CustomerName    string         `json:"customer_name"`
	OrderType       string         `json:"order_type"`
	Source          OrderSource    `json:"source"`
	TableNumber     *int           `json:"table_number"`
	DeliveryAddress *string        `json:"delivery_address"`
	Lines           []CartLineItem `json:"lines"`
	Category        Category       `json:"category"`
	TotalAmount     float64        `json:"total_amount"`
	Priority        int            `json:"priority"`
}

// StatusUpdateMessage represents a status update notification
type StatusUpdateMessage struct {
	OrderNumber         string     `json:"order_number"`
	OldStatus           string     `json:"old_status"`
	NewStatus           string     `json:"new_status"`
	ChangedBy           string     `json:"changed_by"`
	Timestamp           time.Time  `json:"timestamp"`
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
}

// NewStatusUpdateMessage creates a StatusUpdateMessage for order status changes
func NewStatusUpdateMessage(orderNumber, oldStatus, newStatus, changedBy string, estimatedCompletion *time.Time) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderNumber:         orderNumber,
		OldStatus:           oldStatus,
		NewStatus:           newStatus,
		ChangedBy:           changedBy,
		Timestamp:           time.Now().UTC(),
		EstimatedCompletion: estimatedCompletion,
	}
}

// GetPrepTime returns the preparation time for an order category.
// Pizzas take longest, wings are quicker, everything else is assembly.
func GetPrepTime(category Category) time.Duration {
	switch category {
	case CategoryPizza:
		return 12 * time.Minute
	case CategoryWings:
		return 10 * time.Minute
	default:
		return 5 * time.Minute
	}
}

// TicketRoutingKey generates a routing key for kitchen ticket messages
func TicketRoutingKey(category Category, priority int) string {
	return fmt.Sprintf("kitchen.%s.%d", category, priority)
}

// DominantCategory returns the category that drives prep time and
// routing for a set of order lines: pizza beats wings beats other.
func DominantCategory(categories []Category) Category {
	dominant := CategoryOther
	for _, c := range categories {
		switch c {
		case CategoryPizza:
			return CategoryPizza
		case CategoryWings:
			dominant = CategoryWings
		}
	}
	return dominant
}
