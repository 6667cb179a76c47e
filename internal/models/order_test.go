package models

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func validLines() []OrderLineRequest {
	return []OrderLineRequest{
		{MenuItemID: "item-wings", Name: "Buffalo Wings", Quantity: 2, Price: 10.99},
	}
}

func TestCreateOrderRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateOrderRequest
		wantErr bool
	}{
		{
			name: "valid takeout order",
			req: CreateOrderRequest{
				CustomerName: "John Doe",
				OrderType:    "takeout",
				Lines:        validLines(),
			},
			wantErr: false,
		},
		{
			name: "valid dine in order",
			req: CreateOrderRequest{
				CustomerName: "Mary O'Brien",
				OrderType:    "dine_in",
				TableNumber:  intPtr(12),
				Lines:        validLines(),
			},
			wantErr: false,
		},
		{
			name: "valid delivery order",
			req: CreateOrderRequest{
				CustomerName:    "Jean-Luc Picard",
				OrderType:       "delivery",
				DeliveryAddress: strPtr("1428 Elm Street, Springwood"),
				Lines:           validLines(),
			},
			wantErr: false,
		},
		{
			name: "empty customer name",
			req: CreateOrderRequest{
				OrderType: "takeout",
				Lines:     validLines(),
			},
			wantErr: true,
		},
		{
			name: "customer name with digits",
			req: CreateOrderRequest{
				CustomerName: "John123",
				OrderType:    "takeout",
				Lines:        validLines(),
			},
			wantErr: true,
		},
		{
			name: "unknown order type",
			req: CreateOrderRequest{
				CustomerName: "John Doe",
				OrderType:    "drive_through",
				Lines:        validLines(),
			},
			wantErr: true,
		},
		{
			name: "dine in without table number",
			req: CreateOrderRequest{
				CustomerName: "John Doe",
				OrderType:    "dine_in",
				Lines:        validLines(),
			},
			wantErr: true,
		},
		{
			name: "dine in with table number out of range",
			req: CreateOrderRequest{
				CustomerName: "John Doe",
				OrderType:    "dine_in",
				TableNumber:  intPtr(101),
				Lines:        validLines(),
			},
			wantErr: true,
		},
		{
			name: "dine in with delivery address",
			req: CreateOrderRequest{
				CustomerName:    "John Doe",
				OrderType:       "dine_in",
				TableNumber:     intPtr(5),
				DeliveryAddress: strPtr("1428 Elm Street, Springwood"),
				Lines:           validLines(),
			},
			wantErr: true,
		},
		{
			name: "delivery without address",
			req: CreateOrderRequest{
				CustomerName: "John Doe",
				OrderType:    "delivery",
				Lines:        validLines(),
			},
			wantErr: true,
		},
		{
			name: "delivery with short address",
			req: CreateOrderRequest{
				CustomerName:    "John Doe",
				OrderType:       "delivery",
				DeliveryAddress: strPtr("short"),
				Lines:           validLines(),
			},
			wantErr: true,
		},
		{
			name: "takeout with table number",
			req: CreateOrderRequest{
				CustomerName: "John Doe",
				OrderType:    "takeout",
				TableNumber:  intPtr(3),
				Lines:        validLines(),
			},
			wantErr: true,
		},
		{
			name: "no lines",
			req: CreateOrderRequest{
				CustomerName: "John Doe",
				OrderType:    "takeout",
			},
			wantErr: true,
		},
		{
			name: "customized pizza must have quantity one",
			req: CreateOrderRequest{
				CustomerName: "John Doe",
				OrderType:    "takeout",
				Lines: []OrderLineRequest{
					{
						MenuItemID:         "item-classic",
						Name:               "Classic Pizza",
						Quantity:           2,
						PizzaCustomization: &PizzaCustomization{Size: "Medium"},
					},
				},
			},
			wantErr: true,
		},
		{
			name: "customized pizza skips price bounds",
			req: CreateOrderRequest{
				CustomerName: "John Doe",
				OrderType:    "takeout",
				Lines: []OrderLineRequest{
					{
						MenuItemID:         "item-classic",
						Name:               "Classic Pizza",
						Quantity:           1,
						PizzaCustomization: &PizzaCustomization{Size: "Medium"},
					},
				},
			},
			wantErr: false,
		},
		{
			name: "plain line quantity out of range",
			req: CreateOrderRequest{
				CustomerName: "John Doe",
				OrderType:    "takeout",
				Lines: []OrderLineRequest{
					{MenuItemID: "item-soda", Name: "Soda", Quantity: 11, Price: 2.50},
				},
			},
			wantErr: true,
		},
		{
			name: "plain line price out of range",
			req: CreateOrderRequest{
				CustomerName: "John Doe",
				OrderType:    "takeout",
				Lines: []OrderLineRequest{
					{MenuItemID: "item-soda", Name: "Soda", Quantity: 1, Price: 1000.00},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTooManyLines(t *testing.T) {
	lines := make([]OrderLineRequest, 21)
	for i := range lines {
		lines[i] = OrderLineRequest{MenuItemID: "item-soda", Name: "Soda", Quantity: 1, Price: 2.50}
	}

	req := CreateOrderRequest{
		CustomerName: "John Doe",
		OrderType:    "takeout",
		Lines:        lines,
	}

	if err := req.Validate(); err == nil {
		t.Error("expected error for more than 20 lines")
	}
}

func TestCalculatePriority(t *testing.T) {
	tests := []struct {
		total float64
		want  int
	}{
		{10.00, 1},
		{49.99, 1},
		{50.00, 5},
		{100.00, 5},
		{100.01, 10},
	}

	for _, tt := range tests {
		if got := CalculatePriority(tt.total); got != tt.want {
			t.Errorf("CalculatePriority(%v) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	date := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	if got := GenerateOrderNumber(date, 7); got != "ORD_20250314_007" {
		t.Errorf("GenerateOrderNumber() = %q, want ORD_20250314_007", got)
	}
}
