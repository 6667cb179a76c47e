package notification

import (
	"strings"
	"testing"
	"time"

	"pizzeria-system/internal/models"
)

func TestFormatNotification(t *testing.T) {
	ts := time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC)
	eta := ts.Add(12 * time.Minute)

	tests := []struct {
		name string
		msg  models.StatusUpdateMessage
		want []string
	}{
		{
			name: "cooking with estimate",
			msg: models.StatusUpdateMessage{
				OrderNumber:         "ORD_20250314_001",
				OldStatus:           "received",
				NewStatus:           "cooking",
				ChangedBy:           "pizza_station_1",
				Timestamp:           ts,
				EstimatedCompletion: &eta,
			},
			want: []string{"ORD_20250314_001", "being prepared", "pizza_station_1", "12:42:00"},
		},
		{
			name: "ready",
			msg: models.StatusUpdateMessage{
				OrderNumber: "ORD_20250314_001",
				OldStatus:   "cooking",
				NewStatus:   "ready",
				ChangedBy:   "pizza_station_1",
				Timestamp:   ts,
			},
			want: []string{"ready for pickup/delivery", "pizza_station_1"},
		},
		{
			name: "cancelled",
			msg: models.StatusUpdateMessage{
				OrderNumber: "ORD_20250314_001",
				NewStatus:   "cancelled",
				Timestamp:   ts,
			},
			want: []string{"cancelled"},
		},
		{
			name: "unknown status falls back to generic message",
			msg: models.StatusUpdateMessage{
				OrderNumber: "ORD_20250314_001",
				OldStatus:   "received",
				NewStatus:   "on_hold",
				ChangedBy:   "manager",
				Timestamp:   ts,
			},
			want: []string{"status changed", "on_hold", "manager"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatNotification(&tt.msg)
			for _, fragment := range tt.want {
				if !strings.Contains(got, fragment) {
					t.Errorf("FormatNotification() = %q, missing %q", got, fragment)
				}
			}
		})
	}
}
