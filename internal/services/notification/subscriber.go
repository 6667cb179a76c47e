package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/messaging"
	"pizzeria-system/internal/models"
)

// Subscriber consumes status updates from the notifications fanout and
// renders them as human-readable messages
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger

	shutdown chan os.Signal
	done     chan bool
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		shutdown: make(chan os.Signal, 1),
		done:     make(chan bool, 1),
	}
}

// Start starts the notification subscriber
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	go func() {
		if err := s.consumer.Consume(ctx, messaging.NotificationsQueue, "notification-subscriber", s.handleNotification); err != nil {
			s.logger.Error("consumer_failed", "Notification consumer failed", requestID, err, nil)
		}
		s.done <- true
	}()

	select {
	case <-s.shutdown:
		s.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		return s.gracefulShutdown(requestID)
	case <-s.done:
		return nil
	}
}

// handleNotification processes incoming status update notifications
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var statusUpdate models.StatusUpdateMessage
	if err := json.Unmarshal(body, &statusUpdate); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	fmt.Println(FormatNotification(&statusUpdate))

	s.logger.Debug("notification_displayed", "Notification displayed", requestID, map[string]interface{}{
		"order_number": statusUpdate.OrderNumber,
		"old_status":   statusUpdate.OldStatus,
		"new_status":   statusUpdate.NewStatus,
		"changed_by":   statusUpdate.ChangedBy,
	})

	return nil
}

// FormatNotification creates a human-readable notification message
func FormatNotification(statusUpdate *models.StatusUpdateMessage) string {
	timestamp := statusUpdate.Timestamp.Format("2006-01-02 15:04:05")

	switch statusUpdate.NewStatus {
	case string(models.StatusCooking):
		if statusUpdate.EstimatedCompletion != nil {
			return fmt.Sprintf("[%s] Order %s is now being prepared by %s. Estimated completion: %s",
				timestamp, statusUpdate.OrderNumber, statusUpdate.ChangedBy,
				statusUpdate.EstimatedCompletion.Format("15:04:05"))
		}
		return fmt.Sprintf("[%s] Order %s is now being prepared by %s.",
			timestamp, statusUpdate.OrderNumber, statusUpdate.ChangedBy)
	case string(models.StatusReady):
		return fmt.Sprintf("[%s] Order %s is ready for pickup/delivery! Prepared by %s.",
			timestamp, statusUpdate.OrderNumber, statusUpdate.ChangedBy)
	case string(models.StatusCompleted):
		return fmt.Sprintf("[%s] Order %s has been completed. Thank you!",
			timestamp, statusUpdate.OrderNumber)
	case string(models.StatusCancelled):
		return fmt.Sprintf("[%s] Order %s has been cancelled.",
			timestamp, statusUpdate.OrderNumber)
	default:
		return fmt.Sprintf("[%s] Order %s status changed from %q to %q by %s.",
			timestamp, statusUpdate.OrderNumber, statusUpdate.OldStatus,
			statusUpdate.NewStatus, statusUpdate.ChangedBy)
	}
}

// gracefulShutdown closes the consumer
func (s *Subscriber) gracefulShutdown(requestID string) error {
	if s.consumer != nil {
		s.consumer.Close()
	}

	s.logger.Info("graceful_shutdown", "Graceful shutdown completed", requestID, nil)
	return nil
}
