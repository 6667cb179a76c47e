package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizzeria-system/internal/database"
	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/messaging"
	"pizzeria-system/internal/metrics"
	"pizzeria-system/internal/models"
	"pizzeria-system/internal/ticket"
)

// Worker represents a kitchen station process. A station either serves
// one category queue (pizza, wings, other) or the combined queue when
// no station is specified.
type Worker struct {
	name              string
	station           models.Category
	allStations       bool
	heartbeatInterval time.Duration

	db        *database.DB
	consumer  *messaging.Consumer
	publisher *messaging.Publisher
	logger    *logger.Logger

	shutdown chan os.Signal
	done     chan bool
}

// NewWorker creates a new kitchen worker. An empty station means the
// worker consumes every category.
func NewWorker(name, station string, heartbeatInterval time.Duration,
	db *database.DB, consumer *messaging.Consumer, publisher *messaging.Publisher, log *logger.Logger) (*Worker, error) {

	w := &Worker{
		name:              name,
		heartbeatInterval: heartbeatInterval,
		db:                db,
		consumer:          consumer,
		publisher:         publisher,
		logger:            log,
		shutdown:          make(chan os.Signal, 1),
		done:              make(chan bool, 1),
	}

	switch station {
	case "":
		w.allStations = true
	case string(models.CategoryPizza), string(models.CategoryWings), string(models.CategoryOther):
		w.station = models.Category(station)
	default:
		return nil, fmt.Errorf("unknown station %q, expected pizza, wings or other", station)
	}

	return w, nil
}

// queueName returns the queue this station consumes from
func (w *Worker) queueName() string {
	if w.allStations {
		return messaging.KitchenQueue
	}
	switch w.station {
	case models.CategoryPizza:
		return messaging.KitchenPizzaQueue
	case models.CategoryWings:
		return messaging.KitchenWingsQueue
	default:
		return messaging.KitchenOtherQueue
	}
}

// Start starts the kitchen worker
func (w *Worker) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	if err := w.register(ctx, requestID); err != nil {
		return fmt.Errorf("failed to register worker: %w", err)
	}

	signal.Notify(w.shutdown, syscall.SIGINT, syscall.SIGTERM)

	go w.heartbeatLoop(ctx)

	go func() {
		if err := w.consumer.Consume(ctx, w.queueName(), w.name, w.handleMessage); err != nil {
			w.logger.Error("consumer_failed", "Message consumer failed", requestID, err, nil)
		}
		w.done <- true
	}()

	w.logger.Info("worker_started", fmt.Sprintf("Kitchen worker %s started", w.name), requestID, map[string]interface{}{
		"worker_name":        w.name,
		"queue":              w.queueName(),
		"heartbeat_interval": w.heartbeatInterval.Seconds(),
	})

	select {
	case <-w.shutdown:
		w.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		return w.gracefulShutdown(ctx, requestID)
	case <-w.done:
		return nil
	}
}

// register registers the worker in the database, refusing to start if
// a worker with the same name is already online
func (w *Worker) register(ctx context.Context, requestID string) error {
	var count int
	err := w.db.QueryRow(ctx, database.CheckWorkerOnlineSQL, w.name).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check worker status: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("worker %s is already online", w.name)
	}

	workerType := "all"
	if !w.allStations {
		workerType = string(w.station)
	}

	var workerID int
	err = w.db.QueryRow(ctx, database.InsertWorkerSQL, w.name, workerType).Scan(&workerID)
	if err != nil {
		return fmt.Errorf("failed to register worker: %w", err)
	}

	w.logger.Info("worker_registered", fmt.Sprintf("Worker %s registered", w.name), requestID, map[string]interface{}{
		"worker_id":   workerID,
		"worker_name": w.name,
		"worker_type": workerType,
	})

	return nil
}

// handleMessage processes one kitchen ticket
func (w *Worker) handleMessage(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var ticketMsg models.KitchenTicketMessage
	if err := json.Unmarshal(body, &ticketMsg); err != nil {
		w.logger.Error("message_parsing_failed", "Failed to parse kitchen ticket", requestID, err, nil)
		return fmt.Errorf("failed to parse ticket: %w", err)
	}

	w.logger.Info("ticket_received", fmt.Sprintf("Ticket for order %s", ticketMsg.OrderNumber), requestID, map[string]interface{}{
		"order_number":  ticketMsg.OrderNumber,
		"customer_name": ticketMsg.CustomerName,
		"priority":      ticketMsg.Priority,
		"lines":         len(ticketMsg.Lines),
	})

	w.printTicket(&ticketMsg)

	return w.processTicket(ctx, &ticketMsg, requestID)
}

// printTicket renders the ticket for the station display
func (w *Worker) printTicket(ticketMsg *models.KitchenTicketMessage) {
	fmt.Printf("=== %s  (priority %d) ===\n", ticketMsg.OrderNumber, ticketMsg.Priority)
	for _, line := range ticketMsg.Lines {
		fmt.Printf("%dx %s\n", line.Quantity, line.Name)
		if block := ticket.Format(line.PizzaCustomization, ""); block != "" {
			fmt.Println(block)
		}
	}
}

// processTicket runs the order through cooking and ready
func (w *Worker) processTicket(ctx context.Context, ticketMsg *models.KitchenTicketMessage, requestID string) error {
	if err := w.updateStatus(ctx, ticketMsg.OrderNumber, models.StatusCooking); err != nil {
		return fmt.Errorf("failed to update order status to cooking: %w", err)
	}

	prepTime := models.GetPrepTime(ticketMsg.Category)
	estimatedCompletion := time.Now().UTC().Add(prepTime)
	statusUpdate := models.NewStatusUpdateMessage(
		ticketMsg.OrderNumber,
		string(models.StatusReceived),
		string(models.StatusCooking),
		w.name,
		&estimatedCompletion,
	)
	if err := w.publisher.PublishNotification(ctx, statusUpdate); err != nil {
		w.logger.Error("notification_publish_failed", "Failed to publish cooking notification", requestID, err, map[string]interface{}{
			"order_number": ticketMsg.OrderNumber,
		})
	}

	w.logger.Debug("cooking_started", fmt.Sprintf("Cooking order %s for %v", ticketMsg.OrderNumber, prepTime), requestID, map[string]interface{}{
		"order_number":      ticketMsg.OrderNumber,
		"prep_time_seconds": prepTime.Seconds(),
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(prepTime):
	}

	if err := w.markReady(ctx, ticketMsg.OrderNumber); err != nil {
		return fmt.Errorf("failed to update order status to ready: %w", err)
	}

	readyUpdate := models.NewStatusUpdateMessage(
		ticketMsg.OrderNumber,
		string(models.StatusCooking),
		string(models.StatusReady),
		w.name,
		nil,
	)
	if err := w.publisher.PublishNotification(ctx, readyUpdate); err != nil {
		w.logger.Error("notification_publish_failed", "Failed to publish ready notification", requestID, err, map[string]interface{}{
			"order_number": ticketMsg.OrderNumber,
		})
	}

	metrics.OrderProcessed(w.name)

	w.logger.Info("order_ready", fmt.Sprintf("Order %s is ready", ticketMsg.OrderNumber), requestID, map[string]interface{}{
		"order_number": ticketMsg.OrderNumber,
		"processed_by": w.name,
	})

	return nil
}

// updateStatus moves the order to the given status and logs the change
func (w *Worker) updateStatus(ctx context.Context, orderNumber string, status models.OrderStatus) error {
	tx, err := w.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, database.UpdateOrderStatusSQL, status, w.name, orderNumber)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	var orderID int
	err = tx.QueryRow(ctx, "SELECT id FROM orders WHERE number = $1", orderNumber).Scan(&orderID)
	if err != nil {
		return fmt.Errorf("failed to get order ID: %w", err)
	}

	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL, orderID, status, w.name,
		fmt.Sprintf("Order status changed to %s by %s", status, w.name))
	if err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}

	return tx.Commit(ctx)
}

// markReady moves the order to ready and increments the worker's
// processed count in the same transaction
func (w *Worker) markReady(ctx context.Context, orderNumber string) error {
	tx, err := w.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, database.UpdateOrderCompletedSQL, models.StatusReady, orderNumber)
	if err != nil {
		return fmt.Errorf("failed to update order to ready: %w", err)
	}

	var orderID int
	err = tx.QueryRow(ctx, "SELECT id FROM orders WHERE number = $1", orderNumber).Scan(&orderID)
	if err != nil {
		return fmt.Errorf("failed to get order ID: %w", err)
	}

	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL, orderID, models.StatusReady, w.name,
		"Order ready for pickup/delivery")
	if err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}

	_, err = tx.Exec(ctx, database.UpdateWorkerHeartbeatSQL, 1, w.name)
	if err != nil {
		return fmt.Errorf("failed to update worker processed count: %w", err)
	}

	return tx.Commit(ctx)
}

// heartbeatLoop sends periodic heartbeats to update last_seen
func (w *Worker) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(w.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.db.Exec(ctx, database.UpdateWorkerStatusSQL, models.WorkerOnline, w.name); err != nil {
				w.logger.Error("heartbeat_failed", "Failed to send heartbeat", "", err, nil)
			}
		}
	}
}

// gracefulShutdown marks the worker offline and closes the consumer
func (w *Worker) gracefulShutdown(ctx context.Context, requestID string) error {
	if err := w.db.Exec(ctx, database.UpdateWorkerStatusSQL, models.WorkerOffline, w.name); err != nil {
		w.logger.Error("shutdown_failed", "Failed to mark worker offline", requestID, err, nil)
	}

	if w.consumer != nil {
		w.consumer.Close()
	}

	w.logger.Info("graceful_shutdown", "Graceful shutdown completed", requestID, nil)
	return nil
}
