package models

import "time"

// WorkerStatus represents the status of a kitchen station worker
type WorkerStatus string

const (
	WorkerOnline  WorkerStatus = "online"
	WorkerOffline WorkerStatus = "offline"
)

// Worker represents a registered kitchen station process
type Worker struct {
	ID              int          `json:"id" db:"id"`
	Name            string       `json:"name" db:"name"`
	Type            string       `json:"type" db:"type"`
	Status          WorkerStatus `json:"status" db:"status"`
	LastSeen        time.Time    `json:"last_seen" db:"last_seen"`
	OrdersProcessed int          `json:"orders_processed" db:"orders_processed"`
}

// WorkerStatusResponse represents a worker entry in status listings
type WorkerStatusResponse struct {
	WorkerName      string    `json:"worker_name"`
	Status          string    `json:"status"`
	OrdersProcessed int       `json:"orders_processed"`
	LastSeen        time.Time `json:"last_seen"`
}
