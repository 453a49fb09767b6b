// Package queue defines message payloads exchanged over the message
// broker and the background consumer that tails them.
package queue

// EntryQueueName is the durable queue entry events are published to.
const EntryQueueName = "entry.recorded"

// EntryRecordedEvent is published after an access record is persisted.
// It carries the denormalized snapshot so downstream consumers (gate log,
// notifications, analytics) need not query the primary database.
type EntryRecordedEvent struct {
	RecordID     string  `json:"record_id"`
	VehicleID    *string `json:"vehicle_id"`
	PersonID     *string `json:"person_id"`
	PlateNumber  string  `json:"plate_number"`
	VehicleType  string  `json:"vehicle_type"`
	PersonName   string  `json:"person_name"`
	PersonPhone  string  `json:"person_phone"`
	Organization string  `json:"organization"`
	Purpose      string  `json:"purpose"`
	IsFreePass   bool    `json:"is_free_pass"`
	EnteredAt    string  `json:"entered_at"`
}
