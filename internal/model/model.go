// Package model contains the persisted records of the service.
// Internal numeric IDs are never serialized; clients address records by UUID.
package model

import "time"

// Timestamps are maintained by the storage layer on every save.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
