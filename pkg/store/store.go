// Package store persists received result sheets so draws can be
// replayed later.
//
// A Sheet is the raw host payload plus naming metadata; the pipeline
// re-decodes it on replay, so stored sheets survive pipeline changes.
// Backends:
//
//   - memory: in-process storage for development and tests
//   - mongo: document storage for server deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested sheet does not exist.
var ErrNotFound = errors.New("sheet not found")

// Sheet is one saved result sheet.
type Sheet struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Payload   []byte    `json:"payload" bson:"payload"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// New creates a sheet with a fresh ID and timestamp.
func New(name string, payload []byte) *Sheet {
	return &Sheet{
		ID:        uuid.NewString(),
		Name:      name,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for sheet storage backends.
type Store interface {
	// Save stores a sheet. Saving an existing ID overwrites it.
	Save(ctx context.Context, sheet *Sheet) error

	// Get retrieves a sheet by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Sheet, error)

	// List returns all sheets, newest first. Payloads are included.
	List(ctx context.Context) ([]*Sheet, error)

	// Delete removes a sheet. Deleting a missing ID returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
