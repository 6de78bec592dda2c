// Package store keeps the displayed investment list in step with a
// persistence backend.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adrixx117/Investments/internal/models"
)

// Backend is the persistence capability the coordinator is built over.
// Each investment type maps to exactly one partition of the backend.
type Backend interface {
	// Create stores inv in the partition of inv.Type and returns the new id.
	Create(ctx context.Context, inv models.Investment) (string, error)
	// List returns every record of partition t.
	List(ctx context.Context, t models.Type) ([]models.Investment, error)
	// Update replaces the mutable fields of the record inv.ID in partition inv.Type.
	Update(ctx context.Context, inv models.Investment) error
	// Delete removes id from partition t. Deleting a missing id is not an error.
	Delete(ctx context.Context, t models.Type, id string) error
}

var (
	ErrNotFound = errors.New("investment not found")
	// ErrDocumentNotFound is returned by a DocumentStore updating a missing document.
	ErrDocumentNotFound = errors.New("document not found")
)

// BackendError wraps a failed persistence call.
type BackendError struct {
	Op        string
	Partition models.Type
	Err       error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Partition, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
