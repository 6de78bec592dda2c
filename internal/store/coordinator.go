package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Adrixx117/Investments/internal/models"
	"github.com/Adrixx117/Investments/internal/util"

	"github.com/charmbracelet/log"
)

var ErrInvalidType = errors.New("invalid investment type")

// Coordinator owns the investment list shown to the user and keeps it
// consistent with the backend after every operation.
//
// Operations run one at a time. A failed backend call leaves the list as it
// was, and an operation on one type never touches entries of the other.
type Coordinator struct {
	backend Backend
	logger  *log.Logger

	mu      sync.Mutex
	records []models.Investment
}

func NewCoordinator(backend Backend, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		backend: backend,
		logger:  logger.WithPrefix("store"),
	}
}

func (c *Coordinator) backendFailed(op string, t models.Type, err error) error {
	berr := &BackendError{Op: op, Partition: t, Err: err}
	c.logger.Error("backend call failed", "op", op, "type", t, "err", err)
	return berr
}

func (c *Coordinator) index(id string) int {
	return slices.IndexFunc(c.records, func(inv models.Investment) bool { return inv.ID == id })
}

// List returns the records of type t in insertion order.
func (c *Coordinator) List(t models.Type) []models.Investment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Investment, 0, len(c.records))
	for _, inv := range c.records {
		if inv.Type == t {
			out = append(out, inv)
		}
	}
	return out
}

// Get returns the record with the given id.
func (c *Coordinator) Get(id string) (models.Investment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return models.Investment{}, false
	}
	return c.records[i], true
}

// Add validates d, writes it to its type's partition and appends it with the
// id the backend assigned. Nothing is written when validation fails.
func (c *Coordinator) Add(ctx context.Context, d models.Draft) (models.Investment, error) {
	inv, err := util.ValidateInvestment(d)
	if err != nil {
		return models.Investment{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.backend.Create(ctx, inv)
	if err != nil {
		return models.Investment{}, c.backendFailed("create", inv.Type, err)
	}
	inv.ID = id
	c.records = append(c.records, inv)
	c.logger.Info("investment added", "id", id, "type", inv.Type, "name", inv.Name)
	return inv, nil
}

// Remove deletes id from partition t and drops it from the list. Removing an
// id that is already gone succeeds.
func (c *Coordinator) Remove(ctx context.Context, t models.Type, id string) error {
	if !t.Valid() {
		return ErrInvalidType
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.backend.Delete(ctx, t, id); err != nil {
		return c.backendFailed("delete", t, err)
	}
	before := len(c.records)
	c.records = slices.DeleteFunc(c.records, func(inv models.Investment) bool {
		return inv.ID == id && inv.Type == t
	})
	if len(c.records) < before {
		c.logger.Info("investment removed", "id", id, "type", t)
	}
	return nil
}

// Edit replaces every mutable field of id with the validated draft, keeping
// its position. An empty draft type means the stored one; the type itself
// cannot change.
func (c *Coordinator) Edit(ctx context.Context, id string, d models.Draft) (models.Investment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.edit(ctx, id, func(models.Investment) models.Draft { return d })
}

// Patch merges p onto the stored record and saves the result as Edit does,
// so the merged record passes every validation rule.
func (c *Coordinator) Patch(ctx context.Context, id string, p models.Patch) (models.Investment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.edit(ctx, id, func(current models.Investment) models.Draft {
		return p.Apply(current.Draft())
	})
}

func (c *Coordinator) edit(ctx context.Context, id string, draftOf func(models.Investment) models.Draft) (models.Investment, error) {
	i := c.index(id)
	if i < 0 {
		return models.Investment{}, ErrNotFound
	}
	current := c.records[i]

	d := draftOf(current)
	if d.Type.Empty() {
		d.Type = models.FormValue(current.Type)
	}
	inv, err := util.ValidateInvestment(d)
	if err != nil {
		return models.Investment{}, err
	}
	if inv.Type != current.Type {
		return models.Investment{}, &util.ValidationError{
			Kind:    util.KindRange,
			Field:   "type",
			Message: "type cannot be changed",
		}
	}
	inv.ID = current.ID

	if err := c.backend.Update(ctx, inv); err != nil {
		return models.Investment{}, c.backendFailed("update", inv.Type, err)
	}
	c.records[i] = inv
	c.logger.Info("investment updated", "id", id, "type", inv.Type)
	return inv, nil
}

// Refresh re-reads partition t and replaces the entries of that type only.
func (c *Coordinator) Refresh(ctx context.Context, t models.Type) error {
	if !t.Valid() {
		return ErrInvalidType
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fresh, err := c.backend.List(ctx, t)
	if err != nil {
		return c.backendFailed("list", t, err)
	}
	next := make([]models.Investment, 0, len(c.records)+len(fresh))
	for _, inv := range c.records {
		if inv.Type != t {
			next = append(next, inv)
		}
	}
	for _, inv := range fresh {
		inv.Type = t
		next = append(next, inv)
	}
	c.records = next
	c.logger.Debug("partition refreshed", "type", t, "count", len(fresh))
	return nil
}

// Load refreshes every type, as done at startup.
func (c *Coordinator) Load(ctx context.Context) error {
	var errs []error
	for _, t := range models.Types {
		if err := c.Refresh(ctx, t); err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", t, err))
		}
	}
	return errors.Join(errs...)
}
