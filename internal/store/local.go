package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/Adrixx117/Investments/internal/models"

	"github.com/google/uuid"
)

// DefaultLocalKey is the storage key the whole list is saved under.
const DefaultLocalKey = "investments"

// LocalBackend keeps every investment in one serialized list under a single
// key. The KeyValue has no partial update, so every mutation reads the list,
// changes it and writes all of it back.
type LocalBackend struct {
	kv  KeyValue
	key string

	mu sync.Mutex
	// newID is swapped in tests
	newID func() string
}

func NewLocalBackend(kv KeyValue, key string) *LocalBackend {
	if key == "" {
		key = DefaultLocalKey
	}
	return &LocalBackend{kv: kv, key: key, newID: uuid.NewString}
}

// readAll loads the list. Entries saved before ids existed get one here and
// legacy type names are normalized; changed reports whether that happened.
func (b *LocalBackend) readAll(ctx context.Context) (list []models.Investment, changed bool, err error) {
	data, ok, err := b.kv.Get(ctx, b.key)
	if err != nil {
		return nil, false, err
	}
	if !ok || len(data) == 0 {
		return nil, false, nil
	}
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", b.key, err)
	}
	for i := range list {
		if list[i].ID == "" {
			list[i].ID = b.newID()
			changed = true
		}
		if !list[i].Type.Valid() {
			t, err := models.ParseType(string(list[i].Type))
			if err != nil {
				return nil, false, fmt.Errorf("decode %s: entry %d: %w", b.key, i, err)
			}
			list[i].Type = t
			changed = true
		}
	}
	return list, changed, nil
}

func (b *LocalBackend) writeAll(ctx context.Context, list []models.Investment) error {
	if list == nil {
		list = []models.Investment{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s: %w", b.key, err)
	}
	return b.kv.Set(ctx, b.key, data)
}

func (b *LocalBackend) Create(ctx context.Context, inv models.Investment) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list, _, err := b.readAll(ctx)
	if err != nil {
		return "", err
	}
	inv.ID = b.newID()
	if err := b.writeAll(ctx, append(list, inv)); err != nil {
		return "", err
	}
	return inv.ID, nil
}

func (b *LocalBackend) List(ctx context.Context, t models.Type) ([]models.Investment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list, changed, err := b.readAll(ctx)
	if err != nil {
		return nil, err
	}
	if changed {
		// persist the ids handed out above so they stay stable
		if err := b.writeAll(ctx, list); err != nil {
			return nil, err
		}
	}
	out := make([]models.Investment, 0, len(list))
	for _, inv := range list {
		if inv.Type == t {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (b *LocalBackend) Update(ctx context.Context, inv models.Investment) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	list, _, err := b.readAll(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(list, func(x models.Investment) bool {
		return x.ID == inv.ID && x.Type == inv.Type
	})
	if i < 0 {
		return ErrDocumentNotFound
	}
	list[i] = inv
	return b.writeAll(ctx, list)
}

func (b *LocalBackend) Delete(ctx context.Context, t models.Type, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	list, _, err := b.readAll(ctx)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(list, func(x models.Investment) bool {
		return x.ID == id && x.Type == t
	})
	if len(kept) == len(list) {
		return nil
	}
	return b.writeAll(ctx, kept)
}
