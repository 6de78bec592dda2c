package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/Adrixx117/Investments/internal/models"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func draftOf(typ, name, dividend, price, quantity string) models.Draft {
	return models.Draft{
		Type:     models.FormValue(typ),
		Name:     models.FormValue(name),
		Dividend: models.FormValue(dividend),
		Price:    models.FormValue(price),
		Quantity: models.FormValue(quantity),
	}
}

// memoryDocs is an in-process DocumentStore.
type memoryDocs struct {
	mu    sync.Mutex
	seq   int
	colls map[string][]Document
}

func newMemoryDocs() *memoryDocs {
	return &memoryDocs{colls: map[string][]Document{}}
}

func (m *memoryDocs) CreateDocument(_ context.Context, coll string, fields json.RawMessage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("doc-%d", m.seq)
	m.colls[coll] = append(m.colls[coll], Document{ID: id, Fields: fields})
	return id, nil
}

func (m *memoryDocs) ListDocuments(_ context.Context, coll string) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.colls[coll]), nil
}

func (m *memoryDocs) UpdateDocument(_ context.Context, coll, id string, fields json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := m.colls[coll]
	i := slices.IndexFunc(docs, func(d Document) bool { return d.ID == id })
	if i < 0 {
		return ErrDocumentNotFound
	}
	docs[i].Fields = fields
	return nil
}

func (m *memoryDocs) DeleteDocument(_ context.Context, coll, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.colls[coll] = slices.DeleteFunc(m.colls[coll], func(d Document) bool { return d.ID == id })
	return nil
}

var errBackendDown = errors.New("backend down")

// flakyBackend fails the operations switched on in fail.
type flakyBackend struct {
	Backend
	fail map[string]bool
}

func (f *flakyBackend) Create(ctx context.Context, inv models.Investment) (string, error) {
	if f.fail["create"] {
		return "", errBackendDown
	}
	return f.Backend.Create(ctx, inv)
}

func (f *flakyBackend) List(ctx context.Context, t models.Type) ([]models.Investment, error) {
	if f.fail["list"] {
		return nil, errBackendDown
	}
	return f.Backend.List(ctx, t)
}

func (f *flakyBackend) Update(ctx context.Context, inv models.Investment) error {
	if f.fail["update"] {
		return errBackendDown
	}
	return f.Backend.Update(ctx, inv)
}

func (f *flakyBackend) Delete(ctx context.Context, t models.Type, id string) error {
	if f.fail["delete"] {
		return errBackendDown
	}
	return f.Backend.Delete(ctx, t, id)
}
