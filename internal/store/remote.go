package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Adrixx117/Investments/internal/models"

	"github.com/shopspring/decimal"
)

// Document is a stored document as returned by ListDocuments.
type Document struct {
	ID     string
	Fields json.RawMessage
}

// DocumentStore is a collection-partitioned document database. There are no
// transactions and no queries beyond a whole collection.
type DocumentStore interface {
	CreateDocument(ctx context.Context, collection string, fields json.RawMessage) (string, error)
	ListDocuments(ctx context.Context, collection string) ([]Document, error)
	UpdateDocument(ctx context.Context, collection, id string, fields json.RawMessage) error
	DeleteDocument(ctx context.Context, collection, id string) error
}

// Collections names the partition of each investment type.
type Collections struct {
	ETF   string
	Stock string
}

// DefaultCollections are the names existing data was written under.
var DefaultCollections = Collections{ETF: "Etfs", Stock: "Acciones"}

func (c Collections) name(t models.Type) (string, error) {
	switch t {
	case models.TypeETF:
		return c.ETF, nil
	case models.TypeStock:
		return c.Stock, nil
	}
	return "", fmt.Errorf("no collection for type %q", t)
}

// documentFields is the body of an investment document. The id is the
// document's own and is not repeated inside it.
type documentFields struct {
	Type     models.Type         `json:"type"`
	Name     string              `json:"name"`
	Dividend decimal.NullDecimal `json:"dividend"`
	Price    decimal.Decimal     `json:"price"`
	Quantity decimal.Decimal     `json:"quantity"`
}

func encodeFields(inv models.Investment) (json.RawMessage, error) {
	return json.Marshal(documentFields{
		Type:     inv.Type,
		Name:     inv.Name,
		Dividend: inv.Dividend,
		Price:    inv.Price,
		Quantity: inv.Quantity,
	})
}

// RemoteBackend stores each type in its own collection of a DocumentStore.
type RemoteBackend struct {
	docs        DocumentStore
	collections Collections
}

func NewRemoteBackend(docs DocumentStore, collections Collections) *RemoteBackend {
	if collections.ETF == "" {
		collections.ETF = DefaultCollections.ETF
	}
	if collections.Stock == "" {
		collections.Stock = DefaultCollections.Stock
	}
	return &RemoteBackend{docs: docs, collections: collections}
}

func (b *RemoteBackend) Create(ctx context.Context, inv models.Investment) (string, error) {
	coll, err := b.collections.name(inv.Type)
	if err != nil {
		return "", err
	}
	fields, err := encodeFields(inv)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return b.docs.CreateDocument(ctx, coll, fields)
}

func (b *RemoteBackend) List(ctx context.Context, t models.Type) ([]models.Investment, error) {
	coll, err := b.collections.name(t)
	if err != nil {
		return nil, err
	}
	docs, err := b.docs.ListDocuments(ctx, coll)
	if err != nil {
		return nil, err
	}
	out := make([]models.Investment, 0, len(docs))
	for _, doc := range docs {
		var f documentFields
		if err := json.Unmarshal(doc.Fields, &f); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", doc.ID, err)
		}
		// the collection decides the type, whatever the body says
		out = append(out, models.Investment{
			ID:       doc.ID,
			Type:     t,
			Name:     f.Name,
			Dividend: f.Dividend,
			Price:    f.Price,
			Quantity: f.Quantity,
		})
	}
	return out, nil
}

func (b *RemoteBackend) Update(ctx context.Context, inv models.Investment) error {
	coll, err := b.collections.name(inv.Type)
	if err != nil {
		return err
	}
	fields, err := encodeFields(inv)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return b.docs.UpdateDocument(ctx, coll, inv.ID, fields)
}

func (b *RemoteBackend) Delete(ctx context.Context, t models.Type, id string) error {
	coll, err := b.collections.name(t)
	if err != nil {
		return err
	}
	return b.docs.DeleteDocument(ctx, coll, id)
}
