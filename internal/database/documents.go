package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Adrixx117/Investments/internal/models"
	"github.com/Adrixx117/Investments/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentStore is a store.DocumentStore kept in the documents table.
// Documents are listed in creation order.
type DocumentStore struct {
	db *gorm.DB
}

func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) CreateDocument(ctx context.Context, collection string, fields json.RawMessage) (string, error) {
	doc := models.Document{
		ID:         uuid.NewString(),
		Collection: collection,
		Fields:     string(fields),
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	return doc.ID, nil
}

func (s *DocumentStore) ListDocuments(ctx context.Context, collection string) ([]store.Document, error) {
	var rows []models.Document
	if err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	out := make([]store.Document, 0, len(rows))
	for _, r := range rows {
		out = append(out, store.Document{ID: r.ID, Fields: json.RawMessage(r.Fields)})
	}
	return out, nil
}

func (s *DocumentStore) UpdateDocument(ctx context.Context, collection, id string, fields json.RawMessage) error {
	res := s.db.WithContext(ctx).
		Model(&models.Document{}).
		Where("collection = ? AND id = ?", collection, id).
		Update("fields", string(fields))
	if res.Error != nil {
		return fmt.Errorf("update document: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrDocumentNotFound
	}
	return nil
}

// DeleteDocument removes id from collection; a missing id is not an error.
func (s *DocumentStore) DeleteDocument(ctx context.Context, collection, id string) error {
	if err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&models.Document{}).Error; err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
