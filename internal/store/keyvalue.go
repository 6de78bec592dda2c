package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/Adrixx117/Investments/internal/util"
)

// KeyValue is whole-value storage under string keys: read all, write all.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileKeyValue keeps one file per key under dir.
type FileKeyValue struct {
	dir string
}

func NewFileKeyValue(dir string) (*FileKeyValue, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileKeyValue{dir: dir}, nil
}

func (s *FileKeyValue) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileKeyValue) Get(_ context.Context, key string) ([]byte, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set replaces the value atomically: temp file in the same dir, then rename.
func (s *FileKeyValue) Set(_ context.Context, key string, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "tmp-*.json")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, p)
}

// MemoryKeyValue is a process-local KeyValue.
type MemoryKeyValue struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKeyValue() *MemoryKeyValue {
	return &MemoryKeyValue{data: make(map[string][]byte)}
}

func (s *MemoryKeyValue) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemoryKeyValue) Set(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), data...)
	return nil
}

// EncryptedKeyValue seals every value with AES-256-GCM before handing it to
// the wrapped store.
type EncryptedKeyValue struct {
	next KeyValue
	key  string
}

func NewEncryptedKeyValue(next KeyValue, encryptionKey string) *EncryptedKeyValue {
	return &EncryptedKeyValue{next: next, key: encryptionKey}
}

func (s *EncryptedKeyValue) Get(ctx context.Context, key string) ([]byte, bool, error) {
	sealed, ok, err := s.next.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	plain, err := util.DecryptAES(s.key, sealed)
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", key, err)
	}
	return plain, true, nil
}

func (s *EncryptedKeyValue) Set(ctx context.Context, key string, data []byte) error {
	sealed, err := util.EncryptAES(s.key, data)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.next.Set(ctx, key, sealed)
}
