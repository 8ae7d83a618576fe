package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrewpaige1/kanadeck-api/models"
)

// Store is keyed string storage that outlives a single session.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context, key string) error
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// GormStore persists values as settings rows owned by one user.
type GormStore struct {
	db     *gorm.DB
	userID uint
}

func NewGormStore(db *gorm.DB, userID uint) *GormStore {
	return &GormStore{db: db, userID: userID}
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", s.userID, key).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return setting.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	setting := models.Setting{UserID: s.userID, Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Clear(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", s.userID, key).
		Delete(&models.Setting{}).Error
	if err != nil {
		return fmt.Errorf("clear setting %s: %w", key, err)
	}
	return nil
}
