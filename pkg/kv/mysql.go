package kv

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is a single persisted key-value row
type Entry struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value []byte `gorm:"type:longblob"`
}

// TableName overrides the default gorm table name
func (Entry) TableName() string {
	return "kv_entries"
}

// MySqlStore handles key-value persistence using GORM
type MySqlStore struct {
	db *gorm.DB
}

// NewMySqlStore creates a new key-value store with GORM connection
func NewMySqlStore(databaseURL string) (*MySqlStore, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &MySqlStore{db: db}

	// Auto-migrate tables
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// Get returns the stored value and whether the key was present
func (s *MySqlStore) Get(key string) ([]byte, bool, error) {
	var entry Entry
	result := s.db.First(&entry, "`key` = ?", key)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get key %q: %w", key, result.Error)
	}

	return entry.Value, true, nil
}

// Set stores the value under the key, replacing any previous value
func (s *MySqlStore) Set(key string, value []byte) error {
	entry := Entry{Key: key, Value: value}

	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry)
	if result.Error != nil {
		return fmt.Errorf("failed to set key %q: %w", key, result.Error)
	}

	return nil
}

// Remove deletes the key
func (s *MySqlStore) Remove(key string) error {
	result := s.db.Delete(&Entry{}, "`key` = ?", key)
	if result.Error != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, result.Error)
	}

	return nil
}

// Close closes the database connection
func (s *MySqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
