package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Storage keys mirror the browser storefront this client replaces, so a
// session database stays readable across versions.
const (
	keyToken       = "userToken"
	keyDisplayName = "userName"
)

// Credentials is the persisted slice of a session: both values travel
// together and are cleared together.
type Credentials struct {
	Token       string
	DisplayName string
}

// Storage persists session credentials across process restarts.
type Storage interface {
	Load(ctx context.Context) (Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}

type credentialRecord struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

func (credentialRecord) TableName() string { return "session_credentials" }

// SQLiteStorage keeps credentials in a local sqlite file.
type SQLiteStorage struct {
	conn *gorm.DB
}

// OpenSQLiteStorage opens (and migrates) the session database at path.
func OpenSQLiteStorage(path string) (*SQLiteStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("session storage path is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)
	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening session storage: %w", err)
	}
	if err := conn.AutoMigrate(&credentialRecord{}); err != nil {
		return nil, fmt.Errorf("migrating session storage: %w", err)
	}
	return &SQLiteStorage{conn: conn}, nil
}

func (s *SQLiteStorage) Load(ctx context.Context) (Credentials, error) {
	var records []credentialRecord
	err := s.conn.WithContext(ctx).
		Where("key IN ?", []string{keyToken, keyDisplayName}).
		Find(&records).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Credentials{}, nil
		}
		return Credentials{}, err
	}

	var creds Credentials
	for _, record := range records {
		switch record.Key {
		case keyToken:
			creds.Token = record.Value
		case keyDisplayName:
			creds.DisplayName = record.Value
		}
	}
	return creds, nil
}

func (s *SQLiteStorage) Save(ctx context.Context, creds Credentials) error {
	return s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range map[string]string{
			keyToken:       creds.Token,
			keyDisplayName: creds.DisplayName,
		} {
			record := credentialRecord{Key: key, Value: value}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&record).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStorage) Clear(ctx context.Context) error {
	return s.conn.WithContext(ctx).
		Where("key IN ?", []string{keyToken, keyDisplayName}).
		Delete(&credentialRecord{}).Error
}

// Close shuts down the underlying connection.
func (s *SQLiteStorage) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// MemoryStorage is an ephemeral Storage for tests and for runs that opt out
// of persistence; the session then lives only as long as the process.
type MemoryStorage struct {
	mu      sync.Mutex
	creds   Credentials
	saveErr error
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// FailWrites makes subsequent Save calls return err. Used to exercise the
// storage-failure contract.
func (m *MemoryStorage) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

func (m *MemoryStorage) Load(ctx context.Context) (Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds, nil
}

func (m *MemoryStorage) Save(ctx context.Context, creds Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.creds = creds
	return nil
}

func (m *MemoryStorage) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = Credentials{}
	return nil
}
