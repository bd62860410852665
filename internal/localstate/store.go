package localstate

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/SalisMR/fuscao-frontend/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SessionRecord is the single persisted login, the moral equivalent of
// the browser's localStorage token entry.
type SessionRecord struct {
	ID              uint `gorm:"primaryKey"`
	Token           string
	UserID          string
	Nome            string
	Email           string
	Tipo            string
	ComissaoProduto float64
	ComissaoServico float64
	UpdatedAt       time.Time
}

// DraftRecord keeps the in-progress ticket across restarts, serialized
// as JSON by the caller.
type DraftRecord struct {
	ID        uint `gorm:"primaryKey"`
	Payload   []byte
	UpdatedAt time.Time
}

// Both tables hold at most one row.
const singletonID = 1

// Store is the sqlite-backed local state.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the state file and migrates its schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open state file")
	}
	if err := db.AutoMigrate(&SessionRecord{}, &DraftRecord{}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "migrate state schema")
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveSession upserts the active login.
func (s *Store) SaveSession(ctx context.Context, record SessionRecord) error {
	record.ID = singletonID
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save session")
	}
	return nil
}

// LoadSession returns the persisted login, or nil when none exists.
func (s *Store) LoadSession(ctx context.Context) (*SessionRecord, error) {
	var record SessionRecord
	err := s.db.WithContext(ctx).First(&record, singletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load session")
	}
	return &record, nil
}

// ClearSession removes the persisted login; absent is not an error.
func (s *Store) ClearSession(ctx context.Context) error {
	err := s.db.WithContext(ctx).Delete(&SessionRecord{}, singletonID).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear session")
	}
	return nil
}

// SaveDraft upserts the serialized ticket draft.
func (s *Store) SaveDraft(ctx context.Context, payload []byte) error {
	record := DraftRecord{ID: singletonID, Payload: payload}
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save draft")
	}
	return nil
}

// LoadDraft returns the persisted draft payload, or nil when none
// exists.
func (s *Store) LoadDraft(ctx context.Context) ([]byte, error) {
	var record DraftRecord
	err := s.db.WithContext(ctx).First(&record, singletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load draft")
	}
	return record.Payload, nil
}

// ClearDraft removes the persisted draft; absent is not an error.
func (s *Store) ClearDraft(ctx context.Context) error {
	err := s.db.WithContext(ctx).Delete(&DraftRecord{}, singletonID).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear draft")
	}
	return nil
}
