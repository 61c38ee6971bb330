package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loan-portal/internal/domain/session"
)

// Slot is one session slot row. (session_id, slot_key) is unique.
type Slot struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	SessionID string    `gorm:"column:session_id;size:64;not null;uniqueIndex:ux_session_slots_sid_key"`
	Key       string    `gorm:"column:slot_key;size:32;not null;uniqueIndex:ux_session_slots_sid_key"`
	Value     string    `gorm:"column:value;type:text;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Slot) TableName() string { return "session_slots" }

func Migrate(db *gorm.DB) error { return db.AutoMigrate(&Slot{}) }

// SessionBackend stores session slots in a SQL table. Expired rows are
// invisible to Get and removed by PurgeExpired.
type SessionBackend struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewSessionBackend(db *gorm.DB, ttl time.Duration) *SessionBackend {
	return &SessionBackend{db: db, ttl: ttl, now: func() time.Time { return time.Now().UTC() }}
}

func (b *SessionBackend) Scope(sessionID string) session.Store {
	return &sessionStore{b: b, sid: sessionID}
}

// PurgeExpired deletes expired rows of every session.
func (b *SessionBackend) PurgeExpired(ctx context.Context) (int64, error) {
	res := b.db.WithContext(ctx).Where("expires_at <= ?", b.now()).Delete(&Slot{})
	return res.RowsAffected, res.Error
}

type sessionStore struct {
	b   *SessionBackend
	sid string
}

func (s *sessionStore) Get(ctx context.Context, key string) (string, error) {
	var out Slot
	err := s.b.db.WithContext(ctx).
		Where("session_id = ? AND slot_key = ? AND expires_at > ?", s.sid, key, s.b.now()).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return out.Value, nil
}

func (s *sessionStore) Set(ctx context.Context, key, value string) error {
	row := Slot{SessionID: s.sid, Key: key, Value: value, ExpiresAt: s.b.now().Add(s.b.ttl)}
	return s.b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&row).Error
}

func (s *sessionStore) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.b.db.WithContext(ctx).
		Where("session_id = ? AND slot_key IN ?", s.sid, keys).
		Delete(&Slot{}).Error
}
