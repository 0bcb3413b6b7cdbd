// Package notification persists in-app notifications. Delivery to push
// or email channels is handled by the main platform; this service only
// writes the records its own flows produce.
package notification

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TypeSessionBooked      = "session.booked"
	TypeReservationExpired = "reservation.expired"
)

type Notification struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	UserID    int64          `gorm:"index" json:"user_id"`
	Type      string         `gorm:"index" json:"type"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      datatypes.JSON `json:"data"`
	ReadAt    sql.NullTime   `json:"read_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

func (n *Notification) IsRead() bool { return n.ReadAt.Valid }

// Store writes notification rows for both sides of a booking.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) NotifySessionBooked(ctx context.Context, customerID, mechanicID, sessionID int64, start time.Time) error {
	when := start.UTC().Format("Mon, 2 Jan 15:04 MST")
	data := datatypes.JSON(fmt.Sprintf(`{"session_id":%d,"mechanic_id":%d,"customer_id":%d}`,
		sessionID, mechanicID, customerID))

	rows := []Notification{
		{
			UserID: customerID,
			Type:   TypeSessionBooked,
			Title:  "Session booked",
			Body:   "Your session is confirmed for " + when + ".",
			Data:   data,
		},
		{
			UserID: mechanicID,
			Type:   TypeSessionBooked,
			Title:  "New booking",
			Body:   "A customer booked a session for " + when + ".",
			Data:   data,
		},
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

func (s *Store) MarkRead(ctx context.Context, userID, id int64) error {
	return s.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read_at", sql.NullTime{Time: time.Now(), Valid: true}).Error
}

func (s *Store) ListForUser(ctx context.Context, userID int64, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var out []Notification
	tx := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out)
	return out, tx.Error
}
