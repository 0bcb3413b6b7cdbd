package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReservationStatus string

const (
	ReservationReserved  ReservationStatus = "reserved"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationExpired   ReservationStatus = "expired"
	ReservationCancelled ReservationStatus = "cancelled"
)

// SlotReservation is a provisional hold on a mechanic's time slot taken
// when a customer starts checkout. Lifecycle:
//
//	reserved -> confirmed  (payment succeeded, linked to a session)
//	reserved -> cancelled  (customer aborted checkout)
//	reserved -> expired    (hold outlived its 15-minute window, swept)
//
// confirmed, expired and cancelled are terminal. Overlap protection for
// live holds is enforced by the database, not here (see repository.Migrate).
type SlotReservation struct {
	ID         uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	MechanicID int64             `json:"mechanic_id" gorm:"index;not null"`
	StartTime  time.Time         `json:"start_time" gorm:"not null;index"`
	EndTime    time.Time         `json:"end_time" gorm:"not null"`
	Status     ReservationStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	ExpiresAt  *time.Time        `json:"expires_at,omitempty"`
	SessionID  *int64            `json:"session_id,omitempty"`
	Metadata   datatypes.JSON    `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

func (SlotReservation) TableName() string { return "slot_reservations" }

// Terminal reports whether the reservation can no longer change state.
func (r *SlotReservation) Terminal() bool {
	return r.Status != ReservationReserved
}
