package model

import (
	"time"

	"github.com/darkking4096/Agente-IA/pkg/domain/types"
)

// BookingStatus tracks the lifecycle of a booking record
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
)

// Booking is a confirmed service reservation created when a conversation
// reaches its terminal state.
type Booking struct {
	ID        types.BookingID
	PatientID types.PatientID
	Service   string
	Specialty string
	Urgency   int
	Date      string // preference token, e.g. "hoje", "amanhã"
	Time      string // normalized HH:MM, may be empty
	Status    BookingStatus
	Notes     string `masq:"secret"` // presenting issue as described by the caller
	CreatedAt time.Time
}
